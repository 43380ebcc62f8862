// Package source はファクトチェック提供元への問い合わせと結果の正規化を提供する。
// 各アダプタは1つの提供元を担当し、レスポンスを共通のFactCheckRecordに変換する。
// 提供元のマークアップやフィード構造への依存はアダプタ実装の内部に閉じ込め、
// 提供元の差し替えが1ファイルの変更で済むようにする。
package source

import (
	"context"

	"github.com/hitoshi/claimcheck/internal/model"
)

// Adapter はファクトチェック提供元への問い合わせインターフェース。
// Fetchは失敗理由をエラーとして返す。空結果への変換（失敗の隠蔽）は
// Aggregatorの境界でのみ行い、理由はログとメトリクスに残す。
type Adapter interface {
	// Name はアダプタの識別名を返す（ログ・メトリクスのラベルに使用）。
	Name() string

	// Fetch はクエリに関連する検証結果を提供元から取得して正規化する。
	Fetch(ctx context.Context, query string) ([]model.FactCheckRecord, error)
}

// TextSanitizer は外部提供元から取得したテキストの平文化インターフェース。
// security.TextSanitizerServiceを抽象化してテスタビリティを向上させる。
type TextSanitizer interface {
	Sanitize(raw string) string
}

// maxItemsPerSource はスクレイプ系・フィード系アダプタの1回あたりの最大取得件数。
const maxItemsPerSource = 5

// userAgent は全アダプタが外部提供元へのリクエストに付与するUser-Agent。
const userAgent = "Claimcheck/1.0 Fact Check Aggregator"
