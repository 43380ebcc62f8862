package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// TextSanitizerService は外部提供元から取得したテキストのサニタイズ機能の
// インターフェースを定義する。RSSアイテムのタイトルや検索ページの抜粋には
// HTMLタグや実体参照が混入するため、APIレスポンスに載せる前に平文化する。
type TextSanitizerService interface {
	// Sanitize は入力からHTMLタグを全て除去し、実体参照を復元した
	// 平文テキストを返す。空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(raw string) string
}

// textSanitizer はTextSanitizerServiceの実装。
// bluemondayのStrictPolicyを保持し、スレッドセーフにサニタイズ処理を行う。
type textSanitizer struct {
	policy *bluemonday.Policy
}

// NewTextSanitizer はTextSanitizerServiceの新しいインスタンスを生成する。
// StrictPolicyは許可タグを一切持たないため、全てのHTMLタグが除去される。
func NewTextSanitizer() *textSanitizer {
	return &textSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize は入力からHTMLタグを除去した平文テキストを返す。
// bluemondayはタグ除去後のテキストを実体参照としてエスケープするため、
// html.UnescapeStringで元の文字に戻してからトリムする。
func (s *textSanitizer) Sanitize(raw string) string {
	if raw == "" {
		return ""
	}

	stripped := s.policy.Sanitize(raw)
	return strings.TrimSpace(html.UnescapeString(stripped))
}
