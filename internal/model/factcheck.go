// Package model はドメインモデルを定義する。
package model

import "time"

// FactCheckRecord は1つのファクトチェック提供元から取得した検証結果を表す。
// ソースアダプタが提供元のレスポンスを正規化して生成する。生成後は不変。
type FactCheckRecord struct {
	Publisher string `json:"publisher"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Rating    string `json:"rating"`
	Language  string `json:"language"`
}

// 正規化時のデフォルト値。PublisherとRatingは空文字列にしない。
const (
	// DefaultPublisher は提供元名が取得できなかった場合のデフォルト値。
	DefaultPublisher = "Unknown"
	// DefaultRating は判定ラベルが取得できなかった場合のデフォルト値。
	DefaultRating = "Unrated"
	// DefaultLanguage は言語コードが取得できなかった場合のデフォルト値。
	DefaultLanguage = "en"
)

// SummaryRecord はFactCheckRecordにAI生成の要約を付加した派生レコードを表す。
// publisher/title/ratingは翻訳済みの値を保持する場合がある。
type SummaryRecord struct {
	Publisher string `json:"publisher"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Rating    string `json:"rating"`
	Summary   string `json:"summary"`
}

// HistoryEntry はクライアントが保存を選択した検証結果の監査レコードを表す。
// 6つのテキストフィールドは全てトリム後に非空でなければならない。
type HistoryEntry struct {
	ID        int64
	Claim     string
	Publisher string
	Title     string
	URL       string
	Rating    string
	Summary   string
	CreatedAt time.Time
}
