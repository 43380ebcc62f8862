// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: validation, history, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeMissingQuery    = "MISSING_QUERY"
	ErrCodeMissingClaim    = "MISSING_CLAIM"
	ErrCodeMissingSources  = "MISSING_SOURCES"
	ErrCodeMissingField    = "MISSING_FIELD"
	ErrCodeInvalidID       = "INVALID_ID"
	ErrCodeEntryNotFound   = "ENTRY_NOT_FOUND"
	ErrCodeInvalidRequest  = "INVALID_REQUEST"
)

// NewMissingQueryError は検証クエリ未指定エラーを生成する。
func NewMissingQueryError() *APIError {
	return &APIError{
		Code:     ErrCodeMissingQuery,
		Message:  "検証するクエリが指定されていません。",
		Category: "validation",
		Action:   "queryフィールドに検証したい主張を入力してください。",
	}
}

// NewMissingClaimError は分析対象の主張未指定エラーを生成する。
func NewMissingClaimError() *APIError {
	return &APIError{
		Code:     ErrCodeMissingClaim,
		Message:  "分析する主張が指定されていません。",
		Category: "validation",
		Action:   "claimフィールドに検証済みの主張を入力してください。",
	}
}

// NewMissingSourcesError は分析対象のソース未指定エラーを生成する。
func NewMissingSourcesError() *APIError {
	return &APIError{
		Code:     ErrCodeMissingSources,
		Message:  "分析するソースが指定されていません。",
		Category: "validation",
		Action:   "先に/verifyで検証結果を取得してからsourcesに渡してください。",
	}
}

// NewMissingFieldError は履歴保存時の必須フィールド欠落エラーを生成する。
func NewMissingFieldError(field string) *APIError {
	return &APIError{
		Code:     ErrCodeMissingField,
		Message:  fmt.Sprintf("必須フィールドが空です: %s", field),
		Category: "validation",
		Action:   "claim、publisher、title、url、rating、summaryを全て指定してください。",
	}
}

// NewInvalidIDError は履歴IDの形式エラーを生成する。
func NewInvalidIDError(raw string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidID,
		Message:  fmt.Sprintf("無効な履歴IDです: %s", raw),
		Category: "validation",
		Action:   "履歴IDには整数を指定してください。",
	}
}

// NewEntryNotFoundError は履歴エントリ未検出エラーを生成する。
func NewEntryNotFoundError(id int64) *APIError {
	return &APIError{
		Code:     ErrCodeEntryNotFound,
		Message:  fmt.Sprintf("指定された履歴エントリが見つかりません: %d", id),
		Category: "history",
		Action:   "履歴一覧でIDを確認してください。",
	}
}

// NewInvalidRequestError はリクエストボディ解析失敗エラーを生成する。
func NewInvalidRequestError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRequest,
		Message:  "リクエストボディの解析に失敗しました。",
		Category: "validation",
		Action:   "正しいJSON形式でリクエストしてください。",
	}
}
