// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/claimcheck/internal/model"
)

// HistoryRepository は検証履歴の永続化インターフェース。
// 履歴は追記専用で、更新操作は存在しない。
type HistoryRepository interface {
	// Insert は履歴エントリを保存し、採番されたIDを返す。
	// CreatedAtはデータベース側で挿入時刻が設定される。
	Insert(ctx context.Context, entry *model.HistoryEntry) (int64, error)

	// List は全履歴エントリをcreated_at降順（新しい順）で返す。
	List(ctx context.Context) ([]*model.HistoryEntry, error)

	// DeleteByID は指定IDのエントリを削除する。
	// 削除された場合はtrue、存在しなかった場合はfalseを返す。
	DeleteByID(ctx context.Context, id int64) (bool, error)

	// DeleteAll は全履歴エントリを削除する。
	DeleteAll(ctx context.Context) error
}
