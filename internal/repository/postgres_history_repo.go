package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/claimcheck/internal/model"
)

// PostgresHistoryRepo はPostgreSQLを使用した履歴リポジトリ。
type PostgresHistoryRepo struct {
	db *sql.DB
}

// NewPostgresHistoryRepo はPostgresHistoryRepoを生成する。
func NewPostgresHistoryRepo(db *sql.DB) *PostgresHistoryRepo {
	return &PostgresHistoryRepo{db: db}
}

// Insert は履歴エントリを保存し、採番されたIDを返す。
func (r *PostgresHistoryRepo) Insert(ctx context.Context, entry *model.HistoryEntry) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO history (claim, publisher, title, url, rating, summary)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		entry.Claim, entry.Publisher, entry.Title, entry.URL, entry.Rating, entry.Summary,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("履歴エントリの保存に失敗しました: %w", err)
	}

	return id, nil
}

// List は全履歴エントリをcreated_at降順（新しい順）で返す。
// 同時刻のエントリはID降順で後から保存されたものを先にする。
func (r *PostgresHistoryRepo) List(ctx context.Context) ([]*model.HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, claim, publisher, title, url, rating, summary, created_at
		 FROM history
		 ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("履歴一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	entries := []*model.HistoryEntry{}
	for rows.Next() {
		entry := &model.HistoryEntry{}
		if err := rows.Scan(
			&entry.ID, &entry.Claim, &entry.Publisher, &entry.Title,
			&entry.URL, &entry.Rating, &entry.Summary, &entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("履歴エントリの読み取りに失敗しました: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("履歴一覧の走査に失敗しました: %w", err)
	}

	return entries, nil
}

// DeleteByID は指定IDのエントリを削除する。
// 削除された場合はtrue、存在しなかった場合はfalseを返す。
func (r *PostgresHistoryRepo) DeleteByID(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM history WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("履歴エントリの削除に失敗しました: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("削除件数の取得に失敗しました: %w", err)
	}

	return affected > 0, nil
}

// DeleteAll は全履歴エントリを削除する。
func (r *PostgresHistoryRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM history`); err != nil {
		return fmt.Errorf("履歴の全削除に失敗しました: %w", err)
	}

	return nil
}
