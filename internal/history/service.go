// Package history は検証履歴のドメインロジックを提供する。
// 履歴は追記専用の監査ログであり、保存・一覧・削除のみをサポートする。
package history

import (
	"context"
	"fmt"
	"strings"

	"github.com/hitoshi/claimcheck/internal/model"
	"github.com/hitoshi/claimcheck/internal/repository"
)

// Service は履歴の保存・一覧・削除を提供する。
// リポジトリの手前で必須フィールドの検証を行う。
type Service struct {
	repo repository.HistoryRepository
}

// NewService はServiceを生成する。
func NewService(repo repository.HistoryRepository) *Service {
	return &Service{repo: repo}
}

// Save は履歴エントリを検証して保存し、採番されたIDを返す。
// 6つのテキストフィールドは全てトリム後に非空でなければならない。
// 空のフィールドがある場合はmodel.APIErrorを返し、何も保存しない。
func (s *Service) Save(ctx context.Context, entry model.HistoryEntry) (int64, error) {
	trimmed := model.HistoryEntry{
		Claim:     strings.TrimSpace(entry.Claim),
		Publisher: strings.TrimSpace(entry.Publisher),
		Title:     strings.TrimSpace(entry.Title),
		URL:       strings.TrimSpace(entry.URL),
		Rating:    strings.TrimSpace(entry.Rating),
		Summary:   strings.TrimSpace(entry.Summary),
	}

	// フィールド名はリクエストのJSONキーに合わせる
	required := []struct {
		name  string
		value string
	}{
		{"claim", trimmed.Claim},
		{"publisher", trimmed.Publisher},
		{"title", trimmed.Title},
		{"url", trimmed.URL},
		{"rating", trimmed.Rating},
		{"summary", trimmed.Summary},
	}
	for _, f := range required {
		if f.value == "" {
			return 0, model.NewMissingFieldError(f.name)
		}
	}

	id, err := s.repo.Insert(ctx, &trimmed)
	if err != nil {
		return 0, fmt.Errorf("履歴の保存に失敗しました: %w", err)
	}

	return id, nil
}

// List は全履歴エントリを新しい順で返す。
func (s *Service) List(ctx context.Context) ([]*model.HistoryEntry, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("履歴一覧の取得に失敗しました: %w", err)
	}

	return entries, nil
}

// Delete は指定IDの履歴エントリを削除する。
// エントリが存在しない場合はmodel.APIErrorを返す。
func (s *Service) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return fmt.Errorf("履歴エントリの削除に失敗しました: %w", err)
	}
	if !deleted {
		return model.NewEntryNotFoundError(id)
	}

	return nil
}

// Clear は全履歴エントリを削除する。
func (s *Service) Clear(ctx context.Context) error {
	if err := s.repo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("履歴の全削除に失敗しました: %w", err)
	}

	return nil
}
