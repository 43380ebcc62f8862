package summarize

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hitoshi/claimcheck/internal/model"
)

// SummaryMetrics は要約生成の所要時間と失敗を記録するインターフェース。
type SummaryMetrics interface {
	RecordSummaryDuration(d time.Duration)
	RecordSummaryFailure()
}

// Translate はテキストを英語に翻訳する関数のインターフェース。
type TranslateFunc interface {
	Translate(ctx context.Context, text string) string
}

// Service は検証結果のバッチに対する要約生成パイプラインを提供する。
// 各レコードを順番に処理し、翻訳→プロンプト構築→生成→整形を行う。
// ローカルバックエンドの負荷を抑えるため、バッチ内の並行処理は行わない。
type Service struct {
	client     GenerateClient
	translator TranslateFunc
	logger     *slog.Logger
	metrics    SummaryMetrics
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(client GenerateClient, translator TranslateFunc, logger *slog.Logger, metrics SummaryMetrics) *Service {
	return &Service{
		client:     client,
		translator: translator,
		logger:     logger,
		metrics:    metrics,
	}
}

// errorSummaryPrefix は要約生成に失敗したレコードに埋め込むプレースホルダの接頭辞。
// バッチ全体は失敗させず、失敗したレコードだけがこの要約を持つ。
const errorSummaryPrefix = "⚠️ Error connecting to AI: "

// Summarize は検証結果ごとにAI要約を生成し、同じ順序で返す。
// 個々のレコードの失敗はプレースホルダ要約として吸収され、
// 残りのレコードの処理は継続される。エラーは返さない。
func (s *Service) Summarize(ctx context.Context, claim string, records []model.FactCheckRecord) []model.SummaryRecord {
	summaries := make([]model.SummaryRecord, 0, len(records))

	for _, rec := range records {
		title := s.translator.Translate(ctx, SanitizeTitle(rec.Title))
		publisher := s.translator.Translate(ctx, rec.Publisher)
		rating := s.translator.Translate(ctx, NormalizeRating(rec.Rating))

		start := time.Now()
		generated, err := s.client.Generate(ctx, buildSummaryPrompt(claim, publisher, title, rating, rec.URL))
		s.metrics.RecordSummaryDuration(time.Since(start))

		var summary string
		if err != nil {
			s.metrics.RecordSummaryFailure()
			s.logger.Warn("要約の生成に失敗しました",
				slog.String("title", title),
				slog.String("error", err.Error()),
			)
			summary = errorSummaryPrefix + err.Error()
		} else {
			summary = CleanModelOutput(generated)
		}

		summaries = append(summaries, model.SummaryRecord{
			Publisher: publisher,
			Title:     title,
			URL:       rec.URL,
			Rating:    rating,
			Summary:   summary,
		})
	}

	return summaries
}

// buildSummaryPrompt は1つの検証結果に対する要約プロンプトを構築する。
// 出力形式の制約をプロンプト側で明示し、後段の整形への依存を減らす。
func buildSummaryPrompt(claim, publisher, title, rating, url string) string {
	return fmt.Sprintf(`You are an AI fact-checking assistant.
Summarize the verified article below in 2-3 sentences of clear, neutral English.

Claim: %s
Source: %s
Title: %s
Rating: %s
URL: %s

Write only the summary in plain English.
Do not include headers, bullet points, or explanations.`,
		claim, publisher, title, rating, url)
}
