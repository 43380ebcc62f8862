package summarize

import (
	"context"
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"
)

// GenerateClient はテキスト生成バックエンドのインターフェース。
// summarize.Clientを抽象化してテスタビリティを向上させる。
type GenerateClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// TranslationMetrics は翻訳キャッシュのヒット状況を記録するインターフェース。
type TranslationMetrics interface {
	RecordTranslationCacheHit()
	RecordTranslationCacheMiss()
}

// Translator はバックエンドを使った英訳と、その結果のメモ化を提供する。
// キャッシュのキーは入力文字列の完全一致（正規化なし）。
// 容量上限付きLRUであり、上限到達時は最も使われていないエントリが追い出される。
type Translator struct {
	client  GenerateClient
	cache   *lru.Cache[string, string]
	logger  *slog.Logger
	metrics TranslationMetrics
}

// NewTranslator はTranslatorを生成する。
// cacheは呼び出し側が構築して渡す（テストでの注入・検査を可能にするため）。
func NewTranslator(client GenerateClient, cache *lru.Cache[string, string], logger *slog.Logger, metrics TranslationMetrics) *Translator {
	return &Translator{
		client:  client,
		cache:   cache,
		logger:  logger,
		metrics: metrics,
	}
}

// Translate はテキストを英語に翻訳して返す。
// 空文字列はバックエンドを呼ばずにそのまま返す。
// キャッシュヒット時もバックエンドを呼ばない。
// 翻訳はベストエフォートであり、失敗時は元のテキストを無変更で返す。
// 失敗はキャッシュしない（次回の呼び出しで再試行される）。
func (t *Translator) Translate(ctx context.Context, text string) string {
	if text == "" {
		return text
	}

	if cached, ok := t.cache.Get(text); ok {
		t.metrics.RecordTranslationCacheHit()
		return cached
	}
	t.metrics.RecordTranslationCacheMiss()

	prompt := fmt.Sprintf(
		"Translate this text to English only. Output the translation only, no explanations or comments:\n\n%s",
		text,
	)

	translated, err := t.client.Generate(ctx, prompt)
	if err != nil {
		t.logger.Warn("翻訳に失敗したため元のテキストを使用します",
			slog.String("text", text),
			slog.String("error", err.Error()),
		)
		return text
	}

	cleaned := CleanModelOutput(translated)
	t.cache.Add(text, cleaned)
	return cleaned
}
