package summarize

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	lru "github.com/hashicorp/golang-lru/v2"
)

// mockGenerateClient はGenerateClientのテスト用実装。
type mockGenerateClient struct {
	mu           sync.Mutex
	calls        int
	prompts      []string
	generateFunc func(ctx context.Context, prompt string) (string, error)
}

func (m *mockGenerateClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.calls++
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()
	return m.generateFunc(ctx, prompt)
}

// mockTranslationMetrics はTranslationMetricsのテスト用実装。
type mockTranslationMetrics struct {
	hits   int
	misses int
}

func (m *mockTranslationMetrics) RecordTranslationCacheHit()  { m.hits++ }
func (m *mockTranslationMetrics) RecordTranslationCacheMiss() { m.misses++ }

func newTestTranslator(t *testing.T, client GenerateClient, size int) (*Translator, *mockTranslationMetrics) {
	t.Helper()
	cache, err := lru.New[string, string](size)
	if err != nil {
		t.Fatalf("キャッシュの生成に失敗: %v", err)
	}
	var buf bytes.Buffer
	metrics := &mockTranslationMetrics{}
	return NewTranslator(client, cache, newTestLogger(&buf), metrics), metrics
}

func TestTranslator_Translate_CachesResult(t *testing.T) {
	client := &mockGenerateClient{
		generateFunc: func(ctx context.Context, prompt string) (string, error) {
			return "Verification of vaccine claims", nil
		},
	}
	tr, metrics := newTestTranslator(t, client, 10)

	first := tr.Translate(context.Background(), "ワクチン主張の検証")
	second := tr.Translate(context.Background(), "ワクチン主張の検証")

	if first != "Verification of vaccine claims" || second != first {
		t.Errorf("翻訳結果が一致しない: %q, %q", first, second)
	}

	// 同一入力の2回目はキャッシュから返り、バックエンドは1回しか呼ばれない
	if client.calls != 1 {
		t.Errorf("Generate呼び出し回数 = %d, want 1", client.calls)
	}
	if metrics.misses != 1 || metrics.hits != 1 {
		t.Errorf("hits = %d, misses = %d, want 1, 1", metrics.hits, metrics.misses)
	}
}

func TestTranslator_Translate_EmptyInput_NoBackendCall(t *testing.T) {
	client := &mockGenerateClient{
		generateFunc: func(ctx context.Context, prompt string) (string, error) {
			return "should not be called", nil
		},
	}
	tr, _ := newTestTranslator(t, client, 10)

	if got := tr.Translate(context.Background(), ""); got != "" {
		t.Errorf("Translate(\"\") = %q, want \"\"", got)
	}
	if client.calls != 0 {
		t.Errorf("Generate呼び出し回数 = %d, want 0", client.calls)
	}
}

func TestTranslator_Translate_PromptContainsInput(t *testing.T) {
	client := &mockGenerateClient{
		generateFunc: func(ctx context.Context, prompt string) (string, error) {
			return "translated", nil
		},
	}
	tr, _ := newTestTranslator(t, client, 10)

	tr.Translate(context.Background(), "原文テキスト")

	if len(client.prompts) != 1 {
		t.Fatalf("プロンプト数 = %d, want 1", len(client.prompts))
	}
	if !strings.Contains(client.prompts[0], "原文テキスト") {
		t.Errorf("プロンプトに原文が含まれるべき: %q", client.prompts[0])
	}
	if !strings.Contains(client.prompts[0], "Translate this text to English only") {
		t.Errorf("プロンプトに翻訳指示が含まれるべき: %q", client.prompts[0])
	}
}

func TestTranslator_Translate_BackendFailure_ReturnsOriginal(t *testing.T) {
	client := &mockGenerateClient{
		generateFunc: func(ctx context.Context, prompt string) (string, error) {
			return "", errors.New("connection refused")
		},
	}
	tr, _ := newTestTranslator(t, client, 10)

	if got := tr.Translate(context.Background(), "原文"); got != "原文" {
		t.Errorf("失敗時は原文を返すべき: got %q", got)
	}

	// 失敗はキャッシュされず、次の呼び出しで再試行される
	tr.Translate(context.Background(), "原文")
	if client.calls != 2 {
		t.Errorf("Generate呼び出し回数 = %d, want 2", client.calls)
	}
}

func TestTranslator_Translate_CleansModelOutput(t *testing.T) {
	client := &mockGenerateClient{
		generateFunc: func(ctx context.Context, prompt string) (string, error) {
			return "**Translated**  text", nil
		},
	}
	tr, _ := newTestTranslator(t, client, 10)

	if got := tr.Translate(context.Background(), "原文"); got != "Translated text" {
		t.Errorf("Translate = %q, want %q", got, "Translated text")
	}
}

func TestTranslator_Translate_EvictsLeastRecentlyUsed(t *testing.T) {
	client := &mockGenerateClient{
		generateFunc: func(ctx context.Context, prompt string) (string, error) {
			return "translated", nil
		},
	}
	tr, _ := newTestTranslator(t, client, 2)

	tr.Translate(context.Background(), "一")
	tr.Translate(context.Background(), "二")
	tr.Translate(context.Background(), "三") // 「一」が追い出される
	tr.Translate(context.Background(), "一")

	// 容量2のキャッシュでは4回目の「一」は再度バックエンドを呼ぶ
	if client.calls != 4 {
		t.Errorf("Generate呼び出し回数 = %d, want 4", client.calls)
	}
}
