// Package summarize は検証結果の翻訳とAI要約生成のパイプラインを提供する。
// ローカルのOllamaバックエンドを使用し、非英語フィールドの英訳と
// 中立的な英語要約の生成を行う。
package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Client はOllamaバックエンドのクライアント。
// /api/generate エンドポイントで非ストリーミングのテキスト生成を行う。
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
	model      string
}

// NewClient はClientの新しいインスタンスを生成する。
// timeoutはローカルモデルの推論時間を考慮して分単位の長さを想定する。
func NewClient(baseURL, model string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		model:      model,
	}
}

// generateRequest は/api/generateのリクエストボディを表す。
type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// generateResponse は/api/generateのレスポンスのうち使用するフィールドを表す。
type generateResponse struct {
	Response string `json:"response"`
}

// Generate はプロンプトをバックエンドに送り、生成されたテキストを返す。
// ストリーミングは使用せず、完了したレスポンスを一括で受け取る。
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("リクエストボディの生成に失敗しました: %w", err)
	}

	reqURL := c.baseURL + "/api/generate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("HTTPリクエストの作成に失敗しました: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("Ollamaバックエンドの呼び出しに失敗しました: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("レスポンスボディの読み取りに失敗しました: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Ollamaバックエンドがステータス %d を返しました: %s", resp.StatusCode, string(respBody))
	}

	var decoded generateResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return "", fmt.Errorf("レスポンスJSONのパースに失敗しました: %w", err)
	}

	return strings.TrimSpace(decoded.Response), nil
}

// Ping はバックエンドの稼働確認を行う。
// モデル一覧エンドポイントが200を返せば稼働中とみなす。
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return fmt.Errorf("HTTPリクエストの作成に失敗しました: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("Ollamaバックエンドに到達できません: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Ollamaバックエンドがステータス %d を返しました", resp.StatusCode)
	}

	return nil
}
