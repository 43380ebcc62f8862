package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/hitoshi/claimcheck/internal/model"
)

// defaultClaimAPIEndpoint はGoogle Fact Check Tools APIのエンドポイント。
const defaultClaimAPIEndpoint = "https://factchecktools.googleapis.com/v1alpha1/claims:search"

// ClaimAPIAdapter はGoogle Fact Check Tools APIへの問い合わせアダプタ。
// 構造化されたJSONレスポンスを受け取るため、4アダプタの中で唯一
// マークアップへの依存を持たない。
type ClaimAPIAdapter struct {
	httpClient *http.Client
	logger     *slog.Logger
	apiKey     string
	endpoint   string // テスト用にエンドポイントを差し替え可能
}

// NewClaimAPIAdapter はClaimAPIAdapterを生成する。
// apiKeyが空の場合、Fetchはネットワークアクセスなしで空の結果を返す。
func NewClaimAPIAdapter(httpClient *http.Client, logger *slog.Logger, apiKey string) *ClaimAPIAdapter {
	return &ClaimAPIAdapter{
		httpClient: httpClient,
		logger:     logger,
		apiKey:     apiKey,
		endpoint:   defaultClaimAPIEndpoint,
	}
}

// Name はアダプタの識別名を返す。
func (a *ClaimAPIAdapter) Name() string {
	return "google_factcheck"
}

// claimAPIResponse はclaims:searchレスポンスのうち使用するフィールドを表す。
type claimAPIResponse struct {
	Claims []struct {
		Text         string `json:"text"`
		LanguageCode string `json:"languageCode"`
		ClaimReview  []struct {
			Publisher struct {
				Name string `json:"name"`
			} `json:"publisher"`
			URL           string `json:"url"`
			Title         string `json:"title"`
			TextualRating string `json:"textualRating"`
		} `json:"claimReview"`
	} `json:"claims"`
}

// Fetch はclaims:searchを呼び出し、各claimの最初のclaimReviewを正規化する。
// 件数制限は設けない（APIのページングに従う）。
func (a *ClaimAPIAdapter) Fetch(ctx context.Context, query string) ([]model.FactCheckRecord, error) {
	// APIキー未設定は構成上の選択であり障害ではないため、空結果で返す
	if a.apiKey == "" {
		a.logger.Info("Fact Check Tools APIキーが未設定のためスキップします",
			slog.String("source", a.Name()),
		)
		return []model.FactCheckRecord{}, nil
	}

	reqURL, err := url.Parse(a.endpoint)
	if err != nil {
		return nil, fmt.Errorf("エンドポイントURLのパースに失敗しました: %w", err)
	}

	q := reqURL.Query()
	q.Set("query", query)
	q.Set("key", a.apiKey)
	q.Set("languageCode", "en")
	reqURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("HTTPリクエストの作成に失敗しました: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Fact Check Tools APIの呼び出しに失敗しました: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Fact Check Tools APIがステータス %d を返しました", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("レスポンスボディの読み取りに失敗しました: %w", err)
	}

	var decoded claimAPIResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("レスポンスJSONのパースに失敗しました: %w", err)
	}

	records := make([]model.FactCheckRecord, 0, len(decoded.Claims))
	for _, claim := range decoded.Claims {
		record := model.FactCheckRecord{
			Publisher: model.DefaultPublisher,
			Title:     claim.Text,
			Rating:    model.DefaultRating,
			Language:  claim.LanguageCode,
		}

		// レビューが複数ある場合は先頭のみを採用する
		if len(claim.ClaimReview) > 0 {
			review := claim.ClaimReview[0]
			if review.Publisher.Name != "" {
				record.Publisher = review.Publisher.Name
			}
			if review.Title != "" {
				record.Title = review.Title
			}
			record.URL = review.URL
			if review.TextualRating != "" {
				record.Rating = review.TextualRating
			}
		}

		if record.Language == "" {
			record.Language = model.DefaultLanguage
		}

		records = append(records, record)
	}

	return records, nil
}
