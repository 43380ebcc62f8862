package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/hitoshi/claimcheck/internal/model"
)

// defaultScrapeBaseURL はSnopes検索ページのベースURL。
const defaultScrapeBaseURL = "https://www.snopes.com"

// Snopes検索ページのCSSセレクタ。提供元のマークアップ変更で壊れる可能性が
// あることは織り込み済みで、影響範囲はこのアダプタに限定される。
const (
	scrapeArticleSelector = "article.media-wrapper"
	scrapeTitleSelector   = "h2.title"
	scrapeRatingSelector  = "span.rating-text"
)

// ScrapeAdapter はSnopes検索ページのHTMLスクレイプアダプタ。
// 構造化APIを持たない提供元のため、検索結果ページの記事カードから
// タイトル・リンク・判定ラベルを抽出する。
type ScrapeAdapter struct {
	httpClient  *http.Client
	logger      *slog.Logger
	sanitizer   TextSanitizer
	maxBodySize int64
	baseURL     string // テスト用にベースURLを差し替え可能
}

// NewScrapeAdapter はScrapeAdapterを生成する。
func NewScrapeAdapter(httpClient *http.Client, logger *slog.Logger, sanitizer TextSanitizer, maxBodySize int64) *ScrapeAdapter {
	return &ScrapeAdapter{
		httpClient:  httpClient,
		logger:      logger,
		sanitizer:   sanitizer,
		maxBodySize: maxBodySize,
		baseURL:     defaultScrapeBaseURL,
	}
}

// Name はアダプタの識別名を返す。
func (a *ScrapeAdapter) Name() string {
	return "snopes"
}

// Fetch は検索ページを取得し、記事カードを最大5件まで正規化する。
func (a *ScrapeAdapter) Fetch(ctx context.Context, query string) ([]model.FactCheckRecord, error) {
	searchURL := fmt.Sprintf("%s/search/?q=%s", a.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("HTTPリクエストの作成に失敗しました: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("検索ページの取得に失敗しました: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("検索ページがステータス %d を返しました", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, a.maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("検索ページのHTMLパースに失敗しました: %w", err)
	}

	records := []model.FactCheckRecord{}
	doc.Find(scrapeArticleSelector).EachWithBreak(func(_ int, article *goquery.Selection) bool {
		if len(records) >= maxItemsPerSource {
			return false
		}

		record := model.FactCheckRecord{
			Publisher: "Snopes",
			Title:     "Untitled",
			Rating:    model.DefaultRating,
			Language:  model.DefaultLanguage,
		}

		titleTag := article.Find(scrapeTitleSelector).First()
		if titleTag.Length() > 0 {
			if title := a.sanitizer.Sanitize(titleTag.Text()); title != "" {
				record.Title = title
			}
			if href, ok := titleTag.Find("a").First().Attr("href"); ok {
				record.URL = strings.TrimSpace(href)
			}
		}

		ratingTag := article.Find(scrapeRatingSelector).First()
		if ratingTag.Length() > 0 {
			if rating := a.sanitizer.Sanitize(ratingTag.Text()); rating != "" {
				record.Rating = rating
			}
		}

		records = append(records, record)
		return true
	})

	return records, nil
}
