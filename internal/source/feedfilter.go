package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/hitoshi/claimcheck/internal/model"
)

// フィードフィルタ型アダプタが既定で参照する提供元。
const (
	// PolitiFactFeedURL はPolitiFactのファクトチェックRSSフィードのURL。
	PolitiFactFeedURL = "https://www.politifact.com/rss/factchecks/"
	// AFPFeedURL はAFP FactCheckのRSSフィードのURL。
	AFPFeedURL = "https://factcheck.afp.com/rss.xml"
)

// feedFilterRating はフィードフィルタ型アダプタが付与する固定の判定ラベル。
// 実際の判定ではなく「提供元に関連記事が存在する」ことを示すマーカー。
const feedFilterRating = "Verified"

// FeedFilterAdapter はRSSフィード取得＋タイトルフィルタ型のアダプタ。
// 提供元は検索APIを持たないため、固定フィードを取得してクエリとの
// 部分一致（大文字小文字無視）でローカルに絞り込む。
// PolitiFactとAFP FactCheckが同一アルゴリズムでこの型を共有する。
type FeedFilterAdapter struct {
	name        string
	publisher   string
	parser      *gofeed.Parser
	httpClient  *http.Client
	logger      *slog.Logger
	sanitizer   TextSanitizer
	maxBodySize int64
	feedURL     string // テスト用にフィードURLを差し替え可能
}

// NewFeedFilterAdapter はFeedFilterAdapterを生成する。
// nameはログ・メトリクス用の識別名、publisherはレコードに載せる提供元名。
func NewFeedFilterAdapter(name, publisher, feedURL string, httpClient *http.Client, logger *slog.Logger, sanitizer TextSanitizer, maxBodySize int64) *FeedFilterAdapter {
	return &FeedFilterAdapter{
		name:        name,
		publisher:   publisher,
		parser:      gofeed.NewParser(),
		httpClient:  httpClient,
		logger:      logger,
		sanitizer:   sanitizer,
		maxBodySize: maxBodySize,
		feedURL:     feedURL,
	}
}

// Name はアダプタの識別名を返す。
func (a *FeedFilterAdapter) Name() string {
	return a.name
}

// Fetch は固定フィードを取得し、タイトルがクエリに部分一致するアイテムを
// フィードの掲載順のまま最大5件まで正規化する。クエリは上流に送信しない。
func (a *FeedFilterAdapter) Fetch(ctx context.Context, query string) ([]model.FactCheckRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("HTTPリクエストの作成に失敗しました: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml, */*")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("フィードの取得に失敗しました: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("フィードがステータス %d を返しました", resp.StatusCode)
	}

	feed, err := a.parser.Parse(io.LimitReader(resp.Body, a.maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("フィードのパースに失敗しました: %w", err)
	}

	needle := strings.ToLower(query)
	records := []model.FactCheckRecord{}
	for _, item := range feed.Items {
		if len(records) >= maxItemsPerSource {
			break
		}

		title := a.sanitizer.Sanitize(item.Title)
		if !strings.Contains(strings.ToLower(title), needle) {
			continue
		}

		records = append(records, model.FactCheckRecord{
			Publisher: a.publisher,
			Title:     title,
			URL:       item.Link,
			Rating:    feedFilterRating,
			Language:  model.DefaultLanguage,
		})
	}

	return records, nil
}
