// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// ソース集約層と要約層から利用する。
type MetricsCollector interface {
	RecordSourceFetchSuccess(source string, items int)
	RecordSourceFetchFailure(source string)
	RecordSummaryDuration(d time.Duration)
	RecordSummaryFailure()
	RecordTranslationCacheHit()
	RecordTranslationCacheMiss()
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	sourceFetchSuccess  *prometheus.CounterVec
	sourceFetchFail     *prometheus.CounterVec
	sourceItems         *prometheus.CounterVec
	summaryDuration     prometheus.Histogram
	summaryFail         prometheus.Counter
	translationCacheHit prometheus.Counter
	translationCacheMis prometheus.Counter
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		sourceFetchSuccess: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "claimcheck_source_fetch_success_total",
			Help: "ソース別のフェッチ成功の合計数",
		}, []string{"source"}),
		sourceFetchFail: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "claimcheck_source_fetch_fail_total",
			Help: "ソース別のフェッチ失敗の合計数",
		}, []string{"source"}),
		sourceItems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "claimcheck_source_items_total",
			Help: "ソース別に取得した検証結果の合計数",
		}, []string{"source"}),
		summaryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "claimcheck_summary_duration_seconds",
			Help: "要約生成1件あたりの所要時間（秒）",
			// ローカルモデルの推論は秒〜分単位になる
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 180},
		}),
		summaryFail: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "claimcheck_summary_fail_total",
			Help: "要約生成失敗の合計数",
		}),
		translationCacheHit: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "claimcheck_translation_cache_hits_total",
			Help: "翻訳キャッシュヒットの合計数",
		}),
		translationCacheMis: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "claimcheck_translation_cache_misses_total",
			Help: "翻訳キャッシュミスの合計数",
		}),
	}

	reg.MustRegister(
		c.sourceFetchSuccess,
		c.sourceFetchFail,
		c.sourceItems,
		c.summaryDuration,
		c.summaryFail,
		c.translationCacheHit,
		c.translationCacheMis,
	)

	return c
}

// RecordSourceFetchSuccess はソースのフェッチ成功と取得件数を記録する。
func (c *Collector) RecordSourceFetchSuccess(source string, items int) {
	c.sourceFetchSuccess.WithLabelValues(source).Inc()
	c.sourceItems.WithLabelValues(source).Add(float64(items))
}

// RecordSourceFetchFailure はソースのフェッチ失敗を記録する。
func (c *Collector) RecordSourceFetchFailure(source string) {
	c.sourceFetchFail.WithLabelValues(source).Inc()
}

// RecordSummaryDuration は要約生成の所要時間を記録する。
func (c *Collector) RecordSummaryDuration(d time.Duration) {
	c.summaryDuration.Observe(d.Seconds())
}

// RecordSummaryFailure は要約生成の失敗を記録する。
func (c *Collector) RecordSummaryFailure() {
	c.summaryFail.Inc()
}

// RecordTranslationCacheHit は翻訳キャッシュのヒットを記録する。
func (c *Collector) RecordTranslationCacheHit() {
	c.translationCacheHit.Inc()
}

// RecordTranslationCacheMiss は翻訳キャッシュのミスを記録する。
func (c *Collector) RecordTranslationCacheMiss() {
	c.translationCacheMis.Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
