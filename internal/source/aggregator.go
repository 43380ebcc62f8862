package source

import (
	"context"
	"log/slog"
	"sync"

	"github.com/hitoshi/claimcheck/internal/model"
)

// MetricsRecorder はアダプタのフェッチ結果を記録するインターフェース。
// metrics.Collectorを抽象化してテスタビリティを向上させる。
type MetricsRecorder interface {
	RecordSourceFetchSuccess(source string, items int)
	RecordSourceFetchFailure(source string)
}

// Aggregator は全アダプタへの並行ファンアウトと結果の連結を行う。
// アダプタの失敗はこの境界で空結果に変換される。1つの提供元の不調が
// 集約全体を失敗させてはならない、という契約をここで保証する。
type Aggregator struct {
	adapters []Adapter
	logger   *slog.Logger
	metrics  MetricsRecorder
}

// NewAggregator はAggregatorを生成する。
// adaptersの並び順がそのまま結果の連結順になる。
func NewAggregator(adapters []Adapter, logger *slog.Logger, metrics MetricsRecorder) *Aggregator {
	return &Aggregator{
		adapters: adapters,
		logger:   logger,
		metrics:  metrics,
	}
}

// Aggregate は全アダプタを並行に呼び出し、全員の完了を待ってから
// コンストラクタで与えられた固定順で結果を連結して返す。
// 完了順に依存しないため、順序保証はアダプタ順のみとなる。
// 重複排除やスコアリングは行わない。この呼び出し自体は失敗しない。
func (g *Aggregator) Aggregate(ctx context.Context, query string) []model.FactCheckRecord {
	results := make([][]model.FactCheckRecord, len(g.adapters))

	var wg sync.WaitGroup
	for i, adapter := range g.adapters {
		wg.Add(1)
		go func(i int, adapter Adapter) {
			defer wg.Done()

			records, err := adapter.Fetch(ctx, query)
			if err != nil {
				// 失敗理由はここで吸収し、ログとメトリクスにのみ残す
				g.logger.Warn("ソースアダプタのフェッチに失敗しました",
					slog.String("source", adapter.Name()),
					slog.String("query", query),
					slog.String("error", err.Error()),
				)
				g.metrics.RecordSourceFetchFailure(adapter.Name())
				results[i] = []model.FactCheckRecord{}
				return
			}

			g.metrics.RecordSourceFetchSuccess(adapter.Name(), len(records))
			results[i] = records
		}(i, adapter)
	}
	wg.Wait()

	merged := []model.FactCheckRecord{}
	for _, records := range results {
		merged = append(merged, records...)
	}

	return merged
}
