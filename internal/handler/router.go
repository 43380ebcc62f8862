package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/claimcheck/internal/metrics"
	"github.com/hitoshi/claimcheck/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger            *slog.Logger
	CORSAllowedOrigin string

	// サービス
	VerifyService  VerifyServiceInterface
	AnalyzeService AnalyzeServiceInterface
	HistoryService HistoryServiceInterface

	// ヘルスチェック
	DB DBPinger

	// Prometheusスクレイプ
	MetricsGatherer prometheus.Gatherer
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	CORSMiddleware → RequestIDMiddleware → LoggingMiddleware → RecoveryMiddleware
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	// CORS ミドルウェアを最上位に適用（全ルートに効く）
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewRequestIDMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	r.Use(middleware.NewRecoveryMiddleware())

	verifyHandler := NewVerifyHandler(deps.VerifyService)
	analyzeHandler := NewAnalyzeHandler(deps.AnalyzeService)
	historyHandler := NewHistoryHandler(deps.HistoryService)
	healthHandler := NewHealthHandler(deps.DB)

	// 検証と分析
	r.Post("/verify", verifyHandler.Verify)
	r.Post("/analyze", analyzeHandler.Analyze)

	// 履歴管理
	r.Route("/history", func(r chi.Router) {
		r.Post("/", historyHandler.Save)
		r.Get("/", historyHandler.List)
		r.Delete("/", historyHandler.Clear)
		r.Delete("/{id}", historyHandler.Delete)
	})

	// 運用系
	r.Get("/health", healthHandler.Health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.MetricsGatherer))

	return r
}
