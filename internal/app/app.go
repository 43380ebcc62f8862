package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/claimcheck/internal/config"
	"github.com/hitoshi/claimcheck/internal/database"
	"github.com/hitoshi/claimcheck/internal/handler"
	"github.com/hitoshi/claimcheck/internal/history"
	"github.com/hitoshi/claimcheck/internal/logger"
	"github.com/hitoshi/claimcheck/internal/metrics"
	"github.com/hitoshi/claimcheck/internal/repository"
	"github.com/hitoshi/claimcheck/internal/security"
	"github.com/hitoshi/claimcheck/internal/source"
	"github.com/hitoshi/claimcheck/internal/summarize"
)

// Init はアプリケーションの初期化を行う。
// 環境変数からConfigを読み込み、JSON構造化ログをセットアップする。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	// 1. ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(w)

	// 2. 環境変数から設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
		slog.String("ollama_model", cfg.OllamaModel),
	)

	switch cmd {
	case CommandServe:
		return runServe(cfg)
	case CommandMigrate:
		return runMigrate(cfg)
	default:
		return runServe(cfg)
	}
}

// runServe はAPIサーバーモードで起動する。
// DB接続を開き、全依存関係をワイヤリングし、HTTPサーバーを起動する。
// SIGINTまたはSIGTERMシグナルを受信するとグレースフルシャットダウンを行う。
func runServe(cfg *config.Config) error {
	// 1. DB接続
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("database connection established")

	// 2. リポジトリとドメインサービスの初期化
	historyRepo := repository.NewPostgresHistoryRepo(db)
	historyService := history.NewService(historyRepo)

	// 3. メトリクスの初期化
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// 4. セキュリティサービスの初期化
	guard := security.NewOutboundGuard()
	fetchClient := guard.NewSafeClient(cfg.FetchTimeout)
	sanitizer := security.NewTextSanitizer()

	// 5. ソースアダプタと集約の初期化
	// アダプタの並び順がレスポンスの連結順になる
	adapters := []source.Adapter{
		source.NewClaimAPIAdapter(fetchClient, slog.Default(), cfg.FactCheckAPIKey),
		source.NewScrapeAdapter(fetchClient, slog.Default(), sanitizer, cfg.FetchMaxSize),
		source.NewFeedFilterAdapter("politifact", "PolitiFact", source.PolitiFactFeedURL,
			fetchClient, slog.Default(), sanitizer, cfg.FetchMaxSize),
		source.NewFeedFilterAdapter("afp_factcheck", "AFP FactCheck", source.AFPFeedURL,
			fetchClient, slog.Default(), sanitizer, cfg.FetchMaxSize),
	}
	aggregator := source.NewAggregator(adapters, slog.Default(), collector)

	// 6. 要約パイプラインの初期化
	ollamaClient := summarize.NewClient(cfg.OllamaBaseURL, cfg.OllamaModel, cfg.OllamaTimeout, slog.Default())
	cache, err := lru.New[string, string](cfg.TranslationCacheSize)
	if err != nil {
		return fmt.Errorf("failed to create translation cache: %w", err)
	}
	translator := summarize.NewTranslator(ollamaClient, cache, slog.Default(), collector)
	summarizer := summarize.NewService(ollamaClient, translator, slog.Default(), collector)

	// 起動時のOllama稼働確認。分析は要約単位で劣化するため失敗しても起動は継続する。
	probeCtx, cancelProbe := context.WithTimeout(context.Background(), 5*time.Second)
	if err := ollamaClient.Ping(probeCtx); err != nil {
		slog.Warn("Ollamaバックエンドに到達できません。分析リクエストはプレースホルダ要約を返します",
			slog.String("base_url", cfg.OllamaBaseURL),
			slog.String("error", err.Error()),
		)
	} else {
		slog.Info("Ollamaバックエンドの稼働を確認しました",
			slog.String("base_url", cfg.OllamaBaseURL),
			slog.String("model", cfg.OllamaModel),
		)
	}
	cancelProbe()

	// 7. ルーターの構築
	router := handler.NewRouter(&handler.RouterDeps{
		Logger:            slog.Default(),
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,

		VerifyService:  aggregator,
		AnalyzeService: summarizer,
		HistoryService: historyService,

		DB:              db,
		MetricsGatherer: registry,
	})

	// 8. HTTPサーバーの起動
	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
		// 検証・分析はアップストリームとローカル推論を待つため長めに取る
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.OllamaTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// グレースフルシャットダウンのためのシグナルハンドリング
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("API server starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("shutting down API server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// runMigrate はデータベースマイグレーションを実行する。
// すべての未適用マイグレーションを順番に適用する。
func runMigrate(cfg *config.Config) error {
	slog.Info("running database migrations",
		slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
	)

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database migrations completed successfully")
	return nil
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /health エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// maskDatabaseURL はデータベースURLの認証情報をマスクする。
func maskDatabaseURL(url string) string {
	if len(url) > 20 {
		return url[:12] + "***@..."
	}
	return "***"
}
