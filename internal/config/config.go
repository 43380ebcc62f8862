package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Database
	DatabaseURL string

	// Google Fact Check Tools API
	// 未設定の場合、構造化APIアダプタは空の結果を返す（エラーにはしない）。
	FactCheckAPIKey string

	// Ollama
	OllamaBaseURL string
	OllamaModel   string
	// OllamaTimeout はローカルモデルの推論を待つタイムアウト。
	// 推論は分単位でかかる場合があるため長めに設定する。
	OllamaTimeout time.Duration

	// Fetch（ソースアダプタの外部HTTPアクセス）
	FetchTimeout time.Duration
	FetchMaxSize int64

	// Summarizer
	TranslationCacheSize int

	// Server
	ServerPort string

	// CORS
	CORSAllowedOrigin string
}

// Load は環境変数からConfigを読み込む。
// 必須環境変数が未設定の場合はエラーを返す。
func Load() (*Config, error) {
	cfg := &Config{}

	// Required fields
	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	// Optional fields with defaults
	cfg.FactCheckAPIKey = os.Getenv("GOOGLE_FACTCHECK_API_KEY")
	cfg.OllamaBaseURL = getEnvString("OLLAMA_BASE_URL", "http://localhost:11434")
	cfg.OllamaModel = getEnvString("OLLAMA_MODEL", "llama3")
	cfg.OllamaTimeout = getEnvDuration("OLLAMA_TIMEOUT", 180*time.Second)
	cfg.FetchTimeout = getEnvDuration("FETCH_TIMEOUT", 10*time.Second)
	cfg.FetchMaxSize = getEnvInt64("FETCH_MAX_SIZE", 5242880)
	cfg.TranslationCacheSize = getEnvInt("TRANSLATION_CACHE_SIZE", 1024)
	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:3000")

	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvInt64(key string, defaultVal int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
