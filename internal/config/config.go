package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// Бэкенды хранилища аккаунтов.
const (
	BackendFile     = "file"
	BackendSupabase = "supabase"
)

type Config struct {
	TelegramToken  string
	StorageBackend string // file или supabase
	DataFile       string
	SupabaseURL    string
	SupabaseKey    string
	MetricsAddr    string // пустая строка отключает метрики
}

// LoadConfig читает конфигурацию из окружения; .env подхватывается, если есть.
func LoadConfig() (*Config, error) {
	// В serverless-окружении .env нет, переменные приходят из окружения.
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		StorageBackend: getenvDefault("STORAGE_BACKEND", BackendFile),
		DataFile:       getenvDefault("DATA_FILE", "data/accounts.json"),
		SupabaseURL:    os.Getenv("SUPABASE_URL"),
		SupabaseKey:    os.Getenv("SUPABASE_KEY"),
		MetricsAddr:    os.Getenv("METRICS_ADDR"),
	}

	if cfg.TelegramToken == "" {
		return nil, errors.New("TELEGRAM_TOKEN is not set")
	}
	if cfg.StorageBackend == BackendSupabase && (cfg.SupabaseURL == "" || cfg.SupabaseKey == "") {
		return nil, errors.New("SUPABASE_URL and SUPABASE_KEY are required for the supabase backend")
	}
	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
