package main

import (
	"fmt"

	"github.com/ivanoskov/money_tracker/internal/bot"
	"github.com/ivanoskov/money_tracker/internal/config"
	"github.com/ivanoskov/money_tracker/internal/logger"
	"github.com/ivanoskov/money_tracker/internal/metrics"
	"github.com/ivanoskov/money_tracker/internal/repository"
	"github.com/ivanoskov/money_tracker/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load config", "err", err)
	}

	accounts, err := newAccounts(cfg)
	if err != nil {
		logger.Fatal("failed to init storage", "err", err)
	}

	tracker := service.NewTracker(accounts)

	b, err := bot.NewBot(cfg.TelegramToken, tracker)
	if err != nil {
		logger.Fatal("failed to create bot", "err", err)
	}

	if cfg.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(cfg.MetricsAddr); err != nil {
				logger.Error("metrics server stopped", "err", err)
			}
		}()
	}

	if err := b.Start(); err != nil {
		logger.Fatal("bot stopped", "err", err)
	}
}

func newAccounts(cfg *config.Config) (repository.Accounts, error) {
	switch cfg.StorageBackend {
	case config.BackendFile:
		return repository.NewFileStore(cfg.DataFile)
	case config.BackendSupabase:
		return repository.NewSupabaseStore(cfg.SupabaseURL, cfg.SupabaseKey)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
