package main

import (
	"context"
	"fmt"

	"github.com/ivanoskov/money_tracker/internal/bot"
	"github.com/ivanoskov/money_tracker/internal/config"
	"github.com/ivanoskov/money_tracker/internal/repository"
	"github.com/ivanoskov/money_tracker/internal/service"
)

// Request структура входящего запроса от API Gateway
type Request struct {
	Body string `json:"body"`
}

// Response структура ответа для API Gateway
type Response struct {
	StatusCode int               `json:"statusCode"`
	Body       string            `json:"body"`
	Headers    map[string]string `json:"headers,omitempty"`
}

func Handler(ctx context.Context, request Request) (*Response, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return errorResponse(err)
	}

	accounts, err := newAccounts(cfg)
	if err != nil {
		return errorResponse(err)
	}

	tracker := service.NewTracker(accounts)

	b, err := bot.NewBot(cfg.TelegramToken, tracker)
	if err != nil {
		return errorResponse(err)
	}

	if err := b.HandleWebhook([]byte(request.Body)); err != nil {
		return errorResponse(err)
	}

	return &Response{
		StatusCode: 200,
		Body:       "",
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
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

func errorResponse(err error) (*Response, error) {
	return &Response{
		StatusCode: 500,
		Body:       err.Error(),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func main() {
	// Точка входа для локального тестирования
}
