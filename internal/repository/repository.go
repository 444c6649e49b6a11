package repository

import (
	"context"

	"github.com/ivanoskov/money_tracker/internal/model"
)

// Accounts - хранилище журналов: отображение id пользователя Telegram
// в снимок его аккаунта.
type Accounts interface {
	// Get возвращает аккаунт пользователя. При первом обращении создает
	// пустой аккаунт и сразу сохраняет его.
	Get(ctx context.Context, userID int64) (*model.Account, error)
	// Put полностью перезаписывает аккаунт пользователя.
	Put(ctx context.Context, userID int64, account *model.Account) error
}
