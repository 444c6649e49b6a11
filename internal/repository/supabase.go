package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/supabase-community/supabase-go"

	"github.com/ivanoskov/money_tracker/internal/model"
)

// SupabaseStore хранит снимок аккаунта строкой в таблице accounts
// (user_id текстом, account как jsonb). Контракт тот же, что у FileStore.
type SupabaseStore struct {
	client *supabase.Client
}

type accountRow struct {
	UserID  string        `json:"user_id"`
	Account model.Account `json:"account"`
}

func NewSupabaseStore(url, key string) (*SupabaseStore, error) {
	client, err := supabase.NewClient(url, key, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}

	return &SupabaseStore{
		client: client,
	}, nil
}

func (r *SupabaseStore) Get(ctx context.Context, userID int64) (*model.Account, error) {
	data, _, err := r.client.From("accounts").
		Select("*", "", false).
		Eq("user_id", strconv.FormatInt(userID, 10)).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	var rows []accountRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse account: %w", err)
	}
	if len(rows) > 0 {
		account := rows[0].Account
		return &account, nil
	}

	account := model.NewAccount(time.Now())
	if err := r.Put(ctx, userID, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (r *SupabaseStore) Put(ctx context.Context, userID int64, account *model.Account) error {
	row := accountRow{
		UserID:  strconv.FormatInt(userID, 10),
		Account: *account,
	}
	_, _, err := r.client.From("accounts").
		Insert(row, true, "user_id", "", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}
	return nil
}
