package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivanoskov/money_tracker/internal/model"
)

func newTestStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "accounts.json")
	store, err := NewFileStore(path)
	require.NoError(t, err)
	return store, path
}

func TestGetCreatesAccount(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	account, err := store.Get(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Empty(t, account.Incomes)
	assert.Empty(t, account.Expenses)
	assert.False(t, account.CreatedAt.IsZero())

	// Новый аккаунт сохраняется сразу, ещё до первой записи.
	_, err = os.Stat(path)
	require.NoError(t, err)

	again, err := store.Get(ctx, 42)
	require.NoError(t, err)
	assert.NotSame(t, account, again)
	assert.Equal(t, account, again)
}

func TestGetReturnsIndependentCopy(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	account, err := store.Get(ctx, 5)
	require.NoError(t, err)

	// Дозапись в выданную копию не видна хранилищу до Put.
	account.Incomes = append(account.Incomes, model.Entry{ID: "x", Amount: 1, Category: "Зарплата", Date: time.Now()})
	again, err := store.Get(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, again.Incomes)

	require.NoError(t, store.Put(ctx, 5, account))

	// И после Put вызывающий продолжает владеть своей копией.
	stored, err := store.Get(ctx, 5)
	require.NoError(t, err)
	account.Incomes = append(account.Incomes, model.Entry{ID: "y", Amount: 2, Category: "Подарки", Date: time.Now()})
	assert.Len(t, stored.Incomes, 1)
	latest, err := store.Get(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, latest.Incomes, 1)
}

func TestRoundTrip(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	account, err := store.Get(ctx, 7)
	require.NoError(t, err)

	now := time.Now().Truncate(time.Second)
	account.Username = "ivan"
	account.FirstName = "Иван"
	account.Incomes = append(account.Incomes,
		model.Entry{ID: "a", Amount: 100, Category: "Зарплата", Date: now.AddDate(0, 0, -2)},
		model.Entry{ID: "b", Amount: 150.5, Category: "Подарки", Date: now},
	)
	account.Expenses = append(account.Expenses,
		model.Entry{ID: "c", Amount: 40, Category: "Продукты", Date: now},
	)
	require.NoError(t, store.Put(ctx, 7, account))

	reopened, err := NewFileStore(path)
	require.NoError(t, err)
	loaded, err := reopened.Get(ctx, 7)
	require.NoError(t, err)

	assert.Equal(t, "ivan", loaded.Username)
	assert.Equal(t, "Иван", loaded.FirstName)
	require.Len(t, loaded.Incomes, 2)
	require.Len(t, loaded.Expenses, 1)
	// Порядок записей сохраняется.
	assert.Equal(t, "a", loaded.Incomes[0].ID)
	assert.Equal(t, "b", loaded.Incomes[1].ID)
	assert.Equal(t, 150.5, loaded.Incomes[1].Amount)
	assert.Equal(t, "Подарки", loaded.Incomes[1].Category)
	assert.True(t, loaded.Incomes[1].Date.Equal(now))
}

func TestCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store, err := NewFileStore(path)
	require.NoError(t, err)

	account, err := store.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, account.Incomes)
	assert.Empty(t, account.Expenses)
}

func TestConcurrentUsersDoNotLoseData(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	const users = 10
	var wg sync.WaitGroup
	for i := 0; i < users; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			account, err := store.Get(ctx, userID)
			assert.NoError(t, err)
			account.Incomes = append(account.Incomes, model.Entry{
				ID:       fmt.Sprintf("income-%d", userID),
				Amount:   float64(userID),
				Category: "Зарплата",
				Date:     time.Now(),
			})
			assert.NoError(t, store.Put(ctx, userID, account))
		}(int64(i + 1))
	}
	wg.Wait()

	reopened, err := NewFileStore(path)
	require.NoError(t, err)
	for i := 1; i <= users; i++ {
		account, err := reopened.Get(ctx, int64(i))
		require.NoError(t, err)
		require.Len(t, account.Incomes, 1, "user %d", i)
		assert.Equal(t, float64(i), account.Incomes[0].Amount)
	}
}
