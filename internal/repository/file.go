package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/ivanoskov/money_tracker/internal/logger"
	"github.com/ivanoskov/money_tracker/internal/model"
)

// FileStore держит все аккаунты в одном JSON-документе и при каждом изменении
// переписывает документ целиком. Чтения обслуживаются из памяти; записи
// сериализуются мьютексом, так что каждое сохранение - транзакция над всей
// коллекцией и гонка двух пользователей не теряет данные.
type FileStore struct {
	mu       sync.RWMutex
	path     string
	accounts map[string]*model.Account
}

// NewFileStore загружает снимок аккаунтов из path. Нечитаемый или битый файл
// не фатален: хранилище стартует пустым, ошибка уходит в лог для операторов.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		path:     path,
		accounts: make(map[string]*model.Account),
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data dir: %w", err)
		}
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		logger.Error("accounts file unreadable, starting empty", "path", path, "err", err)
		return s, nil
	}
	if err := json.Unmarshal(data, &s.accounts); err != nil {
		logger.Error("accounts file corrupt, starting empty", "path", path, "err", err)
		s.accounts = make(map[string]*model.Account)
	}
	return s, nil
}

// Get отдает копию аккаунта: записи в мапе принадлежат только хранилищу,
// иначе дозапись у вызывающего гонялась бы с сериализацией snapshot'а.
func (s *FileStore) Get(ctx context.Context, userID int64) (*model.Account, error) {
	key := strconv.FormatInt(userID, 10)

	s.mu.RLock()
	account, ok := s.accounts[key]
	if ok {
		clone := account.Clone()
		s.mu.RUnlock()
		return clone, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if account, ok := s.accounts[key]; ok {
		return account.Clone(), nil
	}
	account = model.NewAccount(time.Now())
	s.accounts[key] = account
	if err := s.saveLocked(); err != nil {
		delete(s.accounts, key)
		return nil, fmt.Errorf("failed to persist new account: %w", err)
	}
	return account.Clone(), nil
}

func (s *FileStore) Put(ctx context.Context, userID int64, account *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[strconv.FormatInt(userID, 10)] = account.Clone()
	if err := s.saveLocked(); err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}
	return nil
}

// saveLocked переписывает файл целиком; вызывается только под мьютексом записи.
func (s *FileStore) saveLocked() error {
	data, err := json.MarshalIndent(s.accounts, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
