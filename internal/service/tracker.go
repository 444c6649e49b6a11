// Package service содержит логику записи операций и расчета статистики.
package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ivanoskov/money_tracker/internal/category"
	"github.com/ivanoskov/money_tracker/internal/model"
	"github.com/ivanoskov/money_tracker/internal/repository"
)

// ErrInvalidAmount возвращается, когда введенная сумма не является числом.
// Вызывающий должен переспросить сумму, а не падать.
var ErrInvalidAmount = errors.New("amount is not a number")

// Tracker записывает операции в журнал и считает статистику по нему.
type Tracker struct {
	accounts repository.Accounts
}

func NewTracker(accounts repository.Accounts) *Tracker {
	return &Tracker{
		accounts: accounts,
	}
}

// ParseAmount разбирает введенную пользователем сумму. Проверяется только
// "это число": ноль и отрицательные значения принимаются, как в исходном
// поведении бота.
func ParseAmount(text string) (float64, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	return amount, nil
}

// RecordIncome добавляет доход: разбирает сумму, нормализует категорию,
// проставляет текущее время и синхронно сохраняет аккаунт.
func (t *Tracker) RecordIncome(ctx context.Context, userID int64, rawAmount, categoryLabel string) (model.Entry, error) {
	return t.record(ctx, userID, rawAmount, categoryLabel, false)
}

// RecordExpense добавляет расход, симметрично RecordIncome.
func (t *Tracker) RecordExpense(ctx context.Context, userID int64, rawAmount, categoryLabel string) (model.Entry, error) {
	return t.record(ctx, userID, rawAmount, categoryLabel, true)
}

func (t *Tracker) record(ctx context.Context, userID int64, rawAmount, categoryLabel string, expense bool) (model.Entry, error) {
	amount, err := ParseAmount(rawAmount)
	if err != nil {
		return model.Entry{}, err
	}

	account, err := t.accounts.Get(ctx, userID)
	if err != nil {
		return model.Entry{}, fmt.Errorf("failed to load account: %w", err)
	}

	entry := model.Entry{
		Amount:   amount,
		Category: category.Canonical(categoryLabel),
		Date:     time.Now(),
	}
	entry.GenerateID()

	if expense {
		account.Expenses = append(account.Expenses, entry)
	} else {
		account.Incomes = append(account.Incomes, entry)
	}

	// Запись должна пережить падение сразу после подтверждения, поэтому
	// аккаунт сохраняется до ответа об успехе.
	if err := t.accounts.Put(ctx, userID, account); err != nil {
		return model.Entry{}, fmt.Errorf("failed to save account: %w", err)
	}
	return entry, nil
}

// EnsureAccount создает аккаунт при первом контакте и обновляет метаданные
// профиля, если они изменились.
func (t *Tracker) EnsureAccount(ctx context.Context, userID int64, username, firstName, lastName string) error {
	account, err := t.accounts.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load account: %w", err)
	}
	if account.Username == username && account.FirstName == firstName && account.LastName == lastName {
		return nil
	}
	account.Username = username
	account.FirstName = firstName
	account.LastName = lastName
	if err := t.accounts.Put(ctx, userID, account); err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}
	return nil
}

// Window ограничивает статистику скользящим периодом от текущего момента.
type Window struct {
	days int // 0 - без ограничения
}

// AllTime - окно без ограничения по времени.
var AllTime = Window{}

// TrailingDays - окно последних n дней, граница включительно.
func TrailingDays(n int) Window {
	return Window{days: n}
}

func (w Window) contains(ts, now time.Time) bool {
	if w.days == 0 {
		return true
	}
	return !ts.Before(now.AddDate(0, 0, -w.days))
}

// Summarize считает статистику по журналу пользователя в пределах окна:
// итоги, баланс, разбивку по категориям и количество операций.
func (t *Tracker) Summarize(ctx context.Context, userID int64, window Window) (*model.Summary, error) {
	account, err := t.accounts.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	now := time.Now()
	summary := &model.Summary{
		IncomeByCategory:  make(map[string]float64),
		ExpenseByCategory: make(map[string]float64),
	}

	for _, e := range account.Incomes {
		if !window.contains(e.Date, now) {
			continue
		}
		if _, seen := summary.IncomeByCategory[e.Category]; !seen {
			summary.IncomeCategories = append(summary.IncomeCategories, e.Category)
		}
		summary.IncomeByCategory[e.Category] += e.Amount
		summary.TotalIncome += e.Amount
		summary.IncomeCount++
	}

	for _, e := range account.Expenses {
		if !window.contains(e.Date, now) {
			continue
		}
		if _, seen := summary.ExpenseByCategory[e.Category]; !seen {
			summary.ExpenseCategories = append(summary.ExpenseCategories, e.Category)
		}
		summary.ExpenseByCategory[e.Category] += e.Amount
		summary.TotalExpense += e.Amount
		summary.ExpenseCount++
	}

	summary.Balance = summary.TotalIncome - summary.TotalExpense
	return summary, nil
}
