package model

import "time"

// Account хранит весь журнал одного пользователя: упорядоченные списки доходов
// и расходов плюс метаданные профиля, снятые при первом контакте.
type Account struct {
	Incomes   []Entry   `json:"incomes"`
	Expenses  []Entry   `json:"expenses"`
	Username  string    `json:"username,omitempty"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAccount создает пустой аккаунт
func NewAccount(now time.Time) *Account {
	return &Account{
		Incomes:   make([]Entry, 0),
		Expenses:  make([]Entry, 0),
		CreatedAt: now,
	}
}

// Clone возвращает глубокую копию аккаунта. Хранилище и вызывающие не должны
// делить срезы записей: вызывающий дописывает в свою копию, пока хранилище
// сериализует свою.
func (a *Account) Clone() *Account {
	clone := *a
	clone.Incomes = append([]Entry(nil), a.Incomes...)
	clone.Expenses = append([]Entry(nil), a.Expenses...)
	return &clone
}
