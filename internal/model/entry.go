package model

import (
	"time"

	"github.com/google/uuid"
)

// Entry представляет одну запись в журнале: доход или расход.
// Записи неизменяемы после добавления, операций редактирования и удаления нет.
type Entry struct {
	ID       string    `json:"id,omitempty"`
	Amount   float64   `json:"amount"`
	Category string    `json:"category"`
	Date     time.Time `json:"date"`
}

// GenerateID генерирует новый UUID для записи, если он еще не установлен
func (e *Entry) GenerateID() {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
}
