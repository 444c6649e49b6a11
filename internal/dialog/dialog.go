// Package dialog реализует диалоговый конечный автомат бота: какой ввод
// ожидается от пользователя следующим, проверка этого ввода и передача
// завершенных операций в сервис. Пакет не знает о Telegram: исходящие
// сообщения уходят через интерфейс Sender.
package dialog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ivanoskov/money_tracker/internal/category"
	"github.com/ivanoskov/money_tracker/internal/charts"
	"github.com/ivanoskov/money_tracker/internal/logger"
	"github.com/ivanoskov/money_tracker/internal/model"
	"github.com/ivanoskov/money_tracker/internal/service"
)

// Step - единственный следующий ожидаемый ввод пользователя.
type Step int

const (
	Idle Step = iota
	AwaitingIncomeCategory
	AwaitingIncomeAmount
	AwaitingExpenseCategory
	AwaitingExpenseAmount
	AwaitingPeriodChoice
)

// Кнопки главного меню.
const (
	BtnAddIncome  = "Добавить доход"
	BtnAddExpense = "Добавить расход"
	BtnStats      = "Статистика"
)

// Кнопки выбора периода статистики.
const (
	BtnWeek    = "Неделя"
	BtnMonth   = "Месяц"
	BtnYear    = "Год"
	BtnAllTime = "Всё время"
)

const (
	txtStart           = "💰 *Трекер финансов*\n\nВыберите действие:"
	txtChooseAction    = "Выберите действие:"
	txtIncomeCategory  = "Выберите категорию дохода:"
	txtExpenseCategory = "Выберите категорию расхода:"
	txtBadCategory     = "❌ Неверная категория. Пожалуйста, выберите из предложенных."
	txtBadAmount       = "❌ Ошибка! Введите число."
	txtChoosePeriod    = "Выберите период:"
	txtBadPeriod       = "❌ Неверный период. Пожалуйста, выберите из предложенных."
	txtStrayCategory   = "Пожалуйста, сначала выберите 'Добавить доход' или 'Добавить расход'"
	txtStorageError    = "❌ Не удалось сохранить запись. Попробуйте ещё раз."
	txtStatsError      = "❌ Ошибка при формировании статистики."
)

var mainMenu = []string{BtnAddIncome, BtnAddExpense, BtnStats}

// Периоды в порядке кнопок на клавиатуре.
var periods = []struct {
	label  string
	window service.Window
}{
	{BtnWeek, service.TrailingDays(7)},
	{BtnMonth, service.TrailingDays(30)},
	{BtnYear, service.TrailingDays(365)},
	{BtnAllTime, service.AllTime},
}

func periodButtons() []string {
	buttons := make([]string, 0, len(periods))
	for _, p := range periods {
		buttons = append(buttons, p.label)
	}
	return buttons
}

// Sender доставляет исходящие сообщения. Доставка для автомата - fire and
// forget: транспорт сам разбирается с ошибками, автомат считает, что
// сообщение дошло.
type Sender interface {
	// SendText отправляет текст и убирает клавиатуру выбора.
	SendText(userID int64, text string) error
	// SendChoices отправляет текст с клавиатурой из перечисленных вариантов.
	SendChoices(userID int64, text string, choices []string) error
	// SendChart отправляет PNG-изображение с подписью.
	SendChart(userID int64, caption string, png []byte) error
}

// session - состояние диалога одного пользователя. Живет только в памяти
// процесса и сбрасывается при рестарте; сам журнал лежит в хранилище.
type session struct {
	mu       sync.Mutex
	step     Step
	category string // выбранная категория текущего потока
}

// Manager ведет сессии всех пользователей. Операции одного пользователя
// сериализуются мьютексом его сессии, разные пользователи обрабатываются
// параллельно.
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*session

	tracker *service.Tracker
	sender  Sender
	charts  *charts.Generator // nil отключает графики
}

func NewManager(tracker *service.Tracker, sender Sender, charts *charts.Generator) *Manager {
	return &Manager{
		sessions: make(map[int64]*session),
		tracker:  tracker,
		sender:   sender,
		charts:   charts,
	}
}

func (m *Manager) session(userID int64) *session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	if !ok {
		s = &session{}
		m.sessions[userID] = s
	}
	return s
}

// HandleStart обрабатывает /start: создает аккаунт, обновляет метаданные
// профиля, сбрасывает диалог и показывает главное меню.
func (m *Manager) HandleStart(ctx context.Context, userID int64, username, firstName, lastName string) {
	s := m.session(userID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := m.tracker.EnsureAccount(ctx, userID, username, firstName, lastName); err != nil {
		logger.Error("failed to ensure account", "userID", userID, "err", err)
	}

	s.step = Idle
	s.category = ""
	m.sendChoices(userID, txtStart, mainMenu)
}

// HandleText обрабатывает обычное текстовое сообщение согласно текущему шагу
// пользователя.
func (m *Manager) HandleText(ctx context.Context, userID int64, text string) {
	s := m.session(userID)
	s.mu.Lock()
	defer s.mu.Unlock()

	text = strings.TrimSpace(text)

	// Выбор нового действия в главном меню бросает незавершенный шаг:
	// выбранная категория нигде не сохранялась, чистить нечего.
	switch text {
	case BtnAddIncome:
		s.step = AwaitingIncomeCategory
		s.category = ""
		m.sendChoices(userID, txtIncomeCategory, category.Incomes)
		return
	case BtnAddExpense:
		s.step = AwaitingExpenseCategory
		s.category = ""
		m.sendChoices(userID, txtExpenseCategory, category.Expenses)
		return
	case BtnStats:
		s.step = AwaitingPeriodChoice
		s.category = ""
		m.sendChoices(userID, txtChoosePeriod, periodButtons())
		return
	}

	switch s.step {
	case AwaitingIncomeCategory:
		if !category.IsIncome(text) {
			m.sendChoices(userID, txtBadCategory, category.Incomes)
			return
		}
		s.category = text
		s.step = AwaitingIncomeAmount
		m.sendText(userID, fmt.Sprintf("Введите сумму дохода (%s):", text))

	case AwaitingIncomeAmount:
		entry, err := m.tracker.RecordIncome(ctx, userID, text, s.category)
		if errors.Is(err, service.ErrInvalidAmount) {
			// Шаг и выбранная категория сохраняются, переспрашивается
			// только сумма.
			m.sendText(userID, txtBadAmount)
			return
		}
		if err != nil {
			logger.Error("failed to record income", "userID", userID, "err", err)
			s.step = Idle
			s.category = ""
			m.sendChoices(userID, txtStorageError, mainMenu)
			return
		}
		label := s.category
		s.step = Idle
		s.category = ""
		m.sendChoices(userID, fmt.Sprintf("✅ Доход +%v (%s) добавлен!", entry.Amount, label), mainMenu)

	case AwaitingExpenseCategory:
		if !category.IsExpense(text) {
			m.sendChoices(userID, txtBadCategory, category.Expenses)
			return
		}
		s.category = text
		s.step = AwaitingExpenseAmount
		m.sendText(userID, fmt.Sprintf("Введите сумму расхода (%s):", text))

	case AwaitingExpenseAmount:
		entry, err := m.tracker.RecordExpense(ctx, userID, text, s.category)
		if errors.Is(err, service.ErrInvalidAmount) {
			m.sendText(userID, txtBadAmount)
			return
		}
		if err != nil {
			logger.Error("failed to record expense", "userID", userID, "err", err)
			s.step = Idle
			s.category = ""
			m.sendChoices(userID, txtStorageError, mainMenu)
			return
		}
		label := s.category
		s.step = Idle
		s.category = ""
		m.sendChoices(userID, fmt.Sprintf("✅ Расход -%v (%s) добавлен!", entry.Amount, label), mainMenu)

	case AwaitingPeriodChoice:
		window, ok := periodWindow(text)
		if !ok {
			m.sendChoices(userID, txtBadPeriod, periodButtons())
			return
		}
		s.step = Idle
		m.sendStatistics(ctx, userID, text, window)

	default: // Idle
		if category.Known(text) {
			// Категорию прислали вне потока добавления.
			m.sendChoices(userID, txtStrayCategory, mainMenu)
			return
		}
		m.sendChoices(userID, txtChooseAction, mainMenu)
	}
}

func periodWindow(label string) (service.Window, bool) {
	for _, p := range periods {
		if p.label == label {
			return p.window, true
		}
	}
	return service.Window{}, false
}

func (m *Manager) sendStatistics(ctx context.Context, userID int64, periodLabel string, window service.Window) {
	summary, err := m.tracker.Summarize(ctx, userID, window)
	if err != nil {
		logger.Error("failed to summarize", "userID", userID, "err", err)
		m.sendChoices(userID, txtStatsError, mainMenu)
		return
	}

	m.sendChoices(userID, statsText(periodLabel, summary), mainMenu)

	if m.charts == nil {
		return
	}
	png, err := m.charts.ExpenseBreakdown(summary)
	if err != nil {
		logger.Warn("failed to render expense chart", "userID", userID, "err", err)
		return
	}
	if png == nil {
		return
	}
	if err := m.sender.SendChart(userID, "📉 Расходы по категориям", png); err != nil {
		logger.Warn("failed to send chart", "userID", userID, "err", err)
	}
}

func statsText(periodLabel string, s *model.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 *Статистика* (%s)\n\n", periodLabel)
	fmt.Fprintf(&b, "*Общий доход*: +%.2f\n", s.TotalIncome)
	fmt.Fprintf(&b, "*Общий расход*: -%.2f\n", s.TotalExpense)
	fmt.Fprintf(&b, "*Баланс*: %.2f\n\n", s.Balance)

	b.WriteString("📈 *Доходы по категориям*:\n")
	for _, cat := range s.IncomeCategories {
		fmt.Fprintf(&b, "• %s: +%.2f\n", cat, s.IncomeByCategory[cat])
	}

	b.WriteString("\n📉 *Расходы по категориям*:\n")
	for _, cat := range s.ExpenseCategories {
		fmt.Fprintf(&b, "• %s: -%.2f\n", cat, s.ExpenseByCategory[cat])
	}

	fmt.Fprintf(&b, "\nВсего операций: %d", s.IncomeCount+s.ExpenseCount)
	return b.String()
}

// Ошибки отправки только логируются: повторы и компенсации - забота транспорта.
func (m *Manager) sendText(userID int64, text string) {
	if err := m.sender.SendText(userID, text); err != nil {
		logger.Warn("failed to send message", "userID", userID, "err", err)
	}
}

func (m *Manager) sendChoices(userID int64, text string, choices []string) {
	if err := m.sender.SendChoices(userID, text, choices); err != nil {
		logger.Warn("failed to send message", "userID", userID, "err", err)
	}
}
