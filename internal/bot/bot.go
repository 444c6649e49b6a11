// Package bot - телеграм-транспорт: длинный поллинг либо webhook, отрисовка
// клавиатур и доставка сообщений. Вся логика диалога живет в пакете dialog.
package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ivanoskov/money_tracker/internal/charts"
	"github.com/ivanoskov/money_tracker/internal/dialog"
	"github.com/ivanoskov/money_tracker/internal/logger"
	"github.com/ivanoskov/money_tracker/internal/metrics"
	"github.com/ivanoskov/money_tracker/internal/service"
)

type Bot struct {
	api    *tgbotapi.BotAPI
	dialog *dialog.Manager
}

func NewBot(token string, tracker *service.Tracker) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot api: %w", err)
	}

	b := &Bot{api: api}
	b.dialog = dialog.NewManager(tracker, b, charts.NewGenerator())
	return b, nil
}

// Start запускает бота в режиме long polling
func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	logger.Info("bot started", "username", b.api.Self.UserName)

	for update := range updates {
		b.processUpdate(update)
	}
	return nil
}

// HandleWebhook - точка входа для обработки входящих webhook-обновлений
func (b *Bot) HandleWebhook(body []byte) error {
	var update tgbotapi.Update
	if err := json.Unmarshal(body, &update); err != nil {
		return fmt.Errorf("failed to decode update: %w", err)
	}
	b.processUpdate(update)
	return nil
}

// processUpdate обрабатывает одно обновление. Любой сбой обработки не должен
// останавливать цикл: ошибка одного пользователя не трогает остальных.
// Метрики снимаются в defer, чтобы упавшие обновления тоже были посчитаны.
func (b *Bot) processUpdate(update tgbotapi.Update) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic while handling update", "panic", r)
		}
		metrics.UpdatesTotal.Inc()
		metrics.HandleDuration.Observe(time.Since(start).Seconds())
	}()

	b.handleUpdate(update)
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	msg := update.Message
	ctx := context.Background()

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			b.dialog.HandleStart(ctx, msg.From.ID, msg.From.UserName, msg.From.FirstName, msg.From.LastName)
		}
		return
	}

	b.dialog.HandleText(ctx, msg.From.ID, msg.Text)
}

// SendText отправляет текст и убирает текущую reply-клавиатуру.
func (b *Bot) SendText(userID int64, text string) error {
	msg := tgbotapi.NewMessage(userID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(false)
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// SendChoices отправляет текст с reply-клавиатурой из вариантов.
func (b *Bot) SendChoices(userID int64, text string, choices []string) error {
	msg := tgbotapi.NewMessage(userID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = choicesKeyboard(choices)
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// SendChart отправляет PNG-график с подписью.
func (b *Bot) SendChart(userID int64, caption string, png []byte) error {
	photo := tgbotapi.NewPhoto(userID, tgbotapi.FileBytes{
		Name:  "chart.png",
		Bytes: png,
	})
	photo.Caption = caption
	if _, err := b.api.Send(photo); err != nil {
		return fmt.Errorf("failed to send chart: %w", err)
	}
	return nil
}
