package bot

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/ivanoskov/money_tracker/internal/metrics"
)

func TestProcessUpdateRecoversAndCounts(t *testing.T) {
	// Бот без диалога: обработка текста паникует на nil-менеджере.
	b := &Bot{}
	update := tgbotapi.Update{Message: &tgbotapi.Message{
		Text: "привет",
		From: &tgbotapi.User{ID: 1},
		Chat: &tgbotapi.Chat{ID: 1},
	}}

	before := testutil.ToFloat64(metrics.UpdatesTotal)
	assert.NotPanics(t, func() { b.processUpdate(update) })
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.UpdatesTotal))
}

func TestProcessUpdateCountsEmptyUpdates(t *testing.T) {
	b := &Bot{}

	before := testutil.ToFloat64(metrics.UpdatesTotal)
	b.processUpdate(tgbotapi.Update{})
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.UpdatesTotal))
}
