package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// choicesKeyboard раскладывает варианты по две кнопки в ряд.
func choicesKeyboard(choices []string) tgbotapi.ReplyKeyboardMarkup {
	var rows [][]tgbotapi.KeyboardButton
	for i := 0; i < len(choices); i += 2 {
		row := []tgbotapi.KeyboardButton{tgbotapi.NewKeyboardButton(choices[i])}
		if i+1 < len(choices) {
			row = append(row, tgbotapi.NewKeyboardButton(choices[i+1]))
		}
		rows = append(rows, row)
	}

	keyboard := tgbotapi.NewReplyKeyboard(rows...)
	keyboard.ResizeKeyboard = true
	return keyboard
}
