package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// buildMenuKeyboard returns the three-action main menu.
func buildMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎓 Inizia livello", buildMenuCallback(menuLevel)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔁 Ripasso giornaliero", buildMenuCallback(menuReview)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Progressi", buildMenuCallback(menuProgress)),
		),
	)
}

// buildOptionsKeyboard returns one button per answer option, stacked
// vertically so long German forms stay readable.
func buildOptionsKeyboard(questionIndex int, options []string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(options))
	for i, opt := range options {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(opt, buildAnswerCallback(questionIndex, i)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
