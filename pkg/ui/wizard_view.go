package ui

import (
	"github.com/go-telegram/bot/models"
	"github.com/smith3v/tg-phrase-reminder/pkg/wizard"
)

// RenderPrompt turns a wizard question into message text and an inline
// keyboard with one button per row.
func RenderPrompt(prompt wizard.Prompt) (string, *models.InlineKeyboardMarkup, error) {
	rows := make([][]models.InlineKeyboardButton, 0, len(prompt.Options))
	for _, opt := range prompt.Options {
		data, err := BuildAnswerCallback(prompt.Step, opt.Value)
		if err != nil {
			return "", nil, err
		}
		rows = append(rows, []models.InlineKeyboardButton{{Text: opt.Label, CallbackData: data}})
	}
	return prompt.Text, &models.InlineKeyboardMarkup{InlineKeyboard: rows}, nil
}
