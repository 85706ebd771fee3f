package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/smith3v/tg-phrase-reminder/pkg/logger"
	"github.com/smith3v/tg-phrase-reminder/pkg/ui"
	"github.com/smith3v/tg-phrase-reminder/pkg/wizard"
)

const greeting = "Welcome! I help you remember new words with example phrases.\n" +
	"Answer a few questions to set up your reminders."

func HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.Message == nil || update.Message.From == nil || update.Message.Chat.ID == 0 {
		logger.Error("invalid update in HandleStart")
		return
	}

	sendText(ctx, b, update.Message.Chat.ID, greeting)
	restartWizard(ctx, b, update.Message.Chat.ID, update.Message.From.ID)
}

func HandleMenu(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.Message == nil || update.Message.From == nil || update.Message.Chat.ID == 0 {
		logger.Error("invalid update in HandleMenu")
		return
	}

	restartWizard(ctx, b, update.Message.Chat.ID, update.Message.From.ID)
}

// restartWizard puts the user back on the first question and stops their
// reminders until the wizard completes again.
func restartWizard(ctx context.Context, b *bot.Bot, chatID, userID int64) {
	prompt, err := wizard.Reset(userID)
	if err != nil {
		logger.Error("failed to reset wizard", "user_id", userID, "error", err)
		sendText(ctx, b, chatID, "Failed to start the setup. Please try again later.")
		return
	}

	if services.Reminders != nil {
		if err := services.Reminders.Disarm(userID); err != nil {
			logger.Error("failed to disarm reminders", "user_id", userID, "error", err)
		}
	}

	sendPrompt(ctx, b, chatID, userID, prompt)
}

func sendPrompt(ctx context.Context, b *bot.Bot, chatID, userID int64, prompt wizard.Prompt) {
	text, keyboard, err := ui.RenderPrompt(prompt)
	if err != nil {
		logger.Error("failed to render wizard prompt", "user_id", userID, "step", prompt.Step, "error", err)
		sendText(ctx, b, chatID, "Failed to render the question. Please try /menu again.")
		return
	}
	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: keyboard,
	}); err != nil {
		logger.Error("failed to send wizard prompt", "user_id", userID, "error", err)
	}
}
