package handlers

import (
	"context"
	"errors"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/smith3v/tg-phrase-reminder/pkg/logger"
	"github.com/smith3v/tg-phrase-reminder/pkg/ui"
	"github.com/smith3v/tg-phrase-reminder/pkg/wizard"
)

const armFailedText = "⚠️ Reminders could not be scheduled. Please run /menu again."

func HandleWizardCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.CallbackQuery == nil {
		logger.Error("invalid update in HandleWizardCallback")
		return
	}

	callbackID := update.CallbackQuery.ID
	answered := false
	answerCallback := func(text string) {
		if answered || callbackID == "" {
			return
		}
		if _, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: callbackID,
			Text:            text,
		}); err != nil {
			logger.Error("failed to answer callback query", "error", err)
		}
		answered = true
	}

	action, err := ui.ParseCallbackData(update.CallbackQuery.Data)
	if err != nil {
		logger.Warn("failed to parse wizard callback", "data", update.CallbackQuery.Data, "error", err)
		answerCallback("Unknown option")
		return
	}

	message := update.CallbackQuery.Message
	if message.Type != models.MaybeInaccessibleMessageTypeMessage || message.Message == nil || message.Message.Chat.ID == 0 {
		logger.Error("callback query message is inaccessible", "user_id", update.CallbackQuery.From.ID)
		answerCallback("Message is not available")
		return
	}
	msg := message.Message
	userID := update.CallbackQuery.From.ID

	result, err := wizard.Answer(userID, action.Step, action.Value)
	switch {
	case errors.Is(err, wizard.ErrStaleAnswer):
		logger.Debug("ignoring stale wizard answer", "user_id", userID, "step", action.Step)
		answerCallback("")
		return
	case errors.Is(err, wizard.ErrInvalidOption):
		answerCallback("Please pick one of the options")
		if prompt, ok := wizard.CurrentPrompt(result.Settings); ok {
			sendPrompt(ctx, b, msg.Chat.ID, userID, prompt)
		}
		return
	case err != nil:
		logger.Error("failed to apply wizard answer", "user_id", userID, "error", err)
		answerCallback("Failed to save your answer")
		return
	}
	answerCallback("")

	switch result.Effect {
	case wizard.EffectAsk:
		text, keyboard, err := ui.RenderPrompt(result.Prompt)
		if err != nil {
			logger.Error("failed to render wizard prompt", "user_id", userID, "error", err)
			return
		}
		if _, err := b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:      msg.Chat.ID,
			MessageID:   msg.ID,
			Text:        text,
			ReplyMarkup: keyboard,
		}); err != nil {
			logger.Error("failed to edit wizard message", "user_id", userID, "error", err)
		}
	case wizard.EffectComplete:
		summary := wizard.Summary(result.Settings)
		if services.Reminders != nil {
			if err := services.Reminders.Arm(result.Settings); err != nil {
				logger.Error("failed to arm reminders", "user_id", userID, "error", err)
				summary += "\n\n" + armFailedText
			}
		}
		logger.Info("wizard completed", "user_id", userID,
			"reminders_per_day", result.Settings.RemindersPerDay,
			"words_per_reminder", result.Settings.WordsPerReminder,
			"category", result.Settings.PhraseCategory)
		if _, err := b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:    msg.Chat.ID,
			MessageID: msg.ID,
			Text:      summary,
		}); err != nil {
			logger.Error("failed to edit wizard message", "user_id", userID, "error", err)
		}
	}
}
