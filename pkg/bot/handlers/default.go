package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/smith3v/tg-phrase-reminder/pkg/bot/importexport"
	"github.com/smith3v/tg-phrase-reminder/pkg/db"
	"github.com/smith3v/tg-phrase-reminder/pkg/logger"
	"github.com/smith3v/tg-phrase-reminder/pkg/vocab"
	"github.com/smith3v/tg-phrase-reminder/pkg/wizard"
)

const helpText = "Send me a word and I'll save it with an example phrase.\n\n" +
	"Commands:\n" +
	"/menu: change your settings\n" +
	"/words: list your words\n" +
	"/delete <word>: remove a word\n" +
	"/clear: remove all your words\n" +
	"/export: download your words as a spreadsheet\n\n" +
	"You can also upload a CSV file with one word per line."

func DefaultHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.Message == nil {
		logger.Error("received invalid update in defaultHandler")
		return
	}
	if update.Message.Chat.ID == 0 || update.Message.From == nil {
		logger.Error("chat ID is zero in defaultHandler")
		return
	}

	if update.Message.Document != nil {
		importexport.HandleDocumentImport(ctx, b, update, services.Vocab)
		return
	}
	text := strings.TrimSpace(update.Message.Text)
	if text == "" || strings.HasPrefix(text, "/") {
		// Unknown commands get the help, never stored as words.
		sendText(ctx, b, update.Message.Chat.ID, helpText)
		return
	}

	handleWordSubmission(ctx, b, update.Message.Chat.ID, update.Message.From.ID, update.Message.Text)
}

func handleWordSubmission(ctx context.Context, b *bot.Bot, chatID, userID int64, text string) {
	settings, err := wizard.Current(userID)
	if err != nil {
		if errors.Is(err, db.ErrSettingsNotFound) {
			sendText(ctx, b, chatID, "Send /start to set up your account first.")
			return
		}
		logger.Error("failed to load user settings", "user_id", userID, "error", err)
		sendText(ctx, b, chatID, "Failed to load your settings. Please try again later.")
		return
	}

	if prompt, ok := wizard.CurrentPrompt(*settings); ok {
		sendText(ctx, b, chatID, "Please finish the setup first.")
		sendPrompt(ctx, b, chatID, userID, prompt)
		return
	}

	result, err := services.Vocab.Submit(ctx, *settings, text)
	switch {
	case errors.Is(err, vocab.ErrEmptyWord):
		sendText(ctx, b, chatID, "Please send a word or a short phrase.")
		return
	case errors.Is(err, vocab.ErrWordTooLong):
		sendText(ctx, b, chatID, fmt.Sprintf("That is too long. Please send at most %d characters.", vocab.MaxWordRunes))
		return
	case err != nil:
		logger.Error("failed to save word", "user_id", userID, "error", err)
		sendText(ctx, b, chatID, "Failed to save the word, please try again.")
		return
	}

	switch result.Status {
	case vocab.StatusAlreadyKnown:
		sendText(ctx, b, chatID, vocab.AlreadyKnownText(result.Word))
	default:
		logger.Info("word added", "user_id", userID, "word", result.Word, "has_example", result.Card.HasExample)
		sendText(ctx, b, chatID, result.Card.AddedText())
	}
}
