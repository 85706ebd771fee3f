package handlers

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/smith3v/tg-phrase-reminder/pkg/bot/importexport"
	"github.com/smith3v/tg-phrase-reminder/pkg/logger"
)

func HandleExport(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.Message == nil || update.Message.From == nil || update.Message.Chat.ID == 0 {
		logger.Error("invalid update in handleExport")
		return
	}
	chatID := update.Message.Chat.ID
	if update.Message.Chat.Type != models.ChatTypePrivate {
		sendText(ctx, b, chatID, "The /export command works only in private chat.")
		return
	}

	entries, err := services.Vocab.List(update.Message.From.ID)
	if err != nil {
		logger.Error("failed to fetch words for export", "user_id", update.Message.From.ID, "error", err)
		sendText(ctx, b, chatID, "Failed to export your vocabulary. Please try again later.")
		return
	}
	if len(entries) == 0 {
		sendText(ctx, b, chatID, "You have no vocabulary to export.")
		return
	}

	data, err := importexport.BuildExportXLSX(entries)
	if err != nil {
		logger.Error("failed to build export workbook", "user_id", update.Message.From.ID, "error", err)
		sendText(ctx, b, chatID, "Failed to export your vocabulary. Please try again later.")
		return
	}

	_, err = b.SendDocument(ctx, &bot.SendDocumentParams{
		ChatID: chatID,
		Document: &models.InputFileUpload{
			Filename: importexport.ExportFilename(time.Now()),
			Data:     bytes.NewReader(data),
		},
		Caption: fmt.Sprintf("Your vocabulary export (%d words).", len(entries)),
	})
	if err != nil {
		logger.Error("failed to send export document", "user_id", update.Message.From.ID, "error", err)
		sendText(ctx, b, chatID, "Failed to export your vocabulary. Please try again later.")
	}
}
