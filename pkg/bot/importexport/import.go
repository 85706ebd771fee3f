package importexport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/smith3v/tg-phrase-reminder/pkg/config"
	"github.com/smith3v/tg-phrase-reminder/pkg/logger"
	"github.com/smith3v/tg-phrase-reminder/pkg/vocab"
)

const maxUploadBytes = 1 << 20

// Importer stores parsed words; *vocab.Service satisfies it.
type Importer interface {
	Import(userID int64, items []vocab.ImportItem) (vocab.ImportResult, error)
}

func HandleDocumentImport(ctx context.Context, b *bot.Bot, update *models.Update, importer Importer) {
	if update == nil || update.Message == nil || update.Message.Document == nil || update.Message.From == nil {
		logger.Error("invalid update in HandleDocumentImport")
		return
	}
	if update.Message.Chat.ID == 0 {
		logger.Error("chat ID is zero in HandleDocumentImport")
		return
	}

	doc := update.Message.Document
	logger.Info("uploading file", "file_name", doc.FileName, "user_id", update.Message.From.ID)

	if !strings.HasSuffix(strings.ToLower(doc.FileName), ".csv") {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "The uploaded file is not a CSV. Please upload a CSV file with one word per line.",
		})
		return
	}

	if doc.FileSize > maxUploadBytes {
		sendFileTooLarge(ctx, b, update.Message.Chat.ID)
		return
	}

	file, err := b.GetFile(ctx, &bot.GetFileParams{FileID: doc.FileID})
	if err != nil {
		logger.Error("failed to get file", "error", err)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "Failed to download the file. Please try again.",
		})
		return
	}

	fileURL := fmt.Sprintf("https://api.telegram.org/file/bot%s/%s", config.AppConfig.Telegram.Token, file.FilePath)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		logger.Error("failed to build file request", "error", err)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "Failed to download the file. Please try again.",
		})
		return
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		logger.Error("failed to open file", "error", err)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "Failed to open the file. Please try again.",
		})
		return
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxUploadBytes+1))
	if err != nil {
		logger.Error("failed to read CSV file", "error", err)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "Failed to read the CSV file. Please try again.",
		})
		return
	}

	if len(data) > maxUploadBytes {
		sendFileTooLarge(ctx, b, update.Message.Chat.ID)
		return
	}

	items, skipped, err := ParseWordsCSV(data)
	if err != nil {
		logger.Error("failed to parse CSV file", "error", err)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "Failed to read the CSV file. Please ensure it is in the correct format.",
		})
		return
	}
	if len(items) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "No words found to import.",
		})
		return
	}

	result, err := importer.Import(update.Message.From.ID, items)
	if err != nil {
		logger.Error("failed to import words", "user_id", update.Message.From.ID, "error", err)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "Failed to import your words. Please try again later.",
		})
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text: fmt.Sprintf("Imported %d new words, %d already known, %d repeated in the file, skipped %d rows.",
			result.Added, result.Known, result.Duplicates, skipped+result.Invalid),
	})
}

func sendFileTooLarge(ctx context.Context, b *bot.Bot, chatID int64) {
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   fmt.Sprintf("The file is too large. Please upload a CSV file up to %d KB.", maxUploadBytes>>10),
	})
}
