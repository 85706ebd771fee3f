package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/smith3v/tg-phrase-reminder/pkg/logger"
	"github.com/smith3v/tg-phrase-reminder/pkg/vocab"
)

// maxMessageLen stays below Telegram's 4096 character limit.
const maxMessageLen = 4000

func HandleWords(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.Message == nil || update.Message.From == nil || update.Message.Chat.ID == 0 {
		logger.Error("invalid update in HandleWords")
		return
	}
	chatID := update.Message.Chat.ID

	entries, err := services.Vocab.List(update.Message.From.ID)
	if err != nil {
		logger.Error("failed to list words", "user_id", update.Message.From.ID, "error", err)
		sendText(ctx, b, chatID, "Failed to load your words. Please try again later.")
		return
	}
	if len(entries) == 0 {
		sendText(ctx, b, chatID, "You have no words yet. Send me a word to add it.")
		return
	}

	lines := make([]string, 0, len(entries)+1)
	lines = append(lines, fmt.Sprintf("Your words (%d):", len(entries)))
	for _, e := range entries {
		lines = append(lines, e.Word)
	}
	for _, chunk := range splitMessage(lines, maxMessageLen) {
		sendText(ctx, b, chatID, chunk)
	}
}

// splitMessage joins lines with newlines into chunks no longer than limit.
// A single line longer than limit gets its own chunk.
func splitMessage(lines []string, limit int) []string {
	var chunks []string
	var current strings.Builder
	for _, line := range lines {
		if current.Len() > 0 && current.Len()+1+len(line) > limit {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte('\n')
		}
		current.WriteString(line)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}

func HandleDelete(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.Message == nil || update.Message.From == nil || update.Message.Chat.ID == 0 {
		logger.Error("invalid update in HandleDelete")
		return
	}
	chatID := update.Message.Chat.ID

	var arg string
	if parts := strings.SplitN(strings.TrimSpace(update.Message.Text), " ", 2); len(parts) == 2 {
		arg = strings.TrimSpace(parts[1])
	}
	if arg == "" {
		sendText(ctx, b, chatID, "Usage: /delete <word>")
		return
	}

	word, err := services.Vocab.Delete(update.Message.From.ID, arg)
	switch {
	case errors.Is(err, vocab.ErrNotFound):
		sendText(ctx, b, chatID, fmt.Sprintf("Word %q is not in your list.", word))
	case errors.Is(err, vocab.ErrEmptyWord), errors.Is(err, vocab.ErrWordTooLong):
		sendText(ctx, b, chatID, "Usage: /delete <word>")
	case err != nil:
		logger.Error("failed to delete word", "user_id", update.Message.From.ID, "error", err)
		sendText(ctx, b, chatID, "Failed to delete the word. Please try again later.")
	default:
		sendText(ctx, b, chatID, fmt.Sprintf("Word %q removed.", word))
	}
}

func HandleClear(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.Message == nil || update.Message.From == nil || update.Message.Chat.ID == 0 {
		logger.Error("invalid update in HandleClear")
		return
	}

	removed, err := services.Vocab.Clear(update.Message.From.ID)
	if err != nil {
		logger.Error("failed to clear words", "user_id", update.Message.From.ID, "error", err)
		sendText(ctx, b, update.Message.Chat.ID, "Failed to remove your words. Please try again later.")
		return
	}
	sendText(ctx, b, update.Message.Chat.ID, fmt.Sprintf("Removed %d words.", removed))
}
