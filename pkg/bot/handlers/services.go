package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/smith3v/tg-phrase-reminder/pkg/db"
	"github.com/smith3v/tg-phrase-reminder/pkg/logger"
	"github.com/smith3v/tg-phrase-reminder/pkg/vocab"
)

// Armer (re)schedules reminders for one user; *reminders.Scheduler satisfies it.
type Armer interface {
	Arm(settings db.UserSettings) error
	Disarm(userID int64) error
}

type Services struct {
	Vocab     *vocab.Service
	Reminders Armer
}

var services Services

// Configure sets the services the handlers work with. It must be called
// before the bot starts polling.
func Configure(s Services) {
	services = s
}

func sendText(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}); err != nil {
		logger.Error("failed to send message", "chat_id", chatID, "error", err)
	}
}
