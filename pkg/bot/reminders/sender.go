package reminders

import (
	"context"

	"github.com/go-telegram/bot"
)

// Sender delivers one reminder message to a user.
type Sender interface {
	SendText(ctx context.Context, userID int64, text string) error
}

type TelegramSender struct {
	Bot *bot.Bot
}

func (s TelegramSender) SendText(ctx context.Context, userID int64, text string) error {
	_, err := s.Bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: userID,
		Text:   text,
	})
	return err
}
