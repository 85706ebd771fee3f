// Package translate turns words and phrases into the user's language. Every
// provider fails closed: on any error the caller gets Unavailable.
package translate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/smith3v/tg-phrase-reminder/pkg/logger"
)

// Unavailable is returned in place of a translation that could not be made.
const Unavailable = "translation unavailable"

type Provider interface {
	Translate(ctx context.Context, text string) string
}

// Completer is the chat completion call the translator needs; *openai.Client
// satisfies it.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// LLM translates through a chat completion model with a per-call timeout.
type LLM struct {
	client  Completer
	target  string
	timeout time.Duration
}

func NewLLM(client Completer, targetLanguage string, timeout time.Duration) *LLM {
	if strings.TrimSpace(targetLanguage) == "" {
		targetLanguage = "Russian"
	}
	return &LLM{client: client, target: targetLanguage, timeout: timeout}
}

func (t *LLM) Translate(ctx context.Context, text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return Unavailable
	}
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	system := fmt.Sprintf("Translate the user's English text into %s. Reply with the translation only.", t.target)
	out, err := t.client.Complete(ctx, system, text)
	if err != nil {
		logger.Warn("translation failed", "text", text, "error", err)
		return Unavailable
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return Unavailable
	}
	return out
}

// Disabled is used when no translation backend is configured.
type Disabled struct{}

func (Disabled) Translate(context.Context, string) string {
	return Unavailable
}
