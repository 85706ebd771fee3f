package phrases

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/smith3v/tg-phrase-reminder/pkg/logger"
)

// Completer is the chat completion call the generator needs; *openai.Client
// satisfies it.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

const generatorSystemPrompt = "You help people learn English vocabulary. " +
	"Reply with a single JSON object {\"phrase\": \"...\", \"source\": \"...\"} and nothing else. " +
	"The phrase must be a real, well-known English sentence that contains the given word. " +
	"The source names where it comes from, for example \"Movie: Casablanca\" or \"Quote: Oscar Wilde\"."

var categoryHints = map[Category]string{
	Aphorisms: "an aphorism",
	Quotes:    "a quote by a well-known person",
	Movies:    "a line from a well-known movie",
	Songs:     "a line from a well-known song",
	Any:       "an aphorism, a famous quote, a movie line or a song lyric",
}

// Generator asks a language model for a phrase. Errors, timeouts and answers
// that do not contain the word are reported as not found.
type Generator struct {
	client  Completer
	timeout time.Duration
}

func NewGenerator(client Completer, timeout time.Duration) *Generator {
	return &Generator{client: client, timeout: timeout}
}

type generatedPhrase struct {
	Phrase string `json:"phrase"`
	Source string `json:"source"`
}

func (g *Generator) Find(ctx context.Context, word string, category Category) (Phrase, bool) {
	word = strings.TrimSpace(word)
	if word == "" {
		return Phrase{}, false
	}
	category = ParseCategory(string(category))

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	prompt := fmt.Sprintf("Word: %q. Give %s that contains this word.", word, categoryHints[category])
	answer, err := g.client.Complete(ctx, generatorSystemPrompt, prompt)
	if err != nil {
		logger.Warn("phrase generation failed", "word", word, "category", category, "error", err)
		return Phrase{}, false
	}

	generated, err := parseGenerated(answer)
	if err != nil {
		logger.Warn("phrase generation returned malformed answer", "word", word, "error", err)
		return Phrase{}, false
	}
	if !strings.Contains(strings.ToLower(generated.Phrase), strings.ToLower(word)) {
		logger.Debug("generated phrase does not contain the word", "word", word, "phrase", generated.Phrase)
		return Phrase{}, false
	}
	return Phrase{Text: generated.Phrase, Source: generated.Source, Category: category}, true
}

func parseGenerated(answer string) (generatedPhrase, error) {
	body := strings.TrimSpace(answer)
	body = strings.TrimPrefix(body, "```json")
	body = strings.TrimPrefix(body, "```")
	body = strings.TrimSuffix(body, "```")

	var out generatedPhrase
	if err := json.Unmarshal([]byte(strings.TrimSpace(body)), &out); err != nil {
		return generatedPhrase{}, err
	}
	out.Phrase = strings.TrimSpace(out.Phrase)
	out.Source = strings.TrimSpace(out.Source)
	if out.Phrase == "" || out.Source == "" {
		return generatedPhrase{}, fmt.Errorf("missing phrase or source")
	}
	return out, nil
}
