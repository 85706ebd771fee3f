package vocab

import (
	"context"
	"fmt"
	"strings"

	"github.com/smith3v/tg-phrase-reminder/pkg/db"
	"github.com/smith3v/tg-phrase-reminder/pkg/phrases"
	"github.com/smith3v/tg-phrase-reminder/pkg/translate"
)

// NoTranslation is shown on the translation line when the user turned word
// translation off.
const NoTranslation = "no translation"

// Card is everything shown for one word, resolved against the user's settings.
type Card struct {
	Word string
	// Translation is set only when word translation is enabled; it may be
	// translate.Unavailable.
	Translation       string
	TranslateWord     bool
	Example           phrases.Phrase
	HasExample        bool
	TranslatePhrase   bool
	PhraseTranslation string
	// Category is the pool the example was requested from.
	Category phrases.Category
}

// compose looks everything up fresh.
func (s *Service) compose(ctx context.Context, settings db.UserSettings, word string) Card {
	return s.CardFor(ctx, settings, db.WordEntry{Word: word})
}

// CardFor builds the card for a stored entry. Cached fields are reused when
// they still fit the settings; anything missing is looked up again and is
// not written back.
func (s *Service) CardFor(ctx context.Context, settings db.UserSettings, entry db.WordEntry) Card {
	category := phrases.ParseCategory(settings.PhraseCategory)
	card := Card{
		Word:            entry.Word,
		TranslateWord:   settings.TranslateWord,
		TranslatePhrase: settings.TranslatePhrase,
		Category:        category,
	}

	if settings.TranslateWord {
		if entry.Translation != "" {
			card.Translation = entry.Translation
		} else {
			card.Translation = s.translator.Translate(ctx, entry.Word)
		}
	}

	cachedExample := entry.ExamplePhrase != "" && entry.ExampleCategory == string(category)
	if cachedExample {
		card.Example = phrases.Phrase{Text: entry.ExamplePhrase, Source: entry.ExampleSource, Category: category}
		card.HasExample = true
	} else {
		card.Example, card.HasExample = s.phrases.Find(ctx, entry.Word, category)
	}

	if settings.TranslatePhrase && card.HasExample {
		if cachedExample && entry.PhraseTranslation != "" {
			card.PhraseTranslation = entry.PhraseTranslation
		} else {
			card.PhraseTranslation = s.translator.Translate(ctx, card.Example.Text)
		}
	}
	return card
}

// entry converts a freshly composed card into a row for the word store.
// Unavailable translations are left empty so that a later dispatch retries.
func (c Card) entry(userID int64) db.WordEntry {
	e := db.WordEntry{UserID: userID, Word: c.Word}
	if c.Translation != translate.Unavailable {
		e.Translation = c.Translation
	}
	if c.HasExample {
		e.ExamplePhrase = c.Example.Text
		e.ExampleSource = c.Example.Source
		e.ExampleCategory = string(c.Category)
		if c.PhraseTranslation != translate.Unavailable {
			e.PhraseTranslation = c.PhraseTranslation
		}
	}
	return e
}

func (c Card) translationLine() string {
	if !c.TranslateWord {
		return NoTranslation
	}
	if c.Translation == "" {
		return translate.Unavailable
	}
	return c.Translation
}

func (c Card) writeExample(b *strings.Builder) {
	if !c.HasExample {
		b.WriteString("No example found for this word.")
		return
	}
	fmt.Fprintf(b, "📘 %s\n", c.Example.Text)
	if c.TranslatePhrase && c.PhraseTranslation != "" {
		fmt.Fprintf(b, "📗 %s\n", c.PhraseTranslation)
	}
	fmt.Fprintf(b, "Source: %s", c.Example.Source)
}

// AddedText is the confirmation sent after a word is stored.
func (c Card) AddedText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Word %q (translation: %s) added ✅\n\n", c.Word, c.translationLine())
	c.writeExample(&b)
	return b.String()
}

// ReminderText is the message sent for one word of a reminder.
func (c Card) ReminderText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔁 %s (translation: %s)\n", c.Word, c.translationLine())
	c.writeExample(&b)
	return b.String()
}

func AlreadyKnownText(word string) string {
	return fmt.Sprintf("Word %q is already known, nothing changed.", word)
}
