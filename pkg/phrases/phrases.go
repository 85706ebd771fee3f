// Package phrases finds example phrases containing a word, from the built-in
// corpus or from a language model.
package phrases

import (
	"context"
	"fmt"
	"strings"
)

type Category string

const (
	Aphorisms Category = "Aphorisms"
	Quotes    Category = "Quotes"
	Movies    Category = "Movies"
	Songs     Category = "Songs"
	Any       Category = "Any"
)

// Categories lists the concrete pools; Any is their union.
var Categories = []Category{Aphorisms, Quotes, Movies, Songs}

// ParseCategory maps a stored category name to a Category. Empty and unknown
// names map to Any.
func ParseCategory(name string) Category {
	trimmed := strings.TrimSpace(name)
	for _, c := range Categories {
		if strings.EqualFold(trimmed, string(c)) {
			return c
		}
	}
	return Any
}

type Phrase struct {
	Text   string
	Source string
	// Category is the pool the phrase was taken from or generated for.
	Category Category
}

// Provider returns an example phrase for word, or false when there is none.
// Implementations never return errors; upstream failures mean "not found".
type Provider interface {
	Find(ctx context.Context, word string, category Category) (Phrase, bool)
}

type FallbackPolicy string

const (
	FallbackNone     FallbackPolicy = "none"
	FallbackCategory FallbackPolicy = "category"
	FallbackAny      FallbackPolicy = "any"
)

func ParseFallback(value string) (FallbackPolicy, error) {
	switch FallbackPolicy(strings.ToLower(strings.TrimSpace(value))) {
	case FallbackNone:
		return FallbackNone, nil
	case FallbackCategory, "":
		return FallbackCategory, nil
	case FallbackAny:
		return FallbackAny, nil
	default:
		return "", fmt.Errorf("unknown phrase fallback %q", value)
	}
}

// Chain asks each provider in turn and returns the first phrase found.
type Chain []Provider

func (c Chain) Find(ctx context.Context, word string, category Category) (Phrase, bool) {
	for _, p := range c {
		if ctx.Err() != nil {
			return Phrase{}, false
		}
		if phrase, ok := p.Find(ctx, word, category); ok {
			return phrase, true
		}
	}
	return Phrase{}, false
}

// NewProvider builds the lookup used by the bot. Without a generator the
// corpus answers alone. With one, a corpus match wins, then the generator,
// then the corpus fallback.
func NewProvider(corpus *Corpus, generator Provider) Provider {
	if generator == nil {
		return corpus
	}
	return Chain{corpus.MatchOnly(), generator, corpus.FallbackOnly()}
}
