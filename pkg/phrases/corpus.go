package phrases

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"
)

var builtin = map[Category][]Phrase{
	Aphorisms: {
		{Text: "Success usually comes to those who are too busy to be looking for it.", Source: "Aphorism"},
		{Text: "The harder you work for something, the greater you'll feel when you achieve it.", Source: "Aphorism"},
		{Text: "Dream big and dare to fail.", Source: "Aphorism"},
		{Text: "Abundance is not something we acquire, it is something we tune into.", Source: "Aphorism"},
		{Text: "Patience is bitter, but its fruit is sweet.", Source: "Aphorism"},
		{Text: "Knowledge speaks, but wisdom listens.", Source: "Aphorism"},
	},
	Quotes: {
		{Text: "The only limit to our realization of tomorrow is our doubts of today.", Source: "Quote: Franklin D. Roosevelt"},
		{Text: "In the middle of every difficulty lies opportunity.", Source: "Quote: Albert Einstein"},
		{Text: "Life is what happens when you're busy making other plans.", Source: "Quote: John Lennon"},
		{Text: "Be yourself; everyone else is already taken.", Source: "Quote: Oscar Wilde"},
		{Text: "Imagination is more important than knowledge.", Source: "Quote: Albert Einstein"},
		{Text: "Stay hungry, stay foolish.", Source: "Quote: Steve Jobs"},
	},
	Movies: {
		{Text: "I'm going to make him an offer he can't refuse.", Source: "Movie: The Godfather"},
		{Text: "May the Force be with you.", Source: "Movie: Star Wars"},
		{Text: "I'll be back.", Source: "Movie: The Terminator"},
		{Text: "Life is like a box of chocolates. You never know what you're gonna get.", Source: "Movie: Forrest Gump"},
		{Text: "Houston, we have a problem.", Source: "Movie: Apollo 13"},
		{Text: "Here's looking at you, kid.", Source: "Movie: Casablanca"},
	},
	Songs: {
		{Text: "We don't need no education.", Source: "Song: Pink Floyd - Another Brick in the Wall"},
		{Text: "I still haven't found what I'm looking for.", Source: "Song: U2 - I Still Haven't Found What I'm Looking For"},
		{Text: "Is this the real life? Is this just fantasy?", Source: "Song: Queen - Bohemian Rhapsody"},
		{Text: "All you need is love.", Source: "Song: The Beatles - All You Need Is Love"},
		{Text: "Don't stop believin', hold on to that feelin'.", Source: "Song: Journey - Don't Stop Believin'"},
		{Text: "Here comes the sun, and I say it's all right.", Source: "Song: The Beatles - Here Comes the Sun"},
	},
}

// Corpus serves phrases from fixed per-category pools. The fallback policy
// decides what Find returns when no phrase contains the word.
type Corpus struct {
	pools    map[Category][]Phrase
	fallback FallbackPolicy

	mu   sync.Mutex
	rand *rand.Rand
}

func NewCorpus(fallback FallbackPolicy) *Corpus {
	return NewCorpusFrom(builtin, fallback)
}

// NewCorpusFrom builds a corpus over custom pools. The Any pool is always the
// union of the given pools in Categories order.
func NewCorpusFrom(pools map[Category][]Phrase, fallback FallbackPolicy) *Corpus {
	c := &Corpus{
		pools:    make(map[Category][]Phrase, len(Categories)+1),
		fallback: fallback,
		rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	var all []Phrase
	for _, category := range Categories {
		pool := make([]Phrase, 0, len(pools[category]))
		for _, p := range pools[category] {
			p.Category = category
			pool = append(pool, p)
		}
		c.pools[category] = pool
		all = append(all, pool...)
	}
	c.pools[Any] = all
	return c
}

func (c *Corpus) Find(ctx context.Context, word string, category Category) (Phrase, bool) {
	if phrase, ok := c.Match(word, category); ok {
		return phrase, true
	}
	return c.Fallback(category)
}

// Match returns the first phrase of the category pool containing word,
// compared case-insensitively.
func (c *Corpus) Match(word string, category Category) (Phrase, bool) {
	needle := strings.ToLower(strings.TrimSpace(word))
	if needle == "" {
		return Phrase{}, false
	}
	for _, p := range c.pool(category) {
		if strings.Contains(strings.ToLower(p.Text), needle) {
			return p, true
		}
	}
	return Phrase{}, false
}

// Fallback applies the configured policy without looking at the word.
func (c *Corpus) Fallback(category Category) (Phrase, bool) {
	switch c.fallback {
	case FallbackCategory:
		return c.random(c.pool(category))
	case FallbackAny:
		return c.random(c.pools[Any])
	default:
		return Phrase{}, false
	}
}

// MatchOnly exposes the corpus as a provider that never falls back.
func (c *Corpus) MatchOnly() Provider {
	return matchOnly{c}
}

// FallbackOnly exposes the corpus as a provider that only applies the fallback.
func (c *Corpus) FallbackOnly() Provider {
	return fallbackOnly{c}
}

func (c *Corpus) pool(category Category) []Phrase {
	if pool, ok := c.pools[ParseCategory(string(category))]; ok {
		return pool
	}
	return c.pools[Any]
}

func (c *Corpus) random(pool []Phrase) (Phrase, bool) {
	if len(pool) == 0 {
		return Phrase{}, false
	}
	c.mu.Lock()
	idx := c.rand.Intn(len(pool))
	c.mu.Unlock()
	return pool[idx], true
}

type matchOnly struct{ c *Corpus }

func (m matchOnly) Find(_ context.Context, word string, category Category) (Phrase, bool) {
	return m.c.Match(word, category)
}

type fallbackOnly struct{ c *Corpus }

func (f fallbackOnly) Find(_ context.Context, _ string, category Category) (Phrase, bool) {
	return f.c.Fallback(category)
}
