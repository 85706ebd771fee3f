package phrases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	assert.Equal(t, Movies, ParseCategory("Movies"))
	assert.Equal(t, Songs, ParseCategory(" songs "))
	assert.Equal(t, Any, ParseCategory(""))
	assert.Equal(t, Any, ParseCategory("Poetry"))
	assert.Equal(t, Any, ParseCategory("Any"))
}

func TestParseFallback(t *testing.T) {
	for in, want := range map[string]FallbackPolicy{
		"none":     FallbackNone,
		"Category": FallbackCategory,
		"":         FallbackCategory,
		"ANY":      FallbackAny,
	} {
		got, err := ParseFallback(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFallback("random")
	require.Error(t, err)
}

func TestCorpusMatchIsCaseInsensitive(t *testing.T) {
	corpus := NewCorpus(FallbackNone)

	phrase, ok := corpus.Find(context.Background(), "FORCE", Movies)

	require.True(t, ok)
	assert.Equal(t, "May the Force be with you.", phrase.Text)
	assert.Equal(t, "Movie: Star Wars", phrase.Source)
	assert.Equal(t, Movies, phrase.Category)
}

func TestCorpusMatchStaysWithinCategory(t *testing.T) {
	corpus := NewCorpus(FallbackNone)

	_, ok := corpus.Find(context.Background(), "force", Songs)

	assert.False(t, ok)
}

func TestCorpusUnknownCategoryUsesAnyPool(t *testing.T) {
	corpus := NewCorpus(FallbackNone)

	for _, category := range []Category{"", "Poetry"} {
		phrase, ok := corpus.Find(context.Background(), "force", category)
		require.True(t, ok, "category %q", category)
		assert.Equal(t, Movies, phrase.Category)
	}
}

func TestCorpusFallbackPolicies(t *testing.T) {
	pools := map[Category][]Phrase{
		Quotes: {{Text: "Quote one.", Source: "Quote: A"}},
		Songs:  {{Text: "Song one.", Source: "Song: B"}},
	}
	ctx := context.Background()

	_, ok := NewCorpusFrom(pools, FallbackNone).Find(ctx, "zephyr", Songs)
	assert.False(t, ok)

	phrase, ok := NewCorpusFrom(pools, FallbackCategory).Find(ctx, "zephyr", Songs)
	require.True(t, ok)
	assert.Equal(t, Songs, phrase.Category)

	_, ok = NewCorpusFrom(pools, FallbackCategory).Find(ctx, "zephyr", Movies)
	assert.False(t, ok, "empty category pool has nothing to fall back to")

	phrase, ok = NewCorpusFrom(pools, FallbackAny).Find(ctx, "zephyr", Movies)
	require.True(t, ok)
	assert.Contains(t, []Category{Quotes, Songs}, phrase.Category)
}

func TestCorpusEmptyWordDoesNotMatch(t *testing.T) {
	_, ok := NewCorpus(FallbackNone).Match("  ", Any)
	assert.False(t, ok)
}

type stubCompleter struct {
	answer string
	err    error
	delay  time.Duration
	calls  int
}

func (s *stubCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	s.calls++
	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(s.delay):
		}
	}
	return s.answer, s.err
}

func TestGeneratorReturnsPhraseContainingWord(t *testing.T) {
	client := &stubCompleter{answer: "```json\n{\"phrase\": \"A zephyr whispered through the trees.\", \"source\": \"Song: Example\"}\n```"}

	phrase, ok := NewGenerator(client, time.Second).Find(context.Background(), "zephyr", Songs)

	require.True(t, ok)
	assert.Equal(t, "A zephyr whispered through the trees.", phrase.Text)
	assert.Equal(t, "Song: Example", phrase.Source)
	assert.Equal(t, Songs, phrase.Category)
}

func TestGeneratorFailuresAreNotFound(t *testing.T) {
	cases := map[string]*stubCompleter{
		"error":          {err: errors.New("boom")},
		"malformed":      {answer: "not json"},
		"missing source": {answer: `{"phrase": "zephyr"}`},
		"word missing":   {answer: `{"phrase": "A gentle breeze.", "source": "Song: X"}`},
		"timeout":        {answer: `{"phrase": "zephyr", "source": "X"}`, delay: time.Second},
	}
	for name, client := range cases {
		t.Run(name, func(t *testing.T) {
			_, ok := NewGenerator(client, 20*time.Millisecond).Find(context.Background(), "zephyr", Songs)
			assert.False(t, ok)
		})
	}
}

type fixedProvider struct {
	phrase Phrase
	ok     bool
	calls  int
}

func (f *fixedProvider) Find(context.Context, string, Category) (Phrase, bool) {
	f.calls++
	return f.phrase, f.ok
}

func TestNewProviderPrefersCorpusMatch(t *testing.T) {
	generator := &fixedProvider{phrase: Phrase{Text: "generated force"}, ok: true}
	provider := NewProvider(NewCorpus(FallbackCategory), generator)

	phrase, ok := provider.Find(context.Background(), "force", Movies)

	require.True(t, ok)
	assert.Equal(t, "Movie: Star Wars", phrase.Source)
	assert.Zero(t, generator.calls)
}

func TestNewProviderAsksGeneratorBeforeFallback(t *testing.T) {
	generator := &fixedProvider{phrase: Phrase{Text: "A zephyr sang.", Source: "Song: Gen"}, ok: true}
	provider := NewProvider(NewCorpus(FallbackCategory), generator)

	phrase, ok := provider.Find(context.Background(), "zephyr", Songs)

	require.True(t, ok)
	assert.Equal(t, "Song: Gen", phrase.Source)
	assert.Equal(t, 1, generator.calls)
}

func TestNewProviderFallsBackAfterGenerator(t *testing.T) {
	generator := &fixedProvider{}
	provider := NewProvider(NewCorpus(FallbackCategory), generator)

	phrase, ok := provider.Find(context.Background(), "zephyr", Songs)

	require.True(t, ok)
	assert.Equal(t, Songs, phrase.Category)
	assert.Equal(t, 1, generator.calls)
}

func TestNewProviderWithoutGeneratorIsCorpus(t *testing.T) {
	corpus := NewCorpus(FallbackNone)

	provider := NewProvider(corpus, nil)

	assert.Same(t, corpus, provider)
}
