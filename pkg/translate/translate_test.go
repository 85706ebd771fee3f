package translate

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCompleter struct {
	answer string
	err    error
	delay  time.Duration
	system string
}

func (s *stubCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	s.system = system
	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(s.delay):
		}
	}
	return s.answer, s.err
}

func TestLLMTranslate(t *testing.T) {
	client := &stubCompleter{answer: " изобилие\n"}

	got := NewLLM(client, "Russian", time.Second).Translate(context.Background(), "abundance")

	assert.Equal(t, "изобилие", got)
	assert.Contains(t, client.system, "Russian")
}

func TestLLMFailsClosed(t *testing.T) {
	cases := map[string]*stubCompleter{
		"error":   {err: errors.New("upstream down")},
		"empty":   {answer: "   "},
		"timeout": {answer: "late", delay: time.Second},
	}
	for name, client := range cases {
		t.Run(name, func(t *testing.T) {
			got := NewLLM(client, "Russian", 20*time.Millisecond).Translate(context.Background(), "abundance")
			assert.Equal(t, Unavailable, got)
		})
	}
}

func TestLLMEmptyTextIsUnavailable(t *testing.T) {
	client := &stubCompleter{answer: "x"}

	assert.Equal(t, Unavailable, NewLLM(client, "", time.Second).Translate(context.Background(), " "))
}

func TestDisabled(t *testing.T) {
	assert.Equal(t, Unavailable, Disabled{}.Translate(context.Background(), "word"))
}

type countingProvider struct {
	mu     sync.Mutex
	calls  int
	answer string
}

func (p *countingProvider) Translate(context.Context, string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return p.answer
}

func TestCacheMemoizesSuccess(t *testing.T) {
	next := &countingProvider{answer: "изобилие"}
	cache, err := NewCache(next, 100, time.Hour)
	require.NoError(t, err)
	defer cache.Close()

	assert.Equal(t, "изобилие", cache.Translate(context.Background(), "abundance"))
	cache.Wait()
	assert.Equal(t, "изобилие", cache.Translate(context.Background(), "abundance"))

	assert.Equal(t, 1, next.calls)
}

func TestCacheNeverStoresUnavailable(t *testing.T) {
	next := &countingProvider{answer: Unavailable}
	cache, err := NewCache(next, 100, time.Hour)
	require.NoError(t, err)
	defer cache.Close()

	assert.Equal(t, Unavailable, cache.Translate(context.Background(), "abundance"))
	cache.Wait()
	assert.Equal(t, Unavailable, cache.Translate(context.Background(), "abundance"))

	assert.Equal(t, 2, next.calls)
}
