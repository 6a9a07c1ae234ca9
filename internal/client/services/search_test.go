package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/idolcode/internal/client/models"
	"github.com/dmitrijs2005/idolcode/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSearcher records queries and answers after an optional delay.
type recordingSearcher struct {
	mu      sync.Mutex
	queries []string
	delay   func(q string) time.Duration
}

func (r *recordingSearcher) SearchCoders(ctx context.Context, query string, limit int) ([]models.Coder, error) {
	r.mu.Lock()
	r.queries = append(r.queries, query)
	r.mu.Unlock()

	if r.delay != nil {
		select {
		case <-time.After(r.delay(query)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return []models.Coder{{Handle: query + "_coder"}}, nil
}

func (r *recordingSearcher) seen() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.queries...)
}

var fastSearch = SearchConfig{Debounce: 30 * time.Millisecond, MinLength: 2, Limit: 5}

func collect() (func(SearchResult), func() []SearchResult) {
	var mu sync.Mutex
	var got []SearchResult
	return func(r SearchResult) {
			mu.Lock()
			got = append(got, r)
			mu.Unlock()
		}, func() []SearchResult {
			mu.Lock()
			defer mu.Unlock()
			return append([]SearchResult(nil), got...)
		}
}

func TestSearcher_ShortQueryClearsWithoutCall(t *testing.T) {
	rec := &recordingSearcher{}
	onResult, results := collect()
	s := NewSearcher(rec, fastSearch, testLogger, onResult)

	s.Type(" a ")
	s.Close()

	assert.Empty(t, rec.seen())
	require.Len(t, results(), 1)
	assert.True(t, results()[0].Cleared)
}

func TestSearcher_FastTypingSendsOnlyLastQuery(t *testing.T) {
	rec := &recordingSearcher{}
	onResult, results := collect()
	s := NewSearcher(rec, fastSearch, testLogger, onResult)

	for _, q := range []string{"t", "to", "tou", "tour"} {
		s.Type(q)
		time.Sleep(5 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return len(results()) == 1 }, time.Second, 5*time.Millisecond)
	s.Close()

	assert.Equal(t, []string{"tour"}, rec.seen())
	assert.Equal(t, "tour", results()[0].Query)
	assert.Equal(t, []models.Coder{{Handle: "tour_coder"}}, results()[0].Coders)
}

func TestSearcher_StaleResponseIsDropped(t *testing.T) {
	rec := &recordingSearcher{delay: func(q string) time.Duration {
		if q == "slow" {
			return 200 * time.Millisecond
		}
		return 0
	}}
	onResult, results := collect()
	s := NewSearcher(rec, fastSearch, testLogger, onResult)

	s.Type("slow")
	require.Eventually(t, func() bool { return len(rec.seen()) == 1 }, time.Second, 2*time.Millisecond)
	s.Type("fast")

	require.Eventually(t, func() bool { return len(results()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(250 * time.Millisecond)
	s.Close()

	got := results()
	require.Len(t, got, 1)
	assert.Equal(t, "fast", got[0].Query)
}

func TestSearcher_CloseCancelsPending(t *testing.T) {
	rec := &recordingSearcher{}
	onResult, results := collect()
	s := NewSearcher(rec, SearchConfig{Debounce: time.Hour, MinLength: 2, Limit: 5}, testLogger, onResult)

	s.Type("tourist")
	s.Close()
	s.Type("petr")

	assert.Empty(t, rec.seen())
	assert.Empty(t, results())
}

func TestSearcher_SearchOneShot(t *testing.T) {
	rec := &recordingSearcher{}
	s := NewSearcher(rec, fastSearch, testLogger, nil)
	defer s.Close()

	_, err := s.Search(context.Background(), "x")
	assert.ErrorIs(t, err, common.ErrValidation)

	coders, err := s.Search(context.Background(), "  petr ")
	require.NoError(t, err)
	assert.Equal(t, []string{"petr"}, rec.seen())
	assert.Len(t, coders, 1)
}
