package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/idolcode/internal/client/models"
	"github.com/dmitrijs2005/idolcode/internal/common"
	"github.com/dmitrijs2005/idolcode/internal/logging"
)

// CoderSearcher is the part of the backend used for coder lookups.
type CoderSearcher interface {
	SearchCoders(ctx context.Context, query string, limit int) ([]models.Coder, error)
}

// SearchConfig controls coder search.
type SearchConfig struct {
	Debounce  time.Duration
	MinLength int
	Limit     int
}

// SearchResult is delivered for the latest query only. Cleared is set when
// the query was too short and suggestions should simply be hidden.
type SearchResult struct {
	Query   string
	Coders  []models.Coder
	Err     error
	Cleared bool
}

// Searcher implements search-as-you-type. Each keystroke restarts the
// debounce window; only the query standing when the window closes is sent,
// and a response that arrives after a newer keystroke is dropped.
type Searcher struct {
	client   CoderSearcher
	cfg      SearchConfig
	logger   logging.Logger
	onResult func(SearchResult)

	mu     sync.Mutex
	seq    uint64
	timer  *time.Timer
	cancel context.CancelFunc
	closed bool
	wg     sync.WaitGroup
}

// NewSearcher returns a Searcher delivering results to onResult. onResult
// runs on a background goroutine.
func NewSearcher(c CoderSearcher, cfg SearchConfig, logger logging.Logger, onResult func(SearchResult)) *Searcher {
	if cfg.MinLength < 1 {
		cfg.MinLength = 1
	}
	return &Searcher{client: c, cfg: cfg, logger: logger, onResult: onResult}
}

// Search runs one lookup immediately, without debouncing. Queries shorter
// than the minimum return a validation error and make no request.
func (s *Searcher) Search(ctx context.Context, query string) ([]models.Coder, error) {
	q := strings.TrimSpace(query)
	if len([]rune(q)) < s.cfg.MinLength {
		return nil, common.Validationf("Type at least %d characters to search", s.cfg.MinLength)
	}
	return s.client.SearchCoders(ctx, q, s.cfg.Limit)
}

// Type records the current contents of the search box.
func (s *Searcher) Type(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.seq++
	seq := s.seq
	s.stopPendingLocked()

	q := strings.TrimSpace(query)
	if len([]rune(q)) < s.cfg.MinLength {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.deliver(seq, SearchResult{Query: q, Cleared: true})
		}()
		return
	}

	s.wg.Add(1)
	s.timer = time.AfterFunc(s.cfg.Debounce, func() { s.fire(seq, q) })
}

// stopPendingLocked drops the scheduled lookup and aborts the one in flight.
func (s *Searcher) stopPendingLocked() {
	if s.timer != nil {
		if s.timer.Stop() {
			s.wg.Done()
		}
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Searcher) fire(seq uint64, q string) {
	defer s.wg.Done()

	s.mu.Lock()
	if seq != s.seq || s.closed {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.mu.Unlock()
	defer cancel()

	coders, err := s.client.SearchCoders(ctx, q, s.cfg.Limit)
	if err != nil {
		s.logger.Debug(ctx, "coder search failed", "query", q, "error", err)
	}
	s.deliver(seq, SearchResult{Query: q, Coders: coders, Err: err})
}

func (s *Searcher) deliver(seq uint64, res SearchResult) {
	s.mu.Lock()
	stale := seq != s.seq || s.closed
	s.mu.Unlock()
	if stale || s.onResult == nil {
		return
	}
	s.onResult(res)
}

// Close cancels pending work and waits for background goroutines.
func (s *Searcher) Close() {
	s.mu.Lock()
	s.closed = true
	s.stopPendingLocked()
	s.mu.Unlock()
	s.wg.Wait()
}
