package game

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	mu      sync.Mutex
	game    *Game
	touched time.Time
}

// Store keeps one Game per key. Access to a game goes through With, which
// holds that game's lock, so two requests for the same taker never interleave.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
	ttl     time.Duration
	now     func() time.Time
}

type StoreOption func(*Store)

// StoreClock overrides the time source used for expiry.
func StoreClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore creates a store whose games expire after ttl without use.
// A zero ttl keeps games forever.
func NewStore(ttl time.Duration, opts ...StoreOption) *Store {
	s := &Store{
		entries: make(map[string]*entry),
		ttl:     ttl,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Put(key string, g *Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = &entry{game: g, touched: s.now()}
}

// With runs fn with exclusive access to the game stored under key.
func (s *Store) With(key string, fn func(*Game) error) error {
	s.mu.Lock()
	e, ok := s.entries[key]
	if ok && s.expired(e) {
		delete(s.entries, key)
		ok = false
	}
	if ok {
		e.touched = s.now()
	}
	s.mu.Unlock()
	if !ok {
		return ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.game)
}

func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// Sweep drops expired games and reports how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for key, e := range s.entries {
		if s.expired(e) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) expired(e *entry) bool {
	return s.ttl > 0 && s.now().Sub(e.touched) > s.ttl
}

// Janitor sweeps expired games every interval until ctx is done.
func (s *Store) Janitor(ctx context.Context, interval time.Duration, onSweep func(removed int)) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.Sweep(); removed > 0 && onSweep != nil {
				onSweep(removed)
			}
		}
	}
}
