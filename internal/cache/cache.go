// Package cache is the process-scoped cached view of "me" and the paged
// lesson list. Entries populate lazily, concurrent readers of one key share
// a single in-flight fetch, and invalidation is explicit: lesson submission
// marks lessons and profile stale together, trade execution marks the
// profile stale, logout clears everything.
package cache

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/investipet/investipet/internal/api"
)

// Fetcher loads authoritative state from the API.
type Fetcher interface {
	Me(ctx context.Context) (*api.ProfileSnapshot, error)
	ListLessons(ctx context.Context, page, pageSize int) (*api.LessonPage, error)
}

// Store caches query results for the lifetime of the process. Never
// persisted; a fresh Store per test gives full isolation.
type Store struct {
	fetcher  Fetcher
	pageSize int
	log      *zap.Logger

	mu      sync.RWMutex
	me      *api.ProfileSnapshot
	lessons map[int]*api.LessonPage

	group singleflight.Group
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the structured logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = l }
}

// New creates an empty Store fetching through f with the given lesson page
// size.
func New(f Fetcher, pageSize int, opts ...Option) *Store {
	s := &Store{
		fetcher:  f,
		pageSize: pageSize,
		log:      zap.NewNop(),
		lessons:  make(map[int]*api.LessonPage),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Me returns the cached profile snapshot, fetching it if stale. Concurrent
// callers share one fetch.
func (s *Store) Me(ctx context.Context) (*api.ProfileSnapshot, error) {
	s.mu.RLock()
	if me := s.me; me != nil {
		s.mu.RUnlock()
		return me, nil
	}
	s.mu.RUnlock()

	v, err, _ := s.group.Do("me", func() (any, error) {
		s.mu.RLock()
		if me := s.me; me != nil {
			s.mu.RUnlock()
			return me, nil
		}
		s.mu.RUnlock()

		me, err := s.fetcher.Me(ctx)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.me = me
		s.mu.Unlock()
		s.log.Debug("profile cache filled", zap.Int("xp_total", me.XPTotal))
		return me, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*api.ProfileSnapshot), nil
}

// Lessons returns the cached lesson page, fetching it if stale. Concurrent
// callers for the same page share one fetch.
func (s *Store) Lessons(ctx context.Context, page int) (*api.LessonPage, error) {
	s.mu.RLock()
	if p := s.lessons[page]; p != nil {
		s.mu.RUnlock()
		return p, nil
	}
	s.mu.RUnlock()

	key := fmt.Sprintf("lessons:%d", page)
	v, err, _ := s.group.Do(key, func() (any, error) {
		s.mu.RLock()
		if p := s.lessons[page]; p != nil {
			s.mu.RUnlock()
			return p, nil
		}
		s.mu.RUnlock()

		p, err := s.fetcher.ListLessons(ctx, page, s.pageSize)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.lessons[page] = p
		s.mu.Unlock()
		s.log.Debug("lesson cache filled", zap.Int("page", page), zap.Int("items", len(p.Items)))
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*api.LessonPage), nil
}

// InvalidateAfterSubmission marks the lesson list and the profile stale in
// one step, so the UI never reads fresh completion flags next to stale
// XP-derived level math (or the reverse).
func (s *Store) InvalidateAfterSubmission() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.me = nil
	s.lessons = make(map[int]*api.LessonPage)
}

// InvalidateAfterTrade marks the profile stale after a trade execution.
func (s *Store) InvalidateAfterTrade() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.me = nil
}

// Clear drops every cached entry. Called on logout.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.me = nil
	s.lessons = make(map[int]*api.LessonPage)
}
