// Package submit guarantees at-most-once semantics for finished lesson
// attempts. Correctness lives server-side in the idempotency key; the
// per-lesson in-flight guard here is a best-effort UX shield against
// double submits.
package submit

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/investipet/investipet/internal/api"
	"github.com/investipet/investipet/internal/quiz"
	"github.com/investipet/investipet/internal/store"
)

// ErrInFlight is returned when a submission for the same lesson is already
// awaiting its result. No network request is made.
var ErrInFlight = errors.New("submission already in flight for lesson")

// Submitter is the gateway slice the coordinator needs.
type Submitter interface {
	SubmitLesson(ctx context.Context, lessonID int, answers map[string]string, idempotencyKey string) (*api.SubmitResult, error)
}

// Invalidator marks cached state stale after a successful submission.
type Invalidator interface {
	InvalidateAfterSubmission()
}

// Coordinator submits finished attempts and reconciles the result into
// cached state.
type Coordinator struct {
	gateway Submitter
	cache   Invalidator
	history store.AttemptRepo // optional
	log     *zap.Logger

	mu       sync.Mutex
	inFlight map[int]bool
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithHistory records successful submissions in the local attempt log.
func WithHistory(repo store.AttemptRepo) Option {
	return func(c *Coordinator) { c.history = repo }
}

// WithLogger sets the structured logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Coordinator) { c.log = l }
}

// New creates a Coordinator submitting through gateway and invalidating
// cache on success.
func New(gateway Submitter, cache Invalidator, opts ...Option) *Coordinator {
	c := &Coordinator{
		gateway:  gateway,
		cache:    cache,
		log:      zap.NewNop(),
		inFlight: make(map[int]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit submits one attempt. A fresh idempotency key is generated per
// invocation and sent with the request, so even a retry that slips past
// the in-flight guard is applied at most once server-side. On success the
// lesson-list and profile caches are marked stale together; on failure
// nothing is invalidated and the caller's local progress stays intact.
func (c *Coordinator) Submit(ctx context.Context, att quiz.Attempt) (*api.SubmitResult, error) {
	c.mu.Lock()
	if c.inFlight[att.LessonID] {
		c.mu.Unlock()
		return nil, ErrInFlight
	}
	c.inFlight[att.LessonID] = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.inFlight, att.LessonID)
		c.mu.Unlock()
	}()

	key := uuid.NewString()
	result, err := c.gateway.SubmitLesson(ctx, att.LessonID, att.Answers, key)
	if err != nil {
		c.log.Warn("submission failed",
			zap.Int("lesson_id", att.LessonID),
			zap.String("idempotency_key", key),
			zap.Error(err))
		return nil, err
	}

	c.cache.InvalidateAfterSubmission()
	c.log.Info("lesson submitted",
		zap.Int("lesson_id", att.LessonID),
		zap.Float64("score", result.Score),
		zap.String("idempotency_key", key))

	if c.history != nil {
		ev := store.AttemptEvent{
			CreatedAt:      time.Now().UTC(),
			LessonID:       att.LessonID,
			LessonTitle:    att.LessonTitle,
			Score:          result.Score,
			RewardXP:       att.RewardXP,
			RewardCoins:    att.RewardCoins,
			IdempotencyKey: key,
		}
		// Record the event but don't fail the submission if logging fails.
		if err := c.history.Append(ctx, ev); err != nil {
			c.log.Warn("failed to record attempt event", zap.Error(err))
		}
	}

	return result, nil
}
