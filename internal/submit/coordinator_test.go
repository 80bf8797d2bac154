package submit

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/investipet/investipet/internal/api"
	"github.com/investipet/investipet/internal/quiz"
	"github.com/investipet/investipet/internal/store"
)

type fakeGateway struct {
	mu    sync.Mutex
	calls int
	keys  []string
	delay time.Duration
	err   error
}

func (g *fakeGateway) SubmitLesson(ctx context.Context, lessonID int, answers map[string]string, key string) (*api.SubmitResult, error) {
	g.mu.Lock()
	g.calls++
	g.keys = append(g.keys, key)
	g.mu.Unlock()
	time.Sleep(g.delay)
	if g.err != nil {
		return nil, g.err
	}
	return &api.SubmitResult{Completed: true, Score: 100}, nil
}

type fakeCache struct {
	invalidations atomic.Int32
}

func (c *fakeCache) InvalidateAfterSubmission() { c.invalidations.Add(1) }

type memHistory struct {
	mu     sync.Mutex
	events []store.AttemptEvent
}

func (h *memHistory) Append(ctx context.Context, ev store.AttemptEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, ev)
	return nil
}

func (h *memHistory) Recent(ctx context.Context, limit int) ([]store.AttemptEvent, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.events, nil
}

func attemptFixture() quiz.Attempt {
	return quiz.Attempt{
		LessonID:    7,
		LessonTitle: "Budgeting Basics",
		RewardXP:    40,
		RewardCoins: 50,
		Answers:     map[string]string{"q1": "A", "q2": "B"},
	}
}

func TestSubmit_SuccessInvalidatesAndRecords(t *testing.T) {
	gw := &fakeGateway{}
	ca := &fakeCache{}
	hist := &memHistory{}
	c := New(gw, ca, WithHistory(hist))

	res, err := c.Submit(context.Background(), attemptFixture())
	require.NoError(t, err)
	assert.Equal(t, float64(100), res.Score)
	assert.Equal(t, int32(1), ca.invalidations.Load(), "caches invalidated together on success")

	require.Len(t, hist.events, 1)
	ev := hist.events[0]
	assert.Equal(t, 7, ev.LessonID)
	assert.Equal(t, float64(100), ev.Score)
	assert.Equal(t, gw.keys[0], ev.IdempotencyKey)
}

func TestSubmit_FreshKeyPerInvocation(t *testing.T) {
	gw := &fakeGateway{}
	c := New(gw, &fakeCache{})

	_, err := c.Submit(context.Background(), attemptFixture())
	require.NoError(t, err)
	_, err = c.Submit(context.Background(), attemptFixture())
	require.NoError(t, err)

	require.Len(t, gw.keys, 2)
	assert.NotEmpty(t, gw.keys[0])
	assert.NotEqual(t, gw.keys[0], gw.keys[1])
}

func TestSubmit_SecondCallWhileInFlightRejectedLocally(t *testing.T) {
	gw := &fakeGateway{delay: 50 * time.Millisecond}
	c := New(gw, &fakeCache{})

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	wg.Add(2)
	for range 2 {
		go func() {
			defer wg.Done()
			_, err := c.Submit(context.Background(), attemptFixture())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var inFlight, ok int
	for err := range errs {
		switch err {
		case nil:
			ok++
		case ErrInFlight:
			inFlight++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, inFlight)
	assert.Equal(t, 1, gw.calls, "exactly one network call")
}

func TestSubmit_DifferentLessonsNotSerialized(t *testing.T) {
	gw := &fakeGateway{delay: 30 * time.Millisecond}
	c := New(gw, &fakeCache{})

	other := attemptFixture()
	other.LessonID = 8

	var wg sync.WaitGroup
	wg.Add(2)
	var err1, err2 error
	go func() { defer wg.Done(); _, err1 = c.Submit(context.Background(), attemptFixture()) }()
	go func() { defer wg.Done(); _, err2 = c.Submit(context.Background(), other) }()
	wg.Wait()

	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Equal(t, 2, gw.calls, "the guard is per lesson")
}

func TestSubmit_FailureClearsGuardAndSkipsInvalidation(t *testing.T) {
	gw := &fakeGateway{err: &api.HTTPError{StatusCode: 500, Message: "boom"}}
	ca := &fakeCache{}
	hist := &memHistory{}
	c := New(gw, ca, WithHistory(hist))

	_, err := c.Submit(context.Background(), attemptFixture())
	require.Error(t, err)
	assert.Equal(t, int32(0), ca.invalidations.Load(), "no invalidation on failure")
	assert.Empty(t, hist.events, "no history on failure")

	// The guard is cleared: a retry goes out again.
	gw.err = nil
	_, err = c.Submit(context.Background(), attemptFixture())
	assert.NoError(t, err)
	assert.Equal(t, 2, gw.calls)
}
