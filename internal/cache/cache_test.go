package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/investipet/investipet/internal/api"
)

// slowFetcher counts fetches and can hold them open to force overlap.
type slowFetcher struct {
	meCalls     atomic.Int32
	lessonCalls atomic.Int32
	delay       time.Duration
}

func (f *slowFetcher) Me(ctx context.Context) (*api.ProfileSnapshot, error) {
	f.meCalls.Add(1)
	time.Sleep(f.delay)
	return &api.ProfileSnapshot{XPTotal: 120}, nil
}

func (f *slowFetcher) ListLessons(ctx context.Context, page, pageSize int) (*api.LessonPage, error) {
	f.lessonCalls.Add(1)
	time.Sleep(f.delay)
	return &api.LessonPage{Page: page, PageSize: pageSize, TotalPages: 3}, nil
}

func TestMe_LazyThenCached(t *testing.T) {
	f := &slowFetcher{}
	s := New(f, 6)

	me, err := s.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 120, me.XPTotal)

	_, err = s.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), f.meCalls.Load(), "second read served from cache")
}

func TestMe_ConcurrentReadersShareOneFetch(t *testing.T) {
	f := &slowFetcher{delay: 20 * time.Millisecond}
	s := New(f, 6)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Me(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), f.meCalls.Load(), "overlapping reads deduplicated")
}

func TestLessons_CachedPerPage(t *testing.T) {
	f := &slowFetcher{}
	s := New(f, 6)

	p1, err := s.Lessons(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, p1.Page)

	_, err = s.Lessons(context.Background(), 2)
	require.NoError(t, err)
	_, err = s.Lessons(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, int32(2), f.lessonCalls.Load(), "one fetch per distinct page")
}

func TestInvalidateAfterSubmission_BothKeysStaleTogether(t *testing.T) {
	f := &slowFetcher{}
	s := New(f, 6)
	_, _ = s.Me(context.Background())
	_, _ = s.Lessons(context.Background(), 1)

	s.InvalidateAfterSubmission()

	_, _ = s.Me(context.Background())
	_, _ = s.Lessons(context.Background(), 1)
	assert.Equal(t, int32(2), f.meCalls.Load(), "profile refetched after submission")
	assert.Equal(t, int32(2), f.lessonCalls.Load(), "lessons refetched after submission")
}

func TestInvalidateAfterTrade_OnlyProfileStale(t *testing.T) {
	f := &slowFetcher{}
	s := New(f, 6)
	_, _ = s.Me(context.Background())
	_, _ = s.Lessons(context.Background(), 1)

	s.InvalidateAfterTrade()

	_, _ = s.Me(context.Background())
	_, _ = s.Lessons(context.Background(), 1)
	assert.Equal(t, int32(2), f.meCalls.Load())
	assert.Equal(t, int32(1), f.lessonCalls.Load(), "lesson cache untouched by trade")
}

func TestClear_DropsEverything(t *testing.T) {
	f := &slowFetcher{}
	s := New(f, 6)
	_, _ = s.Me(context.Background())
	_, _ = s.Lessons(context.Background(), 2)

	s.Clear()

	_, _ = s.Me(context.Background())
	_, _ = s.Lessons(context.Background(), 2)
	assert.Equal(t, int32(2), f.meCalls.Load())
	assert.Equal(t, int32(2), f.lessonCalls.Load())
}

type failingFetcher struct {
	calls atomic.Int32
}

func (f *failingFetcher) Me(ctx context.Context) (*api.ProfileSnapshot, error) {
	f.calls.Add(1)
	return nil, &api.HTTPError{StatusCode: 500, Message: "boom"}
}

func (f *failingFetcher) ListLessons(ctx context.Context, page, pageSize int) (*api.LessonPage, error) {
	return nil, &api.HTTPError{StatusCode: 500, Message: "boom"}
}

func TestMe_FailedFetchNotCached(t *testing.T) {
	f := &failingFetcher{}
	s := New(f, 6)

	_, err := s.Me(context.Background())
	require.Error(t, err)
	_, err = s.Me(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(2), f.calls.Load(), "errors are not cached")
}
