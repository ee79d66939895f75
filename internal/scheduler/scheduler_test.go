package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tweetwipe/tweetwipe/internal/archive"
	"github.com/tweetwipe/tweetwipe/internal/deleter"
	"github.com/tweetwipe/tweetwipe/internal/logger"
)

// fakeDeleter returns a scripted outcome per post ID and records calls.
type fakeDeleter struct {
	mu       sync.Mutex
	outcomes map[string]deleter.Outcome
	calls    []string
	delay    time.Duration
}

func (f *fakeDeleter) Delete(ctx context.Context, postID string) deleter.Outcome {
	f.mu.Lock()
	f.calls = append(f.calls, postID)
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return deleter.Outcome{PostID: postID, Status: deleter.StatusFailed, Reason: deleter.ReasonCancelled}
		}
	}

	if o, ok := f.outcomes[postID]; ok {
		return o
	}
	return deleter.Outcome{PostID: postID, Status: deleter.StatusDeleted, Attempts: 1}
}

func (f *fakeDeleter) callIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func makePosts(ids ...string) []archive.Post {
	posts := make([]archive.Post, len(ids))
	for i, id := range ids {
		posts[i] = archive.Post{ID: id}
	}
	return posts
}

func collect(t *testing.T, outcomes <-chan deleter.Outcome) []deleter.Outcome {
	t.Helper()

	var results []deleter.Outcome
	timeout := time.After(10 * time.Second)
	for {
		select {
		case o, ok := <-outcomes:
			if !ok {
				return results
			}
			results = append(results, o)
		case <-timeout:
			t.Fatalf("timeout draining outcomes, got %d so far", len(results))
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, Config{MaxTasks: 1}.Validate())
	assert.NoError(t, Config{MaxTasks: 10}.Validate())
	assert.Error(t, Config{MaxTasks: 0}.Validate())
	assert.Error(t, Config{MaxTasks: -3}.Validate())
}

func TestRun_EmptyInput(t *testing.T) {
	pool := New(Config{MaxTasks: 4}, &fakeDeleter{}, logger.Discard())

	outcomes := pool.Run(context.Background(), nil)

	results := collect(t, outcomes)
	assert.Empty(t, results)
}

func TestRun_OneOutcomePerPost(t *testing.T) {
	fake := &fakeDeleter{}
	pool := New(Config{MaxTasks: 3}, fake, logger.Discard())

	posts := makePosts("1", "2", "3", "4", "5", "6", "7")
	results := collect(t, pool.Run(context.Background(), posts))

	require.Len(t, results, len(posts))
	seen := map[string]bool{}
	for _, o := range results {
		assert.False(t, seen[o.PostID], "duplicate outcome for %s", o.PostID)
		seen[o.PostID] = true
	}
	assert.Len(t, fake.callIDs(), len(posts))

	metrics := pool.Metrics()
	assert.Equal(t, len(posts), metrics.Dispatched)
	assert.Equal(t, len(posts), metrics.Completed)
}

func TestRun_SingleFailureDoesNotHaltRun(t *testing.T) {
	fake := &fakeDeleter{outcomes: map[string]deleter.Outcome{
		"2": {PostID: "2", Status: deleter.StatusFailed, Reason: deleter.ReasonNotFound},
	}}
	pool := New(Config{MaxTasks: 1}, fake, logger.Discard())

	results := collect(t, pool.Run(context.Background(), makePosts("1", "2", "3")))

	require.Len(t, results, 3)
	metrics := pool.Metrics()
	assert.Equal(t, 2, metrics.Completed)
	assert.Equal(t, 1, metrics.Failed)
}

func TestRun_MaxTasksLargerThanInput(t *testing.T) {
	fake := &fakeDeleter{}
	pool := New(Config{MaxTasks: 100}, fake, logger.Discard())

	results := collect(t, pool.Run(context.Background(), makePosts("a", "b")))
	assert.Len(t, results, 2)
}

func TestRun_SerialDispatchFollowsInputOrder(t *testing.T) {
	fake := &fakeDeleter{}
	pool := New(Config{MaxTasks: 1}, fake, logger.Discard())

	posts := makePosts("first", "second", "third")
	collect(t, pool.Run(context.Background(), posts))

	assert.Equal(t, []string{"first", "second", "third"}, fake.callIDs())
}

func TestRun_DryRunOutcomesOnly(t *testing.T) {
	// A dry-run deleter reports skips; the pool must account them as such.
	fake := &fakeDeleter{outcomes: map[string]deleter.Outcome{
		"1": {PostID: "1", Status: deleter.StatusSkippedDryRun},
		"2": {PostID: "2", Status: deleter.StatusSkippedDryRun},
	}}
	pool := New(Config{MaxTasks: 2, DryRun: true}, fake, logger.Discard())

	results := collect(t, pool.Run(context.Background(), makePosts("1", "2")))

	require.Len(t, results, 2)
	for _, o := range results {
		assert.Equal(t, deleter.StatusSkippedDryRun, o.Status)
	}
	assert.Equal(t, 2, pool.Metrics().Skipped)
}
