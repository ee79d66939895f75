package retry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalized_AppliesDefaults(t *testing.T) {
	p := Policy{}.Normalized()

	assert.Equal(t, 3, p.MaxAttempts)
	assert.Equal(t, 1*time.Second, p.InitialBackoff)
	assert.Equal(t, 30*time.Second, p.MaxBackoff)
	assert.NotNil(t, p.Sleep)
}

func TestNormalized_KeepsExplicitValues(t *testing.T) {
	p := Policy{MaxAttempts: 5, InitialBackoff: 100 * time.Millisecond, MaxBackoff: time.Second}.Normalized()

	assert.Equal(t, 5, p.MaxAttempts)
	assert.Equal(t, 100*time.Millisecond, p.InitialBackoff)
	assert.Equal(t, time.Second, p.MaxBackoff)
}

func TestBackoff_ExponentialWithCap(t *testing.T) {
	p := Policy{InitialBackoff: time.Second, MaxBackoff: 10 * time.Second}.Normalized()

	tests := []struct {
		retryIndex int
		want       time.Duration
	}{
		{0, 1 * time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{4, 10 * time.Second}, // capped
		{10, 10 * time.Second},
		{-1, 1 * time.Second},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, p.Backoff(tt.retryIndex), "retry %d", tt.retryIndex)
	}
}

func TestWait_UsesInjectedSleep(t *testing.T) {
	var slept []time.Duration
	p := Policy{
		Sleep: func(_ context.Context, d time.Duration) error {
			slept = append(slept, d)
			return nil
		},
	}.Normalized()

	require.NoError(t, p.Wait(context.Background(), 5*time.Second))
	assert.Equal(t, []time.Duration{5 * time.Second}, slept)
}

func TestWait_ZeroDurationDoesNotSleep(t *testing.T) {
	p := Policy{
		Sleep: func(context.Context, time.Duration) error {
			t.Fatal("sleep must not be called for zero duration")
			return nil
		},
	}.Normalized()

	assert.NoError(t, p.Wait(context.Background(), 0))
}

func TestWait_CancelledContext(t *testing.T) {
	p := Policy{}.Normalized()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.Wait(ctx, time.Minute)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWait_DefaultSleepReturnsAfterDuration(t *testing.T) {
	p := Policy{}.Normalized()

	start := time.Now()
	require.NoError(t, p.Wait(context.Background(), 10*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}
