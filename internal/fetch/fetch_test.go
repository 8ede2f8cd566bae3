package fetch

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"labkit/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func fixedRand(v float64) func() float64 {
	return func() float64 { return v }
}

func TestFakeClock(t *testing.T) {
	clock := NewFakeClock(epoch)
	ch := clock.After(time.Second)

	clock.Advance(500 * time.Millisecond)
	select {
	case <-ch:
		t.Fatal("timer fired early")
	default:
	}

	clock.Advance(500 * time.Millisecond)
	assert.Equal(t, epoch.Add(time.Second), <-ch)
	assert.Equal(t, epoch.Add(time.Second), clock.Now())

	immediate := clock.After(0)
	<-immediate
}

func TestFakeClock_BlockUntil(t *testing.T) {
	clock := NewFakeClock(epoch)
	go func() { <-clock.After(time.Minute) }()

	clock.BlockUntil(1)
	clock.Advance(time.Minute)
}

func TestFuture(t *testing.T) {
	f := Go(context.Background(), func(context.Context) (int, error) { return 42, nil })
	v, err := f.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	v, err = Resolved(7).Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	_, err = Rejected[int](stderrors.New("nope")).Await(context.Background())
	assert.EqualError(t, err, "nope")
}

func TestFuture_AwaitCancelled(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	f := Go(context.Background(), func(context.Context) (int, error) {
		<-block
		return 1, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.Await(ctx)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeTimeout))

	ctx, cancel = context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	_, err = f.Await(ctx)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "TIMEOUT", appErr.Code)
}

func TestSimulator_Delay(t *testing.T) {
	sim := NewSimulator("load", func() int { return 1 }, "down",
		WithDelay(1500*time.Millisecond, 3000*time.Millisecond), WithRand(fixedRand(0.5)))
	assert.Equal(t, 2250*time.Millisecond, sim.Delay())

	fixed := NewSimulator("save", func() int { return 1 }, "down", WithDelay(time.Second, 0))
	assert.Equal(t, time.Second, fixed.Delay())
}

func TestSimulator_ResolvesAfterDelay(t *testing.T) {
	clock := NewFakeClock(epoch)
	sim := NewSimulator("load users", func() []string { return []string{"a", "b"} }, "down",
		WithClock(clock), WithDelay(2*time.Second, 2*time.Second))

	f := sim.Fetch(context.Background())
	select {
	case <-f.Done():
		t.Fatal("resolved before the delay elapsed")
	case <-time.After(10 * time.Millisecond):
	}

	clock.Advance(2 * time.Second)
	v, err := f.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, v)
}

func TestSimulator_FailingFlag(t *testing.T) {
	clock := NewFakeClock(epoch)
	sim := NewSimulator("load users", func() int { return 1 }, "Network Error", WithClock(clock))

	sim.SetFailing(true)
	assert.True(t, sim.Failing())

	_, err := sim.Fetch(context.Background()).Await(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeTransport))
	assert.Equal(t, "Network Error", errors.GetUserMessage(err))

	sim.SetFailing(false)
	v, err := sim.Fetch(context.Background()).Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestSimulator_FailureRate(t *testing.T) {
	tests := []struct {
		name string
		roll float64
		fail bool
	}{
		{"roll below rate fails", 0.05, true},
		{"roll above rate succeeds", 0.5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := NewSimulator("save", func() string { return "ok" }, "Server timeout",
				WithClock(NewFakeClock(epoch)), WithFailureRate(0.1), WithRand(fixedRand(tt.roll)))

			_, err := sim.Fetch(context.Background()).Await(context.Background())
			assert.Equal(t, tt.fail, err != nil)
		})
	}
}

func TestSimulator_ContextCancelledWhileWaiting(t *testing.T) {
	clock := NewFakeClock(epoch)
	sim := NewSimulator("load", func() int { return 1 }, "down", WithClock(clock), WithDelay(time.Hour, time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	f := sim.Fetch(ctx)
	cancel()

	_, err := f.Await(context.Background())
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeTimeout))
}
