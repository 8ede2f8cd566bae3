package fetch

import (
	"context"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"labkit/internal/errors"
	"labkit/internal/logging"
)

// Option configures a Simulator.
type Option func(*settings)

type settings struct {
	clock       Clock
	min, max    time.Duration
	rand        func() float64
	failureRate float64
}

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(s *settings) { s.clock = c }
}

// WithDelay bounds the simulated latency; each call waits uniformly in [min, max].
func WithDelay(min, max time.Duration) Option {
	return func(s *settings) {
		if max < min {
			max = min
		}
		s.min, s.max = min, max
	}
}

// WithRand replaces the random source; fn must return values in [0, 1).
func WithRand(fn func() float64) Option {
	return func(s *settings) { s.rand = fn }
}

// WithFailureRate makes each call fail with probability p on top of the failure flag.
func WithFailureRate(p float64) Option {
	return func(s *settings) { s.failureRate = p }
}

// Simulator resolves with produce() after a bounded random delay, or rejects
// with a transport error when failing.
type Simulator[T any] struct {
	operation   string
	produce     func() T
	failMessage string
	settings
	failing atomic.Bool
}

// NewSimulator creates a simulator for operation. Default latency is zero.
func NewSimulator[T any](operation string, produce func() T, failMessage string, opts ...Option) *Simulator[T] {
	s := &Simulator[T]{
		operation:   operation,
		produce:     produce,
		failMessage: failMessage,
		settings: settings{
			clock: SystemClock{},
			rand:  rand.Float64,
		},
	}
	for _, opt := range opts {
		opt(&s.settings)
	}
	return s
}

// SetFailing toggles forced failure for subsequent calls.
func (s *Simulator[T]) SetFailing(fail bool) {
	s.failing.Store(fail)
}

// Failing reports whether calls are forced to fail.
func (s *Simulator[T]) Failing() bool {
	return s.failing.Load()
}

// Clock returns the simulator's time source.
func (s *Simulator[T]) Clock() Clock {
	return s.clock
}

// Delay draws the next latency.
func (s *Simulator[T]) Delay() time.Duration {
	if s.max <= s.min {
		return s.min
	}
	return s.min + time.Duration(s.rand()*float64(s.max-s.min))
}

// Fetch starts one call. The failure decision is taken when the delay ends,
// so flipping the flag while a call is pending affects that call.
func (s *Simulator[T]) Fetch(ctx context.Context) *Future[T] {
	delay := s.Delay()
	timer := s.clock.After(delay)
	return Go(ctx, func(ctx context.Context) (T, error) {
		var zero T
		select {
		case <-timer:
		case <-ctx.Done():
			return zero, contextError(ctx, s.operation)
		}

		if s.Failing() || (s.failureRate > 0 && s.rand() < s.failureRate) {
			logging.Debugf("fetch: %s failed after %s\n", s.operation, delay)
			return zero, errors.NewTransportError(s.operation, s.failMessage)
		}
		logging.Debugf("fetch: %s resolved after %s\n", s.operation, delay)
		return s.produce(), nil
	})
}
