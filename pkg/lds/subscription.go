// Package lds models the subscription-style fetch the UI layer consumes: an
// observer registers once and is re-invoked with a result-or-error value on
// every refresh.
package lds

import (
	"context"
	"sync"
)

// Result delivers either data or a failure payload. Err is deliberately
// untyped: it is whatever the remote boundary produced, in any of the shapes
// uierr.Reduce classifies.
type Result[T any] struct {
	Data T
	Err  any
}

func (r Result[T]) Failed() bool {
	return r.Err != nil
}

// FetchFunc performs the remote read a subscription is bound to.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Subscription re-runs a fetch on demand and delivers each outcome to every
// registered observer, synchronously, on the refreshing goroutine.
type Subscription[T any] struct {
	fetch FetchFunc[T]

	mu        sync.RWMutex
	observers []func(Result[T])
	last      *Result[T]
}

func NewSubscription[T any](fetch FetchFunc[T]) *Subscription[T] {
	return &Subscription[T]{fetch: fetch}
}

// Subscribe registers an observer. If a result has already been delivered,
// the observer is caught up with it immediately.
func (s *Subscription[T]) Subscribe(observer func(Result[T])) {
	s.mu.Lock()
	s.observers = append(s.observers, observer)
	last := s.last
	s.mu.Unlock()

	if last != nil {
		observer(*last)
	}
}

// Refresh runs the fetch and delivers the outcome to all observers. It
// returns the result so call sites that triggered the refresh can use it
// directly.
func (s *Subscription[T]) Refresh(ctx context.Context) Result[T] {
	data, err := s.fetch(ctx)

	result := Result[T]{Data: data}
	if err != nil {
		result.Err = err
	}

	s.mu.Lock()
	s.last = &result
	observers := make([]func(Result[T]), len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, observer := range observers {
		observer(result)
	}
	return result
}

// Last returns the most recent result, if any refresh has completed.
func (s *Subscription[T]) Last() (Result[T], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.last == nil {
		var zero Result[T]
		return zero, false
	}
	return *s.last, true
}
