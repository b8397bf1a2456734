// Copyright 2026 nexusflow.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// https://github.com/nexusflow/rx/blob/main/LICENSE
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rx

import (
	"context"
	"sync/atomic"

	"github.com/nexusflow/rx/internal/xsync"
)

// Subscriber is the safety wrapper: every Observer not already
// known-internal is wrapped in one before it ever sees a notification. It
// is simultaneously an Observer and a Subscription, and enforces
// terminal-event uniqueness and no-emission-after-unsubscribe regardless
// of how the upstream producer behaves.
type Subscriber[T any] interface {
	Subscription
	Observer[T]
}

var _ Subscriber[int] = (*safeObserver[int])(nil)

// NewSubscriber wraps destination in a Subscriber using the safe
// (mutex-protected) concurrency mode. If destination is already a
// Subscriber, it is returned unchanged, so internal operator stages are
// never double-wrapped.
func NewSubscriber[T any](destination Observer[T]) Subscriber[T] {
	return NewSubscriberWithConcurrencyMode(destination, ConcurrencyModeSafe)
}

// NewUnsafeSubscriber wraps destination without any locking. The caller
// must guarantee there is no concurrent emission.
func NewUnsafeSubscriber[T any](destination Observer[T]) Subscriber[T] {
	return NewSubscriberWithConcurrencyMode(destination, ConcurrencyModeUnsafe)
}

// NewEventuallySafeSubscriber wraps destination with a real mutex but drops
// concurrent emissions instead of blocking on them.
func NewEventuallySafeSubscriber[T any](destination Observer[T]) Subscriber[T] {
	return NewSubscriberWithConcurrencyMode(destination, ConcurrencyModeEventuallySafe)
}

// NewSubscriberWithConcurrencyMode wraps destination in a Subscriber using
// the given ConcurrencyMode. Rarely needed directly; operators use it to
// build their stage observers.
func NewSubscriberWithConcurrencyMode[T any](destination Observer[T], mode ConcurrencyMode) Subscriber[T] {
	if wrapped, ok := destination.(Subscriber[T]); ok {
		return wrapped
	}

	s := &safeObserver[T]{
		Subscription: NewSubscription(nil),
		downstream:   destination,
		policy:       BackpressureBlock,
	}

	switch mode {
	case ConcurrencyModeSafe:
		s.gate = xsync.NewMutexWithLock()
	case ConcurrencyModeUnsafe:
		s.gate = xsync.NewMutexWithoutLock()
	case ConcurrencyModeEventuallySafe:
		s.gate = xsync.NewMutexWithLock()
		s.policy = BackpressureDrop
	default:
		panic("rx: invalid concurrency mode")
	}

	// A downstream that is itself disposable takes the wrapper down with
	// it, so cancellation reaches the producer from either side.
	if linked, ok := destination.(Subscription); ok {
		linked.Add(s.Unsubscribe)
	}

	return s
}

// safeObserver serializes deliveries through gate and tracks the terminal
// phase in an atomic (read lock-free, so a callback may query IsClosed on
// itself without deadlocking). Terminal events ignore the drop policy: only
// values are droppable under contention.
type safeObserver[T any] struct {
	Subscription

	downstream Observer[T]
	gate       xsync.Mutex
	policy     Backpressure
	phase      atomic.Int32
}

func (s *safeObserver[T]) Next(v T) { s.NextWithContext(context.Background(), v) }

func (s *safeObserver[T]) NextWithContext(ctx context.Context, v T) {
	if s.downstream == nil {
		return
	}

	if s.policy == BackpressureDrop {
		if !s.gate.TryLock() {
			OnDroppedNotification(ctx, NextNotification(v))
			return
		}
	} else {
		s.gate.Lock()
	}
	defer s.gate.Unlock()

	if s.phase.Load() != observerLive {
		OnDroppedNotification(ctx, NextNotification(v))
		return
	}

	s.downstream.NextWithContext(ctx, v)
}

func (s *safeObserver[T]) Error(err error) { s.ErrorWithContext(context.Background(), err) }

// ErrorWithContext is the error stage of the safety wrapper: if already
// terminal, the error is dropped to the hook; otherwise it marks terminal,
// invokes the downstream's Error, and disposes the subscription. When the
// downstream was built without an explicit error handler, it additionally
// routes the error to OnUnhandledError and panics with
// ErrOnErrorNotImplemented on the calling goroutine — the caller of
// Subscribe for a synchronous producer, the producing goroutine for an
// asynchronous one.
func (s *safeObserver[T]) ErrorWithContext(ctx context.Context, err error) {
	s.gate.Lock()

	won := s.phase.CompareAndSwap(observerLive, observerThrew)

	switch {
	case !won:
		OnDroppedNotification(ctx, ErrorNotification[T](err))
	case s.downstream != nil:
		s.downstream.ErrorWithContext(ctx, err)
	}

	s.gate.Unlock()

	s.Subscription.Unsubscribe()

	if won && destinationLacksErrorHandler(s.downstream) {
		wrapped := newOnErrorNotImplementedError(err)
		OnUnhandledError(ctx, wrapped)
		panic(wrapped)
	}
}

func (s *safeObserver[T]) Complete() { s.CompleteWithContext(context.Background()) }

func (s *safeObserver[T]) CompleteWithContext(ctx context.Context) {
	s.gate.Lock()

	switch {
	case !s.phase.CompareAndSwap(observerLive, observerDone):
		OnDroppedNotification(ctx, CompleteNotification[T]())
	case s.downstream != nil:
		s.downstream.CompleteWithContext(ctx)
	}

	s.gate.Unlock()

	s.Subscription.Unsubscribe()
}

func (s *safeObserver[T]) IsClosed() bool    { return s.phase.Load() != observerLive }
func (s *safeObserver[T]) HasThrown() bool   { return s.phase.Load() == observerThrew }
func (s *safeObserver[T]) IsCompleted() bool { return s.phase.Load() == observerDone }

// Unsubscribe marks the wrapper terminal without a notification, then
// disposes the underlying subscription. After a terminal notification it is
// a no-op: the terminal path has already disposed.
func (s *safeObserver[T]) Unsubscribe() {
	if s.phase.CompareAndSwap(observerLive, observerDone) {
		s.Subscription.Unsubscribe()
	}
}
