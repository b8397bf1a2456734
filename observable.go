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

	"github.com/samber/lo"
)

// Observable is the producer of values: an immutable description of a
// push-based, finite-or-infinite sequence. It is a factory for streams, not
// a stream itself — each Subscribe call runs the producer function afresh.
type Observable[T any] interface {
	// Subscribe attaches destination to the Observable. destination may
	// receive any number of Next notifications, then at most one of
	// Error or Complete. The returned Subscription cancels the
	// subscription; it may already be closed when Subscribe returns, in
	// which case the producer's Teardown was never invoked.
	Subscribe(destination Observer[T]) Subscription
	SubscribeWithContext(ctx context.Context, destination Observer[T]) Subscription
}

var _ Observable[int] = (*observableImpl[int])(nil)

// NewObservable creates an Observable from a subscribe function, using the
// safe (mutex-protected) concurrency mode.
func NewObservable[T any](subscribe func(destination Observer[T]) Teardown) Observable[T] {
	return NewObservableWithConcurrencyMode(
		func(ctx context.Context, destination Observer[T]) Teardown { return subscribe(destination) },
		ConcurrencyModeSafe,
	)
}

// NewUnsafeObservable is NewObservable without locking: the caller
// guarantees there is no concurrent emission.
func NewUnsafeObservable[T any](subscribe func(destination Observer[T]) Teardown) Observable[T] {
	return NewObservableWithConcurrencyMode(
		func(ctx context.Context, destination Observer[T]) Teardown { return subscribe(destination) },
		ConcurrencyModeUnsafe,
	)
}

// NewObservableWithContext is NewObservable with a per-event context passed
// to the subscribe function.
func NewObservableWithContext[T any](subscribe func(ctx context.Context, destination Observer[T]) Teardown) Observable[T] {
	return NewObservableWithConcurrencyMode(subscribe, ConcurrencyModeSafe)
}

// NewUnsafeObservableWithContext is NewObservableWithContext without
// locking.
func NewUnsafeObservableWithContext[T any](subscribe func(ctx context.Context, destination Observer[T]) Teardown) Observable[T] {
	return NewObservableWithConcurrencyMode(subscribe, ConcurrencyModeUnsafe)
}

// NewObservableWithConcurrencyMode is the most general constructor; every
// other constructor delegates to it. Rarely used directly outside
// operator implementations.
func NewObservableWithConcurrencyMode[T any](subscribe func(ctx context.Context, destination Observer[T]) Teardown, mode ConcurrencyMode) Observable[T] {
	return &observableImpl[T]{mode: mode, subscribe: subscribe}
}

type observableImpl[T any] struct {
	mode      ConcurrencyMode
	subscribe func(ctx context.Context, destination Observer[T]) Teardown
}

func (s *observableImpl[T]) Subscribe(destination Observer[T]) Subscription {
	return s.SubscribeWithContext(context.Background(), destination)
}

// SubscribeWithContext is the subscribe dispatch: reject a nil observer,
// call the plugin hooks around the producer, wrap the observer in a
// Subscriber unless it is already one, invoke the producer, and route a
// synchronous producer panic to the safety wrapper's Error path. A panic
// carrying *OnErrorNotImplementedError is never converted here — it is
// re-thrown so it keeps propagating to the caller of Subscribe (synchronous
// producer) or crashes the producing goroutine (asynchronous producer).
func (s *observableImpl[T]) SubscribeWithContext(ctx context.Context, destination Observer[T]) Subscription {
	if destination == nil {
		panic(ErrNilObserver)
	}

	subscription := NewSubscriberWithConcurrencyMode(destination, s.mode)

	teardownHook := runOnSubscribeStart(s)
	defer teardownHook()

	lo.TryCatchWithErrorValue(
		func() error {
			subscription.Add(s.subscribe(ctx, subscription))
			return nil
		},
		func(e any) {
			if notImpl, ok := e.(*OnErrorNotImplementedError); ok {
				panic(notImpl)
			}

			err := runOnSubscribeError(s, recoverValueToError(e))
			subscription.ErrorWithContext(ctx, newObservableError(err))
			subscription.Unsubscribe()
		},
	)

	return runOnSubscribeReturn(s, subscription)
}

// operate is the shared shape of every single-source operator stage: derive
// a stage observer from the downstream one, subscribe it to source, and tie
// the stage's lifetime to the downstream teardown. The stage factory runs
// once per subscription, so stage-local state (counters, buffers) lives in
// its closure.
func operate[T, R any](source Observable[T], stage func(subscriberCtx context.Context, destination Observer[R]) Observer[T]) Observable[R] {
	return NewUnsafeObservableWithContext(func(subscriberCtx context.Context, destination Observer[R]) Teardown {
		return source.SubscribeWithContext(subscriberCtx, stage(subscriberCtx, destination)).Unsubscribe
	})
}

// Collect subscribes to obs and blocks until it reaches a terminal
// notification, returning every value observed and the terminal error (if
// any). It is the only blocking pull adapter this module exposes; anything
// richer belongs outside the core.
func Collect[T any](obs Observable[T]) ([]T, error) {
	values, _, err := CollectWithContext(context.Background(), obs)
	return values, err
}

// CollectWithContext is Collect with an explicit context, also returning the
// context observed at the terminal notification.
func CollectWithContext[T any](ctx context.Context, obs Observable[T]) ([]T, context.Context, error) {
	values := []T{}

	var lastCtx context.Context

	var terminalErr error

	sub := obs.SubscribeWithContext(
		ctx,
		NewObserverWithContext(
			func(ctx context.Context, value T) { values = append(values, value) },
			func(ctx context.Context, err error) { terminalErr = err; lastCtx = ctx },
			func(ctx context.Context) { lastCtx = ctx },
		),
	)

	sub.Wait()

	return values, lastCtx, terminalErr
}
