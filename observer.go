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
	"fmt"
	"sync/atomic"

	"github.com/samber/lo"
)

// Observer is the consumer of an Observable. It receives Next, Error and
// Complete notifications. Implementations must be safe for concurrent
// calls, and must not forward notifications after a terminal one.
type Observer[T any] interface {
	Next(value T)
	NextWithContext(ctx context.Context, value T)

	Error(err error)
	ErrorWithContext(ctx context.Context, err error)

	Complete()
	CompleteWithContext(ctx context.Context)

	// IsClosed reports whether a terminal notification has already been
	// delivered.
	IsClosed() bool
	HasThrown() bool
	IsCompleted() bool
}

// trap runs fn and routes a panic, converted to an error, to onPanic
// instead of letting it unwind. It is the single panic boundary every user
// callback in this package runs behind.
func trap(fn func(), onPanic func(err error)) {
	lo.TryCatchWithErrorValue(
		func() error {
			fn()
			return nil
		},
		func(e any) {
			onPanic(recoverValueToError(e))
		},
	)
}

// errorHandlerAware is implemented by observers built without an explicit
// error handler (OnNext, NoopObserver). The safety wrapper (subscriber.go)
// uses it to decide whether an emitted error must surface as
// ErrOnErrorNotImplemented instead of being silently absorbed.
type errorHandlerAware interface {
	hasNoErrorHandler() bool
}

func destinationLacksErrorHandler[T any](o Observer[T]) bool {
	aware, ok := o.(errorHandlerAware)
	return ok && aware.hasNoErrorHandler()
}

// Lifecycle states of a callbackObserver.
const (
	observerLive int32 = iota
	observerThrew
	observerDone
)

// callbacks bundles the user functions behind an Observer. A nil slot means
// the corresponding notification has nowhere to go and is dropped to the
// OnDroppedNotification hook without changing the observer's state.
type callbacks[T any] struct {
	next   func(ctx context.Context, value T)
	fail   func(ctx context.Context, err error)
	finish func(ctx context.Context)
}

var _ Observer[int] = (*callbackObserver[int])(nil)

type callbackObserver[T any] struct {
	state atomic.Int32
	cb    callbacks[T]

	// bare marks observers constructed without a user error handler, for
	// the safety wrapper's unhandled-error path.
	bare bool
}

// NewObserver creates an Observer from plain callbacks. Nil callbacks are
// allowed; notifications without a callback are dropped.
func NewObserver[T any](onNext func(value T), onError func(err error), onComplete func()) Observer[T] {
	return &callbackObserver[T]{cb: callbacks[T]{
		next:   dropCtxValue(onNext),
		fail:   dropCtxValue(onError),
		finish: dropCtx(onComplete),
	}}
}

// NewObserverWithContext creates an Observer whose callbacks receive the
// per-event context.
func NewObserverWithContext[T any](onNext func(ctx context.Context, value T), onError func(ctx context.Context, err error), onComplete func(ctx context.Context)) Observer[T] {
	return &callbackObserver[T]{cb: callbacks[T]{next: onNext, fail: onError, finish: onComplete}}
}

func dropCtxValue[T any](fn func(T)) func(context.Context, T) {
	if fn == nil {
		return nil
	}

	return func(_ context.Context, v T) { fn(v) }
}

func dropCtx(fn func()) func(context.Context) {
	if fn == nil {
		return nil
	}

	return func(context.Context) { fn() }
}

func (o *callbackObserver[T]) hasNoErrorHandler() bool { return o.bare }

func (o *callbackObserver[T]) Next(value T) { o.NextWithContext(context.Background(), value) }

func (o *callbackObserver[T]) NextWithContext(ctx context.Context, value T) {
	if o.cb.next == nil || o.state.Load() != observerLive {
		OnDroppedNotification(ctx, NextNotification(value))
		return
	}

	trap(
		func() { o.cb.next(ctx, value) },
		func(err error) { o.fault(ctx, newObserverError(err)) },
	)
}

// fault routes a Next-callback panic into the observer's own error path, or
// to the process-wide hook when there is no error callback to receive it.
func (o *callbackObserver[T]) fault(ctx context.Context, err error) {
	if o.cb.fail == nil {
		OnUnhandledError(ctx, err)
		return
	}

	o.ErrorWithContext(ctx, err)
}

func (o *callbackObserver[T]) Error(err error) { o.ErrorWithContext(context.Background(), err) }

func (o *callbackObserver[T]) ErrorWithContext(ctx context.Context, err error) {
	if o.cb.fail == nil || !o.state.CompareAndSwap(observerLive, observerThrew) {
		OnDroppedNotification(ctx, ErrorNotification[T](err))
		return
	}

	trap(
		func() { o.cb.fail(ctx, err) },
		func(second error) { OnUnhandledError(ctx, newObserverError(second)) },
	)
}

func (o *callbackObserver[T]) Complete() { o.CompleteWithContext(context.Background()) }

func (o *callbackObserver[T]) CompleteWithContext(ctx context.Context) {
	if o.cb.finish == nil || !o.state.CompareAndSwap(observerLive, observerDone) {
		OnDroppedNotification(ctx, CompleteNotification[T]())
		return
	}

	trap(
		func() { o.cb.finish(ctx) },
		func(err error) { OnUnhandledError(ctx, newObserverError(err)) },
	)
}

func (o *callbackObserver[T]) IsClosed() bool    { return o.state.Load() != observerLive }
func (o *callbackObserver[T]) HasThrown() bool   { return o.state.Load() == observerThrew }
func (o *callbackObserver[T]) IsCompleted() bool { return o.state.Load() == observerDone }

/*********************
 * Partial observers *
 *********************/

func noop[T any](context.Context, T) {}

func bareObserver[T any](next func(ctx context.Context, value T), finish func(ctx context.Context)) Observer[T] {
	return &callbackObserver[T]{
		cb:   callbacks[T]{next: next, fail: noop[error], finish: finish},
		bare: true,
	}
}

// OnNext builds an observer with only a Next callback. An error emitted to
// an observer built this way surfaces ErrOnErrorNotImplemented on the
// emitting goroutine instead of being silently dropped.
func OnNext[T any](onNext func(value T)) Observer[T] {
	return bareObserver(dropCtxValue(onNext), func(context.Context) {})
}

// OnNextWithContext is the context-aware counterpart of OnNext.
func OnNextWithContext[T any](onNext func(ctx context.Context, value T)) Observer[T] {
	return bareObserver(onNext, func(context.Context) {})
}

// OnNextAndError builds an observer with Next and Error callbacks. The
// error handler is explicit, so no ErrOnErrorNotImplemented is raised.
func OnNextAndError[T any](onNext func(value T), onError func(err error)) Observer[T] {
	return NewObserver(onNext, onError, func() {})
}

// OnError builds an observer with only an Error callback.
func OnError[T any](onError func(err error)) Observer[T] {
	return NewObserver(func(T) {}, onError, func() {})
}

// OnErrorWithContext is the context-aware counterpart of OnError.
func OnErrorWithContext[T any](onError func(ctx context.Context, err error)) Observer[T] {
	return NewObserverWithContext(noop[T], onError, func(context.Context) {})
}

// OnComplete builds an observer with only a Complete callback.
func OnComplete[T any](onComplete func()) Observer[T] {
	return bareObserver(noop[T], dropCtx(onComplete))
}

// NoopObserver discards every notification. An error routed to it surfaces
// ErrOnErrorNotImplemented like OnNext, since no error handler was given.
func NoopObserver[T any]() Observer[T] {
	return bareObserver(noop[T], func(context.Context) {})
}

// PrintObserver dumps notifications to stdout for debugging. It counts as
// having an error handler, since it does observe the error.
func PrintObserver[T any]() Observer[T] {
	return NewObserverWithContext(
		func(ctx context.Context, value T) { fmt.Printf("Next: %v\n", value) },
		func(ctx context.Context, err error) { fmt.Printf("Error: %s\n", err.Error()) },
		func(ctx context.Context) { fmt.Printf("Completed\n") },
	)
}
