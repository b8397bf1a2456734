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

import "context"

// Of creates an Observable that synchronously emits the given values, in
// order, then completes.
func Of[T any](values ...T) Observable[T] {
	return FromSlice(values)
}

// Just is an alias for Of.
func Just[T any](values ...T) Observable[T] { return Of(values...) }

// FromSlice creates an Observable emitting every value of every given slice,
// in order, then completes.
func FromSlice[T any](collections ...[]T) Observable[T] {
	return NewUnsafeObservableWithContext(func(ctx context.Context, destination Observer[T]) Teardown {
		for _, collection := range collections {
			for _, value := range collection {
				destination.NextWithContext(ctx, value)
			}
		}

		destination.CompleteWithContext(ctx)

		return nil
	})
}

// FromChannel creates an Observable from a channel. Closing the channel
// completes the Observable; unsubscribing stops draining it.
func FromChannel[T any](in <-chan T) Observable[T] {
	return NewUnsafeObservableWithContext(func(ctx context.Context, destination Observer[T]) Teardown {
		done := make(chan struct{})

		drainOne := func() bool {
			select {
			case <-done:
				return false
			case item, open := <-in:
				if !open {
					destination.CompleteWithContext(ctx)
					return false
				}

				destination.NextWithContext(ctx, item)

				return true
			}
		}

		go recoverUnhandledError(func() {
			for drainOne() {
			}
		})

		return func() { close(done) }
	})
}

// Future subscribes by running factory on its own goroutine and emitting
// either its value or its error, whichever factory returns.
func Future[T any](factory func() (T, error)) Observable[T] {
	return NewUnsafeObservableWithContext(func(ctx context.Context, destination Observer[T]) Teardown {
		go recoverUnhandledError(func() {
			value, err := factory()
			if err != nil {
				destination.ErrorWithContext(ctx, err)
				return
			}

			destination.NextWithContext(ctx, value)
			destination.CompleteWithContext(ctx)
		})

		return nil
	})
}

// Range creates an Observable emitting the half-open integer range
// [start, end). If start == end the Observable is empty; if start > end the
// values descend.
func Range(start, end int64) Observable[int64] {
	step := int64(1)
	if start > end {
		step = -1
	}

	count := (end - start) * step

	return NewUnsafeObservableWithContext(func(ctx context.Context, destination Observer[int64]) Teardown {
		for i := int64(0); i < count; i++ {
			destination.NextWithContext(ctx, start+i*step)
		}

		destination.CompleteWithContext(ctx)

		return nil
	})
}

// Empty creates an Observable that completes immediately without emitting
// any value.
func Empty[T any]() Observable[T] {
	return FromSlice[T]()
}

// Never creates an Observable that neither emits nor completes. When its
// context is done it errors with the context's error; unsubscribing ends it
// without a notification.
func Never[T any]() Observable[T] {
	return NewUnsafeObservableWithContext(func(subscriberCtx context.Context, destination Observer[T]) Teardown {
		return failOnCancel(subscriberCtx, destination)
	})
}

// Throw creates an Observable that synchronously emits err, without ever
// emitting a value. err may be nil.
func Throw[T any](err error) Observable[T] {
	return NewUnsafeObservableWithContext(func(ctx context.Context, destination Observer[T]) Teardown {
		destination.ErrorWithContext(ctx, err)
		return nil
	})
}

// Defer postpones building the source Observable until the moment each
// Observer subscribes, via factory. Useful when the source depends on state
// that differs per subscription.
func Defer[T any](factory func() Observable[T]) Observable[T] {
	return NewUnsafeObservableWithContext(func(ctx context.Context, destination Observer[T]) Teardown {
		return factory().SubscribeWithContext(ctx, destination).Unsubscribe
	})
}
