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
)

// ContextWithValue attaches a key-value pair to the context carried by
// every item, error, and completion notification from source.
func ContextWithValue[T any](k, v any) func(Observable[T]) Observable[T] {
	stamp := func(ctx context.Context) context.Context {
		return context.WithValue(ctx, k, v)
	}

	return func(source Observable[T]) Observable[T] {
		return operate(source, func(_ context.Context, destination Observer[T]) Observer[T] {
			return NewObserverWithContext(
				func(ctx context.Context, value T) { destination.NextWithContext(stamp(ctx), value) },
				func(ctx context.Context, err error) { destination.ErrorWithContext(stamp(ctx), err) },
				func(ctx context.Context) { destination.CompleteWithContext(stamp(ctx)) },
			)
		})
	}
}

// ContextReset replaces the context carried by every notification from
// source with newCtx. A nil newCtx is replaced with context.Background().
func ContextReset[T any](newCtx context.Context) func(Observable[T]) Observable[T] {
	if newCtx == nil {
		newCtx = context.Background()
	}

	return ContextMap[T](func(context.Context) context.Context { return newCtx })
}

// ContextMap replaces the context carried by every item from source with
// the result of project.
func ContextMap[T any](project func(ctx context.Context) context.Context) func(Observable[T]) Observable[T] {
	return ContextMapI[T](func(ctx context.Context, _ int64) context.Context {
		return project(ctx)
	})
}

// ContextMapI is ContextMap with the item's zero-based index passed to
// project.
func ContextMapI[T any](project func(ctx context.Context, index int64) context.Context) func(Observable[T]) Observable[T] {
	return MapIWithContext(func(ctx context.Context, item T, index int64) (context.Context, T) {
		return project(ctx, index), item
	})
}

// ThrowOnContextCancel forwards source until its context is cancelled, at
// which point it errors with the context's error instead of completing
// normally. Pair with a context carrying a timeout or deadline.
func ThrowOnContextCancel[T any]() func(Observable[T]) Observable[T] {
	return func(source Observable[T]) Observable[T] {
		return NewObservableWithContext(func(subscriberCtx context.Context, destination Observer[T]) Teardown {
			if err := subscriberCtx.Err(); err != nil {
				destination.ErrorWithContext(subscriberCtx, err)
				return nil
			}

			release := failOnCancel(subscriberCtx, destination)

			sub := source.SubscribeWithContext(
				subscriberCtx,
				NewObserverWithContext(
					func(ctx context.Context, value T) {
						if err := ctx.Err(); err != nil {
							destination.ErrorWithContext(ctx, err)
							return
						}

						destination.NextWithContext(ctx, value)
					},
					destination.ErrorWithContext,
					destination.CompleteWithContext,
				),
			)

			return func() {
				sub.Unsubscribe()
				release()
			}
		})
	}
}

// failOnCancel errors destination as soon as ctx is cancelled; the returned
// release stops the watcher without erroring.
func failOnCancel[T any](ctx context.Context, destination Observer[T]) func() {
	released := make(chan struct{})

	go func() {
		select {
		case <-released:
		case <-ctx.Done():
			destination.ErrorWithContext(ctx, ctx.Err())
		}
	}()

	return func() { close(released) }
}
