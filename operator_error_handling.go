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
	"errors"
	"sync"
	"time"
)

// Catch subscribes to the Observable returned by recover instead of
// forwarding source's error to the downstream observer.
func Catch[T any](recover func(err error) Observable[T]) func(Observable[T]) Observable[T] {
	return func(source Observable[T]) Observable[T] {
		return NewUnsafeObservableWithContext(func(subscriberCtx context.Context, destination Observer[T]) Teardown {
			subs := NewSubscription(nil)

			subs.AddUnsubscribable(source.SubscribeWithContext(
				subscriberCtx,
				NewObserverWithContext(
					destination.NextWithContext,
					func(ctx context.Context, err error) {
						subs.AddUnsubscribable(recover(err).SubscribeWithContext(ctx, destination))
					},
					destination.CompleteWithContext,
				),
			))

			return subs.Unsubscribe
		})
	}
}

// OnErrorReturn emits a fallback value and completes instead of forwarding
// source's error downstream.
func OnErrorReturn[T any](fallback T) func(Observable[T]) Observable[T] {
	return func(source Observable[T]) Observable[T] {
		return operate(source, func(_ context.Context, destination Observer[T]) Observer[T] {
			return NewObserverWithContext(
				destination.NextWithContext,
				func(ctx context.Context, _ error) {
					destination.NextWithContext(ctx, fallback)
					destination.CompleteWithContext(ctx)
				},
				destination.CompleteWithContext,
			)
		})
	}
}

// OnErrorResumeNext subscribes to the next Observable in the list whenever
// the previous one errors or completes; intermediate errors are swallowed,
// and the terminal notification of the last Observable in the chain is the
// one forwarded downstream.
func OnErrorResumeNext[T any](resumptions ...Observable[T]) func(Observable[T]) Observable[T] {
	return func(source Observable[T]) Observable[T] {
		if len(resumptions) == 0 {
			return source
		}

		chain := append([]Observable[T]{source}, resumptions...)

		return NewUnsafeObservableWithContext(func(subscriberCtx context.Context, destination Observer[T]) Teardown {
			inner := NewSubscription(nil)
			cancelled := false

			var subscribeNext func(i int)

			subscribeNext = func(i int) {
				if cancelled {
					return
				}

				last := i == len(chain)-1

				inner.AddUnsubscribable(chain[i].SubscribeWithContext(
					subscriberCtx,
					NewObserverWithContext(
						destination.NextWithContext,
						func(ctx context.Context, err error) {
							if last {
								destination.ErrorWithContext(ctx, err)
								return
							}

							subscribeNext(i + 1)
						},
						func(ctx context.Context) {
							if last {
								destination.CompleteWithContext(ctx)
								return
							}

							subscribeNext(i + 1)
						},
					),
				))
			}

			subscribeNext(0)

			return func() {
				cancelled = true
				inner.Unsubscribe()
			}
		})
	}
}

// OnExceptionResumeNext is OnErrorResumeNext restricted to errors wrapping
// runtime exceptions (panics recovered by the safety wrapper, surfaced as
// *observerError/*observableError) — any other error kind still terminates
// the chain.
func OnExceptionResumeNext[T any](resumptions ...Observable[T]) func(Observable[T]) Observable[T] {
	return func(source Observable[T]) Observable[T] {
		return Catch(func(err error) Observable[T] {
			var observerErr *observerError

			var observableErr *observableError

			if errors.As(err, &observerErr) || errors.As(err, &observableErr) {
				return OnErrorResumeNext(resumptions...)(Throw[T](err))
			}

			return Throw[T](err)
		})(source)
	}
}

// RetryConfig configures Retry's resubscription policy.
type RetryConfig struct {
	// MaxRetries caps the number of resubscriptions; 0 means unlimited.
	MaxRetries uint64
	// Delay, if positive, is waited before each resubscription.
	Delay time.Duration
	// ResetOnSuccess resets the retry counter the next time source emits a
	// value after having errored at least once.
	ResetOnSuccess bool
}

// Retry resubscribes to source whenever it errors, indefinitely.
func Retry[T any]() func(Observable[T]) Observable[T] {
	return RetryWithConfig[T](RetryConfig{})
}

// RetryWithConfig is Retry with an explicit RetryConfig.
func RetryWithConfig[T any](opts RetryConfig) func(Observable[T]) Observable[T] {
	return func(source Observable[T]) Observable[T] {
		return NewUnsafeObservableWithContext(func(subscriberCtx context.Context, destination Observer[T]) Teardown {
			subs := NewSubscription(nil)
			retries := uint64(0)

			// attempt runs one subscription to the source, blocking until
			// that run terminates, and reports the run's error (nil on
			// normal completion, which also completes downstream).
			attempt := func() error {
				var failure error

				run := source.SubscribeWithContext(
					subscriberCtx,
					NewObserverWithContext(
						func(ctx context.Context, value T) {
							if opts.ResetOnSuccess {
								retries = 0
							}

							destination.NextWithContext(ctx, value)
						},
						func(ctx context.Context, err error) { failure = err },
						destination.CompleteWithContext,
					),
				)

				subs.AddUnsubscribable(run)
				run.Wait()

				return failure
			}

			backoff := func() bool {
				if opts.Delay <= 0 {
					return true
				}

				select {
				case <-time.After(opts.Delay):
					return true
				case <-subscriberCtx.Done():
					return false
				}
			}

			for !subs.IsClosed() {
				if err := subscriberCtx.Err(); err != nil {
					destination.ErrorWithContext(subscriberCtx, err)
					break
				}

				failure := attempt()
				if failure == nil {
					break
				}

				retries++
				if opts.MaxRetries != 0 && retries > opts.MaxRetries {
					destination.ErrorWithContext(subscriberCtx, failure)
					break
				}

				if !backoff() {
					destination.ErrorWithContext(subscriberCtx, subscriberCtx.Err())
					break
				}
			}

			return subs.Unsubscribe
		})
	}
}

// Finally runs action exactly once, after source reaches a terminal
// notification or is unsubscribed, whichever happens first.
func Finally[T any](action func()) func(Observable[T]) Observable[T] {
	return func(source Observable[T]) Observable[T] {
		return NewUnsafeObservableWithContext(func(subscriberCtx context.Context, destination Observer[T]) Teardown {
			var once sync.Once

			run := func() { once.Do(action) }

			sub := source.SubscribeWithContext(
				subscriberCtx,
				NewObserverWithContext(
					destination.NextWithContext,
					func(ctx context.Context, err error) {
						destination.ErrorWithContext(ctx, err)
						run()
					},
					func(ctx context.Context) {
						destination.CompleteWithContext(ctx)
						run()
					},
				),
			)

			return func() {
				sub.Unsubscribe()
				run()
			}
		})
	}
}
