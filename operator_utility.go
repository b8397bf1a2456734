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
	"time"

	"github.com/nexusflow/rx/internal/xtime"
)

// Tap performs side effects for every notification from source without
// altering it, and forwards the notification downstream unchanged.
func Tap[T any](onNext func(value T), onError func(err error), onComplete func()) func(Observable[T]) Observable[T] {
	return TapWithContext(
		func(ctx context.Context, value T) { onNext(value) },
		func(ctx context.Context, err error) { onError(err) },
		func(ctx context.Context) { onComplete() },
	)
}

// TapWithContext is Tap with context-carrying callbacks.
func TapWithContext[T any](onNext func(ctx context.Context, value T), onError func(ctx context.Context, err error), onComplete func(ctx context.Context)) func(Observable[T]) Observable[T] {
	return func(source Observable[T]) Observable[T] {
		return operate(source, func(_ context.Context, destination Observer[T]) Observer[T] {
			return NewObserverWithContext(
				func(ctx context.Context, value T) {
					onNext(ctx, value)
					destination.NextWithContext(ctx, value)
				},
				func(ctx context.Context, err error) {
					onError(ctx, err)
					destination.ErrorWithContext(ctx, err)
				},
				func(ctx context.Context) {
					onComplete(ctx)
					destination.CompleteWithContext(ctx)
				},
			)
		})
	}
}

// TapOnNext is Tap restricted to the next-notification callback.
func TapOnNext[T any](onNext func(value T)) func(Observable[T]) Observable[T] {
	return Tap(onNext, func(error) {}, func() {})
}

// TapOnError is Tap restricted to the error-notification callback.
func TapOnError[T any](onError func(err error)) func(Observable[T]) Observable[T] {
	return Tap(func(T) {}, onError, func() {})
}

// TapOnComplete is Tap restricted to the complete-notification callback.
func TapOnComplete[T any](onComplete func()) func(Observable[T]) Observable[T] {
	return Tap(func(T) {}, func(error) {}, onComplete)
}

// TapOnSubscribe runs onSubscribe before each subscription to source.
func TapOnSubscribe[T any](onSubscribe func()) func(Observable[T]) Observable[T] {
	return func(source Observable[T]) Observable[T] {
		return Defer(func() Observable[T] {
			onSubscribe()
			return source
		})
	}
}

// TapOnFinalize runs onFinalize once source is unsubscribed from, after the
// inner teardown completes.
func TapOnFinalize[T any](onFinalize func()) func(Observable[T]) Observable[T] {
	return func(source Observable[T]) Observable[T] {
		return NewUnsafeObservableWithContext(func(subscriberCtx context.Context, destination Observer[T]) Teardown {
			sub := source.SubscribeWithContext(subscriberCtx, destination)

			return func() {
				sub.Unsubscribe()
				onFinalize()
			}
		})
	}
}

// IntervalValue pairs a value with the time elapsed since the previous
// emission, emitted by TimeInterval.
type IntervalValue[T any] struct {
	Value    T
	Interval time.Duration
}

// TimeInterval emits the values produced by source paired with the
// monotonic time elapsed since the previous emission.
func TimeInterval[T any]() func(Observable[T]) Observable[IntervalValue[T]] {
	return func(source Observable[T]) Observable[IntervalValue[T]] {
		return operate(source, func(_ context.Context, destination Observer[IntervalValue[T]]) Observer[T] {
			previous := xtime.NowNanoMonotonic()

			return NewObserverWithContext(
				func(ctx context.Context, value T) {
					now := xtime.NowNanoMonotonic()
					destination.NextWithContext(ctx, IntervalValue[T]{
						Value:    value,
						Interval: time.Duration(now - previous),
					})
					previous = now
				},
				destination.ErrorWithContext,
				destination.CompleteWithContext,
			)
		})
	}
}

// Delay re-emits every notification from source after waiting duration,
// scheduled on scheduler so virtual-time tests (TestScheduler) can drive it
// deterministically instead of relying on a bare time.AfterFunc.
func Delay[T any](duration time.Duration, scheduler Scheduler) func(Observable[T]) Observable[T] {
	return func(source Observable[T]) Observable[T] {
		return NewObservableWithContext(func(subscriberCtx context.Context, destination Observer[T]) Teardown {
			subs := NewSubscription(nil)

			schedule := func(ctx context.Context, notif Notification[T]) {
				subs.AddUnsubscribable(scheduler.ScheduleDelayed(func() {
					notif.Deliver(ctx, destination)
				}, duration))
			}

			subs.AddUnsubscribable(source.SubscribeWithContext(
				subscriberCtx,
				NewObserverWithContext(
					func(ctx context.Context, value T) { schedule(ctx, NextNotification(value)) },
					func(ctx context.Context, err error) { schedule(ctx, ErrorNotification[T](err)) },
					func(ctx context.Context) { schedule(ctx, CompleteNotification[T]()) },
				),
			))

			return subs.Unsubscribe
		})
	}
}

// DelayEach blocks the emitting goroutine for duration before forwarding
// every value; unlike Delay it does not reorder relative to other work
// scheduled on the same scheduler, at the cost of slowing the source.
func DelayEach[T any](duration time.Duration) func(Observable[T]) Observable[T] {
	return func(source Observable[T]) Observable[T] {
		return Map(func(value T) T {
			time.Sleep(duration)
			return value
		})(source)
	}
}

// RepeatWith resubscribes to source count times in sequence, forwarding
// every intermediate completion as a resubscription rather than a terminal
// notification; only the final pass's completion reaches destination.
func RepeatWith[T any](count int64) func(Observable[T]) Observable[T] {
	if count < 0 {
		panic(ErrRepeatWithWrongCount)
	}

	return func(source Observable[T]) Observable[T] {
		if count == 0 {
			return Empty[T]()
		}

		return NewUnsafeObservableWithContext(func(subscriberCtx context.Context, destination Observer[T]) Teardown {
			lastCtx := subscriberCtx

			for pass := int64(0); pass < count && !destination.IsClosed(); pass++ {
				source.SubscribeWithContext(
					subscriberCtx,
					NewObserverWithContext(
						destination.NextWithContext,
						destination.ErrorWithContext,
						func(ctx context.Context) { lastCtx = ctx },
					),
				).Wait()
			}

			destination.CompleteWithContext(lastCtx)

			return nil
		})
	}
}

// Timeout raises a timeoutError if source does not emit any notification
// (including a first one) within duration of the previous one.
func Timeout[T any](duration time.Duration) func(Observable[T]) Observable[T] {
	return func(source Observable[T]) Observable[T] {
		return NewObservableWithContext(func(subscriberCtx context.Context, destination Observer[T]) Teardown {
			var lastSeen atomic.Value

			lastSeen.Store(subscriberCtx)

			watchdog := time.AfterFunc(duration, func() {
				ctx, _ := lastSeen.Load().(context.Context)
				destination.ErrorWithContext(ctx, newTimeoutError(duration))
			})

			// disarm pauses the watchdog around a delivery; only a value
			// rearms it, since a terminal delivery ends the race for good.
			disarm := func(deliver func()) {
				watchdog.Stop()
				deliver()
			}

			sub := source.SubscribeWithContext(
				subscriberCtx,
				NewObserverWithContext(
					func(ctx context.Context, value T) {
						disarm(func() { destination.NextWithContext(ctx, value) })
						lastSeen.Store(ctx)
						watchdog.Reset(duration)
					},
					func(ctx context.Context, err error) {
						disarm(func() { destination.ErrorWithContext(ctx, err) })
					},
					func(ctx context.Context) {
						disarm(func() { destination.CompleteWithContext(ctx) })
					},
				),
			)

			return func() {
				watchdog.Stop()
				sub.Unsubscribe()
			}
		})
	}
}
