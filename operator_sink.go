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
	"cmp"
	"context"
	"slices"
	"sync"
	"time"
)

// ToSlice collects every item into a slice, emitted once as a single value
// when source completes. An empty source yields an empty slice.
func ToSlice[T any]() func(Observable[T]) Observable[[]T] {
	return func(source Observable[T]) Observable[[]T] {
		return collapse(source, func() (func(context.Context, T), func(context.Context, Observer[[]T])) {
			collected := []T{}

			return func(_ context.Context, value T) { collected = append(collected, value) },
				func(ctx context.Context, destination Observer[[]T]) {
					destination.NextWithContext(ctx, collected)
				}
		})
	}
}

// ToSortedSlice is ToSlice followed by a sort using less.
func ToSortedSlice[T any](less func(a, b T) bool) func(Observable[T]) Observable[[]T] {
	return func(source Observable[T]) Observable[[]T] {
		return Map(func(values []T) []T {
			sorted := slices.Clone(values)
			slices.SortFunc(sorted, func(a, b T) int {
				switch {
				case less(a, b):
					return -1
				case less(b, a):
					return 1
				default:
					return 0
				}
			})

			return sorted
		})(ToSlice[T]()(source))
	}
}

// ToSortedSliceOrdered is ToSortedSlice specialized on cmp.Ordered types,
// avoiding the need for an explicit less function.
func ToSortedSliceOrdered[T cmp.Ordered]() func(Observable[T]) Observable[[]T] {
	return ToSortedSlice[T](func(a, b T) bool { return a < b })
}

// ToMap collects every item into a map keyed by project, emitted once when
// source completes. Later items overwrite earlier ones under the same key.
func ToMap[T any, K comparable, V any](project func(item T) (K, V)) func(Observable[T]) Observable[map[K]V] {
	return func(source Observable[T]) Observable[map[K]V] {
		return collapse(source, func() (func(context.Context, T), func(context.Context, Observer[map[K]V])) {
			out := map[K]V{}

			return func(_ context.Context, value T) {
					k, v := project(value)
					out[k] = v
				},
				func(ctx context.Context, destination Observer[map[K]V]) {
					destination.NextWithContext(ctx, out)
				}
		})
	}
}

// ToChannel relays every item, reified as a Notification, onto a buffered
// channel of the given size, closing it on the source's terminal
// notification. The channel is emitted once, immediately, so the caller can
// start draining it before the source necessarily finishes.
func ToChannel[T any](size int) func(Observable[T]) Observable[<-chan Notification[T]] {
	if size < 0 {
		panic(ErrToChannelWrongSize)
	}

	return func(source Observable[T]) Observable[<-chan Notification[T]] {
		return NewObservableWithContext(func(subscriberCtx context.Context, destination Observer[<-chan Notification[T]]) Teardown {
			ch := make(chan Notification[T], size)

			var once sync.Once

			closeChan := func() { once.Do(func() { close(ch) }) }

			subs := NewSubscription(nil)

			go func() {
				time.Sleep(time.Millisecond)

				subs.AddUnsubscribable(source.SubscribeWithContext(
					subscriberCtx,
					NewObserverWithContext(
						func(ctx context.Context, value T) { ch <- NextNotification(value) },
						func(ctx context.Context, err error) {
							ch <- ErrorNotification[T](err)
							closeChan()
							destination.CompleteWithContext(ctx)
						},
						func(ctx context.Context) {
							ch <- CompleteNotification[T]()
							closeChan()
							destination.CompleteWithContext(ctx)
						},
					),
				))
			}()

			destination.NextWithContext(context.Background(), ch)

			return func() {
				subs.Unsubscribe()
				closeChan()
			}
		})
	}
}
