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
)

// Filter emits only the items from an Observable that pass a predicate test.
func Filter[T any](predicate func(item T) bool) func(Observable[T]) Observable[T] {
	return FilterIWithContext(func(ctx context.Context, v T, _ int64) (context.Context, bool) {
		return ctx, predicate(v)
	})
}

// FilterWithContext is Filter with access to the per-event context.
func FilterWithContext[T any](predicate func(ctx context.Context, item T) (context.Context, bool)) func(Observable[T]) Observable[T] {
	return FilterIWithContext(func(ctx context.Context, v T, _ int64) (context.Context, bool) {
		return predicate(ctx, v)
	})
}

// FilterI is Filter with the item's zero-based index passed to the predicate.
func FilterI[T any](predicate func(item T, index int64) bool) func(Observable[T]) Observable[T] {
	return FilterIWithContext(func(ctx context.Context, v T, i int64) (context.Context, bool) {
		return ctx, predicate(v, i)
	})
}

// FilterIWithContext is Filter with both the context and the item's index.
func FilterIWithContext[T any](predicate func(ctx context.Context, item T, index int64) (context.Context, bool)) func(Observable[T]) Observable[T] {
	return func(source Observable[T]) Observable[T] {
		return operate(source, func(_ context.Context, destination Observer[T]) Observer[T] {
			i := int64(0)

			return NewObserverWithContext(
				func(ctx context.Context, value T) {
					ctx, keep := predicate(ctx, value, i)
					i++

					if keep {
						destination.NextWithContext(ctx, value)
					}
				},
				destination.ErrorWithContext,
				destination.CompleteWithContext,
			)
		})
	}
}

// Distinct suppresses duplicate items emitted by an Observable.
func Distinct[T comparable]() func(Observable[T]) Observable[T] {
	return DistinctBy(func(item T) T { return item })
}

// DistinctBy suppresses duplicate items based on a key selector.
func DistinctBy[T any, K comparable](keySelector func(item T) K) func(Observable[T]) Observable[T] {
	return DistinctByWithContext(func(ctx context.Context, item T) (context.Context, K) {
		return ctx, keySelector(item)
	})
}

// DistinctByWithContext is DistinctBy with access to the per-event context.
func DistinctByWithContext[T any, K comparable](keySelector func(ctx context.Context, item T) (context.Context, K)) func(Observable[T]) Observable[T] {
	return func(source Observable[T]) Observable[T] {
		return operate(source, func(_ context.Context, destination Observer[T]) Observer[T] {
			seen := map[K]struct{}{}

			return NewObserverWithContext(
				func(ctx context.Context, value T) {
					ctx, key := keySelector(ctx, value)
					if _, dup := seen[key]; dup {
						return
					}

					seen[key] = struct{}{}
					destination.NextWithContext(ctx, value)
				},
				destination.ErrorWithContext,
				destination.CompleteWithContext,
			)
		})
	}
}

// IgnoreElements discards every value but mirrors the termination
// notification, useful when only completion/error matters.
func IgnoreElements[T any]() func(Observable[T]) Observable[T] {
	return Filter(func(T) bool { return false })
}

// Skip suppresses the first count items emitted by an Observable.
func Skip[T any](count int64) func(Observable[T]) Observable[T] {
	if count < 0 {
		panic(ErrSkipWrongCount)
	}

	return FilterI[T](func(_ T, index int64) bool { return index >= count })
}

// SkipWhile skips items until predicate first returns false, then emits
// every subsequent item.
func SkipWhile[T any](predicate func(item T) bool) func(Observable[T]) Observable[T] {
	return SkipWhileI(func(v T, _ int64) bool { return predicate(v) })
}

// SkipWhileWithContext is SkipWhile with access to the per-event context.
func SkipWhileWithContext[T any](predicate func(ctx context.Context, item T) (context.Context, bool)) func(Observable[T]) Observable[T] {
	return SkipWhileIWithContext(func(ctx context.Context, v T, _ int64) (context.Context, bool) {
		return predicate(ctx, v)
	})
}

// SkipWhileI is SkipWhile with the item's zero-based index.
func SkipWhileI[T any](predicate func(item T, index int64) bool) func(Observable[T]) Observable[T] {
	return SkipWhileIWithContext(func(ctx context.Context, v T, i int64) (context.Context, bool) {
		return ctx, predicate(v, i)
	})
}

// SkipWhileIWithContext is SkipWhile with both the context and the index.
func SkipWhileIWithContext[T any](predicate func(ctx context.Context, item T, index int64) (context.Context, bool)) func(Observable[T]) Observable[T] {
	return func(source Observable[T]) Observable[T] {
		return operate(source, func(_ context.Context, destination Observer[T]) Observer[T] {
			skipping := true
			i := int64(0)

			return NewObserverWithContext(
				func(ctx context.Context, value T) {
					if skipping {
						newCtx, skip := predicate(ctx, value, i)
						i++

						if skip {
							return
						}

						skipping = false
						ctx = newCtx
					}

					destination.NextWithContext(ctx, value)
				},
				destination.ErrorWithContext,
				destination.CompleteWithContext,
			)
		})
	}
}

// SkipLast suppresses the last count items emitted by an Observable. Each
// item is held back until count further items have arrived, so emission
// lags the source by count.
func SkipLast[T any](count int) func(Observable[T]) Observable[T] {
	if count < 1 {
		panic(ErrSkipLastWrongCount)
	}

	return func(source Observable[T]) Observable[T] {
		return operate(source, func(_ context.Context, destination Observer[T]) Observer[T] {
			held := make([]entry[T], 0, count)
			next := 0

			return NewObserverWithContext(
				func(ctx context.Context, value T) {
					if len(held) < count {
						held = append(held, entry[T]{ctx: ctx, value: value})
						return
					}

					evicted := held[next]
					held[next] = entry[T]{ctx: ctx, value: value}
					next = (next + 1) % count

					destination.NextWithContext(evicted.ctx, evicted.value)
				},
				destination.ErrorWithContext,
				destination.CompleteWithContext,
			)
		})
	}
}

// SkipUntil suppresses items from source until signal emits a value, then
// emits every subsequent item. An error on signal is forwarded downstream.
func SkipUntil[T, S any](signal Observable[S]) func(Observable[T]) Observable[T] {
	return func(source Observable[T]) Observable[T] {
		return NewObservableWithContext(func(subscriberCtx context.Context, destination Observer[T]) Teardown {
			var open atomic.Bool

			subs := NewSubscription(nil)

			subs.AddUnsubscribable(source.SubscribeWithContext(
				subscriberCtx,
				NewObserverWithContext(
					func(ctx context.Context, value T) {
						if open.Load() {
							destination.NextWithContext(ctx, value)
						}
					},
					destination.ErrorWithContext,
					destination.CompleteWithContext,
				),
			))

			subs.AddUnsubscribable(signal.SubscribeWithContext(
				subscriberCtx,
				NewObserverWithContext(
					func(context.Context, S) { open.Store(true) },
					destination.ErrorWithContext,
					func(context.Context) {},
				),
			))

			return subs.Unsubscribe
		})
	}
}

// Take emits only the first count items emitted by an Observable, then
// completes. Take(0) completes immediately without subscribing the source.
func Take[T any](count int64) func(Observable[T]) Observable[T] {
	if count < 0 {
		panic(ErrTakeWrongCount)
	}

	return func(source Observable[T]) Observable[T] {
		if count == 0 {
			return Empty[T]()
		}

		return operate(source, func(_ context.Context, destination Observer[T]) Observer[T] {
			remaining := count

			return NewObserverWithContext(
				func(ctx context.Context, value T) {
					if remaining == 0 {
						return
					}

					remaining--
					destination.NextWithContext(ctx, value)

					if remaining == 0 {
						destination.CompleteWithContext(ctx)
					}
				},
				destination.ErrorWithContext,
				destination.CompleteWithContext,
			)
		})
	}
}

// TakeWhile emits items so long as predicate holds, then completes.
func TakeWhile[T any](predicate func(item T) bool) func(Observable[T]) Observable[T] {
	return TakeWhileIWithContext(func(ctx context.Context, v T, _ int64) (context.Context, bool) {
		return ctx, predicate(v)
	})
}

// TakeWhileWithContext is TakeWhile with access to the per-event context.
func TakeWhileWithContext[T any](predicate func(ctx context.Context, item T) (context.Context, bool)) func(Observable[T]) Observable[T] {
	return TakeWhileIWithContext(func(ctx context.Context, v T, _ int64) (context.Context, bool) {
		return predicate(ctx, v)
	})
}

// TakeWhileI is TakeWhile with the item's zero-based index.
func TakeWhileI[T any](predicate func(item T, index int64) bool) func(Observable[T]) Observable[T] {
	return TakeWhileIWithContext(func(ctx context.Context, v T, i int64) (context.Context, bool) {
		return ctx, predicate(v, i)
	})
}

// TakeWhileIWithContext is TakeWhile with both the context and the index.
func TakeWhileIWithContext[T any](predicate func(ctx context.Context, item T, index int64) (context.Context, bool)) func(Observable[T]) Observable[T] {
	return func(source Observable[T]) Observable[T] {
		return operate(source, func(_ context.Context, destination Observer[T]) Observer[T] {
			taking := true
			i := int64(0)

			return NewObserverWithContext(
				func(ctx context.Context, value T) {
					if !taking {
						return
					}

					ctx, keep := predicate(ctx, value, i)
					i++

					if keep {
						destination.NextWithContext(ctx, value)
						return
					}

					taking = false
					destination.CompleteWithContext(ctx)
				},
				func(ctx context.Context, err error) {
					if taking {
						destination.ErrorWithContext(ctx, err)
					}
				},
				func(ctx context.Context) {
					if taking {
						destination.CompleteWithContext(ctx)
					}
				},
			)
		})
	}
}

// TakeLast emits only the last count items emitted by an Observable, right
// before it completes. TakeLast(0) completes immediately without
// subscribing the source.
func TakeLast[T any](count int) func(Observable[T]) Observable[T] {
	if count < 0 {
		panic(ErrTakeLastWrongCount)
	}

	return func(source Observable[T]) Observable[T] {
		if count == 0 {
			return Empty[T]()
		}

		return operate(source, func(_ context.Context, destination Observer[T]) Observer[T] {
			var tail []entry[T]

			return NewObserverWithContext(
				func(ctx context.Context, value T) {
					tail = append(tail, entry[T]{ctx: ctx, value: value})
					if len(tail) > count {
						tail = tail[1:]
					}
				},
				destination.ErrorWithContext,
				func(ctx context.Context) {
					for _, e := range tail {
						destination.NextWithContext(e.ctx, e.value)
					}

					destination.CompleteWithContext(ctx)
				},
			)
		})
	}
}

// Head emits only the first item emitted by an Observable. If source is
// empty, Head errors with ErrHeadEmpty.
func Head[T any]() func(Observable[T]) Observable[T] {
	return func(source Observable[T]) Observable[T] {
		return operate(source, func(_ context.Context, destination Observer[T]) Observer[T] {
			return NewObserverWithContext(
				func(ctx context.Context, value T) {
					destination.NextWithContext(ctx, value)
					destination.CompleteWithContext(ctx)
				},
				destination.ErrorWithContext,
				func(ctx context.Context) {
					destination.ErrorWithContext(ctx, ErrHeadEmpty)
				},
			)
		})
	}
}

// Tail emits only the last item emitted by an Observable. If source is
// empty, Tail errors with ErrTailEmpty.
func Tail[T any]() func(Observable[T]) Observable[T] {
	return func(source Observable[T]) Observable[T] {
		return operate(source, func(_ context.Context, destination Observer[T]) Observer[T] {
			var last entry[T]

			hasValue := false

			return NewObserverWithContext(
				func(ctx context.Context, value T) {
					last = entry[T]{ctx: ctx, value: value}
					hasValue = true
				},
				destination.ErrorWithContext,
				func(ctx context.Context) {
					if !hasValue {
						destination.ErrorWithContext(ctx, ErrTailEmpty)
						return
					}

					destination.NextWithContext(last.ctx, last.value)
					destination.CompleteWithContext(ctx)
				},
			)
		})
	}
}

// First emits only the first item satisfying predicate, then completes. If
// none does, First errors with ErrFirstEmpty.
func First[T any](predicate func(item T) bool) func(Observable[T]) Observable[T] {
	return FirstI(func(v T, _ int64) bool { return predicate(v) })
}

// FirstWithContext is First with access to the per-event context.
func FirstWithContext[T any](predicate func(ctx context.Context, item T) (context.Context, bool)) func(Observable[T]) Observable[T] {
	return FirstIWithContext(func(ctx context.Context, v T, _ int64) (context.Context, bool) {
		return predicate(ctx, v)
	})
}

// FirstI is First with the item's zero-based index.
func FirstI[T any](predicate func(item T, index int64) bool) func(Observable[T]) Observable[T] {
	return FirstIWithContext(func(ctx context.Context, v T, i int64) (context.Context, bool) {
		return ctx, predicate(v, i)
	})
}

// FirstIWithContext is First with both the context and the index.
func FirstIWithContext[T any](predicate func(ctx context.Context, item T, index int64) (context.Context, bool)) func(Observable[T]) Observable[T] {
	return func(source Observable[T]) Observable[T] {
		return operate(source, func(_ context.Context, destination Observer[T]) Observer[T] {
			i := int64(0)

			return NewObserverWithContext(
				func(ctx context.Context, value T) {
					ctx, hit := predicate(ctx, value, i)
					i++

					if hit {
						destination.NextWithContext(ctx, value)
						destination.CompleteWithContext(ctx)
					}
				},
				destination.ErrorWithContext,
				func(ctx context.Context) {
					destination.ErrorWithContext(ctx, ErrFirstEmpty)
				},
			)
		})
	}
}

// Last emits only the last item satisfying predicate, at completion. If
// none does, Last errors with ErrLastEmpty.
func Last[T any](predicate func(item T) bool) func(Observable[T]) Observable[T] {
	return LastI(func(v T, _ int64) bool { return predicate(v) })
}

// LastWithContext is Last with access to the per-event context.
func LastWithContext[T any](predicate func(ctx context.Context, item T) (context.Context, bool)) func(Observable[T]) Observable[T] {
	return LastIWithContext(func(ctx context.Context, item T, _ int64) (context.Context, bool) {
		return predicate(ctx, item)
	})
}

// LastI is Last with the item's zero-based index.
func LastI[T any](predicate func(item T, index int64) bool) func(Observable[T]) Observable[T] {
	return LastIWithContext(func(ctx context.Context, v T, i int64) (context.Context, bool) {
		return ctx, predicate(v, i)
	})
}

// LastIWithContext is Last with both the context and the index.
func LastIWithContext[T any](predicate func(ctx context.Context, item T, index int64) (context.Context, bool)) func(Observable[T]) Observable[T] {
	return func(source Observable[T]) Observable[T] {
		return operate(source, func(_ context.Context, destination Observer[T]) Observer[T] {
			var match entry[T]

			hasMatch := false
			i := int64(0)

			return NewObserverWithContext(
				func(ctx context.Context, value T) {
					ctx, hit := predicate(ctx, value, i)
					i++

					if hit {
						match = entry[T]{ctx: ctx, value: value}
						hasMatch = true
					}
				},
				destination.ErrorWithContext,
				func(ctx context.Context) {
					if !hasMatch {
						destination.ErrorWithContext(ctx, ErrLastEmpty)
						return
					}

					destination.NextWithContext(match.ctx, match.value)
					destination.CompleteWithContext(match.ctx)
				},
			)
		})
	}
}

// ElementAt emits only the nth item emitted by an Observable (zero-based),
// then completes. If source emits fewer than nth+1 items, ElementAt errors
// with ErrElementAtNotFound.
func ElementAt[T any](nth int) func(Observable[T]) Observable[T] {
	if nth < 0 {
		panic(ErrElementAtWrongNth)
	}

	return func(source Observable[T]) Observable[T] {
		return operate(source, func(_ context.Context, destination Observer[T]) Observer[T] {
			position := 0

			return NewObserverWithContext(
				func(ctx context.Context, value T) {
					if position == nth {
						destination.NextWithContext(ctx, value)
						destination.CompleteWithContext(ctx)
					}

					position++
				},
				destination.ErrorWithContext,
				func(ctx context.Context) {
					destination.ErrorWithContext(ctx, ErrElementAtNotFound)
				},
			)
		})
	}
}

// ElementAtOrDefault is ElementAt but emits fallback instead of erroring
// when source emits fewer than nth+1 items.
func ElementAtOrDefault[T any](nth int64, fallback T) func(Observable[T]) Observable[T] {
	if nth < 0 {
		panic(ErrElementAtOrDefaultWrongNth)
	}

	return func(source Observable[T]) Observable[T] {
		return operate(source, func(_ context.Context, destination Observer[T]) Observer[T] {
			position := int64(0)

			return NewObserverWithContext(
				func(ctx context.Context, value T) {
					if position == nth {
						destination.NextWithContext(ctx, value)
						destination.CompleteWithContext(ctx)
					}

					position++
				},
				destination.ErrorWithContext,
				func(ctx context.Context) {
					destination.NextWithContext(ctx, fallback)
					destination.CompleteWithContext(ctx)
				},
			)
		})
	}
}
