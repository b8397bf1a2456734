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

// All reports whether every item emitted by source satisfies predicate. It
// emits a single bool when the source completes; a failing item flips the
// verdict but the source is still drained until it terminates.
func All[T any](predicate func(item T) bool) func(Observable[T]) Observable[bool] {
	return AllIWithContext(func(_ context.Context, v T, _ int64) bool {
		return predicate(v)
	})
}

// AllWithContext is All with access to the per-event context.
func AllWithContext[T any](predicate func(ctx context.Context, item T) bool) func(Observable[T]) Observable[bool] {
	return AllIWithContext(func(ctx context.Context, item T, _ int64) bool {
		return predicate(ctx, item)
	})
}

// AllI is All with the item's zero-based index passed to the predicate.
func AllI[T any](predicate func(item T, index int64) bool) func(Observable[T]) Observable[bool] {
	return AllIWithContext(func(_ context.Context, item T, index int64) bool {
		return predicate(item, index)
	})
}

// AllIWithContext is All with both the context and the item's index.
func AllIWithContext[T any](predicate func(ctx context.Context, item T, index int64) bool) func(Observable[T]) Observable[bool] {
	return func(source Observable[T]) Observable[bool] {
		return operate(source, func(_ context.Context, destination Observer[bool]) Observer[T] {
			verdict := true
			i := int64(0)

			return NewObserverWithContext(
				func(ctx context.Context, value T) {
					if verdict {
						verdict = predicate(ctx, value, i)
					}

					i++
				},
				destination.ErrorWithContext,
				func(ctx context.Context) {
					destination.NextWithContext(ctx, verdict)
					destination.CompleteWithContext(ctx)
				},
			)
		})
	}
}

// Contains reports whether source emits at least one item satisfying
// predicate, completing on the first match without waiting for the source
// to complete.
func Contains[T any](predicate func(item T) bool) func(Observable[T]) Observable[bool] {
	return ContainsI(func(v T, _ int64) bool {
		return predicate(v)
	})
}

// ContainsWithContext is Contains with access to the per-event context.
func ContainsWithContext[T any](predicate func(ctx context.Context, item T) bool) func(Observable[T]) Observable[bool] {
	return ContainsIWithContext(func(ctx context.Context, v T, _ int64) bool {
		return predicate(ctx, v)
	})
}

// ContainsI is Contains with the item's zero-based index passed to the predicate.
func ContainsI[T any](predicate func(item T, index int64) bool) func(Observable[T]) Observable[bool] {
	return ContainsIWithContext(func(_ context.Context, v T, i int64) bool {
		return predicate(v, i)
	})
}

// ContainsIWithContext is Contains with both the context and the item's index.
func ContainsIWithContext[T any](predicate func(ctx context.Context, item T, index int64) bool) func(Observable[T]) Observable[bool] {
	return func(source Observable[T]) Observable[bool] {
		return operate(source, func(_ context.Context, destination Observer[bool]) Observer[T] {
			i := int64(0)

			conclude := func(ctx context.Context, outcome bool) {
				destination.NextWithContext(ctx, outcome)
				destination.CompleteWithContext(ctx)
			}

			return NewObserverWithContext(
				func(ctx context.Context, value T) {
					hit := predicate(ctx, value, i)
					i++

					if hit {
						conclude(ctx, true)
					}
				},
				destination.ErrorWithContext,
				func(ctx context.Context) { conclude(ctx, false) },
			)
		})
	}
}

// Find emits the first item satisfying predicate, then completes without
// waiting for the source. It completes with no emission if the source
// completes without a match.
func Find[T any](predicate func(item T) bool) func(Observable[T]) Observable[T] {
	return FindI(func(item T, _ int64) bool {
		return predicate(item)
	})
}

// FindWithContext is Find with access to the per-event context.
func FindWithContext[T any](predicate func(ctx context.Context, item T) bool) func(Observable[T]) Observable[T] {
	return FindIWithContext(func(ctx context.Context, v T, _ int64) bool {
		return predicate(ctx, v)
	})
}

// FindI is Find with the item's zero-based index passed to the predicate.
func FindI[T any](predicate func(item T, index int64) bool) func(Observable[T]) Observable[T] {
	return FindIWithContext(func(ctx context.Context, v T, i int64) bool {
		return predicate(v, i)
	})
}

// FindIWithContext is Find with both the context and the item's index.
func FindIWithContext[T any](predicate func(ctx context.Context, item T, index int64) bool) func(Observable[T]) Observable[T] {
	return func(source Observable[T]) Observable[T] {
		return operate(source, func(_ context.Context, destination Observer[T]) Observer[T] {
			i := int64(0)

			return NewObserverWithContext(
				func(ctx context.Context, value T) {
					hit := predicate(ctx, value, i)
					i++

					if hit {
						destination.NextWithContext(ctx, value)
						destination.CompleteWithContext(ctx)
					}
				},
				destination.ErrorWithContext,
				destination.CompleteWithContext,
			)
		})
	}
}

// Iif picks between two observables: each call of the returned function
// evaluates predicate and returns whenTrue or whenFalse. Subscribing to the
// chosen Observable does not evaluate predicate again.
func Iif[T any](predicate func() bool, whenTrue, whenFalse Observable[T]) func() Observable[T] {
	return func() Observable[T] {
		if predicate() {
			return whenTrue
		}

		return whenFalse
	}
}

// DefaultIfEmpty emits defaultValue if source completes without having
// emitted anything.
func DefaultIfEmpty[T any](defaultValue T) func(Observable[T]) Observable[T] {
	return DefaultIfEmptyWithContext(context.Background(), defaultValue)
}

// DefaultIfEmptyWithContext is DefaultIfEmpty with an explicit context for
// the synthesized default value.
func DefaultIfEmptyWithContext[T any](defaultCtx context.Context, defaultValue T) func(Observable[T]) Observable[T] {
	return func(source Observable[T]) Observable[T] {
		return operate(source, func(_ context.Context, destination Observer[T]) Observer[T] {
			empty := true

			return NewObserverWithContext(
				func(ctx context.Context, value T) {
					empty = false
					destination.NextWithContext(ctx, value)
				},
				destination.ErrorWithContext,
				func(ctx context.Context) {
					if empty {
						destination.NextWithContext(defaultCtx, defaultValue)
					}

					destination.CompleteWithContext(ctx)
				},
			)
		})
	}
}

// SequenceEqual compares source and other positionally, emitting one bool
// per pair of items: Zip2 with equality as the combiner. It inherits Zip2's
// discard-on-first-exhaustion policy: a source that keeps emitting past the
// point where the other has completed is not drained for a length mismatch,
// it simply stops being compared.
func SequenceEqual[T comparable](other Observable[T]) func(Observable[T]) Observable[bool] {
	return func(source Observable[T]) Observable[bool] {
		return Zip2(source, other, func(a, b T) bool { return a == b })
	}
}
