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
	"math"

	"golang.org/x/exp/constraints"
)

// Numeric is any type Sum/Average can accumulate without precision loss
// concerns beyond what float64 already has.
type Numeric interface {
	constraints.Integer | constraints.Float
}

// collapse folds the whole source into stage-local state and emits a single
// conclusion at completion. fold runs once per subscription and returns the
// step applied to every item plus the conclude that reports the result, so
// each subscriber accumulates independently.
func collapse[T, R any](source Observable[T], fold func() (step func(ctx context.Context, value T), conclude func(ctx context.Context, destination Observer[R]))) Observable[R] {
	return operate(source, func(_ context.Context, destination Observer[R]) Observer[T] {
		step, conclude := fold()

		return NewObserverWithContext(
			step,
			destination.ErrorWithContext,
			func(ctx context.Context) {
				conclude(ctx, destination)
				destination.CompleteWithContext(ctx)
			},
		)
	})
}

// Count emits the number of items source produced, once, at completion.
func Count[T any]() func(Observable[T]) Observable[int64] {
	return func(source Observable[T]) Observable[int64] {
		return collapse(source, func() (func(context.Context, T), func(context.Context, Observer[int64])) {
			total := int64(0)

			return func(context.Context, T) { total++ },
				func(ctx context.Context, destination Observer[int64]) {
					destination.NextWithContext(ctx, total)
				}
		})
	}
}

// Sum adds every item emitted by source, emitting the total once at
// completion. An empty source emits the zero value.
func Sum[T Numeric]() func(Observable[T]) Observable[T] {
	return func(source Observable[T]) Observable[T] {
		return collapse(source, func() (func(context.Context, T), func(context.Context, Observer[T])) {
			var total T

			return func(_ context.Context, value T) { total += value },
				func(ctx context.Context, destination Observer[T]) {
					destination.NextWithContext(ctx, total)
				}
		})
	}
}

// Average emits the arithmetic mean of every item source produced, once at
// completion. An empty source emits NaN.
func Average[T Numeric]() func(Observable[T]) Observable[float64] {
	return func(source Observable[T]) Observable[float64] {
		return collapse(source, func() (func(context.Context, T), func(context.Context, Observer[float64])) {
			sum, count := float64(0), float64(0)

			return func(_ context.Context, value T) {
					sum += float64(value)
					count++
				},
				func(ctx context.Context, destination Observer[float64]) {
					if count == 0 {
						destination.NextWithContext(ctx, math.NaN())
						return
					}

					destination.NextWithContext(ctx, sum/count)
				}
		})
	}
}

// Min emits the smallest item source produced, once at completion. An
// empty source emits nothing and just completes.
func Min[T constraints.Ordered]() func(Observable[T]) Observable[T] {
	return extremum[T](func(candidate, current T) bool { return candidate < current })
}

// Max emits the largest item source produced, once at completion. An
// empty source emits nothing and just completes.
func Max[T constraints.Ordered]() func(Observable[T]) Observable[T] {
	return extremum[T](func(candidate, current T) bool { return candidate > current })
}

func extremum[T constraints.Ordered](better func(candidate, current T) bool) func(Observable[T]) Observable[T] {
	return func(source Observable[T]) Observable[T] {
		return collapse(source, func() (func(context.Context, T), func(context.Context, Observer[T])) {
			var best T

			found := false

			return func(_ context.Context, value T) {
					if !found || better(value, best) {
						best = value
						found = true
					}
				},
				func(ctx context.Context, destination Observer[T]) {
					if found {
						destination.NextWithContext(ctx, best)
					}
				}
		})
	}
}

// Round emits the rounded values produced by source.
func Round() func(Observable[float64]) Observable[float64] {
	return Map(math.Round)
}

// Abs emits the absolute values produced by source.
func Abs() func(Observable[float64]) Observable[float64] {
	return Map(math.Abs)
}

// Floor emits the floor of the values produced by source.
func Floor() func(Observable[float64]) Observable[float64] {
	return Map(math.Floor)
}

// Ceil emits the ceiling of the values produced by source.
func Ceil() func(Observable[float64]) Observable[float64] {
	return Map(math.Ceil)
}

// Trunc emits the truncated values produced by source.
func Trunc() func(Observable[float64]) Observable[float64] {
	return Map(math.Trunc)
}

// Clamp restricts every value produced by source to the inclusive [lower,
// upper] range.
func Clamp[T constraints.Ordered](lower, upper T) func(Observable[T]) Observable[T] {
	if lower > upper {
		panic(ErrClampLowerLessThanUpper)
	}

	return Map(func(value T) T {
		switch {
		case value < lower:
			return lower
		case value > upper:
			return upper
		default:
			return value
		}
	})
}
