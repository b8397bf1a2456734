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
)

// StartWith prepends the given values, in order, before anything source
// emits.
func StartWith[T any](prefixes ...T) func(Observable[T]) Observable[T] {
	return func(source Observable[T]) Observable[T] {
		return Concat(Of(prefixes...), source)
	}
}

// Concat subscribes to each Observable in order, forwarding every item; it
// only subscribes to the next one after the previous completes, and
// terminates (without subscribing to the remainder) on the first error.
func Concat[T any](sources ...Observable[T]) Observable[T] {
	return NewObservableWithContext(func(subscriberCtx context.Context, destination Observer[T]) Teardown {
		inner := NewSubscription(nil)
		cancelled := false

		var subscribeNext func(i int)

		subscribeNext = func(i int) {
			if cancelled {
				return
			}

			if i >= len(sources) {
				destination.CompleteWithContext(subscriberCtx)
				return
			}

			inner.AddUnsubscribable(sources[i].SubscribeWithContext(
				subscriberCtx,
				NewObserverWithContext(
					destination.NextWithContext,
					destination.ErrorWithContext,
					func(ctx context.Context) { subscribeNext(i + 1) },
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

// TakeUntil forwards items from source until other emits its first item or
// completes, at which point it completes downstream and unsubscribes both
// source and other. An error from other is forwarded downstream as an error.
func TakeUntil[T, U any](other Observable[U]) func(Observable[T]) Observable[T] {
	return func(source Observable[T]) Observable[T] {
		return NewObservableWithContext(func(subscriberCtx context.Context, destination Observer[T]) Teardown {
			subs := NewSubscription(nil)

			stop := func(ctx context.Context) {
				destination.CompleteWithContext(ctx)
				subs.Unsubscribe()
			}

			subs.AddUnsubscribable(other.SubscribeWithContext(
				subscriberCtx,
				NewObserverWithContext(
					func(ctx context.Context, _ U) { stop(ctx) },
					func(ctx context.Context, err error) { destination.ErrorWithContext(ctx, err); subs.Unsubscribe() },
					stop,
				),
			))

			subs.AddUnsubscribable(source.SubscribeWithContext(
				subscriberCtx,
				NewObserverWithContext(
					destination.NextWithContext,
					destination.ErrorWithContext,
					destination.CompleteWithContext,
				),
			))

			return subs.Unsubscribe
		})
	}
}

// Merge subscribes to every source concurrently and forwards every item as
// it arrives; the first error from any source terminates the whole chain
// immediately, unsubscribing the rest.
func Merge[T any](sources ...Observable[T]) Observable[T] {
	return mergeSources(sources, false)
}

// MergeDelayError is Merge, except that an error from any source is held
// back until every source has finished; if more than one source errored,
// the errors are joined into a single error with errors.Join.
func MergeDelayError[T any](sources ...Observable[T]) Observable[T] {
	return mergeSources(sources, true)
}

func mergeSources[T any](sources []Observable[T], delayError bool) Observable[T] {
	return NewObservableWithContext(func(subscriberCtx context.Context, destination Observer[T]) Teardown {
		var mu sync.Mutex

		remaining := len(sources)
		var errs []error
		done := false

		inner := NewSubscription(nil)

		finishOne := func(ctx context.Context, err error) {
			mu.Lock()

			if err != nil {
				if delayError {
					errs = append(errs, err)
				} else if !done {
					done = true
					mu.Unlock()
					destination.ErrorWithContext(ctx, err)
					inner.Unsubscribe()

					return
				}
			}

			remaining--
			finished := remaining == 0 && !done
			if finished {
				done = true
			}

			collected := errs
			mu.Unlock()

			if finished {
				if len(collected) > 0 {
					destination.ErrorWithContext(ctx, errors.Join(collected...))
				} else {
					destination.CompleteWithContext(ctx)
				}
			}
		}

		if len(sources) == 0 {
			destination.CompleteWithContext(subscriberCtx)
			return nil
		}

		for _, s := range sources {
			inner.AddUnsubscribable(s.SubscribeWithContext(
				subscriberCtx,
				NewObserverWithContext(
					destination.NextWithContext,
					func(ctx context.Context, err error) { finishOne(ctx, err) },
					func(ctx context.Context) { finishOne(ctx, nil) },
				),
			))
		}

		return inner.Unsubscribe
	})
}

// MergeAll flattens a higher-order Observable (an Observable of
// Observables) by subscribing to every inner Observable concurrently as it
// arrives, forwarding all of their items.
func MergeAll[T any]() func(Observable[Observable[T]]) Observable[T] {
	return func(source Observable[Observable[T]]) Observable[T] {
		return FlatMap(func(inner Observable[T]) Observable[T] { return inner })(source)
	}
}

// SwitchDo flattens a higher-order Observable by subscribing only to the
// latest inner Observable: whenever a new inner Observable arrives, the
// previous one is unsubscribed immediately, even mid-emission.
func SwitchDo[T any]() func(Observable[Observable[T]]) Observable[T] {
	return func(source Observable[Observable[T]]) Observable[T] {
		return NewObservableWithContext(func(subscriberCtx context.Context, destination Observer[T]) Teardown {
			var mu sync.Mutex

			currentInner := NewSubscription(nil)
			outerDone := false
			innerDone := true

			checkComplete := func(ctx context.Context) {
				mu.Lock()
				shouldComplete := outerDone && innerDone
				mu.Unlock()

				if shouldComplete {
					destination.CompleteWithContext(ctx)
				}
			}

			outer := source.SubscribeWithContext(
				subscriberCtx,
				NewObserverWithContext(
					func(ctx context.Context, inner Observable[T]) {
						next := NewSubscription(nil)

						mu.Lock()
						currentInner.Unsubscribe()
						currentInner = next
						innerDone = false
						mu.Unlock()

						next.AddUnsubscribable(inner.SubscribeWithContext(
							ctx,
							NewObserverWithContext(
								destination.NextWithContext,
								destination.ErrorWithContext,
								func(innerCtx context.Context) {
									mu.Lock()
									innerDone = true
									mu.Unlock()

									checkComplete(innerCtx)
								},
							),
						))
					},
					destination.ErrorWithContext,
					func(ctx context.Context) {
						mu.Lock()
						outerDone = true
						mu.Unlock()

						checkComplete(ctx)
					},
				),
			)

			return func() {
				outer.Unsubscribe()

				mu.Lock()
				inner := currentInner
				mu.Unlock()

				inner.Unsubscribe()
			}
		})
	}
}

// Zip2 pairs items positionally from two sources strictly by index: the
// i-th combined value is emitted only once both sources have produced their
// i-th item. It completes as soon as either source completes with an empty
// buffer; leftover buffered values on the other source are discarded.
func Zip2[A, B, R any](sourceA Observable[A], sourceB Observable[B], combine func(a A, b B) R) Observable[R] {
	return NewObservableWithContext(func(subscriberCtx context.Context, destination Observer[R]) Teardown {
		var mu sync.Mutex

		var bufA []A

		var bufB []B

		doneA, doneB := false, false
		terminated := false

		// tryEmit must be called, and its caller must re-check for
		// completion, every time either buffer changes: a source's
		// completion only ends the zip once its own buffer cannot produce
		// any further pair, since the other source may not have finished
		// emitting yet (e.g. it hasn't even been subscribed to, for two
		// fully synchronous sources).
		tryEmit := func(ctx context.Context) {
			mu.Lock()

			var toEmit []R

			for len(bufA) > 0 && len(bufB) > 0 {
				toEmit = append(toEmit, combine(bufA[0], bufB[0]))
				bufA = bufA[1:]
				bufB = bufB[1:]
			}

			shouldTerminate := !terminated && ((doneA && len(bufA) == 0) || (doneB && len(bufB) == 0))
			if shouldTerminate {
				terminated = true
			}

			mu.Unlock()

			for _, v := range toEmit {
				destination.NextWithContext(ctx, v)
			}

			if shouldTerminate {
				destination.CompleteWithContext(ctx)
			}
		}

		terminate := func(ctx context.Context, err error) {
			mu.Lock()
			shouldTerminate := !terminated
			terminated = true
			mu.Unlock()

			if shouldTerminate {
				destination.ErrorWithContext(ctx, err)
			}
		}

		inner := NewSubscription(nil)

		inner.AddUnsubscribable(sourceA.SubscribeWithContext(
			subscriberCtx,
			NewObserverWithContext(
				func(ctx context.Context, v A) {
					mu.Lock()
					bufA = append(bufA, v)
					mu.Unlock()
					tryEmit(ctx)
				},
				terminate,
				func(ctx context.Context) {
					mu.Lock()
					doneA = true
					mu.Unlock()
					tryEmit(ctx)
				},
			),
		))

		inner.AddUnsubscribable(sourceB.SubscribeWithContext(
			subscriberCtx,
			NewObserverWithContext(
				func(ctx context.Context, v B) {
					mu.Lock()
					bufB = append(bufB, v)
					mu.Unlock()
					tryEmit(ctx)
				},
				terminate,
				func(ctx context.Context) {
					mu.Lock()
					doneB = true
					mu.Unlock()
					tryEmit(ctx)
				},
			),
		))

		return inner.Unsubscribe
	})
}

// Zip3 is Zip2 for three sources.
func Zip3[A, B, C, R any](a Observable[A], b Observable[B], c Observable[C], combine func(A, B, C) R) Observable[R] {
	type pair struct {
		b B
		c C
	}

	bc := Zip2(b, c, func(b B, c C) pair { return pair{b: b, c: c} })

	return Zip2(a, bc, func(a A, p pair) R { return combine(a, p.b, p.c) })
}

// Zip4 is Zip2 for four sources.
func Zip4[A, B, C, D, R any](a Observable[A], b Observable[B], c Observable[C], d Observable[D], combine func(A, B, C, D) R) Observable[R] {
	type pair struct {
		c C
		d D
	}

	cd := Zip2(c, d, func(c C, d D) pair { return pair{c: c, d: d} })

	return Zip3(a, b, cd, func(a A, b B, p pair) R { return combine(a, b, p.c, p.d) })
}

// CombineLatest2 holds the most recent value from each of two sources,
// emitting combine(a, b) whenever either emits — once both have produced at
// least one value. It completes when both sources have completed, and
// errors immediately on either source's error.
func CombineLatest2[A, B, R any](sourceA Observable[A], sourceB Observable[B], combine func(a A, b B) R) Observable[R] {
	return NewObservableWithContext(func(subscriberCtx context.Context, destination Observer[R]) Teardown {
		var mu sync.Mutex

		var valueA A

		var valueB B

		hasA, hasB := false, false
		doneA, doneB := false, false
		terminated := false

		// State is snapshotted under mu, then emitted outside it: the
		// destination callback must never run while the lock is held.
		emit := func(ctx context.Context) {
			mu.Lock()
			ready := hasA && hasB && !terminated
			a, b := valueA, valueB
			mu.Unlock()

			if ready {
				destination.NextWithContext(ctx, combine(a, b))
			}
		}

		checkComplete := func(ctx context.Context) {
			mu.Lock()
			shouldComplete := doneA && doneB && !terminated
			if shouldComplete {
				terminated = true
			}
			mu.Unlock()

			if shouldComplete {
				destination.CompleteWithContext(ctx)
			}
		}

		terminate := func(ctx context.Context, err error) {
			mu.Lock()
			shouldTerminate := !terminated
			terminated = true
			mu.Unlock()

			if shouldTerminate {
				destination.ErrorWithContext(ctx, err)
			}
		}

		inner := NewSubscription(nil)

		inner.AddUnsubscribable(sourceA.SubscribeWithContext(
			subscriberCtx,
			NewObserverWithContext(
				func(ctx context.Context, v A) {
					mu.Lock()
					valueA, hasA = v, true
					mu.Unlock()
					emit(ctx)
				},
				terminate,
				func(ctx context.Context) {
					mu.Lock()
					doneA = true
					mu.Unlock()
					checkComplete(ctx)
				},
			),
		))

		inner.AddUnsubscribable(sourceB.SubscribeWithContext(
			subscriberCtx,
			NewObserverWithContext(
				func(ctx context.Context, v B) {
					mu.Lock()
					valueB, hasB = v, true
					mu.Unlock()
					emit(ctx)
				},
				terminate,
				func(ctx context.Context) {
					mu.Lock()
					doneB = true
					mu.Unlock()
					checkComplete(ctx)
				},
			),
		))

		return inner.Unsubscribe
	})
}

// CombineLatest3 is CombineLatest2 for three sources.
func CombineLatest3[A, B, C, R any](a Observable[A], b Observable[B], c Observable[C], combine func(A, B, C) R) Observable[R] {
	type pair struct {
		b B
		c C
	}

	bc := CombineLatest2(b, c, func(b B, c C) pair { return pair{b: b, c: c} })

	return CombineLatest2(a, bc, func(a A, p pair) R { return combine(a, p.b, p.c) })
}

// CombineLatest4 is CombineLatest2 for four sources.
func CombineLatest4[A, B, C, D, R any](a Observable[A], b Observable[B], c Observable[C], d Observable[D], combine func(A, B, C, D) R) Observable[R] {
	type pair struct {
		c C
		d D
	}

	cd := CombineLatest2(c, d, func(c C, d D) pair { return pair{c: c, d: d} })

	return CombineLatest3(a, b, cd, func(a A, b B, p pair) R { return combine(a, b, p.c, p.d) })
}
