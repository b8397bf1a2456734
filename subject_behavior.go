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

var _ Subject[int] = (*behaviorSubject[int])(nil)

// NewBehaviorSubject remembers the most recently emitted value (seeded with
// initial) and replays exactly that one value to each new subscriber. Once
// terminated, new subscribers only receive the terminal notification, not
// the last value.
func NewBehaviorSubject[T any](initial T) Subject[T] {
	return &behaviorSubject[T]{current: entry[T]{ctx: context.Background(), value: initial}}
}

type behaviorSubject[T any] struct {
	subjectBase[T]

	// current is guarded by the base's emitMu.
	current entry[T]
}

func (s *behaviorSubject[T]) Subscribe(destination Observer[T]) Subscription {
	return s.SubscribeWithContext(context.Background(), destination)
}

func (s *behaviorSubject[T]) SubscribeWithContext(ctx context.Context, destination Observer[T]) Subscription {
	s.core.emitMu.Lock()
	defer s.core.emitMu.Unlock()

	return s.core.join(ctx, destination, func(target Subscriber[T]) {
		if s.core.live() {
			target.NextWithContext(s.current.ctx, s.current.value)
		}
	})
}

func (s *behaviorSubject[T]) Next(value T) { s.NextWithContext(context.Background(), value) }

func (s *behaviorSubject[T]) NextWithContext(ctx context.Context, value T) {
	s.core.emitMu.Lock()
	defer s.core.emitMu.Unlock()

	if !s.core.live() {
		OnDroppedNotification(ctx, NextNotification(value))
		return
	}

	s.current = entry[T]{ctx: ctx, value: value}
	s.core.deliver(ctx, NextNotification(value))
}

func (s *behaviorSubject[T]) Error(err error) { s.ErrorWithContext(context.Background(), err) }

func (s *behaviorSubject[T]) ErrorWithContext(ctx context.Context, err error) {
	s.failWith(ctx, err)
}

func (s *behaviorSubject[T]) Complete() { s.CompleteWithContext(context.Background()) }

func (s *behaviorSubject[T]) CompleteWithContext(ctx context.Context) {
	s.endWith(ctx)
}

func (s *behaviorSubject[T]) AsObservable() Observable[T] { return s }
func (s *behaviorSubject[T]) AsObserver() Observer[T]     { return s }
