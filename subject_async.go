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

var _ Subject[int] = (*asyncSubject[int])(nil)

// NewAsyncSubject emits at most one value: its last, and only on
// completion. A subscriber that never received a Next sees Complete with
// no emission. Late subscribers (after completion) immediately replay the
// cached value and terminal notification.
func NewAsyncSubject[T any]() Subject[T] {
	return &asyncSubject[T]{}
}

type asyncSubject[T any] struct {
	subjectBase[T]

	// last is guarded by the base's emitMu.
	last    entry[T]
	hasLast bool
}

func (s *asyncSubject[T]) Subscribe(destination Observer[T]) Subscription {
	return s.SubscribeWithContext(context.Background(), destination)
}

func (s *asyncSubject[T]) SubscribeWithContext(ctx context.Context, destination Observer[T]) Subscription {
	s.core.emitMu.Lock()
	defer s.core.emitMu.Unlock()

	return s.core.join(ctx, destination, func(target Subscriber[T]) {
		if s.core.state.Load() == subjectDone && s.hasLast {
			target.NextWithContext(s.last.ctx, s.last.value)
		}
	})
}

func (s *asyncSubject[T]) Next(value T) { s.NextWithContext(context.Background(), value) }

// NextWithContext only caches: nothing is delivered until completion, and a
// newer value silently replaces the cached one.
func (s *asyncSubject[T]) NextWithContext(ctx context.Context, value T) {
	s.core.emitMu.Lock()
	defer s.core.emitMu.Unlock()

	if !s.core.live() {
		OnDroppedNotification(ctx, NextNotification(value))
		return
	}

	s.last = entry[T]{ctx: ctx, value: value}
	s.hasLast = true
}

func (s *asyncSubject[T]) Error(err error) { s.ErrorWithContext(context.Background(), err) }

func (s *asyncSubject[T]) ErrorWithContext(ctx context.Context, err error) {
	s.failWith(ctx, err)
}

func (s *asyncSubject[T]) Complete() { s.CompleteWithContext(context.Background()) }

func (s *asyncSubject[T]) CompleteWithContext(ctx context.Context) {
	s.core.emitMu.Lock()
	defer s.core.emitMu.Unlock()

	if !s.core.live() {
		OnDroppedNotification(ctx, CompleteNotification[T]())
		return
	}

	if s.hasLast {
		s.core.deliver(s.last.ctx, NextNotification(s.last.value))
	}

	s.core.end(ctx, CompleteNotification[T]())
}

func (s *asyncSubject[T]) AsObservable() Observable[T] { return s }
func (s *asyncSubject[T]) AsObserver() Observer[T]     { return s }
