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

var _ Subject[int] = (*publishSubject[int])(nil)

// NewPublishSubject multicasts each emission only to the Observers attached
// at the moment it arrives: no backlog, so a late subscriber never sees
// anything that happened before it subscribed. Once terminated it replays
// nothing but the terminal notification itself to later subscribers.
func NewPublishSubject[T any]() Subject[T] {
	return &publishSubject[T]{}
}

type publishSubject[T any] struct {
	subjectBase[T]
}

func (s *publishSubject[T]) Subscribe(destination Observer[T]) Subscription {
	return s.SubscribeWithContext(context.Background(), destination)
}

func (s *publishSubject[T]) SubscribeWithContext(ctx context.Context, destination Observer[T]) Subscription {
	s.core.emitMu.Lock()
	defer s.core.emitMu.Unlock()

	return s.core.join(ctx, destination, nil)
}

func (s *publishSubject[T]) Next(value T) { s.NextWithContext(context.Background(), value) }

func (s *publishSubject[T]) NextWithContext(ctx context.Context, value T) {
	s.core.emitMu.Lock()
	defer s.core.emitMu.Unlock()

	if !s.core.live() {
		OnDroppedNotification(ctx, NextNotification(value))
		return
	}

	s.core.deliver(ctx, NextNotification(value))
}

func (s *publishSubject[T]) Error(err error) { s.ErrorWithContext(context.Background(), err) }

func (s *publishSubject[T]) ErrorWithContext(ctx context.Context, err error) {
	s.failWith(ctx, err)
}

func (s *publishSubject[T]) Complete() { s.CompleteWithContext(context.Background()) }

func (s *publishSubject[T]) CompleteWithContext(ctx context.Context) {
	s.endWith(ctx)
}

func (s *publishSubject[T]) AsObservable() Observable[T] { return s }
func (s *publishSubject[T]) AsObserver() Observer[T]     { return s }
