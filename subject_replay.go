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

// ReplaySubjectUnlimitedBufferSize disables the backlog cap on a
// ReplaySubject.
const ReplaySubjectUnlimitedBufferSize = -1

var _ Subject[int] = (*replaySubject[int])(nil)

// NewReplaySubject replays its backlog (up to bufferSize entries, oldest
// evicted first) to every new subscriber before switching it to live
// delivery. After a terminal notification, new subscribers still receive
// the backlog, then the terminal notification.
func NewReplaySubject[T any](bufferSize int) Subject[T] {
	return &replaySubject[T]{limit: bufferSize}
}

type replaySubject[T any] struct {
	subjectBase[T]

	// backlog is guarded by the base's emitMu, like every emission.
	backlog []entry[T]
	limit   int
}

func (s *replaySubject[T]) Subscribe(destination Observer[T]) Subscription {
	return s.SubscribeWithContext(context.Background(), destination)
}

func (s *replaySubject[T]) SubscribeWithContext(ctx context.Context, destination Observer[T]) Subscription {
	s.core.emitMu.Lock()
	defer s.core.emitMu.Unlock()

	return s.core.join(ctx, destination, func(target Subscriber[T]) {
		for _, e := range s.backlog {
			target.NextWithContext(e.ctx, e.value)
		}
	})
}

func (s *replaySubject[T]) Next(value T) { s.NextWithContext(context.Background(), value) }

func (s *replaySubject[T]) NextWithContext(ctx context.Context, value T) {
	s.core.emitMu.Lock()
	defer s.core.emitMu.Unlock()

	if !s.core.live() {
		OnDroppedNotification(ctx, NextNotification(value))
		return
	}

	s.backlog = append(s.backlog, entry[T]{ctx: ctx, value: value})
	if s.limit != ReplaySubjectUnlimitedBufferSize && len(s.backlog) > s.limit {
		s.backlog = s.backlog[len(s.backlog)-s.limit:]
	}

	s.core.deliver(ctx, NextNotification(value))
}

func (s *replaySubject[T]) Error(err error) { s.ErrorWithContext(context.Background(), err) }

func (s *replaySubject[T]) ErrorWithContext(ctx context.Context, err error) {
	s.failWith(ctx, err)
}

func (s *replaySubject[T]) Complete() { s.CompleteWithContext(context.Background()) }

func (s *replaySubject[T]) CompleteWithContext(ctx context.Context) {
	s.endWith(ctx)
}

func (s *replaySubject[T]) AsObservable() Observable[T] { return s }
func (s *replaySubject[T]) AsObserver() Observer[T]     { return s }
