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
	"sync"
)

// UnicastSubjectUnlimitedBufferSize disables the backlog cap on a
// UnicastSubject.
const UnicastSubjectUnlimitedBufferSize = -1

var _ Subject[int] = (*unicastSubject[int])(nil)

// NewUnicastSubject queues emissions until a single Observer claims it,
// replays the queue to that Observer, then relays live. Only one Observer
// may hold the slot at a time; a second concurrent subscriber is rejected
// with ErrUnicastSubjectConcurrent. Unsubscribing releases the slot.
func NewUnicastSubject[T any](bufferSize int) Subject[T] {
	return &unicastSubject[T]{limit: bufferSize}
}

type unicastSubject[T any] struct {
	mu sync.Mutex

	state   int32 // subjectLive, subjectThrew, subjectDone
	failure error
	queue   []entry[T]
	limit   int
	holder  Subscriber[T]
}

func (s *unicastSubject[T]) Subscribe(destination Observer[T]) Subscription {
	return s.SubscribeWithContext(context.Background(), destination)
}

func (s *unicastSubject[T]) SubscribeWithContext(ctx context.Context, destination Observer[T]) Subscription {
	target := NewSubscriber(destination)

	s.mu.Lock()

	if s.state == subjectLive && s.holder != nil {
		s.mu.Unlock()
		target.ErrorWithContext(ctx, ErrUnicastSubjectConcurrent)

		return target
	}

	state := s.state
	failure := s.failure
	backlog := s.queue
	s.queue = nil

	if state == subjectLive {
		s.holder = target
	}
	s.mu.Unlock()

	for _, e := range backlog {
		target.NextWithContext(e.ctx, e.value)
	}

	switch state {
	case subjectThrew:
		target.ErrorWithContext(ctx, failure)
	case subjectDone:
		target.CompleteWithContext(ctx)
	default:
		target.Add(func() { s.release(target) })
	}

	return target
}

// release frees the observer slot when the holder unsubscribes, so another
// Observer may claim the subject.
func (s *unicastSubject[T]) release(target Subscriber[T]) {
	s.mu.Lock()
	if s.holder == target {
		s.holder = nil
	}
	s.mu.Unlock()
}

func (s *unicastSubject[T]) Next(value T) { s.NextWithContext(context.Background(), value) }

func (s *unicastSubject[T]) NextWithContext(ctx context.Context, value T) {
	s.mu.Lock()

	if s.state != subjectLive {
		s.mu.Unlock()
		OnDroppedNotification(ctx, NextNotification(value))

		return
	}

	holder := s.holder
	if holder == nil {
		s.queue = append(s.queue, entry[T]{ctx: ctx, value: value})
		if s.limit != UnicastSubjectUnlimitedBufferSize && len(s.queue) > s.limit {
			s.queue = s.queue[len(s.queue)-s.limit:]
		}
	}
	s.mu.Unlock()

	if holder != nil {
		holder.NextWithContext(ctx, value)
	}
}

func (s *unicastSubject[T]) Error(err error) { s.ErrorWithContext(context.Background(), err) }

func (s *unicastSubject[T]) ErrorWithContext(ctx context.Context, err error) {
	s.mu.Lock()

	if s.state != subjectLive {
		s.mu.Unlock()
		OnDroppedNotification(ctx, ErrorNotification[T](err))

		return
	}

	s.state = subjectThrew
	s.failure = err
	holder := s.holder
	s.holder = nil
	s.mu.Unlock()

	if holder != nil {
		holder.ErrorWithContext(ctx, err)
	} else {
		OnDroppedNotification(ctx, ErrorNotification[T](err))
	}
}

func (s *unicastSubject[T]) Complete() { s.CompleteWithContext(context.Background()) }

func (s *unicastSubject[T]) CompleteWithContext(ctx context.Context) {
	s.mu.Lock()

	if s.state != subjectLive {
		s.mu.Unlock()
		OnDroppedNotification(ctx, CompleteNotification[T]())

		return
	}

	s.state = subjectDone
	holder := s.holder
	s.holder = nil
	s.mu.Unlock()

	if holder != nil {
		holder.CompleteWithContext(ctx)
	}
}

func (s *unicastSubject[T]) HasObserver() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.holder != nil
}

func (s *unicastSubject[T]) CountObservers() int {
	if s.HasObserver() {
		return 1
	}

	return 0
}

func (s *unicastSubject[T]) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state != subjectLive
}

func (s *unicastSubject[T]) HasThrown() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state == subjectThrew
}

func (s *unicastSubject[T]) IsCompleted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state == subjectDone
}

func (s *unicastSubject[T]) AsObservable() Observable[T] { return s }
func (s *unicastSubject[T]) AsObserver() Observer[T]     { return s }
