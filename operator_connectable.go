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

// MulticastConfig configures the Multicast operator's reset policy: which
// events discard the shared connector Subject so that a later subscriber
// starts a fresh run of the source.
type MulticastConfig[T any] struct {
	Connector           func() Subject[T]
	ResetOnError        bool
	ResetOnComplete     bool
	ResetOnRefCountZero bool
}

// shareState is one share's mutable core: the connector Subject of the
// current generation, the upstream subscription feeding it, and the
// ref-count of attached subscribers. gen increments on every reset, so a
// subscriber that raced a reset can tell its generation is gone and must
// not write stale state into the next one.
type shareState[T any] struct {
	mu        sync.Mutex
	gen       uint64
	subject   Subject[T]
	upstream  Subscription
	observers int

	// latched records a terminal event whose reset flag was off: the
	// generation is pinned and ref-count-zero must not tear it down.
	latched bool
}

// join returns the current generation's Subject (building it if needed),
// whether this caller is the one that must connect the source, and the
// generation token to validate later writes against.
func (s *shareState[T]) join(connector func() Subject[T]) (Subject[T], bool, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.observers++

	mustConnect := s.subject == nil
	if mustConnect {
		s.subject = connector()
		s.latched = false
	}

	return s.subject, mustConnect, s.gen
}

// adopt records the upstream subscription for generation gen. When the
// generation already reset (synchronous terminal during subscribe), the
// now-orphaned upstream is disposed instead.
func (s *shareState[T]) adopt(gen uint64, upstream Subscription) {
	s.mu.Lock()
	stale := s.gen != gen
	if !stale {
		s.upstream = upstream
	}
	s.mu.Unlock()

	if stale {
		upstream.Unsubscribe()
	}
}

// resetLocked starts the next generation. Callers must hold mu; the old
// upstream is returned for disposal outside the lock.
func (s *shareState[T]) resetLocked() Subscription {
	old := s.upstream
	s.gen++
	s.subject = nil
	s.upstream = nil

	return old
}

// onTerminal applies the reset policy for a terminal event observed by the
// relay of generation gen.
func (s *shareState[T]) onTerminal(gen uint64, reset bool) {
	s.mu.Lock()

	if s.gen != gen {
		s.mu.Unlock()
		return
	}

	var old Subscription

	if reset {
		old = s.resetLocked()
	} else {
		s.latched = true
	}
	s.mu.Unlock()

	if old != nil {
		old.Unsubscribe()
	}
}

// leave drops one subscriber and, at ref-count zero with the policy set,
// tears the generation down.
func (s *shareState[T]) leave(resetOnZero bool) {
	s.mu.Lock()

	s.observers--

	var old Subscription

	if s.observers == 0 && resetOnZero && !s.latched && s.subject != nil {
		old = s.resetLocked()
	}
	s.mu.Unlock()

	if old != nil {
		old.Unsubscribe()
	}
}

// Multicast shares a single subscription to source across every downstream
// subscriber: the source is connected when the first subscriber arrives and
// torn down when the last one leaves or a terminal event fires, per the
// default reset policy (PublishSubject connector, reset on everything).
func Multicast[T any]() func(Observable[T]) Observable[T] {
	return MulticastWithConfig(MulticastConfig[T]{
		Connector:           defaultConnector[T],
		ResetOnError:        true,
		ResetOnComplete:     true,
		ResetOnRefCountZero: true,
	})
}

// MulticastWithConfig is Multicast with an explicit connector and reset
// policy.
func MulticastWithConfig[T any](config MulticastConfig[T]) func(Observable[T]) Observable[T] {
	if config.Connector == nil {
		panic(ErrSubjectMissingConnector)
	}

	return func(source Observable[T]) Observable[T] {
		state := &shareState[T]{}

		return NewObservableWithContext(func(subscriberCtx context.Context, destination Observer[T]) Teardown {
			subject, mustConnect, gen := state.join(config.Connector)

			sub := subject.SubscribeWithContext(subscriberCtx, destination)

			if mustConnect {
				relay := NewSubscriber(NewObserverWithContext(
					subject.NextWithContext,
					func(ctx context.Context, err error) {
						state.onTerminal(gen, config.ResetOnError)
						subject.ErrorWithContext(ctx, err)
					},
					func(ctx context.Context) {
						state.onTerminal(gen, config.ResetOnComplete)
						subject.CompleteWithContext(ctx)
					},
				))

				state.adopt(gen, source.SubscribeWithContext(subscriberCtx, relay))
			}

			return func() {
				sub.Unsubscribe()
				state.leave(config.ResetOnRefCountZero)
			}
		})
	}
}

// Publish is Multicast using a PublishSubject connector: late subscribers
// never see values emitted before they attached.
func Publish[T any]() func(Observable[T]) Observable[T] {
	return Multicast[T]()
}

// Replay is Multicast using a ReplaySubject connector of the given buffer
// size: a late subscriber first receives up to bufferSize backlog entries.
func Replay[T any](bufferSize int) func(Observable[T]) Observable[T] {
	return MulticastWithConfig(MulticastConfig[T]{
		Connector:           func() Subject[T] { return NewReplaySubject[T](bufferSize) },
		ResetOnError:        true,
		ResetOnComplete:     true,
		ResetOnRefCountZero: true,
	})
}

// Cache subscribes to source exactly once, on the first subscriber, and
// keeps an unlimited backlog forever: every later subscriber replays the
// full history, and the subscription to source is never torn down, even
// once every downstream subscriber has unsubscribed. Unlike Publish/Replay
// there is no reset of any kind and no disconnect is ever exposed — once
// cached, always cached.
func Cache[T any]() func(Observable[T]) Observable[T] {
	return MulticastWithConfig(MulticastConfig[T]{
		Connector: func() Subject[T] { return NewReplaySubject[T](ReplaySubjectUnlimitedBufferSize) },
	})
}
