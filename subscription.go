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
	"errors"
	"sync"
)

// Teardown cleans up one resource held by a subscription — closing a file,
// stopping a goroutine, releasing a timer. It runs exactly once, when the
// Subscription is disposed.
type Teardown func()

// Unsubscribable is any type that can be unsubscribed from.
type Unsubscribable interface {
	Unsubscribe()
}

// Subscription represents one live execution of an Observable: a handle
// that cancels the execution and aggregates the cleanup of everything the
// execution owns.
type Subscription interface {
	Unsubscribable

	Add(teardown Teardown)
	AddUnsubscribable(unsubscribable Unsubscribable)
	IsClosed() bool
	Wait()
}

var _ Subscription = (*subscriptionList)(nil)

// NewSubscription creates a Subscription seeded with an optional first
// teardown. A nil teardown seeds nothing.
func NewSubscription(teardown Teardown) Subscription {
	s := &subscriptionList{done: make(chan struct{})}
	s.Add(teardown)

	return s
}

// subscriptionList aggregates teardowns. Disposal is published through the
// done channel, which doubles as the wait primitive: IsClosed is a
// non-blocking read of it and Wait a blocking one, so no callback
// registration is needed to observe disposal.
type subscriptionList struct {
	mu         sync.Mutex
	closed     bool
	finalizers []Teardown
	done       chan struct{}
}

// Add registers a teardown to run on disposal. Adding to an already
// disposed subscription runs the teardown immediately, on the caller's
// goroutine.
func (s *subscriptionList) Add(teardown Teardown) {
	if teardown == nil {
		return
	}

	s.mu.Lock()
	late := s.closed
	if !late {
		s.finalizers = append(s.finalizers, teardown)
	}
	s.mu.Unlock()

	if late {
		teardown()
	}
}

// AddUnsubscribable links another subscription's disposal to this one.
func (s *subscriptionList) AddUnsubscribable(unsubscribable Unsubscribable) {
	if unsubscribable == nil {
		return
	}

	s.Add(unsubscribable.Unsubscribe)
}

// Unsubscribe disposes the subscription, running every registered teardown
// in registration order. Idempotent. Teardown panics are collected and
// re-raised as a single joined error once every teardown has had its turn.
func (s *subscriptionList) Unsubscribe() {
	s.mu.Lock()

	if s.closed {
		s.mu.Unlock()
		return
	}

	s.closed = true
	pending := s.finalizers
	s.finalizers = nil
	close(s.done)
	s.mu.Unlock()

	var faults []error

	for _, teardown := range pending {
		trap(teardown, func(err error) {
			faults = append(faults, newUnsubscriptionError(err))
		})
	}

	if len(faults) > 0 {
		panic(errors.Join(faults...))
	}
}

// IsClosed reports whether the subscription has been disposed.
func (s *subscriptionList) IsClosed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the subscription is disposed. Rarely appropriate
// outside tests and the blocking Collect adapter.
func (s *subscriptionList) Wait() {
	<-s.done
}
