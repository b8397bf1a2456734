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
	"slices"
	"sync"
	"sync/atomic"
)

// Subject is both an Observer and an Observable: it can be subscribed to
// one or more upstream Observables, and it multicasts whatever it receives
// (plus anything emitted directly through its Observer half) to every
// subscriber attached at the time of emission.
type Subject[T any] interface {
	Observable[T]
	Observer[T]

	HasObserver() bool
	CountObservers() int

	AsObservable() Observable[T]
	AsObserver() Observer[T]
}

// NewSubject is an alias for NewPublishSubject: a multicast subject with no
// replay buffer, the everyday fan-out subject.
func NewSubject[T any]() Subject[T] {
	return NewPublishSubject[T]()
}

// Lifecycle states of a fanout.
const (
	subjectLive int32 = iota
	subjectThrew
	subjectDone
)

// entry is a value captured together with the context it arrived under, so
// replaying subjects hand late subscribers the original context rather than
// their own.
type entry[T any] struct {
	ctx   context.Context
	value T
}

// fanout is the delivery engine shared by the multicast subjects. It keeps
// two locks: emitMu serializes entire deliveries, which is what gives every
// observer the same event order, while regMu guards only the subscriber
// list — so a callback may detach (unsubscribe) an observer reentrantly
// without deadlocking the emission it is running under. Attaching is not
// reentrant: Subscribe takes emitMu. Delivery iterates a snapshot of the
// list, never the list itself.
type fanout[T any] struct {
	emitMu sync.Mutex
	regMu  sync.Mutex

	targets []Subscriber[T]
	state   atomic.Int32
	failure error
}

// join wraps destination in the safety wrapper and either hands it the
// cached terminal event (when the subject already ended) or attaches it for
// live delivery, after replay has run. Callers must hold emitMu.
func (f *fanout[T]) join(ctx context.Context, destination Observer[T], replay func(target Subscriber[T])) Subscription {
	target := NewSubscriber(destination)

	if replay != nil {
		replay(target)
	}

	switch f.state.Load() {
	case subjectThrew:
		target.ErrorWithContext(ctx, f.failure)
	case subjectDone:
		target.CompleteWithContext(ctx)
	default:
		f.attach(target)
	}

	return target
}

func (f *fanout[T]) attach(target Subscriber[T]) {
	f.regMu.Lock()
	f.targets = append(f.targets, target)
	f.regMu.Unlock()

	target.Add(func() { f.detach(target) })
}

func (f *fanout[T]) detach(target Subscriber[T]) {
	f.regMu.Lock()

	for i := range f.targets {
		if f.targets[i] == target {
			f.targets = slices.Delete(f.targets, i, i+1)
			break
		}
	}
	f.regMu.Unlock()
}

func (f *fanout[T]) snapshot() []Subscriber[T] {
	f.regMu.Lock()
	targets := slices.Clone(f.targets)
	f.regMu.Unlock()

	return targets
}

func (f *fanout[T]) count() int {
	f.regMu.Lock()
	defer f.regMu.Unlock()

	return len(f.targets)
}

// deliver pushes one event to every currently attached observer. Callers
// must hold emitMu.
func (f *fanout[T]) deliver(ctx context.Context, n Notification[T]) {
	for _, target := range f.snapshot() {
		n.Deliver(ctx, target)
	}
}

// end moves the fanout into a terminal state, broadcasts n, and drops every
// subscriber. It reports false when a terminal event already won. Callers
// must hold emitMu.
func (f *fanout[T]) end(ctx context.Context, n Notification[T]) bool {
	next := subjectDone
	if n.Kind == KindError {
		next = subjectThrew
	}

	if !f.state.CompareAndSwap(subjectLive, next) {
		return false
	}

	f.failure = n.Err
	f.deliver(ctx, n)

	f.regMu.Lock()
	f.targets = nil
	f.regMu.Unlock()

	return true
}

func (f *fanout[T]) live() bool { return f.state.Load() == subjectLive }

// subjectBase supplies the introspection half of the Subject contract on
// top of a fanout; each concrete subject adds its own subscribe and
// emission behavior.
type subjectBase[T any] struct {
	core fanout[T]
}

func (b *subjectBase[T]) HasObserver() bool   { return b.core.count() > 0 }
func (b *subjectBase[T]) CountObservers() int { return b.core.count() }
func (b *subjectBase[T]) IsClosed() bool      { return !b.core.live() }
func (b *subjectBase[T]) HasThrown() bool     { return b.core.state.Load() == subjectThrew }
func (b *subjectBase[T]) IsCompleted() bool   { return b.core.state.Load() == subjectDone }

// failWith is the shared error path: terminate and broadcast, or drop to
// the hook when a terminal event already happened.
func (b *subjectBase[T]) failWith(ctx context.Context, err error) {
	b.core.emitMu.Lock()
	defer b.core.emitMu.Unlock()

	if !b.core.end(ctx, ErrorNotification[T](err)) {
		OnDroppedNotification(ctx, ErrorNotification[T](err))
	}
}

// endWith is the shared completion path.
func (b *subjectBase[T]) endWith(ctx context.Context) {
	b.core.emitMu.Lock()
	defer b.core.emitMu.Unlock()

	if !b.core.end(ctx, CompleteNotification[T]()) {
		OnDroppedNotification(ctx, CompleteNotification[T]())
	}
}
