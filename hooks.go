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

// OnSubscribeFunc is the function associated with an Observable that runs
// each time a subscriber attaches.
type OnSubscribeFunc[T any] func(ctx context.Context, destination Observer[T]) Teardown

// Hooks are the process-wide interception points: every Subscribe call
// reports its Observable and passes its resulting Subscription through them.
// They exist for subscription interceptors and error reporters external to
// the library (tracing, metrics, audit logging) — this module implements
// only the hook interface, never a concrete reporter.
type Hooks struct {
	// OnSubscribeStart runs before the producer function is invoked. It
	// receives the Observable and a no-op function, not the producer, so it
	// cannot wrap or replace the producer; the function it returns is
	// called after Subscribe has run the producer and OnSubscribeReturn.
	OnSubscribeStart func(source any, original func()) func()
	// OnSubscribeReturn runs after a Subscription has been created.
	OnSubscribeReturn func(source any, subscription Subscription) Subscription
	// OnSubscribeError runs when an Observable's producer throws
	// synchronously.
	OnSubscribeError func(source any, err error) error
}

var (
	hooksMu         sync.Mutex
	hooksRegistered bool
	activeHooks     Hooks
)

// RegisterHooks installs the process-wide plugin hooks. It may be called
// at most once per process, before the first Subscribe call; a second call
// fails fast rather than silently overwriting the first registration.
func RegisterHooks(h Hooks) error {
	hooksMu.Lock()
	defer hooksMu.Unlock()

	if hooksRegistered {
		return ErrHooksAlreadyRegistered
	}

	hooksRegistered = true
	activeHooks = h

	return nil
}

func runOnSubscribeStart(source any) func() {
	hooksMu.Lock()
	hook := activeHooks.OnSubscribeStart
	hooksMu.Unlock()

	if hook == nil {
		return func() {}
	}

	wrapped := hook(source, func() {})

	return wrapped
}

func runOnSubscribeReturn(source any, subscription Subscription) Subscription {
	hooksMu.Lock()
	hook := activeHooks.OnSubscribeReturn
	hooksMu.Unlock()

	if hook == nil {
		return subscription
	}

	return hook(source, subscription)
}

func runOnSubscribeError(source any, err error) error {
	hooksMu.Lock()
	hook := activeHooks.OnSubscribeError
	hooksMu.Unlock()

	if hook == nil {
		return err
	}

	return hook(source, err)
}
