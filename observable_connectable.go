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

// ConnectableObservable is an Observable that does not subscribe its source
// until Connect is called, no matter how many Observers have already
// attached. Observers attach to an internal connector Subject; Connect
// plugs the source into that Subject exactly once per connection cycle.
type ConnectableObservable[T any] interface {
	Observable[T]

	// Connect subscribes the source through the connector Subject,
	// starting emission to every Observer already attached. While a
	// connection is live, further Connect calls return the same handle;
	// disposing the handle disconnects.
	Connect() Subscription
	ConnectWithContext(ctx context.Context) Subscription
}

var _ ConnectableObservable[int] = (*connectable[int])(nil)

// ConnectableConfig configures a ConnectableObservable's connector Subject
// and its behavior upon disconnection.
type ConnectableConfig[T any] struct {
	Connector         func() Subject[T]
	ResetOnDisconnect bool
}

func defaultConnector[T any]() Subject[T] {
	return NewPublishSubject[T]()
}

// NewConnectableObservable builds a ConnectableObservable from a subscribe
// function, using a PublishSubject connector and resetting the connector on
// every disconnect.
func NewConnectableObservable[T any](subscribe func(destination Observer[T]) Teardown) ConnectableObservable[T] {
	return Connectable(NewObservable(subscribe))
}

// NewConnectableObservableWithContext is NewConnectableObservable with a
// per-event context passed to the subscribe function.
func NewConnectableObservableWithContext[T any](subscribe func(ctx context.Context, destination Observer[T]) Teardown) ConnectableObservable[T] {
	return Connectable(NewObservableWithContext(subscribe))
}

// Connectable wraps an existing Observable into a ConnectableObservable
// using a PublishSubject connector, resetting the connector on disconnect.
func Connectable[T any](source Observable[T]) ConnectableObservable[T] {
	return ConnectableWithConfig(source, ConnectableConfig[T]{
		Connector:         defaultConnector[T],
		ResetOnDisconnect: true,
	})
}

// ConnectableWithConfig wraps source into a ConnectableObservable using the
// given config's connector and disconnect behavior.
func ConnectableWithConfig[T any](source Observable[T], config ConnectableConfig[T]) ConnectableObservable[T] {
	if config.Connector == nil {
		panic(ErrSubjectMissingConnector)
	}

	return &connectable[T]{source: source, config: config}
}

// connectable creates its connector Subject lazily, on the first attach or
// connect of each cycle. Disconnecting (disposing the connection handle)
// discards the Subject when ResetOnDisconnect is set, so the next cycle
// starts from a fresh one.
type connectable[T any] struct {
	source Observable[T]
	config ConnectableConfig[T]

	mu      sync.Mutex
	subject Subject[T]
	conn    Subscription
}

// connectorLocked returns the current cycle's Subject, building it on first
// use. Callers must hold mu.
func (c *connectable[T]) connectorLocked() Subject[T] {
	if c.subject == nil {
		c.subject = c.config.Connector()
	}

	return c.subject
}

func (c *connectable[T]) Subscribe(destination Observer[T]) Subscription {
	return c.SubscribeWithContext(context.Background(), destination)
}

func (c *connectable[T]) SubscribeWithContext(ctx context.Context, destination Observer[T]) Subscription {
	c.mu.Lock()
	subject := c.connectorLocked()
	c.mu.Unlock()

	return subject.SubscribeWithContext(ctx, destination)
}

func (c *connectable[T]) Connect() Subscription {
	return c.ConnectWithContext(context.Background())
}

func (c *connectable[T]) ConnectWithContext(ctx context.Context) Subscription {
	c.mu.Lock()

	if c.conn != nil && !c.conn.IsClosed() {
		existing := c.conn
		c.mu.Unlock()

		return existing
	}

	subject := c.connectorLocked()
	conn := NewSubscription(nil)
	c.conn = conn
	c.mu.Unlock()

	if c.config.ResetOnDisconnect {
		conn.Add(func() {
			c.mu.Lock()
			if c.conn == conn {
				c.subject = nil
			}
			c.mu.Unlock()
		})
	}

	upstream := c.source.SubscribeWithContext(ctx, subject)
	conn.AddUnsubscribable(upstream)

	// A terminal notification from the source ends the connection cycle,
	// not just the upstream subscription.
	upstream.Add(conn.Unsubscribe)

	return conn
}
