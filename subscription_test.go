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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSubscriptionAddAndUnsubscribe(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	var order []int

	sub := NewSubscription(func() { order = append(order, 1) })
	sub.Add(func() { order = append(order, 2) })
	sub.Add(func() { order = append(order, 3) })

	is.False(sub.IsClosed())

	sub.Unsubscribe()

	is.True(sub.IsClosed())
	is.Equal([]int{1, 2, 3}, order)

	sub.Unsubscribe()
	is.Equal([]int{1, 2, 3}, order)
}

func TestSubscriptionAddAfterDisposeRunsImmediately(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	sub := NewSubscription(nil)
	sub.Unsubscribe()

	ran := false
	sub.Add(func() { ran = true })

	is.True(ran)
}

func TestSubscriptionAddUnsubscribable(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	inner := NewSubscription(nil)
	outer := NewSubscription(nil)
	outer.AddUnsubscribable(inner)

	outer.Unsubscribe()
	is.True(inner.IsClosed())
}

func TestSubscriptionWait(t *testing.T) {
	t.Parallel()

	sub := NewSubscription(nil)

	done := make(chan struct{})

	go func() {
		sub.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Wait returned before Unsubscribe")
	case <-time.After(10 * time.Millisecond):
	}

	sub.Unsubscribe()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after Unsubscribe")
	}
}

func TestSubscriptionFinalizerPanicJoinsErrors(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	sub := NewSubscription(func() { panic("boom") })

	is.Panics(func() { sub.Unsubscribe() })
}
