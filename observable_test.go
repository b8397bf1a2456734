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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubscribeNilObserverPanics(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	source := Of(1, 2, 3)

	is.PanicsWithValue(ErrNilObserver, func() {
		source.Subscribe(nil)
	})
}

func TestSubscribeSynchronousPanicRoutesToError(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	source := NewObservable(func(destination Observer[int]) Teardown {
		destination.Next(1)
		panic("boom")
	})

	var gotErr error

	sub := source.Subscribe(NewObserver(func(int) {}, func(err error) { gotErr = err }, func() {}))
	sub.Wait()

	is.Error(gotErr)
	is.Contains(gotErr.Error(), "boom")
}

// TestSubscribeOnErrorNotImplementedPropagates verifies that a panic
// carrying *OnErrorNotImplementedError (raised by the safety wrapper when
// the destination has no error handler) is re-thrown from Subscribe rather
// than converted into a second Error notification.
func TestSubscribeOnErrorNotImplementedPropagates(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	source := NewObservable(func(destination Observer[int]) Teardown {
		destination.Error(assert.AnError)
		return nil
	})

	is.Panics(func() {
		source.Subscribe(OnNext(func(int) {}))
	})
}

func TestNewUnsafeObservable(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	source := NewUnsafeObservable(func(destination Observer[int]) Teardown {
		destination.Next(1)
		destination.Complete()
		return nil
	})

	values, err := Collect[int](source)
	is.NoError(err)
	is.Equal([]int{1}, values)
}

func TestCollectWithContextReturnsTerminalContext(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	type key struct{}

	ctx := context.WithValue(context.Background(), key{}, "v")

	values, lastCtx, err := CollectWithContext[int](ctx, Of(1, 2))
	is.NoError(err)
	is.Equal([]int{1, 2}, values)
	is.Equal("v", lastCtx.Value(key{}))
}
