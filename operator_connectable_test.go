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

func TestPublishMulticast(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	subscriptions := 0

	source := NewObservable(func(destination Observer[int]) Teardown {
		subscriptions++
		destination.Next(1)
		destination.Next(2)
		destination.Complete()

		return func() {}
	})

	shared := Publish[int]()(source)

	values1, err := Collect(shared)
	is.NoError(err)
	is.Equal([]int{1, 2}, values1)

	values2, err := Collect(shared)
	is.NoError(err)
	is.Equal([]int{1, 2}, values2)

	is.Equal(2, subscriptions)
}

func TestReplayMulticast(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	subject := NewPublishSubject[int]()
	shared := Replay[int](10)(subject)

	var late []int

	sub1 := shared.SubscribeWithContext(context.Background(), NewObserver(
		func(int) {}, nil, func() {},
	))

	subject.Next(1)
	subject.Next(2)

	sub2 := shared.SubscribeWithContext(context.Background(), NewObserver(
		func(v int) { late = append(late, v) }, nil, func() {},
	))
	defer sub2.Unsubscribe()

	is.Equal([]int{1, 2}, late)

	sub1.Unsubscribe()
}

func TestCacheNeverResets(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	subscriptions := 0

	source := NewObservable(func(destination Observer[int]) Teardown {
		subscriptions++
		destination.Next(1)
		destination.Complete()

		return func() {}
	})

	cached := Cache[int]()(source)

	values1, err := Collect(cached)
	is.NoError(err)
	is.Equal([]int{1}, values1)

	values2, err := Collect(cached)
	is.NoError(err)
	is.Equal([]int{1}, values2)

	is.Equal(1, subscriptions)
}

func TestMulticastWithConfigMissingConnector(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	is.PanicsWithValue(ErrSubjectMissingConnector, func() {
		MulticastWithConfig[int](MulticastConfig[int]{})
	})
}
