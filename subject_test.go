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

func TestPublishSubject(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	subject := NewPublishSubject[int]()

	var early []int

	var late []int

	earlySub := subject.SubscribeWithContext(context.Background(), NewObserver(
		func(v int) { early = append(early, v) },
		nil,
		func() {},
	))
	defer earlySub.Unsubscribe()

	subject.Next(1)
	is.True(subject.HasObserver())
	is.Equal(1, subject.CountObservers())

	lateSub := subject.SubscribeWithContext(context.Background(), NewObserver(
		func(v int) { late = append(late, v) },
		nil,
		func() {},
	))
	defer lateSub.Unsubscribe()

	subject.Next(2)
	subject.Complete()

	is.Equal([]int{1, 2}, early)
	is.Equal([]int{2}, late)
	is.True(subject.IsClosed())
	is.True(subject.IsCompleted())
	is.False(subject.HasThrown())
}

func TestPublishSubjectError(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	subject := NewPublishSubject[int]()

	var gotErr error

	sub := subject.SubscribeWithContext(context.Background(), NewObserver(
		func(int) {},
		func(err error) { gotErr = err },
		func() {},
	))
	defer sub.Unsubscribe()

	subject.Error(assert.AnError)

	is.Equal(assert.AnError, gotErr)
	is.True(subject.HasThrown())

	var lateErr error

	lateSub := subject.SubscribeWithContext(context.Background(), NewObserver(
		func(int) {},
		func(err error) { lateErr = err },
		func() {},
	))
	defer lateSub.Unsubscribe()

	is.Equal(assert.AnError, lateErr)
}

func TestReplaySubject(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	subject := NewReplaySubject[int](2)

	subject.Next(1)
	subject.Next(2)
	subject.Next(3)

	var values []int

	sub := subject.SubscribeWithContext(context.Background(), NewObserver(
		func(v int) { values = append(values, v) },
		nil,
		func() {},
	))
	defer sub.Unsubscribe()

	is.Equal([]int{2, 3}, values)

	subject.Next(4)
	is.Equal([]int{2, 3, 4}, values)
}

func TestReplaySubjectUnlimited(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	subject := NewReplaySubject[int](ReplaySubjectUnlimitedBufferSize)

	subject.Next(1)
	subject.Next(2)
	subject.Complete()

	var values []int

	completed := false

	sub := subject.SubscribeWithContext(context.Background(), NewObserver(
		func(v int) { values = append(values, v) },
		nil,
		func() { completed = true },
	))
	defer sub.Unsubscribe()

	is.Equal([]int{1, 2}, values)
	is.True(completed)
}

func TestBehaviorSubject(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	subject := NewBehaviorSubject(0)

	var firstValues []int

	firstSub := subject.SubscribeWithContext(context.Background(), NewObserver(
		func(v int) { firstValues = append(firstValues, v) },
		nil,
		func() {},
	))
	defer firstSub.Unsubscribe()

	is.Equal([]int{0}, firstValues)

	subject.Next(1)

	var secondValues []int

	secondSub := subject.SubscribeWithContext(context.Background(), NewObserver(
		func(v int) { secondValues = append(secondValues, v) },
		nil,
		func() {},
	))
	defer secondSub.Unsubscribe()

	is.Equal([]int{1}, secondValues)

	subject.Next(2)
	is.Equal([]int{0, 1, 2}, firstValues)
	is.Equal([]int{1, 2}, secondValues)
}
