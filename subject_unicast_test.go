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

func TestUnicastSubjectQueuesBeforeSubscriber(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	subject := NewUnicastSubject[int](UnicastSubjectUnlimitedBufferSize)

	subject.Next(1)
	subject.Next(2)

	var received []int
	sub := subject.SubscribeWithContext(context.Background(), NewObserver(
		func(v int) { received = append(received, v) }, nil, func() {},
	))
	defer sub.Unsubscribe()

	is.Equal([]int{1, 2}, received)

	subject.Next(3)
	is.Equal([]int{1, 2, 3}, received)
}

func TestUnicastSubjectBufferSizeEviction(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	subject := NewUnicastSubject[int](2)

	subject.Next(1)
	subject.Next(2)
	subject.Next(3)

	var received []int
	sub := subject.SubscribeWithContext(context.Background(), NewObserver(
		func(v int) { received = append(received, v) }, nil, func() {},
	))
	defer sub.Unsubscribe()

	is.Equal([]int{2, 3}, received)
}

func TestUnicastSubjectRejectsSecondObserver(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	subject := NewUnicastSubject[int](UnicastSubjectUnlimitedBufferSize)

	sub1 := subject.SubscribeWithContext(context.Background(), NewObserver(func(int) {}, nil, func() {}))
	defer sub1.Unsubscribe()

	var gotErr error

	subject.SubscribeWithContext(context.Background(), NewObserver(func(int) {}, func(err error) { gotErr = err }, func() {}))

	is.ErrorIs(gotErr, ErrUnicastSubjectConcurrent)
}

func TestUnicastSubjectReplaysTerminalToLateSubscriber(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	subject := NewUnicastSubject[int](UnicastSubjectUnlimitedBufferSize)
	subject.Complete()

	is.True(subject.IsClosed())
	is.True(subject.IsCompleted())

	completed := false
	subject.SubscribeWithContext(context.Background(), NewObserver(func(int) {}, nil, func() { completed = true }))

	is.True(completed)
}

func TestUnicastSubjectReleasesObserverSlotOnUnsubscribe(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	subject := NewUnicastSubject[int](UnicastSubjectUnlimitedBufferSize)

	sub := subject.SubscribeWithContext(context.Background(), NewObserver(func(int) {}, nil, func() {}))
	is.True(subject.HasObserver())

	sub.Unsubscribe()
	is.False(subject.HasObserver())
	is.Equal(0, subject.CountObservers())
}
