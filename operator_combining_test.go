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

func TestStartWithConcat(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	values, err := Collect(StartWith(0, -1)(Of(1, 2)))
	is.NoError(err)
	is.Equal([]int{0, -1, 1, 2}, values)

	values, err = Collect(Concat(Of(1, 2), Of(3, 4)))
	is.NoError(err)
	is.Equal([]int{1, 2, 3, 4}, values)

	values, err = Collect(Concat(Of(1), Throw[int](assert.AnError), Of(3)))
	is.Error(err)
	is.Equal([]int{1}, values)
}

func TestTakeUntil(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	notifier := NewPublishSubject[struct{}]()
	source := NewPublishSubject[int]()

	var values []int

	completed := false

	sub := TakeUntil[int](notifier)(source).SubscribeWithContext(
		context.Background(),
		NewObserver(
			func(v int) { values = append(values, v) },
			nil,
			func() { completed = true },
		),
	)
	defer sub.Unsubscribe()

	source.Next(1)
	source.Next(2)
	notifier.Next(struct{}{})
	source.Next(3)

	is.Equal([]int{1, 2}, values)
	is.True(completed)
}

func TestMerge(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	values, err := Collect(Merge(Of(1, 2), Of(3, 4)))
	is.NoError(err)
	is.ElementsMatch([]int{1, 2, 3, 4}, values)

	values, err = Collect(Merge[int]())
	is.NoError(err)
	is.Empty(values)

	_, err = Collect(Merge(Of(1), Throw[int](assert.AnError)))
	is.Error(err)
}

func TestMergeDelayError(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	values, err := Collect(MergeDelayError(Of(1, 2), Throw[int](assert.AnError), Of(3)))
	is.Error(err)
	is.ElementsMatch([]int{1, 2, 3}, values)
}

func TestMergeAllAndSwitchDo(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	values, err := Collect(MergeAll[int]()(Of(Of(1, 2), Of(3, 4))))
	is.NoError(err)
	is.ElementsMatch([]int{1, 2, 3, 4}, values)

	values, err = Collect(SwitchDo[int]()(Of(Of(1, 2), Of(3, 4))))
	is.NoError(err)
	is.NotEmpty(values)
}

func TestZip2Zip3Zip4(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	values, err := Collect(Zip2(Of(1, 2, 3), Of("a", "b"), func(a int, b string) string {
		return b
	}))
	is.NoError(err)
	is.Equal([]string{"a", "b"}, values)

	sums, err := Collect(Zip3(Of(1, 2), Of(10, 20), Of(100, 200), func(a, b, c int) int {
		return a + b + c
	}))
	is.NoError(err)
	is.Equal([]int{111, 222}, sums)

	sums, err = Collect(Zip4(Of(1), Of(10), Of(100), Of(1000), func(a, b, c, d int) int {
		return a + b + c + d
	}))
	is.NoError(err)
	is.Equal([]int{1111}, sums)
}

func TestCombineLatest2Through4(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	a := NewPublishSubject[int]()
	b := NewPublishSubject[string]()

	var values []string

	sub := CombineLatest2(a, b, func(a int, b string) string {
		return b
	}).SubscribeWithContext(context.Background(), NewObserver(
		func(v string) { values = append(values, v) },
		nil,
		func() {},
	))
	defer sub.Unsubscribe()

	a.Next(1)
	b.Next("x")
	a.Next(2)

	is.Equal([]string{"x", "x"}, values)

	sums, err := Collect(CombineLatest3(Of(1), Of(10), Of(100), func(a, b, c int) int {
		return a + b + c
	}))
	is.NoError(err)
	is.Equal([]int{111}, sums)

	sums, err = Collect(CombineLatest4(Of(1), Of(10), Of(100), Of(1000), func(a, b, c, d int) int {
		return a + b + c + d
	}))
	is.NoError(err)
	is.Equal([]int{1111}, sums)
}
