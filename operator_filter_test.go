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

func TestFilter(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	values, err := Collect(Filter(func(v int) bool { return v%2 == 0 })(Of(1, 2, 3, 4)))
	is.NoError(err)
	is.Equal([]int{2, 4}, values)

	values, err = Collect(FilterI(func(v int, i int64) bool { return i%2 == 0 })(Of(1, 2, 3, 4)))
	is.NoError(err)
	is.Equal([]int{1, 3}, values)
}

func TestDistinctAndDistinctBy(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	values, err := Collect(Distinct[int]()(Of(1, 1, 2, 2, 3)))
	is.NoError(err)
	is.Equal([]int{1, 2, 3}, values)

	values, err = Collect(DistinctBy(func(v int) int { return v % 2 })(Of(1, 2, 3, 4)))
	is.NoError(err)
	is.Equal([]int{1, 2}, values)
}

func TestIgnoreElements(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	values, err := Collect(IgnoreElements[int]()(Of(1, 2, 3)))
	is.NoError(err)
	is.Empty(values)
}

func TestSkipAndSkipWhile(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	values, err := Collect(Skip[int](2)(Of(1, 2, 3, 4)))
	is.NoError(err)
	is.Equal([]int{3, 4}, values)

	is.PanicsWithValue(ErrSkipWrongCount, func() { Skip[int](-1) })

	values, err = Collect(SkipWhile(func(v int) bool { return v < 3 })(Of(1, 2, 3, 4)))
	is.NoError(err)
	is.Equal([]int{3, 4}, values)
}

func TestSkipLast(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	values, err := Collect(SkipLast[int](2)(Of(1, 2, 3, 4)))
	is.NoError(err)
	is.Equal([]int{1, 2}, values)

	is.PanicsWithValue(ErrSkipLastWrongCount, func() { SkipLast[int](0) })
}

func TestSkipUntil(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	signal := NewPublishSubject[struct{}]()
	source := NewPublishSubject[int]()

	var values []int

	sub := SkipUntil[int](signal)(source).SubscribeWithContext(
		context.Background(),
		NewObserver(
			func(v int) { values = append(values, v) },
			nil,
			func() {},
		),
	)
	defer sub.Unsubscribe()

	source.Next(1)
	signal.Next(struct{}{})
	source.Next(2)

	is.Equal([]int{2}, values)
}

func TestTakeAndTakeWhile(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	values, err := Collect(Take[int](2)(Of(1, 2, 3)))
	is.NoError(err)
	is.Equal([]int{1, 2}, values)

	values, err = Collect(Take[int](0)(Of(1, 2, 3)))
	is.NoError(err)
	is.Empty(values)

	is.PanicsWithValue(ErrTakeWrongCount, func() { Take[int](-1) })

	values, err = Collect(TakeWhile(func(v int) bool { return v < 3 })(Of(1, 2, 3, 4)))
	is.NoError(err)
	is.Equal([]int{1, 2}, values)
}

func TestTakeLast(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	values, err := Collect(TakeLast[int](2)(Of(1, 2, 3, 4)))
	is.NoError(err)
	is.Equal([]int{3, 4}, values)

	values, err = Collect(TakeLast[int](0)(Of(1, 2)))
	is.NoError(err)
	is.Empty(values)

	is.PanicsWithValue(ErrTakeLastWrongCount, func() { TakeLast[int](-1) })
}

func TestHeadTail(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	values, err := Collect(Head[int]()(Of(1, 2, 3)))
	is.NoError(err)
	is.Equal([]int{1}, values)

	_, err = Collect(Head[int]()(Empty[int]()))
	is.ErrorIs(err, ErrHeadEmpty)

	values, err = Collect(Tail[int]()(Of(1, 2, 3)))
	is.NoError(err)
	is.Equal([]int{3}, values)

	_, err = Collect(Tail[int]()(Empty[int]()))
	is.ErrorIs(err, ErrTailEmpty)
}

func TestFirstLast(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	values, err := Collect(First(func(v int) bool { return v > 1 })(Of(1, 2, 3)))
	is.NoError(err)
	is.Equal([]int{2}, values)

	_, err = Collect(First(func(v int) bool { return v > 10 })(Of(1, 2, 3)))
	is.ErrorIs(err, ErrFirstEmpty)

	values, err = Collect(Last(func(v int) bool { return v < 3 })(Of(1, 2, 3)))
	is.NoError(err)
	is.Equal([]int{2}, values)

	_, err = Collect(Last(func(v int) bool { return v > 10 })(Of(1, 2, 3)))
	is.ErrorIs(err, ErrLastEmpty)
}

func TestElementAt(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	values, err := Collect(ElementAt[int](1)(Of(1, 2, 3)))
	is.NoError(err)
	is.Equal([]int{2}, values)

	_, err = Collect(ElementAt[int](5)(Of(1, 2, 3)))
	is.ErrorIs(err, ErrElementAtNotFound)

	is.PanicsWithValue(ErrElementAtWrongNth, func() { ElementAt[int](-1) })

	values, err = Collect(ElementAtOrDefault[int](5, -1)(Of(1, 2, 3)))
	is.NoError(err)
	is.Equal([]int{-1}, values)
}
