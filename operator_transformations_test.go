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
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMapScanReduceAll(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	values, err := Collect(Map(func(v int) int { return v * 2 })(Of(1, 2, 3)))
	is.NoError(err)
	is.Equal([]int{2, 4, 6}, values)

	values, err = Collect(MapTo[int](42)(Of(1, 2)))
	is.NoError(err)
	is.Equal([]int{42, 42}, values)

	sums, err := Collect(Scan(func(acc, v int) int { return acc + v }, 0)(Of(1, 2, 3)))
	is.NoError(err)
	is.Equal([]int{1, 3, 6}, sums)

	total, err := Collect(Reduce(func(acc, v int) int { return acc + v }, 0)(Of(1, 2, 3)))
	is.NoError(err)
	is.Equal([]int{6}, total)

	alls, err := Collect(All(func(v int) bool { return v > 0 })(Of(1, 2, 3)))
	is.NoError(err)
	is.Equal([]bool{true}, alls)

	alls, err = Collect(All(func(v int) bool { return v > 0 })(Of(1, -2, 3)))
	is.NoError(err)
	is.Equal([]bool{false}, alls)
}

func TestFlatMap(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	values, err := Collect(FlatMap(func(v int) Observable[int] {
		return Of(v, v*10)
	})(Of(1, 2)))
	is.NoError(err)
	is.ElementsMatch([]int{1, 10, 2, 20}, values)
}

func TestGroupBy(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	groups, err := Collect(GroupBy(func(v int) bool { return v%2 == 0 })(Of(1, 2, 3, 4)))
	is.NoError(err)
	is.Len(groups, 2)

	for _, group := range groups {
		_, err := Collect(group)
		is.NoError(err)
	}
}

func TestTimestampMaterializeDematerialize(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	stamped, err := Collect(Timestamp[int]()(Of(1, 2)))
	is.NoError(err)
	is.Len(stamped, 2)
	is.Equal(1, stamped[0].Value)

	notifications, err := Collect(Materialize[int]()(Of(1, 2)))
	is.NoError(err)
	is.Len(notifications, 3)
	is.Equal(KindComplete, notifications[2].Kind)

	values, err := Collect(Dematerialize[int]()(Of(notifications...)))
	is.NoError(err)
	is.Equal([]int{1, 2}, values)
}

func TestObserveOnSubscribeOnSynchronize(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	scheduler := NewThreadScheduler()

	values, err := Collect(ObserveOn[int](scheduler)(Of(1, 2, 3)))
	is.NoError(err)
	is.Equal([]int{1, 2, 3}, values)

	values, err = Collect(SubscribeOn[int](scheduler)(Of(1, 2, 3)))
	is.NoError(err)
	is.Equal([]int{1, 2, 3}, values)

	values, err = Collect(Synchronize[int]()(Of(1, 2, 3)))
	is.NoError(err)
	is.Equal([]int{1, 2, 3}, values)
}

func TestSampleTimeWithTestScheduler(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	scheduler := NewTestScheduler()
	subject := NewPublishSubject[int]()

	var values []int

	sub := SampleTime[int](time.Second, scheduler)(subject).SubscribeWithContext(
		context.Background(),
		NewObserver(
			func(v int) { values = append(values, v) },
			nil,
			func() {},
		),
	)
	defer sub.Unsubscribe()

	subject.Next(1)
	subject.Next(2)
	scheduler.AdvanceBy(time.Second)

	is.Equal([]int{2}, values)

	scheduler.AdvanceBy(time.Second)
	is.Equal([]int{2}, values)
}

func TestBufferWithCount(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	buffers, err := Collect(BufferWithCount[int](2)(Of(1, 2, 3, 4, 5)))
	is.NoError(err)
	is.Equal([][]int{{1, 2}, {3, 4}, {5}}, buffers)

	is.PanicsWithValue(ErrBufferWithCountWrongSize, func() {
		BufferWithCount[int](0)
	})
}

func TestBufferWithCountAndSkip(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	buffers, err := Collect(BufferWithCountAndSkip[int](2, 1)(Of(1, 2, 3)))
	is.NoError(err)
	is.NotEmpty(buffers)
}

func TestBufferWithTimeWithTestScheduler(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	scheduler := NewTestScheduler()
	subject := NewPublishSubject[int]()

	var buffers [][]int

	sub := BufferWithTime[int](time.Second, scheduler)(subject).SubscribeWithContext(
		context.Background(),
		NewObserver(
			func(b []int) { buffers = append(buffers, b) },
			nil,
			func() {},
		),
	)
	defer sub.Unsubscribe()

	subject.Next(1)
	subject.Next(2)
	scheduler.AdvanceBy(time.Second)

	is.Equal([][]int{{1, 2}}, buffers)
}

func TestBufferWithTimeAndTimeshift(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	scheduler := NewTestScheduler()
	subject := NewPublishSubject[int]()

	var buffers [][]int

	completed := false

	sub := BufferWithTimeAndTimeshift[int](2*time.Second, time.Second, scheduler)(subject).SubscribeWithContext(
		context.Background(),
		NewObserver(
			func(b []int) { buffers = append(buffers, b) },
			nil,
			func() { completed = true },
		),
	)
	defer sub.Unsubscribe()

	subject.Next(1)
	scheduler.AdvanceBy(time.Second) // second buffer opens
	subject.Next(2)                  // lands in both open buffers
	scheduler.AdvanceBy(time.Second) // first buffer closes, third opens

	is.Equal([][]int{{1, 2}}, buffers)

	subject.Complete()

	is.Equal([][]int{{1, 2}, {2}, {}}, buffers)
	is.True(completed)
}

func TestBufferWhen(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	boundary := NewPublishSubject[struct{}]()
	source := NewPublishSubject[int]()

	var buffers [][]int

	sub := BufferWhen[int](boundary)(source).SubscribeWithContext(
		context.Background(),
		NewObserver(
			func(b []int) { buffers = append(buffers, b) },
			nil,
			func() {},
		),
	)
	defer sub.Unsubscribe()

	source.Next(1)
	source.Next(2)
	boundary.Next(struct{}{})
	source.Next(3)
	boundary.Complete()

	is.Equal([][]int{{1, 2}, {3}}, buffers)
}
