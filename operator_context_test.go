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

type ctxTestKey struct{}

func TestContextWithValue(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	var seen any

	sub := ContextWithValue[int](ctxTestKey{}, "hello")(Of(1)).SubscribeWithContext(
		context.Background(),
		NewObserverWithContext(
			func(ctx context.Context, _ int) { seen = ctx.Value(ctxTestKey{}) },
			nil,
			func(context.Context) {},
		),
	)
	defer sub.Unsubscribe()

	is.Equal("hello", seen)
}

func TestContextReset(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	replacement := context.WithValue(context.Background(), ctxTestKey{}, "reset")

	var seen any

	sub := ContextReset[int](replacement)(Of(1)).SubscribeWithContext(
		context.WithValue(context.Background(), ctxTestKey{}, "original"),
		NewObserverWithContext(
			func(ctx context.Context, _ int) { seen = ctx.Value(ctxTestKey{}) },
			nil,
			func(context.Context) {},
		),
	)
	defer sub.Unsubscribe()

	is.Equal("reset", seen)
}

func TestContextMap(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	var indices []int64

	obs := ContextMapI[int](func(ctx context.Context, index int64) context.Context {
		indices = append(indices, index)
		return ctx
	})(Of(1, 2, 3))

	_, err := Collect(obs)
	is.NoError(err)
	is.Equal([]int64{0, 1, 2}, indices)
}

func TestThrowOnContextCancel(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	values, err := Collect(ThrowOnContextCancel[int]()(Of(1, 2, 3)))
	is.NoError(err)
	is.Equal([]int{1, 2, 3}, values)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err = CollectWithContext(ctx, ThrowOnContextCancel[int]()(Never[int]()))
	is.Error(err)
}
