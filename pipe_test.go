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

	"github.com/stretchr/testify/assert"
)

func TestPipe(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	result := Pipe[int, string](
		Of(1, 2, 3),
		Filter(func(v int) bool { return v%2 == 1 }),
		Map(func(v int) string { return string(rune('a' + v)) }),
	)

	values, err := Collect(result)
	is.NoError(err)
	is.Equal([]string{"b", "d"}, values)
}

func TestPipe1Through3(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	values, err := Collect(Pipe1(Of(1, 2, 3), Map(func(v int) int { return v + 1 })))
	is.NoError(err)
	is.Equal([]int{2, 3, 4}, values)

	values2, err := Collect(Pipe2(
		Of(1, 2, 3),
		Map(func(v int) int { return v + 1 }),
		Filter(func(v int) bool { return v%2 == 0 }),
	))
	is.NoError(err)
	is.Equal([]int{2, 4}, values2)

	strs, err := Collect(Pipe3(
		Of(1, 2, 3),
		Map(func(v int) int { return v + 1 }),
		Filter(func(v int) bool { return v%2 == 0 }),
		Map(func(v int) string { return string(rune('a' + v)) }),
	))
	is.NoError(err)
	is.Equal([]string{"c", "e"}, strs)
}

func TestPipeOp1(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	op := PipeOp1(Map(func(v int) int { return v * 2 }))

	values, err := Collect(op(Of(1, 2, 3)))
	is.NoError(err)
	is.Equal([]int{2, 4, 6}, values)
}
