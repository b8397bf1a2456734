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

package rxzerolog

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/nexusflow/rx"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLog(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	var buf bytes.Buffer

	logger := zerolog.New(&buf)

	values, err := rx.Collect(rx.Pipe1(
		rx.Of(1, 2),
		Log[int](&logger, zerolog.InfoLevel),
	))

	is.NoError(err)
	is.Equal([]int{1, 2}, values)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	is.Len(lines, 3)
	is.Contains(lines[0], `"value":1`)
	is.Contains(lines[0], "rx: next")
	is.Contains(lines[1], `"value":2`)
	is.Contains(lines[2], "rx: complete")
}

func TestLog_Error(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	var buf bytes.Buffer

	logger := zerolog.New(&buf)

	_, err := rx.Collect(rx.Pipe1(
		rx.Throw[int](errors.New("boom")),
		Log[int](&logger, zerolog.InfoLevel),
	))

	is.Error(err)
	is.Contains(buf.String(), "rx: error")
	is.Contains(buf.String(), "boom")
}
