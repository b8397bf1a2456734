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

// TestRegisterHooks exercises the process-wide, register-once hook registry.
// It must not run in parallel with other tests: RegisterHooks succeeds at
// most once per process, so this is the only test in the package allowed to
// call it.
func TestRegisterHooks(t *testing.T) {
	is := assert.New(t)

	var started, returned bool

	err := RegisterHooks(Hooks{
		OnSubscribeStart: func(source any, original func()) func() {
			started = true
			return original
		},
		OnSubscribeReturn: func(source any, subscription Subscription) Subscription {
			returned = true
			return subscription
		},
	})
	is.NoError(err)

	values, err := Collect(Of(1, 2))
	is.NoError(err)
	is.Equal([]int{1, 2}, values)
	is.True(started)
	is.True(returned)

	err = RegisterHooks(Hooks{})
	is.ErrorIs(err, ErrHooksAlreadyRegistered)
}
