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

// Package rxzerolog is the structured-logging counterpart to
// rx.DefaultOnUnhandledError: a pipeable operator that logs every
// notification passing through it with github.com/rs/zerolog, built on
// rx.Tap rather than its own subscription logic.
package rxzerolog

import (
	"github.com/nexusflow/rx"
	"github.com/rs/zerolog"
)

// Log emits one zerolog event per notification flowing through the pipe, at
// the given level for Next/Complete and at zerolog.ErrorLevel for Error. It
// never alters the notification itself.
func Log[T any](logger *zerolog.Logger, level zerolog.Level) func(rx.Observable[T]) rx.Observable[T] {
	return rx.Tap(
		func(value T) {
			logger.WithLevel(level).Interface("value", value).Msg("rx: next")
		},
		func(err error) {
			logger.WithLevel(zerolog.ErrorLevel).Err(err).Msg("rx: error")
		},
		func() {
			logger.WithLevel(level).Msg("rx: complete")
		},
	)
}
