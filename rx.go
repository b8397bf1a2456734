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

// Package rx implements a general-purpose library for composing
// asynchronous, push-based sequences of values: observables, observers,
// subscriptions, subjects, and the operator algebra that connects them.
package rx

import (
	"context"
	"fmt"
	"log"
)

var (
	// By default, the library silently drops unhandled errors and
	// dropped notifications. Override these to integrate with your own
	// error reporting:
	//
	//	rx.OnUnhandledError = func(ctx context.Context, err error) {
	//		slog.Error("unhandled error", "err", err)
	//	}
	//
	// OnUnhandledError and OnDroppedNotification are called synchronously
	// from the goroutine that emits the error or notification. A slow
	// callback slows down the whole pipeline.

	// OnUnhandledError is called when an Observable emits an error and no
	// error handler was registered for it, and is also the realization of
	// the process-wide `error_handler.handle` plugin hook.
	OnUnhandledError = IgnoreOnUnhandledError
	// OnDroppedNotification is called when a notification arrives at an
	// Observer that has already reached a terminal state.
	OnDroppedNotification = IgnoreOnDroppedNotification
)

// IgnoreOnUnhandledError is the default implementation of OnUnhandledError.
func IgnoreOnUnhandledError(ctx context.Context, err error) {}

// IgnoreOnDroppedNotification is the default implementation of OnDroppedNotification.
func IgnoreOnDroppedNotification(ctx context.Context, notification fmt.Stringer) {}

// DefaultOnUnhandledError logs unhandled errors with the standard logger.
func DefaultOnUnhandledError(ctx context.Context, err error) {
	if err != nil {
		log.Printf("rx: unhandled error: %s\n", err.Error())
	}
}

var _ fmt.Stringer = (*Notification[int])(nil)

// DefaultOnDroppedNotification logs dropped notifications with the standard logger.
//
// Since a generic callback cannot be assigned to OnDroppedNotification, it
// takes a fmt.Stringer instead of a Notification[T].
func DefaultOnDroppedNotification(ctx context.Context, notification fmt.Stringer) {
	log.Printf("rx: dropped notification: %s\n", notification.String())
}
