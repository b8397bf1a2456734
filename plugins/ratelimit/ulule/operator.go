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

// Package rxratelimit throttles a stream against an external rate-limiter
// store (github.com/ulule/limiter/v3), keyed per item.
package rxratelimit

import (
	"context"

	"github.com/nexusflow/rx"
	limiter "github.com/ulule/limiter/v3"
)

// Throttle consults limiter for keyGetter(value) before forwarding each
// item; items whose key has exhausted its rate are dropped rather than
// buffered or delayed.
func Throttle[T any](rl *limiter.Limiter, keyGetter func(T) string) func(rx.Observable[T]) rx.Observable[T] {
	return func(source rx.Observable[T]) rx.Observable[T] {
		return rx.NewObservableWithContext(func(subscriberCtx context.Context, destination rx.Observer[T]) rx.Teardown {
			sub := source.SubscribeWithContext(
				subscriberCtx,
				rx.NewObserverWithContext(
					func(ctx context.Context, value T) {
						key := keyGetter(value)

						rate, err := rl.Get(ctx, key)
						if err != nil {
							destination.ErrorWithContext(ctx, err)
						} else if !rate.Reached {
							destination.NextWithContext(ctx, value)
						}
					},
					destination.ErrorWithContext,
					destination.CompleteWithContext,
				),
			)

			return sub.Unsubscribe
		})
	}
}
