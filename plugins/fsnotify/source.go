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

// Package rxfsnotify adapts an OS filesystem watcher into the rx source
// contract: subscribing starts watching, unsubscribing closes the watcher.
package rxfsnotify

import (
	"context"

	"github.com/fsnotify/fsnotify"
	"github.com/nexusflow/rx"
)

// NewWatchObservable watches paths for filesystem changes and emits one
// notification per event. Each subscription opens its own OS watcher;
// unsubscribing closes it.
func NewWatchObservable(paths ...string) rx.Observable[fsnotify.Event] {
	return rx.NewUnsafeObservableWithContext(func(ctx context.Context, destination rx.Observer[fsnotify.Event]) rx.Teardown {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			destination.ErrorWithContext(ctx, err)
			return nil
		}

		go func() {
			for _, path := range paths {
				if err := watcher.Add(path); err != nil {
					destination.ErrorWithContext(ctx, err)
					return
				}
			}

			for {
				select {
				case event, ok := <-watcher.Events:
					if !ok {
						destination.CompleteWithContext(ctx)
						return
					}

					destination.NextWithContext(ctx, event)

				case err, ok := <-watcher.Errors:
					if ok {
						destination.ErrorWithContext(ctx, err)
					} else {
						destination.CompleteWithContext(ctx)
					}

					return

				case <-ctx.Done():
					if err := ctx.Err(); err != nil {
						destination.ErrorWithContext(ctx, err)
					} else {
						destination.CompleteWithContext(ctx)
					}

					return
				}
			}
		}()

		return func() {
			_ = watcher.Close()
		}
	})
}
