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

// Package rxcron adapts gocron (which in turn wraps robfig/cron's schedule
// parser) into the rx source contract: subscribing starts the scheduler,
// unsubscribing shuts it down.
package rxcron

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/nexusflow/rx"
)

// Tick is emitted once per firing of the underlying cron job.
type Tick struct {
	Counter int64
	Time    time.Time
}

// NewCronObservable wraps a gocron job definition — e.g.
// gocron.CronJob("42 23 * * *", false) — as an Observable that emits a Tick
// each time the schedule fires.
func NewCronObservable(job gocron.JobDefinition) rx.Observable[Tick] {
	return rx.ThrowOnContextCancel[Tick]()(
		rx.NewObservableWithContext(func(ctx context.Context, destination rx.Observer[Tick]) rx.Teardown {
			counter := int64(-1)

			scheduler, err := gocron.NewScheduler()
			if err != nil {
				destination.ErrorWithContext(ctx, err)
				return nil
			}

			_, err = scheduler.NewJob(
				job,
				gocron.NewTask(func() {
					n := atomic.AddInt64(&counter, 1)
					destination.NextWithContext(ctx, Tick{Counter: n, Time: time.Now()})
				}),
			)
			if err != nil {
				destination.ErrorWithContext(ctx, err)
				return nil
			}

			scheduler.Start()

			return func() {
				_ = scheduler.Shutdown()
			}
		}),
	)
}
