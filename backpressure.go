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

// Backpressure selects what a Subscriber does when it cannot keep up.
// There is no negotiated demand signaling; this is the coarse escape hatch
// callers reach for explicitly.
type Backpressure int8

const (
	// BackpressureBlock blocks the emitting goroutine until the subscriber
	// is ready.
	BackpressureBlock Backpressure = iota
	// BackpressureDrop drops the notification instead of blocking.
	BackpressureDrop
)

// ConcurrencyMode selects the locking strategy a Subscriber uses to
// serialize concurrent emissions.
type ConcurrencyMode int8

const (
	// ConcurrencyModeSafe uses a real mutex: correct under concurrent
	// producers, at the cost of lock overhead.
	ConcurrencyModeSafe ConcurrencyMode = iota
	// ConcurrencyModeUnsafe uses no lock: the caller guarantees there is
	// no concurrent access.
	ConcurrencyModeUnsafe
	// ConcurrencyModeEventuallySafe uses a real mutex but drops
	// concurrent emissions instead of blocking on them.
	ConcurrencyModeEventuallySafe
)
