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

package xtime

import (
	_ "unsafe" // required for runtime.nanotime
)

//go:linkname nanotime runtime.nanotime
func nanotime() int64

// NowNanoMonotonic returns the current monotonic time in nanoseconds. It is
// noticeably faster than time.Now() for the high-frequency timestamping done
// by TimeInterval and the trampoline scheduler's deadline bookkeeping.
func NowNanoMonotonic() int64 {
	return nanotime()
}
