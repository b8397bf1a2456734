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
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestEventuallySafeSubscriberDropsConcurrentEmission drives two concurrent
// NextWithContext calls into a BackpressureDrop subscriber: whichever
// arrives while the first is still inside its callback must be dropped
// rather than blocked on.
func TestEventuallySafeSubscriberDropsConcurrentEmission(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	inFirst := make(chan struct{})
	releaseFirst := make(chan struct{})

	var mu sync.Mutex

	var received []int

	dest := NewObserver(func(v int) {
		mu.Lock()
		received = append(received, v)
		mu.Unlock()

		if v == 1 {
			close(inFirst)
			<-releaseFirst
		}
	}, func(error) {}, func() {})

	sub := NewEventuallySafeSubscriber[int](dest)

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()
		sub.Next(1)
	}()

	<-inFirst
	sub.Next(2) // dropped: first call still holds the lock
	close(releaseFirst)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	is.Equal([]int{1}, received)
}

func TestSafeSubscriberBlocksInsteadOfDropping(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	var mu sync.Mutex

	var received []int

	dest := NewObserver(func(v int) {
		mu.Lock()
		received = append(received, v)
		mu.Unlock()
	}, func(error) {}, func() {})

	sub := NewSubscriber[int](dest)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)

		v := i
		go func() {
			defer wg.Done()
			sub.Next(v)
		}()
	}

	wg.Wait()
	time.Sleep(10 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	is.Len(received, 5)
}
