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
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
)

func recoverValueToError(e any) error {
	if err, ok := e.(error); ok {
		return err
	}

	return fmt.Errorf("unexpected error: %v", e)
}

func recoverUnhandledError(cb func()) {
	lo.TryCatchWithErrorValue(
		func() error {
			cb()
			return nil
		},
		func(e any) {
			OnUnhandledError(context.TODO(), recoverValueToError(e))
		},
	)
}

var (
	//nolint:revive
	ErrTakeWrongCount             = errors.New("rx.Take: count must be greater or equal to 0")
	ErrTakeLastWrongCount         = errors.New("rx.TakeLast: count must be greater or equal to 0")
	ErrSkipWrongCount             = errors.New("rx.Skip: count must be greater or equal to 0")
	ErrSkipLastWrongCount         = errors.New("rx.SkipLast: count must be greater than 0")
	ErrElementAtWrongNth          = errors.New("rx.ElementAt: nth must be greater or equal to 0")
	ErrElementAtNotFound          = errors.New("rx.ElementAt: nth element not found")
	ErrElementAtOrDefaultWrongNth = errors.New("rx.ElementAtOrDefault: nth must be greater or equal to 0")
	ErrHeadEmpty                  = errors.New("rx.Head: source is empty")
	ErrTailEmpty                  = errors.New("rx.Tail: source is empty")
	ErrFirstEmpty                 = errors.New("rx.First: no item satisfied the predicate")
	ErrLastEmpty                  = errors.New("rx.Last: no item satisfied the predicate")
	ErrBufferWithCountWrongSize   = errors.New("rx.BufferWithCount: size must be greater than 0")
	ErrBufferWithTimeWrongPeriod  = errors.New("rx.BufferWithTime: period must be greater than 0")
	ErrToChannelWrongSize         = errors.New("rx.ToChannel: size must be greater or equal to 0")
	ErrClampLowerLessThanUpper    = errors.New("rx.Clamp: lower must be less than or equal to upper")
	ErrSubjectMissingConnector    = errors.New("rx.ConnectableObservable: missing connector factory")
	ErrHooksAlreadyRegistered     = errors.New("rx.RegisterHooks: hooks already registered for this process")
	ErrNilObserver                = errors.New("rx.Subscribe: observer must not be nil")
	ErrUnicastSubjectConcurrent   = errors.New("rx.UnicastSubject: only one observer is allowed at a time")
	ErrRepeatWithWrongCount       = errors.New("rx.RepeatWith: count must be greater or equal to 0")

	// ErrOnErrorNotImplemented is the distinguished failure raised by the
	// safety wrapper (subscriber.go) when an Observable emits an error and
	// the subscriber was constructed without an error handler. It
	// propagates out of the emitting thread: the caller of Subscribe for a
	// synchronous producer, or the producing goroutine for an asynchronous
	// one.
	ErrOnErrorNotImplemented = errors.New("rx.OnErrorNotImplemented")
)

// OnErrorNotImplementedError wraps the original unhandled error so callers
// can recover it with errors.As / errors.Unwrap while still matching
// errors.Is(err, ErrOnErrorNotImplemented).
type OnErrorNotImplementedError struct {
	Cause error
}

func newOnErrorNotImplementedError(cause error) error {
	return &OnErrorNotImplementedError{Cause: cause}
}

func (e *OnErrorNotImplementedError) Error() string {
	if e.Cause == nil {
		return ErrOnErrorNotImplemented.Error()
	}

	return fmt.Sprintf("%s: %s", ErrOnErrorNotImplemented.Error(), e.Cause.Error())
}

func (e *OnErrorNotImplementedError) Unwrap() []error {
	return []error{ErrOnErrorNotImplemented, e.Cause}
}

func newUnsubscriptionError(err error) error {
	return &unsubscriptionError{err: err}
}

type unsubscriptionError struct {
	err error
}

func (e *unsubscriptionError) Error() string { return "rx.Subscription: " + e.err.Error() }
func (e *unsubscriptionError) Unwrap() error { return e.err }

func newObservableError(err error) error {
	return &observableError{err: err}
}

type observableError struct {
	err error
}

func (e *observableError) Error() string { return "rx.Observable: " + e.err.Error() }
func (e *observableError) Unwrap() error { return e.err }

func newObserverError(err error) error {
	return &observerError{err: err}
}

type observerError struct {
	err error
}

func (e *observerError) Error() string {
	msg := "<nil>"
	if e.err != nil {
		msg = e.err.Error()
	}

	return "rx.Observer: " + msg
}
func (e *observerError) Unwrap() error { return e.err }

func newTimeoutError(duration time.Duration) error {
	return &timeoutError{duration: duration}
}

type timeoutError struct {
	duration time.Duration
}

func (e *timeoutError) Error() string {
	return "rx.Timeout: timeout after " + e.duration.String()
}

func newCastError[T, U any]() error {
	return &castError[T, U]{}
}

type castError[T any, U any] struct{}

func (e *castError[T, U]) Error() string {
	var t T

	var u U

	return fmt.Sprintf("rx.Cast: unable to cast %T to %T", t, u)
}

func newPipeError(msg string, args ...any) error {
	return &pipeError{err: fmt.Errorf(msg, args...)}
}

type pipeError struct {
	err error
}

func (e *pipeError) Error() string { return "rx.Pipe: " + e.err.Error() }
func (e *pipeError) Unwrap() error { return e.err }
