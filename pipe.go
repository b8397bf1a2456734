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
	"reflect"
)

// Pipe chains an arbitrary number of operators onto source. Each operator
// must be a func(Observable[X]) Observable[Y]; types are validated with
// reflection at call time rather than enforced by the type system, so
// PipeN should be preferred whenever the chain length is known statically.
func Pipe[First, Last any](source Observable[First], operators ...any) Observable[Last] {
	current := reflect.ValueOf(source)

	for _, operator := range operators {
		current = applyOperator(current, operator)
	}

	want := reflect.TypeOf((*Observable[Last])(nil)).Elem()

	result, ok := current.Interface().(Observable[Last])
	if !ok {
		panic(newPipeError("%s does not implement %s", current.Type(), want))
	}

	return result
}

// applyOperator checks that operator has the func(Observable[X])
// Observable[Y] shape, that current satisfies its input, and applies it.
func applyOperator(current reflect.Value, operator any) reflect.Value {
	fn := reflect.ValueOf(operator)
	shape := fn.Type()

	if shape.Kind() != reflect.Func || shape.NumIn() != 1 || shape.NumOut() != 1 {
		panic(newPipeError("%s is not an operator", shape))
	}

	if shape.In(0).Kind() != reflect.Interface {
		panic(newPipeError("%s does not implement Observable[T]", shape.In(0)))
	}

	if shape.Out(0).Kind() != reflect.Interface {
		panic(newPipeError("%s does not implement Observable[T]", shape.Out(0)))
	}

	if !current.Type().Implements(shape.In(0)) {
		panic(newPipeError("%s does not implement %s", current.Type(), shape.In(0)))
	}

	return fn.Call([]reflect.Value{current})[0]
}

// PipeOp is the operator-producing version of Pipe: it returns a function
// suitable for passing to another Pipe/PipeN call instead of applying
// immediately.
func PipeOp[First, Last any](operators ...any) func(Observable[First]) Observable[Last] {
	return func(source Observable[First]) Observable[Last] {
		return Pipe[First, Last](source, operators...)
	}
}

// Pipe1 is the type-safe, single-operator form of Pipe.
func Pipe1[A, B any](
	source Observable[A],
	operator1 func(Observable[A]) Observable[B],
) Observable[B] {
	return operator1(source)
}

// Pipe2 chains 2 operators with full type inference.
func Pipe2[A, B, C any](
	source Observable[A],
	operator1 func(Observable[A]) Observable[B],
	operator2 func(Observable[B]) Observable[C],
) Observable[C] {
	return Pipe1(operator1(source), operator2)
}

// Pipe3 chains 3 operators with full type inference.
func Pipe3[A, B, C, D any](
	source Observable[A],
	operator1 func(Observable[A]) Observable[B],
	operator2 func(Observable[B]) Observable[C],
	operator3 func(Observable[C]) Observable[D],
) Observable[D] {
	return Pipe2(operator1(source), operator2, operator3)
}

// Pipe4 chains 4 operators with full type inference.
func Pipe4[A, B, C, D, E any](
	source Observable[A],
	operator1 func(Observable[A]) Observable[B],
	operator2 func(Observable[B]) Observable[C],
	operator3 func(Observable[C]) Observable[D],
	operator4 func(Observable[D]) Observable[E],
) Observable[E] {
	return Pipe3(operator1(source), operator2, operator3, operator4)
}

// Pipe5 chains 5 operators with full type inference.
func Pipe5[A, B, C, D, E, F any](
	source Observable[A],
	operator1 func(Observable[A]) Observable[B],
	operator2 func(Observable[B]) Observable[C],
	operator3 func(Observable[C]) Observable[D],
	operator4 func(Observable[D]) Observable[E],
	operator5 func(Observable[E]) Observable[F],
) Observable[F] {
	return Pipe4(operator1(source), operator2, operator3, operator4, operator5)
}

// Pipe6 chains 6 operators with full type inference.
func Pipe6[A, B, C, D, E, F, G any](
	source Observable[A],
	operator1 func(Observable[A]) Observable[B],
	operator2 func(Observable[B]) Observable[C],
	operator3 func(Observable[C]) Observable[D],
	operator4 func(Observable[D]) Observable[E],
	operator5 func(Observable[E]) Observable[F],
	operator6 func(Observable[F]) Observable[G],
) Observable[G] {
	return Pipe5(operator1(source), operator2, operator3, operator4, operator5, operator6)
}

// PipeOp1 is the operator-producing version of Pipe1.
func PipeOp1[A, B any](
	operator1 func(Observable[A]) Observable[B],
) func(Observable[A]) Observable[B] {
	return operator1
}

// PipeOp2 is the operator-producing version of Pipe2.
func PipeOp2[A, B, C any](
	operator1 func(Observable[A]) Observable[B],
	operator2 func(Observable[B]) Observable[C],
) func(Observable[A]) Observable[C] {
	return func(source Observable[A]) Observable[C] {
		return Pipe2(source, operator1, operator2)
	}
}

// PipeOp3 is the operator-producing version of Pipe3.
func PipeOp3[A, B, C, D any](
	operator1 func(Observable[A]) Observable[B],
	operator2 func(Observable[B]) Observable[C],
	operator3 func(Observable[C]) Observable[D],
) func(Observable[A]) Observable[D] {
	return func(source Observable[A]) Observable[D] {
		return Pipe3(source, operator1, operator2, operator3)
	}
}

// PipeOp4 is the operator-producing version of Pipe4.
func PipeOp4[A, B, C, D, E any](
	operator1 func(Observable[A]) Observable[B],
	operator2 func(Observable[B]) Observable[C],
	operator3 func(Observable[C]) Observable[D],
	operator4 func(Observable[D]) Observable[E],
) func(Observable[A]) Observable[E] {
	return func(source Observable[A]) Observable[E] {
		return Pipe4(source, operator1, operator2, operator3, operator4)
	}
}
