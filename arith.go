// arith.go: operator semantics and the elementwise array engine.
//
// All binary operators funnel through applyBinary. Arithmetic and
// relational operators broadcast: scalar⊕array and array⊕scalar map the
// scalar across the array, array⊕array zips two equal-length arrays. The
// same scalar kernel runs in every case, so nested arrays broadcast
// recursively and mixed-kind elements fail with the same TypeMismatch a
// scalar expression would produce.
//
// Elementwise evaluation is sequential below Config.ParallelThreshold.
// At or above it, the index space is split into Config.Workers contiguous
// chunks, each evaluated by its own goroutine into a disjoint range of the
// preallocated result slice; an errgroup join is the only synchronization.
// Both paths compute the same kernel in the same index order per element,
// so results are identical.
package ari

import (
	"math"
	"strings"

	"golang.org/x/sync/errgroup"
)

// applyBinary dispatches a binary operator on evaluated operands.
func (i *Interpreter) applyBinary(op TokenType, l, r Value, tok Token) (Value, error) {
	switch op {
	case EQ, NEQ:
		eq, ok := valuesEqual(l, r)
		if !ok {
			return Value{}, runtimeErrAt(TypeMismatch, tok,
				"cannot compare %s with %s", l.Kind, r.Kind)
		}
		if op == NEQ {
			eq = !eq
		}
		return BoolValue(eq), nil

	case PLUS, MINUS, STAR, SLASH, PERCENT:
		return i.broadcast(l, r, tok, func(a, b Value) (Value, error) {
			return scalarArith(op, a, b, tok)
		})

	case LESS, LESS_EQ, GREATER, GREATER_EQ:
		return i.broadcast(l, r, tok, func(a, b Value) (Value, error) {
			return scalarCompare(op, a, b, tok)
		})
	}
	return Value{}, runtimeErrAt(TypeMismatch, tok, "unknown binary operator")
}

// applyUnary dispatches `-x` and `!x`. Negation broadcasts over arrays.
func (i *Interpreter) applyUnary(op TokenType, v Value, tok Token) (Value, error) {
	switch op {
	case MINUS:
		switch v.Kind {
		case NumberKind:
			return NumberValue(-v.Num()), nil
		case ArrayKind:
			arr := v.Arr()
			return i.runElementwise(len(arr), func(idx int) (Value, error) {
				return i.applyUnary(MINUS, arr[idx], tok)
			})
		}
		return Value{}, runtimeErrAt(TypeMismatch, tok, "cannot negate a value of type %s", v.Kind)
	case BANG:
		b, err := truthy(v, tok)
		if err != nil {
			return Value{}, err
		}
		return BoolValue(!b), nil
	}
	return Value{}, runtimeErrAt(TypeMismatch, tok, "unknown unary operator")
}

// broadcast applies kernel across the four operand shapes. Element pairs
// that still contain an array broadcast again, so nesting recurses to any
// depth before the scalar kernel runs.
func (i *Interpreter) broadcast(l, r Value, tok Token, kernel func(a, b Value) (Value, error)) (Value, error) {
	lArr := l.Kind == ArrayKind
	rArr := r.Kind == ArrayKind

	step := func(a, b Value) (Value, error) {
		if a.Kind == ArrayKind || b.Kind == ArrayKind {
			return i.broadcast(a, b, tok, kernel)
		}
		return kernel(a, b)
	}

	switch {
	case lArr && rArr:
		la, ra := l.Arr(), r.Arr()
		if len(la) != len(ra) {
			return Value{}, runtimeErrAt(ArrayLengthMismatch, tok,
				"array lengths differ: %d vs %d", len(la), len(ra))
		}
		return i.runElementwise(len(la), func(idx int) (Value, error) {
			return step(la[idx], ra[idx])
		})
	case lArr:
		la := l.Arr()
		return i.runElementwise(len(la), func(idx int) (Value, error) {
			return step(la[idx], r)
		})
	case rArr:
		ra := r.Arr()
		return i.runElementwise(len(ra), func(idx int) (Value, error) {
			return step(l, ra[idx])
		})
	default:
		return kernel(l, r)
	}
}

// runElementwise computes a fresh array of n elements. Each index is
// computed exactly once by exactly one goroutine; the kernel never sees
// partial results.
func (i *Interpreter) runElementwise(n int, compute func(idx int) (Value, error)) (Value, error) {
	out := make([]Value, n)

	if n < i.cfg.ParallelThreshold {
		for idx := 0; idx < n; idx++ {
			v, err := compute(idx)
			if err != nil {
				return Value{}, err
			}
			out[idx] = v
		}
		return ArrayValue(out), nil
	}

	workers := i.cfg.Workers
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			break
		}
		g.Go(func() error {
			for idx := lo; idx < hi; idx++ {
				v, err := compute(idx)
				if err != nil {
					return err
				}
				out[idx] = v
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Value{}, err
	}
	return ArrayValue(out), nil
}

// scalarArith is the per-element kernel for + - * / %.
func scalarArith(op TokenType, a, b Value, tok Token) (Value, error) {
	// Number ⊕ Number
	if a.Kind == NumberKind && b.Kind == NumberKind {
		return numArith(op, a.Num(), b.Num(), tok)
	}

	switch op {
	case PLUS:
		// String concatenation, including mixed String/Number.
		switch {
		case a.Kind == StringKind && b.Kind == StringKind:
			return StringValue(a.Str() + b.Str()), nil
		case a.Kind == StringKind && b.Kind == NumberKind:
			return StringValue(a.Str() + formatNumber(b.Num())), nil
		case a.Kind == NumberKind && b.Kind == StringKind:
			return StringValue(formatNumber(a.Num()) + b.Str()), nil
		}
	case STAR:
		// String repetition.
		if a.Kind == StringKind && b.Kind == NumberKind {
			return repeatString(a.Str(), b.Num(), tok)
		}
		if a.Kind == NumberKind && b.Kind == StringKind {
			return repeatString(b.Str(), a.Num(), tok)
		}
	}

	return Value{}, runtimeErrAt(TypeMismatch, tok,
		"unsupported operand types for '%s': %s and %s", tok.Lexeme, a.Kind, b.Kind)
}

func numArith(op TokenType, a, b float64, tok Token) (Value, error) {
	switch op {
	case PLUS:
		return NumberValue(a + b), nil
	case MINUS:
		return NumberValue(a - b), nil
	case STAR:
		return NumberValue(a * b), nil
	case SLASH:
		if b == 0 {
			return Value{}, runtimeErrAt(DivisionByZero, tok, "division by zero")
		}
		return NumberValue(a / b), nil
	case PERCENT:
		if b == 0 {
			return Value{}, runtimeErrAt(DivisionByZero, tok, "modulo by zero")
		}
		// result takes the sign of the dividend
		return NumberValue(math.Mod(a, b)), nil
	}
	return Value{}, runtimeErrAt(TypeMismatch, tok, "unknown arithmetic operator")
}

func repeatString(s string, count float64, tok Token) (Value, error) {
	if count < 0 || count != math.Trunc(count) {
		return Value{}, runtimeErrAt(TypeMismatch, tok,
			"string repetition count must be a non-negative integer, got %s", formatNumber(count))
	}
	return StringValue(strings.Repeat(s, int(count))), nil
}

// scalarCompare is the per-element kernel for < <= > >=.
func scalarCompare(op TokenType, a, b Value, tok Token) (Value, error) {
	if a.Kind != NumberKind || b.Kind != NumberKind {
		return Value{}, runtimeErrAt(TypeMismatch, tok,
			"cannot order %s and %s", a.Kind, b.Kind)
	}
	x, y := a.Num(), b.Num()
	var res bool
	switch op {
	case LESS:
		res = x < y
	case LESS_EQ:
		res = x <= y
	case GREATER:
		res = x > y
	case GREATER_EQ:
		res = x >= y
	}
	return BoolValue(res), nil
}
