package ari

import (
	"strconv"
	"unicode/utf8"
)

// ---- array natives -------------------------------------------------------
//
// insert and remove are pure: they build a fresh array (or string) and
// leave the argument untouched. In-place mutation is spelled `a[i] = v`.

func registerArrayNatives(i *Interpreter) {
	// length(x: Arr|Str) -> Num
	i.mustRegister("length", []string{"x"}, func(c *NativeCall) (Value, error) {
		switch v := c.Args[0]; v.Kind {
		case ArrayKind:
			return NumberValue(float64(len(v.Arr()))), nil
		case StringKind:
			return NumberValue(float64(utf8.RuneCountInString(v.Str()))), nil
		default:
			return Value{}, c.TypeErr("length: argument must be Array or String, got " + v.Kind.String())
		}
	})
	setBuiltinDoc(i, "length", `length(x) — element count of an array or character count of a string.`)

	// insert(x: Arr|Str, index: Num, value: Any) -> Arr|Str
	i.mustRegister("insert", []string{"x", "index", "value"}, func(c *NativeCall) (Value, error) {
		idx, err := c.IntArg(1)
		if err != nil {
			return Value{}, err
		}
		if idx < 0 {
			return Value{}, c.RuntimeErr(IndexOutOfBounds, "insert: index "+strconv.Itoa(idx)+" is negative")
		}
		switch v := c.Args[0]; v.Kind {
		case ArrayKind:
			arr := v.Arr()
			if idx > len(arr) {
				return Value{}, c.RuntimeErr(IndexOutOfBounds,
					"insert: index "+strconv.Itoa(idx)+" out of bounds for length "+strconv.Itoa(len(arr)))
			}
			out := make([]Value, 0, len(arr)+1)
			out = append(out, arr[:idx]...)
			out = append(out, c.Args[2])
			out = append(out, arr[idx:]...)
			return ArrayValue(out), nil
		case StringKind:
			if c.Args[2].Kind != StringKind {
				return Value{}, c.TypeErr("insert: value must be String when inserting into a String")
			}
			runes := []rune(v.Str())
			if idx > len(runes) {
				return Value{}, c.RuntimeErr(IndexOutOfBounds,
					"insert: index "+strconv.Itoa(idx)+" out of bounds for length "+strconv.Itoa(len(runes)))
			}
			return StringValue(string(runes[:idx]) + c.Args[2].Str() + string(runes[idx:])), nil
		default:
			return Value{}, c.TypeErr("insert: argument must be Array or String, got " + v.Kind.String())
		}
	})
	setBuiltinDoc(i, "insert", `insert(x, index, value) — copy of x with value inserted at index.
index may equal length(x) to append. The original is not modified.`)

	// remove(x: Arr|Str, index: Num) -> Arr|Str
	i.mustRegister("remove", []string{"x", "index"}, func(c *NativeCall) (Value, error) {
		idx, err := c.IntArg(1)
		if err != nil {
			return Value{}, err
		}
		if idx < 0 {
			return Value{}, c.RuntimeErr(IndexOutOfBounds, "remove: index "+strconv.Itoa(idx)+" is negative")
		}
		switch v := c.Args[0]; v.Kind {
		case ArrayKind:
			arr := v.Arr()
			if idx >= len(arr) {
				return Value{}, c.RuntimeErr(IndexOutOfBounds,
					"remove: index "+strconv.Itoa(idx)+" out of bounds for length "+strconv.Itoa(len(arr)))
			}
			out := make([]Value, 0, len(arr)-1)
			out = append(out, arr[:idx]...)
			out = append(out, arr[idx+1:]...)
			return ArrayValue(out), nil
		case StringKind:
			runes := []rune(v.Str())
			if idx >= len(runes) {
				return Value{}, c.RuntimeErr(IndexOutOfBounds,
					"remove: index "+strconv.Itoa(idx)+" out of bounds for length "+strconv.Itoa(len(runes)))
			}
			return StringValue(string(runes[:idx]) + string(runes[idx+1:])), nil
		default:
			return Value{}, c.TypeErr("remove: argument must be Array or String, got " + v.Kind.String())
		}
	})
	setBuiltinDoc(i, "remove", `remove(x, index) — copy of x with the element at index removed.
The original is not modified.`)

	// map(a: Arr, f: Fn) -> Arr
	i.mustRegister("map", []string{"a", "f"}, func(c *NativeCall) (Value, error) {
		arr, err := c.ArrArg(0)
		if err != nil {
			return Value{}, err
		}
		fn, err := c.FnArg(1)
		if err != nil {
			return Value{}, err
		}
		out := make([]Value, len(arr))
		for idx, el := range arr {
			v, err := c.Interp.CallFunction(fn, []Value{el}, c.Line, c.Col)
			if err != nil {
				return Value{}, err
			}
			out[idx] = v
		}
		return ArrayValue(out), nil
	})
	setBuiltinDoc(i, "map", `map(a, f) — array of f(x) for each x in a, in order.`)

	// filter(a: Arr, f: Fn) -> Arr
	i.mustRegister("filter", []string{"a", "f"}, func(c *NativeCall) (Value, error) {
		arr, err := c.ArrArg(0)
		if err != nil {
			return Value{}, err
		}
		fn, err := c.FnArg(1)
		if err != nil {
			return Value{}, err
		}
		var out []Value
		for _, el := range arr {
			keep, err := c.Interp.CallFunction(fn, []Value{el}, c.Line, c.Col)
			if err != nil {
				return Value{}, err
			}
			if keep.Kind != BoolKind {
				return Value{}, c.TypeErr("filter: predicate must return Boolean, got " + keep.Kind.String())
			}
			if keep.Bool() {
				out = append(out, el)
			}
		}
		if out == nil {
			out = []Value{}
		}
		return ArrayValue(out), nil
	})
	setBuiltinDoc(i, "filter", `filter(a, f) — elements of a for which f(x) is true.`)

	// reduce(a: Arr, f: Fn, seed: Any) -> Any
	i.mustRegister("reduce", []string{"a", "f", "seed"}, func(c *NativeCall) (Value, error) {
		arr, err := c.ArrArg(0)
		if err != nil {
			return Value{}, err
		}
		fn, err := c.FnArg(1)
		if err != nil {
			return Value{}, err
		}
		acc := c.Args[2]
		for _, el := range arr {
			acc, err = c.Interp.CallFunction(fn, []Value{acc, el}, c.Line, c.Col)
			if err != nil {
				return Value{}, err
			}
		}
		return acc, nil
	})
	setBuiltinDoc(i, "reduce", `reduce(a, f, seed) — left fold: f(...f(f(seed, a[0]), a[1])..., a[n-1]).
An empty array yields seed.`)

	// range(start: Num, end: Num, step: Num) -> Arr
	i.mustRegister("range", []string{"start", "end", "step"}, func(c *NativeCall) (Value, error) {
		start, err := c.NumArg(0)
		if err != nil {
			return Value{}, err
		}
		end, err := c.NumArg(1)
		if err != nil {
			return Value{}, err
		}
		step, err := c.NumArg(2)
		if err != nil {
			return Value{}, err
		}
		if step == 0 {
			return Value{}, c.Fail(NativeRangeError, "range: step must not be zero")
		}
		var out []Value
		if step > 0 {
			for v := start; v < end; v += step {
				out = append(out, NumberValue(v))
			}
		} else {
			for v := start; v > end; v += step {
				out = append(out, NumberValue(v))
			}
		}
		if out == nil {
			out = []Value{}
		}
		return ArrayValue(out), nil
	})
	setBuiltinDoc(i, "range", `range(start, end, step) — numbers from start toward end (exclusive) by step.
Fails with RangeError when step is zero.`)

	// linspace(start: Num, end: Num, count: Num) -> Arr
	i.mustRegister("linspace", []string{"start", "end", "count"}, func(c *NativeCall) (Value, error) {
		start, err := c.NumArg(0)
		if err != nil {
			return Value{}, err
		}
		end, err := c.NumArg(1)
		if err != nil {
			return Value{}, err
		}
		count, err := c.IntArg(2)
		if err != nil {
			return Value{}, err
		}
		if count < 2 {
			return Value{}, c.Fail(NativeRangeError, "linspace: count must be at least 2, got "+strconv.Itoa(count))
		}
		out := make([]Value, count)
		stride := (end - start) / float64(count-1)
		for idx := 0; idx < count; idx++ {
			out[idx] = NumberValue(start + float64(idx)*stride)
		}
		// pin the endpoint; accumulated stride error would otherwise drift
		out[count-1] = NumberValue(end)
		return ArrayValue(out), nil
	})
	setBuiltinDoc(i, "linspace", `linspace(start, end, count) — count evenly spaced numbers from start to end inclusive.`)

	// repeat(value: Any, count: Num) -> Arr
	i.mustRegister("repeat", []string{"value", "count"}, func(c *NativeCall) (Value, error) {
		count, err := c.IntArg(1)
		if err != nil {
			return Value{}, err
		}
		if count < 0 {
			return Value{}, c.Fail(NativeRangeError, "repeat: count must not be negative, got "+strconv.Itoa(count))
		}
		out := make([]Value, count)
		for idx := range out {
			out[idx] = c.Args[0]
		}
		return ArrayValue(out), nil
	})
	setBuiltinDoc(i, "repeat", `repeat(value, count) — array of count copies of value.`)
}
