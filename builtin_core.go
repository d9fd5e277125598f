package ari

import (
	"math"
	"strconv"
	"strings"
)

// ---- math and conversion natives ----------------------------------------

func registerCoreNatives(i *Interpreter) {
	// power(base: Num, exp: Num) -> Num
	i.mustRegister("power", []string{"base", "exp"}, func(c *NativeCall) (Value, error) {
		base, err := c.NumArg(0)
		if err != nil {
			return Value{}, err
		}
		exp, err := c.NumArg(1)
		if err != nil {
			return Value{}, err
		}
		return NumberValue(math.Pow(base, exp)), nil
	})
	setBuiltinDoc(i, "power", `power(base, exp) — base raised to exp.`)

	// log(base: Num, value: Num) -> Num
	i.mustRegister("log", []string{"base", "value"}, func(c *NativeCall) (Value, error) {
		base, err := c.NumArg(0)
		if err != nil {
			return Value{}, err
		}
		value, err := c.NumArg(1)
		if err != nil {
			return Value{}, err
		}
		if value <= 0 {
			return Value{}, c.Fail(NativeRangeError, "log: value must be positive, got "+formatNumber(value))
		}
		if base <= 0 || base == 1 {
			return Value{}, c.Fail(NativeRangeError, "log: base must be positive and not 1, got "+formatNumber(base))
		}
		// Log2/Log10 are more accurate than the quotient for the
		// common bases (Log2 is exact on powers of two).
		switch base {
		case 2:
			return NumberValue(math.Log2(value)), nil
		case 10:
			return NumberValue(math.Log10(value)), nil
		default:
			return NumberValue(math.Log(value) / math.Log(base)), nil
		}
	})
	setBuiltinDoc(i, "log", `log(base, value) — logarithm of value in the given base.
Fails with RangeError when value is not positive or base is invalid.`)

	// mod(a: Num, b: Num) -> Num
	i.mustRegister("mod", []string{"a", "b"}, func(c *NativeCall) (Value, error) {
		a, err := c.NumArg(0)
		if err != nil {
			return Value{}, err
		}
		b, err := c.NumArg(1)
		if err != nil {
			return Value{}, err
		}
		if b == 0 {
			return Value{}, c.RuntimeErr(DivisionByZero, "mod: divisor is zero")
		}
		// result takes the sign of the dividend
		return NumberValue(math.Mod(a, b)), nil
	})
	setBuiltinDoc(i, "mod", `mod(a, b) — remainder of a/b; the result takes the sign of a.`)

	// abs(x: Num) -> Num
	i.mustRegister("abs", []string{"x"}, func(c *NativeCall) (Value, error) {
		x, err := c.NumArg(0)
		if err != nil {
			return Value{}, err
		}
		return NumberValue(math.Abs(x)), nil
	})
	setBuiltinDoc(i, "abs", `abs(x) — absolute value.`)

	// floor(x: Num) -> Num
	i.mustRegister("floor", []string{"x"}, func(c *NativeCall) (Value, error) {
		x, err := c.NumArg(0)
		if err != nil {
			return Value{}, err
		}
		return NumberValue(math.Floor(x)), nil
	})
	setBuiltinDoc(i, "floor", `floor(x) — largest integer not greater than x.`)

	// ceil(x: Num) -> Num
	i.mustRegister("ceil", []string{"x"}, func(c *NativeCall) (Value, error) {
		x, err := c.NumArg(0)
		if err != nil {
			return Value{}, err
		}
		return NumberValue(math.Ceil(x)), nil
	})
	setBuiltinDoc(i, "ceil", `ceil(x) — smallest integer not less than x.`)

	// max(a: Num, b: Num) -> Num
	i.mustRegister("max", []string{"a", "b"}, func(c *NativeCall) (Value, error) {
		a, err := c.NumArg(0)
		if err != nil {
			return Value{}, err
		}
		b, err := c.NumArg(1)
		if err != nil {
			return Value{}, err
		}
		return NumberValue(math.Max(a, b)), nil
	})
	setBuiltinDoc(i, "max", `max(a, b) — the greater of two numbers.`)

	// min(a: Num, b: Num) -> Num
	i.mustRegister("min", []string{"a", "b"}, func(c *NativeCall) (Value, error) {
		a, err := c.NumArg(0)
		if err != nil {
			return Value{}, err
		}
		b, err := c.NumArg(1)
		if err != nil {
			return Value{}, err
		}
		return NumberValue(math.Min(a, b)), nil
	})
	setBuiltinDoc(i, "min", `min(a, b) — the lesser of two numbers.`)

	// to_string(x: Any) -> Str
	i.mustRegister("to_string", []string{"x"}, func(c *NativeCall) (Value, error) {
		return StringValue(c.Args[0].Display()), nil
	})
	setBuiltinDoc(i, "to_string", `to_string(x) — display form of any value.`)

	// to_number(s: Str) -> Num
	i.mustRegister("to_number", []string{"s"}, func(c *NativeCall) (Value, error) {
		s, err := c.StrArg(0)
		if err != nil {
			return Value{}, err
		}
		n, convErr := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if convErr != nil {
			return Value{}, c.Fail(NativeParseError, "to_number: cannot parse "+strconv.Quote(s)+" as a number")
		}
		return NumberValue(n), nil
	})
	setBuiltinDoc(i, "to_number", `to_number(s) — parse a string as a Number.
Fails with ParseError when s is not numeric.`)
}
