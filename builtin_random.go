package ari

import "math/rand"

// ---- random natives ------------------------------------------------------

func registerRandomNatives(i *Interpreter) {
	// random_choose(a: Arr) -> Any
	i.mustRegister("random_choose", []string{"a"}, func(c *NativeCall) (Value, error) {
		arr, err := c.ArrArg(0)
		if err != nil {
			return Value{}, err
		}
		if len(arr) == 0 {
			return Value{}, c.Fail(NativeRangeError, "random_choose: array is empty")
		}
		return arr[rand.Intn(len(arr))], nil
	})
	setBuiltinDoc(i, "random_choose", `random_choose(a) — one element of a, chosen uniformly.
Fails with RangeError on an empty array.`)

	// random_normal(mean: Num, stddev: Num) -> Num
	i.mustRegister("random_normal", []string{"mean", "stddev"}, func(c *NativeCall) (Value, error) {
		mean, err := c.NumArg(0)
		if err != nil {
			return Value{}, err
		}
		stddev, err := c.NumArg(1)
		if err != nil {
			return Value{}, err
		}
		if stddev < 0 {
			return Value{}, c.Fail(NativeRangeError, "random_normal: stddev must not be negative, got "+formatNumber(stddev))
		}
		return NumberValue(mean + stddev*rand.NormFloat64()), nil
	})
	setBuiltinDoc(i, "random_normal", `random_normal(mean, stddev) — one draw from a normal distribution.`)
}
