package ari

import "strings"

// ---- string natives ------------------------------------------------------

func registerStringNatives(i *Interpreter) {
	// split(s: Str, sep: Str) -> [Str]
	i.mustRegister("split", []string{"s", "sep"}, func(c *NativeCall) (Value, error) {
		s, err := c.StrArg(0)
		if err != nil {
			return Value{}, err
		}
		sep, err := c.StrArg(1)
		if err != nil {
			return Value{}, err
		}
		parts := strings.Split(s, sep)
		out := make([]Value, len(parts))
		for idx, p := range parts {
			out[idx] = StringValue(p)
		}
		return ArrayValue(out), nil
	})
	setBuiltinDoc(i, "split", `split(s, sep) — split s around each occurrence of sep.
An empty sep splits between every byte.`)

	// to_lowercase(s: Str) -> Str
	i.mustRegister("to_lowercase", []string{"s"}, func(c *NativeCall) (Value, error) {
		s, err := c.StrArg(0)
		if err != nil {
			return Value{}, err
		}
		return StringValue(strings.ToLower(s)), nil
	})
	setBuiltinDoc(i, "to_lowercase", `to_lowercase(s) — lowercase copy of s.`)

	// to_uppercase(s: Str) -> Str
	i.mustRegister("to_uppercase", []string{"s"}, func(c *NativeCall) (Value, error) {
		s, err := c.StrArg(0)
		if err != nil {
			return Value{}, err
		}
		return StringValue(strings.ToUpper(s)), nil
	})
	setBuiltinDoc(i, "to_uppercase", `to_uppercase(s) — uppercase copy of s.`)
}
