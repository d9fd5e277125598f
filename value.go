// value.go: runtime values, functions and environments.
//
// A Value is a small tagged struct. Arrays are Go slices of Value, so
// binding an array to a second name shares the backing storage: index
// assignment through either name is visible through both. Natives that
// build new arrays (insert, remove, map, ...) allocate fresh slices and
// never touch their input.
package ari

import (
	"strconv"
	"strings"
)

// ValueKind tags the dynamic type of a Value.
type ValueKind int

const (
	NilKind ValueKind = iota
	BoolKind
	NumberKind
	StringKind
	ArrayKind
	FunctionKind
)

func (k ValueKind) String() string {
	switch k {
	case NilKind:
		return "Nil"
	case BoolKind:
		return "Boolean"
	case NumberKind:
		return "Number"
	case StringKind:
		return "String"
	case ArrayKind:
		return "Array"
	case FunctionKind:
		return "Function"
	}
	return "Unknown"
}

// Value is a runtime value. Data holds float64, string, bool, []Value or
// *Function depending on Kind; it is nil for NilKind.
type Value struct {
	Kind ValueKind
	Data any
}

// Constructors.

func NilValue() Value             { return Value{Kind: NilKind} }
func BoolValue(b bool) Value      { return Value{Kind: BoolKind, Data: b} }
func NumberValue(n float64) Value { return Value{Kind: NumberKind, Data: n} }
func StringValue(s string) Value  { return Value{Kind: StringKind, Data: s} }
func ArrayValue(a []Value) Value  { return Value{Kind: ArrayKind, Data: a} }
func FuncValue(f *Function) Value { return Value{Kind: FunctionKind, Data: f} }

// Accessors. Callers check Kind first; these panic on the wrong kind,
// which indicates an interpreter bug, not a user error.

func (v Value) Num() float64  { return v.Data.(float64) }
func (v Value) Str() string   { return v.Data.(string) }
func (v Value) Bool() bool    { return v.Data.(bool) }
func (v Value) Arr() []Value  { return v.Data.([]Value) }
func (v Value) Fn() *Function { return v.Data.(*Function) }

// IsNil reports whether v is the nil value.
func (v Value) IsNil() bool { return v.Kind == NilKind }

// Display renders v the way print and to_string show it. Numbers drop a
// trailing ".0"; strings render raw (no quotes); arrays render as
// "[e1, e2, ...]".
func (v Value) Display() string {
	switch v.Kind {
	case NilKind:
		return "null"
	case BoolKind:
		if v.Bool() {
			return "true"
		}
		return "false"
	case NumberKind:
		return formatNumber(v.Num())
	case StringKind:
		return v.Str()
	case ArrayKind:
		var b strings.Builder
		b.WriteByte('[')
		for i, el := range v.Arr() {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(el.Display())
		}
		b.WriteByte(']')
		return b.String()
	case FunctionKind:
		f := v.Fn()
		if f.Native != nil {
			return "<native fn " + f.Name + ">"
		}
		if f.Name != "" {
			return "<fn " + f.Name + ">"
		}
		return "<lambda>"
	}
	return "<unknown>"
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'g', -1, 64)
}

// valuesEqual implements deep same-kind equality. Comparing values of
// different kinds is a type error, signalled by ok=false.
func valuesEqual(a, b Value) (eq bool, ok bool) {
	if a.Kind != b.Kind {
		return false, false
	}
	switch a.Kind {
	case NilKind:
		return true, true
	case BoolKind:
		return a.Bool() == b.Bool(), true
	case NumberKind:
		return a.Num() == b.Num(), true
	case StringKind:
		return a.Str() == b.Str(), true
	case ArrayKind:
		av, bv := a.Arr(), b.Arr()
		if len(av) != len(bv) {
			return false, true
		}
		for i := range av {
			eq, ok := valuesEqual(av[i], bv[i])
			if !ok {
				return false, false
			}
			if !eq {
				return false, true
			}
		}
		return true, true
	case FunctionKind:
		return a.Fn() == b.Fn(), true
	}
	return false, false
}

// NativeCall carries the arguments of a native function invocation. The
// evaluator has already checked arity, so impls index Args freely; the
// typed accessors raise TypeMismatch at the call site when an argument
// has the wrong kind.
type NativeCall struct {
	Interp *Interpreter
	Args   []Value
	Name   string // native's registered name, for error messages
	Line   int    // 1-based call-site line
	Col    int    // 0-based call-site column
}

// TypeErr builds a TypeMismatch error located at the call site.
func (c *NativeCall) TypeErr(msg string) error {
	return &RuntimeError{Kind: TypeMismatch, Line: c.Line, Col: c.Col, Msg: msg}
}

// RuntimeErr builds a RuntimeError of the given kind at the call site.
func (c *NativeCall) RuntimeErr(kind RuntimeErrorKind, msg string) error {
	return &RuntimeError{Kind: kind, Line: c.Line, Col: c.Col, Msg: msg}
}

// Fail builds a NativeError of the given kind located at the call site.
func (c *NativeCall) Fail(kind NativeErrorKind, msg string) error {
	return &NativeError{Kind: kind, Line: c.Line, Col: c.Col, Msg: msg}
}

func (c *NativeCall) arg(i int, want ValueKind) (Value, error) {
	v := c.Args[i]
	if v.Kind != want {
		return Value{}, c.TypeErr(
			c.Name + ": argument " + strconv.Itoa(i+1) + " must be " + want.String() + ", got " + v.Kind.String())
	}
	return v, nil
}

// NumArg returns argument i as a float64 or a TypeMismatch error.
func (c *NativeCall) NumArg(i int) (float64, error) {
	v, err := c.arg(i, NumberKind)
	if err != nil {
		return 0, err
	}
	return v.Num(), nil
}

// StrArg returns argument i as a string or a TypeMismatch error.
func (c *NativeCall) StrArg(i int) (string, error) {
	v, err := c.arg(i, StringKind)
	if err != nil {
		return "", err
	}
	return v.Str(), nil
}

// ArrArg returns argument i as a []Value or a TypeMismatch error.
func (c *NativeCall) ArrArg(i int) ([]Value, error) {
	v, err := c.arg(i, ArrayKind)
	if err != nil {
		return nil, err
	}
	return v.Arr(), nil
}

// FnArg returns argument i as a *Function or a TypeMismatch error.
func (c *NativeCall) FnArg(i int) (*Function, error) {
	v, err := c.arg(i, FunctionKind)
	if err != nil {
		return nil, err
	}
	return v.Fn(), nil
}

// IntArg returns argument i as a non-negative-safe integer: the Number
// must be integral, otherwise TypeMismatch.
func (c *NativeCall) IntArg(i int) (int, error) {
	n, err := c.NumArg(i)
	if err != nil {
		return 0, err
	}
	if n != float64(int(n)) {
		return 0, c.TypeErr(c.Name + ": argument " + strconv.Itoa(i+1) + " must be an integer")
	}
	return int(n), nil
}

// NativeImpl is the body of a native function.
type NativeImpl func(c *NativeCall) (Value, error)

// Function is a callable: either a user function/lambda (Body and Env set)
// or a native (Native set). Arity is len(Params) for both.
type Function struct {
	Name   string // "" for lambdas
	Params []string
	Body   *BlockStmt
	Env    *Env // defining environment, captured by reference
	Native NativeImpl
}

// Env is a lexical scope: a name table with a pointer to the enclosing
// scope. Lookup and assignment walk the chain outward.
type Env struct {
	parent *Env
	table  map[string]Value
}

// NewEnv creates a scope enclosed by parent (nil for the root).
func NewEnv(parent *Env) *Env {
	return &Env{parent: parent, table: make(map[string]Value)}
}

// Define binds name in this scope, shadowing any outer binding.
func (e *Env) Define(name string, v Value) {
	e.table[name] = v
}

// Set rebinds the nearest existing binding of name. It reports false when
// no scope in the chain defines name.
func (e *Env) Set(name string, v Value) bool {
	for s := e; s != nil; s = s.parent {
		if _, ok := s.table[name]; ok {
			s.table[name] = v
			return true
		}
	}
	return false
}

// Get resolves name through the scope chain.
func (e *Env) Get(name string) (Value, bool) {
	for s := e; s != nil; s = s.parent {
		if v, ok := s.table[name]; ok {
			return v, true
		}
	}
	return Value{}, false
}
