// interpreter.go: interpreter construction, configuration and the native
// registry.
//
// Scope layout: a Core environment holds every native function; the Global
// environment is a child of Core and holds user state. Natives can never be
// shadowed out of existence, only shadowed over, and re-creating the Global
// (REPL reset) keeps Core intact.
package ari

import (
	"fmt"
	"io"
	"os"
	"runtime"
)

// Version is the interpreter version reported by the CLI.
const Version = "0.1.0"

// Config tunes the engine. Semantics never depend on these values.
type Config struct {
	// ParallelThreshold is the element count at which elementwise array
	// arithmetic switches from the sequential loop to the fork-join path.
	ParallelThreshold int `yaml:"parallel_threshold"`
	// Workers is the number of goroutines used by the fork-join path.
	Workers int `yaml:"workers"`
	// Stdout receives print/println output. Defaults to os.Stdout.
	Stdout io.Writer `yaml:"-"`
}

// DefaultConfig returns the tuning used when no ari.yaml is present.
func DefaultConfig() Config {
	return Config{
		ParallelThreshold: 4096,
		Workers:           runtime.NumCPU(),
	}
}

func (c *Config) normalize() {
	if c.ParallelThreshold < 1 {
		c.ParallelThreshold = DefaultConfig().ParallelThreshold
	}
	if c.Workers < 1 {
		c.Workers = DefaultConfig().Workers
	}
	if c.Stdout == nil {
		c.Stdout = os.Stdout
	}
}

// Interpreter evaluates Ari programs. Construct with NewInterpreter; the
// zero value is not usable.
type Interpreter struct {
	Core   *Env // natives
	Global *Env // user state, child of Core
	cfg    Config
	docs   map[string]string
	sealed bool
}

// NewInterpreter builds an interpreter with all natives installed. After
// construction the registry is sealed: RegisterNative returns an error.
func NewInterpreter(cfg Config) *Interpreter {
	cfg.normalize()
	i := &Interpreter{cfg: cfg, docs: make(map[string]string)}
	i.Core = NewEnv(nil)
	registerCoreNatives(i)
	registerStringNatives(i)
	registerArrayNatives(i)
	registerRandomNatives(i)
	registerFileNatives(i)
	registerNetNatives(i)
	i.sealed = true
	i.Global = NewEnv(i.Core)
	return i
}

// RegisterNative installs a native function into the Core environment.
// It fails once the interpreter is sealed (after NewInterpreter returns).
func (i *Interpreter) RegisterNative(name string, params []string, impl NativeImpl) error {
	if i.sealed {
		return fmt.Errorf("native registry is sealed: cannot register %q", name)
	}
	fn := &Function{Name: name, Params: params, Native: impl}
	i.Core.Define(name, FuncValue(fn))
	return nil
}

// mustRegister is RegisterNative for construction time, where failure is a
// programming error.
func (i *Interpreter) mustRegister(name string, params []string, impl NativeImpl) {
	if err := i.RegisterNative(name, params, impl); err != nil {
		panic(err)
	}
}

// setBuiltinDoc records a help text for a native, shown by the REPL.
func setBuiltinDoc(i *Interpreter, name, doc string) {
	i.docs[name] = doc
}

// BuiltinDoc returns the help text registered for a native.
func (i *Interpreter) BuiltinDoc(name string) (string, bool) {
	doc, ok := i.docs[name]
	return doc, ok
}

// BuiltinNames lists every registered native, unsorted.
func (i *Interpreter) BuiltinNames() []string {
	names := make([]string, 0, len(i.docs))
	for name := range i.docs {
		names = append(names, name)
	}
	return names
}

// ResetGlobal discards all user state, keeping the natives (REPL reset).
func (i *Interpreter) ResetGlobal() {
	i.Global = NewEnv(i.Core)
}

// EvalSource lexes, parses and evaluates src in the Global environment.
// It returns the value of the last expression statement (Nil when the
// program ends with a non-expression statement).
func (i *Interpreter) EvalSource(src string) (Value, error) {
	prog, err := Parse(src)
	if err != nil {
		return Value{}, err
	}
	return i.EvalProgram(prog)
}

// EvalProgram evaluates an already-parsed program in the Global
// environment.
func (i *Interpreter) EvalProgram(prog *Program) (Value, error) {
	last := NilValue()
	for _, stmt := range prog.Stmts {
		v, ctrl, err := i.execStmt(i.Global, stmt)
		if err != nil {
			return Value{}, err
		}
		if ctrl != ctrlNone {
			tok := stmt.Pos()
			return Value{}, &RuntimeError{
				Kind: BadControl,
				Line: tok.Line,
				Col:  tok.Col,
				Msg:  ctrl.describe() + " outside of its enclosing construct",
			}
		}
		last = v
	}
	return last, nil
}

// CallFunction invokes fn with args. Natives such as map and reduce use it
// to call user callbacks; line/col locate the originating call site for
// diagnostics.
func (i *Interpreter) CallFunction(fn *Function, args []Value, line, col int) (Value, error) {
	if len(args) != len(fn.Params) {
		name := fn.Name
		if name == "" {
			name = "<lambda>"
		}
		return Value{}, &RuntimeError{
			Kind: ArityMismatch,
			Line: line,
			Col:  col,
			Msg:  fmt.Sprintf("%s expects %d argument(s), got %d", name, len(fn.Params), len(args)),
		}
	}

	if fn.Native != nil {
		return fn.Native(&NativeCall{
			Interp: i,
			Args:   args,
			Name:   fn.Name,
			Line:   line,
			Col:    col,
		})
	}

	// User function: fresh scope under the captured environment.
	env := NewEnv(fn.Env)
	for idx, p := range fn.Params {
		env.Define(p, args[idx])
	}
	for _, stmt := range fn.Body.Stmts {
		v, ctrl, err := i.execStmt(env, stmt)
		if err != nil {
			return Value{}, err
		}
		switch ctrl {
		case ctrlReturn:
			return v, nil
		case ctrlBreak, ctrlContinue:
			tok := stmt.Pos()
			return Value{}, &RuntimeError{
				Kind: BadControl,
				Line: tok.Line,
				Col:  tok.Col,
				Msg:  ctrl.describe() + " outside of a loop",
			}
		}
	}
	return NilValue(), nil
}
