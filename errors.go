// errors.go: structured diagnostics and caret-snippet rendering
//
// Every phase of the pipeline reports failures through one of four error
// types defined here. The lexer produces *LexError, the parser *ParseError,
// the evaluator *RuntimeError, and native functions *NativeError. All carry
// a 1-based Line and a 0-based Col so a caller can point at the offending
// source position.
//
// `WrapErrorWithSource` (or `WrapErrorWithName` when the script has a name)
// turns any of them into a plain-text, Python-style snippet with a caret
// under the offending column:
//
//	RUNTIME ERROR at 3:9: undefined name 'y'
//
//	   2 | let x = 1;
//	   3 | let z = y + 1;
//	       |         ^
//	   4 | println z;
//
// Rendering is plain text; ANSI coloring is the CLI's concern.
package ari

import (
	"fmt"
	"strings"
)

// RuntimeErrorKind classifies evaluator failures.
type RuntimeErrorKind int

const (
	UndefinedName RuntimeErrorKind = iota
	TypeMismatch
	ArityMismatch
	IndexOutOfBounds
	ArrayLengthMismatch
	DivisionByZero
	BadControl // break/continue/return escaping their construct
)

func (k RuntimeErrorKind) String() string {
	switch k {
	case UndefinedName:
		return "UndefinedName"
	case TypeMismatch:
		return "TypeMismatch"
	case ArityMismatch:
		return "ArityMismatch"
	case IndexOutOfBounds:
		return "IndexOutOfBounds"
	case ArrayLengthMismatch:
		return "ArrayLengthMismatch"
	case DivisionByZero:
		return "DivisionByZero"
	case BadControl:
		return "BadControl"
	}
	return "Unknown"
}

// NativeErrorKind classifies failures raised by native functions.
type NativeErrorKind int

const (
	NativeParseError NativeErrorKind = iota
	NativeIoError
	NativeRangeError
	NativeTransportError
)

func (k NativeErrorKind) String() string {
	switch k {
	case NativeParseError:
		return "ParseError"
	case NativeIoError:
		return "IoError"
	case NativeRangeError:
		return "RangeError"
	case NativeTransportError:
		return "TransportError"
	}
	return "Unknown"
}

// LexError reports a malformed token. Col is 0-based.
type LexError struct {
	Line int
	Col  int
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

// ParseError reports a grammar violation. Col is 0-based. Incomplete is
// set when the parser ran out of tokens, which lets a REPL keep reading
// continuation lines instead of reporting the error.
type ParseError struct {
	Line       int
	Col        int
	Msg        string
	Incomplete bool
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

// RuntimeError reports an evaluation failure with its kind and the source
// position of the expression that failed. Col is 0-based.
type RuntimeError struct {
	Kind RuntimeErrorKind
	Line int
	Col  int
	Msg  string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error [%s] at %d:%d: %s", e.Kind, e.Line, e.Col+1, e.Msg)
}

// NativeError reports a failure inside a native function: bad input text,
// I/O trouble, out-of-domain arguments, or network transport problems.
// Position fields are filled in by the evaluator at the call site.
type NativeError struct {
	Kind NativeErrorKind
	Line int
	Col  int
	Msg  string
}

func (e *NativeError) Error() string {
	return fmt.Sprintf("native error [%s] at %d:%d: %s", e.Kind, e.Line, e.Col+1, e.Msg)
}

/* ===========================
   PUBLIC API
   =========================== */

// WrapErrorWithSource returns an error whose message is a caret-annotated
// snippet of src when err is one of the diagnostic types above. Any other
// error is returned unchanged.
func WrapErrorWithSource(err error, src string) error {
	return WrapErrorWithName(err, "", src)
}

// WrapErrorWithName is WrapErrorWithSource with an optional script name
// included in the header ("RUNTIME ERROR in fib.ari at 3:9: ...").
func WrapErrorWithName(err error, srcName string, src string) error {
	switch e := err.(type) {
	case *LexError:
		// Col is 0-based internally; render as 1-based.
		return fmt.Errorf("%s", prettyErrorStringLabeled(src, "LEXICAL ERROR", srcName, e.Line, e.Col+1, e.Msg))
	case *ParseError:
		return fmt.Errorf("%s", prettyErrorStringLabeled(src, "PARSE ERROR", srcName, e.Line, e.Col+1, e.Msg))
	case *RuntimeError:
		return fmt.Errorf("%s", prettyErrorStringLabeled(src, "RUNTIME ERROR", srcName, e.Line, e.Col+1, e.Msg))
	case *NativeError:
		return fmt.Errorf("%s", prettyErrorStringLabeled(src, "NATIVE ERROR", srcName, e.Line, e.Col+1, e.Msg))
	default:
		return err
	}
}

//// END_OF_PUBLIC

/* ===========================
   PRIVATE: rendering
   =========================== */

// prettyErrorStringLabeled builds a Python-like snippet with a header and a
// caret. It shows at most one previous and one next line when available.
// Coordinates are treated as 1-based and clamped to the source bounds.
func prettyErrorStringLabeled(src, header, name string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line > len(lines) {
		line = len(lines)
	}
	lineTxt := lines[line-1]

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", header, name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lineTxt)
	caretPad := col - 1
	if caretPad < 0 {
		caretPad = 0
	}
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", caretPad))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
