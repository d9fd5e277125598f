package ari

import (
	"errors"
	"strings"
	"testing"
)

func TestWrapLexErrorSnippet(t *testing.T) {
	src := "let s = \"abc"
	_, err := NewLexer(src).Scan()
	if err == nil {
		t.Fatal("expected lex error")
	}
	out := WrapErrorWithSource(err, src).Error()
	if !strings.Contains(out, "LEXICAL ERROR") {
		t.Fatalf("missing header:\n%s", out)
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("missing caret:\n%s", out)
	}
}

func TestWrapParseErrorShowsContextLines(t *testing.T) {
	src := "let a = 1;\nlet = 2;\nlet c = 3;"
	_, err := Parse(src)
	if err == nil {
		t.Fatal("expected parse error")
	}
	out := WrapErrorWithSource(err, src).Error()
	for _, want := range []string{"PARSE ERROR", "let a = 1;", "let = 2;", "let c = 3;", "^"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestWrapRuntimeErrorPointsAtExpression(t *testing.T) {
	src := "let a = 1;\nlet b = a + missing;"
	ip := NewInterpreter(testConfig())
	_, err := ip.EvalSource(src)
	if err == nil {
		t.Fatal("expected runtime error")
	}
	out := WrapErrorWithName(err, "test.ari", src).Error()
	if !strings.Contains(out, "RUNTIME ERROR in test.ari at 2:") {
		t.Fatalf("bad header:\n%s", out)
	}
}

func TestWrapNativeError(t *testing.T) {
	src := `to_number("nope");`
	ip := NewInterpreter(testConfig())
	_, err := ip.EvalSource(src)
	out := WrapErrorWithSource(err, src).Error()
	if !strings.Contains(out, "NATIVE ERROR") {
		t.Fatalf("missing header:\n%s", out)
	}
}

func TestWrapLeavesOtherErrorsAlone(t *testing.T) {
	plain := errors.New("plain")
	if got := WrapErrorWithSource(plain, "src"); got != plain {
		t.Fatalf("want passthrough, got %v", got)
	}
}

func TestCaretColumnAlignment(t *testing.T) {
	// error at col 9 (0-based 8): the caret must sit under 'y'
	src := "let x = y;"
	_, err := NewInterpreter(testConfig()).EvalSource(src)
	out := WrapErrorWithSource(err, src).Error()
	lines := strings.Split(out, "\n")
	var caretLine string
	for _, ln := range lines {
		if strings.Contains(ln, "^") {
			caretLine = ln
			break
		}
	}
	if caretLine == "" {
		t.Fatalf("no caret line in:\n%s", out)
	}
	// "     | " prefix is 7 chars; caret pad is col-1
	want := "     | " + strings.Repeat(" ", 8) + "^"
	if caretLine != want {
		t.Fatalf("caret misaligned:\nwant %q\ngot  %q", want, caretLine)
	}
}

func TestErrorStringsMentionKindAndPosition(t *testing.T) {
	err := evalErr(t, `[1, 2] + [1];`)
	msg := err.Error()
	if !strings.Contains(msg, "ArrayLengthMismatch") {
		t.Fatalf("missing kind in %q", msg)
	}
	if !strings.Contains(msg, "1:") {
		t.Fatalf("missing position in %q", msg)
	}
}

func TestClampedPositionsDoNotPanic(t *testing.T) {
	e := &RuntimeError{Kind: TypeMismatch, Line: 99, Col: 99, Msg: "x"}
	out := WrapErrorWithSource(e, "short").Error()
	if out == "" {
		t.Fatal("empty rendering")
	}
}
