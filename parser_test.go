package ari

import (
	"strings"
	"testing"
)

// --- helpers ---------------------------------------------------------------

func parseSrc(t *testing.T, src string) *Program {
	t.Helper()
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse error for %q: %v", src, err)
	}
	return prog
}

func parseErr(t *testing.T, src string) *ParseError {
	t.Helper()
	_, err := Parse(src)
	if err == nil {
		t.Fatalf("expected parse error for %q", src)
	}
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("want *ParseError, got %T: %v", err, err)
	}
	return pe
}

func onlyExpr(t *testing.T, src string) Expr {
	t.Helper()
	prog := parseSrc(t, src)
	if len(prog.Stmts) != 1 {
		t.Fatalf("want 1 statement, got %d", len(prog.Stmts))
	}
	es, ok := prog.Stmts[0].(*ExprStmt)
	if !ok {
		t.Fatalf("want *ExprStmt, got %T", prog.Stmts[0])
	}
	return es.Expr
}

// --- tests -------------------------------------------------------------------

func TestPrecedenceMulBeforeAdd(t *testing.T) {
	expr := onlyExpr(t, `1 + 2 * 3;`)
	add, ok := expr.(*BinaryExpr)
	if !ok || add.Op != PLUS {
		t.Fatalf("want top-level +, got %#v", expr)
	}
	mul, ok := add.Right.(*BinaryExpr)
	if !ok || mul.Op != STAR {
		t.Fatalf("want * on the right, got %#v", add.Right)
	}
}

func TestGroupingOverridesPrecedence(t *testing.T) {
	expr := onlyExpr(t, `(1 + 2) * 3;`)
	mul, ok := expr.(*BinaryExpr)
	if !ok || mul.Op != STAR {
		t.Fatalf("want top-level *, got %#v", expr)
	}
	if _, ok := mul.Left.(*BinaryExpr); !ok {
		t.Fatalf("want grouped + on the left, got %#v", mul.Left)
	}
}

func TestComparisonBindsTighterThanEquality(t *testing.T) {
	expr := onlyExpr(t, `1 < 2 == true;`)
	eq, ok := expr.(*BinaryExpr)
	if !ok || eq.Op != EQ {
		t.Fatalf("want top-level ==, got %#v", expr)
	}
}

func TestLogicalNesting(t *testing.T) {
	expr := onlyExpr(t, `true or false and true;`)
	or, ok := expr.(*LogicalExpr)
	if !ok || or.Op != OR {
		t.Fatalf("want top-level or, got %#v", expr)
	}
	if and, ok := or.Right.(*LogicalExpr); !ok || and.Op != AND {
		t.Fatalf("want and on the right, got %#v", or.Right)
	}
}

func TestAssignmentRightAssociative(t *testing.T) {
	expr := onlyExpr(t, `a = b = 1;`)
	outer, ok := expr.(*AssignExpr)
	if !ok || outer.Name.Lexeme != "a" {
		t.Fatalf("want assignment to a, got %#v", expr)
	}
	inner, ok := outer.Value.(*AssignExpr)
	if !ok || inner.Name.Lexeme != "b" {
		t.Fatalf("want nested assignment to b, got %#v", outer.Value)
	}
}

func TestIndexAssignmentTarget(t *testing.T) {
	expr := onlyExpr(t, `a[0] = 1;`)
	if _, ok := expr.(*SetIndexExpr); !ok {
		t.Fatalf("want *SetIndexExpr, got %#v", expr)
	}
}

func TestInvalidAssignmentTarget(t *testing.T) {
	pe := parseErr(t, `1 + 2 = 3;`)
	if !strings.Contains(pe.Msg, "assignment target") {
		t.Fatalf("unexpected message: %q", pe.Msg)
	}
}

func TestChainedCallsAndIndexes(t *testing.T) {
	expr := onlyExpr(t, `f(1)(2)[3];`)
	idx, ok := expr.(*IndexExpr)
	if !ok {
		t.Fatalf("want *IndexExpr, got %#v", expr)
	}
	call2, ok := idx.Object.(*CallExpr)
	if !ok {
		t.Fatalf("want inner call, got %#v", idx.Object)
	}
	if _, ok := call2.Callee.(*CallExpr); !ok {
		t.Fatalf("want chained call, got %#v", call2.Callee)
	}
}

func TestLambdaVsGrouping(t *testing.T) {
	if _, ok := onlyExpr(t, `(x) -> x + 1;`).(*LambdaExpr); !ok {
		t.Fatal("want lambda for (x) -> x + 1")
	}
	if _, ok := onlyExpr(t, `() -> 1;`).(*LambdaExpr); !ok {
		t.Fatal("want lambda for () -> 1")
	}
	if _, ok := onlyExpr(t, `(a, b) -> a + b;`).(*LambdaExpr); !ok {
		t.Fatal("want lambda for (a, b) -> a + b")
	}
	if _, ok := onlyExpr(t, `(x);`).(*Ident); !ok {
		t.Fatal("want grouping for (x)")
	}
}

func TestLambdaExpressionBodyDesugarsToReturn(t *testing.T) {
	lam := onlyExpr(t, `(x) -> x * 2;`).(*LambdaExpr)
	if len(lam.Body.Stmts) != 1 {
		t.Fatalf("want 1 body statement, got %d", len(lam.Body.Stmts))
	}
	if _, ok := lam.Body.Stmts[0].(*ReturnStmt); !ok {
		t.Fatalf("want return statement body, got %T", lam.Body.Stmts[0])
	}
}

func TestFunctionDeclaration(t *testing.T) {
	prog := parseSrc(t, `fn add(a, b) { return a + b; }`)
	fn, ok := prog.Stmts[0].(*FnStmt)
	if !ok {
		t.Fatalf("want *FnStmt, got %T", prog.Stmts[0])
	}
	if fn.Name.Lexeme != "add" || len(fn.Params) != 2 {
		t.Fatalf("unexpected declaration: %#v", fn)
	}
}

func TestForLoopClauses(t *testing.T) {
	prog := parseSrc(t, `for (let i = 0; i < 3; i = i + 1) { i; }`)
	fs, ok := prog.Stmts[0].(*ForStmt)
	if !ok {
		t.Fatalf("want *ForStmt, got %T", prog.Stmts[0])
	}
	if fs.Init == nil || fs.Cond == nil || fs.Step == nil {
		t.Fatalf("missing clauses: %#v", fs)
	}
}

func TestForLoopEmptyClauses(t *testing.T) {
	prog := parseSrc(t, `for (;;) { break; }`)
	fs := prog.Stmts[0].(*ForStmt)
	if fs.Init != nil || fs.Cond != nil || fs.Step != nil {
		t.Fatalf("want all-nil clauses: %#v", fs)
	}
}

func TestArrayLiteral(t *testing.T) {
	lit, ok := onlyExpr(t, `[1, "two", [3]];`).(*ArrayLit)
	if !ok {
		t.Fatal("want *ArrayLit")
	}
	if len(lit.Elems) != 3 {
		t.Fatalf("want 3 elements, got %d", len(lit.Elems))
	}
}

func TestMissingSemicolon(t *testing.T) {
	pe := parseErr(t, `let x = 1`)
	if !pe.Incomplete {
		t.Fatalf("error at EOF should be incomplete: %#v", pe)
	}
}

func TestIncompleteBlockDetection(t *testing.T) {
	pe := parseErr(t, `fn f() { return 1;`)
	if !IsIncomplete(pe) {
		t.Fatalf("want incomplete, got %#v", pe)
	}
}

func TestCompleteErrorIsNotIncomplete(t *testing.T) {
	pe := parseErr(t, `let = 1;`)
	if IsIncomplete(pe) {
		t.Fatalf("mid-stream error should not be incomplete: %#v", pe)
	}
}

func TestParseErrorPosition(t *testing.T) {
	pe := parseErr(t, "let x = 1;\nlet = 2;")
	if pe.Line != 2 {
		t.Fatalf("want line 2, got %d", pe.Line)
	}
}
