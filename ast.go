// ast.go: syntax tree produced by the parser.
//
// Nodes are plain structs. Every node keeps the token that introduced it so
// the evaluator can attach a source position to runtime diagnostics. Stmt
// and Expr are marker interfaces; the evaluator switches on the concrete
// type.
package ari

// Node is any element of the syntax tree.
type Node interface {
	Pos() Token
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// ----- statements -----

// LetStmt declares (or shadows) a name in the current scope.
type LetStmt struct {
	Tok   Token // the "let"
	Name  Token // identifier
	Value Expr
}

// FnStmt declares a named function in the current scope.
type FnStmt struct {
	Tok    Token // the "fn"
	Name   Token
	Params []Token
	Body   *BlockStmt
}

// IfStmt runs Then when Cond is true, Else (possibly nil) otherwise.
type IfStmt struct {
	Tok  Token
	Cond Expr
	Then Stmt
	Else Stmt // nil when absent
}

// WhileStmt loops while Cond holds.
type WhileStmt struct {
	Tok  Token
	Cond Expr
	Body Stmt
}

// ForStmt is the C-style loop. It is kept as its own node rather than
// desugared to while so that `continue` still runs the step clause.
type ForStmt struct {
	Tok  Token
	Init Stmt // nil when absent; LetStmt or ExprStmt
	Cond Expr // nil means always true
	Step Expr // nil when absent
	Body Stmt
}

// ReturnStmt exits the innermost function call with Value (nil means Nil).
type ReturnStmt struct {
	Tok   Token
	Value Expr
}

// BreakStmt exits the innermost loop.
type BreakStmt struct {
	Tok Token
}

// ContinueStmt jumps to the next iteration of the innermost loop.
type ContinueStmt struct {
	Tok Token
}

// PrintStmt writes the display form of Value to standard output.
// Newline distinguishes println from print.
type PrintStmt struct {
	Tok     Token
	Value   Expr
	Newline bool
}

// BlockStmt is a braced statement list introducing a child scope.
type BlockStmt struct {
	Tok   Token // the "{"
	Stmts []Stmt
}

// ExprStmt evaluates an expression for its effect.
type ExprStmt struct {
	Tok  Token
	Expr Expr
}

func (s *LetStmt) Pos() Token      { return s.Tok }
func (s *FnStmt) Pos() Token       { return s.Tok }
func (s *IfStmt) Pos() Token       { return s.Tok }
func (s *WhileStmt) Pos() Token    { return s.Tok }
func (s *ForStmt) Pos() Token      { return s.Tok }
func (s *ReturnStmt) Pos() Token   { return s.Tok }
func (s *BreakStmt) Pos() Token    { return s.Tok }
func (s *ContinueStmt) Pos() Token { return s.Tok }
func (s *PrintStmt) Pos() Token    { return s.Tok }
func (s *BlockStmt) Pos() Token    { return s.Tok }
func (s *ExprStmt) Pos() Token     { return s.Tok }

func (*LetStmt) stmtNode()      {}
func (*FnStmt) stmtNode()       {}
func (*IfStmt) stmtNode()       {}
func (*WhileStmt) stmtNode()    {}
func (*ForStmt) stmtNode()      {}
func (*ReturnStmt) stmtNode()   {}
func (*BreakStmt) stmtNode()    {}
func (*ContinueStmt) stmtNode() {}
func (*PrintStmt) stmtNode()    {}
func (*BlockStmt) stmtNode()    {}
func (*ExprStmt) stmtNode()     {}

// ----- expressions -----

// NumberLit is a numeric literal.
type NumberLit struct {
	Tok   Token
	Value float64
}

// StringLit is a string literal (escapes already resolved by the lexer).
type StringLit struct {
	Tok   Token
	Value string
}

// BoolLit is true or false.
type BoolLit struct {
	Tok   Token
	Value bool
}

// NilLit is the null literal.
type NilLit struct {
	Tok Token
}

// ArrayLit is `[e1, e2, ...]`.
type ArrayLit struct {
	Tok   Token // the "["
	Elems []Expr
}

// Ident is a name reference.
type Ident struct {
	Tok  Token
	Name string
}

// UnaryExpr is `-x` or `!x`.
type UnaryExpr struct {
	Tok   Token // the operator
	Op    TokenType
	Right Expr
}

// BinaryExpr covers arithmetic, relational and equality operators.
type BinaryExpr struct {
	Tok   Token // the operator
	Op    TokenType
	Left  Expr
	Right Expr
}

// LogicalExpr is `and` / `or` with short-circuit evaluation.
type LogicalExpr struct {
	Tok   Token
	Op    TokenType // AND or OR
	Left  Expr
	Right Expr
}

// CallExpr is `callee(arg1, arg2, ...)`.
type CallExpr struct {
	Tok    Token // the "("
	Callee Expr
	Args   []Expr
}

// IndexExpr is `object[index]`.
type IndexExpr struct {
	Tok    Token // the "["
	Object Expr
	Index  Expr
}

// AssignExpr is `name = value`.
type AssignExpr struct {
	Tok   Token // the "="
	Name  Token
	Value Expr
}

// SetIndexExpr is `object[index] = value`; it mutates the array in place.
type SetIndexExpr struct {
	Tok    Token // the "="
	Object Expr
	Index  Expr
	Value  Expr
}

// LambdaExpr is `(p1, p2) -> expr` or `(p1, p2) -> { block }`. An
// expression body is represented as a single-statement block returning
// the expression.
type LambdaExpr struct {
	Tok    Token // the "->"
	Params []Token
	Body   *BlockStmt
}

func (e *NumberLit) Pos() Token    { return e.Tok }
func (e *StringLit) Pos() Token    { return e.Tok }
func (e *BoolLit) Pos() Token      { return e.Tok }
func (e *NilLit) Pos() Token       { return e.Tok }
func (e *ArrayLit) Pos() Token     { return e.Tok }
func (e *Ident) Pos() Token        { return e.Tok }
func (e *UnaryExpr) Pos() Token    { return e.Tok }
func (e *BinaryExpr) Pos() Token   { return e.Tok }
func (e *LogicalExpr) Pos() Token  { return e.Tok }
func (e *CallExpr) Pos() Token     { return e.Tok }
func (e *IndexExpr) Pos() Token    { return e.Tok }
func (e *AssignExpr) Pos() Token   { return e.Tok }
func (e *SetIndexExpr) Pos() Token { return e.Tok }
func (e *LambdaExpr) Pos() Token   { return e.Tok }

func (*NumberLit) exprNode()    {}
func (*StringLit) exprNode()    {}
func (*BoolLit) exprNode()      {}
func (*NilLit) exprNode()       {}
func (*ArrayLit) exprNode()     {}
func (*Ident) exprNode()        {}
func (*UnaryExpr) exprNode()    {}
func (*BinaryExpr) exprNode()   {}
func (*LogicalExpr) exprNode()  {}
func (*CallExpr) exprNode()     {}
func (*IndexExpr) exprNode()    {}
func (*AssignExpr) exprNode()   {}
func (*SetIndexExpr) exprNode() {}
func (*LambdaExpr) exprNode()   {}

// Program is a parsed source file.
type Program struct {
	Stmts []Stmt
}
