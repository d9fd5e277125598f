// parser.go: recursive-descent parser for Ari.
//
// One pass over the token slice, no backtracking except a bounded lookahead
// that disambiguates `(a, b) -> ...` lambdas from parenthesized grouping.
// Precedence, lowest to highest:
//
//	assignment  =                (right-associative)
//	or          or  ||
//	and         and &&
//	equality    ==  !=
//	relational  <  <=  >  >=
//	additive    +  -
//	multiplicative  *  /  %
//	unary       -  !
//	postfix     call  index
//	primary     literals, identifiers, grouping, arrays, lambdas
//
// The parser stops at the first grammar violation and returns a
// *ParseError pointing at the offending token.
package ari

import "fmt"

// maxCallArgs caps argument and parameter list lengths.
const maxCallArgs = 255

// Parser consumes a token slice and produces a *Program.
type Parser struct {
	toks []Token
	pos  int
}

// NewParser creates a parser over tokens (the slice must end with EOF).
func NewParser(toks []Token) *Parser {
	return &Parser{toks: toks}
}

// Parse lexes and parses src in one step.
func Parse(src string) (*Program, error) {
	toks, err := NewLexer(src).Scan()
	if err != nil {
		return nil, err
	}
	return NewParser(toks).Program()
}

// Program parses until EOF.
func (p *Parser) Program() (*Program, error) {
	prog := &Program{}
	for !p.atEnd() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		prog.Stmts = append(prog.Stmts, stmt)
	}
	return prog, nil
}

// ----- token helpers -----

func (p *Parser) atEnd() bool { return p.peek().Type == EOF }
func (p *Parser) peek() Token { return p.toks[p.pos] }
func (p *Parser) prev() Token { return p.toks[p.pos-1] }

func (p *Parser) check(tt TokenType) bool {
	return p.peek().Type == tt
}

func (p *Parser) advance() Token {
	if !p.atEnd() {
		p.pos++
	}
	return p.prev()
}

// match consumes the next token when it is one of the given types.
func (p *Parser) match(types ...TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

// need consumes a token of the given type or fails with msg.
func (p *Parser) need(tt TokenType, msg string) (Token, error) {
	if p.check(tt) {
		return p.advance(), nil
	}
	return Token{}, p.errAt(p.peek(), msg)
}

func (p *Parser) errAt(tok Token, msg string) error {
	return &ParseError{Line: tok.Line, Col: tok.Col, Msg: msg, Incomplete: tok.Type == EOF}
}

// IsIncomplete reports whether err is a parse error caused by running out
// of input, meaning more lines could still complete the program.
func IsIncomplete(err error) bool {
	pe, ok := err.(*ParseError)
	return ok && pe.Incomplete
}

// ----- declarations & statements -----

func (p *Parser) declaration() (Stmt, error) {
	switch {
	case p.match(LET):
		return p.letDecl()
	case p.check(FN) && p.toks[p.pos+1].Type == ID:
		p.advance()
		return p.fnDecl()
	default:
		return p.statement()
	}
}

func (p *Parser) letDecl() (Stmt, error) {
	letTok := p.prev()
	name, err := p.need(ID, "expected variable name after 'let'")
	if err != nil {
		return nil, err
	}
	if _, err := p.need(ASSIGN, "expected '=' after variable name"); err != nil {
		return nil, err
	}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(SEMI, "expected ';' after declaration"); err != nil {
		return nil, err
	}
	return &LetStmt{Tok: letTok, Name: name, Value: value}, nil
}

func (p *Parser) fnDecl() (Stmt, error) {
	fnTok := p.prev()
	name, err := p.need(ID, "expected function name after 'fn'")
	if err != nil {
		return nil, err
	}
	if _, err := p.need(LPAREN, "expected '(' after function name"); err != nil {
		return nil, err
	}
	params, err := p.paramList()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(LBRACE, "expected '{' before function body"); err != nil {
		return nil, err
	}
	body, err := p.blockStmt()
	if err != nil {
		return nil, err
	}
	return &FnStmt{Tok: fnTok, Name: name, Params: params, Body: body}, nil
}

// paramList parses identifiers up to and including the closing ')'.
func (p *Parser) paramList() ([]Token, error) {
	var params []Token
	if !p.check(RPAREN) {
		for {
			if len(params) >= maxCallArgs {
				return nil, p.errAt(p.peek(), fmt.Sprintf("cannot have more than %d parameters", maxCallArgs))
			}
			name, err := p.need(ID, "expected parameter name")
			if err != nil {
				return nil, err
			}
			params = append(params, name)
			if !p.match(COMMA) {
				break
			}
		}
	}
	if _, err := p.need(RPAREN, "expected ')' after parameters"); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) statement() (Stmt, error) {
	switch {
	case p.match(IF):
		return p.ifStmt()
	case p.match(WHILE):
		return p.whileStmt()
	case p.match(FOR):
		return p.forStmt()
	case p.match(RETURN):
		return p.returnStmt()
	case p.match(BREAK):
		tok := p.prev()
		if _, err := p.need(SEMI, "expected ';' after 'break'"); err != nil {
			return nil, err
		}
		return &BreakStmt{Tok: tok}, nil
	case p.match(CONTINUE):
		tok := p.prev()
		if _, err := p.need(SEMI, "expected ';' after 'continue'"); err != nil {
			return nil, err
		}
		return &ContinueStmt{Tok: tok}, nil
	case p.match(PRINT):
		return p.printStmt(false)
	case p.match(PRINTLN):
		return p.printStmt(true)
	case p.match(LBRACE):
		return p.blockStmt()
	default:
		return p.exprStmt()
	}
}

func (p *Parser) ifStmt() (Stmt, error) {
	ifTok := p.prev()
	if _, err := p.need(LPAREN, "expected '(' after 'if'"); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(RPAREN, "expected ')' after condition"); err != nil {
		return nil, err
	}
	then, err := p.statement()
	if err != nil {
		return nil, err
	}
	var alt Stmt
	if p.match(ELSE) {
		alt, err = p.statement()
		if err != nil {
			return nil, err
		}
	}
	return &IfStmt{Tok: ifTok, Cond: cond, Then: then, Else: alt}, nil
}

func (p *Parser) whileStmt() (Stmt, error) {
	whileTok := p.prev()
	if _, err := p.need(LPAREN, "expected '(' after 'while'"); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(RPAREN, "expected ')' after condition"); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{Tok: whileTok, Cond: cond, Body: body}, nil
}

func (p *Parser) forStmt() (Stmt, error) {
	forTok := p.prev()
	if _, err := p.need(LPAREN, "expected '(' after 'for'"); err != nil {
		return nil, err
	}

	var init Stmt
	var err error
	switch {
	case p.match(SEMI):
		// no initializer
	case p.match(LET):
		init, err = p.letDecl()
		if err != nil {
			return nil, err
		}
	default:
		init, err = p.exprStmt()
		if err != nil {
			return nil, err
		}
	}

	var cond Expr
	if !p.check(SEMI) {
		cond, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.need(SEMI, "expected ';' after loop condition"); err != nil {
		return nil, err
	}

	var step Expr
	if !p.check(RPAREN) {
		step, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.need(RPAREN, "expected ')' after for clauses"); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &ForStmt{Tok: forTok, Init: init, Cond: cond, Step: step, Body: body}, nil
}

func (p *Parser) returnStmt() (Stmt, error) {
	retTok := p.prev()
	var value Expr
	var err error
	if !p.check(SEMI) {
		value, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.need(SEMI, "expected ';' after return value"); err != nil {
		return nil, err
	}
	return &ReturnStmt{Tok: retTok, Value: value}, nil
}

func (p *Parser) printStmt(newline bool) (Stmt, error) {
	tok := p.prev()
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(SEMI, "expected ';' after value"); err != nil {
		return nil, err
	}
	return &PrintStmt{Tok: tok, Value: value, Newline: newline}, nil
}

// blockStmt parses statements until '}' (the '{' is already consumed).
func (p *Parser) blockStmt() (*BlockStmt, error) {
	braceTok := p.prev()
	block := &BlockStmt{Tok: braceTok}
	for !p.check(RBRACE) && !p.atEnd() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		block.Stmts = append(block.Stmts, stmt)
	}
	if _, err := p.need(RBRACE, "expected '}' after block"); err != nil {
		return nil, err
	}
	return block, nil
}

func (p *Parser) exprStmt() (Stmt, error) {
	first := p.peek()
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(SEMI, "expected ';' after expression"); err != nil {
		return nil, err
	}
	return &ExprStmt{Tok: first, Expr: expr}, nil
}

// ----- expressions -----

func (p *Parser) expression() (Expr, error) {
	return p.assignment()
}

// assignment parses `target = value` right-associatively. The target must
// be a plain name or an index expression.
func (p *Parser) assignment() (Expr, error) {
	expr, err := p.logicalOr()
	if err != nil {
		return nil, err
	}
	if p.match(ASSIGN) {
		eq := p.prev()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		switch target := expr.(type) {
		case *Ident:
			return &AssignExpr{Tok: eq, Name: target.Tok, Value: value}, nil
		case *IndexExpr:
			return &SetIndexExpr{Tok: eq, Object: target.Object, Index: target.Index, Value: value}, nil
		default:
			return nil, p.errAt(eq, "invalid assignment target")
		}
	}
	return expr, nil
}

func (p *Parser) logicalOr() (Expr, error) {
	expr, err := p.logicalAnd()
	if err != nil {
		return nil, err
	}
	for p.match(OR) {
		op := p.prev()
		right, err := p.logicalAnd()
		if err != nil {
			return nil, err
		}
		expr = &LogicalExpr{Tok: op, Op: OR, Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) logicalAnd() (Expr, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.match(AND) {
		op := p.prev()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		expr = &LogicalExpr{Tok: op, Op: AND, Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) equality() (Expr, error) {
	expr, err := p.relational()
	if err != nil {
		return nil, err
	}
	for p.match(EQ, NEQ) {
		op := p.prev()
		right, err := p.relational()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Tok: op, Op: op.Type, Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) relational() (Expr, error) {
	expr, err := p.additive()
	if err != nil {
		return nil, err
	}
	for p.match(LESS, LESS_EQ, GREATER, GREATER_EQ) {
		op := p.prev()
		right, err := p.additive()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Tok: op, Op: op.Type, Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) additive() (Expr, error) {
	expr, err := p.multiplicative()
	if err != nil {
		return nil, err
	}
	for p.match(PLUS, MINUS) {
		op := p.prev()
		right, err := p.multiplicative()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Tok: op, Op: op.Type, Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) multiplicative() (Expr, error) {
	expr, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.match(STAR, SLASH, PERCENT) {
		op := p.prev()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Tok: op, Op: op.Type, Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) unary() (Expr, error) {
	if p.match(MINUS, BANG) {
		op := p.prev()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Tok: op, Op: op.Type, Right: right}, nil
	}
	return p.postfix()
}

// postfix parses chained calls and index accesses.
func (p *Parser) postfix() (Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.match(LPAREN):
			expr, err = p.finishCall(expr)
			if err != nil {
				return nil, err
			}
		case p.match(LBRACKET):
			bracket := p.prev()
			index, err := p.expression()
			if err != nil {
				return nil, err
			}
			if _, err := p.need(RBRACKET, "expected ']' after index"); err != nil {
				return nil, err
			}
			expr = &IndexExpr{Tok: bracket, Object: expr, Index: index}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) finishCall(callee Expr) (Expr, error) {
	paren := p.prev()
	var args []Expr
	if !p.check(RPAREN) {
		for {
			if len(args) >= maxCallArgs {
				return nil, p.errAt(p.peek(), fmt.Sprintf("cannot have more than %d arguments", maxCallArgs))
			}
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(COMMA) {
				break
			}
		}
	}
	if _, err := p.need(RPAREN, "expected ')' after arguments"); err != nil {
		return nil, err
	}
	return &CallExpr{Tok: paren, Callee: callee, Args: args}, nil
}

func (p *Parser) primary() (Expr, error) {
	switch {
	case p.match(NUMBER):
		tok := p.prev()
		return &NumberLit{Tok: tok, Value: tok.Literal.(float64)}, nil
	case p.match(STRING):
		tok := p.prev()
		return &StringLit{Tok: tok, Value: tok.Literal.(string)}, nil
	case p.match(TRUE):
		return &BoolLit{Tok: p.prev(), Value: true}, nil
	case p.match(FALSE):
		return &BoolLit{Tok: p.prev(), Value: false}, nil
	case p.match(NULL):
		return &NilLit{Tok: p.prev()}, nil
	case p.match(ID):
		tok := p.prev()
		return &Ident{Tok: tok, Name: tok.Lexeme}, nil
	case p.check(LPAREN):
		if p.lambdaAhead() {
			return p.lambda()
		}
		p.advance()
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.need(RPAREN, "expected ')' after expression"); err != nil {
			return nil, err
		}
		return expr, nil
	case p.match(LBRACKET):
		return p.arrayLit()
	}
	return nil, p.errAt(p.peek(), fmt.Sprintf("unexpected token '%s'", describeToken(p.peek())))
}

func (p *Parser) arrayLit() (Expr, error) {
	bracket := p.prev()
	lit := &ArrayLit{Tok: bracket}
	if !p.check(RBRACKET) {
		for {
			elem, err := p.expression()
			if err != nil {
				return nil, err
			}
			lit.Elems = append(lit.Elems, elem)
			if !p.match(COMMA) {
				break
			}
		}
	}
	if _, err := p.need(RBRACKET, "expected ']' after array elements"); err != nil {
		return nil, err
	}
	return lit, nil
}

// lambdaAhead reports whether the upcoming '(' starts a lambda literal:
// a (possibly empty) identifier list closed by ')' and followed by '->'.
func (p *Parser) lambdaAhead() bool {
	i := p.pos + 1 // past '('
	if p.toks[i].Type == RPAREN {
		return p.toks[i+1].Type == ARROW
	}
	for {
		if p.toks[i].Type != ID {
			return false
		}
		i++
		switch p.toks[i].Type {
		case COMMA:
			i++
		case RPAREN:
			return p.toks[i+1].Type == ARROW
		default:
			return false
		}
	}
}

func (p *Parser) lambda() (Expr, error) {
	p.advance() // '('
	params, err := p.paramList()
	if err != nil {
		return nil, err
	}
	arrow, err := p.need(ARROW, "expected '->' after lambda parameters")
	if err != nil {
		return nil, err
	}
	var body *BlockStmt
	if p.match(LBRACE) {
		body, err = p.blockStmt()
		if err != nil {
			return nil, err
		}
	} else {
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		body = &BlockStmt{
			Tok:   arrow,
			Stmts: []Stmt{&ReturnStmt{Tok: arrow, Value: expr}},
		}
	}
	return &LambdaExpr{Tok: arrow, Params: params, Body: body}, nil
}

// describeToken renders a token for error messages.
func describeToken(tok Token) string {
	if tok.Type == EOF {
		return "end of input"
	}
	return tok.Lexeme
}
