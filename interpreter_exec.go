// interpreter_exec.go: the tree-walking evaluator.
//
// Statements return (value, control, error). The control channel threads
// break/continue/return outward through blocks and loops without
// exceptions; an error aborts evaluation entirely, first failure wins.
package ari

import "fmt"

// ctrlKind is the non-error control signal of a statement.
type ctrlKind int

const (
	ctrlNone ctrlKind = iota
	ctrlReturn
	ctrlBreak
	ctrlContinue
)

func (c ctrlKind) describe() string {
	switch c {
	case ctrlReturn:
		return "'return'"
	case ctrlBreak:
		return "'break'"
	case ctrlContinue:
		return "'continue'"
	}
	return "control flow"
}

func runtimeErrAt(kind RuntimeErrorKind, tok Token, format string, args ...any) error {
	return &RuntimeError{Kind: kind, Line: tok.Line, Col: tok.Col, Msg: fmt.Sprintf(format, args...)}
}

// ----- statements -----

func (i *Interpreter) execStmt(env *Env, stmt Stmt) (Value, ctrlKind, error) {
	switch s := stmt.(type) {
	case *LetStmt:
		v, err := i.evalExpr(env, s.Value)
		if err != nil {
			return Value{}, ctrlNone, err
		}
		env.Define(s.Name.Lexeme, v)
		return NilValue(), ctrlNone, nil

	case *FnStmt:
		params := make([]string, len(s.Params))
		for idx, p := range s.Params {
			params[idx] = p.Lexeme
		}
		fn := &Function{Name: s.Name.Lexeme, Params: params, Body: s.Body, Env: env}
		env.Define(s.Name.Lexeme, FuncValue(fn))
		return NilValue(), ctrlNone, nil

	case *IfStmt:
		cond, err := i.evalExpr(env, s.Cond)
		if err != nil {
			return Value{}, ctrlNone, err
		}
		ok, err := truthy(cond, s.Cond.Pos())
		if err != nil {
			return Value{}, ctrlNone, err
		}
		if ok {
			return i.execStmt(env, s.Then)
		}
		if s.Else != nil {
			return i.execStmt(env, s.Else)
		}
		return NilValue(), ctrlNone, nil

	case *WhileStmt:
		for {
			cond, err := i.evalExpr(env, s.Cond)
			if err != nil {
				return Value{}, ctrlNone, err
			}
			ok, err := truthy(cond, s.Cond.Pos())
			if err != nil {
				return Value{}, ctrlNone, err
			}
			if !ok {
				return NilValue(), ctrlNone, nil
			}
			v, ctrl, err := i.execStmt(env, s.Body)
			if err != nil {
				return Value{}, ctrlNone, err
			}
			switch ctrl {
			case ctrlBreak:
				return NilValue(), ctrlNone, nil
			case ctrlReturn:
				return v, ctrlReturn, nil
			}
			// ctrlContinue and ctrlNone both loop again.
		}

	case *ForStmt:
		loopEnv := NewEnv(env)
		if s.Init != nil {
			if _, _, err := i.execStmt(loopEnv, s.Init); err != nil {
				return Value{}, ctrlNone, err
			}
		}
		for {
			if s.Cond != nil {
				cond, err := i.evalExpr(loopEnv, s.Cond)
				if err != nil {
					return Value{}, ctrlNone, err
				}
				ok, err := truthy(cond, s.Cond.Pos())
				if err != nil {
					return Value{}, ctrlNone, err
				}
				if !ok {
					return NilValue(), ctrlNone, nil
				}
			}
			v, ctrl, err := i.execStmt(loopEnv, s.Body)
			if err != nil {
				return Value{}, ctrlNone, err
			}
			if ctrl == ctrlBreak {
				return NilValue(), ctrlNone, nil
			}
			if ctrl == ctrlReturn {
				return v, ctrlReturn, nil
			}
			// continue still runs the step clause
			if s.Step != nil {
				if _, err := i.evalExpr(loopEnv, s.Step); err != nil {
					return Value{}, ctrlNone, err
				}
			}
		}

	case *ReturnStmt:
		if s.Value == nil {
			return NilValue(), ctrlReturn, nil
		}
		v, err := i.evalExpr(env, s.Value)
		if err != nil {
			return Value{}, ctrlNone, err
		}
		return v, ctrlReturn, nil

	case *BreakStmt:
		return NilValue(), ctrlBreak, nil

	case *ContinueStmt:
		return NilValue(), ctrlContinue, nil

	case *PrintStmt:
		v, err := i.evalExpr(env, s.Value)
		if err != nil {
			return Value{}, ctrlNone, err
		}
		if s.Newline {
			fmt.Fprintln(i.cfg.Stdout, v.Display())
		} else {
			fmt.Fprint(i.cfg.Stdout, v.Display())
		}
		return NilValue(), ctrlNone, nil

	case *BlockStmt:
		child := NewEnv(env)
		for _, inner := range s.Stmts {
			v, ctrl, err := i.execStmt(child, inner)
			if err != nil {
				return Value{}, ctrlNone, err
			}
			if ctrl != ctrlNone {
				return v, ctrl, nil
			}
		}
		return NilValue(), ctrlNone, nil

	case *ExprStmt:
		v, err := i.evalExpr(env, s.Expr)
		if err != nil {
			return Value{}, ctrlNone, err
		}
		return v, ctrlNone, nil
	}
	return Value{}, ctrlNone, runtimeErrAt(TypeMismatch, stmt.Pos(), "unhandled statement")
}

// ----- expressions -----

func (i *Interpreter) evalExpr(env *Env, expr Expr) (Value, error) {
	switch e := expr.(type) {
	case *NumberLit:
		return NumberValue(e.Value), nil
	case *StringLit:
		return StringValue(e.Value), nil
	case *BoolLit:
		return BoolValue(e.Value), nil
	case *NilLit:
		return NilValue(), nil

	case *ArrayLit:
		elems := make([]Value, len(e.Elems))
		for idx, el := range e.Elems {
			v, err := i.evalExpr(env, el)
			if err != nil {
				return Value{}, err
			}
			elems[idx] = v
		}
		return ArrayValue(elems), nil

	case *Ident:
		v, ok := env.Get(e.Name)
		if !ok {
			return Value{}, runtimeErrAt(UndefinedName, e.Tok, "undefined name '%s'", e.Name)
		}
		return v, nil

	case *UnaryExpr:
		right, err := i.evalExpr(env, e.Right)
		if err != nil {
			return Value{}, err
		}
		return i.applyUnary(e.Op, right, e.Tok)

	case *BinaryExpr:
		left, err := i.evalExpr(env, e.Left)
		if err != nil {
			return Value{}, err
		}
		right, err := i.evalExpr(env, e.Right)
		if err != nil {
			return Value{}, err
		}
		return i.applyBinary(e.Op, left, right, e.Tok)

	case *LogicalExpr:
		left, err := i.evalExpr(env, e.Left)
		if err != nil {
			return Value{}, err
		}
		lt, err := truthy(left, e.Left.Pos())
		if err != nil {
			return Value{}, err
		}
		// Short-circuit, returning the deciding operand.
		if e.Op == OR {
			if lt {
				return left, nil
			}
		} else {
			if !lt {
				return left, nil
			}
		}
		right, err := i.evalExpr(env, e.Right)
		if err != nil {
			return Value{}, err
		}
		if _, err := truthy(right, e.Right.Pos()); err != nil {
			return Value{}, err
		}
		return right, nil

	case *CallExpr:
		callee, err := i.evalExpr(env, e.Callee)
		if err != nil {
			return Value{}, err
		}
		if callee.Kind != FunctionKind {
			return Value{}, runtimeErrAt(TypeMismatch, e.Tok, "cannot call a value of type %s", callee.Kind)
		}
		args := make([]Value, len(e.Args))
		for idx, a := range e.Args {
			v, err := i.evalExpr(env, a)
			if err != nil {
				return Value{}, err
			}
			args[idx] = v
		}
		return i.CallFunction(callee.Fn(), args, e.Tok.Line, e.Tok.Col)

	case *IndexExpr:
		obj, err := i.evalExpr(env, e.Object)
		if err != nil {
			return Value{}, err
		}
		idxVal, err := i.evalExpr(env, e.Index)
		if err != nil {
			return Value{}, err
		}
		if obj.Kind != ArrayKind {
			return Value{}, runtimeErrAt(TypeMismatch, e.Tok, "cannot index a value of type %s", obj.Kind)
		}
		arr := obj.Arr()
		idx, err := checkIndex(idxVal, len(arr), e.Tok)
		if err != nil {
			return Value{}, err
		}
		return arr[idx], nil

	case *AssignExpr:
		v, err := i.evalExpr(env, e.Value)
		if err != nil {
			return Value{}, err
		}
		if !env.Set(e.Name.Lexeme, v) {
			return Value{}, runtimeErrAt(UndefinedName, e.Name, "undefined name '%s'", e.Name.Lexeme)
		}
		return v, nil

	case *SetIndexExpr:
		obj, err := i.evalExpr(env, e.Object)
		if err != nil {
			return Value{}, err
		}
		if obj.Kind != ArrayKind {
			return Value{}, runtimeErrAt(TypeMismatch, e.Tok, "cannot index-assign a value of type %s", obj.Kind)
		}
		idxVal, err := i.evalExpr(env, e.Index)
		if err != nil {
			return Value{}, err
		}
		arr := obj.Arr()
		idx, err := checkIndex(idxVal, len(arr), e.Tok)
		if err != nil {
			return Value{}, err
		}
		v, err := i.evalExpr(env, e.Value)
		if err != nil {
			return Value{}, err
		}
		// In-place write, visible through every alias of the array.
		arr[idx] = v
		return v, nil

	case *LambdaExpr:
		params := make([]string, len(e.Params))
		for idx, p := range e.Params {
			params[idx] = p.Lexeme
		}
		return FuncValue(&Function{Params: params, Body: e.Body, Env: env}), nil
	}
	return Value{}, runtimeErrAt(TypeMismatch, expr.Pos(), "unhandled expression")
}

// truthy admits only Boolean and Nil as conditions; Nil counts as false.
func truthy(v Value, tok Token) (bool, error) {
	switch v.Kind {
	case BoolKind:
		return v.Bool(), nil
	case NilKind:
		return false, nil
	default:
		return false, runtimeErrAt(TypeMismatch, tok, "condition must be Boolean or Nil, got %s", v.Kind)
	}
}

// checkIndex validates an index value against an array of the given
// length. Indexes never wrap: negative or non-integral values fail.
func checkIndex(idxVal Value, length int, tok Token) (int, error) {
	if idxVal.Kind != NumberKind {
		return 0, runtimeErrAt(TypeMismatch, tok, "index must be Number, got %s", idxVal.Kind)
	}
	n := idxVal.Num()
	if n != float64(int(n)) || n < 0 {
		return 0, runtimeErrAt(IndexOutOfBounds, tok, "index %s is not a valid position", formatNumber(n))
	}
	idx := int(n)
	if idx >= length {
		return 0, runtimeErrAt(IndexOutOfBounds, tok, "index %d out of bounds for length %d", idx, length)
	}
	return idx, nil
}
