package fuzzer

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	errOverflow = errors.New("integer overflow")
	errBudget   = errors.New("evaluation budget exhausted")
)

// evaluator runs a Program directly on the tree with 64-bit checked
// arithmetic and Python's short-circuit rules. Tests use it as the oracle the
// reference rendering is compared against.
type evaluator struct {
	out   []string
	calls int
	limit int
}

type frame map[string]any

func evalProgram(p *Program, callLimit int) ([]string, error) {
	ev := &evaluator{limit: callLimit}
	err := ev.stmts(frame{}, p.Main)
	return ev.out, err
}

func (ev *evaluator) stmts(env frame, b Block) error {
	for _, st := range b.Stmts {
		if err := ev.stmt(env, st); err != nil {
			return err
		}
	}
	return nil
}

func (ev *evaluator) stmt(env frame, st Stmt) error {
	switch st := st.(type) {
	case Decl:
		v, err := ev.expr(env, st.Init)
		if err != nil {
			return err
		}
		env[st.Name] = v
	case Print:
		v, err := ev.expr(env, st.Arg)
		if err != nil {
			return err
		}
		ev.out = append(ev.out, strconv.FormatInt(v.(int64), 10))
	case If:
		c, err := ev.expr(env, st.Cond)
		if err != nil {
			return err
		}
		if c.(bool) {
			return ev.stmts(env, st.Then)
		}
		return ev.stmts(env, st.Else)
	default:
		return fmt.Errorf("unknown statement %T", st)
	}
	return nil
}

func (ev *evaluator) expr(env frame, e Expr) (any, error) {
	switch e := e.(type) {
	case IntLit:
		return e.Value, nil
	case BoolLit:
		return e.Value, nil
	case VarRef:
		v, ok := env[e.Name]
		if !ok {
			return nil, fmt.Errorf("unbound variable %s", e.Name)
		}
		return v, nil
	case Call:
		ev.calls++
		if ev.limit > 0 && ev.calls > ev.limit {
			return nil, errBudget
		}
		callee := frame{}
		for i, a := range e.Args {
			v, err := ev.expr(env, a)
			if err != nil {
				return nil, err
			}
			callee[paramName(i)] = v
		}
		if err := ev.stmts(callee, e.Func.Body); err != nil {
			return nil, err
		}
		return ev.expr(callee, e.Func.Result)
	case Binop:
		return ev.binop(env, e)
	default:
		return nil, fmt.Errorf("unknown expression %T", e)
	}
}

func (ev *evaluator) binop(env frame, e Binop) (any, error) {
	l, err := ev.expr(env, e.Left)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case OpOr:
		if l.(bool) {
			return true, nil
		}
		return ev.expr(env, e.Right)
	case OpAnd:
		if !l.(bool) {
			return false, nil
		}
		return ev.expr(env, e.Right)
	}

	r, err := ev.expr(env, e.Right)
	if err != nil {
		return nil, err
	}
	a, b := l.(int64), r.(int64)
	switch e.Op {
	case OpAdd:
		s := a + b
		if (a > 0 && b > 0 && s < 0) || (a < 0 && b < 0 && s >= 0) {
			return nil, errOverflow
		}
		return s, nil
	case OpSub:
		d := a - b
		if (a >= 0 && b < 0 && d < 0) || (a < 0 && b > 0 && d >= 0) {
			return nil, errOverflow
		}
		return d, nil
	case OpLess:
		return a < b, nil
	case OpGreater:
		return a > b, nil
	case OpLessEq:
		return a <= b, nil
	case OpGreaterEq:
		return a >= b, nil
	case OpEqual:
		return a == b, nil
	default:
		return nil, fmt.Errorf("unknown operator %q", string(e.Op))
	}
}
