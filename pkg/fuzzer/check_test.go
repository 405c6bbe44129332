package fuzzer

import "fmt"

// sourceFunc answers every draw with a function of the range size.
type sourceFunc func(n uint32) uint32

func (f sourceFunc) Upto(n uint32) uint32 {
	if n == 0 {
		return 0
	}
	return f(n) % n
}

// checker re-walks a finished program with its own scope chain and reports
// the first reference or type that could not have been valid when generated.
type checker struct {
	visible [numTypes]map[string]bool
	defined map[*Function]bool
}

func checkProgram(p *Program) error {
	c := &checker{defined: map[*Function]bool{}}
	for _, fn := range p.Functions {
		c.reset()
		for i, t := range fn.Params {
			c.visible[t][paramName(i)] = true
		}
		if err := c.block(fn.Body); err != nil {
			return fmt.Errorf("%s: %w", fn.Name, err)
		}
		if err := c.expr(fn.Result, fn.Return); err != nil {
			return fmt.Errorf("%s result: %w", fn.Name, err)
		}
		if c.defined[fn] {
			return fmt.Errorf("%s registered twice", fn.Name)
		}
		c.defined[fn] = true
	}
	c.reset()
	if err := c.stmts(p.Main); err != nil {
		return fmt.Errorf("main: %w", err)
	}
	return nil
}

func (c *checker) reset() {
	for t := range c.visible {
		c.visible[t] = map[string]bool{}
	}
}

func (c *checker) block(b Block) error {
	var saved [numTypes]map[string]bool
	for t := range c.visible {
		saved[t] = make(map[string]bool, len(c.visible[t]))
		for name := range c.visible[t] {
			saved[t][name] = true
		}
	}
	err := c.stmts(b)
	c.visible = saved
	return err
}

func (c *checker) stmts(b Block) error {
	for _, st := range b.Stmts {
		if err := c.stmt(st); err != nil {
			return err
		}
	}
	return nil
}

func (c *checker) stmt(st Stmt) error {
	switch st := st.(type) {
	case Decl:
		if err := c.expr(st.Init, st.Type); err != nil {
			return fmt.Errorf("var %s: %w", st.Name, err)
		}
		for t := range c.visible {
			if c.visible[t][st.Name] {
				return fmt.Errorf("var %s shadows a visible name", st.Name)
			}
		}
		c.visible[st.Type][st.Name] = true
	case Print:
		return c.expr(st.Arg, Integer)
	case If:
		if err := c.expr(st.Cond, Boolean); err != nil {
			return err
		}
		if err := c.block(st.Then); err != nil {
			return err
		}
		return c.block(st.Else)
	default:
		return fmt.Errorf("unknown statement %T", st)
	}
	return nil
}

func (c *checker) expr(e Expr, want Type) error {
	if got := TypeOf(e); got != want {
		return fmt.Errorf("%s has type %s, want %s", kjuExpr(e), got, want)
	}
	switch e := e.(type) {
	case IntLit, BoolLit:
		return nil
	case VarRef:
		if !c.visible[e.Type][e.Name] {
			return fmt.Errorf("read of %s outside its scope", e.Name)
		}
	case Call:
		if !c.defined[e.Func] {
			return fmt.Errorf("call of %s before it is defined", e.Func.Name)
		}
		if len(e.Args) != len(e.Func.Params) {
			return fmt.Errorf("call of %s with %d arguments, want %d", e.Func.Name, len(e.Args), len(e.Func.Params))
		}
		for i, a := range e.Args {
			if err := c.expr(a, e.Func.Params[i]); err != nil {
				return err
			}
		}
	case Binop:
		if err := c.expr(e.Left, e.Op.OperandType()); err != nil {
			return err
		}
		return c.expr(e.Right, e.Op.OperandType())
	}
	return nil
}

// exprHeight counts nodes on the longest root-to-leaf path.
func exprHeight(e Expr) int {
	switch e := e.(type) {
	case Binop:
		return 1 + max(exprHeight(e.Left), exprHeight(e.Right))
	case Call:
		h := 0
		for _, a := range e.Args {
			h = max(h, exprHeight(a))
		}
		return 1 + h
	default:
		return 1
	}
}

// ifNesting counts how many conditionals enclose the deepest statement.
func ifNesting(b Block) int {
	deepest := 0
	for _, st := range b.Stmts {
		if s, ok := st.(If); ok {
			deepest = max(deepest, 1+max(ifNesting(s.Then), ifNesting(s.Else)))
		}
	}
	return deepest
}

// walkExprs calls fn on every expression root in the program.
func walkExprs(p *Program, fn func(Expr)) {
	var block func(Block)
	block = func(b Block) {
		for _, st := range b.Stmts {
			switch st := st.(type) {
			case Decl:
				fn(st.Init)
			case Print:
				fn(st.Arg)
			case If:
				fn(st.Cond)
				block(st.Then)
				block(st.Else)
			}
		}
	}
	for _, f := range p.Functions {
		block(f.Body)
		fn(f.Result)
	}
	block(p.Main)
}
