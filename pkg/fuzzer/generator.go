package fuzzer

import (
	"log/slog"
)

// generator is the context of one generation run. Every decision reads the
// random source; every reference is checked against scope at the moment it
// is generated.
type generator struct {
	opts  Options
	src   Source
	scope *Scope
	log   *slog.Logger

	exprDepth  int
	blockDepth int
}

func newGenerator(opts Options, src Source, log *slog.Logger) *generator {
	if log == nil {
		log = slog.Default()
	}
	return &generator{
		opts:  opts,
		src:   src,
		scope: NewScope(),
		log:   log,
	}
}

func (g *generator) literal(t Type) Expr {
	switch t {
	case Integer:
		span := uint32(g.opts.LiteralMax - g.opts.LiteralMin)
		return IntLit{Value: g.opts.LiteralMin + int64(g.src.Upto(span))}
	case Boolean:
		return BoolLit{Value: g.src.Upto(2) == 0}
	default:
		panic("fuzzer: literal of unknown type " + t.String())
	}
}

// expr builds an expression of type t. Past the depth bound only literals
// are produced.
func (g *generator) expr(t Type) Expr {
	if g.exprDepth > g.opts.MaxExprDepth {
		return g.literal(t)
	}
	g.exprDepth++
	defer func() { g.exprDepth-- }()

	category := exprCategoryWeights.Pick(g.src)
	// Top-level conditions are always a comparison or a logical combination.
	if t == Boolean && g.exprDepth < 2 {
		category = exprBinop
	}

	switch category {
	case exprBinop:
		return g.binop(t)
	case exprCall:
		return g.call(t)
	case exprRead:
		return g.read(t)
	default:
		return g.literal(t)
	}
}

func (g *generator) binop(t Type) Expr {
	var op Op
	if t == Integer {
		op = pickOp(g.src, arithmeticOps)
	} else if boolBinopWeights.Pick(g.src) == binopLogical {
		op = pickOp(g.src, logicalOps)
	} else {
		op = pickOp(g.src, comparisonOps)
	}
	left := g.expr(op.OperandType())
	right := g.expr(op.OperandType())
	return Binop{Op: op, Left: left, Right: right}
}

func (g *generator) call(t Type) Expr {
	funcs := g.scope.Functions(t)
	if len(funcs) == 0 {
		return g.literal(t)
	}
	fn := funcs[int(g.src.Upto(uint32(len(funcs))))]
	args := make([]Expr, 0, len(fn.Params))
	for _, pt := range fn.Params {
		args = append(args, g.expr(pt))
	}
	return Call{Func: fn, Args: args}
}

func (g *generator) read(t Type) Expr {
	vars := g.scope.Variables(t)
	if len(vars) == 0 {
		return g.literal(t)
	}
	return VarRef{Name: vars[int(g.src.Upto(uint32(len(vars))))], Type: t}
}

// stmt builds one statement. Past the block depth bound only declarations
// are produced, so nesting stops.
func (g *generator) stmt() Stmt {
	if g.blockDepth > g.opts.MaxBlockDepth {
		return g.decl()
	}
	switch stmtKindWeights.Pick(g.src) {
	case stmtIf:
		cond := g.expr(Boolean)
		then := g.block()
		els := g.block()
		return If{Cond: cond, Then: then, Else: els}
	case stmtPrint:
		return Print{Arg: g.expr(Integer)}
	default:
		return g.decl()
	}
}

// decl picks the name before building the initializer but binds it after,
// so the initializer cannot read the variable it defines.
func (g *generator) decl() Stmt {
	t := declTypeWeights.Pick(g.src)
	name := g.scope.FreshName(t)
	init := g.expr(t)
	g.scope.Bind(t, name)
	return Decl{Name: name, Type: t, Init: init}
}

// block builds a nested block. Declarations made inside do not outlive it.
func (g *generator) block() Block {
	snap := g.scope.Snapshot()
	g.blockDepth++
	defer func() {
		g.blockDepth--
		g.scope.Restore(snap)
	}()

	n := int(g.src.Upto(uint32(g.opts.MaxBlockSize + 1)))
	stmts := make([]Stmt, 0, n)
	for i := 0; i < n; i++ {
		stmts = append(stmts, g.stmt())
	}
	return Block{Stmts: stmts}
}

// statements builds n statements directly in the current scope, without the
// snapshot and depth step of block.
func (g *generator) statements(n int) Block {
	stmts := make([]Stmt, 0, n)
	for i := 0; i < n; i++ {
		stmts = append(stmts, g.stmt())
	}
	return Block{Stmts: stmts}
}

// function builds a top-level function in a scope that only holds its own
// parameters. It is registered after its body is built, so it never calls
// itself.
func (g *generator) function() *Function {
	g.scope.ResetVariables()

	argc := int(g.src.Upto(uint32(g.opts.MaxParams + 1)))
	params := make([]Type, 0, argc)
	for i := 0; i < argc; i++ {
		t := pickType(g.src, primitiveTypes)
		g.scope.Bind(t, paramName(i))
		params = append(params, t)
	}
	ret := pickType(g.src, primitiveTypes)

	body := g.block()
	result := g.expr(ret)

	fn := &Function{
		Name:   g.scope.FunctionName(ret),
		Return: ret,
		Params: params,
		Body:   body,
		Result: result,
	}
	g.scope.Register(fn)
	g.log.Debug("generated function", "name", fn.Name, "params", len(params), "stmts", len(body.Stmts))
	return fn
}
