package fuzzer

import (
	"fmt"
	"strconv"
	"strings"
)

// Syntax selects one of the two renderings of a Program.
type Syntax int

const (
	// Target is KJU, the language under test.
	Target Syntax = iota
	// Reference is Python with overflow-checked integer arithmetic.
	Reference
)

func (s Syntax) String() string {
	switch s {
	case Target:
		return "kju"
	case Reference:
		return "python"
	default:
		return fmt.Sprintf("Syntax(%d)", int(s))
	}
}

// Extension is the file suffix for programs in this syntax.
func (s Syntax) Extension() string {
	switch s {
	case Target:
		return ".kju"
	case Reference:
		return ".py"
	default:
		panic(fmt.Sprintf("fuzzer: unknown syntax %d", int(s)))
	}
}

// Syntaxes lists every syntax a Program is rendered in.
var Syntaxes = []Syntax{Target, Reference}

const kjuHeader = "fun write(a: Int): Unit import"

// referencePrelude defines the overflow check every arithmetic result goes
// through. InvalidCode means the program left the 64-bit range and its
// output must not be compared.
const referencePrelude = `class InvalidCode(Exception): pass


def handle_overflow(val):
    if val >= 2**63 or val < -2**63:
        raise InvalidCode()
    return val
`

// OverflowHelper is the name of the reference-syntax overflow check.
const OverflowHelper = "handle_overflow"

func writeLine(b *strings.Builder, indent int, s string) {
	for i := 0; i < indent; i++ {
		b.WriteString("    ")
	}
	b.WriteString(s)
	b.WriteByte('\n')
}

// Render prints the whole program in syntax s.
func Render(p *Program, s Syntax) string {
	var b strings.Builder
	switch s {
	case Target:
		writeLine(&b, 0, kjuHeader)
		for _, fn := range p.Functions {
			b.WriteByte('\n')
			kjuFunction(&b, fn)
		}
		b.WriteByte('\n')
		writeLine(&b, 0, "fun kju(): Unit {")
		kjuBlock(&b, 1, p.Main)
		writeLine(&b, 0, "}")
	case Reference:
		b.WriteString(referencePrelude)
		for _, fn := range p.Functions {
			b.WriteString("\n\n")
			pyFunction(&b, fn)
		}
		b.WriteString("\n\n")
		pyStmts(&b, 0, p.Main)
	default:
		panic(fmt.Sprintf("fuzzer: unknown syntax %d", int(s)))
	}
	return b.String()
}

// RenderFunction prints one function definition.
func RenderFunction(fn *Function, s Syntax) string {
	var b strings.Builder
	switch s {
	case Target:
		kjuFunction(&b, fn)
	case Reference:
		pyFunction(&b, fn)
	default:
		panic(fmt.Sprintf("fuzzer: unknown syntax %d", int(s)))
	}
	return b.String()
}

// RenderBlock prints the statements of blk indented by level steps. An
// empty reference-syntax block prints as pass.
func RenderBlock(blk Block, s Syntax, level int) string {
	var b strings.Builder
	switch s {
	case Target:
		kjuBlock(&b, level, blk)
	case Reference:
		pyBlock(&b, level, blk)
	default:
		panic(fmt.Sprintf("fuzzer: unknown syntax %d", int(s)))
	}
	return b.String()
}

func RenderStmt(st Stmt, s Syntax) string {
	var b strings.Builder
	switch s {
	case Target:
		kjuStmt(&b, 0, st)
	case Reference:
		pyStmt(&b, 0, st)
	default:
		panic(fmt.Sprintf("fuzzer: unknown syntax %d", int(s)))
	}
	return b.String()
}

func RenderExpr(e Expr, s Syntax) string {
	switch s {
	case Target:
		return kjuExpr(e)
	case Reference:
		return pyExpr(e)
	default:
		panic(fmt.Sprintf("fuzzer: unknown syntax %d", int(s)))
	}
}

func intLiteral(v int64) string {
	if v < 0 {
		return "(" + strconv.FormatInt(v, 10) + ")"
	}
	return strconv.FormatInt(v, 10)
}

func joinArgs(args []Expr, render func(Expr) string) string {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		parts = append(parts, render(a))
	}
	return strings.Join(parts, ", ")
}

// KJU

func kjuExpr(e Expr) string {
	switch e := e.(type) {
	case IntLit:
		return intLiteral(e.Value)
	case BoolLit:
		if e.Value {
			return "true"
		}
		return "false"
	case VarRef:
		return e.Name
	case Call:
		return fmt.Sprintf("%s(%s)", e.Func.Name, joinArgs(e.Args, kjuExpr))
	case Binop:
		return fmt.Sprintf("(%s %s %s)", kjuExpr(e.Left), e.Op, kjuExpr(e.Right))
	default:
		panic(fmt.Sprintf("fuzzer: unknown expression %T", e))
	}
}

func kjuStmt(b *strings.Builder, indent int, st Stmt) {
	switch st := st.(type) {
	case Decl:
		writeLine(b, indent, fmt.Sprintf("var %s: %s = %s;", st.Name, st.Type.KJUName(), kjuExpr(st.Init)))
	case Print:
		writeLine(b, indent, fmt.Sprintf("write(%s);", kjuExpr(st.Arg)))
	case If:
		writeLine(b, indent, fmt.Sprintf("if (%s) then {", kjuExpr(st.Cond)))
		kjuBlock(b, indent+1, st.Then)
		writeLine(b, indent, "} else {")
		kjuBlock(b, indent+1, st.Else)
		writeLine(b, indent, "};")
	default:
		panic(fmt.Sprintf("fuzzer: unknown statement %T", st))
	}
}

func kjuBlock(b *strings.Builder, indent int, blk Block) {
	for _, st := range blk.Stmts {
		kjuStmt(b, indent, st)
	}
}

func kjuFunction(b *strings.Builder, fn *Function) {
	params := make([]string, 0, len(fn.Params))
	for i, t := range fn.Params {
		params = append(params, fmt.Sprintf("%s: %s", paramName(i), t.KJUName()))
	}
	writeLine(b, 0, fmt.Sprintf("fun %s(%s): %s {", fn.Name, strings.Join(params, ", "), fn.Return.KJUName()))
	kjuBlock(b, 1, fn.Body)
	writeLine(b, 1, fmt.Sprintf("return %s;", kjuExpr(fn.Result)))
	writeLine(b, 0, "}")
}

// Python

var pyOps = map[Op]string{
	OpOr:  "or",
	OpAnd: "and",
}

func pyExpr(e Expr) string {
	switch e := e.(type) {
	case IntLit:
		return intLiteral(e.Value)
	case BoolLit:
		if e.Value {
			return "True"
		}
		return "False"
	case VarRef:
		return e.Name
	case Call:
		return fmt.Sprintf("%s(%s)", e.Func.Name, joinArgs(e.Args, pyExpr))
	case Binop:
		op, ok := pyOps[e.Op]
		if !ok {
			op = string(e.Op)
		}
		s := fmt.Sprintf("(%s %s %s)", pyExpr(e.Left), op, pyExpr(e.Right))
		if e.Op.IsArithmetic() {
			return fmt.Sprintf("%s(%s)", OverflowHelper, s)
		}
		return s
	default:
		panic(fmt.Sprintf("fuzzer: unknown expression %T", e))
	}
}

func pyStmt(b *strings.Builder, indent int, st Stmt) {
	switch st := st.(type) {
	case Decl:
		writeLine(b, indent, fmt.Sprintf("%s = %s", st.Name, pyExpr(st.Init)))
	case Print:
		writeLine(b, indent, fmt.Sprintf("print(%s)", pyExpr(st.Arg)))
	case If:
		writeLine(b, indent, fmt.Sprintf("if %s:", pyExpr(st.Cond)))
		pyBlock(b, indent+1, st.Then)
		writeLine(b, indent, "else:")
		pyBlock(b, indent+1, st.Else)
	default:
		panic(fmt.Sprintf("fuzzer: unknown statement %T", st))
	}
}

// pyBlock prints a nested block; Python needs pass for an empty one.
func pyBlock(b *strings.Builder, indent int, blk Block) {
	if len(blk.Stmts) == 0 {
		writeLine(b, indent, "pass")
		return
	}
	pyStmts(b, indent, blk)
}

func pyStmts(b *strings.Builder, indent int, blk Block) {
	for _, st := range blk.Stmts {
		pyStmt(b, indent, st)
	}
}

func pyFunction(b *strings.Builder, fn *Function) {
	params := make([]string, 0, len(fn.Params))
	for i := range fn.Params {
		params = append(params, paramName(i))
	}
	writeLine(b, 0, fmt.Sprintf("def %s(%s):", fn.Name, strings.Join(params, ", ")))
	pyStmts(b, 1, fn.Body)
	writeLine(b, 1, fmt.Sprintf("return %s", pyExpr(fn.Result)))
}
