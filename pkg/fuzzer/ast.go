package fuzzer

import "fmt"

// Op is a binary operator, spelled as in KJU.
type Op string

const (
	OpAdd       Op = "+"
	OpSub       Op = "-"
	OpLess      Op = "<"
	OpGreater   Op = ">"
	OpLessEq    Op = "<="
	OpGreaterEq Op = ">="
	OpEqual     Op = "=="
	OpOr        Op = "||"
	OpAnd       Op = "&&"
)

// OperandType is the type both operands must have.
func (o Op) OperandType() Type {
	switch o {
	case OpAdd, OpSub, OpLess, OpGreater, OpLessEq, OpGreaterEq, OpEqual:
		return Integer
	case OpOr, OpAnd:
		return Boolean
	default:
		panic(fmt.Sprintf("fuzzer: unknown operator %q", string(o)))
	}
}

func (o Op) ResultType() Type {
	if o.IsArithmetic() {
		return Integer
	}
	return Boolean
}

// IsArithmetic reports whether the operator can overflow.
func (o Op) IsArithmetic() bool {
	return o == OpAdd || o == OpSub
}

// Expr is a closed set of expression nodes; see IntLit, BoolLit, VarRef,
// Call and Binop.
type Expr interface {
	exprNode()
}

// Stmt is a closed set of statement nodes; see Decl, If and Print.
type Stmt interface {
	stmtNode()
}

type IntLit struct {
	Value int64
}

type BoolLit struct {
	Value bool
}

type VarRef struct {
	Name string
	Type Type
}

type Call struct {
	Func *Function
	Args []Expr
}

type Binop struct {
	Op    Op
	Left  Expr
	Right Expr
}

func (IntLit) exprNode()  {}
func (BoolLit) exprNode() {}
func (VarRef) exprNode()  {}
func (Call) exprNode()    {}
func (Binop) exprNode()   {}

type Decl struct {
	Name string
	Type Type
	Init Expr
}

type If struct {
	Cond Expr
	Then Block
	Else Block
}

type Print struct {
	Arg Expr
}

func (Decl) stmtNode()  {}
func (If) stmtNode()    {}
func (Print) stmtNode() {}

type Block struct {
	Stmts []Stmt
}

// Function is a top-level KJU function. Parameters are named arg0, arg1, ...
type Function struct {
	Name   string
	Return Type
	Params []Type
	Body   Block
	Result Expr
}

// Program is the root: the functions in definition order and the entry block.
type Program struct {
	Functions []*Function
	Main      Block
}

// TypeOf returns the static type of e.
func TypeOf(e Expr) Type {
	switch e := e.(type) {
	case IntLit:
		return Integer
	case BoolLit:
		return Boolean
	case VarRef:
		return e.Type
	case Call:
		return e.Func.Return
	case Binop:
		return e.Op.ResultType()
	default:
		panic(fmt.Sprintf("fuzzer: unknown expression %T", e))
	}
}
