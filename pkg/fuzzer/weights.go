package fuzzer

// Weighted is one row of a WeightTable.
type Weighted[T any] struct {
	Choice T
	Weight uint32
}

// WeightTable is an ordered probability table. Order matters: Pick walks the
// rows cumulatively, so the same draw always maps to the same row.
type WeightTable[T any] []Weighted[T]

func (w WeightTable[T]) total() uint32 {
	var sum uint32
	for _, row := range w {
		sum += row.Weight
	}
	return sum
}

// Pick draws one value from src and returns the row it falls in.
func (w WeightTable[T]) Pick(src Source) T {
	x := src.Upto(w.total())
	for _, row := range w {
		if x < row.Weight {
			return row.Choice
		}
		x -= row.Weight
	}
	return w[len(w)-1].Choice
}

type exprCategory int

const (
	exprBinop exprCategory = iota
	exprCall
	exprRead
	exprLiteral
)

type stmtKind int

const (
	stmtIf stmtKind = iota
	stmtPrint
	stmtDecl
)

type boolBinopShape int

const (
	binopLogical boolBinopShape = iota
	binopComparison
)

var exprCategoryWeights = WeightTable[exprCategory]{
	{exprBinop, 3},
	{exprCall, 1},
	{exprRead, 2},
	{exprLiteral, 1},
}

var stmtKindWeights = WeightTable[stmtKind]{
	{stmtIf, 1},
	{stmtPrint, 1},
	{stmtDecl, 3},
}

var declTypeWeights = WeightTable[Type]{
	{Boolean, 1},
	{Integer, 2},
}

var boolBinopWeights = WeightTable[boolBinopShape]{
	{binopLogical, 1},
	{binopComparison, 1},
}

var (
	arithmeticOps = []Op{OpAdd, OpSub}
	comparisonOps = []Op{OpLess, OpGreater, OpLessEq, OpGreaterEq, OpEqual}
	logicalOps    = []Op{OpOr, OpAnd}
)

func pickOp(src Source, ops []Op) Op {
	return ops[int(src.Upto(uint32(len(ops))))]
}
