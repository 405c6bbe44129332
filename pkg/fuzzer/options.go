package fuzzer

import "fmt"

// depthCeiling caps both depth bounds. The bounds are what guarantees that
// generation terminates, so they may be tuned but not made large.
const depthCeiling = 16

// Options is the API-level configuration for one generation run.
type Options struct {
	Seed uint64

	// Program shape
	Functions      int
	MaxParams      int
	MaxBlockSize   int
	MainStatements int

	// Recursion bounds
	MaxExprDepth  int
	MaxBlockDepth int

	// Integer literals are drawn from [LiteralMin, LiteralMax).
	LiteralMin int64
	LiteralMax int64

	// Log every random draw at debug level.
	TraceRNG bool
}

func Defaults() Options {
	return Options{
		Functions:      10,
		MaxParams:      3,
		MaxBlockSize:   4,
		MainStatements: 30,

		MaxExprDepth:  5,
		MaxBlockDepth: 3,

		LiteralMin: -10,
		LiteralMax: 10,

		TraceRNG: false,
	}
}

func (o Options) Validate() error {
	if o.Functions < 0 {
		return fmt.Errorf("functions must not be negative")
	}
	if o.MaxParams < 0 {
		return fmt.Errorf("max-params must not be negative")
	}
	if o.MaxBlockSize < 0 {
		return fmt.Errorf("max-block-size must not be negative")
	}
	if o.MainStatements < 0 {
		return fmt.Errorf("main-stmts must not be negative")
	}
	if o.MaxExprDepth < 0 || o.MaxExprDepth > depthCeiling {
		return fmt.Errorf("max-expr-depth must be between 0 and %d", depthCeiling)
	}
	if o.MaxBlockDepth < 0 || o.MaxBlockDepth > depthCeiling {
		return fmt.Errorf("max-block-depth must be between 0 and %d", depthCeiling)
	}
	if o.LiteralMin >= o.LiteralMax {
		return fmt.Errorf("literal range [%d, %d) is empty", o.LiteralMin, o.LiteralMax)
	}
	if uint64(o.LiteralMax-o.LiteralMin) > uint64(^uint32(0)) {
		return fmt.Errorf("literal range [%d, %d) is too wide", o.LiteralMin, o.LiteralMax)
	}
	return nil
}
