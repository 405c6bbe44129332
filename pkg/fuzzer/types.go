package fuzzer

import "fmt"

// Type is one of the two primitive KJU types the generator knows about.
type Type int

const (
	Integer Type = iota
	Boolean

	numTypes
)

// primitiveTypes is the order used for uniform type picks (parameters and
// return types).
var primitiveTypes = []Type{Boolean, Integer}

// String returns the lower-case spelling used inside generated names.
func (t Type) String() string {
	switch t {
	case Integer:
		return "int"
	case Boolean:
		return "bool"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// KJUName returns the capitalised type name used in KJU declarations.
func (t Type) KJUName() string {
	switch t {
	case Integer:
		return "Int"
	case Boolean:
		return "Bool"
	default:
		panic(fmt.Sprintf("fuzzer: unknown type %d", int(t)))
	}
}

func pickType(src Source, pool []Type) Type {
	return pool[int(src.Upto(uint32(len(pool))))]
}

func paramName(i int) string {
	return fmt.Sprintf("arg%d", i)
}
