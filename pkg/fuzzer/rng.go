package fuzzer

import (
	"log/slog"
	"runtime"
	"strings"
)

// Source is the only randomness the generator consumes. Any implementation
// returning uniform values works; a fixed sequence of answers gives a fixed
// Program.
type Source interface {
	// Upto returns a value in [0, n). Upto(0) returns 0.
	Upto(n uint32) uint32
}

const (
	lcgA    uint64 = 0x5DEECE66D
	lcgC    uint64 = 0xB
	lcgMask uint64 = (1 << 48) - 1
)

// LCG follows the srand48/lrand48 recurrence so that a seed names the same
// program on every platform.
type LCG struct {
	state uint64
	trace *slog.Logger
	pos   uint64
}

// NewLCG seeds the generator with srand48 semantics.
func NewLCG(seed uint64) *LCG {
	return &LCG{state: ((seed << 16) + 0x330E) & lcgMask}
}

// Trace makes every draw log its result and calling site at debug level.
// A nil logger turns tracing off.
func (r *LCG) Trace(log *slog.Logger) {
	r.trace = log
}

func (r *LCG) next31() uint32 {
	r.state = (lcgA*r.state + lcgC) & lcgMask
	return uint32(r.state >> 17)
}

func (r *LCG) Upto(n uint32) uint32 {
	if n == 0 {
		return 0
	}
	raw := r.next31()
	x := raw % n
	if r.trace != nil {
		r.pos++
		r.trace.Debug("rng draw", "pos", r.pos, "n", n, "value", x, "raw", raw, "site", traceCaller())
	}
	return x
}

// Sequence replays a fixed list of answers, reducing each one modulo n.
// Once the list runs out every draw returns 0.
type Sequence struct {
	values []uint32
	pos    int
}

func NewSequence(values ...uint32) *Sequence {
	return &Sequence{values: values}
}

func (s *Sequence) Upto(n uint32) uint32 {
	if n == 0 || s.pos >= len(s.values) {
		return 0
	}
	v := s.values[s.pos]
	s.pos++
	return v % n
}

// Remaining reports how many scripted answers have not been consumed.
func (s *Sequence) Remaining() int {
	return len(s.values) - s.pos
}

func traceCaller() string {
	var pcs [12]uintptr
	n := runtime.Callers(3, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])
	for {
		fr, more := frames.Next()
		name := fr.Function
		if name != "" && !strings.HasSuffix(name, ").Upto") && !strings.HasSuffix(name, "].Pick") && !strings.HasSuffix(name, ".pickType") {
			return name
		}
		if !more {
			break
		}
	}
	return "unknown"
}
