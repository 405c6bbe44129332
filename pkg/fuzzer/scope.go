package fuzzer

import "fmt"

// Scope tracks which names a generated expression may reference: the
// variables visible at the current point, per type, and every function
// registered so far, per return type. It belongs to one generation run.
type Scope struct {
	vars  [numTypes][]string
	funcs [numTypes][]*Function
}

// Snapshot is the visible-variable state at block entry.
type Snapshot struct {
	lens [numTypes]int
}

func NewScope() *Scope {
	return &Scope{}
}

// Snapshot records the current variable lists. Inside a block variables are
// only ever appended, so remembering the lengths is enough to restore them.
func (s *Scope) Snapshot() Snapshot {
	var snap Snapshot
	for t := range s.vars {
		snap.lens[t] = len(s.vars[t])
	}
	return snap
}

// Restore drops every variable declared since snap was taken.
func (s *Scope) Restore(snap Snapshot) {
	for t := range s.vars {
		if len(s.vars[t]) >= snap.lens[t] {
			s.vars[t] = s.vars[t][:snap.lens[t]]
		}
	}
}

// FreshName returns a variable name of type t that is not visible yet. The
// suffix is the number of visible variables of that type, which only grows
// along a scope chain.
func (s *Scope) FreshName(t Type) string {
	return fmt.Sprintf("v%s%d", t, len(s.vars[t]))
}

// Bind makes name visible as a variable of type t.
func (s *Scope) Bind(t Type, name string) {
	s.vars[t] = append(s.vars[t], name)
}

func (s *Scope) Declare(t Type) string {
	name := s.FreshName(t)
	s.Bind(t, name)
	return name
}

// Register adds fn to the global function registry. Functions are never
// removed.
func (s *Scope) Register(fn *Function) {
	s.funcs[fn.Return] = append(s.funcs[fn.Return], fn)
}

// FunctionName returns the name the next function returning t will get.
func (s *Scope) FunctionName(t Type) string {
	return fmt.Sprintf("fun%s%d", t, len(s.funcs[t]))
}

func (s *Scope) Variables(t Type) []string {
	return s.vars[t]
}

func (s *Scope) Functions(t Type) []*Function {
	return s.funcs[t]
}

// ResetVariables forgets every variable, keeping the function registry.
func (s *Scope) ResetVariables() {
	for t := range s.vars {
		s.vars[t] = nil
	}
}
