package dataflow

import "sort"

// VarSet is the (2^Vars, ⊆) domain shared by the initialized-variable
// and taint analyses: a set of variable names, ordered by subset, with
// bottom the empty set and join the set union.
type VarSet map[string]struct{}

// NewVarSet builds a VarSet from the given names.
func NewVarSet(names ...string) VarSet {
	s := make(VarSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Clone returns an independent copy.
func (s VarSet) Clone() VarSet {
	c := make(VarSet, len(s))
	for k := range s {
		c[k] = struct{}{}
	}
	return c
}

// Add inserts name, returning the same set for chaining.
func (s VarSet) Add(name string) VarSet {
	s[name] = struct{}{}
	return s
}

// Remove deletes name, returning the same set for chaining.
func (s VarSet) Remove(name string) VarSet {
	delete(s, name)
	return s
}

// Contains reports whether name is a member.
func (s VarSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Sorted returns the members in lexical order, for deterministic
// reporting.
func (s VarSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// VarSetDomain implements Domain[VarSet].
type VarSetDomain struct{}

func (VarSetDomain) Bottom() VarSet { return VarSet{} }

func (VarSetDomain) Join(a, b VarSet) VarSet {
	out := a.Clone()
	for k := range b {
		out[k] = struct{}{}
	}
	return out
}

func (VarSetDomain) Equal(a, b VarSet) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
