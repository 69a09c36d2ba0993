// Package dataflow holds the abstract domains shared by every
// analysis: a generic join-semilattice contract plus the two concrete
// lattices the analyses instantiate it with (variable sets and
// interval maps).
package dataflow

// Domain is a join-semilattice with a bottom element and a decidable
// equality, the minimal contract solver.Solver needs to run chaotic
// iteration over any of the concrete analyses. Each analysis package
// instantiates this once instead of three near-identical fixpoint
// loops being hand-written, the unification this corpus's own
// duplicated-optimization-pass shape calls out for.
type Domain[S any] interface {
	// Bottom is the least element: Join(Bottom(), x) == x for all x.
	Bottom() S
	// Join computes the least upper bound of a and b.
	Join(a, b S) S
	// Equal reports whether a and b denote the same abstract value.
	Equal(a, b S) bool
}
