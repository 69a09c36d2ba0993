// Package solver runs chaotic-iteration dataflow fixpoints over any
// analysis satisfying the Analysis contract. One generic
// implementation replaces what would otherwise be three
// near-identical hand-written fixpoint loops, one per analysis — the
// same unification this corpus's own duplicated optimization passes
// would benefit from.
package solver

import "dataflow/internal/ir"

// Analysis is everything the solver needs from a concrete dataflow
// analysis: the lattice operations plus the two instruction- and
// edge-level transfer functions.
type Analysis[S any] interface {
	Bottom() S
	Join(a, b S) S
	Equal(a, b S) bool

	// TransferBlock consumes the joined predecessor contribution for
	// block b and produces its exit state, starting from a private
	// copy so repeated rounds never mutate shared state.
	TransferBlock(b *ir.BasicBlock, pre S) S

	// RefineEdge narrows the exit state of block `from` for its use
	// as the contribution along the from->to edge. Analyses without
	// edge refinement (1 and 2) return pre unchanged.
	RefineEdge(from, to *ir.BasicBlock, pre S) S
}

// Tracer receives one line per block visited per round, for CLI/LSP
// trace output; it is never required for correctness.
type Tracer func(round int, label string, changed bool)

// Solver owns one fixpoint run over one procedure with one analysis.
// It holds no package-level state: running several solvers over
// different procedures, or the same procedure with different
// analyses, concurrently is safe because each Solver is an
// independent value.
type Solver[S any] struct {
	proc     *ir.Procedure
	analysis Analysis[S]
	state    map[string]S
	active   map[string]bool
	Trace    Tracer
}

// New creates a solver with every block at lattice bottom and the
// active set warm-started to all blocks, per the "warm start" option
// in the algorithm's state description.
func New[S any](proc *ir.Procedure, a Analysis[S]) *Solver[S] {
	s := &Solver[S]{
		proc:     proc,
		analysis: a,
		state:    make(map[string]S, len(proc.Blocks)),
		active:   make(map[string]bool, len(proc.Blocks)),
	}
	for _, b := range proc.Blocks {
		s.state[b.Label] = a.Bottom()
		s.active[b.Label] = true
	}
	return s
}

// Run iterates rounds until no block's state changes, visiting blocks
// in declaration order each round and snapshotting state before the
// round so every block in the round sees a consistent view of its
// predecessors' prior-round results.
func (s *Solver[S]) Run() {
	round := 0
	for {
		snapshot := make(map[string]S, len(s.state))
		for k, v := range s.state {
			snapshot[k] = v
		}
		nextActive := make(map[string]bool, len(s.active))
		anyChanged := false

		for _, b := range s.proc.Blocks {
			contribution := s.analysis.Bottom()
			for _, p := range b.Predecessors {
				if !s.active[p.Label] {
					continue
				}
				c := s.analysis.RefineEdge(p, b, snapshot[p.Label])
				contribution = s.analysis.Join(contribution, c)
			}

			post := s.analysis.TransferBlock(b, contribution)
			joined := s.analysis.Join(snapshot[b.Label], post)
			changed := !s.analysis.Equal(joined, snapshot[b.Label])

			if changed {
				s.state[b.Label] = joined
				nextActive[b.Label] = true
				for _, succ := range b.Successors {
					nextActive[succ.Label] = true
				}
				anyChanged = true
			} else {
				s.state[b.Label] = snapshot[b.Label]
			}

			if s.Trace != nil {
				s.Trace(round, b.Label, changed)
			}
		}

		if !anyChanged {
			return
		}
		s.active = nextActive
		round++
	}
}

// State returns the fixpoint state for the named block. Call only
// after Run.
func (s *Solver[S]) State(label string) S {
	return s.state[label]
}

// Results returns the fixpoint state for every block, keyed by label.
func (s *Solver[S]) Results() map[string]S {
	out := make(map[string]S, len(s.state))
	for k, v := range s.state {
		out[k] = v
	}
	return out
}
