package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dataflow/internal/analysis"
	"dataflow/internal/dataflow"
	"dataflow/internal/ir"
	"dataflow/internal/solver"
)

// enumeratePaths walks every acyclic path from entry to every other
// block in a small CFG (no back-edges expected; a visited-set per
// path guards against accidental cycles), used as a brute-force
// oracle for the soundness tests below: what a single concrete
// execution would actually observe is necessarily one of these paths'
// simulated outcome.
func enumeratePaths(entry *ir.BasicBlock) [][]*ir.BasicBlock {
	var paths [][]*ir.BasicBlock
	var walk func(b *ir.BasicBlock, visited map[string]bool, soFar []*ir.BasicBlock)
	walk = func(b *ir.BasicBlock, visited map[string]bool, soFar []*ir.BasicBlock) {
		if visited[b.Label] {
			return
		}
		visited[b.Label] = true
		soFar = append(soFar, b)
		path := make([]*ir.BasicBlock, len(soFar))
		copy(path, soFar)
		paths = append(paths, path)
		for _, succ := range b.Successors {
			walk(succ, visited, soFar)
		}
		delete(visited, b.Label)
	}
	walk(entry, map[string]bool{}, nil)
	return paths
}

// simulateInitVars replays a single concrete path's stores, the way a
// real execution along exactly that path would.
func simulateInitVars(path []*ir.BasicBlock) dataflow.VarSet {
	out := dataflow.NewVarSet()
	for _, b := range path {
		for _, inst := range b.Instructions {
			if st, ok := inst.(*ir.StoreInst); ok {
				out.Add(st.Slot)
			}
		}
	}
	return out
}

func TestInitVarsFixpointIsSupersetOfEveryConcretePath(t *testing.T) {
	entryB := newBlock("entry")
	entry := entryB.branchCond(ir.Reg("%dummy"), "then", "else")
	then := newBlock("then").store(ir.ConstOperand(1), "a").jump("end")
	els := newBlock("else").store(ir.ConstOperand(1), "b").jump("end")
	end := newBlock("end").store(ir.ConstOperand(1), "c").ret()
	proc := mustProc(t, "main", entry, then, els, end)

	s := solver.New[dataflow.VarSet](proc, analysis.InitVars{})
	s.Run()

	for _, path := range enumeratePaths(entry) {
		last := path[len(path)-1]
		actual := simulateInitVars(path)
		reported := s.State(last.Label)
		for v := range actual {
			assert.True(t, reported.Contains(v), "block %s: path missed reporting %s", last.Label, v)
		}
	}
}

func TestInitVarsMonotoneAcrossRepeatedRuns(t *testing.T) {
	entryB := newBlock("entry")
	entry := entryB.branchCond(ir.Reg("%dummy"), "then", "else")
	then := newBlock("then").store(ir.ConstOperand(1), "a").jump("end")
	els := newBlock("else").store(ir.ConstOperand(1), "b").jump("end")
	end := newBlock("end").ret()
	proc := mustProc(t, "main", entry, then, els, end)

	s := solver.New[dataflow.VarSet](proc, analysis.InitVars{})

	var prevSize int
	for round := 0; round < 5; round++ {
		s.Run() // idempotent once converged; re-running never shrinks state
		cur := s.State("end")
		assert.True(t, len(cur) >= prevSize)
		prevSize = len(cur)
	}
}
