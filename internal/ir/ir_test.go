package ir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataflow/internal/ir"
)

func straightLineProc(t *testing.T) *ir.Procedure {
	t.Helper()
	entry := &ir.BasicBlock{Label: "entry"}
	end := &ir.BasicBlock{Label: "end"}
	entry.Instructions = []ir.Instruction{
		&ir.AllocSlotInst{Local: "x", Blk: entry},
		&ir.StoreInst{Slot: "x", Value: ir.ConstOperand(1), Blk: entry},
	}
	entry.Term = &ir.JumpInst{Target: "end", Blk: entry}
	end.Term = &ir.RetInst{Blk: end}

	proc, err := ir.NewProcedure("main", []*ir.BasicBlock{entry, end})
	require.NoError(t, err)
	return proc
}

func TestNewProcedureLinksSuccessorsAndPredecessors(t *testing.T) {
	proc := straightLineProc(t)
	entry, ok := proc.Block("entry")
	require.True(t, ok)
	end, ok := proc.Block("end")
	require.True(t, ok)

	require.Len(t, entry.Successors, 1)
	assert.Equal(t, "end", entry.Successors[0].Label)
	require.Len(t, end.Predecessors, 1)
	assert.Equal(t, "entry", end.Predecessors[0].Label)
}

func TestNewProcedureRejectsDuplicateLabel(t *testing.T) {
	a := &ir.BasicBlock{Label: "entry", Term: &ir.RetInst{}}
	b := &ir.BasicBlock{Label: "entry", Term: &ir.RetInst{}}
	_, err := ir.NewProcedure("main", []*ir.BasicBlock{a, b})
	assert.ErrorContains(t, err, "duplicate block label")
}

func TestNewProcedureRejectsMissingTerminator(t *testing.T) {
	a := &ir.BasicBlock{Label: "entry"}
	_, err := ir.NewProcedure("main", []*ir.BasicBlock{a})
	assert.ErrorContains(t, err, "no terminator")
}

func TestNewProcedureRejectsUnknownSuccessor(t *testing.T) {
	a := &ir.BasicBlock{Label: "entry", Term: &ir.JumpInst{Target: "nowhere"}}
	_, err := ir.NewProcedure("main", []*ir.BasicBlock{a})
	assert.ErrorContains(t, err, "undefined successor")
}

func TestEntryIsFirstBlock(t *testing.T) {
	proc := straightLineProc(t)
	assert.Equal(t, "entry", proc.Entry().Label)
}

func TestPredicateNegateIsInvolution(t *testing.T) {
	preds := []ir.Predicate{ir.PredEQ, ir.PredNE, ir.PredSGT, ir.PredSLT, ir.PredSGE, ir.PredSLE}
	for _, p := range preds {
		assert.Equal(t, p, p.Negate().Negate())
		for l := int64(-3); l <= 3; l++ {
			for r := int64(-3); r <= 3; r++ {
				assert.NotEqual(t, p.Eval(l, r), p.Negate().Eval(l, r), "pred %v at (%d,%d)", p, l, r)
			}
		}
	}
}

func TestFindLocalTracesLoad(t *testing.T) {
	b := &ir.BasicBlock{Label: "entry"}
	load := &ir.LoadInst{Result: "%1", Slot: "x", Blk: b}
	b.Instructions = []ir.Instruction{load}

	slot, ok := ir.FindLocal(b, "%1")
	require.True(t, ok)
	assert.Equal(t, "x", slot)

	_, ok = ir.FindLocal(b, "%nope")
	assert.False(t, ok)
}
