// Package analysis implements the three concrete dataflow analyses
// (initialized variables, taint, interval) as solver.Analysis[S]
// values, each a thin set of transfer/refine rules layered on the
// shared lattices in internal/dataflow.
package analysis

import (
	"dataflow/internal/dataflow"
	"dataflow/internal/ir"
)

// InitVars tracks which local slots have been initialized (written by
// a store) by the end of a block. Predecessor states are joined by set
// union, so a slot stored on any incoming path counts. The transfer
// function is identity except for store; there is no edge refinement.
type InitVars struct{}

func (InitVars) Bottom() dataflow.VarSet                { return dataflow.VarSetDomain{}.Bottom() }
func (InitVars) Join(a, b dataflow.VarSet) dataflow.VarSet { return dataflow.VarSetDomain{}.Join(a, b) }
func (InitVars) Equal(a, b dataflow.VarSet) bool         { return dataflow.VarSetDomain{}.Equal(a, b) }

func (InitVars) TransferBlock(b *ir.BasicBlock, pre dataflow.VarSet) dataflow.VarSet {
	state := pre.Clone()
	for _, inst := range b.Instructions {
		if store, ok := inst.(*ir.StoreInst); ok {
			state.Add(store.Slot)
		}
	}
	return state
}

func (InitVars) RefineEdge(from, to *ir.BasicBlock, pre dataflow.VarSet) dataflow.VarSet {
	return pre
}
