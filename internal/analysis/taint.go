package analysis

import (
	"dataflow/internal/dataflow"
	"dataflow/internal/ir"
)

// affectRecord is one entry of a block's affect list: variable x was
// last assigned from the snapshot of loaded-but-not-yet-compared
// locals captured at that store.
type affectRecord struct {
	Var     string
	Sources []string
}

// blockAffects is the syntactic summary of one block used by taint
// transfer: which locals it taints unconditionally (by declaring
// "source") and, in original program order, the affect record
// produced by every store. Records for the same variable are kept
// even when a later store overwrites it: an intermediate store can
// still taint another variable loaded before the overwrite (see
// affectsFor), and replaying every record in order reproduces that
// without tracking anything beyond this static summary. It depends
// only on instruction text, not on any incoming state, so it is
// computed once per block and replayed every fixpoint round.
type blockAffects struct {
	declaresSource bool
	records        []affectRecord
}

// Taint tracks which locals may carry data derived from the local
// named "source". It caches each block's affect list across fixpoint
// rounds, since the list depends only on the block's own instructions.
type Taint struct {
	cache map[string]*blockAffects
}

// NewTaint creates a Taint analysis with an empty affect-list cache.
func NewTaint() *Taint {
	return &Taint{cache: make(map[string]*blockAffects)}
}

func (*Taint) Bottom() dataflow.VarSet                  { return dataflow.VarSetDomain{}.Bottom() }
func (*Taint) Join(a, b dataflow.VarSet) dataflow.VarSet { return dataflow.VarSetDomain{}.Join(a, b) }
func (*Taint) Equal(a, b dataflow.VarSet) bool           { return dataflow.VarSetDomain{}.Equal(a, b) }

func (t *Taint) TransferBlock(b *ir.BasicBlock, pre dataflow.VarSet) dataflow.VarSet {
	affects := t.affectsFor(b)

	state := pre.Clone()
	if affects.declaresSource {
		state.Add("source")
	}
	for _, rec := range affects.records {
		tainted := false
		for _, src := range rec.Sources {
			if state.Contains(src) {
				tainted = true
				break
			}
		}
		if tainted {
			state.Add(rec.Var)
		} else if state.Contains(rec.Var) {
			state.Remove(rec.Var)
		}
	}
	return state
}

func (*Taint) RefineEdge(from, to *ir.BasicBlock, pre dataflow.VarSet) dataflow.VarSet {
	return pre
}

func (t *Taint) affectsFor(b *ir.BasicBlock) *blockAffects {
	if cached, ok := t.cache[b.Label]; ok {
		return cached
	}
	affects := &blockAffects{}
	loaded := dataflow.NewVarSet()

	for _, inst := range b.Instructions {
		if _, isICmp := inst.(*ir.ICmpInst); isICmp {
			loaded = dataflow.NewVarSet()
			continue
		}
		eff, ok := inst.(ir.Effectful)
		if !ok {
			continue
		}
		for _, e := range eff.GetEffects() {
			switch e.Kind {
			case ir.EffectSlotRead:
				loaded.Add(e.Slot)
			case ir.EffectSlotWrite:
				switch v := inst.(type) {
				case *ir.AllocSlotInst:
					if v.Local == "source" {
						affects.declaresSource = true
					}
				case *ir.StoreInst:
					affects.records = append(affects.records, affectRecord{
						Var:     e.Slot,
						Sources: loaded.Sorted(),
					})
					loaded = dataflow.NewVarSet()
				}
			}
		}
	}

	t.cache[b.Label] = affects
	return affects
}

