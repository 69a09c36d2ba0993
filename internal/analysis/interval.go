package analysis

import (
	"dataflow/internal/dataflow"
	"dataflow/internal/ir"
)

// DivWarning records a block/register where a division or remainder's
// divisor interval was found to possibly contain zero.
type DivWarning struct {
	BlockLabel string
	Divisor    string
	Pos        ir.Position
}

// Interval is the interval-valued analysis (3, and 3b when Narrow is
// set). Variant 3 never refines across edges; 3b additionally
// narrows a predecessor's exit state using the conditional branch
// predicate that selected the edge. It accumulates DivWarnings across
// TransferBlock calls the same way Taint caches its affect lists, so
// use a pointer (&Interval{...}) when the warnings will be read back.
type Interval struct {
	Narrow   bool
	Warnings []DivWarning

	seen map[string]bool
}

func (*Interval) Bottom() dataflow.IntervalMap { return dataflow.IntervalMapDomain{}.Bottom() }

func (*Interval) Join(a, b dataflow.IntervalMap) dataflow.IntervalMap {
	return dataflow.IntervalMapDomain{}.Join(a, b)
}

func (*Interval) Equal(a, b dataflow.IntervalMap) bool {
	return dataflow.IntervalMapDomain{}.Equal(a, b)
}

// recordDivWarning appends a DivWarning the first time a given
// block/register pair is seen; repeated fixpoint rounds revisit the
// same instructions, so this keeps the report to one entry per site.
func (i *Interval) recordDivWarning(blockLabel, register, divisor string, pos ir.Position) {
	if i.seen == nil {
		i.seen = make(map[string]bool)
	}
	key := blockLabel + "/" + register
	if i.seen[key] {
		return
	}
	i.seen[key] = true
	i.Warnings = append(i.Warnings, DivWarning{BlockLabel: blockLabel, Divisor: divisor, Pos: pos})
}

func resolveOperand(state dataflow.IntervalMap, op ir.Operand) dataflow.Interval {
	if op.Kind == ir.OperandConst {
		return dataflow.Point(op.Const)
	}
	return state.Get(op.Name)
}

func (i *Interval) TransferBlock(b *ir.BasicBlock, pre dataflow.IntervalMap) dataflow.IntervalMap {
	state := pre.Clone()
	for _, inst := range b.Instructions {
		switch v := inst.(type) {
		case *ir.AllocSlotInst:
			state[v.Local] = dataflow.Top()

		case *ir.StoreInst:
			if v.Value.Kind != ir.OperandConst {
				if _, tracked := state[v.Value.Name]; !tracked {
					// name(reg) not in dom(S): leave x unchanged.
					continue
				}
			}
			state[v.Slot] = resolveOperand(state, v.Value)

		case *ir.LoadInst:
			if iv, tracked := state[v.Slot]; tracked {
				state[v.Result] = iv
			} else {
				delete(state, v.Result)
			}

		case *ir.BinaryInst:
			left := resolveOperand(state, v.Left)
			right := resolveOperand(state, v.Right)
			if left.Empty || right.Empty {
				delete(state, v.Result)
				continue
			}
			switch v.Op {
			case ir.OpAdd:
				state[v.Result] = left.Add(right)
			case ir.OpSub:
				state[v.Result] = left.Sub(right)
			case ir.OpMul:
				state[v.Result] = left.Mul(right)
			case ir.OpSDiv:
				if right.Lo <= 0 && right.Hi >= 0 {
					i.recordDivWarning(b.Label, v.Result, v.Right.String(), b.Pos)
				}
				state[v.Result] = left.SDiv(right)
			case ir.OpSRem:
				if right.Lo <= 0 && right.Hi >= 0 {
					i.recordDivWarning(b.Label, v.Result, v.Right.String(), b.Pos)
				}
				state[v.Result] = left.SRem(right)
			}
		}
		// icmp, br.j, br.cond, ret: identity on the state.
	}
	return state
}

// operandKind classifies an icmp operand for edge refinement.
type operandKind int

const (
	opaqueOperand operandKind = iota
	constOperandKind
	varOperandKind
)

func classify(b *ir.BasicBlock, op ir.Operand) (kind operandKind, constVal int64, varName string) {
	if op.Kind == ir.OperandConst {
		return constOperandKind, op.Const, ""
	}
	if op.Kind == ir.OperandReg {
		if slot, ok := ir.FindLocal(b, op.Name); ok {
			return varOperandKind, 0, slot
		}
	}
	return opaqueOperand, 0, ""
}

// mirror flips a predicate's operand order: a <p> b == b <mirror(p)> a.
func mirror(p ir.Predicate) ir.Predicate {
	switch p {
	case ir.PredSGT:
		return ir.PredSLT
	case ir.PredSLT:
		return ir.PredSGT
	case ir.PredSGE:
		return ir.PredSLE
	case ir.PredSLE:
		return ir.PredSGE
	default:
		return p
	}
}

func clamp(v int64) int64 {
	if v < dataflow.NegInf {
		return dataflow.NegInf
	}
	if v > dataflow.PosInf {
		return dataflow.PosInf
	}
	return v
}

var bottomMap = dataflow.IntervalMap{}

// RefineEdge narrows the predecessor's exit state to the
// sub-interval(s) consistent with having taken the from->to edge. It
// never introduces new keys, and returns the domain's bottom map (∅)
// when the edge is provably infeasible, per the contract that an
// infeasible edge contributes nothing to its successor's join.
func (a *Interval) RefineEdge(from, to *ir.BasicBlock, pre dataflow.IntervalMap) dataflow.IntervalMap {
	if !a.Narrow {
		return pre
	}
	branch, ok := from.Term.(*ir.BranchInst)
	if !ok {
		return pre
	}
	var flag bool
	switch to.Label {
	case branch.IfTrue:
		flag = true
	case branch.IfFalse:
		flag = false
	default:
		return pre
	}
	if branch.Cond.Kind != ir.OperandReg {
		return pre
	}
	cmp, ok := ir.FindICmp(from, branch.Cond.Name)
	if !ok {
		return pre
	}

	effPred := cmp.Pred
	if !flag {
		effPred = effPred.Negate()
	}

	lhsKind, lhsConst, lhsVar := classify(from, cmp.Left)
	rhsKind, rhsConst, rhsVar := classify(from, cmp.Right)

	switch {
	case lhsKind == constOperandKind && rhsKind == constOperandKind:
		if effPred.Eval(lhsConst, rhsConst) {
			return pre
		}
		return bottomMap

	case lhsKind == varOperandKind && rhsKind == constOperandKind:
		return tightenVarConst(pre, lhsVar, effPred, rhsConst)

	case lhsKind == constOperandKind && rhsKind == varOperandKind:
		return tightenVarConst(pre, rhsVar, mirror(effPred), lhsConst)

	case lhsKind == varOperandKind && rhsKind == varOperandKind:
		return tightenVarVar(pre, lhsVar, rhsVar, effPred)

	default:
		// One or both operands are opaque (not traceable to a load of
		// a named local): sound but imprecise, so leave state as-is.
		return pre
	}
}

func tightenVarConst(pre dataflow.IntervalMap, name string, pred ir.Predicate, c int64) dataflow.IntervalMap {
	x, tracked := pre[name]
	if !tracked {
		return pre
	}
	switch pred {
	case ir.PredEQ:
		if !x.Contains(c) {
			return bottomMap
		}
		x = dataflow.Point(c)
	case ir.PredNE:
		if x.Lo == x.Hi && x.Lo == c {
			return bottomMap
		}
		if x.Lo == c {
			x.Lo = clamp(x.Lo + 1)
		} else if x.Hi == c {
			x.Hi = clamp(x.Hi - 1)
		}
	case ir.PredSLT:
		x.Hi = clamp(min(x.Hi, c-1))
	case ir.PredSLE:
		x.Hi = clamp(min(x.Hi, c))
	case ir.PredSGT:
		x.Lo = clamp(max(x.Lo, c+1))
	case ir.PredSGE:
		x.Lo = clamp(max(x.Lo, c))
	}
	if x.Lo > x.Hi {
		return bottomMap
	}
	out := pre.Clone()
	out[name] = x
	return out
}

func tightenVarVar(pre dataflow.IntervalMap, lhs, rhs string, pred ir.Predicate) dataflow.IntervalMap {
	x, xok := pre[lhs]
	y, yok := pre[rhs]
	if !xok || !yok {
		return pre
	}
	switch pred {
	case ir.PredEQ:
		lo, hi := max(x.Lo, y.Lo), min(x.Hi, y.Hi)
		if lo > hi {
			return bottomMap
		}
		x = dataflow.Interval{Lo: lo, Hi: hi}
		y = x
	case ir.PredNE:
		if x.Lo == x.Hi && y.Lo == y.Hi && x.Lo == y.Lo {
			return bottomMap
		}
	case ir.PredSLT:
		x.Hi = clamp(min(x.Hi, y.Hi-1))
		y.Lo = clamp(max(y.Lo, x.Lo+1))
	case ir.PredSLE:
		x.Hi = clamp(min(x.Hi, y.Hi))
		y.Lo = clamp(max(y.Lo, x.Lo))
	case ir.PredSGT:
		x.Lo = clamp(max(x.Lo, y.Lo+1))
		y.Hi = clamp(min(y.Hi, x.Hi-1))
	case ir.PredSGE:
		x.Lo = clamp(max(x.Lo, y.Lo))
		y.Hi = clamp(min(y.Hi, x.Hi))
	}
	if x.Lo > x.Hi || y.Lo > y.Hi {
		return bottomMap
	}
	out := pre.Clone()
	out[lhs] = x
	out[rhs] = y
	return out
}
