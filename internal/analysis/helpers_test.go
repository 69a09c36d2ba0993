package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dataflow/internal/ir"
)

// blk is a small fluent builder for synthetic test procedures, letting
// scenario tests read close to the IR text they describe without
// depending on the parser in internal/irtext.
type blk struct {
	b *ir.BasicBlock
}

func newBlock(label string) *blk {
	return &blk{b: &ir.BasicBlock{Label: label}}
}

func (k *blk) add(inst ir.Instruction) *blk {
	k.b.Instructions = append(k.b.Instructions, inst)
	return k
}

func (k *blk) allocSlot(name string) *blk {
	return k.add(&ir.AllocSlotInst{Local: name, Blk: k.b})
}

func (k *blk) store(val ir.Operand, slot string) *blk {
	return k.add(&ir.StoreInst{Slot: slot, Value: val, Blk: k.b})
}

func (k *blk) load(result, slot string) *blk {
	return k.add(&ir.LoadInst{Result: result, Slot: slot, Blk: k.b})
}

func (k *blk) binary(result string, op ir.Opcode, l, r ir.Operand) *blk {
	return k.add(&ir.BinaryInst{Result: result, Op: op, Left: l, Right: r, Blk: k.b})
}

func (k *blk) icmp(result string, pred ir.Predicate, l, r ir.Operand) *blk {
	return k.add(&ir.ICmpInst{Result: result, Pred: pred, Left: l, Right: r, Blk: k.b})
}

func (k *blk) jump(target string) *ir.BasicBlock {
	k.b.Term = &ir.JumpInst{Target: target, Blk: k.b}
	return k.b
}

func (k *blk) branchCond(cond ir.Operand, ifTrue, ifFalse string) *ir.BasicBlock {
	k.b.Term = &ir.BranchInst{Cond: cond, IfTrue: ifTrue, IfFalse: ifFalse, Blk: k.b}
	return k.b
}

func (k *blk) ret() *ir.BasicBlock {
	k.b.Term = &ir.RetInst{Blk: k.b}
	return k.b
}

func mustProc(t *testing.T, name string, blocks ...*ir.BasicBlock) *ir.Procedure {
	t.Helper()
	proc, err := ir.NewProcedure(name, blocks)
	require.NoError(t, err)
	return proc
}
