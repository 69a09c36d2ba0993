package ir_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"dataflow/internal/ir"
)

func TestPrintProcedureRendersBlocksInOrder(t *testing.T) {
	proc := straightLineProc(t)
	out := ir.PrintProcedure(proc)

	assert.True(t, strings.HasPrefix(out, "proc main {\n"))
	entryIdx := strings.Index(out, "entry:")
	endIdx := strings.Index(out, "end:")
	assert.True(t, entryIdx >= 0 && endIdx > entryIdx)
	assert.Contains(t, out, "x = alloc-slot")
	assert.Contains(t, out, "store 1, x")
	assert.Contains(t, out, "br.j end")
	assert.Contains(t, out, "ret")
}

func TestInstructionStringForms(t *testing.T) {
	cases := map[string]ir.Instruction{
		"x = alloc-slot":            &ir.AllocSlotInst{Local: "x"},
		"store 3, x":                &ir.StoreInst{Slot: "x", Value: ir.ConstOperand(3)},
		"%1 = load x":               &ir.LoadInst{Result: "%1", Slot: "x"},
		"%2 = add %1, 3":            &ir.BinaryInst{Result: "%2", Op: ir.OpAdd, Left: ir.Reg("%1"), Right: ir.ConstOperand(3)},
		"%3 = icmp slt %2, 10":      &ir.ICmpInst{Result: "%3", Pred: ir.PredSLT, Left: ir.Reg("%2"), Right: ir.ConstOperand(10)},
		"br.j end":                  &ir.JumpInst{Target: "end"},
		"br.cond %3, then, else":    &ir.BranchInst{Cond: ir.Reg("%3"), IfTrue: "then", IfFalse: "else"},
		"ret":                       &ir.RetInst{},
	}
	for want, inst := range cases {
		assert.Equal(t, want, inst.String())
	}
}
