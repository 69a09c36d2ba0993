package irtext

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"

	"dataflow/internal/ir"
	"dataflow/internal/irtext/grammar"
)

// toPos converts a participle lexer position into the ir package's
// source-location type.
func toPos(p lexer.Position) ir.Position {
	return ir.Position{Line: p.Line, Column: p.Column}
}

// Build converts a parsed procedure AST into an *ir.Procedure, linking
// predecessor/successor edges and validating structural invariants
// (unique labels, resolvable branch targets, every block terminated).
func Build(p *grammar.Procedure) (*ir.Procedure, error) {
	blocks := make([]*ir.BasicBlock, 0, len(p.Blocks))
	nextID := 0
	for _, gb := range p.Blocks {
		b := &ir.BasicBlock{Label: gb.Label, Pos: toPos(gb.Pos)}
		for _, gi := range gb.Instructions {
			inst, err := buildInstruction(b, gi, &nextID)
			if err != nil {
				return nil, fmt.Errorf("block %q: %w", gb.Label, err)
			}
			b.Instructions = append(b.Instructions, inst)
		}
		term, err := buildTerminator(b, gb.Terminator, &nextID)
		if err != nil {
			return nil, fmt.Errorf("block %q: %w", gb.Label, err)
		}
		b.Term = term
		blocks = append(blocks, b)
	}
	return ir.NewProcedure(p.Name, blocks)
}

func buildValue(v grammar.Value) (ir.Operand, error) {
	switch {
	case v.Register != nil:
		return ir.Reg(*v.Register), nil
	case v.Integer != nil:
		return ir.ConstOperand(*v.Integer), nil
	case v.Ident != nil:
		return ir.Slot(*v.Ident), nil
	default:
		return ir.Operand{}, &ir.StructuralError{Code: ir.ErrMalformedOperand, Pos: toPos(v.Pos)}
	}
}

func buildOp(name string, pos lexer.Position) (ir.Opcode, error) {
	switch name {
	case "add":
		return ir.OpAdd, nil
	case "sub":
		return ir.OpSub, nil
	case "mul":
		return ir.OpMul, nil
	case "sdiv":
		return ir.OpSDiv, nil
	case "srem":
		return ir.OpSRem, nil
	default:
		return 0, &ir.StructuralError{Code: ir.ErrUnknownOpcode, Name: name, Pos: toPos(pos), Length: len(name)}
	}
}

func buildPred(name string, pos lexer.Position) (ir.Predicate, error) {
	switch name {
	case "eq":
		return ir.PredEQ, nil
	case "ne":
		return ir.PredNE, nil
	case "sgt":
		return ir.PredSGT, nil
	case "slt":
		return ir.PredSLT, nil
	case "sge":
		return ir.PredSGE, nil
	case "sle":
		return ir.PredSLE, nil
	default:
		return 0, &ir.StructuralError{Code: ir.ErrUnknownPredicate, Name: name, Pos: toPos(pos), Length: len(name)}
	}
}

func buildInstruction(b *ir.BasicBlock, gi *grammar.Instruction, nextID *int) (ir.Instruction, error) {
	id := *nextID
	*nextID++
	switch {
	case gi.AllocSlot != nil:
		return &ir.AllocSlotInst{ID: id, Local: gi.AllocSlot.Local, Blk: b}, nil
	case gi.Store != nil:
		val, err := buildValue(gi.Store.Value)
		if err != nil {
			return nil, err
		}
		return &ir.StoreInst{ID: id, Slot: gi.Store.Slot, Value: val, Blk: b}, nil
	case gi.Load != nil:
		return &ir.LoadInst{ID: id, Result: gi.Load.Result, Slot: gi.Load.Slot, Blk: b}, nil
	case gi.Binary != nil:
		op, err := buildOp(gi.Binary.Op, gi.Binary.Pos)
		if err != nil {
			return nil, err
		}
		left, err := buildValue(gi.Binary.Left)
		if err != nil {
			return nil, err
		}
		right, err := buildValue(gi.Binary.Right)
		if err != nil {
			return nil, err
		}
		return &ir.BinaryInst{ID: id, Result: gi.Binary.Result, Op: op, Left: left, Right: right, Blk: b}, nil
	case gi.ICmp != nil:
		pred, err := buildPred(gi.ICmp.Pred, gi.ICmp.Pos)
		if err != nil {
			return nil, err
		}
		left, err := buildValue(gi.ICmp.Left)
		if err != nil {
			return nil, err
		}
		right, err := buildValue(gi.ICmp.Right)
		if err != nil {
			return nil, err
		}
		return &ir.ICmpInst{ID: id, Result: gi.ICmp.Result, Pred: pred, Left: left, Right: right, Blk: b}, nil
	default:
		// Unreachable while the grammar's Instruction alternation stays
		// exhaustive; kept as a defensive structural error rather than a
		// panic if a future grammar variant adds an instruction shape here.
		return nil, &ir.StructuralError{Code: ir.ErrMalformedOperand, Pos: b.Pos}
	}
}

func buildTerminator(b *ir.BasicBlock, gt *grammar.Terminator, nextID *int) (ir.Terminator, error) {
	id := *nextID
	*nextID++
	switch {
	case gt.Jump != nil:
		return &ir.JumpInst{ID: id, Target: gt.Jump.Target, Blk: b}, nil
	case gt.Branch != nil:
		cond, err := buildValue(gt.Branch.Cond)
		if err != nil {
			return nil, err
		}
		return &ir.BranchInst{ID: id, Cond: cond, IfTrue: gt.Branch.IfTrue, IfFalse: gt.Branch.IfFalse, Blk: b}, nil
	case gt.Ret != nil:
		return &ir.RetInst{ID: id, Blk: b}, nil
	default:
		// Unreachable while the grammar's Terminator field stays
		// mandatory; kept as a defensive structural error for the same
		// reason as buildInstruction's default case above.
		return nil, &ir.StructuralError{Code: ir.ErrMissingTerminator, Label: b.Label, Pos: b.Pos}
	}
}
