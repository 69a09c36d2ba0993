package ir

import "fmt"

// AllocSlotInst declares a new local variable slot. Its Name is the
// local's identity for the rest of the procedure.
type AllocSlotInst struct {
	ID    int
	Local string
	Blk   *BasicBlock
}

func (i *AllocSlotInst) Opcode() Opcode       { return OpAllocSlot }
func (i *AllocSlotInst) Name() string         { return i.Local }
func (i *AllocSlotInst) Operands() []Operand  { return nil }
func (i *AllocSlotInst) Block() *BasicBlock   { return i.Blk }
func (i *AllocSlotInst) IsTerminator() bool   { return false }
func (i *AllocSlotInst) String() string       { return fmt.Sprintf("%s = alloc-slot", i.Local) }

// StoreInst writes Value into the local named by Slot.
type StoreInst struct {
	ID    int
	Slot  string
	Value Operand
	Blk   *BasicBlock
}

func (i *StoreInst) Opcode() Opcode      { return OpStore }
func (i *StoreInst) Name() string        { return "" }
func (i *StoreInst) Operands() []Operand { return []Operand{i.Value, Slot(i.Slot)} }
func (i *StoreInst) Block() *BasicBlock  { return i.Blk }
func (i *StoreInst) IsTerminator() bool  { return false }
func (i *StoreInst) String() string {
	return fmt.Sprintf("store %s, %s", i.Value, i.Slot)
}

// LoadInst reads the local named by Slot into a fresh virtual register.
type LoadInst struct {
	ID     int
	Result string
	Slot   string
	Blk    *BasicBlock
}

func (i *LoadInst) Opcode() Opcode      { return OpLoad }
func (i *LoadInst) Name() string        { return i.Result }
func (i *LoadInst) Operands() []Operand { return []Operand{Slot(i.Slot)} }
func (i *LoadInst) Block() *BasicBlock  { return i.Blk }
func (i *LoadInst) IsTerminator() bool  { return false }
func (i *LoadInst) String() string {
	return fmt.Sprintf("%s = load %s", i.Result, i.Slot)
}

// BinaryInst is add/sub/mul/sdiv/srem: Result = Op(Left, Right).
type BinaryInst struct {
	ID     int
	Result string
	Op     Opcode // one of OpAdd, OpSub, OpMul, OpSDiv, OpSRem
	Left   Operand
	Right  Operand
	Blk    *BasicBlock
}

func (i *BinaryInst) Opcode() Opcode      { return i.Op }
func (i *BinaryInst) Name() string        { return i.Result }
func (i *BinaryInst) Operands() []Operand { return []Operand{i.Left, i.Right} }
func (i *BinaryInst) Block() *BasicBlock  { return i.Blk }
func (i *BinaryInst) IsTerminator() bool  { return false }
func (i *BinaryInst) String() string {
	return fmt.Sprintf("%s = %s %s, %s", i.Result, i.Op, i.Left, i.Right)
}

// ICmpInst is Result = icmp <Pred> Left, Right, producing a boolean
// virtual register.
type ICmpInst struct {
	ID     int
	Result string
	Pred   Predicate
	Left   Operand
	Right  Operand
	Blk    *BasicBlock
}

func (i *ICmpInst) Opcode() Opcode      { return OpICmp }
func (i *ICmpInst) Name() string        { return i.Result }
func (i *ICmpInst) Operands() []Operand { return []Operand{i.Left, i.Right} }
func (i *ICmpInst) Block() *BasicBlock  { return i.Blk }
func (i *ICmpInst) IsTerminator() bool  { return false }
func (i *ICmpInst) String() string {
	return fmt.Sprintf("%s = icmp %s %s, %s", i.Result, i.Pred, i.Left, i.Right)
}

// JumpInst is an unconditional branch to Target.
type JumpInst struct {
	ID     int
	Target string
	Blk    *BasicBlock
}

func (i *JumpInst) Opcode() Opcode        { return OpJump }
func (i *JumpInst) Name() string          { return "" }
func (i *JumpInst) Operands() []Operand   { return nil }
func (i *JumpInst) Block() *BasicBlock    { return i.Blk }
func (i *JumpInst) IsTerminator() bool    { return true }
func (i *JumpInst) Successors() []string  { return []string{i.Target} }
func (i *JumpInst) String() string        { return fmt.Sprintf("br.j %s", i.Target) }

// BranchInst is a conditional branch: Cond names a boolean virtual
// register (ordinarily the result of an icmp in the same block).
type BranchInst struct {
	ID      int
	Cond    Operand
	IfTrue  string
	IfFalse string
	Blk     *BasicBlock
}

func (i *BranchInst) Opcode() Opcode      { return OpBranch }
func (i *BranchInst) Name() string        { return "" }
func (i *BranchInst) Operands() []Operand { return []Operand{i.Cond} }
func (i *BranchInst) Block() *BasicBlock  { return i.Blk }
func (i *BranchInst) IsTerminator() bool  { return true }
func (i *BranchInst) Successors() []string {
	return []string{i.IfTrue, i.IfFalse}
}
func (i *BranchInst) String() string {
	return fmt.Sprintf("br.cond %s, %s, %s", i.Cond, i.IfTrue, i.IfFalse)
}

// RetInst ends the procedure along this path.
type RetInst struct {
	ID  int
	Blk *BasicBlock
}

func (i *RetInst) Opcode() Opcode       { return OpRet }
func (i *RetInst) Name() string         { return "" }
func (i *RetInst) Operands() []Operand  { return nil }
func (i *RetInst) Block() *BasicBlock   { return i.Blk }
func (i *RetInst) IsTerminator() bool   { return true }
func (i *RetInst) Successors() []string { return nil }
func (i *RetInst) String() string       { return "ret" }

// FindLocal scans a block, in order, for the first Load instruction
// that produced the named register and reports the local slot it read, if
// any. Used by edge refinement to recognize "var vs const"/"var vs
// var" comparisons; a register that traces to anything other than a
// load of a local is treated as opaque.
func FindLocal(b *BasicBlock, regName string) (slot string, ok bool) {
	for _, inst := range b.Instructions {
		if ld, isLoad := inst.(*LoadInst); isLoad && ld.Result == regName {
			return ld.Slot, true
		}
	}
	return "", false
}

// FindICmp scans a block for the icmp instruction that produced the
// named boolean register.
func FindICmp(b *BasicBlock, regName string) (*ICmpInst, bool) {
	for _, inst := range b.Instructions {
		if cmp, isCmp := inst.(*ICmpInst); isCmp && cmp.Result == regName {
			return cmp, true
		}
	}
	return nil, false
}
