package grammar

import "github.com/alecthomas/participle/v2/lexer"

// AST is the root of a parsed source file: zero or more procedures.
type AST struct {
	Procedures []*Procedure `@@*`
}

// Procedure is "proc <name> { <block>* }".
type Procedure struct {
	Name   string   `"proc" @Ident "{"`
	Blocks []*Block `@@* "}"`
}

// Block is a label followed by straight-line instructions and exactly
// one terminator. Pos is populated by participle with the position of
// the label token, carried through to the builder so structural errors
// (duplicate label, missing terminator, undefined successor) can point
// at real source coordinates instead of a fixed line.
type Block struct {
	Pos          lexer.Position
	Label        string         `@Ident ":"`
	Instructions []*Instruction `@@*`
	Terminator   *Terminator    `@@`
}

// Instruction is one of the non-terminator opcodes.
type Instruction struct {
	AllocSlot *AllocSlot `  @@`
	Store     *Store     `| @@`
	Load      *Load      `| @@`
	Binary    *Binary     `| @@`
	ICmp      *ICmp       `| @@`
}

// Value is a single operand: a virtual register, an integer constant,
// or a bare identifier naming a local slot. Pos marks where the
// operand starts, for malformed-operand diagnostics.
type Value struct {
	Pos      lexer.Position
	Register *string `  @Register`
	Integer  *int64  `| @Integer`
	Ident    *string `| @Ident`
}

// AllocSlot is "<local> = alloc-slot".
type AllocSlot struct {
	Local string `@Ident "=" "alloc-slot"`
}

// Store is "store <value>, <local>".
type Store struct {
	Value Value  `"store" @@ ","`
	Slot  string `@Ident`
}

// Load is "<reg> = load <local>".
type Load struct {
	Result string `@Register "=" "load"`
	Slot   string `@Ident`
}

// Binary is "<reg> = <op> <value>, <value>" for add/sub/mul/sdiv/srem.
// Pos marks the instruction's start, used to locate an unknown opcode
// keyword (the grammar's keyword alternation normally rejects these at
// parse time, but buildOp still validates defensively).
type Binary struct {
	Pos    lexer.Position
	Result string `@Register "="`
	Op     string `@("add" | "sub" | "mul" | "sdiv" | "srem")`
	Left   Value  `@@ ","`
	Right  Value  `@@`
}

// ICmp is "<reg> = icmp <pred> <value>, <value>".
type ICmp struct {
	Pos    lexer.Position
	Result string `@Register "=" "icmp"`
	Pred   string `@("eq" | "ne" | "sgt" | "slt" | "sge" | "sle")`
	Left   Value  `@@ ","`
	Right  Value  `@@`
}

// Terminator is one of jump, conditional branch, or return.
type Terminator struct {
	Branch *Branch `  @@`
	Jump   *Jump   `| @@`
	Ret    *Ret    `| @@`
}

// Jump is "br.j <label>". Pos records where the instruction starts; an
// undefined-successor diagnostic is located at the enclosing block's
// label (Block.Pos), not here.
type Jump struct {
	Pos    lexer.Position
	Target string `"br.j" @Ident`
}

// Branch is "br.cond <value>, <label>, <label>". Pos records where the
// instruction starts; as with Jump, an undefined-successor diagnostic
// is located at the enclosing block's label instead.
type Branch struct {
	Pos     lexer.Position
	Cond    Value  `"br.cond" @@ ","`
	IfTrue  string `@Ident ","`
	IfFalse string `@Ident`
}

// Ret is "ret".
type Ret struct {
	Present bool `@"ret"`
}
