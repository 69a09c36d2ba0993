package diag

// Error codes for the dataflow toolchain.
//
// Error code ranges:
// D0001-D0099: textual IR syntax errors (lexer/parser)
// D0100-D0199: structural IR errors (duplicate label, missing terminator, bad reference)
// D0200-D0299: analysis-time diagnostics (reported, not fatal)

const (
	// D0001: lexer/parser failed to recognize the input as the grammar
	ErrorSyntax = "D0001"

	// D0002: an operand did not resolve to a register, slot, or constant
	ErrorMalformedOperand = "D0002"

	// D0003: an opcode keyword was not one of the known arithmetic ops
	ErrorUnknownOpcode = "D0003"

	// D0004: an icmp predicate keyword was not one of the known predicates
	ErrorUnknownPredicate = "D0004"

	// D0100: two blocks in the same procedure declared the same label
	ErrorDuplicateLabel = "D0100"

	// D0101: a block had no terminating instruction
	ErrorMissingTerminator = "D0101"

	// D0102: a terminator named a label with no matching block
	ErrorUndefinedSuccessor = "D0102"

	// D0200: a division or remainder instruction has a divisor interval
	// that may contain zero
	WarningPossibleDivByZero = "D0200"
)

// GetErrorDescription returns a human-readable description of the code.
func GetErrorDescription(code string) string {
	switch code {
	case ErrorSyntax:
		return "input does not match the textual IR grammar"
	case ErrorMalformedOperand:
		return "operand is not a register, a local slot, or an integer constant"
	case ErrorUnknownOpcode:
		return "opcode keyword is not one of add, sub, mul, sdiv, srem"
	case ErrorUnknownPredicate:
		return "predicate keyword is not one of eq, ne, sgt, slt, sge, sle"
	case ErrorDuplicateLabel:
		return "block label is declared more than once in this procedure"
	case ErrorMissingTerminator:
		return "block has no br.j, br.cond, or ret"
	case ErrorUndefinedSuccessor:
		return "terminator names a label with no matching block"
	case WarningPossibleDivByZero:
		return "divisor interval may contain zero"
	default:
		return "unknown diagnostic code"
	}
}

// IsWarning reports whether code is in the analysis-time (non-fatal)
// range rather than the syntax/structural (fatal) ranges.
func IsWarning(code string) bool {
	return code >= "D0200" && code < "D0300"
}
