package diag

import "fmt"

// Builder provides a fluent interface for constructing a Diagnostic.
type Builder struct {
	d Diagnostic
}

// New starts an error-level diagnostic at pos.
func New(code, message string, pos Position) *Builder {
	return &Builder{d: Diagnostic{Level: Error, Code: code, Message: message, Position: pos, Length: 1}}
}

// NewWarning starts a warning-level diagnostic at pos.
func NewWarning(code, message string, pos Position) *Builder {
	return &Builder{d: Diagnostic{Level: Warning, Code: code, Message: message, Position: pos, Length: 1}}
}

// WithLength sets the span length the caret underlines.
func (b *Builder) WithLength(length int) *Builder {
	b.d.Length = length
	return b
}

// WithSuggestion adds a plain-text suggestion.
func (b *Builder) WithSuggestion(message string) *Builder {
	b.d.Suggestions = append(b.d.Suggestions, Suggestion{Message: message})
	return b
}

// WithReplacement adds a suggestion carrying replacement text.
func (b *Builder) WithReplacement(message, replacement string) *Builder {
	b.d.Suggestions = append(b.d.Suggestions, Suggestion{Message: message, Replacement: replacement})
	return b
}

// WithNote appends a note line.
func (b *Builder) WithNote(note string) *Builder {
	b.d.Notes = append(b.d.Notes, note)
	return b
}

// WithHelp sets the help line.
func (b *Builder) WithHelp(help string) *Builder {
	b.d.HelpText = help
	return b
}

// Build returns the completed Diagnostic.
func (b *Builder) Build() Diagnostic {
	return b.d
}

// DuplicateLabel reports two blocks sharing a label.
func DuplicateLabel(label string, pos Position) Diagnostic {
	return New(ErrorDuplicateLabel, fmt.Sprintf("duplicate block label %q", label), pos).
		WithLength(len(label)).
		WithHelp("rename one of the two blocks").
		Build()
}

// MissingTerminator reports a block falling off the end without a
// br.j/br.cond/ret.
func MissingTerminator(label string, pos Position) Diagnostic {
	return New(ErrorMissingTerminator, fmt.Sprintf("block %q has no terminator", label), pos).
		WithHelp("end the block with br.j, br.cond, or ret").
		Build()
}

// UndefinedSuccessor reports a terminator naming an unknown label.
func UndefinedSuccessor(from, target string, pos Position) Diagnostic {
	return New(ErrorUndefinedSuccessor, fmt.Sprintf("block %q: undefined successor label %q", from, target), pos).
		WithLength(len(target)).
		WithHelp("declare a block with this label, or fix the typo").
		Build()
}

// MalformedOperand reports an operand that parsed but did not resolve.
func MalformedOperand(pos Position) Diagnostic {
	return New(ErrorMalformedOperand, "malformed operand", pos).Build()
}

// UnknownOpcode reports an unrecognized arithmetic opcode keyword.
func UnknownOpcode(name string, pos Position) Diagnostic {
	return New(ErrorUnknownOpcode, fmt.Sprintf("unknown opcode %q", name), pos).
		WithSuggestion("expected one of: add, sub, mul, sdiv, srem").
		Build()
}

// UnknownPredicate reports an unrecognized icmp predicate keyword.
func UnknownPredicate(name string, pos Position) Diagnostic {
	return New(ErrorUnknownPredicate, fmt.Sprintf("unknown predicate %q", name), pos).
		WithSuggestion("expected one of: eq, ne, sgt, slt, sge, sle").
		Build()
}

// PossibleDivByZero warns that a divisor's computed interval may
// contain zero.
func PossibleDivByZero(reg string, pos Position) Diagnostic {
	return NewWarning(WarningPossibleDivByZero, fmt.Sprintf("divisor %s may be zero here", reg), pos).Build()
}
