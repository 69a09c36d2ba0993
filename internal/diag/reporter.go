package diag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"

	"dataflow/internal/ir"
)

// Reporter renders Diagnostics against one source file, with a
// context line before and after the offending line and a caret
// underline beneath it.
type Reporter struct {
	filename string
	lines    []string
}

// NewReporter creates a Reporter for filename/source.
func NewReporter(filename, source string) *Reporter {
	return &Reporter{filename: filename, lines: strings.Split(source, "\n")}
}

// FromParseError converts a failure from irtext.ParseFile/ParseSource
// into a Diagnostic. The failure is either a genuine participle parse
// error (extracting the line/column it reports) or a *ir.StructuralError
// from the builder/NewProcedure (a duplicate label, a missing
// terminator, an undefined successor, or an unknown opcode/predicate),
// which already carries its own code and position and is rendered via
// the matching domain-specific constructor below instead of collapsing
// to a generic syntax diagnostic.
func FromParseError(err error) Diagnostic {
	var structErr *ir.StructuralError
	if errors.As(err, &structErr) {
		return fromStructuralError(structErr)
	}

	var pos Position
	var perr participle.Error
	if ok := asParticipleError(err, &perr); ok {
		p := perr.Position()
		pos = Position{Line: p.Line, Column: p.Column}
	} else {
		pos = Position{Line: 1, Column: 1}
	}
	return New(ErrorSyntax, err.Error(), pos).Build()
}

func fromStructuralError(e *ir.StructuralError) Diagnostic {
	pos := Position{Line: e.Pos.Line, Column: e.Pos.Column}
	switch e.Code {
	case ir.ErrDuplicateLabel:
		return DuplicateLabel(e.Label, pos)
	case ir.ErrMissingTerminator:
		return MissingTerminator(e.Label, pos)
	case ir.ErrUndefinedSuccessor:
		return UndefinedSuccessor(e.Label, e.Name, pos)
	case ir.ErrUnknownOpcode:
		return UnknownOpcode(e.Name, pos)
	case ir.ErrUnknownPredicate:
		return UnknownPredicate(e.Name, pos)
	case ir.ErrMalformedOperand:
		return MalformedOperand(pos)
	default:
		return New(ErrorSyntax, e.Error(), pos).Build()
	}
}

func asParticipleError(err error, target *participle.Error) bool {
	type unwrapper interface {
		Unwrap() error
	}
	for e := err; e != nil; {
		if pe, ok := e.(participle.Error); ok {
			*target = pe
			return true
		}
		u, ok := e.(unwrapper)
		if !ok {
			return false
		}
		e = u.Unwrap()
	}
	return false
}

// Format renders d as a Rust-style caret diagnostic with ANSI color.
func (r *Reporter) Format(d Diagnostic) string {
	var result strings.Builder

	levelColor := r.levelColor(d.Level)
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	if d.Code != "" {
		result.WriteString(fmt.Sprintf("%s[%s]: %s\n", levelColor(string(d.Level)), d.Code, d.Message))
	} else {
		result.WriteString(fmt.Sprintf("%s: %s\n", levelColor(string(d.Level)), d.Message))
	}

	width := r.lineNumberWidth(d.Position.Line)
	indent := strings.Repeat(" ", width)

	result.WriteString(fmt.Sprintf("%s %s %s:%d:%d\n", indent, dim("-->"), r.filename, d.Position.Line, d.Position.Column))
	result.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))

	if d.Position.Line > 1 && d.Position.Line-1 < len(r.lines) {
		result.WriteString(fmt.Sprintf("%s %s %s\n",
			dim(fmt.Sprintf("%*d", width, d.Position.Line-1)), dim("│"), r.lines[d.Position.Line-2]))
	}

	if d.Position.Line <= len(r.lines) && d.Position.Line > 0 {
		line := r.lines[d.Position.Line-1]
		result.WriteString(fmt.Sprintf("%s %s %s\n", bold(fmt.Sprintf("%*d", width, d.Position.Line)), dim("│"), line))
		result.WriteString(fmt.Sprintf("%s %s %s\n", indent, dim("│"), r.marker(d.Position.Column, d.Length, d.Level)))
	}

	if d.Position.Line < len(r.lines) {
		result.WriteString(fmt.Sprintf("%s %s %s\n",
			dim(fmt.Sprintf("%*d", width, d.Position.Line+1)), dim("│"), r.lines[d.Position.Line]))
	}

	if len(d.Suggestions) > 0 {
		result.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))
		suggestionColor := color.New(color.FgCyan).SprintFunc()
		for i, s := range d.Suggestions {
			if i == 0 {
				result.WriteString(fmt.Sprintf("%s %s %s: %s\n", indent, suggestionColor("help"), suggestionColor("try"), s.Message))
			} else {
				result.WriteString(fmt.Sprintf("%s %s %s\n", indent, suggestionColor("    "), s.Message))
			}
			if s.Replacement != "" {
				result.WriteString(fmt.Sprintf("%s %s %s\n", indent, suggestionColor("│"), suggestionColor(s.Replacement)))
			}
		}
	}

	for _, note := range d.Notes {
		noteColor := color.New(color.FgBlue).SprintFunc()
		result.WriteString(fmt.Sprintf("%s %s %s %s\n", indent, dim("│"), noteColor("note:"), note))
	}

	if d.HelpText != "" {
		helpColor := color.New(color.FgGreen).SprintFunc()
		result.WriteString(fmt.Sprintf("%s %s %s %s\n", indent, dim("│"), helpColor("help:"), d.HelpText))
	}

	result.WriteString("\n")
	return result.String()
}

func (r *Reporter) levelColor(level Level) func(...interface{}) string {
	switch level {
	case Error:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case Note:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	case Help:
		return color.New(color.FgGreen, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

func (r *Reporter) marker(column, length int, level Level) string {
	if length <= 0 {
		length = 1
	}
	spaces := strings.Repeat(" ", max(0, column-1))

	markerColor := color.New(color.FgRed, color.Bold).SprintFunc()
	if level == Warning {
		markerColor = color.New(color.FgYellow, color.Bold).SprintFunc()
	}
	return spaces + markerColor(strings.Repeat("^", length))
}

func (r *Reporter) lineNumberWidth(line int) int {
	width := len(fmt.Sprintf("%d", line))
	if width < 3 {
		width = 3
	}
	return width
}
