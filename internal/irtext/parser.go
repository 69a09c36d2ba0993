// Package irtext parses the textual IR format into *ir.Procedure
// values, for the CLI and the language server alike; ir.Print renders
// a procedure back into the same format.
package irtext

import (
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"

	"dataflow/internal/ir"
	"dataflow/internal/irtext/grammar"
)

var irParser = buildParser()

func buildParser() *participle.Parser[grammar.AST] {
	p, err := participle.Build[grammar.AST](
		participle.Lexer(grammar.IRLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.UseLookahead(3),
	)
	if err != nil {
		panic(fmt.Errorf("failed to build irtext parser: %w", err))
	}
	return p
}

// ParseFile reads path and parses its first procedure.
func ParseFile(path string) (*ir.Procedure, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseSource(path, string(source))
}

// ParseSource parses source (named sourceName for diagnostics) and
// builds the first procedure it declares.
func ParseSource(sourceName, source string) (*ir.Procedure, error) {
	ast, err := irParser.ParseString(sourceName, source)
	if err != nil {
		return nil, err
	}
	if len(ast.Procedures) == 0 {
		return nil, fmt.Errorf("%s: no procedure declared", sourceName)
	}
	return Build(ast.Procedures[0])
}
