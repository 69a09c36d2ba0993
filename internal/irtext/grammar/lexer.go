// Package grammar defines the lexical and syntactic grammar of the
// textual IR format: the participle lexer and the struct-tag grammar
// that parses it into an AST, mirroring how the rest of this corpus
// separates lexer/grammar/parser into their own small files.
package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// IRLexer tokenizes procedure text: labels, locals, and keywords share
// the Ident token class (disambiguated by the grammar, not the lexer);
// virtual registers get their own class since the leading "%" is never
// legal in an identifier.
var IRLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Comment", `//[^\n]*`, nil},
		{"Register", `%[a-zA-Z_][a-zA-Z0-9_]*`, nil},
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_.-]*`, nil},
		{"Integer", `-?[0-9]+`, nil},
		{"Punctuation", `[{}:,=]`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
