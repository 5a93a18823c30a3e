package board

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// boardLexer defines the lexical structure of board description files.
// The format is line-oriented but every statement is self-delimiting, so
// newlines are plain whitespace.
var boardLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Comments run to end of line
	{Name: "Comment", Pattern: `#[^\n]*`},

	// Whitespace
	{Name: "Whitespace", Pattern: `[\s\t\n\r]+`},

	// Statement keywords (case-insensitive)
	{Name: "KwBoard", Pattern: `(?i)\bboard\b`},
	{Name: "KwComponent", Pattern: `(?i)\bcomponent\b`},
	{Name: "KwWire", Pattern: `(?i)\bwire\b`},
	{Name: "KwGpio", Pattern: `(?i)\bgpio\b`},
	{Name: "KwValue", Pattern: `(?i)\bvalue\b`},
	{Name: "KwVf", Pattern: `(?i)\bvf\b`},
	{Name: "KwHigh", Pattern: `(?i)\bhigh\b`},
	{Name: "KwLow", Pattern: `(?i)\blow\b`},

	// Punctuation
	{Name: "Arrow", Pattern: `->`},
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	{Name: "Comma", Pattern: `,`},

	// Numbers
	{Name: "Real", Pattern: `[-+]?[0-9]+\.[0-9]+([eE][-+]?[0-9]+)?`},
	{Name: "Integer", Pattern: `[-+]?[0-9]+`},

	// Identifiers: component ids and type names such as "led-red"
	{Name: "Ident", Pattern: `[a-zA-Z][a-zA-Z0-9_-]*`},
})
