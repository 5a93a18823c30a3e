// Package board parses the text board-description format and loads it
// into a grid snapshot the engine can simulate.
package board

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
)

// Parser parses board description files.
type Parser struct {
	parser *participle.Parser[File]
}

// NewParser builds the board file parser.
func NewParser() (*Parser, error) {
	parser, err := participle.Build[File](
		participle.Lexer(boardLexer),
		participle.Elide("Comment", "Whitespace"),
		participle.UseLookahead(2),
	)
	if err != nil {
		return nil, fmt.Errorf("board: failed to build parser: %w", err)
	}
	return &Parser{parser: parser}, nil
}

// Parse parses a board file from a reader.
func (p *Parser) Parse(r io.Reader) (*File, error) {
	file, err := p.parser.Parse("", r)
	if err != nil {
		return nil, fmt.Errorf("board: parse error: %w", err)
	}
	return file, nil
}

// ParseString parses a board file from a string.
func (p *Parser) ParseString(input string) (*File, error) {
	file, err := p.parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("board: parse error: %w", err)
	}
	return file, nil
}

// ParseFile parses a board file from disk.
func (p *Parser) ParseFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("board: failed to open file: %w", err)
	}
	defer f.Close()
	return p.Parse(f)
}
