package board

import (
	"fmt"
	"io"
	"log"

	"github.com/hsupple6/CircuitWiz-sub002/pkg/engine"
	"github.com/hsupple6/CircuitWiz-sub002/pkg/grid"
	"github.com/hsupple6/CircuitWiz-sub002/pkg/modules"
	"github.com/hsupple6/CircuitWiz-sub002/pkg/wire"
)

// Board is a loaded snapshot: the populated grid, the raw wire segments,
// and the GPIO pin levels declared in the file.
type Board struct {
	Grid     *grid.Grid
	Segments []wire.Segment
	GPIO     engine.GPIOSnapshot
}

// Load parses a board description and builds the snapshot. Statements
// referencing unknown module types or unplaceable cells are skipped with
// a logged anomaly; a half-edited board is a normal state, not an error.
// Only a missing or invalid board declaration is fatal.
func Load(r io.Reader, reg *modules.Registry, logger *log.Logger) (*Board, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	parser, err := NewParser()
	if err != nil {
		return nil, err
	}
	file, err := parser.Parse(r)
	if err != nil {
		return nil, err
	}
	return build(file, reg, logger)
}

// LoadFile loads a board description from disk.
func LoadFile(path string, reg *modules.Registry, logger *log.Logger) (*Board, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	parser, err := NewParser()
	if err != nil {
		return nil, err
	}
	file, err := parser.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return build(file, reg, logger)
}

func build(file *File, reg *modules.Registry, logger *log.Logger) (*Board, error) {
	var decl *BoardDecl
	for _, st := range file.Statements {
		if st.Board != nil {
			decl = st.Board
			break
		}
	}
	if decl == nil {
		return nil, fmt.Errorf("board: missing board declaration")
	}
	g, err := grid.New(decl.Width, decl.Height)
	if err != nil {
		return nil, err
	}

	b := &Board{Grid: g, GPIO: make(engine.GPIOSnapshot)}
	for _, st := range file.Statements {
		switch {
		case st.Component != nil:
			loadComponent(b, st.Component, reg, logger)
		case st.Wire != nil:
			b.Segments = append(b.Segments, wire.Segment{
				A: grid.Position{X: st.Wire.A.X, Y: st.Wire.A.Y},
				B: grid.Position{X: st.Wire.B.X, Y: st.Wire.B.Y},
			})
		case st.Gpio != nil:
			level := engine.Low
			if st.Gpio.High {
				level = engine.High
			}
			b.GPIO[st.Gpio.Pin] = level
		}
	}
	return b, nil
}

func loadComponent(b *Board, decl *ComponentDecl, reg *modules.Registry, logger *log.Logger) {
	def, err := reg.Lookup(decl.Type)
	if err != nil {
		logger.Printf("board: skipping component %s: %v", decl.ID, err)
		return
	}
	cells := make([]grid.Position, len(decl.Cells))
	for i, p := range decl.Cells {
		cells[i] = grid.Position{X: p.X, Y: p.Y}
	}
	if _, err := b.Grid.Place(decl.ID, def, cells); err != nil {
		logger.Printf("board: skipping component %s: %v", decl.ID, err)
		return
	}
	if decl.Value != nil {
		if err := b.Grid.SetResistance(cells[0], *decl.Value); err != nil {
			logger.Printf("board: component %s: %v", decl.ID, err)
		}
	}
	if decl.Forward != nil {
		if err := b.Grid.SetForwardVoltage(cells[0], *decl.Forward); err != nil {
			logger.Printf("board: component %s: %v", decl.ID, err)
		}
	}
}
