// Package grid owns the 2D cell array and the component instances placed
// on it. The propagation engine treats a Grid as a read-only snapshot;
// only placement operations mutate it.
package grid

import (
	"fmt"
	"sort"

	"github.com/hsupple6/CircuitWiz-sub002/pkg/modules"
)

// Position is a grid coordinate.
type Position struct {
	X, Y int
}

// String formats the position as "(x,y)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Cell is one grid square. An occupied cell carries a back-reference to
// its owning component by id; it never owns the component.
type Cell struct {
	Pos       Position
	Occupied  bool
	Component string // owning component id, set iff Occupied
	Kind      modules.Kind
	CellIndex int // index of this cell within the owning component's layout

	// Per-cell overrides of module defaults. Nil means "use the default
	// from the module definition".
	Resistance     *float64
	ForwardVoltage *float64
}

// Component is a placed circuit part spanning one or more cells. The
// component owns its cell position list; cells refer back by id only.
type Component struct {
	ID    string
	Kind  modules.Kind
	Def   *modules.Definition
	Cells []Position // ordered by cell index
}

// Grid is the board: a bounded 2D array of cells plus the component table.
type Grid struct {
	width, height int
	cells         [][]Cell
	components    map[string]*Component
}

// New creates an empty grid of the given dimensions.
func New(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("grid: invalid dimensions %dx%d", width, height)
	}
	cells := make([][]Cell, height)
	for y := range cells {
		cells[y] = make([]Cell, width)
		for x := range cells[y] {
			cells[y][x].Pos = Position{X: x, Y: y}
		}
	}
	return &Grid{
		width:      width,
		height:     height,
		cells:      cells,
		components: make(map[string]*Component),
	}, nil
}

// Width returns the grid width in cells.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in cells.
func (g *Grid) Height() int { return g.height }

// Contains reports whether the position lies inside the grid.
func (g *Grid) Contains(p Position) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// CellAt returns the cell at the given position, or false if the position
// is outside the grid.
func (g *Grid) CellAt(p Position) (*Cell, bool) {
	if !g.Contains(p) {
		return nil, false
	}
	return &g.cells[p.Y][p.X], true
}

// Component returns the placed component with the given id.
func (g *Grid) Component(id string) (*Component, bool) {
	c, ok := g.components[id]
	return c, ok
}

// Components returns all placed components sorted by id, so that callers
// iterating the table get a deterministic order.
func (g *Grid) Components() []*Component {
	out := make([]*Component, 0, len(g.components))
	for _, c := range g.components {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Place puts a new component instance on the grid. The cell list must
// match the module definition's layout exactly, every cell must be inside
// the grid, and no cell may already be occupied. Cells are never shared
// between components.
func (g *Grid) Place(id string, def *modules.Definition, cells []Position) (*Component, error) {
	if id == "" {
		return nil, fmt.Errorf("grid: component id is empty")
	}
	if def == nil {
		return nil, fmt.Errorf("grid: component %s has no module definition", id)
	}
	if _, exists := g.components[id]; exists {
		return nil, fmt.Errorf("grid: component id %s already placed", id)
	}
	if len(cells) != def.CellCount() {
		return nil, fmt.Errorf("grid: component %s needs %d cells, got %d", id, def.CellCount(), len(cells))
	}
	for _, p := range cells {
		cell, ok := g.CellAt(p)
		if !ok {
			return nil, fmt.Errorf("grid: cell %s outside %dx%d grid", p, g.width, g.height)
		}
		if cell.Occupied {
			return nil, fmt.Errorf("grid: cell %s already occupied by %s", p, cell.Component)
		}
	}

	comp := &Component{
		ID:    id,
		Kind:  def.Kind,
		Def:   def,
		Cells: append([]Position(nil), cells...),
	}
	for i, p := range cells {
		cell := &g.cells[p.Y][p.X]
		cell.Occupied = true
		cell.Component = id
		cell.Kind = def.Kind
		cell.CellIndex = i
	}
	g.components[id] = comp
	return comp, nil
}

// Remove deletes a component and clears its cells.
func (g *Grid) Remove(id string) error {
	comp, ok := g.components[id]
	if !ok {
		return fmt.Errorf("grid: component %s not placed", id)
	}
	for _, p := range comp.Cells {
		cell := &g.cells[p.Y][p.X]
		*cell = Cell{Pos: p}
	}
	delete(g.components, id)
	return nil
}

// SetResistance stores a per-cell resistance override in ohms.
func (g *Grid) SetResistance(p Position, ohms float64) error {
	cell, ok := g.CellAt(p)
	if !ok || !cell.Occupied {
		return fmt.Errorf("grid: no component cell at %s", p)
	}
	cell.Resistance = &ohms
	return nil
}

// SetForwardVoltage stores a per-cell forward-voltage override in volts.
func (g *Grid) SetForwardVoltage(p Position, volts float64) error {
	cell, ok := g.CellAt(p)
	if !ok || !cell.Occupied {
		return fmt.Errorf("grid: no component cell at %s", p)
	}
	cell.ForwardVoltage = &volts
	return nil
}

// ComponentCells builds the component-to-cells index for one pass over the
// snapshot. Each slice is ordered by cell index, so slice position equals
// cell index. Callers use this instead of rescanning the grid per
// component.
func (g *Grid) ComponentCells() map[string][]Position {
	index := make(map[string][]Position, len(g.components))
	for id, comp := range g.components {
		index[id] = append([]Position(nil), comp.Cells...)
	}
	return index
}
