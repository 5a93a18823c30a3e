package engine

import (
	"io"
	"log"
	"math"

	"github.com/hsupple6/CircuitWiz-sub002/pkg/grid"
	"github.com/hsupple6/CircuitWiz-sub002/pkg/modules"
	"github.com/hsupple6/CircuitWiz-sub002/pkg/wire"
)

// TransferFunc computes the per-cell output of one component kind. It is
// handed the pass so it can read the GPIO snapshot, adjust the circuit
// current, and push uniform multi-cell updates.
type TransferFunc func(p *Pass, comp *grid.Component, cell *grid.Cell, inV float64) (outV float64, powered bool, status Status)

// Engine runs propagation passes. Transfer functions are registered once
// at construction; the engine itself carries no per-pass state.
type Engine struct {
	transfers map[modules.Kind]TransferFunc
	log       *log.Logger
}

// New creates an engine with the built-in transfer table. A nil logger
// discards anomaly logs.
func New(logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	e := &Engine{
		transfers: make(map[modules.Kind]TransferFunc),
		log:       logger,
	}
	e.RegisterTransfer(modules.KindBattery, transferPowerSource)
	e.RegisterTransfer(modules.KindPowerSupply, transferPowerSource)
	e.RegisterTransfer(modules.KindMicrocontroller, transferMicrocontroller)
	e.RegisterTransfer(modules.KindResistor, transferResistor)
	e.RegisterTransfer(modules.KindLED, transferLED)
	e.RegisterTransfer(modules.KindWireTerminal, transferWireTerminal)
	return e
}

// RegisterTransfer installs or replaces the transfer function for a kind.
func (e *Engine) RegisterTransfer(kind modules.Kind, fn TransferFunc) {
	e.transfers[kind] = fn
}

// Pass is the state of one propagation pass. It owns the output map for
// the duration of the pass; the map is handed to the Result and never
// merged with a previous pass's map.
type Pass struct {
	eng      *Engine
	grid     *grid.Grid
	networks []*wire.Network
	segments []wire.Segment
	gpio     GPIOSnapshot
	states   map[string]CellState
	visited  map[string]bool
	cells    map[string][]grid.Position
	current  float64
}

// GPIO returns the pass's GPIO snapshot.
func (p *Pass) GPIO() GPIOSnapshot { return p.gpio }

// Current returns the circuit current established so far on this branch.
func (p *Pass) Current() float64 { return p.current }

// SetCurrent updates the circuit current. Non-finite values are dropped.
func (p *Pass) SetCurrent(amps float64) {
	if !isFinite(amps) {
		return
	}
	p.current = amps
}

// Grounded reports whether any wire network touching the component's
// cells is flagged grounded.
func (p *Pass) Grounded(comp *grid.Component) bool {
	for _, n := range p.networks {
		if n.Grounded && n.TouchesAny(p.cells[comp.ID]) {
			return true
		}
	}
	return false
}

// UpdateComponent writes the same state record to every cell of the
// component and marks those cells visited. Multi-cell components use this
// so that all cells of one physical part report consistent state even
// though the traversal enters at a single cell.
func (p *Pass) UpdateComponent(comp *grid.Component, st CellState) {
	for i := range p.cells[comp.ID] {
		key := StateKey(comp.ID, i)
		p.states[key] = st
		p.visited[key] = true
	}
}

// Run performs one full propagation pass. The grid, wire networks and
// GPIO snapshot are treated as an immutable snapshot for the duration;
// the only mutation is the per-network aggregates, which Run resets and
// recomputes.
func (e *Engine) Run(g *grid.Grid, networks []*wire.Network, gpio GPIOSnapshot) *Result {
	p := &Pass{
		eng:      e,
		grid:     g,
		networks: networks,
		gpio:     gpio,
		states:   make(map[string]CellState),
		visited:  make(map[string]bool),
		cells:    g.ComponentCells(),
	}
	for _, n := range networks {
		n.ResetAggregates()
		p.segments = append(p.segments, n.Segments...)
	}

	// Ground marking first: a network is grounded when any segment
	// attaches to a ground-returning cell. LEDs read this flag during
	// traversal, so it has to be complete before the walk starts.
	for _, comp := range g.Components() {
		for i, pos := range comp.Cells {
			pin, ok := comp.Def.Pin(i)
			if !ok || pin.Role != modules.RoleGND {
				continue
			}
			for _, n := range networks {
				if n.Touches(pos) {
					n.Grounded = true
				}
			}
		}
	}

	// Depth-first from every power-source component not yet visited.
	// Each source cell starts its own branch with zero circuit current.
	for _, comp := range g.Components() {
		if !comp.Kind.IsSource() {
			continue
		}
		for i, pos := range comp.Cells {
			if p.visited[StateKey(comp.ID, i)] {
				continue
			}
			cell, ok := g.CellAt(pos)
			if !ok {
				e.log.Printf("engine: component %s references cell %s outside grid", comp.ID, pos)
				continue
			}
			p.current = 0
			p.visit(comp, cell, 0)
		}
	}

	// Every occupied cell the walk never reached reports unpowered.
	for _, comp := range g.Components() {
		for i := range comp.Cells {
			key := StateKey(comp.ID, i)
			if _, ok := p.states[key]; !ok {
				p.states[key] = CellState{Status: StatusUnpowered}
			}
		}
	}

	return &Result{States: p.states, Networks: networks}
}

// visit applies the component's transfer function at one cell and follows
// the wires outward. The visited set is keyed by componentID-cellIndex:
// a cell already visited is not re-entered even when reached over a
// different wire path, which bounds the walk to O(cells + wires).
func (p *Pass) visit(comp *grid.Component, cell *grid.Cell, inV float64) {
	key := StateKey(comp.ID, cell.CellIndex)
	if p.visited[key] {
		return
	}
	p.visited[key] = true

	if !isFinite(inV) {
		p.eng.log.Printf("engine: non-finite input voltage at %s cell %d, skipping", comp.ID, cell.CellIndex)
		return
	}
	fn, ok := p.eng.transfers[comp.Kind]
	if !ok {
		p.eng.log.Printf("engine: no transfer function for kind %s (component %s)", comp.Kind, comp.ID)
		return
	}

	outV, powered, status := fn(p, comp, cell, inV)
	if !isFinite(outV) {
		// Indeterminate, not zero: leave no state so dependent rules
		// stay quiet instead of cascading garbage.
		p.eng.log.Printf("engine: non-finite output voltage at %s cell %d, skipping", comp.ID, cell.CellIndex)
		return
	}

	if _, exists := p.states[key]; !exists {
		power := outV * p.current
		if !isFinite(power) {
			power = 0
		}
		p.states[key] = CellState{
			OutputVoltage: outV,
			OutputCurrent: p.current,
			Power:         power,
			Powered:       powered,
			Grounded:      p.cellGrounded(comp, cell),
			Status:        status,
		}
	}

	// Source components conduct per pin: a battery's V+ must not leak
	// its rated voltage onto the ground-return wires of V-. Passive
	// parts conduct through their body, so the walk continues from
	// every cell they occupy.
	positions := []grid.Position{cell.Pos}
	role := pinRole(comp, cell.CellIndex)
	if !comp.Kind.IsSource() {
		positions = p.cells[comp.ID]
	}

	for _, pos := range positions {
		for _, n := range p.networks {
			if !n.Touches(pos) {
				continue
			}
			if outV > n.Voltage {
				n.Voltage = outV
			}
			if p.current > n.Current {
				n.Current = p.current
			}
		}
	}

	// Ground-return pins terminate the walk; unpowered cells have
	// nothing to push downstream.
	if role == modules.RoleGND || !powered {
		return
	}

	for _, pos := range positions {
		for _, seg := range p.segments {
			if !seg.Touches(pos) {
				continue
			}
			next, ok := p.grid.CellAt(seg.Other(pos))
			if !ok || !next.Occupied {
				continue
			}
			nextComp, ok := p.grid.Component(next.Component)
			if !ok {
				p.eng.log.Printf("engine: cell %s references missing component %s", next.Pos, next.Component)
				continue
			}
			p.visit(nextComp, next, outV)
		}
	}
}

func (p *Pass) cellGrounded(comp *grid.Component, cell *grid.Cell) bool {
	if pinRole(comp, cell.CellIndex) == modules.RoleGND {
		return true
	}
	for _, n := range p.networks {
		if n.Grounded && n.Touches(cell.Pos) {
			return true
		}
	}
	return false
}

func pinRole(comp *grid.Component, cellIndex int) modules.PinRole {
	pin, ok := comp.Def.Pin(cellIndex)
	if !ok {
		return modules.RoleBody
	}
	return pin.Role
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
