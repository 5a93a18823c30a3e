// Package engine computes per-cell electrical state by propagating signal
// from power sources outward through the wire networks. One call to Run is
// one full pass over an immutable snapshot of grid, wires and GPIO state;
// the pass produces a fresh result set and never mutates the inputs
// beyond the wire network aggregates it owns.
package engine

import (
	"fmt"

	"github.com/hsupple6/CircuitWiz-sub002/pkg/wire"
)

// Level is a GPIO logic level.
type Level int

const (
	Low Level = iota
	High
)

// GPIOSnapshot maps pin numbers to logic levels at the current simulation
// instant. It is an external input representing running firmware.
type GPIOSnapshot map[int]Level

// LevelOf returns the level for a pin. A missing entry is Low: absent
// firmware state never injects power.
func (s GPIOSnapshot) LevelOf(pin int) Level {
	if s == nil {
		return Low
	}
	return s[pin]
}

// Status tags a cell's electrical condition. Which tags apply depends on
// the component kind: LEDs report on/off, microcontroller pins
// active/inactive, unreached cells unpowered.
type Status string

const (
	StatusUnpowered Status = "unpowered"
	StatusInactive  Status = "inactive"
	StatusActive    Status = "active"
	StatusOn        Status = "on"
	StatusOff       Status = "off"
)

// CellState is the electrical state record computed for one cell. A fresh
// record is produced on every pass; records are never updated in place
// across passes.
type CellState struct {
	OutputVoltage float64 `json:"outputVoltage"`
	OutputCurrent float64 `json:"outputCurrent"`
	Power         float64 `json:"power"`
	Powered       bool    `json:"powered"`
	Grounded      bool    `json:"grounded"`
	Status        Status  `json:"status"`
}

// Result is the output of one propagation pass: the per-cell state map
// plus the wire networks with their aggregates filled in. The map is
// owned by the pass that produced it and replaced wholesale on the next
// pass.
type Result struct {
	States   map[string]CellState
	Networks []*wire.Network
}

// StateKey builds the map key for a cell: the owning component id plus
// the cell's index within the component layout.
func StateKey(componentID string, cellIndex int) string {
	return fmt.Sprintf("%s-%d", componentID, cellIndex)
}
