package engine

import (
	"math"

	"github.com/hsupple6/CircuitWiz-sub002/pkg/grid"
	"github.com/hsupple6/CircuitWiz-sub002/pkg/modules"
)

// transferPowerSource handles Battery and PowerSupply cells. The V+ pin
// outputs the rated voltage; every other pin passes its input voltage
// through unchanged. Sources are always powered.
func transferPowerSource(p *Pass, comp *grid.Component, cell *grid.Cell, inV float64) (float64, bool, Status) {
	if pinRole(comp, cell.CellIndex) == modules.RoleVCC {
		return comp.Def.Voltage, true, StatusActive
	}
	return inV, true, StatusActive
}

// transferMicrocontroller handles microcontroller cells. GPIO and analog
// pins never pass input voltage through: a pin is a controlled output,
// not a passive node. A pin drives the module's logic voltage only when
// the GPIO snapshot holds HIGH for its resolved pin number; a missing
// entry is LOW. VCC and GND pins pass through and are always active.
func transferMicrocontroller(p *Pass, comp *grid.Component, cell *grid.Cell, inV float64) (float64, bool, Status) {
	pin, _ := comp.Def.Pin(cell.CellIndex)
	switch pin.Role {
	case modules.RoleGPIO, modules.RoleAnalog:
		if p.GPIO().LevelOf(PinNumber(pin.Name)) == High {
			return comp.Def.GPIOVoltage(), true, StatusActive
		}
		return 0, false, StatusInactive
	default:
		return inV, true, StatusActive
	}
}

// transferResistor passes voltage through and establishes the circuit
// current as V/R. The resistance comes from the cell override when set,
// else the module default; a non-positive resistance yields zero current.
// Both terminal cells receive the identical record. A non-finite
// resistance leaves no state at all: the caller treats the non-finite
// return as no data.
func transferResistor(p *Pass, comp *grid.Component, cell *grid.Cell, inV float64) (float64, bool, Status) {
	r := resistanceOf(cell, comp.Def)
	if !isFinite(r) {
		return math.NaN(), false, StatusUnpowered
	}
	if r > 0 {
		p.SetCurrent(inV / r)
	} else {
		p.SetCurrent(0)
	}
	powered := inV > 0
	status := StatusInactive
	if powered {
		status = StatusActive
	}
	power := inV * p.Current()
	if !isFinite(power) {
		power = 0
	}
	p.UpdateComponent(comp, CellState{
		OutputVoltage: inV,
		OutputCurrent: p.Current(),
		Power:         power,
		Powered:       powered,
		Grounded:      p.Grounded(comp),
		Status:        status,
	})
	return inV, powered, status
}

// transferLED drops the forward voltage and decides on/off. The LED is on
// only when the input voltage covers the forward drop, the circuit
// carries current, and the LED sits on a grounded wire network. Powered
// tracks input voltage alone, independent of on/off. Every cell of the
// LED receives the identical record.
func transferLED(p *Pass, comp *grid.Component, cell *grid.Cell, inV float64) (float64, bool, Status) {
	vf := forwardVoltageOf(cell, comp.Def)
	if !isFinite(vf) {
		// No data: a record built from a non-finite forward drop must
		// never reach the result map.
		return math.NaN(), false, StatusUnpowered
	}
	outV := inV - vf
	if outV < 0 {
		outV = 0
	}

	grounded := p.Grounded(comp)
	status := StatusOff
	if inV >= vf && p.Current() > 0 && grounded {
		status = StatusOn
	}
	powered := inV > 0

	// Power dissipated sits across the forward drop, not the output.
	power := vf * p.Current()
	if !isFinite(power) {
		power = 0
	}
	p.UpdateComponent(comp, CellState{
		OutputVoltage: outV,
		OutputCurrent: p.Current(),
		Power:         power,
		Powered:       powered,
		Grounded:      grounded,
		Status:        status,
	})
	return outV, powered, status
}

// transferWireTerminal passes voltage through unchanged.
func transferWireTerminal(p *Pass, comp *grid.Component, cell *grid.Cell, inV float64) (float64, bool, Status) {
	powered := inV > 0
	status := StatusInactive
	if powered {
		status = StatusActive
	}
	p.UpdateComponent(comp, CellState{
		OutputVoltage: inV,
		OutputCurrent: p.Current(),
		Powered:       powered,
		Grounded:      p.Grounded(comp),
		Status:        status,
	})
	return inV, powered, status
}

func resistanceOf(cell *grid.Cell, def *modules.Definition) float64 {
	if cell.Resistance != nil {
		return *cell.Resistance
	}
	return def.Resistance
}

func forwardVoltageOf(cell *grid.Cell, def *modules.Definition) float64 {
	if cell.ForwardVoltage != nil {
		return *cell.ForwardVoltage
	}
	return def.ForwardVoltage
}
