package validate

import (
	"fmt"
	"math"
	"time"

	"github.com/hsupple6/CircuitWiz-sub002/pkg/engine"
	"github.com/hsupple6/CircuitWiz-sub002/pkg/grid"
	"github.com/hsupple6/CircuitWiz-sub002/pkg/modules"
	"github.com/hsupple6/CircuitWiz-sub002/pkg/wire"
)

// Fixed rule thresholds.
const (
	ledMaxCurrent    = 0.02 // amps
	ledMaxVoltage    = 3.3  // volts
	resistorMaxPower = 0.25 // watts
	batteryMaxAmps   = 1.0
	supplyMaxAmps    = 2.0
)

// Validator applies the rule set to a propagation result. The clock is
// injectable so repeated passes can be compared byte for byte.
type Validator struct {
	now func() time.Time
}

// New returns a validator stamping diagnostics with the wall clock.
func New() *Validator {
	return &Validator{now: time.Now}
}

// NewWithClock returns a validator using the given clock.
func NewWithClock(now func() time.Time) *Validator {
	return &Validator{now: now}
}

// Check evaluates every component and wire network and returns the full
// regenerated diagnostic list, ordered by component id and rule, then by
// network id. All problems surface here as diagnostics, never as errors.
func (v *Validator) Check(g *grid.Grid, res *engine.Result) []Diagnostic {
	var diags []Diagnostic
	for _, comp := range g.Components() {
		switch comp.Kind {
		case modules.KindLED:
			diags = append(diags, v.checkLED(g, comp, res.Networks)...)
		case modules.KindResistor:
			diags = append(diags, v.checkResistor(g, comp, res.Networks)...)
		case modules.KindBattery:
			diags = append(diags, v.checkSource(g, comp, res.Networks, batteryMaxAmps, "battery")...)
		case modules.KindPowerSupply:
			diags = append(diags, v.checkSource(g, comp, res.Networks, supplyMaxAmps, "supply")...)
		}
	}
	for _, n := range res.Networks {
		diags = append(diags, v.checkNetwork(n)...)
	}
	return diags
}

func (v *Validator) checkLED(g *grid.Grid, comp *grid.Component, networks []*wire.Network) []Diagnostic {
	nets := wire.NetworksTouching(networks, comp.Cells)
	series := seriesResistor(g, nets)
	volts, amps := resolve(g, comp, nets)
	if !finite(volts) || !finite(amps) {
		return nil
	}

	var diags []Diagnostic
	if series == nil && volts > 0 {
		diags = append(diags, v.diag("led-no-resistor", SeverityError, comp,
			fmt.Sprintf("LED %s has no current-limiting resistor in its wire network", comp.ID)))
	}
	if limit := ratedAmps(comp, ledMaxCurrent); amps > limit {
		diags = append(diags, v.diag("led-overcurrent", SeverityWarning, comp,
			fmt.Sprintf("LED %s draws %.3fA, above the %.2fA rating", comp.ID, amps, limit)))
	}
	if volts > ledMaxVoltage {
		diags = append(diags, v.diag("led-overvoltage", SeverityError, comp,
			fmt.Sprintf("LED %s sees %.2fV, above the %.1fV maximum", comp.ID, volts, ledMaxVoltage)))
	}
	if len(diags) == 0 && series != nil && volts > 0 {
		diags = append(diags, v.diag("led-ok", SeveritySuccess, comp,
			fmt.Sprintf("LED %s is wired correctly", comp.ID)))
	}
	return diags
}

func (v *Validator) checkResistor(g *grid.Grid, comp *grid.Component, networks []*wire.Network) []Diagnostic {
	r := ownResistance(g, comp)
	if r <= 0 || !finite(r) {
		return nil
	}
	nets := wire.NetworksTouching(networks, comp.Cells)
	volts, amps := resolve(g, comp, nets)
	if !finite(volts) || !finite(amps) {
		return nil
	}
	power := volts * amps
	if !finite(power) || power < 0 {
		return nil
	}
	if power > resistorMaxPower {
		return []Diagnostic{v.diag("resistor-overpower", SeverityWarning, comp,
			fmt.Sprintf("resistor %s dissipates %.2fW, above the %.2fW rating", comp.ID, power, resistorMaxPower))}
	}
	return nil
}

func (v *Validator) checkSource(g *grid.Grid, comp *grid.Component, networks []*wire.Network, maxAmps float64, rule string) []Diagnostic {
	nets := wire.NetworksTouching(networks, comp.Cells)
	_, amps := resolve(g, comp, nets)
	if !finite(amps) {
		return nil
	}
	if limit := ratedAmps(comp, maxAmps); amps > limit {
		return []Diagnostic{v.diag(rule+"-overcurrent", SeverityWarning, comp,
			fmt.Sprintf("%s %s supplies %.2fA, above the %.1fA rating", comp.Kind, comp.ID, amps, limit))}
	}
	return nil
}

// ratedAmps resolves a component's current ceiling: the module's rated
// MaxCurrent when set, else the fixed rule threshold.
func ratedAmps(comp *grid.Component, fallback float64) float64 {
	if comp.Def.MaxCurrent > 0 && finite(comp.Def.MaxCurrent) {
		return comp.Def.MaxCurrent
	}
	return fallback
}

func (v *Validator) checkNetwork(n *wire.Network) []Diagnostic {
	if !finite(n.Current) || !finite(n.Voltage) {
		return nil
	}
	var diags []Diagnostic
	if n.Current > n.MaxCurrent {
		diags = append(diags, v.netDiag("wire-overcurrent", n,
			fmt.Sprintf("wire network %d carries %.2fA, above the %.1fA ceiling", n.ID, n.Current, n.MaxCurrent)))
	}
	if power := n.Voltage * n.Current; finite(power) && power > n.MaxPower {
		diags = append(diags, v.netDiag("wire-overpower", n,
			fmt.Sprintf("wire network %d carries %.2fW, above the %.1fW ceiling", n.ID, power, n.MaxPower)))
	}
	return diags
}

func (v *Validator) diag(rule string, sev Severity, comp *grid.Component, msg string) Diagnostic {
	return Diagnostic{
		ID:        fmt.Sprintf("%s-%s", rule, comp.ID),
		Severity:  sev,
		OwnerID:   comp.ID,
		Kind:      comp.Kind,
		Message:   msg,
		Timestamp: v.now(),
	}
}

func (v *Validator) netDiag(rule string, n *wire.Network, msg string) Diagnostic {
	return Diagnostic{
		ID:        fmt.Sprintf("%s-%d", rule, n.ID),
		Severity:  SeverityError,
		OwnerID:   fmt.Sprintf("net-%d", n.ID),
		Message:   msg,
		Timestamp: v.now(),
	}
}

// resolve computes validation's independent cross-check of a component's
// voltage and current: the maximum voltage among wire networks touching
// its cells, and V/R using the known series resistance when positive.
func resolve(g *grid.Grid, comp *grid.Component, nets []*wire.Network) (volts, amps float64) {
	for _, n := range nets {
		if n.Voltage > volts {
			volts = n.Voltage
		}
	}
	var r float64
	if comp.Kind == modules.KindResistor {
		r = ownResistance(g, comp)
	} else if series := seriesResistor(g, nets); series != nil {
		r = ownResistance(g, series)
	}
	if r > 0 {
		amps = volts / r
	}
	return volts, amps
}

// seriesResistor finds a resistor component attached to any of the given
// networks, or nil when there is none.
func seriesResistor(g *grid.Grid, nets []*wire.Network) *grid.Component {
	for _, comp := range g.Components() {
		if comp.Kind != modules.KindResistor {
			continue
		}
		for _, n := range nets {
			if n.TouchesAny(comp.Cells) {
				return comp
			}
		}
	}
	return nil
}

// ownResistance resolves a resistor's resistance: the first cell override
// wins, else the module default.
func ownResistance(g *grid.Grid, comp *grid.Component) float64 {
	for _, pos := range comp.Cells {
		if cell, ok := g.CellAt(pos); ok && cell.Resistance != nil {
			return *cell.Resistance
		}
	}
	return comp.Def.Resistance
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
