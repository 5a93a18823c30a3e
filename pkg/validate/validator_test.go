package validate

import (
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/hsupple6/CircuitWiz-sub002/pkg/engine"
	"github.com/hsupple6/CircuitWiz-sub002/pkg/grid"
	"github.com/hsupple6/CircuitWiz-sub002/pkg/modules"
	"github.com/hsupple6/CircuitWiz-sub002/pkg/wire"
)

func pos(x, y int) grid.Position { return grid.Position{X: x, Y: y} }

func mustPlace(t *testing.T, g *grid.Grid, id, typeName string, cells ...grid.Position) {
	t.Helper()
	def, err := modules.Builtin().Lookup(typeName)
	if err != nil {
		t.Fatalf("lookup %s: %v", typeName, err)
	}
	if _, err := g.Place(id, def, cells); err != nil {
		t.Fatalf("place %s: %v", id, err)
	}
}

func runPass(t *testing.T, g *grid.Grid, segs []wire.Segment, gpio engine.GPIOSnapshot) *engine.Result {
	t.Helper()
	nets := wire.NewBuilder(nil, nil).Build(g, segs)
	return engine.New(nil).Run(g, nets, gpio)
}

func countID(diags []Diagnostic, prefix string) int {
	n := 0
	for _, d := range diags {
		if strings.HasPrefix(d.ID, prefix) {
			n++
		}
	}
	return n
}

func TestLEDNoResistorRule(t *testing.T) {
	g, _ := grid.New(8, 4)
	mustPlace(t, g, "bat1", "battery9v", pos(0, 0), pos(0, 1))
	mustPlace(t, g, "led1", "led-red", pos(4, 0), pos(4, 1))
	res := runPass(t, g, []wire.Segment{
		{A: pos(0, 0), B: pos(4, 0)},
		{A: pos(4, 1), B: pos(0, 1)},
	}, nil)

	diags := New().Check(g, res)
	if got := countID(diags, "led-no-resistor"); got != 1 {
		t.Fatalf("expected exactly 1 no-resistor diagnostic, got %d", got)
	}
	var diag Diagnostic
	for _, d := range diags {
		if strings.HasPrefix(d.ID, "led-no-resistor") {
			diag = d
		}
	}
	if diag.ID != "led-no-resistor-led1" {
		t.Errorf("expected id led-no-resistor-led1, got %s", diag.ID)
	}
	if diag.Severity != SeverityError {
		t.Errorf("expected error severity, got %s", diag.Severity)
	}
	if diag.OwnerID != "led1" {
		t.Errorf("expected owner led1, got %s", diag.OwnerID)
	}
}

func TestLEDOvervoltageAndOvercurrent(t *testing.T) {
	// 9V through 220 ohm: 41mA > 20mA and 9V > 3.3V.
	g, _ := grid.New(8, 4)
	mustPlace(t, g, "bat1", "battery9v", pos(0, 0), pos(0, 1))
	mustPlace(t, g, "r1", "resistor", pos(2, 0), pos(3, 0))
	mustPlace(t, g, "led1", "led-red", pos(5, 0), pos(5, 1))
	g.SetResistance(pos(2, 0), 220)
	res := runPass(t, g, []wire.Segment{
		{A: pos(0, 0), B: pos(2, 0)},
		{A: pos(3, 0), B: pos(5, 0)},
		{A: pos(5, 1), B: pos(0, 1)},
	}, nil)

	diags := New().Check(g, res)
	if countID(diags, "led-overcurrent") != 1 {
		t.Errorf("expected led-overcurrent warning")
	}
	if countID(diags, "led-overvoltage") != 1 {
		t.Errorf("expected led-overvoltage error")
	}
	if countID(diags, "led-no-resistor") != 0 {
		t.Errorf("resistor is present, no-resistor rule must stay quiet")
	}
}

func TestLEDSuccess(t *testing.T) {
	// 3.3V GPIO through 330 ohm: 10mA, within every rating.
	g, _ := grid.New(8, 6)
	mustPlace(t, g, "mcu", "ESP32-DevKit", pos(0, 0), pos(0, 1), pos(0, 2), pos(0, 3))
	mustPlace(t, g, "r1", "resistor", pos(2, 0), pos(3, 0))
	mustPlace(t, g, "led1", "led-red", pos(5, 0), pos(5, 1))
	g.SetResistance(pos(2, 0), 330)
	res := runPass(t, g, []wire.Segment{
		{A: pos(0, 2), B: pos(2, 0)}, // GPIO13 -> resistor
		{A: pos(3, 0), B: pos(5, 0)}, // resistor -> LED anode
		{A: pos(5, 1), B: pos(0, 1)}, // LED cathode -> GND
	}, engine.GPIOSnapshot{13: engine.High})

	diags := New().Check(g, res)
	if countID(diags, "led-ok") != 1 {
		t.Errorf("expected led-ok success diagnostic, got %v", diags)
	}
	for _, d := range diags {
		if d.Severity == SeverityError || d.Severity == SeverityWarning {
			t.Errorf("unexpected diagnostic %s: %s", d.ID, d.Message)
		}
	}
}

func TestResistorSkippedWhenInvalid(t *testing.T) {
	// Zero or non-finite resistance is no data: the resistor emits no
	// diagnostics at all rather than garbage numbers.
	for name, ohms := range map[string]float64{
		"zero": 0,
		"nan":  math.NaN(),
		"inf":  math.Inf(1),
	} {
		t.Run(name, func(t *testing.T) {
			g, _ := grid.New(8, 4)
			mustPlace(t, g, "bat1", "battery9v", pos(0, 0), pos(0, 1))
			mustPlace(t, g, "r1", "resistor", pos(2, 0), pos(3, 0))
			g.SetResistance(pos(2, 0), ohms)
			res := runPass(t, g, []wire.Segment{
				{A: pos(0, 0), B: pos(2, 0)},
				{A: pos(3, 0), B: pos(0, 1)},
			}, nil)

			diags := New().Check(g, res)
			for _, d := range diags {
				if d.OwnerID == "r1" {
					t.Errorf("resistor with %s resistance must emit nothing, got %s", name, d.ID)
				}
				if strings.Contains(d.Message, "NaN") || strings.Contains(d.Message, "Inf") {
					t.Errorf("non-finite value leaked into message %q", d.Message)
				}
			}
		})
	}
}

func TestResistorOverpower(t *testing.T) {
	// 9V across 100 ohm: 0.81W > 0.25W.
	g, _ := grid.New(8, 4)
	mustPlace(t, g, "bat1", "battery9v", pos(0, 0), pos(0, 1))
	mustPlace(t, g, "r1", "resistor", pos(2, 0), pos(3, 0))
	g.SetResistance(pos(2, 0), 100)
	res := runPass(t, g, []wire.Segment{
		{A: pos(0, 0), B: pos(2, 0)},
		{A: pos(3, 0), B: pos(0, 1)},
	}, nil)

	diags := New().Check(g, res)
	if countID(diags, "resistor-overpower") != 1 {
		t.Errorf("expected resistor-overpower warning, got %v", diags)
	}
}

func TestWireOvercurrent(t *testing.T) {
	g, _ := grid.New(4, 4)
	nets := wire.NewBuilder(&wire.Config{MaxCurrent: 2.0, MaxPower: 10.0}, nil).
		Build(g, []wire.Segment{{A: pos(0, 0), B: pos(1, 0)}})
	nets[0].Current = 3.0
	nets[0].Voltage = 1.0
	res := &engine.Result{States: map[string]engine.CellState{}, Networks: nets}

	diags := New().Check(g, res)
	if len(diags) != 1 {
		t.Fatalf("expected exactly 1 diagnostic, got %d", len(diags))
	}
	if diags[0].ID != "wire-overcurrent-0" {
		t.Errorf("expected id wire-overcurrent-0, got %s", diags[0].ID)
	}
	if diags[0].Severity != SeverityError {
		t.Errorf("expected error severity, got %s", diags[0].Severity)
	}
}

func TestWireOverpower(t *testing.T) {
	g, _ := grid.New(4, 4)
	nets := wire.NewBuilder(&wire.Config{MaxCurrent: 10.0, MaxPower: 5.0}, nil).
		Build(g, []wire.Segment{{A: pos(0, 0), B: pos(1, 0)}})
	nets[0].Current = 2.0
	nets[0].Voltage = 9.0 // 18W > 5W
	res := &engine.Result{States: map[string]engine.CellState{}, Networks: nets}

	diags := New().Check(g, res)
	if countID(diags, "wire-overpower") != 1 {
		t.Errorf("expected wire-overpower error, got %v", diags)
	}
}

func TestRatedCurrentFromDefinition(t *testing.T) {
	// A module rated for more current than the fixed threshold raises the
	// overcurrent ceiling: 41mA through a 50mA LED is fine.
	g, _ := grid.New(8, 4)
	mustPlace(t, g, "bat1", "battery9v", pos(0, 0), pos(0, 1))
	mustPlace(t, g, "r1", "resistor", pos(2, 0), pos(3, 0))
	highPower := &modules.Definition{
		TypeName:       "led-highpower",
		Kind:           modules.KindLED,
		Pins:           []modules.PinSpec{{Name: "A", Role: modules.RoleAnode}, {Name: "K", Role: modules.RoleCathode}},
		ForwardVoltage: 2.0,
		MaxCurrent:     0.05,
	}
	if _, err := g.Place("led1", highPower, []grid.Position{pos(5, 0), pos(5, 1)}); err != nil {
		t.Fatalf("place led1: %v", err)
	}
	g.SetResistance(pos(2, 0), 220)
	res := runPass(t, g, []wire.Segment{
		{A: pos(0, 0), B: pos(2, 0)},
		{A: pos(3, 0), B: pos(5, 0)},
		{A: pos(5, 1), B: pos(0, 1)},
	}, nil)

	diags := New().Check(g, res)
	if countID(diags, "led-overcurrent") != 0 {
		t.Errorf("41mA is within the 50mA rating, got %v", diags)
	}
	if countID(diags, "led-overvoltage") != 1 {
		t.Errorf("9V still exceeds the voltage maximum")
	}
}

func TestDiagnosticsIdempotent(t *testing.T) {
	g, _ := grid.New(8, 4)
	mustPlace(t, g, "bat1", "battery9v", pos(0, 0), pos(0, 1))
	mustPlace(t, g, "led1", "led-red", pos(4, 0), pos(4, 1))
	segs := []wire.Segment{
		{A: pos(0, 0), B: pos(4, 0)},
		{A: pos(4, 1), B: pos(0, 1)},
	}
	clock := func() time.Time { return time.Unix(1700000000, 0).UTC() }
	v := NewWithClock(clock)

	first := v.Check(g, runPass(t, g, segs, nil))
	second := v.Check(g, runPass(t, g, segs, nil))
	if !reflect.DeepEqual(first, second) {
		t.Errorf("unchanged snapshot produced different diagnostic sets")
	}
}
