// Package modules holds the static module definitions for every component
// kind the engine knows about. Definitions are immutable and shared by
// reference across all placed instances of the same type.
package modules

import (
	"fmt"
	"sort"
	"strings"
)

// Kind identifies a component kind. The set is closed: every placed
// component carries exactly one of these tags and the propagation engine
// dispatches its transfer function on it.
type Kind int

const (
	KindUnknown Kind = iota
	KindBattery
	KindPowerSupply
	KindResistor
	KindLED
	KindMicrocontroller
	KindWireTerminal
)

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindBattery:
		return "battery"
	case KindPowerSupply:
		return "power-supply"
	case KindResistor:
		return "resistor"
	case KindLED:
		return "led"
	case KindMicrocontroller:
		return "microcontroller"
	case KindWireTerminal:
		return "wire-terminal"
	default:
		return "unknown"
	}
}

// IsSource reports whether components of this kind start a propagation
// pass. Microcontrollers count as sources because their GPIO pins generate
// voltage when the firmware drives them high.
func (k Kind) IsSource() bool {
	return k == KindBattery || k == KindPowerSupply || k == KindMicrocontroller
}

// PinRole describes the electrical role of one cell of a component.
type PinRole int

const (
	RoleBody PinRole = iota
	RoleGPIO
	RoleAnalog
	RoleVCC
	RoleGND
	RoleAnode
	RoleCathode
	RoleTerminal
)

// String returns the role name as it appears in board files and logs.
func (r PinRole) String() string {
	switch r {
	case RoleGPIO:
		return "GPIO"
	case RoleAnalog:
		return "ANALOG"
	case RoleVCC:
		return "VCC"
	case RoleGND:
		return "GND"
	case RoleAnode:
		return "ANODE"
	case RoleCathode:
		return "CATHODE"
	case RoleTerminal:
		return "TERMINAL"
	default:
		return "BODY"
	}
}

// PinSpec describes a single cell of a module: its pin name and role.
type PinSpec struct {
	Name string
	Role PinRole
}

// Definition is the immutable type descriptor for a component kind.
// One Definition is shared by every instance of the same type; it is
// never mutated at runtime.
type Definition struct {
	TypeName string // e.g. "battery9v", "ESP32-DevKit"
	Kind     Kind

	// Pins holds one entry per cell, ordered by cell index.
	Pins []PinSpec

	// Default electrical properties. Cells may carry per-cell overrides
	// for ForwardVoltage and Resistance.
	Voltage        float64 // rated output voltage for sources
	ForwardVoltage float64 // LED forward drop
	Resistance     float64 // resistor default in ohms
	MaxCurrent     float64 // rated current ceiling in amps
}

// CellCount returns the number of grid cells an instance occupies.
func (d *Definition) CellCount() int { return len(d.Pins) }

// Pin returns the pin spec for the given cell index.
func (d *Definition) Pin(cellIndex int) (PinSpec, bool) {
	if cellIndex < 0 || cellIndex >= len(d.Pins) {
		return PinSpec{}, false
	}
	return d.Pins[cellIndex], true
}

// GPIOVoltage returns the voltage a driven-high GPIO pin of this module
// generates. ESP32 family modules run 3.3V logic, everything else 5V.
func (d *Definition) GPIOVoltage() float64 {
	if strings.Contains(d.TypeName, "ESP32") {
		return 3.3
	}
	return 5.0
}

// Registry maps type names to module definitions.
type Registry struct {
	defs map[string]*Definition
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Definition)}
}

// Register adds a definition. Registering the same type name twice is an
// error; definitions are static and set up once.
func (r *Registry) Register(def *Definition) error {
	if def.TypeName == "" {
		return fmt.Errorf("modules: definition has no type name")
	}
	if len(def.Pins) == 0 {
		return fmt.Errorf("modules: definition %s has no pins", def.TypeName)
	}
	name := strings.ToLower(def.TypeName)
	if _, ok := r.defs[name]; ok {
		return fmt.Errorf("modules: type %s already registered", def.TypeName)
	}
	r.defs[name] = def
	return nil
}

// Lookup returns the definition for a type name (case-insensitive).
func (r *Registry) Lookup(typeName string) (*Definition, error) {
	def, ok := r.defs[strings.ToLower(typeName)]
	if !ok {
		return nil, fmt.Errorf("modules: unknown type %s", typeName)
	}
	return def, nil
}

// TypeNames returns all registered type names in sorted order.
func (r *Registry) TypeNames() []string {
	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
