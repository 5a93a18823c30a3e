package modules

// builtins is the in-memory module database. Entries mirror the component
// palette of the grid editor.
var builtins = []*Definition{
	{
		TypeName:   "battery9v",
		Kind:       KindBattery,
		Pins:       []PinSpec{{Name: "V+", Role: RoleVCC}, {Name: "V-", Role: RoleGND}},
		Voltage:    9.0,
		MaxCurrent: 1.0,
	},
	{
		TypeName:   "supply5v",
		Kind:       KindPowerSupply,
		Pins:       []PinSpec{{Name: "V+", Role: RoleVCC}, {Name: "V-", Role: RoleGND}},
		Voltage:    5.0,
		MaxCurrent: 2.0,
	},
	{
		TypeName:   "resistor",
		Kind:       KindResistor,
		Pins:       []PinSpec{{Name: "T1", Role: RoleTerminal}, {Name: "T2", Role: RoleTerminal}},
		Resistance: 1000.0,
	},
	{
		TypeName:       "led-red",
		Kind:           KindLED,
		Pins:           []PinSpec{{Name: "A", Role: RoleAnode}, {Name: "K", Role: RoleCathode}},
		ForwardVoltage: 2.0,
		MaxCurrent:     0.02,
	},
	{
		TypeName: "ESP32-DevKit",
		Kind:     KindMicrocontroller,
		Pins: []PinSpec{
			{Name: "3V3", Role: RoleVCC},
			{Name: "GND", Role: RoleGND},
			{Name: "GPIO13", Role: RoleGPIO},
			{Name: "GPIO23", Role: RoleGPIO},
		},
		Voltage: 3.3,
	},
	{
		TypeName: "arduino-uno",
		Kind:     KindMicrocontroller,
		Pins: []PinSpec{
			{Name: "5V", Role: RoleVCC},
			{Name: "GND", Role: RoleGND},
			{Name: "D13", Role: RoleGPIO},
			{Name: "A2", Role: RoleAnalog},
		},
		Voltage: 5.0,
	},
	{
		TypeName: "terminal",
		Kind:     KindWireTerminal,
		Pins:     []PinSpec{{Name: "T1", Role: RoleTerminal}, {Name: "T2", Role: RoleTerminal}},
	},
}

// Builtin returns a registry populated with the built-in module palette.
func Builtin() *Registry {
	r := NewRegistry()
	for _, def := range builtins {
		// Built-in entries are statically correct; Register only fails
		// on malformed input.
		if err := r.Register(def); err != nil {
			panic(err)
		}
	}
	return r
}
