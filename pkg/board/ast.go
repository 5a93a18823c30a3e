package board

// File is a parsed board description: one board declaration plus any
// number of component, wire and gpio statements.
type File struct {
	Statements []*Statement `parser:"@@*"`
}

// Statement is one line of a board file.
type Statement struct {
	Board     *BoardDecl     `parser:"  @@"`
	Component *ComponentDecl `parser:"| @@"`
	Wire      *WireDecl      `parser:"| @@"`
	Gpio      *GpioDecl      `parser:"| @@"`
}

// BoardDecl sets the grid dimensions.
// Example: board 12 8
type BoardDecl struct {
	Width  int `parser:"KwBoard @Integer"`
	Height int `parser:"@Integer"`
}

// Pos is a grid coordinate literal.
// Example: (4,0)
type Pos struct {
	X int `parser:"LParen @Integer"`
	Y int `parser:"Comma @Integer RParen"`
}

// ComponentDecl places a component instance.
// Example: component r1 resistor (2,0) (3,0) value 220
type ComponentDecl struct {
	ID      string   `parser:"KwComponent @Ident"`
	Type    string   `parser:"@Ident"`
	Cells   []*Pos   `parser:"@@+"`
	Value   *float64 `parser:"( KwValue @( Real | Integer ) )?"`
	Forward *float64 `parser:"( KwVf @( Real | Integer ) )?"`
}

// WireDecl adds a wire segment between two positions.
// Example: wire (0,0) -> (2,0)
type WireDecl struct {
	A *Pos `parser:"KwWire @@"`
	B *Pos `parser:"Arrow @@"`
}

// GpioDecl records a GPIO pin level for the simulation snapshot.
// Example: gpio 13 high
type GpioDecl struct {
	Pin  int  `parser:"KwGpio @Integer"`
	High bool `parser:"( @KwHigh | KwLow )"`
}
