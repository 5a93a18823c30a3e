package board

import (
	"encoding/json"

	"github.com/hsupple6/CircuitWiz-sub002/pkg/engine"
	"github.com/hsupple6/CircuitWiz-sub002/pkg/validate"
	"github.com/hsupple6/CircuitWiz-sub002/pkg/wire"
)

// networkJSON is the serialized view of a wire network.
type networkJSON struct {
	ID         int      `json:"id"`
	Segments   []string `json:"segments"`
	Voltage    float64  `json:"voltage"`
	Current    float64  `json:"current"`
	MaxCurrent float64  `json:"maxCurrent"`
	MaxPower   float64  `json:"maxPower"`
	Grounded   bool     `json:"grounded"`
}

// ExportJSON serializes a propagation result and its diagnostics. Map
// keys are emitted in sorted order, so identical passes produce
// byte-identical output.
func ExportJSON(res *engine.Result, diags []validate.Diagnostic) ([]byte, error) {
	nets := make([]networkJSON, 0, len(res.Networks))
	for _, n := range res.Networks {
		nets = append(nets, networkView(n))
	}
	out := struct {
		Version     string                      `json:"version"`
		States      map[string]engine.CellState `json:"states"`
		Networks    []networkJSON               `json:"networks"`
		Diagnostics []validate.Diagnostic       `json:"diagnostics"`
	}{
		Version:     "1.0",
		States:      res.States,
		Networks:    nets,
		Diagnostics: diags,
	}
	return json.MarshalIndent(out, "", "  ")
}

func networkView(n *wire.Network) networkJSON {
	segs := make([]string, len(n.Segments))
	for i, s := range n.Segments {
		segs[i] = s.String()
	}
	return networkJSON{
		ID:         n.ID,
		Segments:   segs,
		Voltage:    n.Voltage,
		Current:    n.Current,
		MaxCurrent: n.MaxCurrent,
		MaxPower:   n.MaxPower,
		Grounded:   n.Grounded,
	}
}
