// Package wire groups raw wire segments into maximal connected networks
// and carries the per-network electrical aggregates the propagation pass
// fills in.
package wire

import (
	"fmt"
	"sort"

	"github.com/hsupple6/CircuitWiz-sub002/pkg/grid"
)

// Segment is a single wire between two grid positions.
type Segment struct {
	A, B grid.Position
}

// Touches reports whether the segment has an endpoint at the position.
func (s Segment) Touches(p grid.Position) bool {
	return s.A == p || s.B == p
}

// Other returns the opposite endpoint. It assumes p is one of the two
// endpoints.
func (s Segment) Other(p grid.Position) grid.Position {
	if s.A == p {
		return s.B
	}
	return s.A
}

// String formats the segment as "(x,y)->(x,y)".
func (s Segment) String() string {
	return fmt.Sprintf("%s->%s", s.A, s.B)
}

// Network is a maximal connected set of wire segments. Voltage, Current
// and Grounded are recomputed outputs of each propagation pass; MaxCurrent
// and MaxPower come from the gauge table and never change after Build.
type Network struct {
	ID       int
	Segments []Segment

	Voltage    float64
	Current    float64
	MaxCurrent float64
	MaxPower   float64
	Grounded   bool

	endpoints map[grid.Position]struct{}
}

// Touches reports whether any segment of the network ends at the position.
func (n *Network) Touches(p grid.Position) bool {
	_, ok := n.endpoints[p]
	return ok
}

// TouchesAny reports whether the network ends at any of the positions.
func (n *Network) TouchesAny(positions []grid.Position) bool {
	for _, p := range positions {
		if n.Touches(p) {
			return true
		}
	}
	return false
}

// Endpoints returns the network's endpoint positions in sorted order.
func (n *Network) Endpoints() []grid.Position {
	out := make([]grid.Position, 0, len(n.endpoints))
	for p := range n.endpoints {
		out = append(out, p)
	}
	sortPositions(out)
	return out
}

// ResetAggregates clears the per-pass electrical aggregates before a new
// propagation pass writes them.
func (n *Network) ResetAggregates() {
	n.Voltage = 0
	n.Current = 0
	n.Grounded = false
}

// NetworksTouching returns the subset of networks that end at any of the
// given cell positions, preserving network order.
func NetworksTouching(networks []*Network, positions []grid.Position) []*Network {
	var out []*Network
	for _, n := range networks {
		if n.TouchesAny(positions) {
			out = append(out, n)
		}
	}
	return out
}

func sortPositions(ps []grid.Position) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].Y != ps[j].Y {
			return ps[i].Y < ps[j].Y
		}
		return ps[i].X < ps[j].X
	})
}

func lessPosition(a, b grid.Position) bool {
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
}
