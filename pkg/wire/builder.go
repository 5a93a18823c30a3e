package wire

import (
	"io"
	"log"
	"sort"

	"github.com/hsupple6/CircuitWiz-sub002/pkg/grid"
)

// Config holds the wire gauge table. Every network built by a Builder gets
// its current and power ceilings from here.
type Config struct {
	MaxCurrent float64 // amps a wire run may carry
	MaxPower   float64 // watts a wire run may dissipate
}

// DefaultConfig returns ceilings for the standard hookup wire gauge.
func DefaultConfig() *Config {
	return &Config{
		MaxCurrent: 2.0,
		MaxPower:   10.0,
	}
}

// Validate replaces non-positive ceilings with the defaults.
func (c *Config) Validate() error {
	def := DefaultConfig()
	if c.MaxCurrent <= 0 {
		c.MaxCurrent = def.MaxCurrent
	}
	if c.MaxPower <= 0 {
		c.MaxPower = def.MaxPower
	}
	return nil
}

// Builder partitions wire segments into connected networks. Build is
// side-effect-free: the same grid and segment list always produce an
// identical partitioning.
type Builder struct {
	cfg *Config
	log *log.Logger
}

// NewBuilder creates a builder. A nil config uses DefaultConfig; a nil
// logger discards anomaly logs.
func NewBuilder(cfg *Config, logger *log.Logger) *Builder {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg.Validate()
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Builder{cfg: cfg, log: logger}
}

// Build groups the segments into maximal connected networks. Segments
// sharing an endpoint belong to the same network. A segment referencing a
// position outside the grid is dropped with a logged anomaly; a half-edited
// board is a normal transient state, never a fatal error.
func (b *Builder) Build(g *grid.Grid, segments []Segment) []*Network {
	kept := make([]Segment, 0, len(segments))
	for _, seg := range segments {
		if !g.Contains(seg.A) || !g.Contains(seg.B) {
			b.log.Printf("wire: dropping segment %s: endpoint outside %dx%d grid", seg, g.Width(), g.Height())
			continue
		}
		kept = append(kept, seg)
	}

	// Union-find over segment endpoints, with path compression and
	// union by rank.
	uf := newUnionFind()
	for _, seg := range kept {
		uf.add(seg.A)
		uf.add(seg.B)
		uf.union(seg.A, seg.B)
	}

	groups := make(map[grid.Position][]Segment)
	for _, seg := range kept {
		root := uf.find(seg.A)
		groups[root] = append(groups[root], seg)
	}

	networks := make([]*Network, 0, len(groups))
	for _, segs := range groups {
		sort.Slice(segs, func(i, j int) bool {
			if segs[i].A != segs[j].A {
				return lessPosition(segs[i].A, segs[j].A)
			}
			return lessPosition(segs[i].B, segs[j].B)
		})
		n := &Network{
			Segments:   segs,
			MaxCurrent: b.cfg.MaxCurrent,
			MaxPower:   b.cfg.MaxPower,
			endpoints:  make(map[grid.Position]struct{}),
		}
		for _, seg := range segs {
			n.endpoints[seg.A] = struct{}{}
			n.endpoints[seg.B] = struct{}{}
		}
		networks = append(networks, n)
	}

	// Deterministic ids: order networks by their smallest endpoint.
	sort.Slice(networks, func(i, j int) bool {
		return lessPosition(minEndpoint(networks[i]), minEndpoint(networks[j]))
	})
	for i, n := range networks {
		n.ID = i
	}
	return networks
}

func minEndpoint(n *Network) grid.Position {
	min := n.Segments[0].A
	for _, seg := range n.Segments {
		if lessPosition(seg.A, min) {
			min = seg.A
		}
		if lessPosition(seg.B, min) {
			min = seg.B
		}
	}
	return min
}

// unionFind tracks connectivity between endpoint positions.
type unionFind struct {
	parent map[grid.Position]grid.Position
	rank   map[grid.Position]int
}

func newUnionFind() *unionFind {
	return &unionFind{
		parent: make(map[grid.Position]grid.Position),
		rank:   make(map[grid.Position]int),
	}
}

func (uf *unionFind) add(p grid.Position) {
	if _, ok := uf.parent[p]; !ok {
		uf.parent[p] = p
		uf.rank[p] = 0
	}
}

func (uf *unionFind) find(p grid.Position) grid.Position {
	root := p
	for uf.parent[root] != root {
		root = uf.parent[root]
	}
	// Path compression: point everything on the walk directly at root.
	for p != root {
		next := uf.parent[p]
		uf.parent[p] = root
		p = next
	}
	return root
}

func (uf *unionFind) union(a, b grid.Position) {
	rootA := uf.find(a)
	rootB := uf.find(b)
	if rootA == rootB {
		return
	}
	switch {
	case uf.rank[rootA] < uf.rank[rootB]:
		uf.parent[rootA] = rootB
	case uf.rank[rootA] > uf.rank[rootB]:
		uf.parent[rootB] = rootA
	default:
		uf.parent[rootB] = rootA
		uf.rank[rootA]++
	}
}
