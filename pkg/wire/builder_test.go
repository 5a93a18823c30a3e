package wire

import (
	"bytes"
	"log"
	"reflect"
	"strings"
	"testing"

	"github.com/hsupple6/CircuitWiz-sub002/pkg/grid"
)

func pos(x, y int) grid.Position { return grid.Position{X: x, Y: y} }

func mustGrid(t *testing.T, w, h int) *grid.Grid {
	t.Helper()
	g, err := grid.New(w, h)
	if err != nil {
		t.Fatalf("grid.New failed: %v", err)
	}
	return g
}

func TestBuildPartitionsConnectedSegments(t *testing.T) {
	g := mustGrid(t, 8, 8)
	segs := []Segment{
		{A: pos(0, 0), B: pos(1, 0)},
		{A: pos(1, 0), B: pos(2, 0)}, // shares (1,0), same network
		{A: pos(4, 4), B: pos(5, 4)}, // isolated
	}
	nets := NewBuilder(nil, nil).Build(g, segs)

	if len(nets) != 2 {
		t.Fatalf("expected 2 networks, got %d", len(nets))
	}
	if len(nets[0].Segments) != 2 {
		t.Errorf("first network should have 2 segments, got %d", len(nets[0].Segments))
	}
	if len(nets[1].Segments) != 1 {
		t.Errorf("second network should have 1 segment, got %d", len(nets[1].Segments))
	}
}

func TestBuildTransitiveConnectivity(t *testing.T) {
	g := mustGrid(t, 8, 8)
	// A chain 0-1, 1-2, 2-3 must collapse into one network.
	segs := []Segment{
		{A: pos(0, 0), B: pos(1, 0)},
		{A: pos(2, 0), B: pos(3, 0)},
		{A: pos(1, 0), B: pos(2, 0)},
	}
	nets := NewBuilder(nil, nil).Build(g, segs)

	if len(nets) != 1 {
		t.Fatalf("expected 1 network, got %d", len(nets))
	}
	for _, p := range []grid.Position{pos(0, 0), pos(1, 0), pos(2, 0), pos(3, 0)} {
		if !nets[0].Touches(p) {
			t.Errorf("network should touch %s", p)
		}
	}
}

func TestBuildDropsSegmentsOutsideGrid(t *testing.T) {
	g := mustGrid(t, 4, 4)
	var buf bytes.Buffer
	b := NewBuilder(nil, log.New(&buf, "", 0))
	nets := b.Build(g, []Segment{
		{A: pos(0, 0), B: pos(1, 0)},
		{A: pos(0, 0), B: pos(99, 99)}, // outside, dropped
	})

	if len(nets) != 1 {
		t.Fatalf("expected 1 network, got %d", len(nets))
	}
	if len(nets[0].Segments) != 1 {
		t.Errorf("dropped segment should not appear, got %d segments", len(nets[0].Segments))
	}
	if !strings.Contains(buf.String(), "dropping segment") {
		t.Errorf("expected anomaly log for dropped segment, got %q", buf.String())
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	g := mustGrid(t, 8, 8)
	segs := []Segment{
		{A: pos(5, 5), B: pos(6, 5)},
		{A: pos(0, 0), B: pos(1, 0)},
		{A: pos(1, 0), B: pos(1, 1)},
	}
	first := NewBuilder(nil, nil).Build(g, segs)
	second := NewBuilder(nil, nil).Build(g, segs)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical input produced different partitionings")
	}
	// Network ids order by smallest endpoint.
	if first[0].ID != 0 || !first[0].Touches(pos(0, 0)) {
		t.Errorf("network 0 should contain the smallest endpoint")
	}
}

func TestBuildAssignsCeilings(t *testing.T) {
	g := mustGrid(t, 4, 4)
	cfg := &Config{MaxCurrent: 1.5, MaxPower: 7.5}
	nets := NewBuilder(cfg, nil).Build(g, []Segment{{A: pos(0, 0), B: pos(1, 0)}})

	if nets[0].MaxCurrent != 1.5 {
		t.Errorf("expected ceiling 1.5A, got %v", nets[0].MaxCurrent)
	}
	if nets[0].MaxPower != 7.5 {
		t.Errorf("expected ceiling 7.5W, got %v", nets[0].MaxPower)
	}
}

func TestConfigValidateFillsDefaults(t *testing.T) {
	cfg := &Config{MaxCurrent: -1}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	def := DefaultConfig()
	if cfg.MaxCurrent != def.MaxCurrent {
		t.Errorf("expected default MaxCurrent %v, got %v", def.MaxCurrent, cfg.MaxCurrent)
	}
	if cfg.MaxPower != def.MaxPower {
		t.Errorf("expected default MaxPower %v, got %v", def.MaxPower, cfg.MaxPower)
	}
}

func TestEndpoints(t *testing.T) {
	g := mustGrid(t, 8, 8)
	nets := NewBuilder(nil, nil).Build(g, []Segment{
		{A: pos(1, 0), B: pos(0, 0)},
		{A: pos(1, 0), B: pos(1, 1)},
	})

	got := nets[0].Endpoints()
	want := []grid.Position{pos(0, 0), pos(1, 0), pos(1, 1)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected sorted unique endpoints %v, got %v", want, got)
	}
}

func TestResetAggregates(t *testing.T) {
	g := mustGrid(t, 4, 4)
	nets := NewBuilder(nil, nil).Build(g, []Segment{{A: pos(0, 0), B: pos(1, 0)}})
	n := nets[0]
	n.Voltage, n.Current, n.Grounded = 9, 0.5, true
	n.ResetAggregates()
	if n.Voltage != 0 || n.Current != 0 || n.Grounded {
		t.Errorf("aggregates not cleared: %+v", n)
	}
	if n.MaxCurrent == 0 {
		t.Errorf("ceilings must survive a reset")
	}
}
