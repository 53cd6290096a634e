package scene

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/vigil-313/citymesh/pkg/building"
	"github.com/vigil-313/citymesh/pkg/geo"
	"github.com/vigil-313/citymesh/pkg/mapdata"
	"github.com/vigil-313/citymesh/pkg/material"
	"github.com/vigil-313/citymesh/pkg/mesh"
)

func testRecord() mapdata.Record {
	return mapdata.Record{
		ID:        7,
		Name:      "Harbor House",
		Kind:      mapdata.KindBuilding,
		Footprint: geo.NewPolygon(geo.Pt(0, 0), geo.Pt(10, 0), geo.Pt(10, 10), geo.Pt(0, 10)),
		Center:    geo.Pt(5, 5),
		Height:    9,
		Levels:    3,
		Material:  "brick",
	}
}

func TestBuildFeatureNode(t *testing.T) {
	rec := testRecord()
	res := building.Generate(rec, building.DeriveContext(rec, nil, nil, true))
	n := BuildFeatureNode(rec, res, material.NewResolver())

	if n.ID != rec.ID {
		t.Errorf("node id %d, want %d", n.ID, rec.ID)
	}
	if len(n.Surfaces) == 0 {
		t.Fatal("expected surfaces for a generated building")
	}
	for _, s := range n.Surfaces {
		if s.Buffer.IsEmpty() {
			t.Errorf("channel %s packed empty", s.Channel)
		}
	}
	var wall *Surface
	for i := range n.Surfaces {
		if n.Surfaces[i].Channel == mesh.ChannelWall {
			wall = &n.Surfaces[i]
		}
	}
	if wall == nil || wall.Material.Name != "brick" {
		t.Error("wall surface should carry the resolved brick material")
	}
}

func TestBuildFeatureNodeEmptyMesh(t *testing.T) {
	rec := testRecord()
	rec.Footprint = geo.NewPolygon(geo.Pt(0, 0), geo.Pt(1, 1))
	res := building.Generate(rec, building.DeriveContext(rec, nil, nil, true))
	n := BuildFeatureNode(rec, res, nil)
	if len(n.Surfaces) != 0 {
		t.Error("degenerate record should pack no surfaces")
	}
	if n.Label == "" {
		t.Error("named record should keep its label even without geometry")
	}
}

func TestFeatureLabel(t *testing.T) {
	rec := testRecord()
	if got := FeatureLabel(rec); got != "Harbor House · 3fl · 9 m" {
		t.Errorf("label = %q", got)
	}

	rec.Name = ""
	if got := FeatureLabel(rec); got != "" {
		t.Errorf("unnamed record should have no label, got %q", got)
	}

	rec.Name = strings.Repeat("x", 80)
	if n := len([]rune(FeatureLabel(rec))); n != 48 {
		t.Errorf("label length = %d runes, want 48", n)
	}

	park := mapdata.Record{ID: 2, Name: "Mill Park", Kind: mapdata.KindPark}
	if got := FeatureLabel(park); got != "Mill Park" {
		t.Errorf("non-building label = %q", got)
	}
}

func TestSnap(t *testing.T) {
	rec := testRecord()
	res := building.Generate(rec, building.DeriveContext(rec, nil, nil, false))

	root := NewRoot("world")
	chunk := NewNode(0, "chunk_0_0")
	root.AddChild(chunk)
	chunk.AddChild(BuildFeatureNode(rec, res, nil))

	snap := Snap(root)
	if snap.Nodes != 3 {
		t.Errorf("snapshot nodes = %d, want 3", snap.Nodes)
	}
	if snap.Bounds == nil {
		t.Fatal("expected bounds in snapshot")
	}
	if snap.Vertices != root.VertexCount() {
		t.Error("snapshot vertex count disagrees with tree")
	}

	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("snapshot did not marshal: %v", err)
	}
	if !strings.Contains(string(data), "chunk_0_0") {
		t.Error("snapshot JSON missing chunk node")
	}
}
