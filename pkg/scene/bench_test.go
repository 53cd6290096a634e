package scene

import (
	"fmt"
	"testing"

	"github.com/vigil-313/citymesh/pkg/building"
	"github.com/vigil-313/citymesh/pkg/geo"
	"github.com/vigil-313/citymesh/pkg/mapdata"
	"github.com/vigil-313/citymesh/pkg/material"
)

// gridRecords lays out n×n square buildings on a 20 m pitch.
func gridRecords(n int) []mapdata.Record {
	recs := make([]mapdata.Record, 0, n*n)
	tags := []string{"residential", "commercial", "industrial", ""}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			x, z := float64(i)*20, float64(j)*20
			recs = append(recs, mapdata.Record{
				ID:        int64(i*n + j + 1),
				Name:      fmt.Sprintf("Block %d-%d", i, j),
				Kind:      mapdata.KindBuilding,
				Footprint: geo.NewPolygon(geo.Pt(x, z), geo.Pt(x+12, z), geo.Pt(x+12, z+12), geo.Pt(x, z+12)),
				Center:    geo.Pt(x+6, z+6),
				Tag:       tags[(i+j)%len(tags)],
				Height:    float64(6 + (i+j)%5*3),
				Levels:    2 + (i+j)%5,
			})
		}
	}
	return recs
}

func buildGrid(b testing.TB, n int, detailed bool) *Node {
	mats := material.NewResolver()
	root := NewRoot("world")
	for _, rec := range gridRecords(n) {
		res := building.Generate(rec, building.DeriveContext(rec, nil, nil, detailed))
		root.AddChild(BuildFeatureNode(rec, res, mats))
	}
	return root
}

func TestGridAssembly(t *testing.T) {
	root := buildGrid(t, 4, true)
	if root.NodeCount() != 17 {
		t.Fatalf("expected 17 nodes, got %d", root.NodeCount())
	}
	if r := ValidateTree(root); !r.Valid {
		t.Fatalf("grid tree invalid: %s", r.Summary)
	}
}

func BenchmarkGenerateAndPack10x10(b *testing.B) {
	for i := 0; i < b.N; i++ {
		buildGrid(b, 10, false)
	}
}

func BenchmarkGenerateAndPackDetailed10x10(b *testing.B) {
	for i := 0; i < b.N; i++ {
		buildGrid(b, 10, true)
	}
}
