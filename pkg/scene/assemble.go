package scene

import (
	"fmt"
	"time"

	"github.com/vigil-313/citymesh/pkg/mapdata"
	"github.com/vigil-313/citymesh/pkg/material"
	"github.com/vigil-313/citymesh/pkg/mesh"
)

const maxLabelRunes = 48

// BuildFeatureNode packs a generated mesh into a scene node: one surface per
// non-empty channel, each bound to its resolved material. A record whose
// mesh came out empty still yields a (surface-less) node so the chunk can
// account for it uniformly.
func BuildFeatureNode(rec mapdata.Record, res *mesh.Result, mats *material.Resolver) *Node {
	if mats == nil {
		mats = material.NewResolver()
	}
	set := mats.Resolve(rec.Material)

	n := NewNode(rec.ID, fmt.Sprintf("%s_%d", rec.Kind, rec.ID))
	n.Label = FeatureLabel(rec)
	if res == nil {
		return n
	}
	for c := mesh.Channel(0); c < mesh.ChannelCount; c++ {
		buf := res.Buffer(c)
		if buf.IsEmpty() {
			continue
		}
		n.Surfaces = append(n.Surfaces, Surface{
			Channel:  c,
			Buffer:   buf,
			Material: set.For(c),
		})
	}
	return n
}

// FeatureLabel renders the display label for a record. Unnamed features get
// no label; buildings carry floor count and height after the name.
func FeatureLabel(rec mapdata.Record) string {
	if rec.Name == "" {
		return ""
	}
	label := rec.Name
	if rec.Kind == mapdata.KindBuilding {
		label = fmt.Sprintf("%s · %dfl · %.0f m", rec.Name, rec.Levels, rec.Height)
	}
	return truncateRunes(label, maxLabelRunes)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// NodeSummary is the serializable shape of one node, buffers reduced to
// counts. The full vertex data never crosses the JSON boundary.
type NodeSummary struct {
	ID       int64            `json:"id,omitempty"`
	Name     string           `json:"name"`
	Label    string           `json:"label,omitempty"`
	Surfaces []SurfaceSummary `json:"surfaces,omitempty"`
	Children []NodeSummary    `json:"children,omitempty"`
}

// SurfaceSummary describes one packed surface.
type SurfaceSummary struct {
	Channel   string `json:"channel"`
	Material  string `json:"material"`
	Vertices  int    `json:"vertices"`
	Triangles int    `json:"triangles"`
}

// Bounds is an axis-aligned box in serializable form.
type Bounds struct {
	Min [3]float64 `json:"min"`
	Max [3]float64 `json:"max"`
}

// Snapshot is a point-in-time JSON view of a scene tree.
type Snapshot struct {
	GeneratedAt string      `json:"generated_at"`
	Nodes       int         `json:"nodes"`
	Vertices    int         `json:"vertices"`
	Bounds      *Bounds     `json:"bounds,omitempty"`
	Root        NodeSummary `json:"root"`
}

// Snap summarizes the tree rooted at n for serialization.
func Snap(n *Node) Snapshot {
	s := Snapshot{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Nodes:       n.NodeCount(),
		Vertices:    n.VertexCount(),
		Root:        summarize(n),
	}
	if min, max, ok := n.Bounds(); ok {
		s.Bounds = &Bounds{
			Min: [3]float64{min.X, min.Y, min.Z},
			Max: [3]float64{max.X, max.Y, max.Z},
		}
	}
	return s
}

func summarize(n *Node) NodeSummary {
	out := NodeSummary{ID: n.ID, Name: n.Name, Label: n.Label}
	for _, s := range n.Surfaces {
		out.Surfaces = append(out.Surfaces, SurfaceSummary{
			Channel:   s.Channel.String(),
			Material:  s.Material.Name,
			Vertices:  s.Buffer.VertexCount(),
			Triangles: s.Buffer.TriangleCount(),
		})
	}
	for _, c := range n.Children() {
		out.Children = append(out.Children, summarize(c))
	}
	return out
}
