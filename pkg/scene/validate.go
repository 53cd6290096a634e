package scene

import (
	"fmt"

	"github.com/vigil-313/citymesh/pkg/validation"
)

// ValidateTree performs structural validation on a scene tree: node
// identity, attachment consistency, and surface buffer integrity.
func ValidateTree(root *Node) *validation.Report {
	r := validation.NewReport()

	if root == nil {
		r.AddError(validation.Result{
			Level:   validation.LevelGeometry,
			Message: "scene root is nil",
		})
		return r
	}
	if !root.Attached() {
		r.AddError(validation.Result{
			Level:   validation.LevelGeometry,
			Message: "scene root is detached",
		})
	}

	seen := make(map[int64]string)
	root.Walk(func(n *Node) bool {
		if n != root && n.ID != 0 {
			if prev, dup := seen[n.ID]; dup {
				r.AddError(validation.Result{
					Level:     validation.LevelGeometry,
					Message:   fmt.Sprintf("duplicate node id %d (%q and %q)", n.ID, prev, n.Name),
					FeatureID: n.ID,
				})
			}
			seen[n.ID] = n.Name
		}
		if n.Attached() != root.Attached() {
			r.AddError(validation.Result{
				Level:     validation.LevelGeometry,
				Message:   fmt.Sprintf("node %q attachment disagrees with its root", n.Name),
				FeatureID: n.ID,
			})
		}
		validateSurfaces(n, r)
		return true
	})

	r.AddInfo(validation.Result{
		Level:   validation.LevelGeometry,
		Message: fmt.Sprintf("validated %d nodes, %d vertices", root.NodeCount(), root.VertexCount()),
	})
	return r
}

func validateSurfaces(n *Node, r *validation.Report) {
	for _, s := range n.Surfaces {
		if s.Buffer == nil || s.Buffer.IsEmpty() {
			r.AddWarning(validation.Result{
				Level:     validation.LevelGeometry,
				Message:   fmt.Sprintf("node %q packs an empty %s surface", n.Name, s.Channel),
				FeatureID: n.ID,
			})
			continue
		}
		limit := int32(s.Buffer.VertexCount())
		for _, idx := range s.Buffer.Indices {
			if idx < 0 || idx >= limit {
				r.AddError(validation.Result{
					Level:       validation.LevelGeometry,
					Message:     fmt.Sprintf("node %q %s surface: index %d out of range", n.Name, s.Channel, idx),
					FeatureID:   n.ID,
					ActualValue: idx,
					Expected:    fmt.Sprintf("0..%d", limit-1),
				})
				break
			}
		}
		if len(s.Buffer.Indices)%3 != 0 {
			r.AddError(validation.Result{
				Level:     validation.LevelGeometry,
				Message:   fmt.Sprintf("node %q %s surface: index count %d not a multiple of 3", n.Name, s.Channel, len(s.Buffer.Indices)),
				FeatureID: n.ID,
			})
		}
	}
}
