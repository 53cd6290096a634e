package scene

import (
	"testing"

	"github.com/vigil-313/citymesh/pkg/mesh"
)

func TestValidateTreeClean(t *testing.T) {
	root := NewRoot("world")
	root.AddChild(leafWithQuad(1, "a"))
	root.AddChild(leafWithQuad(2, "b"))

	r := ValidateTree(root)
	if !r.Valid {
		t.Fatalf("clean tree reported invalid: %s", r.Summary)
	}
}

func TestValidateTreeNil(t *testing.T) {
	if ValidateTree(nil).Valid {
		t.Error("nil root must be invalid")
	}
}

func TestValidateTreeDuplicateIDs(t *testing.T) {
	root := NewRoot("world")
	root.AddChild(leafWithQuad(5, "a"))
	root.AddChild(leafWithQuad(5, "b"))

	r := ValidateTree(root)
	if r.Valid {
		t.Error("duplicate ids must fail validation")
	}
}

func TestValidateTreeBadIndex(t *testing.T) {
	n := leafWithQuad(1, "a")
	n.Surfaces[0].Buffer.Indices = append(n.Surfaces[0].Buffer.Indices, 99)
	root := NewRoot("world")
	root.AddChild(n)

	r := ValidateTree(root)
	if r.Valid {
		t.Error("out-of-range index must fail validation")
	}
}

func TestValidateTreeEmptySurface(t *testing.T) {
	n := NewNode(1, "a")
	n.Surfaces = []Surface{{Channel: mesh.ChannelWall, Buffer: &mesh.SurfaceBuffer{}}}
	root := NewRoot("world")
	root.AddChild(n)

	r := ValidateTree(root)
	if !r.Valid {
		t.Error("empty surface is a warning, not an error")
	}
	if len(r.Warnings) == 0 {
		t.Error("expected a warning for the empty surface")
	}
}
