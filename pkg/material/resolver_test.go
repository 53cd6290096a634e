package material

import (
	"testing"

	"github.com/vigil-313/citymesh/pkg/mesh"
)

func TestResolveBuiltin(t *testing.T) {
	r := NewResolver()
	s := r.Resolve("brick")
	if s.For(mesh.ChannelWall).Name != "brick" {
		t.Errorf("expected brick wall material, got %q", s.For(mesh.ChannelWall).Name)
	}
	if !s.For(mesh.ChannelGlass).Emissive {
		t.Error("glass channel must be emissive")
	}
	if !s.For(mesh.ChannelGlass).Transparent {
		t.Error("glass channel must be transparent")
	}
}

func TestResolveCaseInsensitive(t *testing.T) {
	r := NewResolver()
	if r.Resolve("  Brick ") != r.Resolve("brick") {
		t.Error("resolution should normalize case and whitespace")
	}
}

func TestResolveUnknownTag(t *testing.T) {
	r := NewResolver()
	s := r.Resolve("corrugated_mystery")
	if s.For(mesh.ChannelWall).Name != "corrugated_mystery" {
		t.Errorf("unknown tag should carry through, got %q", s.For(mesh.ChannelWall).Name)
	}
	// Everything but the name follows the fallback set.
	if s.For(mesh.ChannelRoof) != r.Resolve("").For(mesh.ChannelRoof) {
		t.Error("unknown tag should share the fallback roof material")
	}
}

func TestResolveDeterministic(t *testing.T) {
	r := NewResolver()
	if r.Resolve("whatever") != r.Resolve("whatever") {
		t.Error("repeated resolution diverged")
	}
}

func TestRegisterOverride(t *testing.T) {
	r := NewResolver()
	custom := makeSet("neon", mesh.RGB(1, 0, 1), 0.2, 0.5)
	r.Register("Brick", custom)
	if r.Resolve("brick").For(mesh.ChannelWall).Name != "neon" {
		t.Error("Register should replace the builtin set")
	}
}
