package material

import (
	"strings"

	"github.com/vigil-313/citymesh/pkg/mesh"
)

// Resolver maps a feature's material tag to a per-channel material set. An
// unknown tag resolves to the default set with the tag carried through as the
// wall material name, so downstream consumers still see what the data asked
// for. Resolution is a pure lookup; identical tags always yield identical
// sets.
type Resolver struct {
	sets     map[string]Set
	fallback Set
}

// NewResolver builds a resolver preloaded with the built-in palette.
func NewResolver() *Resolver {
	r := &Resolver{sets: make(map[string]Set)}
	r.fallback = makeSet("concrete", mesh.RGB(0.72, 0.70, 0.66), 0.85, 0)
	for tag, s := range builtins() {
		r.sets[tag] = s
	}
	return r
}

// Register adds or replaces the set for a tag. Tags are case-insensitive.
func (r *Resolver) Register(tag string, s Set) {
	r.sets[strings.ToLower(strings.TrimSpace(tag))] = s
}

// Resolve returns the material set for a tag, falling back deterministically
// when the tag is unknown or empty.
func (r *Resolver) Resolve(tag string) Set {
	key := strings.ToLower(strings.TrimSpace(tag))
	if s, ok := r.sets[key]; ok {
		return s
	}
	s := r.fallback
	if key != "" {
		s[mesh.ChannelWall].Name = key
	}
	return s
}

// makeSet derives a full channel set from a wall material. Glass, frame,
// roof and floor channels follow fixed policies; only the wall varies with
// the tag.
func makeSet(name string, wall mesh.Color, roughness, metallic float64) Set {
	var s Set
	s[mesh.ChannelWall] = Material{Name: name, BaseColor: wall, Roughness: roughness, Metallic: metallic}
	s[mesh.ChannelGlass] = Material{
		Name:        "glass",
		BaseColor:   mesh.RGB(1, 1, 1),
		Roughness:   0.05,
		Metallic:    0.1,
		Emissive:    true,
		Transparent: true,
	}
	s[mesh.ChannelFrame] = Material{Name: "frame", BaseColor: mesh.RGB(1, 1, 1), Roughness: 0.6, Metallic: 0.2}
	s[mesh.ChannelRoof] = Material{Name: "roof", BaseColor: mesh.RGB(1, 1, 1), Roughness: 0.9, Metallic: 0}
	s[mesh.ChannelFloor] = Material{Name: "floor", BaseColor: mesh.RGB(1, 1, 1), Roughness: 0.95, Metallic: 0}
	return s
}

func builtins() map[string]Set {
	return map[string]Set{
		"concrete": makeSet("concrete", mesh.RGB(0.72, 0.70, 0.66), 0.85, 0),
		"brick":    makeSet("brick", mesh.RGB(0.62, 0.38, 0.30), 0.9, 0),
		"glass":    makeSet("glass", mesh.RGB(0.55, 0.65, 0.72), 0.15, 0.3),
		"steel":    makeSet("steel", mesh.RGB(0.58, 0.60, 0.63), 0.4, 0.8),
		"wood":     makeSet("wood", mesh.RGB(0.55, 0.42, 0.30), 0.75, 0),
		"stone":    makeSet("stone", mesh.RGB(0.60, 0.58, 0.54), 0.9, 0),
		"plaster":  makeSet("plaster", mesh.RGB(0.82, 0.79, 0.72), 0.8, 0),
		"asphalt":  makeSet("asphalt", mesh.RGB(0.22, 0.22, 0.24), 0.95, 0),
		"paver":    makeSet("paver", mesh.RGB(0.52, 0.50, 0.48), 0.9, 0),
		"grass":    makeSet("grass", mesh.RGB(0.30, 0.48, 0.25), 1.0, 0),
		"water":    makeSet("water", mesh.RGB(0.18, 0.34, 0.48), 0.1, 0),
	}
}
