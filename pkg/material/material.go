package material

import "github.com/vigil-313/citymesh/pkg/mesh"

// Material describes how one mesh channel is shaded. BaseColor multiplies
// the per-vertex colors carried in the buffer; Emissive marks channels whose
// vertex alpha encodes emission energy rather than opacity.
type Material struct {
	Name        string     `json:"name"`
	BaseColor   mesh.Color `json:"base_color"`
	Roughness   float64    `json:"roughness"`
	Metallic    float64    `json:"metallic"`
	Emissive    bool       `json:"emissive,omitempty"`
	Transparent bool       `json:"transparent,omitempty"`
}

// Set holds one material per mesh channel.
type Set [mesh.ChannelCount]Material

// For returns the material for a channel.
func (s Set) For(c mesh.Channel) Material {
	return s[c]
}
