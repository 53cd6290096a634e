package mesh

import "github.com/vigil-313/citymesh/pkg/geo"

// Channel identifies one of the material-separated geometry buffers.
type Channel int

const (
	ChannelWall Channel = iota
	ChannelGlass
	ChannelFrame
	ChannelRoof
	ChannelFloor

	ChannelCount
)

// String returns the channel name used for materials and scene output.
func (c Channel) String() string {
	switch c {
	case ChannelWall:
		return "wall"
	case ChannelGlass:
		return "glass"
	case ChannelFrame:
		return "frame"
	case ChannelRoof:
		return "roof"
	case ChannelFloor:
		return "floor"
	default:
		return "unknown"
	}
}

// Color is an RGBA color with components in [0,1]. On the glass channel the
// alpha component carries emission intensity rather than opacity.
type Color [4]float64

// RGB builds an opaque color.
func RGB(r, g, b float64) Color {
	return Color{r, g, b, 1}
}

// WithAlpha returns the color with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c[3] = a
	return c
}

// Scaled returns the color with RGB scaled by s, alpha untouched.
func (c Color) Scaled(s float64) Color {
	return Color{c[0] * s, c[1] * s, c[2] * s, c[3]}
}

// SurfaceBuffer accumulates vertex data for one material channel. Index
// values always reference vertices already in the buffer, and triangles wind
// counterclockwise as seen from the side the normal points toward.
type SurfaceBuffer struct {
	Positions []geo.Vec3
	Normals   []geo.Vec3
	UVs       [][2]float64
	Colors    []Color
	Indices   []int32
}

// VertexCount returns the number of vertices in the buffer.
func (b *SurfaceBuffer) VertexCount() int {
	return len(b.Positions)
}

// TriangleCount returns the number of triangles in the buffer.
func (b *SurfaceBuffer) TriangleCount() int {
	return len(b.Indices) / 3
}

// IsEmpty returns true if the buffer holds no triangles.
func (b *SurfaceBuffer) IsEmpty() bool {
	return len(b.Indices) == 0
}

// AddVertex appends one vertex and returns its index.
func (b *SurfaceBuffer) AddVertex(pos, normal geo.Vec3, uv [2]float64, col Color) int32 {
	i := int32(len(b.Positions))
	b.Positions = append(b.Positions, pos)
	b.Normals = append(b.Normals, normal)
	b.UVs = append(b.UVs, uv)
	b.Colors = append(b.Colors, col)
	return i
}

// AddTriangle appends one triangle by vertex index.
func (b *SurfaceBuffer) AddTriangle(i0, i1, i2 int32) {
	b.Indices = append(b.Indices, i0, i1, i2)
}

// AddQuad emits the quad p0-p1-p2-p3 (counterclockwise as seen against the
// normal) as two triangles sharing four vertices. UVs span the quad edge
// lengths so textures keep a constant world-space scale.
func (b *SurfaceBuffer) AddQuad(p0, p1, p2, p3 geo.Vec3, normal geo.Vec3, col Color) {
	u := p1.Sub(p0).Length()
	v := p3.Sub(p0).Length()
	i0 := b.AddVertex(p0, normal, [2]float64{0, 0}, col)
	i1 := b.AddVertex(p1, normal, [2]float64{u, 0}, col)
	i2 := b.AddVertex(p2, normal, [2]float64{u, v}, col)
	i3 := b.AddVertex(p3, normal, [2]float64{0, v}, col)
	b.AddTriangle(i0, i1, i2)
	b.AddTriangle(i0, i2, i3)
}

// AddQuadAuto emits a quad computing the face normal from its corners.
func (b *SurfaceBuffer) AddQuadAuto(p0, p1, p2, p3 geo.Vec3, col Color) {
	n := p1.Sub(p0).Cross(p3.Sub(p0)).Normalize()
	b.AddQuad(p0, p1, p2, p3, n, col)
}

// Merge appends all geometry from other into b, remapping indices.
func (b *SurfaceBuffer) Merge(other *SurfaceBuffer) {
	base := int32(len(b.Positions))
	b.Positions = append(b.Positions, other.Positions...)
	b.Normals = append(b.Normals, other.Normals...)
	b.UVs = append(b.UVs, other.UVs...)
	b.Colors = append(b.Colors, other.Colors...)
	for _, i := range other.Indices {
		b.Indices = append(b.Indices, base+i)
	}
}

// FloorEmission summarizes interior lighting for one floor, consumed by an
// external interior-lighting collaborator.
type FloorEmission struct {
	Floor       int     `json:"floor"`
	Windows     int     `json:"windows"`
	LitWindows  int     `json:"lit_windows"`
	MeanEnergy  float64 `json:"mean_energy"`
	DominantHue Color   `json:"dominant_hue"`
}

// Result is the output of one building generation: five surface buffers plus
// per-floor emission metadata.
type Result struct {
	Buffers  [ChannelCount]SurfaceBuffer
	Emission []FloorEmission
}

// Buffer returns the buffer for a channel.
func (r *Result) Buffer(c Channel) *SurfaceBuffer {
	return &r.Buffers[c]
}

// IsEmpty returns true if no channel holds any geometry.
func (r *Result) IsEmpty() bool {
	for i := range r.Buffers {
		if !r.Buffers[i].IsEmpty() {
			return false
		}
	}
	return true
}

// TotalVertices returns the vertex count summed across channels.
func (r *Result) TotalVertices() int {
	total := 0
	for i := range r.Buffers {
		total += r.Buffers[i].VertexCount()
	}
	return total
}
