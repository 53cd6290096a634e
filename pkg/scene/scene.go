package scene

import (
	"math"

	"github.com/vigil-313/citymesh/pkg/geo"
	"github.com/vigil-313/citymesh/pkg/material"
	"github.com/vigil-313/citymesh/pkg/mesh"
)

// Surface is one drawable channel of a node: a packed buffer bound to its
// resolved material. Buffers are owned exclusively by their node.
type Surface struct {
	Channel  mesh.Channel
	Buffer   *mesh.SurfaceBuffer
	Material material.Material
}

// Node is an element of the streamed scene tree. Chunk nodes parent the
// feature nodes spawned for their records; detaching a chunk node orphans
// the whole subtree so late-finishing work can detect the teardown.
type Node struct {
	ID       int64
	Name     string
	Label    string
	Surfaces []Surface

	parent   *Node
	children []*Node
	attached bool
}

// NewRoot creates an attached root node. Everything else starts detached
// and becomes attached by being added under an attached parent.
func NewRoot(name string) *Node {
	return &Node{Name: name, attached: true}
}

// NewNode creates a detached node.
func NewNode(id int64, name string) *Node {
	return &Node{ID: id, Name: name}
}

// AddChild links c under n. If n is attached the whole subtree under c
// becomes attached.
func (n *Node) AddChild(c *Node) {
	if c == nil || c.parent != nil {
		return
	}
	c.parent = n
	n.children = append(n.children, c)
	if n.attached {
		c.setAttached(true)
	}
}

// Detach removes n from its parent and marks the entire subtree detached.
// Detached nodes are never reattached; teardown frees them for collection.
func (n *Node) Detach() {
	if p := n.parent; p != nil {
		for i, c := range p.children {
			if c == n {
				p.children = append(p.children[:i], p.children[i+1:]...)
				break
			}
		}
		n.parent = nil
	}
	n.setAttached(false)
}

func (n *Node) setAttached(v bool) {
	n.attached = v
	for _, c := range n.children {
		c.setAttached(v)
	}
}

// Attached reports whether the node is reachable from a root.
func (n *Node) Attached() bool { return n.attached }

// Parent returns the current parent, nil for roots and detached nodes.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the live child slice; callers must not mutate it.
func (n *Node) Children() []*Node { return n.children }

// Walk visits n and its subtree depth-first. Returning false from fn stops
// descent below that node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// VertexCount totals the packed vertices in the subtree.
func (n *Node) VertexCount() int {
	total := 0
	n.Walk(func(c *Node) bool {
		for _, s := range c.Surfaces {
			total += s.Buffer.VertexCount()
		}
		return true
	})
	return total
}

// NodeCount counts the nodes in the subtree, n included.
func (n *Node) NodeCount() int {
	total := 0
	n.Walk(func(*Node) bool { total++; return true })
	return total
}

// Bounds returns the axis-aligned box enclosing every surface vertex in the
// subtree. ok is false when the subtree holds no geometry.
func (n *Node) Bounds() (min, max geo.Vec3, ok bool) {
	min = geo.V3(math.MaxFloat64, math.MaxFloat64, math.MaxFloat64)
	max = geo.V3(-math.MaxFloat64, -math.MaxFloat64, -math.MaxFloat64)

	n.Walk(func(c *Node) bool {
		for _, s := range c.Surfaces {
			for _, p := range s.Buffer.Positions {
				ok = true
				min.X = math.Min(min.X, p.X)
				min.Y = math.Min(min.Y, p.Y)
				min.Z = math.Min(min.Z, p.Z)
				max.X = math.Max(max.X, p.X)
				max.Y = math.Max(max.Y, p.Y)
				max.Z = math.Max(max.Z, p.Z)
			}
		}
		return true
	})
	if !ok {
		return geo.Vec3{}, geo.Vec3{}, false
	}
	return min, max, true
}
