// Package scene holds the traversable node graph the interaction core hit-tests against.
// The render layer owns the graph; this package only reads transforms, geometry and
// entity tags from it.
package scene

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-viz/common"
	"github.com/go-gl/mathgl/mgl32"
)

// nodeCount generates unique node IDs.
var nodeCount atomic.Uint64

// Entity is the identity tag linking a node to a logical infrastructure resource.
type Entity struct {
	ID    string
	Name  string
	Type  string
	State string
	// Attributes is an arbitrary nested payload of maps, slices and scalars.
	Attributes map[string]any
}

type node struct {
	mu *sync.RWMutex

	id      uint64
	name    string
	visible bool

	parent   *node
	children []*node

	position mgl32.Vec3
	rotation mgl32.Vec3
	scale    mgl32.Vec3

	hasBox  bool
	boxSize mgl32.Vec3

	entity *Entity
}

// Node is one element of the scene graph. Transforms are local to the parent.
type Node interface {
	// ID returns the node's unique identifier.
	//
	// Returns:
	//   - uint64: the node ID
	ID() uint64

	// Name returns the node's display name.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Visible reports whether the node and its subtree take part in hit testing.
	//
	// Returns:
	//   - bool: true if visible
	Visible() bool

	// SetVisible toggles hit testing for the node and its subtree.
	//
	// Parameters:
	//   - visible: true to include the node
	SetVisible(visible bool)

	// Parent returns the parent node, or nil for a root.
	//
	// Returns:
	//   - Node: the parent or nil
	Parent() Node

	// Children returns a snapshot of the direct children.
	//
	// Returns:
	//   - []Node: the children in insertion order
	Children() []Node

	// Add appends children, detaching each from any previous parent.
	//
	// Parameters:
	//   - children: nodes to attach
	Add(children ...Node)

	// Remove detaches child if it is a direct child.
	//
	// Parameters:
	//   - child: the node to detach
	Remove(child Node)

	// Position returns the local position.
	//
	// Returns:
	//   - mgl32.Vec3: position relative to the parent
	Position() mgl32.Vec3

	// SetPosition sets the local position.
	//
	// Parameters:
	//   - p: position relative to the parent
	SetPosition(p mgl32.Vec3)

	// Rotation returns the local Euler rotation in radians.
	//
	// Returns:
	//   - mgl32.Vec3: rotation around X, Y and Z
	Rotation() mgl32.Vec3

	// SetRotation sets the local Euler rotation in radians.
	//
	// Parameters:
	//   - r: rotation around X, Y and Z
	SetRotation(r mgl32.Vec3)

	// Scale returns the local scale.
	//
	// Returns:
	//   - mgl32.Vec3: scale factors
	Scale() mgl32.Vec3

	// SetScale sets the local scale.
	//
	// Parameters:
	//   - s: scale factors
	SetScale(s mgl32.Vec3)

	// Box returns the node's box geometry, centred on its local origin.
	//
	// Returns:
	//   - mgl32.Vec3: full box size
	//   - bool: false if the node has no geometry
	Box() (mgl32.Vec3, bool)

	// SetBox assigns box geometry of the given full size.
	//
	// Parameters:
	//   - size: width, height and depth
	SetBox(size mgl32.Vec3)

	// Entity returns the node's own identity tag, or nil.
	//
	// Returns:
	//   - *Entity: the tag or nil
	Entity() *Entity

	// SetEntity tags the node. Pass nil to remove the tag.
	//
	// Parameters:
	//   - e: the tag
	SetEntity(e *Entity)

	// LocalMatrix returns the node's transform relative to its parent.
	//
	// Returns:
	//   - mgl32.Mat4: the local model matrix
	LocalMatrix() mgl32.Mat4

	// WorldMatrix composes the local matrices from the root down to this node.
	//
	// Returns:
	//   - mgl32.Mat4: the world model matrix
	WorldMatrix() mgl32.Mat4

	// WorldPosition returns the node's origin in world space.
	//
	// Returns:
	//   - mgl32.Vec3: the world-space position
	WorldPosition() mgl32.Vec3
}

var _ Node = &node{}

// NewNode creates a detached, visible node with identity transform.
//
// Parameters:
//   - options: functional options to configure the node
//
// Returns:
//   - Node: the new node
func NewNode(options ...NodeBuilderOption) Node {
	n := &node{
		mu:      &sync.RWMutex{},
		id:      nodeCount.Add(1),
		visible: true,
		scale:   mgl32.Vec3{1, 1, 1},
	}
	for _, option := range options {
		option(n)
	}
	return n
}

func (n *node) ID() uint64 {
	return n.id
}

func (n *node) Name() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.name
}

func (n *node) Visible() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.visible
}

func (n *node) SetVisible(visible bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.visible = visible
}

func (n *node) Parent() Node {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *node) Children() []Node {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

func (n *node) Add(children ...Node) {
	for _, child := range children {
		c, ok := child.(*node)
		if !ok || c == nil || c == n {
			continue
		}
		c.mu.RLock()
		old := c.parent
		c.mu.RUnlock()
		if old != nil {
			old.Remove(c)
		}

		c.mu.Lock()
		c.parent = n
		c.mu.Unlock()

		n.mu.Lock()
		n.children = append(n.children, c)
		n.mu.Unlock()
	}
}

func (n *node) Remove(child Node) {
	c, ok := child.(*node)
	if !ok || c == nil {
		return
	}
	n.mu.Lock()
	removed := false
	for i, existing := range n.children {
		if existing == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			removed = true
			break
		}
	}
	n.mu.Unlock()

	if removed {
		c.mu.Lock()
		c.parent = nil
		c.mu.Unlock()
	}
}

func (n *node) Position() mgl32.Vec3 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.position
}

func (n *node) SetPosition(p mgl32.Vec3) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.position = p
}

func (n *node) Rotation() mgl32.Vec3 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.rotation
}

func (n *node) SetRotation(r mgl32.Vec3) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.rotation = r
}

func (n *node) Scale() mgl32.Vec3 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.scale
}

func (n *node) SetScale(s mgl32.Vec3) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.scale = s
}

func (n *node) Box() (mgl32.Vec3, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.boxSize, n.hasBox
}

func (n *node) SetBox(size mgl32.Vec3) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.boxSize = size
	n.hasBox = true
}

func (n *node) Entity() *Entity {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.entity
}

func (n *node) SetEntity(e *Entity) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.entity = e
}

func (n *node) LocalMatrix() mgl32.Mat4 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return common.BuildModelMatrix(n.position, n.rotation, n.scale)
}

func (n *node) WorldMatrix() mgl32.Mat4 {
	m := n.LocalMatrix()
	for p := n.parentNode(); p != nil; p = p.parentNode() {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

func (n *node) WorldPosition() mgl32.Vec3 {
	return common.TransformPoint(n.WorldMatrix(), mgl32.Vec3{})
}

func (n *node) parentNode() *node {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.parent
}

// Traverse visits root and its descendants depth-first in child order.
// Returning false from fn skips the visited node's subtree.
//
// Parameters:
//   - root: the starting node
//   - fn: visitor
func Traverse(root Node, fn func(Node) bool) {
	if root == nil {
		return
	}
	if !fn(root) {
		return
	}
	for _, c := range root.Children() {
		Traverse(c, fn)
	}
}

// ResolveEntity walks from n up the parent chain and returns the first node carrying
// an entity tag. Grouped meshes representing one resource resolve to the group's tag.
//
// Parameters:
//   - n: the starting node
//
// Returns:
//   - Node: the tagged node, or nil
//   - *Entity: its tag, or nil
func ResolveEntity(n Node) (Node, *Entity) {
	for cur := n; cur != nil; cur = cur.Parent() {
		if e := cur.Entity(); e != nil {
			return cur, e
		}
	}
	return nil, nil
}

// FindEntity returns the first node in root's subtree tagged with id.
//
// Parameters:
//   - root: the subtree to search
//   - id: the entity ID
//
// Returns:
//   - Node: the tagged node, or nil
func FindEntity(root Node, id string) Node {
	var found Node
	Traverse(root, func(n Node) bool {
		if found != nil {
			return false
		}
		if e := n.Entity(); e != nil && e.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}
