package scene

import "github.com/go-gl/mathgl/mgl32"

// NodeBuilderOption is a functional option for configuring a Node during construction.
type NodeBuilderOption func(*node)

// WithName sets the node's display name.
//
// Parameters:
//   - name: the name
//
// Returns:
//   - NodeBuilderOption: functional option to set the name
func WithName(name string) NodeBuilderOption {
	return func(n *node) {
		n.name = name
	}
}

// WithPosition sets the node's local position.
//
// Parameters:
//   - p: position relative to the parent
//
// Returns:
//   - NodeBuilderOption: functional option to set the position
func WithPosition(p mgl32.Vec3) NodeBuilderOption {
	return func(n *node) {
		n.position = p
	}
}

// WithRotation sets the node's local Euler rotation in radians.
//
// Parameters:
//   - r: rotation around X, Y and Z
//
// Returns:
//   - NodeBuilderOption: functional option to set the rotation
func WithRotation(r mgl32.Vec3) NodeBuilderOption {
	return func(n *node) {
		n.rotation = r
	}
}

// WithScale sets the node's local scale.
//
// Parameters:
//   - s: scale factors
//
// Returns:
//   - NodeBuilderOption: functional option to set the scale
func WithScale(s mgl32.Vec3) NodeBuilderOption {
	return func(n *node) {
		n.scale = s
	}
}

// WithBox gives the node box geometry of the given full size.
//
// Parameters:
//   - size: width, height and depth
//
// Returns:
//   - NodeBuilderOption: functional option to set the geometry
func WithBox(size mgl32.Vec3) NodeBuilderOption {
	return func(n *node) {
		n.boxSize = size
		n.hasBox = true
	}
}

// WithEntity tags the node with an entity identity.
//
// Parameters:
//   - e: the tag
//
// Returns:
//   - NodeBuilderOption: functional option to set the entity tag
func WithEntity(e *Entity) NodeBuilderOption {
	return func(n *node) {
		n.entity = e
	}
}

// WithVisible sets whether the node takes part in hit testing.
//
// Parameters:
//   - visible: true to include the node
//
// Returns:
//   - NodeBuilderOption: functional option to set visibility
func WithVisible(visible bool) NodeBuilderOption {
	return func(n *node) {
		n.visible = visible
	}
}

// WithChildren attaches initial children.
//
// Parameters:
//   - children: the nodes to attach
//
// Returns:
//   - NodeBuilderOption: functional option to attach children
func WithChildren(children ...Node) NodeBuilderOption {
	return func(n *node) {
		for _, child := range children {
			c, ok := child.(*node)
			if !ok || c == nil || c == n {
				continue
			}
			c.parent = n
			n.children = append(n.children, c)
		}
	}
}
