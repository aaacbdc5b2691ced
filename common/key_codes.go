package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyW      = 87  // W key (ASCII), pan forward
	KeyA      = 65  // A key (ASCII), pan left
	KeyS      = 83  // S key (ASCII), pan back
	KeyD      = 68  // D key (ASCII), pan right
	KeySpace  = 32  // Spacebar (ASCII)
	KeyEsc    = 256 // Escape key (GLFW), clears the selection
	KeyTab    = 258 // Tab key (GLFW)
	KeyOrbit  = 49  // 1 key (ASCII), orbit camera mode
	KeyMap    = 50  // 2 key (ASCII), map camera mode
	KeyFocus  = 51  // 3 key (ASCII), focus camera mode
	KeyOrtho  = 67  // C key (ASCII), toggle projection mode
	KeyUnused = 0
)

// PanKeys lists the key codes the pan rig treats as held movement keys.
var PanKeys = [...]uint32{KeyW, KeyA, KeyS, KeyD}

// IsPanKey reports whether code is one of the WASD pan keys.
func IsPanKey(code uint32) bool {
	for _, k := range PanKeys {
		if k == code {
			return true
		}
	}
	return false
}
