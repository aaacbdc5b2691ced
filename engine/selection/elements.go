package selection

// ElementKind distinguishes the UI elements owned by a Manager.
type ElementKind int

const (
	ElementTooltip ElementKind = iota
	ElementPanel
)

func (k ElementKind) String() string {
	if k == ElementPanel {
		return "panel"
	}
	return "tooltip"
}

// Element is a UI surface the Manager creates on first use and mutates in place.
// X and Y are screen coordinates in pixels.
type Element struct {
	Kind    ElementKind
	Visible bool
	X, Y    float32
	Text    string
	Lines   []string
}

// Layer hosts the Manager's elements. AddElement is called once per element when it is
// first created and RemoveElement once on Dispose.
type Layer interface {
	// AddElement mounts e.
	//
	// Parameters:
	//   - e: the element, owned by the Manager
	AddElement(e *Element)

	// RemoveElement unmounts e.
	//
	// Parameters:
	//   - e: a previously added element
	RemoveElement(e *Element)
}
