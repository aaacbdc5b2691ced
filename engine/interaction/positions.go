package interaction

import (
	"slices"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-viz/engine/cull"
	"github.com/Carmen-Shannon/oxy-viz/engine/focus"
	"github.com/Carmen-Shannon/oxy-viz/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// PositionMap is the live entity ID to world position table shared by the data layer
// and the focus controllers. Readers always see the latest write.
type PositionMap struct {
	mu        sync.RWMutex
	positions map[string]mgl32.Vec3
	synced    map[string]struct{}
}

var _ focus.PositionLookup = &PositionMap{}

// NewPositionMap creates an empty table.
func NewPositionMap() *PositionMap {
	return &PositionMap{
		positions: make(map[string]mgl32.Vec3),
		synced:    make(map[string]struct{}),
	}
}

// Set records the position of id.
func (m *PositionMap) Set(id string, p mgl32.Vec3) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.positions[id] = p
}

// Delete forgets id.
func (m *PositionMap) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.positions, id)
	delete(m.synced, id)
}

// Lookup returns the position of id.
func (m *PositionMap) Lookup(id string) (mgl32.Vec3, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.positions[id]
	return p, ok
}

// Len returns the number of tracked entities.
func (m *PositionMap) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.positions)
}

// SyncFromScene records the world position of every visible tagged node under root.
// IDs a previous sync wrote that are no longer found are removed. Entries only ever
// written through Set are left untouched.
//
// Parameters:
//   - root: the scene root
//
// Returns:
//   - int: the number of positions written
func (m *PositionMap) SyncFromScene(root scene.Node) int {
	if root == nil {
		return 0
	}
	type entry struct {
		id  string
		pos mgl32.Vec3
	}
	var found []entry
	scene.Traverse(root, func(n scene.Node) bool {
		if !n.Visible() {
			return false
		}
		if e := n.Entity(); e != nil && e.ID != "" {
			found = append(found, entry{id: e.ID, pos: n.WorldPosition()})
		}
		return true
	})

	seen := make(map[string]struct{}, len(found))
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range found {
		m.positions[e.id] = e.pos
		seen[e.id] = struct{}{}
	}
	for id := range m.synced {
		if _, ok := seen[id]; !ok {
			delete(m.positions, id)
		}
	}
	m.synced = seen
	return len(found)
}

// Items returns every tracked entity as a cull batch, sorted by ID.
//
// Returns:
//   - []cull.Item: the batch
func (m *PositionMap) Items() []cull.Item {
	m.mu.RLock()
	items := make([]cull.Item, 0, len(m.positions))
	for id, p := range m.positions {
		items = append(items, cull.Item{ID: id, Position: p})
	}
	m.mu.RUnlock()

	slices.SortFunc(items, func(a, b cull.Item) int { return strings.Compare(a.ID, b.ID) })
	return items
}
