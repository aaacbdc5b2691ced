package window

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viz/common"
	"github.com/Carmen-Shannon/oxy-viz/engine/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	events []input.Event
}

func (r *recorder) handle(e *input.Event) { r.events = append(r.events, *e) }

func (r *recorder) kinds() []input.EventKind {
	out := make([]input.EventKind, len(r.events))
	for i, e := range r.events {
		out[i] = e.Kind
	}
	return out
}

func TestScrollBecomesWheelAtCursor(t *testing.T) {
	w := newEngineWindow()
	rec := &recorder{}
	w.Surface().Bind(rec.handle)

	w.cursorMoved(40, 30)
	w.scrolled(1)

	require.Len(t, rec.events, 2)
	wheel := rec.events[1]
	assert.Equal(t, input.Wheel, wheel.Kind)
	assert.Equal(t, float32(-100), wheel.DeltaY, "scrolling away from the user zooms in")
	assert.Equal(t, float32(40), wheel.X)
	assert.Equal(t, float32(30), wheel.Y)
}

func TestPrimaryPressReleaseSynthesizesClick(t *testing.T) {
	w := newEngineWindow()
	rec := &recorder{}
	w.Surface().Bind(rec.handle)

	w.pointer(input.PointerDown, input.ButtonPrimary, 10, 10)
	w.pointer(input.PointerUp, input.ButtonPrimary, 11, 10)
	w.pointer(input.PointerDown, input.ButtonPrimary, 11, 10)
	w.pointer(input.PointerUp, input.ButtonPrimary, 11, 11)

	assert.Equal(t, []input.EventKind{
		input.PointerDown, input.PointerUp, input.Click,
		input.PointerDown, input.PointerUp, input.Click, input.DoubleClick,
	}, rec.kinds())
}

func TestMiddleButtonDoesNotClick(t *testing.T) {
	w := newEngineWindow()
	rec := &recorder{}
	w.Surface().Bind(rec.handle)

	w.pointer(input.PointerDown, input.ButtonMiddle, 5, 5)
	w.pointer(input.PointerUp, input.ButtonMiddle, 5, 5)
	assert.Equal(t, []input.EventKind{input.PointerDown, input.PointerUp}, rec.kinds())
}

func TestKeysReachBothSurfaces(t *testing.T) {
	w := newEngineWindow()
	local, global := &recorder{}, &recorder{}
	w.Surface().Bind(local.handle)
	w.Global().Bind(global.handle)

	w.key(common.KeyW, true)
	w.key(common.KeyW, false)

	assert.Equal(t, []input.EventKind{input.KeyDown, input.KeyUp}, local.kinds())
	assert.Equal(t, []input.EventKind{input.KeyDown, input.KeyUp}, global.kinds())
	assert.Equal(t, uint32(common.KeyW), global.events[0].Key)
}

func TestResizeUpdatesBounds(t *testing.T) {
	w := newEngineWindow(WithSize(800, 600))
	var got [2]int
	w.SetResizeCallback(func(width, height int) { got = [2]int{width, height} })

	w.resized(1024, 768)
	r, ok := w.Surface().Bounds()
	require.True(t, ok)
	assert.Equal(t, input.Rect{Width: 1024, Height: 768}, r)
	assert.Equal(t, [2]int{1024, 768}, got)
	assert.Equal(t, 1024, w.Width())
	assert.Equal(t, 768, w.Height())
}

func TestUninitializedWindowIsNotRunning(t *testing.T) {
	w := newEngineWindow()
	assert.False(t, w.IsRunning())
	assert.Nil(t, w.SurfaceDescriptor())
	assert.Error(t, w.Close())
	assert.NotPanics(t, w.RequestClose)
}
