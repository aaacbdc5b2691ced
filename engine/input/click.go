package input

import (
	"time"

	"github.com/chewxy/math32"
)

// Defaults for click synthesis, matching common desktop behaviour.
const (
	DefaultClickSlop           float32 = 4
	DefaultDoubleClickInterval         = 500 * time.Millisecond
)

// ClickSynthesizer forwards raw events to a Dispatcher and derives Click and DoubleClick
// events from primary-button down/up pairs, since glfw reports neither.
// Click follows the PointerUp that completes it; DoubleClick follows the second Click.
type ClickSynthesizer struct {
	out      *Dispatcher
	slop     float32
	interval time.Duration
	now      func() time.Time

	pressed        bool
	downX, downY   float32
	lastClick      time.Time
	lastX, lastY   float32
	awaitingSecond bool
}

// ClickSynthesizerOption configures a ClickSynthesizer.
type ClickSynthesizerOption func(*ClickSynthesizer)

// WithClickSlop sets how far in pixels the cursor may travel between down and up.
func WithClickSlop(px float32) ClickSynthesizerOption {
	return func(s *ClickSynthesizer) {
		s.slop = px
	}
}

// WithDoubleClickInterval sets the maximum gap between the two clicks of a double click.
func WithDoubleClickInterval(d time.Duration) ClickSynthesizerOption {
	return func(s *ClickSynthesizer) {
		s.interval = d
	}
}

// WithClock replaces the time source, for tests.
func WithClock(now func() time.Time) ClickSynthesizerOption {
	return func(s *ClickSynthesizer) {
		s.now = now
	}
}

// NewClickSynthesizer creates a synthesizer that delivers into out.
//
// Parameters:
//   - out: the dispatcher receiving raw and synthesized events
//   - options: functional options
//
// Returns:
//   - *ClickSynthesizer: the synthesizer
func NewClickSynthesizer(out *Dispatcher, options ...ClickSynthesizerOption) *ClickSynthesizer {
	s := &ClickSynthesizer{
		out:      out,
		slop:     DefaultClickSlop,
		interval: DefaultDoubleClickInterval,
		now:      time.Now,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Feed forwards e and any click events it completes.
//
// Parameters:
//   - e: a raw host event
func (s *ClickSynthesizer) Feed(e *Event) {
	s.out.Dispatch(e)

	if e.Button != ButtonPrimary {
		return
	}
	switch e.Kind {
	case PointerDown:
		s.pressed = true
		s.downX, s.downY = e.X, e.Y
	case PointerUp:
		if !s.pressed {
			return
		}
		s.pressed = false
		if !s.within(e.X, e.Y, s.downX, s.downY) {
			return
		}
		s.out.Dispatch(&Event{Kind: Click, X: e.X, Y: e.Y, Button: ButtonPrimary})

		now := s.now()
		if s.awaitingSecond && now.Sub(s.lastClick) <= s.interval && s.within(e.X, e.Y, s.lastX, s.lastY) {
			s.awaitingSecond = false
			s.out.Dispatch(&Event{Kind: DoubleClick, X: e.X, Y: e.Y, Button: ButtonPrimary})
			return
		}
		s.awaitingSecond = true
		s.lastClick = now
		s.lastX, s.lastY = e.X, e.Y
	}
}

func (s *ClickSynthesizer) within(x, y, ox, oy float32) bool {
	return math32.Abs(x-ox) <= s.slop && math32.Abs(y-oy) <= s.slop
}
