package schedule

import (
	"math"
	"time"

	"slotgrid/models"
)

// Long-press recognition parameters.
const (
	// LongPressDelay is how long a touch must hold still before a create
	// session starts.
	LongPressDelay = 500 * time.Millisecond
	// TouchSlopPx is the movement tolerance; moving further cancels the
	// pending long-press.
	TouchSlopPx = 10.0
)

// Haptics receives vibration callbacks on long-press trigger and on drag
// start of an existing event. Purely a UX affordance.
type Haptics interface {
	Vibrate()
}

// ScrollLock suppresses the platform's native scroll while a creation
// long-press is pending or a drag is active.
type ScrollLock interface {
	Suppress()
	Release()
}

type touchPhase int

const (
	touchIdle touchPhase = iota
	touchPressPending
	touchDragging
)

// TouchController layers long-press-to-create and touch-drag gestures on top
// of the engine, driving haptics and scroll suppression. Like the engine it
// is single-threaded: the UI shell feeds it touch events and periodic ticks.
type TouchController struct {
	engine  *Engine
	haptics Haptics
	scroll  ScrollLock

	phase    touchPhase
	dayIndex int
	downAt   time.Time
	downX    float64
	downY    float64
	lastY    float64
}

// NewTouchController wires the touch gesture layer over an engine. haptics
// and scroll may be nil when the platform offers neither.
func NewTouchController(engine *Engine, haptics Haptics, scroll ScrollLock) *TouchController {
	return &TouchController{engine: engine, haptics: haptics, scroll: scroll}
}

// TouchStart begins long-press tracking on empty space in a day column.
// Scroll stays suppressed while the press is pending so the column does not
// move under the finger.
func (tc *TouchController) TouchStart(dayIndex int, x, y float64, at time.Time) {
	if tc.phase != touchIdle {
		return
	}
	if _, active := tc.engine.Session(); active {
		return
	}
	tc.phase = touchPressPending
	tc.dayIndex = dayIndex
	tc.downAt = at
	tc.downX, tc.downY = x, y
	tc.lastY = y
	tc.suppress()
}

// TouchStartOnEvent begins a touch move or resize on an existing event.
func (tc *TouchController) TouchStartOnEvent(kind DragKind, eventID string, x, y float64, at time.Time) error {
	if tc.phase != touchIdle {
		return ErrSessionActive
	}
	if err := tc.engine.BeginDrag(kind, eventID); err != nil {
		return err
	}
	tc.phase = touchDragging
	tc.downAt = at
	tc.downX, tc.downY = x, y
	tc.lastY = y
	tc.vibrate()
	tc.suppress()
	return nil
}

// Tick checks whether a pending long-press has matured. The UI shell calls
// it from its frame timer; returns true when a create session just started.
func (tc *TouchController) Tick(at time.Time) bool {
	if tc.phase != touchPressPending {
		return false
	}
	if at.Sub(tc.downAt) < LongPressDelay {
		return false
	}
	if err := tc.engine.BeginCreate(tc.dayIndex, tc.downY); err != nil {
		tc.reset()
		return false
	}
	tc.phase = touchDragging
	tc.vibrate()
	return true
}

// TouchMove cancels a pending long-press on movement beyond the slop, or
// feeds an active drag. It returns true while native scrolling must stay
// suppressed.
func (tc *TouchController) TouchMove(x, y float64, at time.Time) bool {
	switch tc.phase {
	case touchPressPending:
		if math.Hypot(x-tc.downX, y-tc.downY) > TouchSlopPx {
			tc.reset()
			return false
		}
		tc.Tick(at)
		return true
	case touchDragging:
		tc.lastY = y
		if s, ok := tc.engine.Session(); ok {
			if s.Kind == DragCreate {
				tc.engine.UpdateCreate(y)
			} else {
				tc.engine.UpdateDrag(y - tc.downY)
			}
		}
		return true
	}
	return false
}

// TouchEnd releases the gesture. A matured drag runs the full commit path;
// a still-pending long-press is abandoned without side effects. Scroll
// suppression is released immediately either way.
func (tc *TouchController) TouchEnd(acting models.Attendee, owner *models.Attendee) (*CommitResult, error) {
	defer tc.reset()

	if tc.phase != touchDragging {
		return nil, nil
	}
	return tc.engine.Commit(acting, owner)
}

// TouchCancel abandons the gesture without committing (e.g. the platform
// stole the touch).
func (tc *TouchController) TouchCancel() {
	if tc.phase == touchDragging {
		tc.engine.Cancel()
	}
	tc.reset()
}

func (tc *TouchController) reset() {
	tc.phase = touchIdle
	tc.dayIndex = 0
	if tc.scroll != nil {
		tc.scroll.Release()
	}
}

func (tc *TouchController) suppress() {
	if tc.scroll != nil {
		tc.scroll.Suppress()
	}
}

func (tc *TouchController) vibrate() {
	if tc.haptics != nil {
		tc.haptics.Vibrate()
	}
}
