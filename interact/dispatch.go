// Package interact implements pointer-driven editing gestures on top of the
// resolved geometry of a chart.
//
// Every gesture is a small state machine fed with pointer events in screen
// coordinates. Once a gesture starts it captures the pointer through a
// Dispatcher, which then routes every later event of that pointer to the
// gesture until the capture is released.
package interact

import (
	"gioui.org/f32"
	"gioui.org/io/pointer"

	"git.sr.ht/~whereswaldon/acchart/scale"
)

// Listeners are the window-level callbacks of one gesture session. Nil
// callbacks ignore their events.
type Listeners struct {
	Move    func(pos f32.Point)
	Press   func(pos f32.Point)
	Release func(pos f32.Point)
	// Cancel is invoked after the capture has been released.
	Cancel func()
}

// Capture is the registration of one session's listeners. Release is
// idempotent.
type Capture struct {
	d         *Dispatcher
	id        pointer.ID
	listeners Listeners
}

// Release detaches the listeners. Events dispatched afterwards no longer
// reach them.
func (c *Capture) Release() {
	if c == nil || c.d == nil {
		return
	}
	if c.d.captures[c.id] == c {
		delete(c.d.captures, c.id)
	}
	c.d = nil
}

// Active reports whether the capture still receives events.
func (c *Capture) Active() bool {
	return c != nil && c.d != nil
}

// Dispatcher routes the events of captured pointers to their sessions. The
// zero value is ready to use.
type Dispatcher struct {
	captures map[pointer.ID]*Capture
}

// Capture attaches listeners for the given pointer. A previous capture of
// the same pointer is cancelled first.
func (d *Dispatcher) Capture(id pointer.ID, l Listeners) *Capture {
	if prev := d.captures[id]; prev != nil {
		prev.Release()
		if prev.listeners.Cancel != nil {
			prev.listeners.Cancel()
		}
	}
	if d.captures == nil {
		d.captures = map[pointer.ID]*Capture{}
	}
	c := &Capture{d: d, id: id, listeners: l}
	d.captures[id] = c
	return c
}

// Captured reports whether the pointer is captured.
func (d *Dispatcher) Captured(id pointer.ID) bool {
	return d.captures[id] != nil
}

// Len returns the number of live captures.
func (d *Dispatcher) Len() int {
	return len(d.captures)
}

// Dispatch routes ev to the session capturing its pointer and reports whether
// one did. Uncaptured events should be offered to the gestures' area
// handlers instead.
func (d *Dispatcher) Dispatch(ev pointer.Event) bool {
	c := d.captures[ev.PointerID]
	if c == nil {
		return false
	}
	l := c.listeners
	switch ev.Kind {
	case pointer.Move, pointer.Drag:
		if l.Move != nil {
			l.Move(ev.Position)
		}
	case pointer.Press:
		if l.Press != nil {
			l.Press(ev.Position)
		}
	case pointer.Release:
		if l.Release != nil {
			l.Release(ev.Position)
		}
	case pointer.Cancel:
		c.Release()
		if l.Cancel != nil {
			l.Cancel()
		}
	default:
		return false
	}
	return true
}

// Close cancels every live session. Hosts call it on teardown.
func (d *Dispatcher) Close() {
	for _, c := range d.captures {
		c.Release()
		if c.listeners.Cancel != nil {
			c.listeners.Cancel()
		}
	}
}

// degenerate reports whether sc maps every pixel back to one value, so
// inverting through it would collapse edited data.
func degenerate[T any](sc scale.Scale[T]) bool {
	lo, hi := sc.Domain()
	return sc.Compare(lo, hi) == 0
}
