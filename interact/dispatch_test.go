package interact

import (
	"testing"

	"gioui.org/f32"
	"gioui.org/io/pointer"
)

func TestDispatcher(t *testing.T) {
	var d Dispatcher
	if d.Dispatch(ev(pointer.Drag, 1, 1)) {
		t.Errorf("expected an empty dispatcher to route nothing")
	}
	var moves, releases, cancels int
	c := d.Capture(0, Listeners{
		Move:    func(f32.Point) { moves++ },
		Release: func(f32.Point) { releases++ },
		Cancel:  func() { cancels++ },
	})
	for _, kind := range []pointer.Kind{pointer.Move, pointer.Drag, pointer.Release} {
		if !d.Dispatch(ev(kind, 0, 0)) {
			t.Errorf("expected %v to be routed", kind)
		}
	}
	if d.Dispatch(ev(pointer.Enter, 0, 0)) {
		t.Errorf("expected enter not to be captured")
	}
	if moves != 2 || releases != 1 {
		t.Errorf("expected 2 moves and 1 release, got %d and %d", moves, releases)
	}
	other := ev(pointer.Drag, 0, 0)
	other.PointerID = 7
	if d.Dispatch(other) {
		t.Errorf("expected other pointers not to be captured")
	}

	replacement := d.Capture(0, Listeners{})
	if c.Active() || cancels != 1 {
		t.Errorf("expected a replaced capture to be cancelled")
	}
	c.Release()
	if !replacement.Active() || d.Len() != 1 {
		t.Errorf("expected releasing a stale capture to leave the new one alone")
	}
	replacement.Release()
	replacement.Release()
	if d.Len() != 0 || replacement.Active() {
		t.Errorf("expected release to be idempotent")
	}
	var nilCapture *Capture
	nilCapture.Release()
}
