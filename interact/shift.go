package interact

import (
	"gioui.org/f32"
	"gioui.org/io/pointer"

	"git.sr.ht/~whereswaldon/acchart/cell"
	"git.sr.ht/~whereswaldon/acchart/scale"
	"git.sr.ht/~whereswaldon/acchart/series"
)

// ShiftEditor drags a whole series along the x axis.
type ShiftEditor[X any] struct {
	Series *series.Series[X]
	XScale scale.Scale[X]
	Scope  *cell.Scope
	// OnMove receives the horizontal offset in pixels while dragging.
	OnMove func(dx float64)
	// OnCommit is invoked after the shift was stored into the series.
	OnCommit func(dx float64)

	dispatcher *Dispatcher
	capture    *Capture
	anchor     float64
	offset     float64
}

// NewShiftEditor returns an idle editor for s.
func NewShiftEditor[X any](d *Dispatcher, s *series.Series[X], xs scale.Scale[X], scope *cell.Scope) *ShiftEditor[X] {
	return &ShiftEditor[X]{Series: s, XScale: xs, Scope: scope, dispatcher: d}
}

// Bind updates the geometry used by later events.
func (e *ShiftEditor[X]) Bind(xs scale.Scale[X], scope *cell.Scope) {
	e.XScale, e.Scope = xs, scope
}

// Offset returns the pixel offset of the drag in progress.
func (e *ShiftEditor[X]) Offset() (float64, bool) {
	return e.offset, e.capture.Active()
}

// Preview returns the series points shifted by the drag in progress.
func (e *ShiftEditor[X]) Preview() []series.Point[X] {
	pts := e.Series.Points()
	if !e.capture.Active() || e.offset == 0 || degenerate(e.XScale) {
		return pts
	}
	sc := cell.FitX(e.XScale, e.Scope)
	out := make([]series.Point[X], len(pts))
	for i, p := range pts {
		out[i] = shift(sc, p, e.offset)
	}
	return out
}

func shift[X any](sc scale.Scale[X], p series.Point[X], dx float64) series.Point[X] {
	p.X = sc.Invert(sc.Forward(p.X) + dx)
	return p
}

// Event feeds an uncaptured pointer event to the editor and reports whether
// it was used.
func (e *ShiftEditor[X]) Event(ev pointer.Event) bool {
	if ev.Kind != pointer.Press || e.capture.Active() || !e.Scope.Contains(ev.Position) || degenerate(e.XScale) {
		return false
	}
	e.anchor, _ = e.Scope.Local(ev.Position)
	e.offset = 0
	e.capture = e.dispatcher.Capture(ev.PointerID, Listeners{
		Move:    e.move,
		Release: e.release,
		Cancel:  e.cancel,
	})
	return true
}

func (e *ShiftEditor[X]) move(pos f32.Point) {
	x, _ := e.Scope.Local(pos)
	e.offset = x - e.anchor
	if e.OnMove != nil {
		e.OnMove(e.offset)
	}
}

func (e *ShiftEditor[X]) release(pos f32.Point) {
	e.move(pos)
	e.capture.Release()
	e.capture = nil
	dx := e.offset
	e.offset = 0
	if dx == 0 || degenerate(e.XScale) {
		return
	}
	sc := cell.FitX(e.XScale, e.Scope)
	e.Series.Map(func(p series.Point[X]) series.Point[X] {
		return shift(sc, p, dx)
	})
	if e.OnCommit != nil {
		e.OnCommit(dx)
	}
}

func (e *ShiftEditor[X]) cancel() {
	e.capture = nil
	e.offset = 0
}

// Cancel abandons a drag in progress.
func (e *ShiftEditor[X]) Cancel() {
	e.capture.Release()
	e.cancel()
}
