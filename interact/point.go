package interact

import (
	"math"

	"gioui.org/f32"
	"gioui.org/io/pointer"

	"git.sr.ht/~whereswaldon/acchart/cell"
	"git.sr.ht/~whereswaldon/acchart/scale"
	"git.sr.ht/~whereswaldon/acchart/series"
)

// MarkerSize is the default side length of a point marker in pixels.
const MarkerSize = 10

// PointEditor is a draggable marker bound to one point of a series. Every
// editor runs its own session, so markers of different points never share
// state.
type PointEditor[X any] struct {
	Series *series.Series[X]
	Index  int
	XScale scale.Scale[X]
	YScale scale.Scale[float64]
	Scope  *cell.Scope
	// Size is the side length of the marker.
	Size float64
	// LockX and LockY pin the point along one axis.
	LockX, LockY bool
	// OnMove receives the previewed point while dragging.
	OnMove func(index int, p series.Point[X])
	// OnCommit receives the point stored into the series on release.
	OnCommit func(index int, p series.Point[X])

	dispatcher *Dispatcher
	capture    *Capture
	pending    series.Point[X]
	// grab is the offset from the pointer to the marker centre.
	grab Pos
}

// NewPointEditor returns an editor for point index of s.
func NewPointEditor[X any](d *Dispatcher, s *series.Series[X], index int, xs scale.Scale[X], ys scale.Scale[float64], scope *cell.Scope) *PointEditor[X] {
	return &PointEditor[X]{
		Series:     s,
		Index:      index,
		XScale:     xs,
		YScale:     ys,
		Scope:      scope,
		Size:       MarkerSize,
		dispatcher: d,
	}
}

// Bind updates the geometry used by later events.
func (e *PointEditor[X]) Bind(xs scale.Scale[X], ys scale.Scale[float64], scope *cell.Scope) {
	e.XScale, e.YScale, e.Scope = xs, ys, scope
}

// Dragging reports whether a session is live.
func (e *PointEditor[X]) Dragging() bool {
	return e.capture.Active()
}

// Point returns the previewed point while dragging and the stored point
// otherwise.
func (e *PointEditor[X]) Point() series.Point[X] {
	if e.Dragging() {
		return e.pending
	}
	return e.Series.At(e.Index)
}

// Marker returns the cell-local centre of the marker.
func (e *PointEditor[X]) Marker() Pos {
	p := e.Point()
	return Pos{
		X: cell.FitX(e.XScale, e.Scope).Forward(p.X),
		Y: cell.FitY(e.YScale, e.Scope).Forward(p.Y),
	}
}

// Hit reports whether the screen position is on the marker.
func (e *PointEditor[X]) Hit(pos f32.Point) bool {
	x, y := e.Scope.Local(pos)
	c := e.Marker()
	half := e.Size / 2
	return math.Abs(x-c.X) <= half && math.Abs(y-c.Y) <= half
}

// Event feeds an uncaptured pointer event to the editor and reports whether
// it was used.
func (e *PointEditor[X]) Event(ev pointer.Event) bool {
	if ev.Kind != pointer.Press || e.Dragging() || e.Index >= e.Series.Len() || !e.Hit(ev.Position) {
		return false
	}
	x, y := e.Scope.Local(ev.Position)
	c := e.Marker()
	e.grab = Pos{X: c.X - x, Y: c.Y - y}
	e.pending = e.Series.At(e.Index)
	e.capture = e.dispatcher.Capture(ev.PointerID, Listeners{
		Move:    e.move,
		Release: e.release,
		Cancel:  e.cancel,
	})
	return true
}

func (e *PointEditor[X]) track(pos f32.Point) series.Point[X] {
	x, y := e.Scope.Local(pos)
	p := e.Series.At(e.Index)
	if !e.LockX && !degenerate(e.XScale) {
		p.X = e.Series.Clamp(e.Index, cell.FitX(e.XScale, e.Scope).Invert(x+e.grab.X))
	}
	if !e.LockY && !degenerate(e.YScale) {
		p.Y = cell.FitY(e.YScale, e.Scope).Invert(y + e.grab.Y)
	}
	return p
}

func (e *PointEditor[X]) move(pos f32.Point) {
	e.pending = e.track(pos)
	if e.OnMove != nil {
		e.OnMove(e.Index, e.pending)
	}
}

func (e *PointEditor[X]) release(pos f32.Point) {
	p := e.track(pos)
	e.capture.Release()
	e.capture = nil
	stored := e.Series.Set(e.Index, p)
	if e.OnCommit != nil {
		e.OnCommit(e.Index, stored)
	}
}

func (e *PointEditor[X]) cancel() {
	e.capture = nil
}

// Cancel abandons a drag in progress, leaving the series untouched.
func (e *PointEditor[X]) Cancel() {
	e.capture.Release()
	e.cancel()
}
