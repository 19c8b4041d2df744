package interact

import (
	"math"

	"gioui.org/f32"
	"gioui.org/io/pointer"

	"git.sr.ht/~whereswaldon/acchart/cell"
	"git.sr.ht/~whereswaldon/acchart/scale"
)

// DefaultExponent is the curvature of an influence curve.
const DefaultExponent = 1.3

// Pos is a cell-local pixel position.
type Pos struct {
	X, Y float64
}

// Multiplier is an influence curve in cell-local pixels: a bump or dip of the
// ratio around Middle that fades to exactly 1 at Start and End.
type Multiplier struct {
	Start, Middle, End Pos
	Exponent           float64
}

// NewMultiplier returns the curve through the three handles, ordering the
// edges so Start.X ≤ End.X.
func NewMultiplier(start, middle, end Pos, exponent float64) Multiplier {
	if start.X > end.X {
		start, end = end, start
	}
	return Multiplier{Start: start, Middle: middle, End: end, Exponent: exponent}
}

func extent(edge, middle Pos) float64 {
	if edge.Y == 0 {
		return 0
	}
	return (middle.Y - edge.Y) / -edge.Y
}

// Ratio returns the multiplier at cell-local x.
func (m Multiplier) Ratio(x float64) float64 {
	exp := m.Exponent
	if exp == 0 {
		exp = DefaultExponent
	}
	switch {
	case x <= m.Start.X || x >= m.End.X:
		return 1
	case x < m.Middle.X:
		t := math.Abs((m.Start.X - x) / (m.Start.X - m.Middle.X))
		return 1 + extent(m.Start, m.Middle)*math.Pow(t, exp)
	default:
		t := math.Abs((m.End.X - x) / (m.End.X - m.Middle.X))
		return 1 + extent(m.End, m.Middle)*math.Pow(t, exp)
	}
}

// Influence is a Multiplier bound to the x scale it was drawn against.
type Influence[T any] struct {
	Curve Multiplier
	scale scale.Scale[T]
}

// Ratio returns the multiplier for a domain value.
func (f Influence[T]) Ratio(v T) float64 {
	return f.Curve.Ratio(f.scale.Forward(v))
}

// CurvePhase is the state of a CurveEditor.
type CurvePhase uint8

const (
	CurveIdle CurvePhase = iota
	CurveDefiningEnd
	CurveDefiningMiddle
)

func (p CurvePhase) String() string {
	switch p {
	case CurveDefiningEnd:
		return "defining-end"
	case CurveDefiningMiddle:
		return "defining-middle"
	default:
		return "idle"
	}
}

// CurveEditor draws an influence curve in two strokes: a drag from start to
// end, then a free move placing the middle, finished by a press.
type CurveEditor[T any] struct {
	// Scale is the x scale of the plot. It is refit onto Scope.
	Scale scale.Scale[T]
	Scope *cell.Scope
	// Exponent is the curvature of emitted curves.
	Exponent float64
	// FreeEnd lets the end handle follow the pointer vertically. By default
	// the end does not land where it was released: its y is pinned level
	// with the start so the curve is continuous at the middle.
	FreeEnd bool
	// OnChange receives the curve after every move of the middle handle.
	OnChange func(Influence[T])
	// OnCommit receives the last emitted curve when the edit is finished.
	OnCommit func(Influence[T])
	// OnClear is invoked when the edit is finished or abandoned after a
	// curve was emitted.
	OnClear func()

	dispatcher         *Dispatcher
	phase              CurvePhase
	start, middle, end Pos
	emitted            bool
	capture            *Capture
}

// NewCurveEditor returns an idle editor routing its strokes through d.
func NewCurveEditor[T any](d *Dispatcher, sc scale.Scale[T], scope *cell.Scope) *CurveEditor[T] {
	return &CurveEditor[T]{
		Scale:      sc,
		Scope:      scope,
		Exponent:   DefaultExponent,
		dispatcher: d,
	}
}

// Bind updates the geometry used by later events.
func (e *CurveEditor[T]) Bind(sc scale.Scale[T], scope *cell.Scope) {
	e.Scale = sc
	e.Scope = scope
}

func (e *CurveEditor[T]) Phase() CurvePhase {
	return e.phase
}

// Handles returns the current handle positions in cell-local pixels.
func (e *CurveEditor[T]) Handles() (start, middle, end Pos, ok bool) {
	return e.start, e.middle, e.end, e.phase != CurveIdle
}

func (e *CurveEditor[T]) local(pos f32.Point) Pos {
	x, y := e.Scope.Local(pos)
	return Pos{X: x, Y: y}
}

// Curve returns the multiplier for the current handles.
func (e *CurveEditor[T]) Curve() Influence[T] {
	return Influence[T]{
		Curve: NewMultiplier(e.start, e.middle, e.end, e.Exponent),
		scale: cell.FitX(e.Scale, e.Scope),
	}
}

// Event feeds an uncaptured pointer event to the editor and reports whether
// it was used.
func (e *CurveEditor[T]) Event(ev pointer.Event) bool {
	if ev.Kind != pointer.Press || e.phase != CurveIdle || !e.Scope.Contains(ev.Position) {
		return false
	}
	p := e.local(ev.Position)
	e.start, e.middle, e.end = p, p, p
	e.emitted = false
	e.phase = CurveDefiningEnd
	e.capture = e.dispatcher.Capture(ev.PointerID, Listeners{
		Move:    e.defineEnd,
		Release: e.commitEnd,
		Cancel:  e.cancel,
	})
	return true
}

func (e *CurveEditor[T]) defineEnd(pos f32.Point) {
	e.end = e.local(pos)
	if !e.FreeEnd {
		e.end.Y = e.start.Y
	}
	e.middle = Pos{X: (e.start.X + e.end.X) / 2, Y: (e.start.Y + e.end.Y) / 2}
}

func (e *CurveEditor[T]) commitEnd(pos f32.Point) {
	e.defineEnd(pos)
	id := e.capture.id
	e.capture.Release()
	e.phase = CurveDefiningMiddle
	e.capture = e.dispatcher.Capture(id, Listeners{
		Move:   e.defineMiddle,
		Press:  e.finish,
		Cancel: e.cancel,
	})
}

func (e *CurveEditor[T]) defineMiddle(pos f32.Point) {
	p := e.local(pos)
	lo, hi := min(e.start.X, e.end.X), max(e.start.X, e.end.X)
	e.middle = Pos{X: min(max(p.X, lo), hi), Y: p.Y}
	e.emitted = true
	if e.OnChange != nil {
		e.OnChange(e.Curve())
	}
}

func (e *CurveEditor[T]) finish(f32.Point) {
	e.capture.Release()
	e.capture = nil
	if e.emitted && e.OnCommit != nil {
		e.OnCommit(e.Curve())
	}
	if e.OnClear != nil {
		e.OnClear()
	}
	e.phase = CurveIdle
}

func (e *CurveEditor[T]) cancel() {
	e.capture = nil
	e.phase = CurveIdle
	if e.emitted && e.OnClear != nil {
		e.OnClear()
	}
	e.emitted = false
}

// Cancel abandons the edit without committing it.
func (e *CurveEditor[T]) Cancel() {
	if e.capture.Active() {
		e.capture.Release()
	}
	if e.phase != CurveIdle {
		e.cancel()
	}
}
