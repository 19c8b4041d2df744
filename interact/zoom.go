package interact

import (
	"math"

	"gioui.org/f32"
	"gioui.org/io/pointer"

	"git.sr.ht/~whereswaldon/acchart/cell"
	"git.sr.ht/~whereswaldon/acchart/scale"
)

// Orientation is the direction an axis runs in.
type Orientation uint8

const (
	Horizontal Orientation = iota
	Vertical
)

// ZoomPhase is the state of a ZoomSelector.
type ZoomPhase uint8

const (
	ZoomIdle ZoomPhase = iota
	ZoomHovering
	ZoomDragging
)

func (p ZoomPhase) String() string {
	switch p {
	case ZoomHovering:
		return "hovering"
	case ZoomDragging:
		return "dragging"
	default:
		return "idle"
	}
}

// DefaultTrack is half the thickness of the sensitive band around an axis
// line.
const DefaultTrack = 15

// ZoomSelector lets the user drag out a new domain along an axis.
type ZoomSelector[T any] struct {
	// Scale is the scale of the axis. It is refit onto Scope for every event.
	Scale scale.Scale[T]
	Scope *cell.Scope
	Axis  Orientation
	// Line is the cell-local offset of the axis line across the axis: y for a
	// horizontal axis, x for a vertical one.
	Line float64
	// Track is half the thickness of the sensitive band around Line.
	Track float64
	// MinDrag is the shortest drag in pixels that emits a zoom. Zero emits
	// every completed drag.
	MinDrag float64
	// OnZoom receives the selected domain, ordered so first ≤ second.
	OnZoom func(first, second T)

	dispatcher *Dispatcher
	phase      ZoomPhase
	tracker    float64
	anchor     float64
	current    float64
	capture    *Capture
}

// NewZoomSelector returns an idle selector routing drags through d.
func NewZoomSelector[T any](d *Dispatcher, sc scale.Scale[T], scope *cell.Scope, axis Orientation, onZoom func(first, second T)) *ZoomSelector[T] {
	return &ZoomSelector[T]{
		Scale:      sc,
		Scope:      scope,
		Axis:       axis,
		Track:      DefaultTrack,
		OnZoom:     onZoom,
		dispatcher: d,
	}
}

// Bind updates the geometry used by later events.
func (z *ZoomSelector[T]) Bind(sc scale.Scale[T], scope *cell.Scope) {
	z.Scale = sc
	z.Scope = scope
}

func (z *ZoomSelector[T]) Phase() ZoomPhase {
	return z.phase
}

// Tracker returns the cell-local crosshair position along the axis.
func (z *ZoomSelector[T]) Tracker() (float64, bool) {
	switch z.phase {
	case ZoomHovering:
		return z.tracker, true
	case ZoomDragging:
		return z.current, true
	}
	return 0, false
}

// Selection returns the dragged interval along the axis in cell-local
// pixels, smallest first.
func (z *ZoomSelector[T]) Selection() (from, to float64, ok bool) {
	if z.phase != ZoomDragging {
		return 0, 0, false
	}
	return min(z.anchor, z.current), max(z.anchor, z.current), true
}

func (z *ZoomSelector[T]) fitted() scale.Scale[T] {
	if z.Axis == Vertical {
		return cell.FitY(z.Scale, z.Scope)
	}
	return cell.FitX(z.Scale, z.Scope)
}

// local splits a screen position into its offsets along and across the
// axis.
func (z *ZoomSelector[T]) local(pos f32.Point) (along, across float64) {
	x, y := z.Scope.Local(pos)
	if z.Axis == Vertical {
		return y, x
	}
	return x, y
}

func (z *ZoomSelector[T]) overTrack(pos f32.Point) bool {
	along, across := z.local(pos)
	r := z.Scope.Rect()
	length := r.Width
	if z.Axis == Vertical {
		length = r.Height
	}
	return along >= 0 && along <= length && math.Abs(across-z.Line) <= z.Track
}

// Event feeds an uncaptured pointer event to the selector and reports
// whether it was used.
func (z *ZoomSelector[T]) Event(ev pointer.Event) bool {
	switch ev.Kind {
	case pointer.Move, pointer.Enter:
		if z.phase == ZoomDragging {
			return false
		}
		if z.overTrack(ev.Position) {
			z.phase = ZoomHovering
			z.tracker, _ = z.local(ev.Position)
			return true
		}
		z.phase = ZoomIdle
	case pointer.Leave:
		if z.phase == ZoomHovering {
			z.phase = ZoomIdle
		}
	case pointer.Press:
		if z.phase == ZoomDragging || !z.overTrack(ev.Position) {
			return false
		}
		z.anchor, _ = z.local(ev.Position)
		z.current = z.anchor
		z.phase = ZoomDragging
		z.capture = z.dispatcher.Capture(ev.PointerID, Listeners{
			Move:    z.drag,
			Release: z.release,
			Cancel:  z.cancel,
		})
		return true
	}
	return false
}

func (z *ZoomSelector[T]) drag(pos f32.Point) {
	z.current, _ = z.local(pos)
}

func (z *ZoomSelector[T]) release(pos f32.Point) {
	z.capture.Release()
	z.capture = nil
	z.current, _ = z.local(pos)
	if math.Abs(z.current-z.anchor) >= z.MinDrag {
		sc := z.fitted()
		first, second := sc.Invert(z.anchor), sc.Invert(z.current)
		if sc.Compare(first, second) > 0 {
			first, second = second, first
		}
		if z.OnZoom != nil {
			z.OnZoom(first, second)
		}
	}
	z.phase = ZoomIdle
}

func (z *ZoomSelector[T]) cancel() {
	z.capture = nil
	z.phase = ZoomIdle
}

// Cancel abandons a drag in progress without emitting a zoom.
func (z *ZoomSelector[T]) Cancel() {
	if z.capture.Active() {
		z.capture.Release()
	}
	z.cancel()
}
