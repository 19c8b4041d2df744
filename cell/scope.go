// Package cell hands the resolved rectangle of a grid cell to everything drawn
// inside it.
package cell

import (
	"gioui.org/f32"

	"git.sr.ht/~whereswaldon/acchart/grid"
	"git.sr.ht/~whereswaldon/acchart/scale"
)

// Scope is the rectangle in effect at one nesting level. A nil *Scope is
// valid and yields the zero rectangle.
type Scope struct {
	parent *Scope
	name   string
	rect   grid.Rect
}

// New returns a top-level scope for the named cell.
func New(name string, r grid.Rect) *Scope {
	return &Scope{name: name, rect: r}
}

// Nest returns a scope for a cell laid out inside s. The rectangle of the
// nested cell is relative to s; its root offset is rebased so that Local keeps
// working with screen coordinates.
func (s *Scope) Nest(name string, r grid.Rect) *Scope {
	outer := s.Rect()
	r.RootTop = outer.RootTop + outer.Top
	r.RootLeft = outer.RootLeft + outer.Left
	return &Scope{parent: s, name: name, rect: r}
}

// Container returns the box occupied by the scope in screen coordinates,
// suitable for solving a nested grid.
func (s *Scope) Container() grid.Container {
	r := s.Rect()
	return grid.Container{
		Top:    r.RootTop + r.Top,
		Left:   r.RootLeft + r.Left,
		Width:  r.Width,
		Height: r.Height,
	}
}

func (s *Scope) Rect() grid.Rect {
	if s == nil {
		return grid.Rect{}
	}
	return s.rect
}

func (s *Scope) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

func (s *Scope) Parent() *Scope {
	if s == nil {
		return nil
	}
	return s.parent
}

// Depth is the number of enclosing scopes.
func (s *Scope) Depth() int {
	d := 0
	for p := s.Parent(); p != nil; p = p.Parent() {
		d++
	}
	return d
}

// Local converts a screen position into coordinates relative to the
// scope's rectangle.
func (s *Scope) Local(pos f32.Point) (x, y float64) {
	return s.Rect().Local(float64(pos.X), float64(pos.Y))
}

// Contains reports whether the screen position falls inside the scope.
func (s *Scope) Contains(pos f32.Point) bool {
	r := s.Rect()
	return r.Contains(r.Local(float64(pos.X), float64(pos.Y)))
}

// FitX copies sc onto the horizontal extent of the scope.
func FitX[T any](sc scale.Scale[T], s *Scope) scale.Scale[T] {
	return sc.WithRange(0, s.Rect().Width)
}

// FitY copies sc onto the vertical extent of the scope, growing upward.
func FitY[T any](sc scale.Scale[T], s *Scope) scale.Scale[T] {
	return sc.WithRange(s.Rect().Height, 0)
}
