package interact

import (
	"cmp"
	"math"
	"testing"

	"gioui.org/io/pointer"

	"git.sr.ht/~whereswaldon/acchart/cell"
	"git.sr.ht/~whereswaldon/acchart/grid"
	"git.sr.ht/~whereswaldon/acchart/scale"
	"git.sr.ht/~whereswaldon/acchart/series"
)

type gesture interface {
	Event(ev pointer.Event) bool
}

func feedAll(d *Dispatcher, gestures []gesture, events ...pointer.Event) {
	for _, e := range events {
		if d.Dispatch(e) {
			continue
		}
		for _, g := range gestures {
			if g.Event(e) {
				break
			}
		}
	}
}

func newTestSeries() *series.Series[float64] {
	return series.FromPoints("oil", cmp.Compare[float64], []series.Point[float64]{
		{X: 0, Y: 0},
		{X: 5, Y: 5},
		{X: 10, Y: 10},
	})
}

var square = cell.New("area", grid.Rect{Width: 100, Height: 100, Right: 100, Bottom: 100})

func near(a, b series.Point[float64]) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestPointEditor(t *testing.T) {
	var d Dispatcher
	s := newTestSeries()
	xs := scale.NewLinear(0, 10, 0, 1)
	ys := scale.NewLinear(0, 10, 0, 1)
	e := NewPointEditor[float64](&d, s, 1, xs, ys, square)
	var moves, commits []series.Point[float64]
	e.OnMove = func(i int, p series.Point[float64]) { moves = append(moves, p) }
	e.OnCommit = func(i int, p series.Point[float64]) { commits = append(commits, p) }

	if m := e.Marker(); m != (Pos{50, 50}) {
		t.Fatalf("expected the marker at (50,50), got %v", m)
	}
	feedAll(&d, []gesture{e}, ev(pointer.Press, 80, 80))
	if e.Dragging() {
		t.Fatalf("expected a press off the marker to be ignored")
	}
	feedAll(&d, []gesture{e}, ev(pointer.Press, 52, 49), ev(pointer.Drag, 72, 29))
	if !e.Dragging() || len(moves) != 1 {
		t.Fatalf("expected a live drag with one preview, got %d", len(moves))
	}
	if expected := (series.Point[float64]{X: 7, Y: 7}); !near(moves[0], expected) || !near(e.Point(), expected) {
		t.Errorf("expected preview %v, got %v", expected, moves[0])
	}
	if s.At(1) != (series.Point[float64]{X: 5, Y: 5}) {
		t.Errorf("expected the series untouched while dragging, got %v", s.At(1))
	}
	feedAll(&d, []gesture{e}, ev(pointer.Release, 72, 29))
	if e.Dragging() || d.Len() != 0 {
		t.Errorf("expected the session to end on release")
	}
	if len(commits) != 1 || !near(s.At(1), series.Point[float64]{X: 7, Y: 7}) {
		t.Errorf("expected the point committed, got %v", s.At(1))
	}
	if feedAll(&d, []gesture{e}, ev(pointer.Drag, 10, 10)); len(moves) != 1 {
		t.Errorf("expected no previews after release, got %d", len(moves))
	}
}

func TestPointEditorClampAndLock(t *testing.T) {
	var d Dispatcher
	s := newTestSeries()
	e := NewPointEditor[float64](&d, s, 1, scale.NewLinear(0, 10, 0, 1), scale.NewLinear(0, 10, 0, 1), square)
	e.LockY = true
	feedAll(&d, []gesture{e},
		ev(pointer.Press, 50, 50),
		ev(pointer.Drag, 150, 0),
		ev(pointer.Release, 150, 0),
	)
	if got := s.At(1); got != (series.Point[float64]{X: 10, Y: 5}) {
		t.Errorf("expected x clamped to the next point and y locked, got %v", got)
	}
}

func TestPointEditorCancel(t *testing.T) {
	var d Dispatcher
	s := newTestSeries()
	e := NewPointEditor[float64](&d, s, 1, scale.NewLinear(0, 10, 0, 1), scale.NewLinear(0, 10, 0, 1), square)
	committed := false
	e.OnCommit = func(int, series.Point[float64]) { committed = true }
	feedAll(&d, []gesture{e},
		ev(pointer.Press, 50, 50),
		ev(pointer.Drag, 20, 20),
		ev(pointer.Cancel, 0, 0),
		ev(pointer.Release, 20, 20),
	)
	if committed || s.At(1) != (series.Point[float64]{X: 5, Y: 5}) {
		t.Errorf("expected a cancelled drag to leave the series alone, got %v", s.At(1))
	}
}

func TestPointEditorsIndependent(t *testing.T) {
	var d Dispatcher
	s := newTestSeries()
	xs, ys := scale.NewLinear(0, 10, 0, 1), scale.NewLinear(0, 10, 0, 1)
	first := NewPointEditor[float64](&d, s, 0, xs, ys, square)
	last := NewPointEditor[float64](&d, s, 2, xs, ys, square)
	gestures := []gesture{first, last}
	pressFirst := ev(pointer.Press, 0, 100)
	pressLast := ev(pointer.Press, 100, 0)
	pressLast.PointerID = 1
	feedAll(&d, gestures, pressFirst, pressLast)
	if !first.Dragging() || !last.Dragging() || d.Len() != 2 {
		t.Fatalf("expected two live sessions, got %d", d.Len())
	}
	moveLast := ev(pointer.Drag, 100, 50)
	moveLast.PointerID = 1
	releaseLast := ev(pointer.Release, 100, 50)
	releaseLast.PointerID = 1
	feedAll(&d, gestures, moveLast, releaseLast)
	if !first.Dragging() || last.Dragging() {
		t.Errorf("expected only the second session to end")
	}
	if got := s.At(2); !near(got, series.Point[float64]{X: 10, Y: 5}) {
		t.Errorf("expected the last point lowered, got %v", got)
	}
	feedAll(&d, gestures, ev(pointer.Release, 0, 80))
	if got := s.At(0); !near(got, series.Point[float64]{X: 0, Y: 2}) {
		t.Errorf("expected the first point raised, got %v", got)
	}
}

func TestShiftEditor(t *testing.T) {
	var d Dispatcher
	s := newTestSeries()
	e := NewShiftEditor[float64](&d, s, scale.NewLinear(0, 10, 0, 1), square)
	var offsets []float64
	e.OnMove = func(dx float64) { offsets = append(offsets, dx) }
	feedAll(&d, []gesture{e}, ev(pointer.Press, 20, 50), ev(pointer.Drag, 30, 60))
	if dx, ok := e.Offset(); !ok || dx != 10 {
		t.Errorf("expected a 10 px offset, got %v", dx)
	}
	if p := e.Preview(); !near(p[1], series.Point[float64]{X: 6, Y: 5}) {
		t.Errorf("expected a shifted preview, got %v", p)
	}
	if s.At(1).X != 5 {
		t.Errorf("expected the series untouched while dragging")
	}
	feedAll(&d, []gesture{e}, ev(pointer.Release, 40, 60))
	for i, expected := range []float64{2, 7, 12} {
		if got := s.At(i).X; math.Abs(got-expected) > 1e-9 {
			t.Errorf("expected x %v at %d, got %v", expected, i, got)
		}
	}
	feedAll(&d, []gesture{e}, ev(pointer.Press, 20, 50), ev(pointer.Cancel, 0, 0))
	if _, ok := e.Offset(); ok || d.Len() != 0 {
		t.Errorf("expected cancel to end the session")
	}
}

func TestEditorsDegenerateDomain(t *testing.T) {
	flat := scale.NewLinear(5, 5, 0, 1)
	original := newTestSeries().Points()
	t.Run("shift refuses to start", func(t *testing.T) {
		var d Dispatcher
		s := newTestSeries()
		e := NewShiftEditor[float64](&d, s, flat, square)
		feedAll(&d, []gesture{e}, ev(pointer.Press, 50, 50), ev(pointer.Drag, 60, 50), ev(pointer.Release, 60, 50))
		if d.Len() != 0 {
			t.Errorf("expected no session, got %d", d.Len())
		}
		for i, p := range original {
			if s.At(i) != p {
				t.Errorf("expected point %d to stay %v, got %v", i, p, s.At(i))
			}
		}
	})
	t.Run("shift keeps data when the domain collapses mid drag", func(t *testing.T) {
		var d Dispatcher
		s := newTestSeries()
		e := NewShiftEditor[float64](&d, s, scale.NewLinear(0, 10, 0, 1), square)
		feedAll(&d, []gesture{e}, ev(pointer.Press, 50, 50), ev(pointer.Drag, 60, 50))
		e.Bind(flat, square)
		if p := e.Preview(); p[0] != original[0] || p[2] != original[2] {
			t.Errorf("expected an unshifted preview, got %v", p)
		}
		feedAll(&d, []gesture{e}, ev(pointer.Release, 60, 50))
		for i, p := range original {
			if s.At(i) != p {
				t.Errorf("expected point %d to stay %v, got %v", i, p, s.At(i))
			}
		}
	})
	t.Run("point keeps x", func(t *testing.T) {
		var d Dispatcher
		s := newTestSeries()
		e := NewPointEditor[float64](&d, s, 1, flat, scale.NewLinear(0, 10, 0, 1), square)
		feedAll(&d, []gesture{e}, ev(pointer.Press, 50, 50), ev(pointer.Drag, 70, 30), ev(pointer.Release, 70, 30))
		if got := s.At(1); !near(got, series.Point[float64]{X: 5, Y: 7}) {
			t.Errorf("expected x kept and y moved to 7, got %v", got)
		}
	})
}
