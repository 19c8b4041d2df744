package interact

import (
	"math"
	"testing"

	"gioui.org/io/pointer"

	"git.sr.ht/~whereswaldon/acchart/cell"
	"git.sr.ht/~whereswaldon/acchart/grid"
	"git.sr.ht/~whereswaldon/acchart/scale"
)

func TestMultiplierEdges(t *testing.T) {
	type testcase struct {
		name string
		m    Multiplier
	}
	for _, tc := range []testcase{
		{name: "bump", m: NewMultiplier(Pos{0, 100}, Pos{50, 50}, Pos{100, 100}, DefaultExponent)},
		{name: "dip", m: NewMultiplier(Pos{10, 200}, Pos{80, 260}, Pos{300, 200}, DefaultExponent)},
		{name: "reversed", m: NewMultiplier(Pos{100, 100}, Pos{30, 20}, Pos{0, 100}, DefaultExponent)},
		{name: "middle at start", m: NewMultiplier(Pos{0, 100}, Pos{0, 40}, Pos{100, 100}, 2)},
		{name: "middle at end", m: NewMultiplier(Pos{0, 100}, Pos{100, 40}, Pos{100, 100}, 2)},
		{name: "default exponent", m: Multiplier{Start: Pos{0, 10}, Middle: Pos{5, 5}, End: Pos{10, 10}}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if tc.m.Start.X > tc.m.End.X {
				t.Fatalf("expected ordered edges, got %v and %v", tc.m.Start, tc.m.End)
			}
			if got := tc.m.Ratio(tc.m.Start.X); got != 1 {
				t.Errorf("expected exactly 1 at start, got %v", got)
			}
			if got := tc.m.Ratio(tc.m.End.X); got != 1 {
				t.Errorf("expected exactly 1 at end, got %v", got)
			}
			if got := tc.m.Ratio(tc.m.Start.X - 1); got != 1 {
				t.Errorf("expected 1 before start, got %v", got)
			}
			if got := tc.m.Ratio(tc.m.End.X + 1); got != 1 {
				t.Errorf("expected 1 after end, got %v", got)
			}
		})
	}
}

func TestMultiplierContinuity(t *testing.T) {
	m := NewMultiplier(Pos{0, 100}, Pos{40, 50}, Pos{100, 100}, DefaultExponent)
	startExtent := (m.Middle.Y - m.Start.Y) / -m.Start.Y
	endExtent := (m.Middle.Y - m.End.Y) / -m.End.Y
	fromStart := 1 + startExtent*math.Pow(math.Abs((m.Start.X-m.Middle.X)/(m.Start.X-m.Middle.X)), m.Exponent)
	fromEnd := 1 + endExtent*math.Pow(math.Abs((m.End.X-m.Middle.X)/(m.End.X-m.Middle.X)), m.Exponent)
	if fromStart != fromEnd {
		t.Errorf("expected both branches to agree at the middle, got %v and %v", fromStart, fromEnd)
	}
	if got := m.Ratio(m.Middle.X); got != 1.5 {
		t.Errorf("expected 1.5 at the middle, got %v", got)
	}
	if got := m.Ratio(m.Middle.X - 1e-9); math.Abs(got-1.5) > 1e-6 {
		t.Errorf("expected the start branch to approach 1.5, got %v", got)
	}
	if got := m.Ratio(20); math.Abs(got-(1+0.5*math.Pow(0.5, 1.3))) > 1e-12 {
		t.Errorf("expected the curve shape of exponent 1.3, got %v", got)
	}
	flat := NewMultiplier(Pos{0, 0}, Pos{50, 30}, Pos{100, 0}, DefaultExponent)
	if got := flat.Ratio(50); got != 1 {
		t.Errorf("expected a curve on the zero line to be neutral, got %v", got)
	}
}

func newTestCurve() (*Dispatcher, *CurveEditor[float64]) {
	var d Dispatcher
	area := grid.Rect{Top: 20, Left: 85, Width: 200, Height: 100}
	return &d, NewCurveEditor[float64](&d, scale.NewLinear(0, 20, 0, 1), cell.New("area", area))
}

func feedCurve(d *Dispatcher, e *CurveEditor[float64], events ...pointer.Event) {
	for _, ev := range events {
		if !d.Dispatch(ev) {
			e.Event(ev)
		}
	}
}

func TestCurveEditor(t *testing.T) {
	d, e := newTestCurve()
	var changes []Influence[float64]
	var commits []Influence[float64]
	clears := 0
	e.OnChange = func(f Influence[float64]) { changes = append(changes, f) }
	e.OnCommit = func(f Influence[float64]) { commits = append(commits, f) }
	e.OnClear = func() { clears++ }

	feedCurve(d, e, ev(pointer.Press, 85+10, 20+80))
	if e.Phase() != CurveDefiningEnd {
		t.Fatalf("expected defining-end, got %v", e.Phase())
	}
	feedCurve(d, e, ev(pointer.Drag, 85+110, 20+20))
	start, middle, end, ok := e.Handles()
	if !ok || start != (Pos{10, 80}) || end != (Pos{110, 80}) || middle != (Pos{60, 80}) {
		t.Errorf("expected middle to follow the end, got %v %v %v", start, middle, end)
	}
	feedCurve(d, e, ev(pointer.Release, 85+110, 20+20))
	if e.Phase() != CurveDefiningMiddle || d.Len() != 1 {
		t.Fatalf("expected defining-middle with one capture, got %v with %d", e.Phase(), d.Len())
	}
	if len(changes) != 0 {
		t.Errorf("expected no curve before the middle moves, got %d", len(changes))
	}
	feedCurve(d, e, ev(pointer.Move, 85+250, 20+40))
	_, middle, _, _ = e.Handles()
	if middle != (Pos{110, 40}) {
		t.Errorf("expected the middle clamped to the span, got %v", middle)
	}
	feedCurve(d, e, ev(pointer.Move, 85+60, 20+40))
	if len(changes) != 2 {
		t.Fatalf("expected a curve per move, got %d", len(changes))
	}
	f := changes[1]
	// x = 10 px is domain value 1 on a 200 px wide 0..20 scale.
	if got := f.Ratio(1); got != 1 {
		t.Errorf("expected 1 at the start, got %v", got)
	}
	if got := f.Ratio(6); math.Abs(got-1.5) > 1e-9 {
		t.Errorf("expected 1.5 at the middle, got %v", got)
	}
	feedCurve(d, e, ev(pointer.Press, 0, 0))
	if e.Phase() != CurveIdle || d.Len() != 0 {
		t.Errorf("expected idle without listeners, got %v with %d", e.Phase(), d.Len())
	}
	if clears != 1 || len(commits) != 1 {
		t.Errorf("expected one commit and one clear, got %d and %d", len(commits), clears)
	}
	feedCurve(d, e, ev(pointer.Move, 85+20, 20+20))
	if len(changes) != 2 {
		t.Errorf("expected no curves once idle, got %d", len(changes))
	}
}

func TestCurveEditorCancel(t *testing.T) {
	d, e := newTestCurve()
	clears, commits := 0, 0
	e.OnClear = func() { clears++ }
	e.OnCommit = func(Influence[float64]) { commits++ }
	feedCurve(d, e,
		ev(pointer.Press, 85+10, 20+50),
		ev(pointer.Drag, 85+100, 20+50),
		ev(pointer.Cancel, 0, 0),
	)
	if e.Phase() != CurveIdle || clears != 0 {
		t.Errorf("expected a silent return to idle, got %v with %d clears", e.Phase(), clears)
	}
	feedCurve(d, e,
		ev(pointer.Press, 85+10, 20+50),
		ev(pointer.Release, 85+100, 20+50),
		ev(pointer.Move, 85+40, 20+10),
	)
	e.Cancel()
	if e.Phase() != CurveIdle || d.Len() != 0 {
		t.Errorf("expected idle without listeners, got %v with %d", e.Phase(), d.Len())
	}
	if clears != 1 || commits != 0 {
		t.Errorf("expected the preview cleared without a commit, got %d clears and %d commits", clears, commits)
	}
	if e.Event(ev(pointer.Press, 0, 0)) {
		t.Errorf("expected presses outside the cell to be ignored")
	}
}

func TestCurveEditorFreeEnd(t *testing.T) {
	d, e := newTestCurve()
	e.FreeEnd = true
	feedCurve(d, e,
		ev(pointer.Press, 85+10, 20+80),
		ev(pointer.Drag, 85+110, 20+20),
	)
	_, middle, end, _ := e.Handles()
	if end != (Pos{110, 20}) || middle != (Pos{60, 50}) {
		t.Errorf("expected the end to follow the pointer, got %v and %v", end, middle)
	}
}
