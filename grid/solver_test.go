package grid

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func chartScenario() (Spec, []Participant) {
	spec := Spec{
		{"y", "area"},
		{"", "x"},
	}
	parts := []Participant{
		{Cell: "y", Kind: KindLeftAxis},
		{Cell: "area", Kind: KindChart},
		{Cell: "x", Kind: KindBottomAxis},
	}
	return spec, parts
}

func TestSolveScenario(t *testing.T) {
	spec, parts := chartScenario()
	s := NewSolver(20)
	l, err := s.Solve(spec, parts, Container{Width: 1000, Height: 500})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	area, err := l.Cell("area")
	if err != nil {
		t.Fatalf("expected area cell, got %v", err)
	}
	if expected := 1000.0 - 2*20 - 65; !almostEqual(area.Width, expected) {
		t.Errorf("expected area width %v, got %v", expected, area.Width)
	}
	if expected := 500.0 - 2*20 - 45; !almostEqual(area.Height, expected) {
		t.Errorf("expected area height %v, got %v", expected, area.Height)
	}
	if !almostEqual(area.Left, 20+65) || !almostEqual(area.Top, 20) {
		t.Errorf("expected area at (85,20), got (%v,%v)", area.Left, area.Top)
	}
	x, _ := l.Cell("x")
	if !almostEqual(x.Top, area.Bottom) || !almostEqual(x.Left, area.Left) || !almostEqual(x.Width, area.Width) {
		t.Errorf("expected x axis directly below the area, got %+v", x)
	}
	y, _ := l.Cell("y")
	if !almostEqual(y.Right, area.Left) || !almostEqual(y.Height, area.Height) {
		t.Errorf("expected y axis directly left of the area, got %+v", y)
	}
}

// TestSolveSums checks that the columns and margins fill the container
// exactly. This only holds while the minimums fit, so that the leftover is
// not negative; TestSolveTooSmall covers the clamped case.
func TestSolveSums(t *testing.T) {
	type testcase struct {
		name   string
		spec   Spec
		parts  []Participant
		width  float64
		height float64
		margin float64
	}
	for _, tc := range []testcase{
		{
			name: "two charts sharing an axis",
			spec: Spec{
				{"topy", "top", "topr"},
				{"boty", "bottom", ""},
				{"", "x", ""},
			},
			parts: []Participant{
				{Cell: "topy", Kind: KindLeftAxis},
				{Cell: "top", Kind: KindChart},
				{Cell: "topr", Kind: KindRightAxis},
				{Cell: "boty", Kind: KindLeftAxis},
				{Cell: "bottom", Kind: KindChart},
				{Cell: "x", Kind: KindBottomAxis},
			},
			width: 1234, height: 777, margin: 20,
		},
		{
			name: "ragged rows",
			spec: Spec{
				{"a"},
				{"b", "c", "d"},
			},
			parts: []Participant{
				{Cell: "a", Kind: KindChart},
				{Cell: "d", Kind: KindChart},
				{Cell: "b", Kind: KindLeftAxis},
			},
			width: 640, height: 480, margin: 0,
		},
		{
			name:  "single chart",
			spec:  Spec{{"only"}},
			parts: []Participant{{Cell: "only", Kind: KindChart}},
			width: 300, height: 200, margin: 10,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			l, err := NewSolver(tc.margin).Solve(tc.spec, tc.parts, Container{Width: tc.width, Height: tc.height})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			sum := 2 * tc.margin
			for _, w := range l.Cols {
				sum += w
			}
			if !almostEqual(sum, tc.width) {
				t.Errorf("expected columns to sum to %v, got %v", tc.width, sum)
			}
			sum = 2 * tc.margin
			for _, h := range l.Rows {
				sum += h
			}
			if !almostEqual(sum, tc.height) {
				t.Errorf("expected rows to sum to %v, got %v", tc.height, sum)
			}
		})
	}
}

func TestSolveNoExtra(t *testing.T) {
	spec := Spec{{"l", "", "r"}}
	parts := []Participant{
		{Cell: "l", Kind: KindLeftAxis},
		{Cell: "r", Kind: KindRightAxis},
	}
	l, err := NewSolver(5).Solve(spec, parts, Container{Width: 500, Height: 100})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	left, _ := l.Cell("l")
	right, _ := l.Cell("r")
	if left.Width != AxisWidth || right.Width != AxisWidth {
		t.Errorf("expected fixed widths of %v, got %v and %v", AxisWidth, left.Width, right.Width)
	}
	if right.Left != 5+AxisWidth {
		t.Errorf("expected unnamed middle column to still advance the cursor, got left %v", right.Left)
	}
	if _, err := l.Cell(""); err == nil {
		t.Errorf("expected unnamed cells to have no rectangle")
	}
}

func TestSolveTooSmall(t *testing.T) {
	spec, parts := chartScenario()
	l, err := NewSolver(20).Solve(spec, parts, Container{Width: 50, Height: 30})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	area, _ := l.Cell("area")
	if area.Width != 0 || area.Height != 0 {
		t.Errorf("expected the flexible cell to collapse to zero, got %vx%v", area.Width, area.Height)
	}
	y, _ := l.Cell("y")
	if y.Width != AxisWidth {
		t.Errorf("expected the axis to keep its minimum, got %v", y.Width)
	}
}

func TestSolveRoot(t *testing.T) {
	spec, parts := chartScenario()
	l, err := NewSolver(20).Solve(spec, parts, Container{Top: 100, Left: 50, Width: 1000, Height: 500})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	area, _ := l.Cell("area")
	if area.RootTop != 100 || area.RootLeft != 50 {
		t.Errorf("expected root offset (100,50), got (%v,%v)", area.RootTop, area.RootLeft)
	}
	lx, ly := area.Local(50+85+10, 100+20+15)
	if !almostEqual(lx, 10) || !almostEqual(ly, 15) {
		t.Errorf("expected local (10,15), got (%v,%v)", lx, ly)
	}
	if !area.Contains(lx, ly) || area.Contains(-1, 0) {
		t.Errorf("expected containment to follow the local rectangle")
	}
}

func TestSolveIdempotent(t *testing.T) {
	spec, parts := chartScenario()
	c := Container{Width: 800, Height: 600}
	first, err := NewSolver(20).Solve(spec, parts, c)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	s := NewSolver(20)
	for i := 0; i < 3; i++ {
		again, err := s.Solve(spec, parts, c)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !slices.Equal(again.Cols, first.Cols) || !slices.Equal(again.Rows, first.Rows) {
			t.Errorf("expected columns %v and rows %v, got %v and %v", first.Cols, first.Rows, again.Cols, again.Rows)
		}
		// Results are the caller's to modify.
		again.Cols[0] = -1
		again.Rows[0] = -1
		again.Names()[0] = "changed"
		for _, name := range first.Names() {
			a, _ := first.Cell(name)
			b, _ := again.Cell(name)
			if a != b {
				t.Errorf("expected %q to resolve to %+v, got %+v", name, a, b)
			}
		}
	}
	resized, err := s.Solve(spec, parts, Container{Width: 400, Height: 600})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	area, _ := resized.Cell("area")
	if expected := 400.0 - 40 - 65; !almostEqual(area.Width, expected) {
		t.Errorf("expected resize to recompute width %v, got %v", expected, area.Width)
	}
}

func TestSolveErrors(t *testing.T) {
	spec, parts := chartScenario()
	_, err := NewSolver(0).Solve(spec, append(parts, Participant{Cell: "legend", Kind: KindGroup}), Container{Width: 10, Height: 10})
	var cellErr *CellError
	if !errors.As(err, &cellErr) || cellErr.Cell != "legend" {
		t.Errorf("expected an error naming the legend cell, got %v", err)
	}
	if !errors.Is(err, ErrUnknownCell) {
		t.Errorf("expected ErrUnknownCell, got %v", err)
	}
	_, err = NewSolver(0).Solve(Spec{{"a", "a"}}, nil, Container{Width: 10, Height: 10})
	if !errors.Is(err, ErrDuplicateCell) {
		t.Errorf("expected ErrDuplicateCell, got %v", err)
	}
	l, _ := NewSolver(0).Solve(spec, parts, Container{Width: 10, Height: 10})
	if _, err := l.Cell("missing"); !errors.Is(err, ErrUnknownCell) {
		t.Errorf("expected ErrUnknownCell for a missing lookup, got %v", err)
	}
}

func TestKindSizing(t *testing.T) {
	type testcase struct {
		kind Kind
		x, y Hint
	}
	for _, tc := range []testcase{
		{kind: KindChart, x: Hint{Extra: 1}, y: Hint{Extra: 1}},
		{kind: KindLeftAxis, x: Hint{Min: 65}},
		{kind: KindRightAxis, x: Hint{Min: 65}},
		{kind: KindBottomAxis, y: Hint{Min: 45}},
		{kind: KindGroup},
	} {
		t.Run(tc.kind.String(), func(t *testing.T) {
			x, y := tc.kind.Sizing()
			if x != tc.x || y != tc.y {
				t.Errorf("expected %+v/%+v, got %+v/%+v", tc.x, tc.y, x, y)
			}
		})
	}
}
