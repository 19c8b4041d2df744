package scale

import (
	"math"
	"testing"
	"time"
)

func TestLinearRoundTrip(t *testing.T) {
	type testcase struct {
		name       string
		min, max   float64
		start, end float64
	}
	for _, tc := range []testcase{
		{name: "identity", min: 0, max: 10, start: 0, end: 10},
		{name: "stretched", min: 0, max: 10, start: 0, end: 100},
		{name: "reversed range", min: 0, max: 1100, start: 455, end: 0},
		{name: "reversed domain", min: 50, max: -50, start: 0, end: 200},
		{name: "offset", min: 1e6, max: 2e6, start: 20, end: 935},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s := NewLinear(tc.min, tc.max, tc.start, tc.end)
			for i := 0; i <= 20; i++ {
				v := tc.min + (tc.max-tc.min)*float64(i)/20
				got := s.Invert(s.Forward(v))
				if math.Abs(got-v) > 1e-9*math.Max(1, math.Abs(v)) {
					t.Errorf("expected %v, got %v", v, got)
				}
			}
			if got := s.Forward(tc.min); math.Abs(got-tc.start) > 1e-9 {
				t.Errorf("expected domain min at %v, got %v", tc.start, got)
			}
			if got := s.Forward(tc.max); math.Abs(got-tc.end) > 1e-9 {
				t.Errorf("expected domain max at %v, got %v", tc.end, got)
			}
		})
	}
}

func TestLinearDegenerate(t *testing.T) {
	s := NewLinear(5, 5, 0, 100)
	for _, v := range []float64{-10, 0, 5, 1e9} {
		if got := s.Forward(v); got != 50 {
			t.Errorf("expected midpoint 50 for %v, got %v", v, got)
		}
	}
	for _, px := range []float64{-3, 0, 50, 400} {
		if got := s.Invert(px); got != 5 {
			t.Errorf("expected min 5 for %v, got %v", px, got)
		}
	}
	var zero Linear
	if got := zero.Forward(12); got != 0 {
		t.Errorf("expected zero scale to map to 0, got %v", got)
	}
	if ticks := s.Ticks(5); len(ticks) != 1 || ticks[0] != 5 {
		t.Errorf("expected a single tick at 5, got %v", ticks)
	}
}

func TestLinearCopies(t *testing.T) {
	s := NewLinear(0, 10, 0, 100)
	fitted := s.WithRange(100, 0)
	if start, end := s.Range(); start != 0 || end != 100 {
		t.Errorf("expected original range to be untouched, got [%v,%v]", start, end)
	}
	if got := fitted.Forward(10); got != 0 {
		t.Errorf("expected refit scale to map 10 to 0, got %v", got)
	}
	zoomed := s.WithDomain(2, 4)
	if lo, hi := s.Domain(); lo != 0 || hi != 10 {
		t.Errorf("expected original domain to be untouched, got [%v,%v]", lo, hi)
	}
	if got := zoomed.Forward(3); got != 50 {
		t.Errorf("expected 3 to map to 50, got %v", got)
	}
}

func TestLinearTicksAndNice(t *testing.T) {
	s := NewLinear(0.3, 9.7, 0, 100)
	ticks := s.Ticks(6)
	if len(ticks) == 0 || len(ticks) > 6 {
		t.Fatalf("expected between 1 and 6 ticks, got %v", ticks)
	}
	for _, tick := range ticks {
		if tick < 0.3 || tick > 9.7 {
			t.Errorf("expected tick %v inside the domain", tick)
		}
	}
	nice := s.Nice(6)
	lo, hi := nice.Domain()
	if lo > 0.3 || hi < 9.7 {
		t.Errorf("expected nice domain to cover [0.3,9.7], got [%v,%v]", lo, hi)
	}
}

func TestLinearFormat(t *testing.T) {
	s := Linear{}
	for v, expected := range map[float64]string{
		0:       "0",
		0.1:     "0.1",
		1000:    "1000",
		1000000: "1000000",
		-2.5:    "-2.5",
	} {
		if got := s.Format(v); got != expected {
			t.Errorf("expected %q, got %q", expected, got)
		}
	}
}

func TestTimeRoundTrip(t *testing.T) {
	start := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	s := NewTime(start, end, 0, 915)
	for i := 0; i <= 10; i++ {
		v := start.Add(time.Duration(i) * end.Sub(start) / 10).Truncate(time.Millisecond)
		got := s.Invert(s.Forward(v))
		if d := got.Sub(v); d > time.Millisecond || d < -time.Millisecond {
			t.Errorf("expected %v, got %v", v, got)
		}
	}
	if got := s.Forward(start); got != 0 {
		t.Errorf("expected start at 0, got %v", got)
	}
	if got := s.Forward(end); math.Abs(got-915) > 1e-9 {
		t.Errorf("expected end at 915, got %v", got)
	}
	if s.Compare(start, end) >= 0 {
		t.Errorf("expected %v to order before %v", start, end)
	}
}

func TestTimeDegenerate(t *testing.T) {
	at := time.Date(2010, time.June, 1, 0, 0, 0, 0, time.UTC)
	s := NewTime(at, at, 100, 0)
	if got := s.Forward(at.Add(time.Hour)); got != 50 {
		t.Errorf("expected midpoint 50, got %v", got)
	}
	if got := s.Invert(7); !got.Equal(at) {
		t.Errorf("expected %v, got %v", at, got)
	}
}

func TestMillis(t *testing.T) {
	at := time.Date(1970, time.January, 1, 0, 0, 1, int(1500*time.Microsecond), time.UTC)
	ms := Millis(at)
	if ms != 1001.5 {
		t.Errorf("expected 1001.5, got %v", ms)
	}
	if back := FromMillis(ms); !back.Equal(at) {
		t.Errorf("expected %v, got %v", at, back)
	}
}
