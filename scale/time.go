package scale

import (
	"math"
	"time"
)

// Time is a linear scale over instants, treated as a continuum of
// milliseconds since the Unix epoch.
type Time struct {
	lin Linear
}

var _ Scale[time.Time] = Time{}

// NewTime returns a scale mapping [min,max] onto [start,end].
func NewTime(min, max time.Time, start, end float64) Time {
	return Time{lin: NewLinear(Millis(min), Millis(max), start, end)}
}

// Millis returns t as fractional milliseconds since the Unix epoch.
func Millis(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Millisecond)
}

// FromMillis is the inverse of Millis. The result is in UTC.
func FromMillis(ms float64) time.Time {
	sec := math.Floor(ms / 1000)
	nsec := math.Round((ms - sec*1000) * float64(time.Millisecond))
	return time.Unix(int64(sec), int64(nsec)).UTC()
}

func (s Time) Forward(v time.Time) float64 {
	return s.lin.Forward(Millis(v))
}

func (s Time) Invert(px float64) time.Time {
	return FromMillis(s.lin.Invert(px))
}

func (s Time) Domain() (min, max time.Time) {
	lo, hi := s.lin.Domain()
	return FromMillis(lo), FromMillis(hi)
}

func (s Time) Range() (start, end float64) {
	return s.lin.Range()
}

func (s Time) WithDomain(min, max time.Time) Scale[time.Time] {
	s.lin = s.lin.SetDomain(Millis(min), Millis(max))
	return s
}

func (s Time) WithRange(start, end float64) Scale[time.Time] {
	s.lin = s.lin.SetRange(start, end)
	return s
}

func (s Time) Compare(a, b time.Time) int {
	return a.Compare(b)
}

func (s Time) Format(v time.Time) string {
	return v.String()
}

func (s Time) Ticks(n int) []time.Time {
	ms := s.lin.Ticks(n)
	out := make([]time.Time, len(ms))
	for i, v := range ms {
		out[i] = FromMillis(v)
	}
	return out
}

func (s Time) Nice(n int) Scale[time.Time] {
	s.lin = s.lin.NiceLinear(n)
	return s
}
