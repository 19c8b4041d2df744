package scale

import (
	"cmp"
	"strconv"

	mscale "github.com/aclements/go-moremath/scale"
)

// Linear is a numeric linear scale. The zero value maps the degenerate domain
// [0,0] onto the degenerate range [0,0].
type Linear struct {
	domain     mscale.Linear
	start, end float64
}

var _ Scale[float64] = Linear{}

// NewLinear returns a scale mapping [min,max] onto [start,end]. Either interval
// may be reversed.
func NewLinear(min, max, start, end float64) Linear {
	return Linear{
		domain: mscale.Linear{Min: min, Max: max},
		start:  start,
		end:    end,
	}
}

// Degenerate reports whether the domain is a single value.
func (s Linear) Degenerate() bool {
	return s.domain.Min == s.domain.Max
}

func (s Linear) Forward(v float64) float64 {
	if s.Degenerate() {
		return (s.start + s.end) / 2
	}
	return s.start + s.domain.Map(v)*(s.end-s.start)
}

func (s Linear) Invert(px float64) float64 {
	if s.Degenerate() || s.start == s.end {
		return s.domain.Min
	}
	t := (px - s.start) / (s.end - s.start)
	return s.domain.Min + t*(s.domain.Max-s.domain.Min)
}

func (s Linear) Domain() (min, max float64) {
	return s.domain.Min, s.domain.Max
}

func (s Linear) Range() (start, end float64) {
	return s.start, s.end
}

func (s Linear) WithDomain(min, max float64) Scale[float64] {
	return s.SetDomain(min, max)
}

func (s Linear) WithRange(start, end float64) Scale[float64] {
	return s.SetRange(start, end)
}

// SetDomain is WithDomain returning the concrete type.
func (s Linear) SetDomain(min, max float64) Linear {
	s.domain.Min, s.domain.Max = min, max
	return s
}

// SetRange is WithRange returning the concrete type.
func (s Linear) SetRange(start, end float64) Linear {
	s.start, s.end = start, end
	return s
}

func (s Linear) Compare(a, b float64) int {
	return cmp.Compare(a, b)
}

func (s Linear) Format(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (s Linear) Ticks(n int) []float64 {
	if s.Degenerate() {
		return []float64{s.domain.Min}
	}
	if n < 1 {
		return nil
	}
	d := s.domain
	if d.Min > d.Max {
		d.Min, d.Max = d.Max, d.Min
	}
	major, _ := d.Ticks(mscale.TickOptions{Max: n})
	return major
}

func (s Linear) Nice(n int) Scale[float64] {
	return s.NiceLinear(n)
}

// NiceLinear is Nice returning the concrete type.
func (s Linear) NiceLinear(n int) Linear {
	if s.Degenerate() || n < 1 {
		return s
	}
	d := s.domain
	reversed := d.Min > d.Max
	if reversed {
		d.Min, d.Max = d.Max, d.Min
	}
	d.Nice(mscale.TickOptions{Max: n})
	if reversed {
		d.Min, d.Max = d.Max, d.Min
	}
	s.domain = d
	return s
}
