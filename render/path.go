// Package render turns series and axes into host-independent geometry
// within the rectangle of a cell.
package render

import (
	"strconv"
)

// Op is a path drawing operation.
type Op uint8

const (
	MoveTo Op = iota
	LineTo
)

// Segment is one operation of a path in cell-local pixels.
type Segment struct {
	Op   Op
	X, Y float64
}

// Path is a polyline.
type Path []Segment

func (p *Path) MoveTo(x, y float64) {
	*p = append(*p, Segment{Op: MoveTo, X: x, Y: y})
}

func (p *Path) LineTo(x, y float64) {
	*p = append(*p, Segment{Op: LineTo, X: x, Y: y})
}

// String returns the path in SVG path data syntax, e.g. "M0,100 L100,0".
func (p Path) String() string {
	buf := make([]byte, 0, len(p)*12)
	for i, seg := range p {
		if i > 0 {
			buf = append(buf, ' ')
		}
		switch seg.Op {
		case MoveTo:
			buf = append(buf, 'M')
		default:
			buf = append(buf, 'L')
		}
		buf = strconv.AppendFloat(buf, seg.X, 'f', -1, 64)
		buf = append(buf, ',')
		buf = strconv.AppendFloat(buf, seg.Y, 'f', -1, 64)
	}
	return string(buf)
}
