package main

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"golang.org/x/exp/constraints"

	"git.sr.ht/~whereswaldon/acchart/grid"
	"git.sr.ht/~whereswaldon/acchart/render"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

func rec(gtx C, w layout.Widget) (D, op.CallOp) {
	macro := op.Record(gtx.Ops)
	dims := w(gtx)
	call := macro.Stop()
	return dims, call
}

func ceil[T constraints.Integer | constraints.Float](a T) T {
	return T(math.Ceil(float64(a)))
}

func floor[T constraints.Integer | constraints.Float](a T) T {
	return T(math.Floor(float64(a)))
}

func pt(x, y float64) f32.Point {
	return f32.Pt(float32(x), float32(y))
}

// rectOf converts cell-local float bounds to whole pixels, growing outward.
func rectOf(x0, y0, x1, y1 float64) image.Rectangle {
	return image.Rect(int(floor(x0)), int(floor(y0)), int(ceil(x1)), int(ceil(y1)))
}

// inCell runs draw with the origin at the cell's top-left corner.
func inCell(gtx C, r grid.Rect, draw func()) {
	defer op.Offset(image.Pt(int(math.Round(r.Left)), int(math.Round(r.Top)))).Push(gtx.Ops).Pop()
	draw()
}

// clipCell limits drawing to the cell while draw runs.
func clipCell(gtx C, r grid.Rect, draw func()) {
	defer clip.Rect{Max: image.Pt(int(ceil(r.Width)), int(ceil(r.Height)))}.Push(gtx.Ops).Pop()
	draw()
}

func strokePath(gtx C, p render.Path, width float32, col color.NRGBA) {
	if len(p) < 2 {
		return
	}
	var path clip.Path
	path.Begin(gtx.Ops)
	for _, seg := range p {
		if seg.Op == render.MoveTo {
			path.MoveTo(pt(seg.X, seg.Y))
		} else {
			path.LineTo(pt(seg.X, seg.Y))
		}
	}
	paint.FillShape(gtx.Ops, col, clip.Stroke{Path: path.End(), Width: width}.Op())
}

func strokeLine(gtx C, x1, y1, x2, y2 float64, width float32, col color.NRGBA) {
	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(pt(x1, y1))
	path.LineTo(pt(x2, y2))
	paint.FillShape(gtx.Ops, col, clip.Stroke{Path: path.End(), Width: width}.Op())
}

// drawLabel places text the way an SVG text element with the label's
// anchor, baseline and rotation would.
func drawLabel(gtx C, th *material.Theme, size unit.Sp, l render.Label) {
	if l.Text == "" {
		return
	}
	label := material.Label(th, size, l.Text)
	label.MaxLines = 1
	gtx.Constraints.Min = image.Point{}
	gtx.Constraints.Max = image.Pt(1<<16, 1<<16)
	dims, call := rec(gtx, label.Layout)
	var off f32.Point
	switch l.Anchor {
	case render.AnchorMiddle:
		off.X = -float32(dims.Size.X) / 2
	case render.AnchorEnd:
		off.X = -float32(dims.Size.X)
	}
	if l.Baseline == render.BaselineCentral {
		off.Y = -float32(dims.Size.Y) / 2
	}
	origin := pt(l.X, l.Y)
	transform := f32.Affine2D{}.Offset(origin.Add(off))
	if l.Rotation != 0 {
		transform = transform.Rotate(origin, float32(l.Rotation*math.Pi/180))
	}
	defer op.Affine(transform).Push(gtx.Ops).Pop()
	call.Add(gtx.Ops)
}
