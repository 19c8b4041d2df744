package main

import (
	"image"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"

	"git.sr.ht/~whereswaldon/acchart/chart"
)

const disabledAlpha = uint8(100)

// LegendView lists the lines of one legend cell. Clicking a swatch hides or
// shows its line, and hovering a swatch highlights the line in every plot.
type LegendView[X any] struct {
	Legend  *chart.Legend[X]
	enabled []*widget.Bool
	table   component.GridState
}

func NewLegendView[X any](l *chart.Legend[X]) *LegendView[X] {
	v := &LegendView[X]{Legend: l}
	for _, line := range l.Lines {
		v.enabled = append(v.enabled, &widget.Bool{Value: !line.Hidden})
	}
	return v
}

// Update applies toggles to the lines.
func (v *LegendView[X]) Update(gtx C) {
	for i, line := range v.Legend.Lines {
		if v.enabled[i].Update(gtx) {
			line.Hidden = !v.enabled[i].Value
		}
		v.enabled[i].Value = !line.Hidden
	}
}

// Highlighted reports whether the pointer is over the swatch of line.
func (v *LegendView[X]) Highlighted(line *chart.Line[X]) bool {
	for i, l := range v.Legend.Lines {
		if l == line && v.enabled[i].Hovered() {
			return true
		}
	}
	return false
}

func (v *LegendView[X]) Layout(gtx C, th *material.Theme) D {
	table := component.Table(th, &v.table)
	table.HScrollbarStyle.Indicator.MinorWidth = 0
	table.HScrollbarStyle.Track.MinorPadding = 0
	colorColWidth := gtx.Dp(30)
	rowHeight := gtx.Sp(20)
	const (
		colorCol = iota
		nameCol
		numCols
	)
	lines := v.Legend.Lines
	return table.Layout(gtx, len(lines), numCols,
		func(axis layout.Axis, index, constraint int) int {
			if axis == layout.Vertical {
				return min(constraint, rowHeight)
			}
			if index == colorCol {
				return min(colorColWidth, constraint)
			}
			return max(constraint-colorColWidth-gtx.Dp(table.VScrollbarStyle.Width()), 0)
		},
		func(gtx C, index int) D {
			l := material.Body2(th, "Series")
			if index == colorCol {
				l.Text = ""
			}
			l.Color = th.ContrastFg
			return layout.Background{}.Layout(gtx,
				func(gtx C) D {
					paint.FillShape(gtx.Ops, th.ContrastBg, clip.Rect{Max: gtx.Constraints.Max}.Op())
					return D{Size: gtx.Constraints.Min}
				}, l.Layout,
			)
		},
		func(gtx C, row, col int) (dims D) {
			defer func() {
				dims.Size = gtx.Constraints.Constrain(dims.Size)
			}()
			line := lines[row]
			return layout.UniformInset(2).Layout(gtx, func(gtx C) D {
				switch col {
				case colorCol:
					return v.enabled[row].Layout(gtx, func(gtx C) D {
						return layout.Center.Layout(gtx, func(gtx C) D {
							side := gtx.Dp(10)
							sz := image.Pt(side, side)
							fill := line.Style.Color
							if line.Hidden {
								fill.A = disabledAlpha
							}
							paint.FillShape(gtx.Ops, fill, clip.Rect{Max: sz}.Op())
							return D{Size: sz}
						})
					})
				default:
					l := material.Body2(th, line.Title())
					l.MaxLines = 1
					l.Alignment = text.Start
					if line.Hidden {
						l.Color.A = disabledAlpha
					}
					return l.Layout(gtx)
				}
			})
		})
}
