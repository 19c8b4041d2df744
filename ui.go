package main

import (
	"errors"
	"image"
	"image/color"

	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/text"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"
	"github.com/charmbracelet/log"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"git.sr.ht/~whereswaldon/acchart/backend"
)

var openIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.FileFolderOpen)
	return icon
}()

// UI is responsible for holding the state of and drawing the top-level UI.
type UI struct {
	ws     backend.WindowState
	expl   *explorer.Explorer
	logger *log.Logger

	th            *material.Theme
	sessionStream *stream.Stream[backend.Session]
	session       backend.Session
	// shown is the session the view was built from.
	shown   backend.Session
	view    view
	openBtn widget.Clickable
	errMsg  string
}

func NewUI(ws backend.WindowState, expl *explorer.Explorer, logger *log.Logger) *UI {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()), text.NoSystemFonts())
	return &UI{
		ws:            ws,
		expl:          expl,
		logger:        logger,
		th:            th,
		sessionStream: stream.New(ws.Controller, ws.Bundle.Datasource.Sessions),
	}
}

// Update the state of the UI from the latest session and user input.
func (ui *UI) Update(gtx C) {
	ui.sessionStream.ReadInto(gtx, &ui.session, backend.Session{})
	if s := ui.session; s.ID != "" && (s.ID != ui.shown.ID || s.Revision != ui.shown.Revision) {
		ui.show(s)
	}
	if ui.openBtn.Clicked(gtx) {
		go ui.choose()
	}
}

// show replaces the view with the charts of s. A failed load keeps the
// previous view on screen.
func (ui *UI) show(s backend.Session) {
	prev := ui.shown
	ui.shown = s
	if s.Err != nil {
		ui.errMsg = s.Err.Error()
		return
	}
	ui.errMsg = ""
	var next view
	switch {
	case s.Charts.Numeric != nil:
		next = NewChartView(s.Charts.Numeric, ui.logger)
	case s.Charts.Temporal != nil:
		next = NewChartView(s.Charts.Temporal, ui.logger)
	default:
		return
	}
	if ui.view != nil {
		if s.ID == prev.ID {
			next.Adopt(ui.view)
		}
		ui.view.Close()
	}
	ui.view = next
}

func (ui *UI) choose() {
	file, err := ui.expl.ChooseFile(".toml", ".yaml", ".yml")
	if err != nil {
		if !errors.Is(err, explorer.ErrUserDecline) {
			ui.logger.Error("failed choosing document", "err", err)
		}
		return
	}
	ui.ws.Bundle.Datasource.LoadChosen(file)
}

func (ui *UI) layoutToolbar(gtx C) D {
	return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			return material.IconButton(ui.th, &ui.openBtn, openIcon, "Open document").Layout(gtx)
		}),
		layout.Flexed(1, func(gtx C) D {
			if ui.errMsg == "" {
				return material.Body2(ui.th, ui.shown.Path).Layout(gtx)
			}
			l := material.Body2(ui.th, ui.errMsg)
			l.Color = color.NRGBA{R: 150, A: 255}
			return l.Layout(gtx)
		}),
	)
}

func (ui *UI) layoutMainArea(gtx C) D {
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			return layout.UniformInset(4).Layout(gtx, ui.layoutToolbar)
		}),
		layout.Flexed(1, func(gtx C) D {
			return ui.view.Layout(gtx, ui.th)
		}),
	)
}

func (ui *UI) layoutStartScreen(gtx C) D {
	msg := "No chart loaded."
	if ui.errMsg != "" {
		msg = ui.errMsg
	}
	return layout.Flex{
		Axis:      layout.Vertical,
		Alignment: layout.Middle,
		Spacing:   layout.SpaceAround,
	}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Body1(ui.th, msg).Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Button(ui.th, &ui.openBtn, "Open Chart Document").Layout(gtx)
		}),
	)
}

// Layout the UI into the provided context.
func (ui *UI) Layout(gtx C) D {
	ui.Update(gtx)
	if ui.view != nil {
		return ui.layoutMainArea(gtx)
	}
	return ui.layoutStartScreen(gtx)
}
