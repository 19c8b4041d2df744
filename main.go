package main

import (
	"context"
	"flag"
	"os"
	"time"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/x/explorer"
	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"git.sr.ht/~whereswaldon/acchart/backend"
)

func main() {
	doc := flag.String("doc", "", "chart document to open on start")
	verbose := flag.Bool("v", false, "log debug output")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	ctx, cancel := context.WithCancel(context.Background())
	bundle, err := backend.NewBundle(ctx, afero.NewOsFs(), logger)
	if err != nil {
		logger.Fatal("failed starting backend", "err", err)
	}
	if *doc != "" {
		bundle.Datasource.LoadFile(*doc)
	}
	go func() {
		defer cancel()
		defer bundle.Datasource.Close()
		w := app.NewWindow(app.Title("acchart"))
		if err := loop(ctx, w, bundle, logger); err != nil {
			logger.Fatal("window failed", "err", err)
		}
		os.Exit(0)
	}()
	app.Main()
}

func loop(ctx context.Context, w *app.Window, bundle backend.Bundle, logger *log.Logger) error {
	ws := backend.NewWindowState(ctx, bundle, w.Invalidate)
	expl := explorer.NewExplorer(w)
	ui := NewUI(ws, expl, logger)
	var ops op.Ops
	for {
		ev := w.NextEvent()
		expl.ListenEvents(ev)
		switch ev := ev.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, ev)
			ui.Layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}
