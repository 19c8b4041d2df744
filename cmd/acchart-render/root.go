package main

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"git.sr.ht/~whereswaldon/acchart/backend"
	"git.sr.ht/~whereswaldon/acchart/chart"
	"git.sr.ht/~whereswaldon/acchart/grid"
)

var errNoChart = errors.New("document declares no chart")

func newRootCmd(fsys afero.Fs, logger *log.Logger) *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:           "acchart-render <command>",
		Short:         "Render chart documents headlessly",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel(log.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")

	cmd.AddCommand(newRenderCmd(fsys, logger))
	cmd.AddCommand(newLayoutCmd(fsys, logger))
	cmd.AddCommand(newExportCmd(fsys, logger))
	return cmd
}

// size is the container a document is laid out in.
type size struct {
	width, height float64
}

func (s *size) flags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&s.width, "width", 960, "width of the chart in pixels")
	cmd.Flags().Float64Var(&s.height, "height", 540, "height of the chart in pixels")
}

func (s size) container() grid.Container {
	return grid.Container{Width: s.width, Height: s.height}
}

func load(ctx context.Context, fsys afero.Fs, logger *log.Logger, path string) (*backend.Charts, error) {
	charts, err := backend.Load(ctx, fsys, path)
	if err != nil {
		logger.Error("failed loading document", "path", path, "err", err)
		return nil, err
	}
	logger.Debug("loaded document", "path", path, "files", len(charts.Files))
	return charts, nil
}

// frame solves whichever chart the document declares and hands it to one
// of the typed callbacks.
func frame(charts *backend.Charts, s size, numeric func(*chart.Frame[float64]) error, temporal func(*chart.Frame[time.Time]) error) error {
	switch {
	case charts.Numeric != nil:
		f, err := charts.Numeric.Frame(s.container())
		if err != nil {
			return err
		}
		return numeric(f)
	case charts.Temporal != nil:
		f, err := charts.Temporal.Frame(s.container())
		if err != nil {
			return err
		}
		return temporal(f)
	}
	return errNoChart
}
