package main

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"git.sr.ht/~whereswaldon/acchart/chart"
	"git.sr.ht/~whereswaldon/acchart/grid"
)

func newLayoutCmd(fsys afero.Fs, logger *log.Logger) *cobra.Command {
	var s size
	cmd := &cobra.Command{
		Use:   "layout <document>",
		Short: "Print the resolved rectangle of every cell",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			charts, err := load(cmd.Context(), fsys, logger, args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			return frame(charts, s,
				func(f *chart.Frame[float64]) error { return printLayout(w, f.Layout) },
				func(f *chart.Frame[time.Time]) error { return printLayout(w, f.Layout) },
			)
		},
	}
	s.flags(cmd)
	return cmd
}

func printLayout(w io.Writer, l grid.Layout) error {
	for _, name := range l.Names() {
		r, err := l.Cell(name)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%-12s left=%g top=%g width=%g height=%g\n", name, r.Left, r.Top, r.Width, r.Height)
		if err != nil {
			return err
		}
	}
	return nil
}
