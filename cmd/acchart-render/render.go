package main

import (
	"bytes"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"git.sr.ht/~whereswaldon/acchart/chart"
	"git.sr.ht/~whereswaldon/acchart/sink"
)

func newRenderCmd(fsys afero.Fs, logger *log.Logger) *cobra.Command {
	var (
		s   size
		out string
	)
	cmd := &cobra.Command{
		Use:   "render <document>",
		Short: "Write a chart document as SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			charts, err := load(cmd.Context(), fsys, logger, args[0])
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			err = frame(charts, s,
				func(f *chart.Frame[float64]) error { return sink.SVG(&buf, f) },
				func(f *chart.Frame[time.Time]) error { return sink.SVG(&buf, f) },
			)
			if err != nil {
				return fmt.Errorf("failed rendering %s: %w", args[0], err)
			}
			if out == "" {
				_, err = buf.WriteTo(cmd.OutOrStdout())
				return err
			}
			if err := afero.WriteFile(fsys, out, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("failed writing %s: %w", out, err)
			}
			logger.Info("wrote chart", "path", out, "bytes", buf.Len())
			return nil
		},
	}
	s.flags(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}
