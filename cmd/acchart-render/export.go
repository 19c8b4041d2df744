package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"git.sr.ht/~whereswaldon/acchart/chart"
)

const exportSheet = "Series"

func newExportCmd(fsys afero.Fs, logger *log.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <document> <workbook.xlsx>",
		Short: "Write the series of a chart document to a workbook",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			charts, err := load(cmd.Context(), fsys, logger, args[0])
			if err != nil {
				return err
			}
			var book *excelize.File
			switch {
			case charts.Numeric != nil:
				book, err = workbook(charts.Numeric)
			case charts.Temporal != nil:
				book, err = workbook(charts.Temporal)
			default:
				err = errNoChart
			}
			if err != nil {
				return err
			}
			defer book.Close()
			f, err := fsys.Create(args[1])
			if err != nil {
				return fmt.Errorf("failed creating %s: %w", args[1], err)
			}
			defer f.Close()
			if _, err := book.WriteTo(f); err != nil {
				return fmt.Errorf("failed writing %s: %w", args[1], err)
			}
			logger.Info("wrote workbook", "path", args[1])
			return nil
		},
	}
	return cmd
}

// workbook lays every line of c out as a long table of series, x and y.
func workbook[X any](c *chart.Chart[X]) (*excelize.File, error) {
	book := excelize.NewFile()
	if err := book.SetSheetName(book.GetSheetName(0), exportSheet); err != nil {
		return nil, err
	}
	row := 1
	write := func(values []any) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		row++
		return book.SetSheetRow(exportSheet, cell, &values)
	}
	if err := write([]any{"series", "unit", "x", "y"}); err != nil {
		return nil, err
	}
	for _, line := range c.Lines() {
		for _, p := range line.Series.Points() {
			if err := write([]any{line.Series.Name, line.Series.Unit, p.X, p.Y}); err != nil {
				return nil, err
			}
		}
	}
	return book, nil
}
