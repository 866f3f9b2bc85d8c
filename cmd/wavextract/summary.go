package main

import (
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"wavextract/internal/report"
)

// renderSummary renders the run summary as a rounded table. Colors are used
// only when the destination is a terminal.
func renderSummary(writer io.Writer, summary report.Summary) string {
	colorize := shouldColorize(writer)

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Status", "Count"})

	rows := []struct {
		label string
		count int
		color text.Color
	}{
		{"OK", summary.OK, text.FgGreen},
		{"Failed", summary.Failed, text.FgRed},
		{"SkippedExists", summary.SkippedExists, text.FgYellow},
		{"SkippedNoAudio", summary.SkippedNoAudio, text.FgYellow},
		{"SkippedNotMedia", summary.SkippedNotMedia, text.FgYellow},
	}
	for _, row := range rows {
		label := row.label
		if colorize && row.count > 0 {
			label = row.color.Sprint(label)
		}
		tw.AppendRow(table.Row{label, strconv.Itoa(row.count)})
	}
	tw.AppendFooter(table.Row{"Total", strconv.Itoa(summary.Total())})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft, AlignFooter: text.AlignRight},
	})

	return tw.Render()
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
