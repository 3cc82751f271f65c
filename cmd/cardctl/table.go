package main

import (
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/phrazzld/tenx-cards/internal/domain/review"
)

const (
	frontWidth = 40
	backWidth  = 60
)

func renderCandidates(candidates []review.Candidate, colorize bool) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Status", "Front", "Back"})

	for i, c := range candidates {
		tw.AppendRow(table.Row{strconv.Itoa(i + 1), statusLabel(c.Status, colorize), c.Front, c.Back})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, WidthMax: frontWidth},
		{Number: 4, WidthMax: backWidth},
	})
	return tw.Render()
}

func statusLabel(s review.Status, colorize bool) string {
	label := string(s)
	if !colorize {
		return label
	}
	switch s {
	case review.StatusAccepted:
		return text.FgGreen.Sprint(label)
	case review.StatusEdited:
		return text.FgCyan.Sprint(label)
	case review.StatusRejected:
		return text.FgRed.Sprint(label)
	default:
		return label
	}
}

func isTerminal(v any) bool {
	file, ok := v.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
