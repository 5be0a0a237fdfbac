package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

// renderRows prints rows as a rounded table on a terminal and as
// tab-separated lines when piped, so the output stays script-friendly.
func renderRows(headers []string, rows [][]string) string {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		var b strings.Builder
		b.WriteString(strings.Join(headers, "\t"))
		b.WriteByte('\n')
		for _, row := range rows {
			b.WriteString(strings.Join(row, "\t"))
			b.WriteByte('\n')
		}
		return b.String()
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(headers))
		for i := range headers {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: len(headers), Align: text.AlignLeft, WidthMax: 60},
	})
	return tw.Render()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncatePrompt(prompt string, max int) string {
	prompt = strings.TrimSpace(prompt)
	runes := []rune(prompt)
	if len(runes) <= max {
		return prompt
	}
	return string(runes[:max-1]) + "…"
}

func formatProgress(progress float64) string {
	return fmt.Sprintf("%.0f%%", progress)
}
