package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/icco/sunburst/lib/hierarchy"
)

func renderTotals(totals []hierarchy.Total) string {
	p := message.NewPrinter(language.English)

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Season", "Plays", "Share"})

	var all int64
	for _, t := range totals {
		all += t.Plays
	}
	for _, t := range totals {
		share := 0.0
		if all > 0 {
			share = float64(t.Plays) * 100 / float64(all)
		}
		tw.AppendRow(table.Row{t.Name, p.Sprintf("%d", t.Plays), p.Sprintf("%.1f%%", share)})
	}
	tw.AppendFooter(table.Row{"Total", p.Sprintf("%d", all), ""})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	return tw.Render()
}
