package export

import (
	"fmt"
	"io"
	"volby-scraper/internal/dataset"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func NewTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(out)
	return t
}

// Preview renders at most `limit` records as a console table, limit <= 0
// renders all of them.
func Preview(out io.Writer, records []*dataset.Record, limit int) {
	columns := dataset.Columns(records)

	t := NewTable(out)
	header := make(table.Row, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	t.AppendHeader(header)

	configs := make([]table.ColumnConfig, 0, len(columns))
	for i := range columns {
		if i < 2 {
			continue
		}
		configs = append(configs, table.ColumnConfig{Number: i + 1, Align: text.AlignRight})
	}
	t.SetColumnConfigs(configs)

	shown := records
	if limit > 0 && len(records) > limit {
		shown = records[:limit]
	}
	for _, r := range shown {
		values := r.Row(columns)
		row := make(table.Row, len(values))
		for i, v := range values {
			row[i] = v
		}
		t.AppendRow(row)
	}
	if len(shown) < len(records) {
		t.AppendFooter(table.Row{fmt.Sprintf("%d more", len(records)-len(shown))})
	}
	t.Render()
}
