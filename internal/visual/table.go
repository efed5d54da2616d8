package visual

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"blightcli/internal/analysis"
)

// PrintTable renders headers and rows as a bordered text table
func PrintTable(w io.Writer, headers []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(headers)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()
}

// Print renders t under its title
func Print(w io.Writer, t analysis.Table) {
	if t.Title != "" {
		fmt.Fprintf(w, "\n%s\n", t.Title)
	}
	PrintTable(w, t.Headers, t.Rows)
}
