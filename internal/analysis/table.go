package analysis

import "strconv"

// Table is a titled grid of rendered cells, printed to the console and
// written to the EDA workbook
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// SummaryTable lays out describe records one per row. Temporal columns add
// the date range.
func SummaryTable(title string, summaries []Summary) Table {
	t := Table{Title: title, Headers: append([]string{"column"}, summaryFields...)}
	temporal := false
	for _, s := range summaries {
		temporal = temporal || s.Temporal
	}
	if temporal {
		t.Headers = append(t.Headers, "first", "last")
	}

	for _, s := range summaries {
		row := append([]string{s.Column}, s.Values()...)
		for len(row) < len(t.Headers) {
			row = append(row, "")
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// NumericTable lays out distribution summaries one per row
func NumericTable(title string, summaries []NumericSummary) Table {
	t := Table{Title: title, Headers: append([]string{"column"}, NumericFields...)}
	for _, n := range summaries {
		t.Rows = append(t.Rows, append([]string{n.Column}, n.Values()...))
	}
	return t
}

// CountTable lays out value counts with their percentages
func CountTable(title, column string, counts []Count) Table {
	t := Table{Title: title, Headers: []string{column, "count", "percent"}}
	for _, c := range counts {
		t.Rows = append(t.Rows, []string{c.Value, strconv.Itoa(c.Count), formatPct(c.Percent)})
	}
	return t
}

// CrossTable lays out pair counts with their percentages
func CrossTable(title, a, b string, counts []CrossCount) Table {
	t := Table{Title: title, Headers: []string{a, b, "count", "percent"}}
	for _, c := range counts {
		t.Rows = append(t.Rows, []string{c.A, c.B, strconv.Itoa(c.Count), formatPct(c.Percent)})
	}
	return t
}

// ConflictTable lays out hearing date conflicts
func ConflictTable(title string, conflicts []DateConflict) Table {
	t := Table{Title: title, Headers: []string{"row", "ticket_issued_date", "hearing_date"}}
	for _, c := range conflicts {
		t.Rows = append(t.Rows, []string{strconv.Itoa(c.Row), c.TicketIssued, c.Hearing})
	}
	return t
}

func formatPct(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
