package analysis

import (
	"math/rand/v2"
	"sort"

	"github.com/go-gota/gota/dataframe"

	"blightcli/internal/dataset"
	"blightcli/pkg/contracts/domain"
)

// DateConflict is a ticket whose hearing is not after its issue date
type DateConflict struct {
	Row          int
	TicketIssued string
	Hearing      string
}

// HearingBeforeTicket returns the rows whose hearing date is present and
// at or before the ticket date, in row order
func HearingBeforeTicket(df dataframe.DataFrame) ([]DateConflict, error) {
	issued, issuedOK, err := dataset.Dates(df, domain.ColTicketIssuedDate)
	if err != nil {
		return nil, err
	}
	hearing, hearingOK, err := dataset.Dates(df, domain.ColHearingDate)
	if err != nil {
		return nil, err
	}

	var out []DateConflict
	for i := range issued {
		if !issuedOK[i] || !hearingOK[i] || hearing[i].After(issued[i]) {
			continue
		}
		out = append(out, DateConflict{
			Row:          i,
			TicketIssued: domain.FormatDate(issued[i]),
			Hearing:      domain.FormatDate(hearing[i]),
		})
	}
	return out, nil
}

// SampleConflicts draws up to n conflicts without replacement. The same
// seed always draws the same rows, returned in row order.
func SampleConflicts(conflicts []DateConflict, n int, seed int64) []DateConflict {
	if n >= len(conflicts) {
		return append([]DateConflict(nil), conflicts...)
	}
	r := rand.New(rand.NewPCG(uint64(seed), 0))
	picked := r.Perm(len(conflicts))[:n]
	sort.Ints(picked)

	out := make([]DateConflict, n)
	for i, idx := range picked {
		out[i] = conflicts[idx]
	}
	return out
}

// ZeroJudgments returns the rows whose judgment amount is exactly zero
func ZeroJudgments(df dataframe.DataFrame) ([]int, error) {
	amounts, err := dataset.Floats(df, domain.ColJudgmentAmount)
	if err != nil {
		return nil, err
	}
	var rows []int
	for i, v := range amounts {
		if v == 0 {
			rows = append(rows, i)
		}
	}
	return rows, nil
}
