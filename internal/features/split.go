package features

import (
	"fmt"
	"time"

	"github.com/go-gota/gota/dataframe"

	"blightcli/internal/dataset"
	apperrors "blightcli/internal/errors"
	"blightcli/pkg/contracts/domain"
)

// ParseBoundary parses a YYYY-MM-DD split day
func ParseBoundary(day string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		return time.Time{}, apperrors.NewConfigError(fmt.Sprintf("invalid split date %q", day), err)
	}
	return t, nil
}

// Split normalizes both date columns to the canonical layout and divides
// the rows: tickets issued before boundary train, the rest validate.
// Every row must carry a ticket date; hearing dates may be missing.
func Split(df dataframe.DataFrame, boundary time.Time) (train, validation dataframe.DataFrame, err error) {
	ticket, ticketOK, err := dataset.Dates(df, domain.ColTicketIssuedDate)
	if err != nil {
		return train, validation, err
	}
	hearing, hearingOK, err := dataset.Dates(df, domain.ColHearingDate)
	if err != nil {
		return train, validation, err
	}

	inTrain := make([]bool, len(ticket))
	inValidation := make([]bool, len(ticket))
	for i, t := range ticket {
		if !ticketOK[i] {
			return train, validation, apperrors.NewValidationError(
				fmt.Sprintf("missing %s at row %d", domain.ColTicketIssuedDate, i)).
				WithContext("row", i)
		}
		inTrain[i] = t.Before(boundary)
		inValidation[i] = !inTrain[i]
	}

	if df, err = dataset.Set(df, dataset.DateSeries(domain.ColTicketIssuedDate, ticket, ticketOK)); err != nil {
		return train, validation, err
	}
	if df, err = dataset.Set(df, dataset.DateSeries(domain.ColHearingDate, hearing, hearingOK)); err != nil {
		return train, validation, err
	}

	return dataset.KeepRows(df, inTrain), dataset.KeepRows(df, inValidation), nil
}
