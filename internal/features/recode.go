package features

import (
	"regexp"
	"strings"

	"github.com/go-gota/gota/dataframe"

	"blightcli/internal/dataset"
	apperrors "blightcli/internal/errors"
	"blightcli/pkg/contracts/domain"
)

var nonLetters = regexp.MustCompile(`[^a-zA-Z\s]`)

// mapStrings rewrites one string column cell by cell. Missing cells stay
// missing unless fn returns a value for "".
func mapStrings(df dataframe.DataFrame, column string, fn func(string) string) (dataframe.DataFrame, error) {
	vals, err := dataset.Strings(df, column)
	if err != nil {
		return df, err
	}
	for i, v := range vals {
		vals[i] = fn(v)
	}
	return dataset.Set(df, dataset.StringSeries(column, vals))
}

// RecodeAgency merges the small agencies into domain.CombinedAgency
func RecodeAgency(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	merge := make(map[string]bool, len(domain.CombinedAgencies))
	for _, a := range domain.CombinedAgencies {
		merge[a] = true
	}
	return mapStrings(df, domain.ColAgencyName, func(v string) string {
		if merge[v] {
			return domain.CombinedAgency
		}
		return v
	})
}

// AddComplianceLabel appends the display label for the compliance outcome.
// Not-responsible rows get an empty label.
func AddComplianceLabel(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	raw, err := dataset.Strings(df, domain.ColCompliance)
	if err != nil {
		return df, err
	}
	labels := make([]string, len(raw))
	for i, v := range raw {
		c, perr := domain.ParseCompliance(v)
		if perr != nil {
			return df, apperrors.InvalidValue(domain.ColCompliance, i, v, perr)
		}
		labels[i] = c.Label()
	}
	return dataset.Set(df, dataset.StringSeries(domain.ColComplianceLabel, labels))
}

// AddRegion derives the region from the first three characters of the
// mailing zip code and drops zip_code
func AddRegion(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	zips, err := dataset.Strings(df, domain.ColZipCode)
	if err != nil {
		return df, err
	}
	regions := make([]string, len(zips))
	for i, z := range zips {
		if len(z) > 3 {
			z = z[:3]
		}
		regions[i] = z
	}
	df, err = dataset.Set(df, dataset.StringSeries(domain.ColRegion, regions))
	if err != nil {
		return df, err
	}
	return dataset.Drop(df, domain.ColZipCode), nil
}

// CleanCity lowercases city names, strips everything but letters and
// whitespace and spells out the "det" abbreviation
func CleanCity(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	return mapStrings(df, domain.ColCity, func(v string) string {
		v = strings.TrimSpace(nonLetters.ReplaceAllString(strings.ToLower(v), ""))
		if v == "det" {
			return domain.HomeCity
		}
		return v
	})
}

// AddResidencyFlags appends out_of_state and out_of_town as "True"/"False"
// and drops city. A missing state or city counts as out of area.
func AddResidencyFlags(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	states, err := dataset.Strings(df, domain.ColState)
	if err != nil {
		return df, err
	}
	cities, err := dataset.Strings(df, domain.ColCity)
	if err != nil {
		return df, err
	}

	outOfState := make([]string, len(states))
	outOfTown := make([]string, len(cities))
	for i := range states {
		outOfState[i] = flag(states[i] != domain.HomeState)
		outOfTown[i] = flag(cities[i] != domain.HomeCity)
	}

	if df, err = dataset.Set(df, dataset.StringSeries(domain.ColOutOfState, outOfState)); err != nil {
		return df, err
	}
	if df, err = dataset.Set(df, dataset.StringSeries(domain.ColOutOfTown, outOfTown)); err != nil {
		return df, err
	}
	return dataset.Drop(df, domain.ColCity), nil
}

// CleanViolatorName strips everything but letters and whitespace from
// violator names and collapses runs of whitespace
func CleanViolatorName(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	return mapStrings(df, domain.ColViolatorName, func(v string) string {
		return strings.Join(strings.Fields(nonLetters.ReplaceAllString(v, "")), " ")
	})
}

func flag(b bool) string {
	if b {
		return domain.FlagTrue
	}
	return domain.FlagFalse
}
