package features

import (
	"math"

	"github.com/go-gota/gota/dataframe"

	"blightcli/internal/dataset"
	"blightcli/pkg/contracts/domain"
)

// Project maps latitude and longitude in degrees onto the unit sphere
func Project(lat, lon float64) (x, y, z float64) {
	phi := lat * math.Pi / 180
	lambda := lon * math.Pi / 180
	return math.Cos(phi) * math.Cos(lambda),
		math.Cos(phi) * math.Sin(lambda),
		math.Sin(phi)
}

// AddCartesian replaces lat and lon with their unit-sphere coordinates
// x, y and z. Missing coordinates give missing outputs.
func AddCartesian(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	lats, err := dataset.Floats(df, domain.ColLat)
	if err != nil {
		return df, err
	}
	lons, err := dataset.Floats(df, domain.ColLon)
	if err != nil {
		return df, err
	}

	xs := make([]float64, len(lats))
	ys := make([]float64, len(lats))
	zs := make([]float64, len(lats))
	for i := range lats {
		xs[i], ys[i], zs[i] = Project(lats[i], lons[i])
	}

	for _, s := range []struct {
		name string
		vals []float64
	}{
		{domain.ColX, xs},
		{domain.ColY, ys},
		{domain.ColZ, zs},
	} {
		if df, err = dataset.Set(df, dataset.FloatSeries(s.name, s.vals)); err != nil {
			return df, err
		}
	}
	return dataset.Drop(df, domain.ColLat, domain.ColLon), nil
}
