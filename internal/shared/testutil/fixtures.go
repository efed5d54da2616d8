package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TicketsCSV has two tickets before 2009 and one after. Ticket 27586 has
// no hearing date and 18735 no compliance.
const TicketsCSV = `ticket_id,agency_name,inspector_name,violator_name,city,state,zip_code,country,ticket_issued_date,hearing_date,violation_code,judgment_amount,compliance
22056,"Buildings, Safety Engineering & Env Department","Sims, Martinzie","INVESTMENT, INC.",DET,MI,48208,USA,2008-06-01 10:00:00,2008-06-15 10:00:00,9-1-36(a),305.0,0.0
27586,Department of Public Works,"Williams, Darrin",Michigan Ave,Detroit,MI,48201,USA,2008-07-01 00:00:00,,22-2-88,855.0,1.0
18735,Department of Public Works,"Williams, Darrin","Mathis, Will",Detroit,MI,48201,USA,2009-01-01 00:00:00,2009-01-10 00:00:00,22-2-88,855.0,
`

// AddressesCSV maps each fixture ticket to an address
const AddressesCSV = `ticket_id,address
22056,"2900 tyler, Detroit MI"
27586,"4311 central, Detroit MI"
18735,"1449 longfellow, Detroit MI"
`

// LatLonsCSV geocodes each fixture address
const LatLonsCSV = `address,lat,lon
"2900 tyler, Detroit MI",42.390729,-83.124268
"4311 central, Detroit MI",42.326937,-83.135118
"1449 longfellow, Detroit MI",42.380516,-83.096069
`

// WriteRawInputs writes the three fixture extracts into dir under their
// raw file names
func WriteRawInputs(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	for name, content := range map[string]string{
		"train.csv":     TicketsCSV,
		"addresses.csv": AddressesCSV,
		"latlons.csv":   LatLonsCSV,
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}
