package config

// Application constants
const (
	AppName    = "blight"
	AppVersion = "1.0.0"

	// EnvPrefix namespaces every environment variable, e.g. BLIGHT_LOGGING_LEVEL.
	EnvPrefix = "BLIGHT"

	// Raw input files
	TrainFileName     = "train.csv"
	AddressesFileName = "addresses.csv"
	LatLonsFileName   = "latlons.csv"

	// Processed output files
	ProcessedTrainFileName      = "train.csv"
	ProcessedValidationFileName = "validation.csv"

	// Reports
	EDAWorkbookFileName = "eda.xlsx"
	// EDATablesDir holds one CSV per EDA table, under the reports directory
	EDATablesDir = "eda"

	// Directory layout, relative to the root
	DefaultRoot         = "."
	DefaultRawDir       = "data/raw"
	DefaultProcessedDir = "data/processed"
	DefaultReportsDir   = "reports"
	DefaultFiguresDir   = "reports/figures"
	DefaultLogsDir      = "logs"

	// Feature defaults
	DefaultSplitDate = "2009-01-01"

	// EDA defaults
	DefaultHistogramBins = 40
	DefaultSampleSize    = 10
	DefaultSeed          = 55
	DefaultTopN          = 20
)

// DefaultRateKeys are the grouping columns that receive compliance-rate features
var DefaultRateKeys = []string{
	"agency_name",
	"inspector_name",
	"out_of_town",
	"state",
	"out_of_state",
	"region",
	"violation_code",
}
