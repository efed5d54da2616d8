package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "blightcli/internal/errors"
)

// clearEnv unsets every variable the tests below touch
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"BLIGHT_CONFIG",
		"BLIGHT_LOGGING_LEVEL",
		"BLIGHT_PATHS_ROOT",
		"BLIGHT_FEATURES_IMPUTE_STATISTIC",
		"BLIGHT_FEATURES_WINDOW_POLICY",
		"BLIGHT_FEATURES_LOG_OFFSET",
		"BLIGHT_FEATURES_RATE_KEYS",
		"BLIGHT_EDA_BINS",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		setupEnv    func(t *testing.T)
		fileContent string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults with no file and no env",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
				assert.Equal(t, "console", cfg.Logging.Output)
				assert.Equal(t, DefaultRawDir, cfg.Paths.RawDir)
				assert.Equal(t, DefaultProcessedDir, cfg.Paths.ProcessedDir)
				assert.Equal(t, "2009-01-01", cfg.Features.SplitDate)
				assert.Equal(t, "mean", cfg.Features.ImputeStatistic)
				assert.Equal(t, "drop", cfg.Features.WindowPolicy)
				assert.Equal(t, 0.0, cfg.Features.LogOffset)
				assert.False(t, cfg.Features.KeepDates)
				assert.Equal(t, DefaultRateKeys, cfg.Features.RateKeys)
				assert.Equal(t, 40, cfg.EDA.Bins)
			},
		},
		{
			name: "file overrides defaults",
			fileContent: `
logging:
  level: debug
features:
  impute_statistic: median
  keep_dates: true
  rate_keys: [agency_name, region]
eda:
  bins: 25
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "median", cfg.Features.ImputeStatistic)
				assert.True(t, cfg.Features.KeepDates)
				assert.Equal(t, []string{"agency_name", "region"}, cfg.Features.RateKeys)
				assert.Equal(t, 25, cfg.EDA.Bins)
				// untouched sections keep their defaults
				assert.Equal(t, "drop", cfg.Features.WindowPolicy)
			},
		},
		{
			name: "env overrides file",
			setupEnv: func(t *testing.T) {
				t.Setenv("BLIGHT_FEATURES_IMPUTE_STATISTIC", "mean")
				t.Setenv("BLIGHT_FEATURES_LOG_OFFSET", "1")
				t.Setenv("BLIGHT_FEATURES_RATE_KEYS", "state,region")
			},
			fileContent: `
features:
  impute_statistic: median
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "mean", cfg.Features.ImputeStatistic)
				assert.Equal(t, 1.0, cfg.Features.LogOffset)
				assert.Equal(t, []string{"state", "region"}, cfg.Features.RateKeys)
			},
		},
		{
			name: "invalid statistic fails validation",
			setupEnv: func(t *testing.T) {
				t.Setenv("BLIGHT_FEATURES_IMPUTE_STATISTIC", "mode")
			},
			wantErr: true,
		},
		{
			name: "invalid window policy fails validation",
			fileContent: `
features:
  window_policy: clamp
`,
			wantErr: true,
		},
		{
			name: "invalid split date fails validation",
			fileContent: `
features:
  split_date: 01/01/2009
`,
			wantErr: true,
		},
		{
			name:        "malformed yaml",
			fileContent: "logging: [unterminated",
			wantErr:     true,
		},
		{
			name: "non-numeric env value",
			setupEnv: func(t *testing.T) {
				t.Setenv("BLIGHT_EDA_BINS", "many")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			if tt.setupEnv != nil {
				tt.setupEnv(t)
			}

			var path string
			if tt.fileContent != "" {
				path = filepath.Join(t.TempDir(), "blight.yaml")
				require.NoError(t, os.WriteFile(path, []byte(tt.fileContent), 0644))
			}

			cfg, err := Load(path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cfg)
			if tt.validateCfg != nil {
				tt.validateCfg(t, cfg)
			}
		})
	}
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Features, cfg.Features)
}

func TestLoad_MissingFile(t *testing.T) {
	tests := []struct {
		name    string
		fromEnv bool
	}{
		{name: "explicit path"},
		{name: "BLIGHT_CONFIG", fromEnv: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			path := filepath.Join(t.TempDir(), "absent.yaml")

			arg := path
			if tt.fromEnv {
				t.Setenv("BLIGHT_CONFIG", path)
				arg = ""
			}

			cfg, err := Load(arg)
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound), "got %v", err)
			assert.Contains(t, err.Error(), path)
		})
	}
}

func TestLoad_ConfigFromEnvPath(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "blight.yaml")
	require.NoError(t, os.WriteFile(path, []byte("features:\n  window_policy: shift\n"), 0644))
	t.Setenv("BLIGHT_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "shift", cfg.Features.WindowPolicy)
}

func TestDefault_RateKeysAreCopied(t *testing.T) {
	cfg := Default()
	cfg.Features.RateKeys[0] = "changed"

	assert.Equal(t, "agency_name", DefaultRateKeys[0])
}
