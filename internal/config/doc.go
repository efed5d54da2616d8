// Package config provides centralized configuration for the blight pipeline.
// It handles loading configuration from multiple sources, validation, and the
// directory layout every command reads from and writes to.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. YAML configuration file
//	3. Built-in defaults (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern BLIGHT_<SECTION>_<FIELD>:
//
//	BLIGHT_LOGGING_LEVEL=debug
//	BLIGHT_PATHS_ROOT=/srv/blight
//	BLIGHT_FEATURES_IMPUTE_STATISTIC=median
//	BLIGHT_FEATURES_RATE_KEYS=agency_name,region
//	BLIGHT_METRICS_TEXTFILE_PATH=/var/lib/node_exporter/blight.prom
//
// BLIGHT_CONFIG names the YAML file when no path is passed to Load.
//
// # Path Management
//
// Paths resolves every directory relative to the configured root:
//
//	paths, err := cfg.ResolvedPaths()
//	trainCSV := paths.TrainCSV
//	figure := paths.FigureFile("compliance.png")
//
// # Validation
//
// Configuration is validated at load time with go-playground/validator
// struct tags, e.g. the imputation statistic must be mean or median and the
// split date must be a YYYY-MM-DD day.
package config
