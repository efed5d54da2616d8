// Package shared holds helpers used across packages. The testutil
// subpackage provides raw data fixtures and a capturing slog handler for
// tests; nothing in it is imported by production code.
package shared
