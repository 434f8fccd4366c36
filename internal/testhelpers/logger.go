// Package testhelpers provides shared test utilities.
package testhelpers

import "github.com/jonesrussell/govidsearch/internal/logger"

// NewTestLogger returns a logger that discards output.
func NewTestLogger() logger.Logger {
	return logger.NewNop()
}
