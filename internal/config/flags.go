package config

import (
	"github.com/a1s/gridbind/internal/config/data"
)

// DefaultRefreshRate is the default store polling interval in seconds.
const DefaultRefreshRate = 5.0

// NewFlags creates a new Flags instance with default values set. A zero
// refresh rate defers to the config file.
func NewFlags() *data.Flags {
	refreshRate := float32(0)
	logDir := AppLogDir
	source := ""
	dbPath := ""
	bucket := ""
	key := ""
	profile := ""
	region := ""
	seed := ""
	readOnly := false
	strict := false

	return &data.Flags{
		RefreshRate: &refreshRate,
		LogDir:      &logDir,
		Source:      &source,
		DBPath:      &dbPath,
		Bucket:      &bucket,
		Key:         &key,
		Profile:     &profile,
		Region:      &region,
		Seed:        &seed,
		ReadOnly:    &readOnly,
		Strict:      &strict,
	}
}

// IsBoolSet returns true if a bool pointer is non-nil and true.
func IsBoolSet(b *bool) bool {
	return b != nil && *b
}

// IsStringSet returns true if a string pointer is non-nil and non-empty.
func IsStringSet(s *string) bool {
	return s != nil && *s != ""
}
