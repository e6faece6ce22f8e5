// Package data provides configuration data types for the gridbind application.
package data

// Flags represents CLI command-line flags for the gridbind application.
type Flags struct {
	RefreshRate *float32 // Store polling rate in seconds
	LogDir      *string  // Directory for log files
	Source      *string  // Content source: memory, sqlite or s3
	DBPath      *string  // SQLite database path
	Bucket      *string  // S3 bucket holding the snapshot
	Key         *string  // S3 snapshot key
	Profile     *string  // AWS profile to use
	Region      *string  // AWS region to use
	Seed        *string  // YAML file seeding the content
	ReadOnly    *bool    // Disable all edits
	Strict      *bool    // Panic on malformed batches
}

// UI represents user interface configuration settings.
type UI struct {
	EnableMouse bool   `yaml:"enableMouse"`
	Headless    bool   `yaml:"headless"`
	Title       string `yaml:"title"`
}

// NewFlags creates a new Flags instance with all pointer fields initialized.
// All pointers are allocated but their values are not set.
func NewFlags() *Flags {
	return &Flags{
		RefreshRate: new(float32),
		LogDir:      new(string),
		Source:      new(string),
		DBPath:      new(string),
		Bucket:      new(string),
		Key:         new(string),
		Profile:     new(string),
		Region:      new(string),
		Seed:        new(string),
		ReadOnly:    new(bool),
		Strict:      new(bool),
	}
}
