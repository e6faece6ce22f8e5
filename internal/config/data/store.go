package data

import (
	"fmt"
	"strings"
)

// Source kinds.
const (
	SourceMemory = "memory"
	SourceSQLite = "sqlite"
	SourceS3     = "s3"
)

// DefaultSnapshotKey is the S3 object holding the content snapshot.
const DefaultSnapshotKey = "gridbind.json"

// Store represents where the grid content lives.
type Store struct {
	Source  string `yaml:"source"`
	Path    string `yaml:"path"`
	Bucket  string `yaml:"bucket"`
	Key     string `yaml:"key"`
	Profile string `yaml:"profile"`
	Region  string `yaml:"region"`
	Seed    string `yaml:"seed"`
}

// NewStore returns an in-memory store config.
func NewStore() Store {
	return Store{
		Source: SourceMemory,
		Key:    DefaultSnapshotKey,
	}
}

// Validate normalizes the store settings.
func (s *Store) Validate(defaultPath string) error {
	s.Source = strings.ToLower(strings.TrimSpace(s.Source))
	switch s.Source {
	case "":
		s.Source = SourceMemory
	case SourceMemory:
	case SourceSQLite:
		if s.Path == "" {
			s.Path = defaultPath
		}
	case SourceS3:
		if s.Bucket == "" {
			return fmt.Errorf("s3 source requires a bucket")
		}
		if s.Key == "" {
			s.Key = DefaultSnapshotKey
		}
	default:
		return fmt.Errorf("unknown source %q", s.Source)
	}

	return nil
}
