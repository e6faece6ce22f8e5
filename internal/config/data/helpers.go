// Package data holds the configuration types and their file helpers.
package data

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// EnsureFullPath ensures both the directory and parent directories exist
func EnsureFullPath(path string, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, perm); err != nil {
		return fmt.Errorf("failed to create full path for %q: %w", path, err)
	}
	return nil
}

// SaveYAML writes data as YAML next to path then renames it in place, so a
// crash never leaves a truncated config behind.
func SaveYAML(path string, data interface{}) error {
	if err := EnsureFullPath(path, 0700); err != nil {
		return err
	}

	bb, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, bb, 0600); err != nil {
		return fmt.Errorf("failed to write YAML file %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace YAML file %q: %w", path, err)
	}

	return nil
}

// LoadYAML decodes a YAML file into data. An empty file is not an error.
func LoadYAML(path string, data interface{}) error {
	bb, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read YAML file %q: %w", path, err)
	}
	if len(bytes.TrimSpace(bb)) == 0 {
		return nil
	}

	if err := yaml.Unmarshal(bb, data); err != nil {
		return fmt.Errorf("failed to unmarshal YAML from %q: %w", path, err)
	}

	return nil
}

// LoadINISection maps a section of an INI file onto a struct. A missing
// file or section leaves data untouched.
func LoadINISection(path, section string, data interface{}) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	f, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load INI file %q: %w", path, err)
	}
	if !f.HasSection(section) {
		return nil
	}
	if err := f.Section(section).MapTo(data); err != nil {
		return fmt.Errorf("failed to map INI section %q from %q: %w", section, path, err)
	}

	return nil
}
