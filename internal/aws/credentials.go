package aws

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fvbommel/sortorder"
	"gopkg.in/ini.v1"
)

const (
	defaultProfile = "default"
	profilePrefix  = "profile "
)

// SharedFiles locates the shared AWS credentials and config files.
type SharedFiles struct {
	CredentialsPath string
	ConfigPath      string
}

// NewSharedFiles returns the shared files honoring AWS_SHARED_CREDENTIALS_FILE
// and AWS_CONFIG_FILE.
func NewSharedFiles() SharedFiles {
	f := SharedFiles{
		CredentialsPath: filepath.Join(expandHomeDir("~"), ".aws", "credentials"),
		ConfigPath:      filepath.Join(expandHomeDir("~"), ".aws", "config"),
	}
	if p := os.Getenv("AWS_SHARED_CREDENTIALS_FILE"); p != "" {
		f.CredentialsPath = expandHomeDir(p)
	}
	if p := os.Getenv("AWS_CONFIG_FILE"); p != "" {
		f.ConfigPath = expandHomeDir(p)
	}

	return f
}

// Profiles returns all profile names found in either file, naturally sorted.
// Missing files yield no profiles.
func (f SharedFiles) Profiles() ([]string, error) {
	set := make(map[string]struct{})

	cred, err := loadOptional(f.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials file: %w", err)
	}
	if cred != nil {
		for _, s := range cred.Sections() {
			if s.Name() != ini.DefaultSection {
				set[s.Name()] = struct{}{}
			}
		}
	}

	conf, err := loadOptional(f.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	if conf != nil {
		for _, s := range conf.Sections() {
			switch name := s.Name(); {
			case name == defaultProfile:
				set[defaultProfile] = struct{}{}
			case strings.HasPrefix(name, profilePrefix):
				set[strings.TrimPrefix(name, profilePrefix)] = struct{}{}
			}
		}
	}

	pp := make([]string, 0, len(set))
	for p := range set {
		pp = append(pp, p)
	}
	sort.Slice(pp, func(i, j int) bool {
		return sortorder.NaturalLess(pp[i], pp[j])
	})

	return pp, nil
}

// Profile reads a named profile. Config file settings fill in what the
// credentials file leaves out.
func (f SharedFiles) Profile(name string) (*Profile, error) {
	var (
		p     = Profile{Name: name}
		found bool
	)

	cred, err := loadOptional(f.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials file: %w", err)
	}
	if cred != nil {
		if s, err := cred.GetSection(name); err == nil {
			found = true
			p.merge(s)
		}
	}

	conf, err := loadOptional(f.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	if conf != nil {
		section := profilePrefix + name
		if name == defaultProfile {
			section = defaultProfile
		}
		if s, err := conf.GetSection(section); err == nil {
			found = true
			p.merge(s)
		}
	}

	if !found {
		return nil, fmt.Errorf("%w: %q", ErrProfileNotFound, name)
	}

	return &p, nil
}

func loadOptional(path string) (*ini.File, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	return ini.Load(path)
}

// expandHomeDir expands ~ to the user's home directory.
func expandHomeDir(path string) string {
	if strings.HasPrefix(path, "~") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
	}
	return path
}
