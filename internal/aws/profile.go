package aws

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/ini.v1"
)

// DefaultRegion is used when neither flags, profile nor environment name one.
const DefaultRegion = "us-east-1"

// ErrProfileNotFound indicates a profile missing from the shared files.
var ErrProfileNotFound = errors.New("profile not found")

// Profile represents a shared config profile.
type Profile struct {
	Name          string
	Region        string
	RoleARN       string
	SourceProfile string
	HasStaticKeys bool
}

func (p *Profile) merge(s *ini.Section) {
	if p.Region == "" && s.HasKey("region") {
		p.Region = s.Key("region").String()
	}
	if p.RoleARN == "" && s.HasKey("role_arn") {
		p.RoleARN = s.Key("role_arn").String()
	}
	if p.SourceProfile == "" && s.HasKey("source_profile") {
		p.SourceProfile = s.Key("source_profile").String()
	}
	if s.HasKey("aws_access_key_id") && s.HasKey("aws_secret_access_key") {
		p.HasStaticKeys = true
	}
}

// Target is the profile and region a client should be built with. An
// empty profile leaves credentials to the SDK default chain.
type Target struct {
	Profile string
	Region  string
}

// String returns a loggable target.
func (t Target) String() string {
	p := t.Profile
	if p == "" {
		p = "<env>"
	}
	return p + "@" + t.Region
}

// Resolve picks the profile and region for a client. An explicit profile
// must exist in the shared files. Otherwise AWS_PROFILE or the default
// profile is used when present. Regions resolve from the flag, the
// profile, AWS_REGION, AWS_DEFAULT_REGION then DefaultRegion.
func Resolve(f SharedFiles, profile, region string) (Target, error) {
	explicit := profile != ""
	if !explicit {
		profile = os.Getenv("AWS_PROFILE")
		explicit = profile != ""
	}
	if profile == "" {
		profile = defaultProfile
	}

	t := Target{Region: region}
	p, err := f.Profile(profile)
	switch {
	case err == nil:
		t.Profile = p.Name
		if t.Region == "" {
			t.Region = p.Region
		}
	case errors.Is(err, ErrProfileNotFound) && !explicit:
	case errors.Is(err, ErrProfileNotFound):
		pp, _ := f.Profiles()
		if len(pp) == 0 {
			return Target{}, err
		}
		return Target{}, fmt.Errorf("%w (available: %s)", err, strings.Join(pp, ", "))
	default:
		return Target{}, err
	}

	for _, env := range []string{"AWS_REGION", "AWS_DEFAULT_REGION"} {
		if t.Region != "" {
			break
		}
		t.Region = os.Getenv(env)
	}
	if t.Region == "" {
		t.Region = DefaultRegion
	}

	return t, nil
}
