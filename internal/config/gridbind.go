package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/a1s/gridbind/internal/config/data"
	"github.com/a1s/gridbind/internal/model1"
	"github.com/golang/glog"
)

// Default values
const (
	DefaultCommitTimeout = 5 * time.Second
	DefaultTitle         = "grid"
)

// Gridbind represents the gridbind global configuration.
type Gridbind struct {
	RefreshRate   float32                `yaml:"refreshRate"`
	CommitTimeout string                 `yaml:"commitTimeout"`
	Strict        bool                   `yaml:"strict"`
	ReadOnly      bool                   `yaml:"readOnly"`
	Store         data.Store             `yaml:"store"`
	Animations    model1.AnimationConfig `yaml:"animations"`
	Features      data.FeatureGates      `yaml:"features"`
	UI            data.UI                `yaml:"ui"`

	mx sync.RWMutex
}

// NewGridbind creates a Gridbind with default settings.
func NewGridbind() *Gridbind {
	return &Gridbind{
		RefreshRate:   DefaultRefreshRate,
		CommitTimeout: DefaultCommitTimeout.String(),
		Store:         data.NewStore(),
		Animations:    model1.NewAnimationConfig(),
		Features:      data.NewFeatureGates(),
		UI:            data.UI{Title: DefaultTitle},
	}
}

// Validate ensures Gridbind has valid settings. Unknown animation kinds
// fall back to none.
func (g *Gridbind) Validate() error {
	g.mx.Lock()
	defer g.mx.Unlock()

	if g.RefreshRate <= 0 {
		g.RefreshRate = DefaultRefreshRate
	}
	if g.CommitTimeout == "" {
		g.CommitTimeout = DefaultCommitTimeout.String()
	}
	if g.UI.Title == "" {
		g.UI.Title = DefaultTitle
	}
	anims, err := g.Animations.Normalize()
	if err != nil {
		glog.Warningf("[config] %v; animations disabled\n", err)
		anims = model1.NewAnimationConfig()
	}
	g.Animations = anims

	return g.Store.Validate(AppDBFile)
}

// Override applies CLI flag overrides to the configuration.
func (g *Gridbind) Override(flags *data.Flags) {
	if flags == nil {
		return
	}

	g.mx.Lock()
	defer g.mx.Unlock()

	if flags.RefreshRate != nil && *flags.RefreshRate > 0 {
		g.RefreshRate = *flags.RefreshRate
	}
	if IsBoolSet(flags.ReadOnly) {
		g.ReadOnly = true
	}
	if IsBoolSet(flags.Strict) {
		g.Strict = true
	}
	if IsStringSet(flags.Source) {
		g.Store.Source = *flags.Source
	}
	if IsStringSet(flags.DBPath) {
		g.Store.Path = *flags.DBPath
	}
	if IsStringSet(flags.Bucket) {
		g.Store.Bucket = *flags.Bucket
	}
	if IsStringSet(flags.Key) {
		g.Store.Key = *flags.Key
	}
	if IsStringSet(flags.Profile) {
		g.Store.Profile = *flags.Profile
	}
	if IsStringSet(flags.Region) {
		g.Store.Region = *flags.Region
	}
	if IsStringSet(flags.Seed) {
		g.Store.Seed = *flags.Seed
	}
}

// EditGates returns the effective edit gates.
func (g *Gridbind) EditGates() data.FeatureGates {
	g.mx.RLock()
	defer g.mx.RUnlock()

	if g.ReadOnly {
		return data.ReadOnly()
	}
	return g.Features
}

// GetRefreshRate returns the store polling interval.
func (g *Gridbind) GetRefreshRate() time.Duration {
	g.mx.RLock()
	defer g.mx.RUnlock()

	return time.Duration(g.RefreshRate * float32(time.Second))
}

// GetCommitTimeout returns the parsed commit timeout duration.
func (g *Gridbind) GetCommitTimeout() (time.Duration, error) {
	g.mx.RLock()
	s := g.CommitTimeout
	g.mx.RUnlock()

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid commit timeout %q: %w", s, err)
	}

	return d, nil
}
