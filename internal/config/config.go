package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/a1s/gridbind/internal/config/data"
	"github.com/a1s/gridbind/internal/model1"
)

const animationsSection = "animations"

// Config is the root configuration for the application.
type Config struct {
	Gridbind *Gridbind `yaml:"gridbind"`
	mx       sync.RWMutex
}

// NewConfig creates a new Config with defaults.
func NewConfig() *Config {
	return &Config{
		Gridbind: NewGridbind(),
	}
}

// Load loads the configuration from the given path.
// If the file doesn't exist, the current config is kept.
func (c *Config) Load(path string, force bool) error {
	c.mx.Lock()
	defer c.mx.Unlock()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if !force {
			return nil
		}
		return fmt.Errorf("config file does not exist: %s", path)
	}

	if err := data.LoadYAML(path, c); err != nil {
		return fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	if c.Gridbind == nil {
		c.Gridbind = NewGridbind()
	}

	return nil
}

// LoadAnimations overlays animation settings from an INI file.
func (c *Config) LoadAnimations(path string) error {
	c.mx.Lock()
	defer c.mx.Unlock()

	var anims model1.AnimationConfig
	if err := data.LoadINISection(path, animationsSection, &anims); err != nil {
		return err
	}
	c.Gridbind.Animations = c.Gridbind.Animations.Merge(anims)

	return nil
}

// Save saves the configuration to the given path.
// If force is false, only saves if the file already exists.
func (c *Config) Save(path string, force bool) error {
	c.mx.RLock()
	defer c.mx.RUnlock()

	if path == "" {
		return fmt.Errorf("no config file path configured")
	}
	if _, err := os.Stat(path); err != nil && !force {
		return nil
	}
	if err := data.SaveYAML(path, c); err != nil {
		return fmt.Errorf("failed to save config to %s: %w", path, err)
	}

	return nil
}

// Refine applies CLI flags and validates the final configuration.
// Precedence: CLI flags > INI animations > YAML config > defaults.
func (c *Config) Refine(flags *data.Flags) error {
	c.mx.Lock()
	defer c.mx.Unlock()

	if c.Gridbind == nil {
		return fmt.Errorf("config.Gridbind is nil")
	}
	c.Gridbind.Override(flags)

	return c.Gridbind.Validate()
}
