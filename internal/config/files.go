package config

import (
	"os"
	"path/filepath"
)

const AppName = "gridbind"

var (
	// AppConfigDir is ~/.config/gridbind
	AppConfigDir string

	// AppDataDir is ~/.local/share/gridbind
	AppDataDir string

	// AppStateDir is ~/.local/state/gridbind
	AppStateDir string

	// AppConfigFile is ~/.config/gridbind/gridbind.yaml
	AppConfigFile string

	// AppAnimationsFile is ~/.config/gridbind/animations.ini
	AppAnimationsFile string

	// AppDBFile is ~/.local/share/gridbind/gridbind.db
	AppDBFile string

	// AppLogDir is ~/.local/state/gridbind/logs
	AppLogDir string
)

// InitLocs initializes all application directory paths.
// It respects XDG environment variables if set.
func InitLocs() error {
	home := userHomeDir()

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(home, ".local", "share")
	}

	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		stateHome = filepath.Join(home, ".local", "state")
	}

	AppConfigDir = filepath.Join(configHome, AppName)
	AppDataDir = filepath.Join(dataHome, AppName)
	AppStateDir = filepath.Join(stateHome, AppName)

	AppConfigFile = filepath.Join(AppConfigDir, AppName+".yaml")
	AppAnimationsFile = filepath.Join(AppConfigDir, "animations.ini")
	AppDBFile = filepath.Join(AppDataDir, AppName+".db")
	AppLogDir = filepath.Join(AppStateDir, "logs")

	for _, dir := range []string{AppConfigDir, AppDataDir, AppStateDir, AppLogDir} {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return err
		}
	}

	return nil
}

// userHomeDir returns the user's home directory
func userHomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	return home
}
