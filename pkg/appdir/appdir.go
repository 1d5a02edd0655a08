package appdir

import (
	"fmt"
	"os"
	"path/filepath"
)

// Name is the directory name used under the config and cache roots
const Name = "specplot"

// Dirs holds the per-user locations used by specplot
type Dirs struct {
	ConfigPath string // config.yaml
	ChartsPath string // rendered chart pages
}

// New resolves XDG-compliant paths
func New() (*Dirs, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config path: %w", err)
	}
	cacheRoot, err := getCacheRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to determine cache root: %w", err)
	}

	return &Dirs{
		ConfigPath: configPath,
		ChartsPath: filepath.Join(cacheRoot, "charts"),
	}, nil
}

// getConfigPath returns the config file path
// Follows XDG Base Directory specification on Unix and uses AppData on Windows
func getConfigPath() (string, error) {
	// Check XDG_CONFIG_HOME first (Unix-like systems)
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, Name, "config.yaml"), nil
	}

	// Check if we're on Windows by looking for APPDATA
	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, Name, "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	// Fall back to ~/.config/specplot/config.yaml (Unix-like systems)
	return filepath.Join(homeDir, ".config", Name, "config.yaml"), nil
}

// getCacheRoot returns the cache directory for rendered charts
func getCacheRoot() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, Name), nil
	}

	if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
		return filepath.Join(localAppData, Name, "cache"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".cache", Name), nil
}

// ChartPath returns the full path for a chart file
func (d *Dirs) ChartPath(filename string) string {
	return filepath.Join(d.ChartsPath, filename)
}

// CleanCharts removes previously rendered charts
func (d *Dirs) CleanCharts() error {
	entries, err := os.ReadDir(d.ChartsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read charts directory: %w", err)
	}

	for _, entry := range entries {
		path := filepath.Join(d.ChartsPath, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
	}

	return nil
}
