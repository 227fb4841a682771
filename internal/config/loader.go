package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnvConfig names a config file read before any other location.
const EnvConfig = "DRAWALL_CONFIG"

// Loader finds and parses the rc file.
type Loader struct {
	Version      string // "dev" builds also read .drawallrc in the working directory
	OverridePath string // set at link time by packagers
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
	}
}

// Dir is the per-user config directory, $XDG_CONFIG_HOME/drawall or
// ~/.config/drawall. It is empty when no home directory is known.
func Dir() string {
	if base := os.Getenv("XDG_CONFIG_HOME"); base != "" {
		return filepath.Join(base, "drawall")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "drawall")
}

// Candidates lists the files Load tries, first match wins.
func (l *Loader) Candidates() []string {
	var paths []string
	if p := os.Getenv(EnvConfig); p != "" {
		paths = append(paths, p)
	}
	if l.OverridePath != "" {
		paths = append(paths, l.OverridePath)
	}
	if l.Version == "dev" {
		if wd, err := os.Getwd(); err == nil {
			paths = append(paths, filepath.Join(wd, ".drawallrc"))
		}
	}
	if dir := Dir(); dir != "" {
		paths = append(paths, filepath.Join(dir, "config.rc"), filepath.Join(dir, "drawall.rc"))
	}
	return paths
}

// GetConfigPath returns the first existing candidate, or "" if there is none.
func (l *Loader) GetConfigPath() string {
	for _, p := range l.Candidates() {
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p
		}
	}
	return ""
}

// Load parses the config file, or returns the defaults when none exists.
func (l *Loader) Load() (*Config, error) {
	path := l.GetConfigPath()
	if path == "" {
		return New(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
