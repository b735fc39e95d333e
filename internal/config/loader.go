package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Configuration file names. A project keeps a dotfile next to the pages
// it audits; the user-wide file lives in the XDG config directory.
const (
	// DefaultConfigFile is the per-project configuration file name.
	DefaultConfigFile = ".designlens"

	// xdgConfigFileName is the file name inside the XDG config directory.
	xdgConfigFileName = "config.yml"
)

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// LoadConfigFile loads site configurations from a YAML file.
// A missing file returns ErrConfigNotFound so callers can decide whether
// that is fatal (the user named the file explicitly) or fine (the default
// search found nothing).
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	// An empty or sites-less file still gets a usable Sites map.
	if cf.Sites == nil {
		cf.Sites = make(map[string]SiteConfig)
	}

	return &cf, nil
}

// FindConfigFile locates the configuration file. When configPath is set it
// is the only candidate. Otherwise the first existing file wins, searching:
//
//  1. .designlens in the current directory (per-project config)
//  2. config.yml in the XDG config directory (user-wide config,
//     ~/.config/designlens on Linux)
//  3. .designlens in the user's home directory
//
// Returns an empty string when no candidate exists.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if fileExists(configPath) {
			return configPath
		}
		return ""
	}

	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), xdgConfigFileName))
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}

	for _, candidate := range candidates {
		if fileExists(candidate) {
			return candidate
		}
	}
	return ""
}

// fileExists reports whether path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
