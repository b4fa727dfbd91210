// ABOUTME: fittrack configuration file: data directory and logging settings.
// ABOUTME: Stored as TOML under the XDG config directory; a missing file means defaults.

package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/harperreed/fittrack/internal/storage"
)

// LogFileStderr as log_file sends logs to stderr instead of a file.
const LogFileStderr = "-"

// DefaultPhotoCacheMB sizes the photo read cache when the file does not.
const DefaultPhotoCacheMB = 16

// Config stores fittrack configuration.
type Config struct {
	// DataDir holds fittrack.db, the photos directory and the default log
	// file. Supports ~ expansion. Defaults to ~/.local/share/fittrack.
	DataDir string `toml:"data_dir,omitempty"`

	// LogLevel is a logrus level name. Defaults to "info".
	LogLevel string `toml:"log_level,omitempty"`

	// LogFile is the rotating log file path, or "-" for stderr. Defaults to
	// fittrack.log in the data directory.
	LogFile string `toml:"log_file,omitempty"`

	// PhotoCacheMB sizes the photo read cache. Zero means the default and a
	// negative value disables the cache.
	PhotoCacheMB int `toml:"photo_cache_mb,omitempty"`
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetLogLevel returns the configured level name, defaulting to "info".
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return "info"
	}
	return c.LogLevel
}

// GetLogFile returns the log file path with ~ expanded, or LogFileStderr.
func (c *Config) GetLogFile() string {
	switch c.LogFile {
	case "":
		return filepath.Join(c.GetDataDir(), "fittrack.log")
	case LogFileStderr:
		return LogFileStderr
	default:
		return ExpandPath(c.LogFile)
	}
}

// GetPhotoCacheMB returns the cache size in megabytes; zero means disabled.
func (c *Config) GetPhotoCacheMB() int {
	switch {
	case c.PhotoCacheMB < 0:
		return 0
	case c.PhotoCacheMB == 0:
		return DefaultPhotoCacheMB
	default:
		return c.PhotoCacheMB
	}
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "fittrack", "config.toml")
}

// Load reads config from disk.
func Load() (*Config, error) {
	return LoadFile(GetConfigPath())
}

// LoadFile reads config from path. A missing file yields an empty Config.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	return c.SaveFile(GetConfigPath())
}

// SaveFile writes config to path, creating its directory.
func (c *Config) SaveFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0600)
}
