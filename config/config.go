package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	coretypes "github.com/projecteru2/core/types"
)

// Config holds global preload configuration.
type Config struct {
	// RootDir is the base directory for persistent data (run history).
	RootDir string `json:"root_dir" mapstructure:"root_dir"`
	// PoolSize caps the number of in-flight image loads.
	// Zero or negative means every load is dispatched at once.
	PoolSize int `json:"pool_size" mapstructure:"pool_size"`
	// TimeoutSeconds bounds a single image fetch.
	TimeoutSeconds int `json:"timeout_seconds" mapstructure:"timeout_seconds"`
	// MaxImageBytes is the largest body a single image may have.
	MaxImageBytes int64 `json:"max_image_bytes" mapstructure:"max_image_bytes"`
	// UserAgent is sent with every HTTP request.
	UserAgent string `json:"user_agent" mapstructure:"user_agent"`
	// Location is the document URL relative paths resolve against
	// when no base URL is configured. Empty means the working directory.
	Location string `json:"location" mapstructure:"location"`
	// Log configuration, uses eru core's ServerLogConfig.
	Log coretypes.ServerLogConfig `json:"log" mapstructure:"log"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		RootDir:        defaultRootDir(),
		TimeoutSeconds: 30, //nolint:mnd
		MaxImageBytes:  64 << 20,
		UserAgent:      "preload",
		Log: coretypes.ServerLogConfig{
			Level:      "info",
			MaxSize:    500,
			MaxAge:     28,
			MaxBackups: 3,
		},
	}
}

// Normalize replaces out-of-range values with their defaults.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.RootDir == "" {
		c.RootDir = def.RootDir
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = def.TimeoutSeconds
	}
	if c.MaxImageBytes <= 0 {
		c.MaxImageBytes = def.MaxImageBytes
	}
	if c.UserAgent == "" {
		c.UserAgent = def.UserAgent
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}

// Timeout returns the per-image fetch timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// HistoryPath returns the path of the run history file.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.RootDir, "history.json")
}

// HistoryLockPath returns the flock file guarding the run history.
func (c *Config) HistoryLockPath() string {
	return filepath.Join(c.RootDir, "history.lock")
}

func defaultRootDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "preload")
	}
	return filepath.Join(os.TempDir(), "preload")
}

// WorkdirLocation returns a file:// location for the current directory.
func WorkdirLocation() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return "file://" + strings.TrimSuffix(filepath.ToSlash(wd), "/") + "/", nil
}
