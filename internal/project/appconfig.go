package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/piwi3910/BarCut/internal/model"
)

// MaxRecentProjects bounds AppConfig.RecentProjects.
const MaxRecentProjects = 10

// DefaultConfigDir returns ~/.barcut, or ./.barcut when there is no home directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".barcut")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig validates config and writes it to path as JSON, creating
// missing parent directories.
func SaveAppConfig(path string, config model.AppConfig) error {
	if err := NormalizeAppConfig(&config); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAppConfig reads an AppConfig from path. A missing file yields
// DefaultAppConfig; fields absent from the file keep their defaults.
// A file holding an unknown mode, a negative length, price or time limit,
// or an unknown log level is rejected.
func LoadAppConfig(path string) (model.AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultAppConfig(), nil
		}
		return model.AppConfig{}, err
	}
	config := model.DefaultAppConfig()
	if err := json.Unmarshal(data, &config); err != nil {
		return model.AppConfig{}, err
	}
	if err := NormalizeAppConfig(&config); err != nil {
		return model.AppConfig{}, errors.WithMessage(err, path)
	}
	return config, nil
}

// NormalizeAppConfig checks the defaults a run would inherit from c and
// rewrites them to canonical form. Zero values mean "use the built-in
// default" and are replaced by it.
func NormalizeAppConfig(c *model.AppConfig) error {
	defaults := model.DefaultAppConfig()

	mode, err := model.ParseCutMode(string(c.DefaultMode))
	if err != nil {
		return errors.Wrap(err, "default_mode")
	}
	c.DefaultMode = mode

	switch {
	case c.DefaultParentWidth < 0:
		return errors.Errorf("default_parent_width must be positive, got %g", c.DefaultParentWidth)
	case c.DefaultParentWidth == 0:
		c.DefaultParentWidth = defaults.DefaultParentWidth
	}
	switch {
	case c.DefaultTimeLimitMs < 0:
		return errors.Errorf("default_time_limit_ms must not be negative, got %d", c.DefaultTimeLimitMs)
	case c.DefaultTimeLimitMs == 0:
		c.DefaultTimeLimitMs = defaults.DefaultTimeLimitMs
	}
	if c.DefaultMinOffcutLength < 0 {
		return errors.Errorf("default_min_offcut_length must not be negative, got %g", c.DefaultMinOffcutLength)
	}
	if c.DefaultWastePercent < 0 || c.DefaultWastePercent > 100 {
		return errors.Errorf("default_waste_percent must be within 0..100, got %g", c.DefaultWastePercent)
	}
	if c.DefaultPricePerBar < 0 {
		return errors.Errorf("default_price_per_bar must not be negative, got %g", c.DefaultPricePerBar)
	}

	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "log_level")
	}

	recent := make([]string, 0, len(c.RecentProjects))
	seen := make(map[string]bool, len(c.RecentProjects))
	for _, p := range c.RecentProjects {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		recent = append(recent, p)
	}
	if len(recent) > MaxRecentProjects {
		recent = recent[:MaxRecentProjects]
	}
	c.RecentProjects = recent
	return nil
}
