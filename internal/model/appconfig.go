package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new projects
	DefaultParentWidth     float64 `json:"default_parent_width"`
	DefaultMode            CutMode `json:"default_mode"`
	DefaultTimeLimitMs     int     `json:"default_time_limit_ms"`
	DefaultMinOffcutLength float64 `json:"default_min_offcut_length"`
	DefaultWastePercent    float64 `json:"default_waste_percent"`
	DefaultPricePerBar     float64 `json:"default_price_per_bar"`

	// Application preferences
	LogLevel       string   `json:"log_level"` // logrus level name
	RecentProjects []string `json:"recent_projects"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultParentWidth:     defaults.ParentWidth,
		DefaultMode:            defaults.Mode,
		DefaultTimeLimitMs:     defaults.TimeLimitMs,
		DefaultMinOffcutLength: defaults.MinOffcutLength,
		DefaultWastePercent:    defaults.WastePercent,
		DefaultPricePerBar:     defaults.PricePerBar,
		LogLevel:               "info",
		RecentProjects:         []string{},
	}
}

// ApplyToSettings copies the default values from AppConfig into a CutSettings struct.
// Zero values in the config leave the corresponding setting untouched.
func (c AppConfig) ApplyToSettings(s *CutSettings) {
	if c.DefaultParentWidth > 0 {
		s.ParentWidth = c.DefaultParentWidth
	}
	if c.DefaultMode != "" {
		s.Mode = c.DefaultMode
	}
	if c.DefaultTimeLimitMs > 0 {
		s.TimeLimitMs = c.DefaultTimeLimitMs
	}
	if c.DefaultMinOffcutLength > 0 {
		s.MinOffcutLength = c.DefaultMinOffcutLength
	}
	s.WastePercent = c.DefaultWastePercent
	s.PricePerBar = c.DefaultPricePerBar
}

// AddRecentProject moves path to the front of the recent list, keeping at most limit entries.
func (c *AppConfig) AddRecentProject(path string, limit int) {
	recent := []string{path}
	for _, p := range c.RecentProjects {
		if p != path {
			recent = append(recent, p)
		}
	}
	if limit > 0 && len(recent) > limit {
		recent = recent[:limit]
	}
	c.RecentProjects = recent
}
