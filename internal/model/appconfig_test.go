package model

import "testing"

func TestDefaultAppConfigMatchesDefaultSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	defaults := DefaultSettings()

	if cfg.DefaultParentWidth != defaults.ParentWidth {
		t.Errorf("ParentWidth mismatch: config=%f settings=%f", cfg.DefaultParentWidth, defaults.ParentWidth)
	}
	if cfg.DefaultMode != defaults.Mode {
		t.Errorf("Mode mismatch: config=%s settings=%s", cfg.DefaultMode, defaults.Mode)
	}
	if cfg.DefaultTimeLimitMs != defaults.TimeLimitMs {
		t.Errorf("TimeLimitMs mismatch: config=%d settings=%d", cfg.DefaultTimeLimitMs, defaults.TimeLimitMs)
	}
	if cfg.DefaultMinOffcutLength != defaults.MinOffcutLength {
		t.Errorf("MinOffcutLength mismatch: config=%f settings=%f", cfg.DefaultMinOffcutLength, defaults.MinOffcutLength)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %s", cfg.LogLevel)
	}
	if cfg.RecentProjects == nil {
		t.Error("RecentProjects should not be nil")
	}
}

func TestApplyToSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultParentWidth = 6000
	cfg.DefaultMode = CutMinWaste
	cfg.DefaultTimeLimitMs = 5000
	cfg.DefaultPricePerBar = 30

	s := DefaultSettings()
	cfg.ApplyToSettings(&s)

	if s.ParentWidth != 6000 {
		t.Errorf("expected ParentWidth=6000, got %f", s.ParentWidth)
	}
	if s.Mode != CutMinWaste {
		t.Errorf("expected Mode=minWaste, got %s", s.Mode)
	}
	if s.TimeLimitMs != 5000 {
		t.Errorf("expected TimeLimitMs=5000, got %d", s.TimeLimitMs)
	}
	if s.PricePerBar != 30 {
		t.Errorf("expected PricePerBar=30, got %f", s.PricePerBar)
	}
}

func TestApplyToSettingsKeepsZeroDefaults(t *testing.T) {
	cfg := AppConfig{}
	s := DefaultSettings()
	cfg.ApplyToSettings(&s)
	if s.ParentWidth != DefaultParentWidth {
		t.Errorf("expected ParentWidth untouched, got %f", s.ParentWidth)
	}
	if s.TimeLimitMs != DefaultTimeLimitMs {
		t.Errorf("expected TimeLimitMs untouched, got %d", s.TimeLimitMs)
	}
}

func TestAddRecentProject(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecentProject("a.json", 2)
	cfg.AddRecentProject("b.json", 2)
	cfg.AddRecentProject("a.json", 2)
	cfg.AddRecentProject("c.json", 2)

	if len(cfg.RecentProjects) != 2 {
		t.Fatalf("expected 2 recent projects, got %d", len(cfg.RecentProjects))
	}
	if cfg.RecentProjects[0] != "c.json" || cfg.RecentProjects[1] != "a.json" {
		t.Errorf("unexpected recent order %v", cfg.RecentProjects)
	}
}
