package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/piwi3910/BarCut/internal/model"
)

// BackupVersion is written to every backup. ImportAllData accepts any
// version with the same major number.
const BackupVersion = "1.0.0"

// BackupData bundles the config and the bar presets into one file.
type BackupData struct {
	Version   string          `json:"version"`
	CreatedAt string          `json:"created_at"`
	Config    model.AppConfig `json:"config"`
	Inventory model.Inventory `json:"inventory"`
}

// ExportAllData writes config and inv to exportPath.
func ExportAllData(exportPath string, config model.AppConfig, inv model.Inventory) error {
	if err := NormalizeAppConfig(&config); err != nil {
		return errors.WithMessage(err, "export config")
	}
	backup := BackupData{
		Version:   BackupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Inventory: inv,
	}
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal backup")
	}
	if err := os.MkdirAll(filepath.Dir(exportPath), 0755); err != nil {
		return errors.Wrap(err, "create export directory")
	}
	return errors.Wrap(os.WriteFile(exportPath, data, 0644), "write backup")
}

// ImportAllData reads a backup written by ExportAllData. The config is
// normalized the way LoadAppConfig does it, and every bar preset must have
// a name and a positive length. Presets without an ID get a fresh one.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, errors.Wrap(err, "read backup")
	}
	backup := BackupData{Config: model.DefaultAppConfig()}
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, errors.Wrap(err, "parse backup")
	}

	if backup.Version == "" {
		return BackupData{}, errors.New("invalid backup: missing version")
	}
	if major(backup.Version) != major(BackupVersion) {
		return BackupData{}, errors.Errorf("unsupported backup version %s (want %s.x)", backup.Version, major(BackupVersion))
	}
	if err := NormalizeAppConfig(&backup.Config); err != nil {
		return BackupData{}, errors.WithMessage(err, "backup config")
	}
	if err := checkPresets(backup.Inventory.Bars); err != nil {
		return BackupData{}, errors.WithMessage(err, "backup inventory")
	}
	return backup, nil
}

// checkPresets rejects presets that cannot serve as a stock bar and fills
// in missing or repeated IDs.
func checkPresets(bars []model.BarPreset) error {
	ids := make(map[string]bool, len(bars))
	for i := range bars {
		b := &bars[i]
		if strings.TrimSpace(b.Name) == "" {
			return errors.Errorf("bar %d has no name", i+1)
		}
		if b.Length <= 0 {
			return errors.Errorf("bar %q: length must be positive, got %g", b.Name, b.Length)
		}
		if b.PricePerBar < 0 {
			return errors.Errorf("bar %q: price must not be negative, got %g", b.Name, b.PricePerBar)
		}
		if b.ID == "" || ids[b.ID] {
			b.ID = uuid.New().String()[:8]
		}
		ids[b.ID] = true
	}
	return nil
}

func major(version string) string {
	v := strings.TrimPrefix(version, "v")
	if i := strings.IndexByte(v, '.'); i >= 0 {
		return v[:i]
	}
	return v
}
