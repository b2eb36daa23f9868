package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/BarCut/internal/model"
)

// FileExtension is appended to project files saved without one.
const FileExtension = ".barcut"

// SaveProject writes the demand list and settings as JSON.
func SaveProject(path string, p model.Project) error {
	if filepath.Ext(path) == "" {
		path += FileExtension
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}
	return nil
}

// LoadProject reads a project file. Settings missing from the file keep
// their defaults; the legacy "exactCuts" mode name is normalised.
func LoadProject(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to read project file: %w", err)
	}
	p := model.NewProject()
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project file: %w", err)
	}
	mode, err := model.ParseCutMode(string(p.Settings.Mode))
	if err != nil {
		return model.Project{}, fmt.Errorf("invalid project file: %w", err)
	}
	p.Settings.Mode = mode
	if p.Demands == nil {
		p.Demands = []model.DemandLine{}
	}
	return p, nil
}
