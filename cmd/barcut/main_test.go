package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/BarCut/internal/model"
	"github.com/piwi3910/BarCut/internal/project"
)

type testEnv struct {
	dir           string
	configPath    string
	inventoryPath string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	dir := t.TempDir()
	return testEnv{
		dir:           dir,
		configPath:    filepath.Join(dir, "config.json"),
		inventoryPath: filepath.Join(dir, "inventory.json"),
	}
}

// run executes the root command and returns stdout.
func (e testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", e.configPath, "--inventory", e.inventoryPath, "--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestParseDemandSpec(t *testing.T) {
	tests := []struct {
		spec  string
		label string
		width float64
		qty   int
	}{
		{"4x1200", "1200mm", 1200, 4},
		{"4X1200", "1200mm", 1200, 4},
		{"2*800.5", "800.5mm", 800.5, 2},
		{"3:450", "450mm", 450, 3},
		{"Rail = 2x1500", "Rail", 1500, 2},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			d, err := parseDemandSpec(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.label, d.Label)
			assert.Equal(t, tt.width, d.Width)
			assert.Equal(t, tt.qty, d.Quantity)
		})
	}
}

func TestParseDemandSpecInvalid(t *testing.T) {
	for _, spec := range []string{"", "1200", "ax1200", "4xabc", "Rail="} {
		_, err := parseDemandSpec(spec)
		assert.Error(t, err, spec)
	}
}

func TestSolveCommandText(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.run(t, "solve", "--parent", "100", "-d", "3x50")
	require.NoError(t, err)
	assert.Contains(t, out, "Status: OPTIMAL")
	assert.Contains(t, out, "Bars used: 2")
	assert.Contains(t, out, "50 50")
}

func TestSolveCommandJSON(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.run(t, "solve", "--parent", "100", "-d", "3x50", "--json")
	require.NoError(t, err)

	var report struct {
		Status        string           `json:"status"`
		NumBarsUsed   int              `json:"num_bars_used"`
		Plan          []model.CutBar   `json:"plan"`
		TotalLeftover float64          `json:"total_leftover"`
		Bounds        model.Bounds     `json:"bounds"`
		Offcuts       []map[string]any `json:"offcuts"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "OPTIMAL", report.Status)
	assert.Equal(t, 2, report.NumBarsUsed)
	assert.Len(t, report.Plan, 2)
	assert.Equal(t, 50.0, report.TotalLeftover)
	assert.Equal(t, 2, report.Bounds.MinBars)
}

func TestSolveCommandRejectsOversizedPiece(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "solve", "--parent", "100", "-d", "1x150")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rejected input")
}

func TestSolveCommandNeedsDemands(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "solve", "--parent", "100")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no pieces given")
}

func TestSolveCommandInvalidMode(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "solve", "--parent", "100", "--mode", "fastest", "-d", "1x50")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --mode")
}

func TestSolveFromProjectRemembersIt(t *testing.T) {
	env := newTestEnv(t)
	projectPath := filepath.Join(env.dir, "frame.barcut")

	p := model.NewProject()
	p.Settings.ParentWidth = 100
	p.Demands = []model.DemandLine{model.NewDemandLine("Leg", 50, 3)}
	require.NoError(t, project.SaveProject(projectPath, p))

	out, err := env.run(t, "solve", "-p", projectPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Bars used: 2")

	cfg, err := project.LoadAppConfig(env.configPath)
	require.NoError(t, err)
	assert.Equal(t, []string{projectPath}, cfg.RecentProjects)
}

func TestSolveSavesProject(t *testing.T) {
	env := newTestEnv(t)
	projectPath := filepath.Join(env.dir, "saved")

	_, err := env.run(t, "solve", "--parent", "100", "-d", "Leg=3x50", "--save", projectPath)
	require.NoError(t, err)

	p, err := project.LoadProject(projectPath + project.FileExtension)
	require.NoError(t, err)
	assert.Equal(t, 100.0, p.Settings.ParentWidth)
	require.Len(t, p.Demands, 1)
	assert.Equal(t, "Leg", p.Demands[0].Label)
}

func TestSolveWithPreset(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "presets", "add", "Short", "100")
	require.NoError(t, err)

	out, err := env.run(t, "solve", "--preset", "short", "-d", "3x50")
	require.NoError(t, err)
	assert.Contains(t, out, "bar length 100")

	_, err = env.run(t, "solve", "--preset", "missing", "-d", "3x50")
	assert.Error(t, err)
}

func TestCompareCommand(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.run(t, "compare", "--parent", "100", "-d", "4x30", "-d", "2x45")
	require.NoError(t, err)
	assert.Contains(t, out, "Exact Cuts")
	assert.Contains(t, out, "Minimum Waste")
}

func TestEstimateCommand(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.run(t, "estimate", "--parent", "1000", "-d", "5x300", "--waste", "10", "--price", "20", "--json")
	require.NoError(t, err)

	var est model.PurchaseEstimate
	require.NoError(t, json.Unmarshal([]byte(out), &est))
	assert.Equal(t, 1500.0, est.TotalDemandLength)
	assert.Equal(t, 2, est.BarsNeededMin)
	assert.Equal(t, 2, est.BarsWithWaste)
	assert.Equal(t, 40.0, est.EstimatedCost)
}

func TestImportCommand(t *testing.T) {
	env := newTestEnv(t)
	csvPath := filepath.Join(env.dir, "pieces.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("Label,Length,Qty\nLeg,500,4\nRail,1200,2\n"), 0o644))
	projectPath := filepath.Join(env.dir, "imported.barcut")

	out, err := env.run(t, "import", csvPath, "--save", projectPath)
	require.NoError(t, err)
	assert.Contains(t, out, "2 lines, 6 pieces")

	p, err := project.LoadProject(projectPath)
	require.NoError(t, err)
	assert.Len(t, p.Demands, 2)
}

func TestPresetsLifecycle(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "presets", "add", "Alu 3000", "3000", "--material", "aluminium", "--price", "12.5")
	require.NoError(t, err)

	inv, err := project.LoadInventory(env.inventoryPath)
	require.NoError(t, err)
	bar, ok := inv.FindBar("alu 3000")
	require.True(t, ok)
	assert.Equal(t, 3000.0, bar.Length)
	assert.Equal(t, 12.5, bar.PricePerBar)

	_, err = env.run(t, "presets", "remove", bar.ID)
	require.NoError(t, err)
	_, err = env.run(t, "presets", "remove", bar.ID)
	assert.Error(t, err)

	_, err = env.run(t, "presets", "add", "Bad", "-5")
	assert.Error(t, err)
}

func TestConfigExportImport(t *testing.T) {
	env := newTestEnv(t)
	cfg := model.DefaultAppConfig()
	cfg.DefaultParentWidth = 5000
	require.NoError(t, project.SaveAppConfig(env.configPath, cfg))

	backup := filepath.Join(env.dir, "backup.json")
	_, err := env.run(t, "config", "export", backup)
	require.NoError(t, err)

	other := newTestEnv(t)
	_, err = other.run(t, "config", "import", backup)
	require.NoError(t, err)

	restored, err := project.LoadAppConfig(other.configPath)
	require.NoError(t, err)
	assert.Equal(t, 5000.0, restored.DefaultParentWidth)

	out, err := other.run(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "5000")
}
