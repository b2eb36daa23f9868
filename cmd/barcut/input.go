package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/piwi3910/BarCut/internal/importer"
	"github.com/piwi3910/BarCut/internal/model"
	"github.com/piwi3910/BarCut/internal/project"
)

// runFlags are shared by every command that solves or estimates a demand list.
type runFlags struct {
	parentWidth float64
	mode        string
	timeLimitMs int
	minOffcut   float64
	preset      string

	demands     []string
	file        string
	projectPath string
}

func (f *runFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.Float64Var(&f.parentWidth, "parent", 0, "stock bar length in mm")
	flags.StringVar(&f.mode, "mode", "", "cut mode: exact or minWaste")
	flags.IntVar(&f.timeLimitMs, "time-limit", 0, "solver time limit in milliseconds")
	flags.Float64Var(&f.minOffcut, "min-offcut", 0, "shortest leftover reported as a reusable offcut, mm")
	flags.StringVar(&f.preset, "preset", "", "bar preset name or ID from the inventory")
	flags.StringArrayVarP(&f.demands, "demand", "d", nil, "piece demand as QTYxLENGTH, optionally LABEL=QTYxLENGTH (repeatable)")
	flags.StringVarP(&f.file, "file", "f", "", "import pieces from a CSV, XLSX or DXF file")
	flags.StringVarP(&f.projectPath, "project", "p", "", "load pieces and settings from a project file")
}

// resolve builds the settings and the demand list. Precedence, lowest first:
// built-in defaults, config file, project file, bar preset, flags.
func (f *runFlags) resolve(cmd *cobra.Command, root *rootOptions) (model.CutSettings, []model.DemandLine, error) {
	settings := model.DefaultSettings()
	root.config.ApplyToSettings(&settings)

	var demands []model.DemandLine

	if f.projectPath != "" {
		p, err := project.LoadProject(f.projectPath)
		if err != nil {
			return settings, nil, errors.WithMessage(err, "load project")
		}
		settings = p.Settings
		demands = append(demands, p.Demands...)
		root.rememberProject(f.projectPath)
	}

	if f.preset != "" {
		inv, err := project.LoadInventory(root.inventoryPath)
		if err != nil {
			return settings, nil, errors.WithMessage(err, "load inventory")
		}
		bar, ok := inv.FindBar(f.preset)
		if !ok {
			return settings, nil, errors.Errorf("unknown bar preset %q", f.preset)
		}
		bar.ApplyToSettings(&settings)
	}

	flags := cmd.Flags()
	if flags.Changed("parent") {
		settings.ParentWidth = f.parentWidth
	}
	if flags.Changed("mode") {
		mode, err := model.ParseCutMode(f.mode)
		if err != nil {
			return settings, nil, errors.WithMessage(err, "invalid --mode")
		}
		settings.Mode = mode
	}
	if flags.Changed("time-limit") {
		settings.TimeLimitMs = f.timeLimitMs
	}
	if flags.Changed("min-offcut") {
		settings.MinOffcutLength = f.minOffcut
	}

	if f.file != "" {
		result := importer.ImportFile(f.file)
		for _, w := range result.Warnings {
			logrus.WithField("file", f.file).Warn(w)
		}
		if len(result.Errors) > 0 {
			return settings, nil, errors.Errorf("import %s: %s", f.file, strings.Join(result.Errors, "; "))
		}
		demands = append(demands, result.Demands...)
	}

	for _, spec := range f.demands {
		d, err := parseDemandSpec(spec)
		if err != nil {
			return settings, nil, err
		}
		demands = append(demands, d)
	}

	if len(demands) == 0 {
		return settings, nil, errors.New("no pieces given: use --demand, --file or --project")
	}
	return settings, demands, nil
}

// parseDemandSpec parses "QTYxLENGTH" or "LABEL=QTYxLENGTH".
// "*" and ":" are accepted in place of "x".
func parseDemandSpec(spec string) (model.DemandLine, error) {
	label := ""
	body := strings.TrimSpace(spec)
	if i := strings.IndexByte(body, '='); i >= 0 {
		label = strings.TrimSpace(body[:i])
		body = strings.TrimSpace(body[i+1:])
	}

	sep := strings.IndexAny(strings.ToLower(body), "x*:")
	if sep < 0 {
		return model.DemandLine{}, errors.Errorf("invalid demand %q: want QTYxLENGTH", spec)
	}
	qty, err := strconv.Atoi(strings.TrimSpace(body[:sep]))
	if err != nil {
		return model.DemandLine{}, errors.Wrapf(err, "invalid quantity in demand %q", spec)
	}
	width, err := strconv.ParseFloat(strings.TrimSpace(body[sep+1:]), 64)
	if err != nil {
		return model.DemandLine{}, errors.Wrapf(err, "invalid length in demand %q", spec)
	}
	if label == "" {
		label = fmt.Sprintf("%gmm", width)
	}
	return model.NewDemandLine(label, width, qty), nil
}
