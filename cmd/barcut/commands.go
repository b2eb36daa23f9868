package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/piwi3910/BarCut/internal/engine"
	"github.com/piwi3910/BarCut/internal/importer"
	"github.com/piwi3910/BarCut/internal/model"
	"github.com/piwi3910/BarCut/internal/project"
)

// signalContext is cancelled on Ctrl-C so a running solve returns its incumbent.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt)
}

func newSolveCmd(root *rootOptions) *cobra.Command {
	var (
		f       runFlags
		asJSON  bool
		savePth string
	)
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Compute the cutting plan that uses the fewest bars",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, demands, err := f.resolve(cmd, root)
			if err != nil {
				return err
			}

			ctx, cancel := signalContext(cmd)
			defer cancel()
			outcome, err := engine.New(settings).Solve(ctx, demands)
			if err != nil {
				return errors.WithMessage(err, "solve")
			}

			offcuts := model.DetectOffcuts(outcome, settings.MinOffcutLength, settings)

			if savePth != "" {
				p := model.Project{Name: "BarCut project", Demands: demands, Settings: settings}
				if err := project.SaveProject(savePth, p); err != nil {
					return errors.WithMessage(err, "save project")
				}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, solveReport{
					SolveOutcome:  outcome,
					StatusName:    outcome.StatusName(),
					TotalLeftover: outcome.TotalLeftover(),
					Efficiency:    outcome.Efficiency(),
					Offcuts:       offcuts,
				})
			}
			writeOutcome(out, outcome, offcuts)
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the outcome as JSON")
	cmd.Flags().StringVar(&savePth, "save", "", "save pieces and settings to a project file")
	return cmd
}

func newCompareCmd(root *rootOptions) *cobra.Command {
	var (
		f       runFlags
		presets bool
		asJSON  bool
	)
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare exact and minimum-waste cutting, optionally across bar presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, demands, err := f.resolve(cmd, root)
			if err != nil {
				return err
			}

			ctx, cancel := signalContext(cmd)
			defer cancel()

			var results []engine.ComparisonResult
			if presets {
				inv, err := project.LoadInventory(root.inventoryPath)
				if err != nil {
					return errors.WithMessage(err, "load inventory")
				}
				results, err = engine.CompareScenarios(ctx, engine.BuildDefaultScenarios(settings, inv), demands)
				if err != nil {
					return errors.WithMessage(err, "compare")
				}
			} else {
				results, err = engine.CompareModes(ctx, demands, settings)
				if err != nil {
					return errors.WithMessage(err, "compare")
				}
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), results)
			}
			writeComparison(cmd.OutOrStdout(), results)
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().BoolVar(&presets, "presets", false, "also compare every bar length from the inventory")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the comparison as JSON")
	return cmd
}

func newEstimateCmd(root *rootOptions) *cobra.Command {
	var (
		f      runFlags
		waste  float64
		price  float64
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate how many bars to buy without running the optimizer",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, demands, err := f.resolve(cmd, root)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("waste") {
				settings.WastePercent = waste
			}
			if cmd.Flags().Changed("price") {
				settings.PricePerBar = price
			}

			est := model.CalculatePurchaseEstimate(demands, settings.ParentWidth, settings.WastePercent, settings.PricePerBar)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), est)
			}
			writeEstimate(cmd.OutOrStdout(), est)
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().Float64Var(&waste, "waste", 0, "extra bars to buy, percent")
	cmd.Flags().Float64Var(&price, "price", 0, "price of one bar")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the estimate as JSON")
	return cmd
}

func newImportCmd(root *rootOptions) *cobra.Command {
	var savePth string
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Read a piece list from CSV, XLSX or DXF and show or save it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := importer.ImportFile(args[0])
			out := cmd.OutOrStdout()
			for _, w := range result.Warnings {
				cmd.PrintErrln("warning:", w)
			}
			for _, e := range result.Errors {
				cmd.PrintErrln("error:", e)
			}
			if len(result.Demands) == 0 {
				return errors.Errorf("no pieces imported from %s", args[0])
			}
			writeDemands(out, result.Demands)

			if savePth != "" {
				p := model.NewProject()
				root.config.ApplyToSettings(&p.Settings)
				p.Name = args[0]
				p.Demands = result.Demands
				if err := project.SaveProject(savePth, p); err != nil {
					return errors.WithMessage(err, "save project")
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&savePth, "save", "", "save the pieces to a project file")
	return cmd
}

func newPresetsCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Manage stock bar presets",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List bar presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := project.LoadInventory(root.inventoryPath)
			if err != nil {
				return errors.WithMessage(err, "load inventory")
			}
			return writeJSON(cmd.OutOrStdout(), inv.Bars)
		},
	}

	var material string
	var price float64
	add := &cobra.Command{
		Use:   "add NAME LENGTH",
		Short: "Add a bar preset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			length, err := strconv.ParseFloat(args[1], 64)
			if err != nil || length <= 0 {
				return errors.Errorf("invalid bar length %q", args[1])
			}
			inv, err := project.LoadInventory(root.inventoryPath)
			if err != nil {
				return errors.WithMessage(err, "load inventory")
			}
			bar := model.NewBarPreset(args[0], length, material)
			bar.PricePerBar = price
			bar = inv.AddBar(bar)
			if err := project.SaveInventory(root.inventoryPath, inv); err != nil {
				return errors.WithMessage(err, "save inventory")
			}
			fmt.Fprintln(cmd.OutOrStdout(), bar.ID)
			return nil
		},
	}
	add.Flags().StringVar(&material, "material", "", "material name")
	add.Flags().Float64Var(&price, "price", 0, "price of one bar")

	remove := &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a bar preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := project.LoadInventory(root.inventoryPath)
			if err != nil {
				return errors.WithMessage(err, "load inventory")
			}
			if !inv.RemoveBar(args[0]) {
				return errors.Errorf("no bar preset with ID %q", args[0])
			}
			return errors.WithMessage(project.SaveInventory(root.inventoryPath, inv), "save inventory")
		},
	}

	merge := &cobra.Command{
		Use:   "import FILE",
		Short: "Merge bar presets from another inventory file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := project.LoadInventory(root.inventoryPath)
			if err != nil {
				return errors.WithMessage(err, "load inventory")
			}
			inv, err = project.ImportInventory(args[0], inv)
			if err != nil {
				return errors.WithMessage(err, "import inventory")
			}
			return errors.WithMessage(project.SaveInventory(root.inventoryPath, inv), "save inventory")
		},
	}

	cmd.AddCommand(list, add, remove, merge)
	return cmd
}

func newConfigCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show, reset, export or import the application configuration",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd.OutOrStdout(), root.config)
		},
	}

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Write the default configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.WithMessage(project.SaveAppConfig(root.configPath, model.DefaultAppConfig()), "save config")
		},
	}

	export := &cobra.Command{
		Use:   "export FILE",
		Short: "Export configuration and bar presets to one backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := project.LoadInventory(root.inventoryPath)
			if err != nil {
				return errors.WithMessage(err, "load inventory")
			}
			return errors.WithMessage(project.ExportAllData(args[0], root.config, inv), "export")
		},
	}

	restore := &cobra.Command{
		Use:   "import FILE",
		Short: "Restore configuration and bar presets from a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backup, err := project.ImportAllData(args[0])
			if err != nil {
				return errors.WithMessage(err, "import")
			}
			if err := project.SaveAppConfig(root.configPath, backup.Config); err != nil {
				return errors.WithMessage(err, "save config")
			}
			return errors.WithMessage(project.SaveInventory(root.inventoryPath, backup.Inventory), "save inventory")
		},
	}

	cmd.AddCommand(show, reset, export, restore)
	return cmd
}
