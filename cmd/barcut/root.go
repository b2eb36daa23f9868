package main

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/piwi3910/BarCut/internal/model"
	"github.com/piwi3910/BarCut/internal/project"
)

type rootOptions struct {
	configPath    string
	inventoryPath string
	logLevel      string
	logJSON       bool

	config model.AppConfig
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "barcut",
		Short:         "Optimize 1D cut lists for bars, tubes and profiles",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", project.DefaultConfigPath(), "path of the application config file")
	flags.StringVar(&opts.inventoryPath, "inventory", project.DefaultInventoryPath(), "path of the bar preset inventory")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	flags.BoolVar(&opts.logJSON, "log-json", false, "emit logs as JSON")

	cmd.AddCommand(
		newSolveCmd(opts),
		newCompareCmd(opts),
		newEstimateCmd(opts),
		newImportCmd(opts),
		newPresetsCmd(opts),
		newConfigCmd(opts),
	)
	return cmd
}

// setup loads the config file and configures the standard logger.
func (o *rootOptions) setup(cmd *cobra.Command) error {
	cfg, err := project.LoadAppConfig(o.configPath)
	if err != nil {
		return errors.WithMessage(err, "load config "+o.configPath)
	}
	o.config = cfg

	logrus.SetOutput(cmd.ErrOrStderr())
	if o.logJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}

	levelName := o.logLevel
	if levelName == "" {
		levelName = cfg.LogLevel
	}
	if levelName == "" {
		levelName = "info"
	}
	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		return errors.WithMessage(err, "invalid --log-level")
	}
	logrus.SetLevel(level)
	return nil
}

// rememberProject records path in the recent list of the config file.
func (o *rootOptions) rememberProject(path string) {
	o.config.AddRecentProject(path, project.MaxRecentProjects)
	if err := project.SaveAppConfig(o.configPath, o.config); err != nil {
		logrus.WithError(err).Warn("could not update recent projects")
	}
}
