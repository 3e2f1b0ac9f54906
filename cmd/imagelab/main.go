package main

import (
	"fmt"
	"os"

	"imagelab/internal/app"
	"imagelab/internal/config"
	"imagelab/internal/logger"

	"github.com/spf13/cobra"
)

type globalOptions struct {
	configPath string
	logLevel   string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "imagelab",
		Short:         "Interactive image processing and statistics",
		Version:       app.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(opts)
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "imagelab.toml", "path to the TOML configuration file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		&cobra.Command{
			Use:   "gui",
			Short: "Start the desktop application",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runGUI(opts)
			},
		},
		newProcessCommand(opts),
		newSampleCommand(opts),
	)

	return root
}

// setup loads the configuration and builds the logger; --log-level wins over the file and
// the environment.
func setup(opts *globalOptions) (config.Config, logger.Logger, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, nil, err
	}

	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	log, err := cfg.Logger()
	if err != nil {
		return config.Config{}, nil, err
	}

	return cfg, log, nil
}

func runGUI(opts *globalOptions) error {
	cfg, log, err := setup(opts)
	if err != nil {
		return err
	}

	return app.NewApplication(cfg, log).Run()
}
