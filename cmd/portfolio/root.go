package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-portfolio/internal/config"
	"github.com/goliatone/go-portfolio/internal/logging"
	"github.com/goliatone/go-portfolio/pkg/profile"
)

type app struct {
	cfgFile  string
	logLevel string
}

func newRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "portfolio",
		Short: "Build a personal portfolio page from a profile document",
		Long: `portfolio turns a profile (name, contacts, skills, experience,
education and projects) into a self-contained HTML page using one of
the bundled templates. Profiles can be filled interactively, edited in
the browser with a live preview, or exported straight from YAML/JSON.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", config.DefaultPath, "config file path")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override the configured log level")

	root.AddCommand(
		newInitCommand(a),
		newServeCommand(a),
		newExportCommand(a),
		newFillCommand(a),
		newTemplatesCommand(),
		newValidateCommand(),
	)
	return root
}

// load reads the configuration and builds the logger for a command run.
func (a *app) load(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return nil, nil, err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func readProfile(path string) (profile.Profile, error) {
	file, err := os.Open(path)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("opening profile: %w", err)
	}
	defer file.Close()
	return profile.Decode(file, profile.FormatFromPath(path))
}
