package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newInitCommand(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the current settings",
		Long: `init writes the effective configuration (defaults plus any PORTFOLIO_*
environment overrides) to the --config path so it can be edited by hand.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(a.cfgFile); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", a.cfgFile)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}

			cfg, _, err := a.load(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Save(a.cfgFile); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config written to %s\n", a.cfgFile)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}
