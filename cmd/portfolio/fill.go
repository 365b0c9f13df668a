package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-portfolio/pkg/editor"
	"github.com/goliatone/go-portfolio/pkg/profile"
	"github.com/goliatone/go-portfolio/pkg/tui"
)

func newFillCommand(a *app) *cobra.Command {
	var (
		outPath  string
		fromPath string
	)
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill in a profile interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := a.load(cmd); err != nil {
				return err
			}

			initial := profile.New()
			if fromPath != "" {
				p, err := readProfile(fromPath)
				if err != nil {
					return err
				}
				initial = p
			}

			ed := editor.New(initial)
			filler := tui.New(tui.WithPromptDriver(tui.NewSurveyDriver(cmd.OutOrStdout())))
			result, err := filler.Fill(cmd.Context(), ed)
			if err != nil {
				return err
			}

			file, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("creating %s: %w", outPath, err)
			}
			defer file.Close()
			if err := profile.Encode(file, ed.Profile(), profile.FormatFromPath(outPath)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile saved to %s\nExport it with: portfolio export --profile %s --template %s\n",
				outPath, outPath, result.Template)
			return nil
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "profile.yaml", "where to save the profile (.yaml or .json)")
	cmd.Flags().StringVar(&fromPath, "from", "", "existing profile to edit")
	return cmd
}
