package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-portfolio/pkg/profile"
)

func newValidateCommand() *cobra.Command {
	var profilePath string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a profile document",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := readProfile(profilePath)
			if err != nil {
				var invalid *profile.ValidationError
				if errors.As(err, &invalid) {
					paths := make([]string, 0, len(invalid.Fields))
					for path := range invalid.Fields {
						paths = append(paths, path)
					}
					sort.Strings(paths)
					for _, path := range paths {
						for _, msg := range invalid.Fields[path] {
							fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", path, msg)
						}
					}
				}
				return err
			}

			out := cmd.OutOrStdout()
			if !p.HasName() {
				fmt.Fprintln(out, "Profile is valid but has no name; it cannot be exported yet.")
				return nil
			}
			fmt.Fprintf(out, "Profile for %s is valid.\n", p.PersonalInfo.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&profilePath, "profile", "", "profile document (YAML or JSON)")
	_ = cmd.MarkFlagRequired("profile")
	return cmd
}
