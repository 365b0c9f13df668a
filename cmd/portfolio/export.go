package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-portfolio/pkg/avatar"
	"github.com/goliatone/go-portfolio/pkg/editor"
	"github.com/goliatone/go-portfolio/pkg/export"
)

func newExportCommand(a *app) *cobra.Command {
	var (
		profilePath string
		templateID  string
		outDir      string
		imagePath   string
		variant     string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the standalone HTML document for a profile",
		Example: `  portfolio export --profile jane.yaml --template tech --out ./site
  portfolio export --profile jane.json --out - > jane.html
  portfolio export --profile jane.yaml --image me.png --out ./site`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := a.load(cmd)
			if err != nil {
				return err
			}
			if templateID == "" {
				templateID = cfg.DefaultTemplate
			}
			if outDir == "" {
				outDir = cfg.OutputDir
			}

			p, err := readProfile(profilePath)
			if err != nil {
				return err
			}
			if imagePath != "" {
				ed := editor.New(p)
				images := avatar.ReadFile(cmd.Context(), imagePath, avatar.WithMaxBytes(cfg.MaxImageBytes))
				if err := ed.ApplyImage(cmd.Context(), images); err != nil {
					return fmt.Errorf("profile image %s: %w", imagePath, err)
				}
				p = ed.Profile()
			}

			exporter, err := export.New()
			if err != nil {
				return err
			}
			artifact, err := exporter.ExportVariant(cmd.Context(), p, templateID, variant)
			if err != nil {
				return err
			}

			var saver export.Saver = export.DirSaver{Dir: outDir}
			if outDir == "-" {
				saver = export.WriterSaver{W: cmd.OutOrStdout()}
			}
			location, err := saver.Save(cmd.Context(), artifact)
			if err != nil {
				return err
			}
			logger.Info("portfolio exported",
				slog.String("template", templateID),
				slog.String("variant", variant),
				slog.String("location", location),
				slog.Int("bytes", len(artifact.Data)),
			)
			if outDir != "-" {
				fmt.Fprintf(cmd.OutOrStdout(), "Portfolio written to %s\n", location)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&profilePath, "profile", "", "profile document (YAML or JSON)")
	cmd.Flags().StringVar(&templateID, "template", "", "template id (defaults to the configured template)")
	cmd.Flags().StringVar(&variant, "variant", "", `theme variant such as "dark"`)
	cmd.Flags().StringVar(&outDir, "out", "", `output directory, or "-" for stdout`)
	cmd.Flags().StringVar(&imagePath, "image", "", "embed this image file as the profile picture")
	_ = cmd.MarkFlagRequired("profile")
	return cmd
}
