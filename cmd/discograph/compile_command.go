package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"discograph/internal/database"
	"discograph/internal/logging"
)

func newCompileCommand(ctx *commandContext) *cobra.Command {
	var strict bool
	var output string

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile the repository into a SQLite snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}
			target := cfg.Paths.DatabasePath
			if output != "" {
				target = output
			}

			tree, err := ctx.loadTree(cmd.Context())
			if err != nil {
				return err
			}

			report, err := database.Compile(cmd.Context(), tree, target, database.Options{
				Strict: strict || cfg.Compile.Strict,
			})
			logger := ctx.componentLogger("compile")
			for _, excluded := range report.Excluded {
				logger.Warn("album excluded from snapshot",
					logging.Args(logging.String(logging.FieldCatalog, excluded.Catalog), logging.Error(excluded.Err))...)
			}
			if err != nil {
				return err
			}

			logger.Info("snapshot written",
				logging.Args(
					logging.String(logging.FieldPath, target),
					logging.Int("albums", report.Albums),
					logging.Int("discs", report.Discs),
					logging.Int("tracks", report.Tracks),
					logging.Int("skipped", report.Skipped),
				)...)
			fmt.Fprintf(cmd.OutOrStdout(), "Compiled %d album(s), %d disc(s), %d track(s) to %s\n",
				report.Albums, report.Discs, report.Tracks, target)
			if report.Skipped > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Skipped %d album(s); run 'discograph validate' for details\n", report.Skipped)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Fail if any album would be excluded")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Snapshot path (overrides paths.database_path)")
	return cmd
}
