package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"discograph/internal/logging"
	"discograph/internal/migration"
)

func newMigrateCommand(ctx *commandContext) *cobra.Command {
	var target int
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending format migrations to every album document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := ctx.loadTree(cmd.Context())
			if err != nil {
				return err
			}

			opts := migration.Options{Target: target, DryRun: dryRun}
			if dryRun {
				opts.Diff = cmd.OutOrStdout()
			}
			report, err := migration.Run(cmd.Context(), tree, opts)
			if err != nil {
				return err
			}

			logger := ctx.componentLogger("migrate")
			for _, failure := range report.Failures {
				logger.Warn("album skipped",
					logging.Args(logging.String(logging.FieldCatalog, failure.Catalog), logging.Error(failure.Err))...)
			}
			logger.Info("migration finished",
				logging.Args(
					logging.Int("from", report.From),
					logging.Int("to", report.To),
					logging.Int("checked", report.Checked),
					logging.Int("migrated", report.Migrated),
					logging.Int("failed", report.Failed),
				)...)

			verb := "Migrated"
			if dryRun {
				verb = "Would migrate"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d of %d album(s) (format %d -> %d), %d failed\n",
				verb, report.Migrated, report.Checked, report.From, report.To, report.Failed)
			if report.Failed > 0 {
				return fmt.Errorf("%d album(s) could not be migrated", report.Failed)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&target, "target", 0, "Target format version (0 means latest)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show diffs without rewriting documents")
	return cmd
}
