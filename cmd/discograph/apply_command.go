package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"discograph/internal/logging"
	"discograph/internal/tagging"
)

func newApplyCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "apply <catalog> <audio-dir>",
		Short: "Write repository metadata into an album's audio files",
		Long: `Write repository metadata into an album's audio files.

The directory layout must match the album: a single flat directory for a
one-disc album, or one subdirectory per disc in name order. Tags are
written with metaflac, one file at a time, after the whole plan checks out.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := ctx.loadTree(cmd.Context())
			if err != nil {
				return err
			}
			entry, ok := tree.Album(args[0])
			if !ok {
				return fmt.Errorf("album %s not found", args[0])
			}
			if entry.Err != nil {
				return fmt.Errorf("album %s does not parse: %w", args[0], entry.Err)
			}
			dir, err := filepath.Abs(args[1])
			if err != nil {
				return err
			}

			report, err := tagging.Apply(cmd.Context(), entry.Album, dir, tagging.NewMetaflacWriter(), tagging.Options{
				DryRun: dryRun,
			})
			if err != nil {
				return err
			}

			for _, action := range report.Planned {
				fmt.Fprintf(cmd.OutOrStdout(), "%2d/%d  %s\n",
					action.Tags.TrackNumber, action.Tags.TrackTotal, action.Path)
			}
			ctx.componentLogger("apply").Info("tags applied",
				logging.Args(
					logging.String(logging.FieldCatalog, args[0]),
					logging.Int("planned", len(report.Planned)),
					logging.Int("written", report.Written),
				)...)
			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "Dry run: %d file(s) would be tagged\n", len(report.Planned))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Tagged %d file(s)\n", report.Written)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Plan the tag writes without touching any file")
	return cmd
}
