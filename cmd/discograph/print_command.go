package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"discograph/internal/catalog"
	"discograph/internal/export"
)

func newPrintCommand(ctx *commandContext) *cobra.Command {
	var formatFlag string
	var clean bool
	var output string

	cmd := &cobra.Command{
		Use:   "print <catalog>[/disc]",
		Short: "Render one album in a chosen format",
		Long: `Render one album in a chosen format.

Formats: title, artist, date, cue, toml, json. The cue format renders a
single disc; address it with the "CATALOG/disc" suffix (0 and 1 both mean
the first disc).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := export.ParseFormat(formatFlag)
			if err != nil {
				return err
			}
			ref, err := catalog.ParseReference(args[0])
			if err != nil {
				return err
			}

			tree, err := ctx.loadTree(cmd.Context())
			if err != nil {
				return err
			}
			entry, err := tree.AlbumByRef(ref)
			if err != nil {
				return err
			}

			rendered, err := export.Render(entry.Album, format, export.Options{
				Disc:  ref.Disc,
				Clean: clean,
			})
			if err != nil {
				return err
			}

			if output != "" && output != "-" {
				if err := os.WriteFile(output, rendered, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", output, err)
				}
				return nil
			}
			_, err = cmd.OutOrStdout().Write(rendered)
			return err
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "type", "t", "title", "Output format")
	cmd.Flags().BoolVar(&clean, "clean", false, "Suppress the generated-by comment")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "Write to a file instead of stdout")
	return cmd
}
