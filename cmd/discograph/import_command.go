package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"discograph/internal/importer"
	"discograph/internal/logging"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var artist string
	var date string

	cmd := &cobra.Command{
		Use:   "import <source-dir>",
		Short: "Create an album document from an audio source directory",
		Long: `Create an album document from an audio source directory.

The directory name must follow "[CATALOG] Title". Audio files directly in
the directory form a single disc; otherwise each subdirectory holding audio
files becomes one disc, in name order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sourceDir, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}

			var releaseDate toml.LocalDate
			if date != "" {
				if err := releaseDate.UnmarshalText([]byte(date)); err != nil {
					return fmt.Errorf("parse --date %q: %w", date, err)
				}
			}

			candidate, err := importer.ScanDirectory(sourceDir, importer.ScanOptions{
				Artist: artist,
				Date:   releaseDate,
			})
			if err != nil {
				return err
			}

			tree, err := ctx.loadTree(cmd.Context())
			if err != nil {
				return err
			}
			if err := importer.Import(tree, candidate, importer.Options{SourceDir: sourceDir}); err != nil {
				var rejection *importer.RejectionError
				if errors.As(err, &rejection) {
					printRejection(cmd, rejection)
				}
				return err
			}

			ctx.componentLogger("import").Info("album imported",
				logging.Args(
					logging.String(logging.FieldCatalog, candidate.Catalog),
					logging.String(logging.FieldPath, tree.DocumentPath(candidate.Catalog)),
				)...)
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s (%d disc(s)) at %s\n",
				candidate.Catalog, len(candidate.Discs), tree.DocumentPath(candidate.Catalog))
			return nil
		},
	}

	cmd.Flags().StringVarP(&artist, "artist", "a", "", "Album artist (required)")
	cmd.Flags().StringVarP(&date, "date", "d", "", "Release date (YYYY-MM-DD)")
	return cmd
}

func printRejection(cmd *cobra.Command, rejection *importer.RejectionError) {
	rows := make([][]string, 0, len(rejection.Violations))
	for _, v := range rejection.Violations {
		position := ""
		if v.Disc > 0 {
			position = strconv.Itoa(v.Disc)
			if v.Track > 0 {
				position += "/" + strconv.Itoa(v.Track)
			}
		}
		rows = append(rows, []string{position, string(v.Kind), v.Detail})
	}
	fmt.Fprintln(cmd.ErrOrStderr(), renderTable(
		[]string{"Disc/Track", "Kind", "Detail"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft},
	))
}
