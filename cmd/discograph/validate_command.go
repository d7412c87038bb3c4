package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"discograph/internal/logging"
	"discograph/internal/validation"
)

func newValidateCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check every album document for consistency violations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := ctx.loadTree(cmd.Context())
			if err != nil {
				return err
			}

			violations := validation.ValidateRepository(tree)
			logger := ctx.componentLogger("validate")
			logger.Info("repository validated",
				logging.Args(logging.Int("albums", tree.Len()), logging.Int("violations", len(violations)))...)

			if jsonOutput {
				if err := writeJSON(cmd, violations); err != nil {
					return err
				}
			} else {
				printViolations(cmd, violations, tree.Len())
			}

			if len(violations) > 0 {
				return fmt.Errorf("%d violation(s) found", len(violations))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit violations as JSON")
	return cmd
}

func printViolations(cmd *cobra.Command, violations []validation.Violation, albums int) {
	out := cmd.OutOrStdout()
	color := shouldColorize(out)
	if len(violations) == 0 {
		fmt.Fprintln(out, colorize(fmt.Sprintf("OK: %d album(s), no violations", albums), ansiGreen, color))
		return
	}

	rows := make([][]string, 0, len(violations))
	for _, v := range violations {
		position := ""
		if v.Disc > 0 {
			position = strconv.Itoa(v.Disc)
			if v.Track > 0 {
				position += "/" + strconv.Itoa(v.Track)
			}
		}
		rows = append(rows, []string{v.Catalog, position, string(v.Kind), v.Detail})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Catalog", "Disc/Track", "Kind", "Detail"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft},
	))
	fmt.Fprintln(out, colorize(
		fmt.Sprintf("%d album(s) checked, %d violation(s)", albums, len(violations)), ansiRed, color))
}
