package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"discograph/internal/album"
	"discograph/internal/validation"
)

func newEditCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <catalog>",
		Short: "Open an album document in $EDITOR and re-validate it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := ctx.loadTree(cmd.Context())
			if err != nil {
				return err
			}
			entry, ok := tree.Album(args[0])
			if !ok {
				return fmt.Errorf("album %s not found", args[0])
			}
			path := tree.AbsPath(entry)

			editor := os.Getenv("EDITOR")
			if editor == "" {
				editor = "vi"
			}
			editCmd := exec.CommandContext(cmd.Context(), editor, path)
			editCmd.Stdin = cmd.InOrStdin()
			editCmd.Stdout = cmd.OutOrStdout()
			editCmd.Stderr = cmd.ErrOrStderr()
			if err := editCmd.Run(); err != nil {
				return fmt.Errorf("%s %s: %w", editor, path, err)
			}

			raw, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			edited, err := album.Decode(raw)
			if err != nil {
				return fmt.Errorf("document no longer parses: %w", err)
			}
			if violations := validation.ValidateAlbum(edited, tree); len(violations) > 0 {
				printViolations(cmd, violations, 1)
				return fmt.Errorf("%d violation(s) found", len(violations))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "OK: %s\n", path)
			return nil
		},
	}
}
