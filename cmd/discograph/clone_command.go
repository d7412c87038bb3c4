package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"discograph/internal/logging"
	"discograph/internal/repo"
	"discograph/internal/vcs"
)

func newCloneCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clone <remote-url> [path]",
		Short: "Clone a metadata repository from a remote",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			target := cfg.Paths.RepoRoot
			if len(args) == 2 {
				target = args[1]
			}
			if entries, err := os.ReadDir(target); err == nil && len(entries) > 0 {
				return fmt.Errorf("target %s already exists and is not empty", target)
			}

			logger := ctx.componentLogger("clone")
			logger.Info("cloning repository",
				logging.Args(logging.String("remote", args[0]), logging.String(logging.FieldPath, target))...)

			cloner := vcs.NewGitCLI(vcs.WithBinary(cfg.VCS.Binary))
			if err := cloner.Clone(cmd.Context(), args[0], target); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cloned %s into %s\n", args[0], target)
			return nil
		},
	}
}

func newPullCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "pull",
		Short: "Fast-forward the repository from its remote",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if _, err := repo.LoadManifest(cfg.Paths.RepoRoot); err != nil {
				return err
			}

			ctx.componentLogger("pull").Info("updating repository",
				logging.Args(logging.String(logging.FieldPath, cfg.Paths.RepoRoot))...)
			cloner := vcs.NewGitCLI(vcs.WithBinary(cfg.VCS.Binary))
			if err := cloner.Pull(cmd.Context(), cfg.Paths.RepoRoot); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", cfg.Paths.RepoRoot)
			return nil
		},
	}
}

func newInitCommand(ctx *commandContext) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize an empty metadata repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := repo.Init(cfg.Paths.RepoRoot, name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized repository %q at %s\n", name, cfg.Paths.RepoRoot)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "metadata", "Repository name recorded in the manifest")
	return cmd
}
