package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"discograph/internal/importer"
	"discograph/internal/logging"
	"discograph/internal/services/metadata"
)

func newFetchCommand(ctx *commandContext) *cobra.Command {
	var printOnly bool

	cmd := &cobra.Command{
		Use:   "fetch <catalog>",
		Short: "Fetch an album document from the remote metadata service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			client, err := metadata.NewClient(cfg.Remote.BaseURL,
				metadata.WithToken(cfg.Remote.Token),
				metadata.WithHTTPClient(&http.Client{
					Timeout: time.Duration(cfg.Remote.TimeoutSeconds) * time.Second,
				}))
			if err != nil {
				return err
			}

			if printOnly {
				raw, err := client.FetchDocument(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(raw)
				return err
			}

			candidate, err := client.FetchAlbum(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			tree, err := ctx.loadTree(cmd.Context())
			if err != nil {
				return err
			}
			if err := importer.Import(tree, candidate, importer.Options{}); err != nil {
				var rejection *importer.RejectionError
				if errors.As(err, &rejection) {
					printRejection(cmd, rejection)
				}
				return err
			}

			ctx.componentLogger("fetch").Info("album fetched",
				logging.Args(
					logging.String(logging.FieldCatalog, candidate.Catalog),
					logging.String("remote", cfg.Remote.BaseURL),
				)...)
			fmt.Fprintf(cmd.OutOrStdout(), "Fetched %s into %s\n",
				candidate.Catalog, tree.DocumentPath(candidate.Catalog))
			return nil
		},
	}

	cmd.Flags().BoolVar(&printOnly, "print", false, "Print the raw document instead of importing it")
	return cmd
}
