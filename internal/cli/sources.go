package cli

import (
	"fmt"
	"log/slog"

	"github.com/imroc/req/v3"
	"github.com/spf13/cobra"

	"subgather/internal/creds"
	"subgather/internal/sources"
)

func newSourcesCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List the available sources, partitioned into free and keyed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Listing only needs names; no request is made and no credential
			// is resolved.
			registry := sources.NewDefaultRegistry(req.NewClient(), creds.Static{}, logger)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "free:")
			for _, s := range registry.Free() {
				fmt.Fprintf(out, "  %s\n", s.Name())
			}
			fmt.Fprintln(out, "keyed:")
			for _, s := range registry.Keyed() {
				fmt.Fprintf(out, "  %s\n", s.Name())
			}
			return nil
		},
	}
}
