package commands

import (
	"github.com/spf13/cobra"

	"github.com/siegeai/schemalike/server"
)

func newServeCommand(cfg Config) *cobra.Command {
	var (
		addr         string
		title        string
		maxBodyBytes int64
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve inference, validation and sample learning over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := server.New(server.Options{
				Title:        title,
				Version:      cfg.Version,
				MaxBodyBytes: maxBodyBytes,
			})
			return s.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", cfg.Addr, "address to listen on")
	cmd.Flags().StringVar(&title, "title", "schemalike", "title of the learned OpenAPI document")
	cmd.Flags().Int64Var(&maxBodyBytes, "max-body-bytes", 1<<20, "largest accepted request body")

	return cmd
}
