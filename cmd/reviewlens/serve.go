package main

import (
	"github.com/Veraticus/reviewlens/internal/server"
	"github.com/spf13/cobra"
)

func serveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard JSON API",
		Long: `Start the HTTP API: upload review tables, read their statistics and charts,
classify them and manage categories. Stops gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				a.cfg.Server.Addr = addr
			}

			store, backend, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer backend.Close()

			return server.New(store, a.cfg.Server).ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().String("addr", "", "listen address (overrides server.addr)")

	return cmd
}
