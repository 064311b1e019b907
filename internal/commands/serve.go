package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spendwise-dev/spendwise/internal/config"
	"github.com/spendwise-dev/spendwise/internal/server"
)

func newServeCommand(dataDir *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(*dataDir)
			config.ApplyEnv(cfg)
			if addr != "" {
				cfg.Server.Addr = addr
			}

			srv := server.New(*dataDir, cfg)
			fmt.Fprintf(cmd.OutOrStdout(), "Serving spendwise on %s (data: %s)\n", cfg.Server.Addr, *dataDir)
			return srv.ListenAndServe()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config and SPENDWISE_ADDR)")

	return cmd
}
