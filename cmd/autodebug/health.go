package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/justinpbarnett/autodebug/internal/backend"
)

// healthTimeout bounds the probe when the config sets no request timeout.
const healthTimeout = 5 * time.Second

func newHealthCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Probe the backend health endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, closer, err := g.setup()
			if err != nil {
				return err
			}
			defer closer.Close()

			timeout := cfg.RequestTimeout()
			if timeout <= 0 {
				timeout = healthTimeout
			}
			client := backend.NewClientFromConfig(cfg)
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			h, err := client.Health(ctx)
			if err != nil {
				return fmt.Errorf("backend %s unreachable: %w", client.BaseURL(), err)
			}
			if !h.OK() {
				return fmt.Errorf("backend %s reports status %q", client.BaseURL(), h.Status)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "backend %s ok\n", client.BaseURL())
			return nil
		},
	}
}
