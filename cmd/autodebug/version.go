package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/justinpbarnett/autodebug/internal/ui/panels"
	"github.com/justinpbarnett/autodebug/internal/update"
)

const (
	checkTimeout = 10 * time.Second
	applyTimeout = 2 * time.Minute
)

func newVersionCmd(g *globalFlags) *cobra.Command {
	var skipCheck bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version and check for updates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "autodebug version %s\n", panels.Version)

			if panels.Version == "dev" {
				fmt.Fprintln(out, "Development build, update check skipped.")
				return nil
			}
			if skipCheck {
				return nil
			}
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), checkTimeout)
			defer cancel()
			rel, err := update.NewChecker(panels.Version, cfg.Update.Repo).Check(ctx)
			switch {
			case err != nil:
				fmt.Fprintf(out, "Update check failed: %v\n", err)
			case rel != nil:
				fmt.Fprintf(out, "Update available: v%s. Run \"autodebug update\" to install.\n", rel.Version)
			default:
				fmt.Fprintln(out, "You are up to date.")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&skipCheck, "short", false, "print the version only")
	return cmd
}

func newUpdateCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Replace this binary with the latest release",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, closer, err := g.setup()
			if err != nil {
				return err
			}
			defer closer.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), applyTimeout)
			defer cancel()

			if err := checkDev(); err != nil {
				return err
			}
			checker := update.NewChecker(panels.Version, cfg.Update.Repo)
			rel, err := checker.Check(ctx)
			if err != nil {
				return err
			}
			if rel == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Already at the latest version (%s).\n", panels.Version)
				return nil
			}
			if _, err := checker.Apply(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated to v%s.\n", rel.Version)
			return nil
		},
	}
}

func checkDev() error {
	if panels.Version == "dev" || panels.Version == "" {
		return update.ErrDevBuild
	}
	return nil
}
