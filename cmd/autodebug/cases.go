package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/justinpbarnett/autodebug/internal/samples"
)

func joinNames() string {
	return strings.Join(samples.Names(), ", ")
}

func newCasesCmd() *cobra.Command {
	var show string
	cmd := &cobra.Command{
		Use:   "cases",
		Short: "List the built-in test cases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if show != "" {
				c, err := samples.Get(show)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, c.Code)
				return nil
			}
			for _, c := range samples.All() {
				fmt.Fprintf(out, "%-10s %-12s %s\n", c.Name, c.Title, c.Description)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&show, "show", "", "print the source of one case")
	return cmd
}
