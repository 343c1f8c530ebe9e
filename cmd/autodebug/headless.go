package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/justinpbarnett/autodebug/internal/backend"
	"github.com/justinpbarnett/autodebug/internal/engine"
	"github.com/justinpbarnett/autodebug/internal/samples"
	"github.com/justinpbarnett/autodebug/internal/session"
	"github.com/justinpbarnett/autodebug/internal/ui/panels"
)

type headlessFlags struct {
	caseName string
	out      string
	interval time.Duration
}

func newRunCmd(g *globalFlags) *cobra.Command {
	hf := &headlessFlags{}
	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Execute code once on the backend and print the log",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHeadless(cmd, g, hf, args, false)
		},
	}
	cmd.Flags().StringVar(&hf.caseName, "case", "", "built-in test case to run instead of a file")
	return cmd
}

func newRepairCmd(g *globalFlags) *cobra.Command {
	hf := &headlessFlags{interval: -1}
	cmd := &cobra.Command{
		Use:   "repair [file]",
		Short: "Run the repair loop and replay each step to stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHeadless(cmd, g, hf, args, true)
		},
	}
	cmd.Flags().StringVar(&hf.caseName, "case", "", "built-in test case to repair instead of a file")
	cmd.Flags().StringVarP(&hf.out, "out", "o", "", "write the final buffer to this file")
	cmd.Flags().DurationVar(&hf.interval, "interval", -1, "delay between replayed steps (default from config)")
	return cmd
}

// loadCode picks the buffer from a file argument, a --case, or the default case.
func loadCode(args []string, caseName string) (string, error) {
	switch {
	case len(args) == 1 && caseName != "":
		return "", fmt.Errorf("pass a file or --case, not both")
	case len(args) == 1:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(data), nil
	case caseName != "":
		c, err := samples.Get(caseName)
		if err != nil {
			return "", err
		}
		return c.Code, nil
	}
	return samples.Default().Code, nil
}

func runHeadless(cmd *cobra.Command, g *globalFlags, hf *headlessFlags, args []string, repair bool) error {
	code, err := loadCode(args, hf.caseName)
	if err != nil {
		return err
	}
	cfg, closer, err := g.setup()
	if err != nil {
		return err
	}
	defer closer.Close()

	interval := cfg.ReplayInterval()
	if hf.interval >= 0 {
		interval = hf.interval
	}

	log := session.NewLog(session.WithTimestampFormat(cfg.UI.TimestampFormat))
	log.Subscribe(printEntry(cmd.OutOrStdout()))
	state := session.NewState(code)
	exec := engine.NewExecutor(backend.NewClientFromConfig(cfg), log, state, interval)
	defer exec.Shutdown()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if !repair {
		return outcomeErr("run", exec.Run(ctx, code))
	}

	replay, outcome := exec.Repair(ctx, code)
	if err := outcomeErr("repair", outcome); err != nil {
		return err
	}
	select {
	case <-replay.Done():
	case <-ctx.Done():
		exec.Shutdown()
		replay.Wait()
	}
	return writeBuffer(hf.out, state)
}

func printEntry(w io.Writer) func(session.Entry) {
	return func(e session.Entry) {
		for _, line := range panels.RenderEntry(e, 0) {
			fmt.Fprintln(w, line)
		}
	}
}

func writeBuffer(path string, state *session.State) error {
	if path == "" {
		return nil
	}
	if err := os.WriteFile(path, []byte(state.Code()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// outcomeErr maps a non-success outcome to an error so the process exits
// non-zero. The log already carries the user-facing detail.
func outcomeErr(action string, o engine.Outcome) error {
	if o == engine.OutcomeSuccess {
		return nil
	}
	return fmt.Errorf("%s: %s", action, o)
}
