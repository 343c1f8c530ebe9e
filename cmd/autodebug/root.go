package main

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/justinpbarnett/autodebug/internal/config"
	"github.com/justinpbarnett/autodebug/internal/logging"
	"github.com/justinpbarnett/autodebug/internal/samples"
	"github.com/justinpbarnett/autodebug/internal/ui"
	"github.com/justinpbarnett/autodebug/internal/ui/styles"
	"github.com/justinpbarnett/autodebug/internal/watch"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	backendURL string
	logFile    string
}

func (g *globalFlags) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if g.configPath != "" {
		cfg, err = config.LoadFile(g.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if g.backendURL != "" {
		cfg.Backend.BaseURL = g.backendURL
	}
	if g.logFile != "" {
		cfg.Log.File = g.logFile
	}
	return cfg, nil
}

// setup loads config and starts file logging. The closer is never nil.
func (g *globalFlags) setup() (*config.Config, io.Closer, error) {
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	closer, err := logging.Setup(cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	return cfg, closer, nil
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	var file, caseName string

	root := &cobra.Command{
		Use:   "autodebug",
		Short: "Run and autonomously repair code against an autodebug backend",
		Long: `autodebug is a terminal client for an autonomous code-repair service.
Edit a program, run it remotely, or let the service iterate on patches and
watch each repair step replayed in the execution log.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(g, file, caseName)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&g.configPath, "config", "c", "", "config file (default: autodebug.yaml or autodebug.toml discovery)")
	pf.StringVar(&g.backendURL, "backend", "", "backend base URL, overrides config")
	pf.StringVar(&g.logFile, "log-file", "", "log file, overrides config")

	root.Flags().StringVarP(&file, "file", "f", "", "source file to edit; saved with ctrl+s and reloaded on change")
	root.Flags().StringVar(&caseName, "case", "", "built-in test case to load ("+joinNames()+")")

	root.AddCommand(
		newCasesCmd(),
		newHealthCmd(g),
		newRepairCmd(g),
		newRunCmd(g),
		newUpdateCmd(g),
		newVersionCmd(g),
	)
	return root
}

func runTUI(g *globalFlags, file, caseName string) error {
	cfg, closer, err := g.setup()
	if err != nil {
		return err
	}
	defer closer.Close()

	if err := styles.Apply(cfg.UI.Theme); err != nil {
		return err
	}

	var opts ui.Options
	if file != "" {
		f, err := watch.New(file)
		if err != nil {
			return err
		}
		content, err := f.Read()
		if err != nil {
			return err
		}
		if err := f.Start(); err != nil {
			return fmt.Errorf("watch %s: %w", file, err)
		}
		defer f.Stop()
		opts.File = f
		opts.Code = content
	}
	if caseName != "" {
		c, err := samples.Get(caseName)
		if err != nil {
			return err
		}
		opts.Code = c.Code
	}

	app := ui.NewApp(cfg, opts)
	defer app.Executor().Shutdown()

	logging.NewLogger("main").WithField("session", app.State().ID()).Info("starting tui")
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
