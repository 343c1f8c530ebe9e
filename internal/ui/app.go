package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/justinpbarnett/autodebug/internal/backend"
	"github.com/justinpbarnett/autodebug/internal/config"
	"github.com/justinpbarnett/autodebug/internal/engine"
	"github.com/justinpbarnett/autodebug/internal/logging"
	"github.com/justinpbarnett/autodebug/internal/samples"
	"github.com/justinpbarnett/autodebug/internal/session"
	"github.com/justinpbarnett/autodebug/internal/ui/clipboard"
	"github.com/justinpbarnett/autodebug/internal/ui/layout"
	"github.com/justinpbarnett/autodebug/internal/ui/panels"
	"github.com/justinpbarnett/autodebug/internal/ui/styles"
	"github.com/justinpbarnett/autodebug/internal/watch"
)

const (
	panelEditor = 0
	panelLog    = 1
	numPanels   = 2
)

const (
	tickInterval   = 120 * time.Millisecond
	healthInterval = 15 * time.Second
)

// HealthChecker probes the backend.
type HealthChecker interface {
	Health(ctx context.Context) (*backend.Health, error)
}

// Options carries the collaborators NewApp would otherwise build from config.
type Options struct {
	// Backend defaults to an HTTP client for cfg.Backend.
	Backend engine.Backend
	// Health defaults to Backend when it can probe, else the HTTP client.
	Health HealthChecker
	// File, when set, is the source file the buffer is saved to and reloaded from.
	File *watch.File
	// Code is the initial buffer. Empty means the configured default case.
	Code string
	// Clipboard defaults to the system clipboard.
	Clipboard clipboard.Writer
}

type App struct {
	config    *config.Config
	log       *session.Log
	state     *session.State
	executor  *engine.Executor
	health    HealthChecker
	file      *watch.File
	copy      clipboard.Writer
	logger    *logrus.Entry
	replay    *engine.Replay
	width     int
	height    int
	layout    layout.Layout
	focused   int
	editor    panels.Editor
	logView   panels.LogView
	statusBar panels.StatusBar
	help      *panels.HelpOverlay
	picker    *panels.CasePickerModal
	keys      KeyMap
	ready     bool
}

func NewApp(cfg *config.Config, opts Options) App {
	var client *backend.Client
	if opts.Backend == nil || opts.Health == nil {
		client = backend.NewClientFromConfig(cfg)
	}
	if opts.Backend == nil {
		opts.Backend = client
	}
	if opts.Health == nil {
		if hc, ok := opts.Backend.(HealthChecker); ok {
			opts.Health = hc
		} else {
			opts.Health = client
		}
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.System
	}
	if opts.Code == "" && opts.File == nil {
		c, err := samples.Get(cfg.UI.DefaultCase)
		if err != nil {
			c = samples.Default()
		}
		opts.Code = c.Code
	}

	log := session.NewLog(session.WithTimestampFormat(cfg.UI.TimestampFormat))
	state := session.NewState(opts.Code)
	exec := engine.NewExecutor(opts.Backend, log, state, cfg.ReplayInterval())

	showLineNumbers := cfg.UI.ShowLineNumbers == nil || *cfg.UI.ShowLineNumbers
	ed := panels.NewEditor(showLineNumbers)
	ed.SetCode(opts.Code)
	ed.SetFocused(true)
	if opts.File != nil {
		ed.SetTitle(filepath.Base(opts.File.Path()))
	}

	lv := panels.NewLogView()
	lv.SetScrollSpeed(cfg.UI.LogScrollSpeed)

	return App{
		config:    cfg,
		log:       log,
		state:     state,
		executor:  exec,
		health:    opts.Health,
		file:      opts.File,
		copy:      opts.Clipboard,
		logger:    logging.NewLogger("ui").WithField("session", state.ID()),
		editor:    ed,
		logView:   lv,
		statusBar: panels.NewStatusBar(state.ID(), cfg.Backend.BaseURL),
		keys:      DefaultKeyMap(),
	}
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		listenForChanges(a.log.Changes(), LogUpdatedMsg{}),
		listenForChanges(a.state.Changes(), StateUpdatedMsg{}),
		checkHealth(a.health),
		tick(),
	}
	if a.file != nil {
		cmds = append(cmds, listenForFile(a.file))
	}
	return tea.Batch(cmds...)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.layout = layout.Calculate(msg.Width, msg.Height)
		a.propagateSizes()
		return a, nil

	case CloseModalMsg:
		a.help = nil
		a.picker = nil
		return a, nil

	case LogUpdatedMsg:
		a.syncLog()
		return a, listenForChanges(a.log.Changes(), LogUpdatedMsg{})

	case StateUpdatedMsg:
		a.syncState()
		return a, listenForChanges(a.state.Changes(), StateUpdatedMsg{})

	case RunDoneMsg:
		if msg.Outcome == engine.OutcomeBusy {
			cmd := a.flashBusy()
			return a, cmd
		}
		return a, nil

	case RepairStartedMsg:
		if msg.Outcome == engine.OutcomeBusy {
			cmd := a.flashBusy()
			return a, cmd
		}
		if msg.Replay == nil {
			return a, nil
		}
		a.replay = msg.Replay
		a.statusBar.SetProgress(msg.Replay.Presented(), msg.Replay.Steps())
		return a, waitForReplay(msg.Replay)

	case ReplayDoneMsg:
		a.replay = nil
		a.syncState()
		return a, nil

	case LoadCaseMsg:
		a.picker = nil
		c, err := samples.Get(msg.Name)
		if err != nil {
			cmd := a.flash(err.Error(), panels.FlashError)
			return a, cmd
		}
		a.state.SetCode(c.Code)
		a.syncState()
		cmd := a.flash("Loaded "+c.Title, panels.FlashInfo)
		return a, cmd

	case FileChangedMsg:
		a.state.SetCode(msg.Content)
		a.syncState()
		cmd := a.flash("Reloaded "+filepath.Base(msg.Path), panels.FlashInfo)
		return a, tea.Batch(cmd, listenForFile(a.file))

	case HealthMsg:
		a.statusBar.SetHealth(msg.OK)
		if msg.Err != nil {
			a.logger.WithError(msg.Err).Debug("health probe failed")
		}
		return a, tea.Tick(healthInterval, func(time.Time) tea.Msg {
			return checkHealth(a.health)()
		})

	case TickMsg:
		a.statusBar.Tick()
		return a, tick()

	case ClearFlashMsg:
		a.statusBar.ClearFlash()
		return a, nil

	case panels.GTimerExpiredMsg:
		if a.picker != nil {
			var cmd tea.Cmd
			a.picker, cmd = a.picker.Update(msg)
			return a, cmd
		}
		var cmd tea.Cmd
		a.logView, cmd = a.logView.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.MouseMsg:
		if a.focused == panelLog {
			var cmd tea.Cmd
			a.logView, cmd = a.logView.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	if a.focused == panelEditor {
		return a.updateEditor(msg)
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.Quit) {
		return a, tea.Quit
	}

	if a.picker != nil {
		var cmd tea.Cmd
		a.picker, cmd = a.picker.Update(msg)
		return a, cmd
	}
	if a.help != nil {
		var cmd tea.Cmd
		*a.help, cmd = a.help.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	switch {
	case key.Matches(msg, a.keys.Run):
		cmd = a.startRun()
		return a, cmd
	case key.Matches(msg, a.keys.Repair):
		cmd = a.startRepair()
		return a, cmd
	case key.Matches(msg, a.keys.ClearLog):
		a.log.Clear()
		return a, nil
	case key.Matches(msg, a.keys.Cases):
		a.picker = panels.NewCasePickerModal(samples.All(), a.width, a.height)
		return a, nil
	case key.Matches(msg, a.keys.Save):
		cmd = a.save()
		return a, cmd
	case key.Matches(msg, a.keys.CopyCode):
		cmd = a.yank(a.state.Code(), "Copied code buffer")
		return a, cmd
	case key.Matches(msg, a.keys.Help):
		a.help = panels.NewHelpOverlay()
		return a, nil
	case key.Matches(msg, a.keys.FocusNext):
		a.focused = (a.focused + 1) % numPanels
		a.updateFocusState()
		return a, nil
	}

	if a.focused == panelLog {
		switch {
		case key.Matches(msg, a.keys.QuitLog):
			return a, tea.Quit
		case msg.String() == "?":
			a.help = panels.NewHelpOverlay()
			return a, nil
		case key.Matches(msg, a.keys.CopyLog):
			entries := a.log.Entries()
			cmd = a.yank(panels.PlainText(entries), fmt.Sprintf("Copied %d log entries", len(entries)))
			return a, cmd
		}
		a.logView, cmd = a.logView.Update(msg)
		return a, cmd
	}

	return a.updateEditor(msg)
}

// updateEditor forwards msg to the editor and publishes any edit to the
// session buffer.
func (a App) updateEditor(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.editor, cmd = a.editor.Update(msg)
	if v := a.editor.Value(); v != a.state.Code() {
		a.state.SetCode(v)
	}
	return a, cmd
}

// startRun and startRepair refuse early when the gate is visibly held; the
// executor still decides, so a race surfaces as a Busy outcome.
func (a *App) startRun() tea.Cmd {
	if a.state.Running() {
		return a.flashBusy()
	}
	exec, code := a.executor, a.state.Code()
	return func() tea.Msg {
		return RunDoneMsg{Outcome: exec.Run(context.Background(), code)}
	}
}

func (a *App) startRepair() tea.Cmd {
	if a.state.Running() {
		return a.flashBusy()
	}
	exec, code := a.executor, a.state.Code()
	return func() tea.Msg {
		r, outcome := exec.Repair(context.Background(), code)
		return RepairStartedMsg{Replay: r, Outcome: outcome}
	}
}

func (a *App) save() tea.Cmd {
	if a.file == nil {
		return a.flash("No file opened (start with --file)", panels.FlashWarning)
	}
	if err := a.file.Save(a.state.Code()); err != nil {
		a.logger.WithError(err).Warn("save failed")
		return a.flash("Save failed: "+err.Error(), panels.FlashError)
	}
	return a.flash("Saved "+filepath.Base(a.file.Path()), panels.FlashSuccess)
}

func (a *App) yank(text, done string) tea.Cmd {
	if err := a.copy(text); err != nil {
		a.logger.WithError(err).Warn("clipboard write failed")
		return a.flash("Copy failed: "+err.Error(), panels.FlashError)
	}
	return a.flash(done, panels.FlashSuccess)
}

func (a *App) flashBusy() tea.Cmd {
	return a.flash("Busy: wait for the current action to finish", panels.FlashWarning)
}

// flash sets the status bar message. The returned tick clears it.
func (a *App) flash(msg string, level panels.FlashLevel) tea.Cmd {
	a.statusBar.SetFlashWithLevel(msg, level)
	return tea.Tick(panels.FlashDuration(), func(time.Time) tea.Msg {
		return ClearFlashMsg{}
	})
}

func (a App) View() string {
	if !a.ready {
		return lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center, "Loading...")
	}

	if a.layout.TooSmall {
		msg := fmt.Sprintf("Terminal too small (%d×%d)\nMinimum: %d×%d",
			a.width, a.height, layout.MinWidth, layout.MinHeight)
		return lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center, msg)
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, a.editor.View(), a.logView.View())
	full := lipgloss.JoinVertical(lipgloss.Left, row, a.statusBar.View())

	var modal string
	switch {
	case a.picker != nil:
		modal = a.picker.View()
	case a.help != nil:
		modal = a.help.View()
	}
	if modal != "" {
		full = lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center, modal,
			lipgloss.WithWhitespaceChars(" "),
			lipgloss.WithWhitespaceForeground(styles.TextDim),
		)
	}
	return full
}

// Executor exposes the controller so the caller can shut it down on exit.
func (a App) Executor() *engine.Executor {
	return a.executor
}

func (a App) Log() *session.Log {
	return a.log
}

func (a App) State() *session.State {
	return a.state
}

func (a *App) syncLog() {
	a.logView.SetEntries(a.log.Entries())
	if a.replay != nil {
		a.statusBar.SetProgress(a.replay.Presented(), a.replay.Steps())
	}
}

func (a *App) syncState() {
	a.editor.SetCode(a.state.Code())
	running := a.state.Running()
	a.editor.SetRunning(running)
	a.logView.SetRunning(running)
	a.statusBar.SetRunning(running)
	if running && a.replay != nil {
		a.statusBar.SetProgress(a.replay.Presented(), a.replay.Steps())
	}
}

func (a *App) propagateSizes() {
	l := a.layout
	a.editor.SetSize(l.EditorWidth, l.EditorHeight)
	a.logView.SetSize(l.LogWidth, l.LogHeight)
	a.statusBar.SetSize(l.StatusBarWidth)
}

func (a *App) updateFocusState() {
	a.editor.SetFocused(a.focused == panelEditor)
	a.logView.SetFocused(a.focused == panelLog)
}

func listenForChanges(ch <-chan struct{}, msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return msg
	}
}

func listenForFile(f *watch.File) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-f.Events()
		if !ok {
			return nil
		}
		return FileChangedMsg{Path: ev.Path, Content: ev.Content}
	}
}

func waitForReplay(r *engine.Replay) tea.Cmd {
	return func() tea.Msg {
		r.Wait()
		return ReplayDoneMsg{}
	}
}

func checkHealth(h HealthChecker) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		res, err := h.Health(ctx)
		if err != nil {
			return HealthMsg{Err: err}
		}
		return HealthMsg{OK: res.OK()}
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}
