package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/phuslu/log"

	"github.com/nixlim/threadscope/internal/config"
	"github.com/nixlim/threadscope/internal/process"
	"github.com/nixlim/threadscope/internal/threads"
)

type ViewState int

const (
	ViewThreads ViewState = iota
	ViewHelp
)

// NotificationMsg carries a session notification into the update loop.
type NotificationMsg struct {
	Notification threads.Notification
}

// operationDoneMsg reports the end of a debug operation.
type operationDoneMsg struct {
	op  string
	err error
}

// Controller runs debug operations on the attached process.
type Controller interface {
	Interrupt(ctx context.Context) error
	Continue(ctx context.Context) error
}

type Model struct {
	view     ViewState
	width    int
	height   int
	keys     KeyMap
	help     help.Model
	quitting bool

	cfg config.DisplayConfig

	session   threads.Session
	control   Controller
	observer  threads.Observer
	log       log.Logger
	title     string
	table     *threads.TableModel
	surface   *surface
	gate      *threads.VisibilityGate
	coord     *threads.Coordinator
	activator *threads.Activator

	filter textinput.Model
	cursor int
	order  sortState

	message    string
	messageErr bool

	onShutdown func()
}

type ModelOption func(*Model)

func WithController(c Controller) ModelOption {
	return func(m *Model) { m.control = c }
}

func WithObserver(o threads.Observer) ModelOption {
	return func(m *Model) { m.observer = o }
}

func WithLogger(l log.Logger) ModelOption {
	return func(m *Model) { m.log = l }
}

// WithTitle sets the text shown after the program name in the header.
func WithTitle(title string) ModelOption {
	return func(m *Model) { m.title = title }
}

// WithFilter pre-fills the filter token.
func WithFilter(token string) ModelOption {
	return func(m *Model) { m.filter.SetValue(token) }
}

func WithOnShutdown(fn func()) ModelOption {
	return func(m *Model) { m.onShutdown = fn }
}

// NewModel builds the thread view over session. The coordinator, gate and
// activator are created here so that they share the model's surface.
func NewModel(session threads.Session, cfg config.DisplayConfig, opts ...ModelOption) Model {
	ti := textinput.New()
	ti.Placeholder = "Filter..."
	ti.Prompt = "/ "
	ti.CharLimit = cfg.FilterCharLimit
	ti.Width = 30

	m := Model{
		view:    ViewThreads,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		cfg:     cfg,
		session: session,
		log:     log.Logger{Level: log.ErrorLevel, Writer: &log.IOWriter{Writer: io.Discard}},
		table:   threads.NewTableModel(),
		surface: newSurface(cfg.Theme),
		gate:    threads.NewVisibilityGate(true),
		filter:  ti,
		order:   sortState{column: sortColumnIndex(cfg.SortColumn), desc: cfg.SortDesc},
	}

	for _, opt := range opts {
		opt(&m)
	}

	coordOpts := []threads.CoordinatorOption{
		threads.WithGate(m.gate),
		threads.WithSurface(m.surface),
		threads.WithLogger(m.log),
	}
	if m.observer != nil {
		coordOpts = append(coordOpts, threads.WithObserver(m.observer))
	}
	coord := threads.NewCoordinator(session, m.table, coordOpts...)
	m.gate.Bind(func() { coord.OnRefreshTrigger() })
	m.coord = coord
	m.activator = threads.NewActivator(session, coord)

	return m
}

// Init asks for the first refresh.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg {
		return NotificationMsg{Notification: threads.NotifyRefreshAll}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case NotificationMsg:
		m.coord.Handle(msg.Notification)
		m.clampCursor()
		return m, nil

	case operationDoneMsg:
		if msg.err != nil {
			m.setError(fmt.Sprintf("%s failed: %v", msg.op, msg.err))
		} else {
			m.setMessage(msg.op + " done")
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m.quit()
	}

	if m.view == ViewHelp {
		return m.handleHelpKey(msg)
	}

	if m.filter.Focused() {
		return m.handleFilterKey(msg)
	}

	return m.handleThreadsKey(msg)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	if m.onShutdown != nil {
		m.onShutdown()
	}
	return m, tea.Quit
}

func (m Model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Escape):
		m.view = ViewThreads
		// Replays a refresh that arrived while the grid was hidden.
		m.gate.SetVisible(true)
		m.clampCursor()
	}
	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Enter), key.Matches(msg, m.keys.Escape):
		m.filter.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.clampCursor()
	return m, cmd
}

func (m Model) handleThreadsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visibleRows())-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		m.activate()
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		m.message = ""
		cmd := m.filter.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Escape):
		if m.filter.Value() != "" {
			m.filter.SetValue("")
			m.clampCursor()
		}
		return m, nil

	case key.Matches(msg, m.keys.Sort):
		m.order = m.order.next()
		return m, nil

	case key.Matches(msg, m.keys.Reverse):
		m.order.desc = !m.order.desc
		return m, nil

	case key.Matches(msg, m.keys.Theme):
		m.surface.toggleTheme()
		m.coord.Handle(threads.NotifyThemeChanged)
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.coord.Handle(threads.NotifyRefreshAll)
		m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keys.Interrupt):
		cmd := m.runOperation("interrupt", func(ctx context.Context, c Controller) error { return c.Interrupt(ctx) })
		return m, cmd

	case key.Matches(msg, m.keys.Continue):
		cmd := m.runOperation("continue", func(ctx context.Context, c Controller) error { return c.Continue(ctx) })
		return m, cmd

	case key.Matches(msg, m.keys.Help):
		m.view = ViewHelp
		m.gate.SetVisible(false)
		return m, nil
	}

	return m, nil
}

// activate switches to the thread under the cursor. A disabled grid ignores
// activation.
func (m *Model) activate() {
	if !m.surface.enabled {
		return
	}

	identifier := ""
	rows := m.visibleRows()
	if m.cursor >= 0 && m.cursor < len(rows) {
		identifier = rows[m.cursor].Column(threads.ColumnPID)
	}

	switch m.activator.Activate(identifier) {
	case threads.ActivationSwitched:
		m.setMessage("Switched to thread " + identifier)
	case threads.ActivationStale:
		m.setError("Thread " + identifier + " no longer exists")
	case threads.ActivationSkipped:
		m.setError("Session busy, try again")
	}
	m.clampCursor()
}

// runOperation starts a debug operation off the update loop. Its progress
// comes back as session notifications; the returned message only reports
// the final error.
func (m *Model) runOperation(op string, run func(context.Context, Controller) error) tea.Cmd {
	if m.control == nil {
		m.setError("Debug operations unavailable")
		return nil
	}
	control := m.control
	m.setMessage(op + "...")
	return func() tea.Msg {
		err := run(context.Background(), control)
		if process.IsGone(err) {
			err = errors.New("process has exited")
		}
		return operationDoneMsg{op: op, err: err}
	}
}

func (m *Model) setMessage(s string) {
	m.message = s
	m.messageErr = false
}

func (m *Model) setError(s string) {
	m.message = s
	m.messageErr = true
}

// visibleRows applies the filter and then the sort order to the model rows.
func (m Model) visibleRows() []threads.Row {
	return m.order.apply(threads.Visible(m.table.Rows(), m.filter.Value()))
}

func (m *Model) clampCursor() {
	n := len(m.visibleRows())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	var output string
	switch m.view {
	case ViewHelp:
		output = m.renderHelp()
	default:
		output = m.renderThreads()
	}

	if m.height > 0 {
		lines := strings.Split(output, "\n")
		if len(lines) > m.height {
			lines = lines[:m.height]
			output = strings.Join(lines, "\n")
		}
	}

	return output
}
