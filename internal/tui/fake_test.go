package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nixlim/threadscope/internal/config"
	"github.com/nixlim/threadscope/internal/threads"
)

// Mock session for model tests.
type mockSession struct {
	active     bool
	inProgress bool
	snaps      []threads.Snapshot

	fetches  int
	switched []int64
}

func (m *mockSession) SessionActive() bool       { return m.active }
func (m *mockSession) OperationInProgress() bool { return m.inProgress }

func (m *mockSession) ProcessThreads(int64) []threads.Snapshot {
	m.fetches++
	out := make([]threads.Snapshot, len(m.snaps))
	copy(out, m.snaps)
	return out
}

func (m *mockSession) SetActiveThread(pid int64) {
	m.switched = append(m.switched, pid)
}

// Mock controller for debug operation tests.
type mockController struct {
	interrupts int
	continues  int
	err        error
}

func (m *mockController) Interrupt(context.Context) error {
	m.interrupts++
	return m.err
}

func (m *mockController) Continue(context.Context) error {
	m.continues++
	return m.err
}

type countingObserver struct {
	refreshes   int
	activations []threads.ActivationResult
}

func (c *countingObserver) ObserveRefresh(threads.Outcome, threads.Delta, int) { c.refreshes++ }

func (c *countingObserver) ObserveActivation(r threads.ActivationResult) {
	c.activations = append(c.activations, r)
}

func sampleSession() *mockSession {
	return &mockSession{
		active: true,
		snaps: []threads.Snapshot{
			{PID: 100, Status: threads.StatusStopped, Path: "/usr/bin/alpha", Current: true},
			{PID: 101, Status: threads.StatusRunning, Path: "/usr/bin/beta"},
		},
	}
}

// newTestModel builds a model and runs its initial refresh.
func newTestModel(t *testing.T, sess *mockSession, opts ...ModelOption) Model {
	t.Helper()
	m := NewModel(sess, config.DefaultConfig().Display, opts...)
	m.width = 100
	m.height = 30
	return update(t, m, m.Init()())
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = update(t, m, runeKey(r))
	}
	return m
}

var (
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
	downKey  = tea.KeyMsg{Type: tea.KeyDown}
	upKey    = tea.KeyMsg{Type: tea.KeyUp}
)
