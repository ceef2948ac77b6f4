package threads

import (
	"io"

	"github.com/phuslu/log"
)

// Outcome is what a single refresh attempt ended in.
type Outcome int

const (
	// OutcomeSuppressed means the gate vetoed the attempt.
	OutcomeSuppressed Outcome = iota
	// OutcomeNoSession means no debuggee is attached; the model was cleared.
	OutcomeNoSession
	// OutcomeInFlight means a debug operation was running; nothing was fetched.
	OutcomeInFlight
	// OutcomeLive means the thread list was fetched and reconciled.
	OutcomeLive
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuppressed:
		return "suppressed"
	case OutcomeNoSession:
		return "no_session"
	case OutcomeInFlight:
		return "in_flight"
	case OutcomeLive:
		return "live"
	default:
		return "unknown"
	}
}

// SurfaceState is the visible state of the grid.
type SurfaceState int

const (
	// StateInitial is the state before the first successful gate pass.
	StateInitial SurfaceState = iota
	StateNoSession
	StateInFlight
	StateLive
)

func (s SurfaceState) String() string {
	switch s {
	case StateInitial:
		return "initial"
	case StateNoSession:
		return "no session"
	case StateInFlight:
		return "in flight"
	case StateLive:
		return "live"
	default:
		return "unknown"
	}
}

// Observer receives refresh and activation outcomes, e.g. for metrics.
type Observer interface {
	ObserveRefresh(outcome Outcome, delta Delta, rows int)
	ObserveActivation(result ActivationResult)
}

type nopObserver struct{}

func (nopObserver) ObserveRefresh(Outcome, Delta, int)  {}
func (nopObserver) ObserveActivation(ActivationResult) {}

// Coordinator decides on every trigger whether the thread list may be
// fetched, and keeps the model and the surface in step with the session.
type Coordinator struct {
	session  Session
	model    *TableModel
	gate     Gate
	surface  Surface
	observer Observer
	log      log.Logger

	state SurfaceState
	last  Outcome
}

// CoordinatorOption configures a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithGate sets the deferred-refresh gate. Defaults to AlwaysRefresh.
func WithGate(g Gate) CoordinatorOption {
	return func(c *Coordinator) { c.gate = g }
}

// WithSurface sets the surface to enable and disable.
func WithSurface(s Surface) CoordinatorOption {
	return func(c *Coordinator) { c.surface = s }
}

// WithObserver sets the outcome observer.
func WithObserver(o Observer) CoordinatorOption {
	return func(c *Coordinator) { c.observer = o }
}

// WithLogger sets the logger.
func WithLogger(l log.Logger) CoordinatorOption {
	return func(c *Coordinator) { c.log = l }
}

// NewCoordinator builds a Coordinator over session and model.
func NewCoordinator(session Session, model *TableModel, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		session:  session,
		model:    model,
		gate:     AlwaysRefresh,
		surface:  nopSurface{},
		observer: nopObserver{},
		log:      log.Logger{Level: log.ErrorLevel, Writer: &log.IOWriter{Writer: io.Discard}},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Handle processes one notification. Data notifications run OnRefreshTrigger;
// theme changes only restyle the surface.
func (c *Coordinator) Handle(n Notification) Request {
	req := Route(n)
	switch req {
	case RefreshRequested:
		c.log.Debug().Str("notification", n.String()).Msg("refresh requested")
		c.OnRefreshTrigger()
	case RestyleRequested:
		c.surface.Restyle()
	}
	return req
}

// OnRefreshTrigger runs one refresh attempt.
func (c *Coordinator) OnRefreshTrigger() Outcome {
	if !c.gate.AttemptRefresh(nil) {
		return c.finish(OutcomeSuppressed, Delta{})
	}

	if !c.session.SessionActive() {
		d := c.model.Clear()
		c.state = StateNoSession
		c.surface.SetEnabled(false)
		return c.finish(OutcomeNoSession, d)
	}

	if c.session.OperationInProgress() {
		c.state = StateInFlight
		c.surface.SetEnabled(false)
		return c.finish(OutcomeInFlight, Delta{})
	}

	snaps := c.session.ProcessThreads(CurrentProcess)
	d := c.model.Reconcile(snaps)
	c.state = StateLive
	c.surface.SetEnabled(true)
	return c.finish(OutcomeLive, d)
}

func (c *Coordinator) finish(o Outcome, d Delta) Outcome {
	c.last = o
	c.observer.ObserveRefresh(o, d, c.model.Len())
	c.log.Debug().
		Str("outcome", o.String()).
		Int("rows", c.model.Len()).
		Int("changed", d.Changed).
		Int("appended", d.Appended).
		Int("removed", d.Removed).
		Msg("refresh")
	return o
}

// State returns the surface state set by the last refresh that passed the gate.
func (c *Coordinator) State() SurfaceState {
	return c.state
}

// LastOutcome returns the outcome of the most recent attempt.
func (c *Coordinator) LastOutcome() Outcome {
	return c.last
}

// Model returns the table model the coordinator writes to.
func (c *Coordinator) Model() *TableModel {
	return c.model
}
