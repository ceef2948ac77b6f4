package threads

import (
	"strconv"
	"strings"
)

// ActivationResult describes what an activation did.
type ActivationResult int

const (
	// ActivationInvalid means no row was selected; nothing happened.
	ActivationInvalid ActivationResult = iota
	// ActivationSwitched means the thread-switch command was issued.
	ActivationSwitched
	// ActivationStale means the thread was gone by the time it was activated.
	ActivationStale
	// ActivationSkipped means the session could not be queried safely.
	ActivationSkipped
)

func (r ActivationResult) String() string {
	switch r {
	case ActivationInvalid:
		return "invalid"
	case ActivationSwitched:
		return "switched"
	case ActivationStale:
		return "stale"
	case ActivationSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Activator turns a row activation into a thread switch. The session's switch
// command accepts any id, so the id is checked against a fresh thread list
// first.
type Activator struct {
	session     Session
	coordinator *Coordinator
}

// NewActivator returns an Activator that refreshes through coordinator.
func NewActivator(session Session, coordinator *Coordinator) *Activator {
	return &Activator{session: session, coordinator: coordinator}
}

// Activate handles activation of the row whose Identifier column reads
// identifier.
func (a *Activator) Activate(identifier string) ActivationResult {
	pid, err := strconv.ParseInt(strings.TrimSpace(identifier), 10, 64)
	if err != nil {
		a.coordinator.observer.ObserveActivation(ActivationInvalid)
		return ActivationInvalid
	}

	result := a.switchTo(pid)
	a.coordinator.observer.ObserveActivation(result)
	a.coordinator.log.Debug().
		Int64("pid", pid).
		Str("result", result.String()).
		Msg("activate")

	a.coordinator.OnRefreshTrigger()
	return result
}

func (a *Activator) switchTo(pid int64) ActivationResult {
	if !a.session.SessionActive() || a.session.OperationInProgress() {
		return ActivationSkipped
	}

	for _, s := range a.session.ProcessThreads(CurrentProcess) {
		if s.PID == pid {
			a.session.SetActiveThread(pid)
			return ActivationSwitched
		}
	}
	return ActivationStale
}
