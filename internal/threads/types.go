// Package threads holds the thread view core: the snapshot and row model, the
// case-insensitive column filter, the refresh coordinator that decides when the
// debuggee may be queried, and the activation handler that switches threads.
//
// Everything in this package runs on a single control goroutine (the bubbletea
// update loop in production). Nothing here takes locks.
package threads

// CurrentProcess is the ProcessThreads target meaning "the process currently
// being debugged".
const CurrentProcess int64 = -1

// Status is a raw thread status code as reported by the debug session.
type Status byte

const (
	StatusStopped     Status = 's'
	StatusRunning     Status = 'r'
	StatusSleeping    Status = 'S'
	StatusZombie      Status = 'z'
	StatusDead        Status = 'd'
	StatusRaisedEvent Status = 'R'
	StatusUnknown     Status = '?'
)

// Snapshot describes one thread at the moment it was fetched. PIDs are unique
// within one fetch batch but may be reused by later threads.
type Snapshot struct {
	PID     int64  `json:"pid" yaml:"pid"`
	Status  Status `json:"status" yaml:"status"`
	Path    string `json:"path" yaml:"path"`
	Current bool   `json:"current" yaml:"current"`
}

// Session is the debug session service the core consumes.
type Session interface {
	// SessionActive reports whether a debuggee is attached and running.
	SessionActive() bool

	// OperationInProgress reports whether a debug operation (interrupt,
	// continue, step) is executing. Thread state must not be queried while
	// this is true.
	OperationInProgress() bool

	// ProcessThreads returns the full ordered thread list of target. Failures
	// are reported as an empty slice.
	ProcessThreads(target int64) []Snapshot

	// SetActiveThread selects pid as the current thread. It accepts any id,
	// including ones that no longer exist.
	SetActiveThread(pid int64)
}

// Gate decides whether a refresh may run now. A gate that refuses is
// responsible for asking again once refreshing becomes possible.
type Gate interface {
	AttemptRefresh(hint any) bool
}

// GateFunc adapts a plain function to Gate.
type GateFunc func(hint any) bool

// AttemptRefresh calls f.
func (f GateFunc) AttemptRefresh(hint any) bool { return f(hint) }

// AlwaysRefresh is a Gate that never defers.
var AlwaysRefresh Gate = GateFunc(func(any) bool { return true })

// Surface is the presentation side the coordinator drives.
type Surface interface {
	// SetEnabled toggles interaction with the grid.
	SetEnabled(enabled bool)

	// Restyle re-applies fonts and colours. It never changes data.
	Restyle()
}

type nopSurface struct{}

func (nopSurface) SetEnabled(bool) {}
func (nopSurface) Restyle()        {}
