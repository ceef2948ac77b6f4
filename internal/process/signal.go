// Package process delivers job-control signals to the debuggee. Signals go to
// the single target PID, never its process group, so the shell or terminal
// that launched the debuggee is left alone.
package process

import (
	"errors"
	"fmt"
	"strings"
	"syscall"
)

// Action is a job-control action on the debuggee.
type Action int

const (
	// ActionInterrupt stops every thread of the process (SIGSTOP).
	ActionInterrupt Action = iota
	// ActionResume continues a stopped process (SIGCONT).
	ActionResume
)

func (a Action) String() string {
	switch a {
	case ActionInterrupt:
		return "interrupt"
	case ActionResume:
		return "resume"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// ErrGone is returned when the target process no longer exists.
var ErrGone = errors.New("process is gone")

// Interrupt stops the process.
func Interrupt(pid int) error {
	return Deliver(pid, ActionInterrupt)
}

// Resume continues the process.
func Resume(pid int) error {
	return Deliver(pid, ActionResume)
}

// Deliver sends the signal for action to pid. It returns ErrGone if the
// process has exited (ESRCH).
func Deliver(pid int, action Action) error {
	if pid <= 0 {
		return fmt.Errorf("invalid PID: %d", pid)
	}

	sig, ok := signalFor(action)
	if !ok {
		return fmt.Errorf("unknown action: %v", action)
	}

	if err := syscall.Kill(pid, sig); err != nil {
		if isProcessGone(err) {
			return ErrGone
		}
		return fmt.Errorf("%v PID %d: %w", action, pid, err)
	}
	return nil
}

// IsGone reports whether err means the process does not exist.
func IsGone(err error) bool {
	return errors.Is(err, ErrGone)
}

// Alive returns nil if pid exists, ErrGone if it does not. A process we may
// not signal (EPERM) still counts as alive.
func Alive(pid int) error {
	if pid <= 0 {
		return fmt.Errorf("invalid PID: %d", pid)
	}

	err := syscall.Kill(pid, 0)
	if err == nil || errors.Is(err, syscall.EPERM) {
		return nil
	}
	return ErrGone
}

func signalFor(action Action) (syscall.Signal, bool) {
	switch action {
	case ActionInterrupt:
		return syscall.SIGSTOP, true
	case ActionResume:
		return syscall.SIGCONT, true
	default:
		return 0, false
	}
}

// isProcessGone checks for ESRCH, falling back to the message text for errors
// that lost their errno on the way up.
func isProcessGone(err error) bool {
	if err == nil {
		return false
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == syscall.ESRCH
	}
	return strings.Contains(err.Error(), "process already finished") ||
		strings.Contains(err.Error(), "no such process")
}
