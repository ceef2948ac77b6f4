// Package session is the debug session service behind the thread view. It
// attaches to a live process through procfs, reports its threads, delivers
// interrupt and continue as debug operations, and publishes change
// notifications on a Broker.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/phuslu/log"

	"github.com/nixlim/threadscope/internal/process"
	"github.com/nixlim/threadscope/internal/threads"
)

var (
	// ErrNotAttached is returned by debug operations when no process is attached.
	ErrNotAttached = errors.New("no process attached")
	// ErrOperationInProgress is returned when a debug operation is already running.
	ErrOperationInProgress = errors.New("debug operation already in progress")
	// ErrUnsupported is returned on platforms without procfs.
	ErrUnsupported = errors.New("thread inspection is not supported on this platform")
)

const (
	defaultOperationTimeout = 2 * time.Second
	settlePollInterval      = 10 * time.Millisecond
)

// Procfs implements threads.Session for a process on the local machine.
// Query methods are safe to call from the UI goroutine while Watch and the
// debug operations run on others.
type Procfs struct {
	root      string
	broker    *Broker
	log       log.Logger
	opTimeout time.Duration

	// Overridable for tests.
	signal func(pid int, a process.Action) error
	alive  func(pid int) error

	mu      sync.Mutex
	pid     int
	current int64

	inProgress atomic.Bool
}

// Option configures a Procfs.
type Option func(*Procfs)

// WithRoot reads process information below root instead of /proc.
func WithRoot(root string) Option {
	return func(p *Procfs) { p.root = root }
}

// WithLogger sets the logger.
func WithLogger(l log.Logger) Option {
	return func(p *Procfs) { p.log = l }
}

// WithOperationTimeout bounds how long a debug operation waits for the
// thread states to settle.
func WithOperationTimeout(d time.Duration) Option {
	return func(p *Procfs) {
		if d > 0 {
			p.opTimeout = d
		}
	}
}

// NewProcfs creates a detached session that publishes on broker.
func NewProcfs(broker *Broker, opts ...Option) *Procfs {
	p := &Procfs{
		root:      "/proc",
		broker:    broker,
		log:       log.Logger{Level: log.ErrorLevel, Writer: &log.IOWriter{Writer: io.Discard}},
		opTimeout: defaultOperationTimeout,
		signal:    process.Deliver,
		alive:     process.Alive,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Attach makes pid the debuggee. The main thread starts out as current.
func (p *Procfs) Attach(pid int) error {
	if !supported {
		return ErrUnsupported
	}
	if pid <= 0 {
		return fmt.Errorf("attach: invalid PID %d", pid)
	}
	if err := p.alive(pid); err != nil {
		return fmt.Errorf("attach %d: %w", pid, err)
	}
	if _, err := readThreads(p.root, pid, int64(pid)); err != nil {
		return fmt.Errorf("attach %d: %w", pid, err)
	}

	p.mu.Lock()
	p.pid = pid
	p.current = int64(pid)
	p.mu.Unlock()

	p.log.Info().Int("pid", pid).Msg("attached")
	p.broker.Publish(threads.NotifyProcessSwitched)
	return nil
}

// Detach forgets the debuggee.
func (p *Procfs) Detach() {
	p.mu.Lock()
	pid := p.pid
	p.pid = 0
	p.current = 0
	p.mu.Unlock()

	if pid != 0 {
		p.log.Info().Int("pid", pid).Msg("detached")
		p.broker.Publish(threads.NotifyRefreshAll)
	}
}

// PID returns the attached process id, or 0.
func (p *Procfs) PID() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pid
}

// SessionActive reports whether a process is attached and still exists.
func (p *Procfs) SessionActive() bool {
	pid := p.PID()
	return pid != 0 && p.alive(pid) == nil
}

// OperationInProgress reports whether Interrupt or Continue is executing.
func (p *Procfs) OperationInProgress() bool {
	return p.inProgress.Load()
}

// ProcessThreads lists the threads of target, or of the attached process for
// threads.CurrentProcess. Read errors are logged and yield an empty list.
func (p *Procfs) ProcessThreads(target int64) []threads.Snapshot {
	p.mu.Lock()
	pid, current := p.pid, p.current
	p.mu.Unlock()

	if target != threads.CurrentProcess {
		pid = int(target)
	}
	if pid <= 0 {
		return nil
	}

	snaps, err := readThreads(p.root, pid, current)
	if err != nil {
		p.log.Warn().Err(err).Int("pid", pid).Msg("list threads")
		return nil
	}
	return snaps
}

// SetActiveThread records pid as the current thread. Any id is accepted.
func (p *Procfs) SetActiveThread(pid int64) {
	p.mu.Lock()
	p.current = pid
	p.mu.Unlock()

	p.log.Debug().Int64("tid", pid).Msg("active thread set")
	p.broker.Publish(threads.NotifyThreadSwitched)
}

// ActiveThread returns the current thread id.
func (p *Procfs) ActiveThread() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Interrupt stops the debuggee and waits until every thread reports stopped.
func (p *Procfs) Interrupt(ctx context.Context) error {
	return p.operate(ctx, process.ActionInterrupt, func(s threads.Status) bool {
		return s != threads.StatusRunning && s != threads.StatusSleeping
	})
}

// Continue resumes the debuggee and waits until no thread reports stopped.
func (p *Procfs) Continue(ctx context.Context) error {
	return p.operate(ctx, process.ActionResume, func(s threads.Status) bool {
		return s != threads.StatusStopped
	})
}

// operate runs one debug operation. The in-progress flag is raised for its
// whole duration, bracketed by debugOperationStateChanged notifications.
func (p *Procfs) operate(ctx context.Context, action process.Action, settled func(threads.Status) bool) error {
	pid := p.PID()
	if pid == 0 {
		return ErrNotAttached
	}
	if !p.inProgress.CompareAndSwap(false, true) {
		return ErrOperationInProgress
	}
	p.broker.Publish(threads.NotifyDebugOperationStateChanged)

	start := time.Now()
	defer func() {
		p.inProgress.Store(false)
		p.broker.Publish(threads.NotifyDebugOperationStateChanged)
		p.broker.Publish(threads.NotifyRegistersChanged)
	}()

	if err := p.signal(pid, action); err != nil {
		return fmt.Errorf("%v: %w", action, err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.opTimeout)
	defer cancel()

	if err := p.waitSettled(ctx, pid, settled); err != nil {
		return fmt.Errorf("%v: %w", action, err)
	}

	p.log.Info().Str("op", action.String()).Int("pid", pid).Dur("took", time.Since(start)).Msg("debug operation done")
	return nil
}

func (p *Procfs) waitSettled(ctx context.Context, pid int, settled func(threads.Status) bool) error {
	ticker := time.NewTicker(settlePollInterval)
	defer ticker.Stop()

	for {
		snaps, err := readThreads(p.root, pid, 0)
		if err != nil {
			return err
		}
		if allSettled(snaps, settled) {
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("wait for threads to settle: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}

func allSettled(snaps []threads.Snapshot, settled func(threads.Status) bool) bool {
	for _, s := range snaps {
		if !settled(s.Status) {
			return false
		}
	}
	return true
}

// Watch polls the attached process every interval and publishes refreshAll
// when its thread set changes or it exits. It returns when ctx is done.
func (p *Procfs) Watch(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := p.fingerprint()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		// Debug operations publish their own notifications.
		if p.OperationInProgress() {
			continue
		}

		fp := p.fingerprint()
		if fp != last {
			p.log.Debug().Str("fingerprint", fp).Msg("thread set changed")
			last = fp
			p.broker.Publish(threads.NotifyRefreshAll)
		}
	}
}

// fingerprint summarises the attached process's thread ids and states. A gone
// process has the fingerprint "gone".
func (p *Procfs) fingerprint() string {
	pid := p.PID()
	if pid == 0 {
		return ""
	}
	if p.alive(pid) != nil {
		return "gone"
	}
	snaps, err := readThreads(p.root, pid, 0)
	if err != nil {
		return "gone"
	}

	var b strings.Builder
	for _, s := range snaps {
		fmt.Fprintf(&b, "%d:%c;", s.PID, s.Status)
	}
	return b.String()
}
