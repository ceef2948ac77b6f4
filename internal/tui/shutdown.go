package tui

import (
	"context"
	"sync"
	"time"
)

// ShutdownManager stops the background parts of threadscope in order once
// the UI exits. Shutdown is idempotent.
type ShutdownManager struct {
	// DrainTimeout bounds how long in-flight metric scrapes may finish.
	DrainTimeout time.Duration

	// StopWatcher stops the session watcher.
	StopWatcher func()

	// StopMetrics shuts the metrics server down.
	StopMetrics func(ctx context.Context) error

	// Cleanup runs last, e.g. closing the broker and the log file.
	Cleanup func()

	once sync.Once
	err  error
}

// NewShutdownManager creates a ShutdownManager with a 5-second drain timeout.
func NewShutdownManager() *ShutdownManager {
	return &ShutdownManager{
		DrainTimeout: 5 * time.Second,
	}
}

// Shutdown stops the watcher first so no new notifications are produced,
// then drains the metrics server, then runs cleanup.
func (sm *ShutdownManager) Shutdown() error {
	sm.once.Do(func() {
		if sm.StopWatcher != nil {
			sm.StopWatcher()
		}

		if sm.StopMetrics != nil {
			ctx, cancel := context.WithTimeout(context.Background(), sm.DrainTimeout)
			sm.err = sm.StopMetrics(ctx)
			cancel()
		}

		if sm.Cleanup != nil {
			sm.Cleanup()
		}
	})
	return sm.err
}
