package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestShutdownManager_Order(t *testing.T) {
	var order []string
	sm := NewShutdownManager()
	sm.StopWatcher = func() { order = append(order, "watcher") }
	sm.StopMetrics = func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); !ok {
			t.Error("metrics shutdown context should carry a deadline")
		}
		order = append(order, "metrics")
		return nil
	}
	sm.Cleanup = func() { order = append(order, "cleanup") }

	if err := sm.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error: %v", err)
	}

	want := []string{"watcher", "metrics", "cleanup"}
	if diff := cmp.Diff(want, order); diff != "" {
		t.Errorf("shutdown order mismatch (-want +got):\n%s", diff)
	}
}

func TestShutdownManager_Idempotent(t *testing.T) {
	calls := 0
	sm := NewShutdownManager()
	sm.Cleanup = func() { calls++ }

	_ = sm.Shutdown()
	_ = sm.Shutdown()

	if calls != 1 {
		t.Errorf("cleanup ran %d times, want 1", calls)
	}
}

func TestShutdownManager_MetricsErrorStillCleansUp(t *testing.T) {
	boom := errors.New("boom")
	cleaned := false
	sm := NewShutdownManager()
	sm.DrainTimeout = 10 * time.Millisecond
	sm.StopMetrics = func(context.Context) error { return boom }
	sm.Cleanup = func() { cleaned = true }

	if err := sm.Shutdown(); !errors.Is(err, boom) {
		t.Errorf("Shutdown() = %v, want %v", err, boom)
	}
	if !cleaned {
		t.Error("cleanup should run after a metrics error")
	}
	if err := sm.Shutdown(); !errors.Is(err, boom) {
		t.Errorf("second Shutdown() = %v, want the first error again", err)
	}
}

func TestShutdownManager_NilHooks(t *testing.T) {
	if err := NewShutdownManager().Shutdown(); err != nil {
		t.Errorf("Shutdown() with no hooks = %v", err)
	}
}
