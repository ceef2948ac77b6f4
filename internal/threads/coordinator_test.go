package threads

import "testing"

func TestOnRefreshTrigger_Live(t *testing.T) {
	sess := &fakeSession{active: true, snaps: twoThreads()}
	surf := &fakeSurface{}
	model := NewTableModel()
	c := NewCoordinator(sess, model, WithSurface(surf))

	if got := c.OnRefreshTrigger(); got != OutcomeLive {
		t.Fatalf("outcome = %v, want %v", got, OutcomeLive)
	}
	if model.Len() != 2 {
		t.Errorf("model rows = %d, want 2", model.Len())
	}
	if surf.enabled == nil || !*surf.enabled {
		t.Error("surface should be enabled")
	}
	if c.State() != StateLive {
		t.Errorf("State() = %v, want %v", c.State(), StateLive)
	}
	if sess.fetches != 1 {
		t.Errorf("fetches = %d, want 1", sess.fetches)
	}
}

func TestOnRefreshTrigger_NoSessionClearsModel(t *testing.T) {
	sess := &fakeSession{active: true, snaps: twoThreads()}
	surf := &fakeSurface{}
	model := NewTableModel()
	c := NewCoordinator(sess, model, WithSurface(surf))
	c.OnRefreshTrigger()

	sess.active = false
	if got := c.OnRefreshTrigger(); got != OutcomeNoSession {
		t.Fatalf("outcome = %v, want %v", got, OutcomeNoSession)
	}
	if model.Len() != 0 {
		t.Errorf("model rows = %d, want 0", model.Len())
	}
	if surf.enabled == nil || *surf.enabled {
		t.Error("surface should be disabled without a session")
	}
	if c.State() != StateNoSession {
		t.Errorf("State() = %v, want %v", c.State(), StateNoSession)
	}
	if sess.fetches != 1 {
		t.Errorf("fetches = %d, want 1 (no fetch without a session)", sess.fetches)
	}
}

func TestOnRefreshTrigger_NeverFetchesInFlight(t *testing.T) {
	sess := &fakeSession{active: true, inProgress: true, snaps: twoThreads()}
	surf := &fakeSurface{}
	model := NewTableModel()
	c := NewCoordinator(sess, model, WithSurface(surf))

	for i := 0; i < 5; i++ {
		if got := c.OnRefreshTrigger(); got != OutcomeInFlight {
			t.Fatalf("attempt %d: outcome = %v, want %v", i, got, OutcomeInFlight)
		}
	}
	if sess.fetches != 0 {
		t.Errorf("fetches = %d, want 0 while an operation is in progress", sess.fetches)
	}
	if surf.enabled == nil || *surf.enabled {
		t.Error("surface should be disabled while in flight")
	}
	if c.State() != StateInFlight {
		t.Errorf("State() = %v, want %v", c.State(), StateInFlight)
	}
}

func TestOnRefreshTrigger_InFlightKeepsRows(t *testing.T) {
	sess := &fakeSession{active: true, snaps: twoThreads()}
	model := NewTableModel()
	c := NewCoordinator(sess, model)
	c.OnRefreshTrigger()

	sess.inProgress = true
	sess.snaps = nil
	c.OnRefreshTrigger()

	if model.Len() != 2 {
		t.Errorf("model rows = %d, want 2 (in-flight must not reconcile)", model.Len())
	}
}

func TestOnRefreshTrigger_GateVeto(t *testing.T) {
	sess := &fakeSession{active: true, snaps: twoThreads()}
	surf := &fakeSurface{}
	hints := 0
	gate := GateFunc(func(hint any) bool {
		hints++
		return false
	})
	c := NewCoordinator(sess, NewTableModel(), WithGate(gate), WithSurface(surf))

	if got := c.OnRefreshTrigger(); got != OutcomeSuppressed {
		t.Fatalf("outcome = %v, want %v", got, OutcomeSuppressed)
	}
	if hints != 1 {
		t.Errorf("gate consulted %d times, want 1", hints)
	}
	if sess.fetches != 0 {
		t.Errorf("fetches = %d, want 0", sess.fetches)
	}
	if surf.toggles != 0 {
		t.Errorf("surface toggled %d times, want 0", surf.toggles)
	}
	if c.State() != StateInitial {
		t.Errorf("State() = %v, want unchanged %v", c.State(), StateInitial)
	}
}

func TestHandle_DataNotificationsShareOnePath(t *testing.T) {
	data := []Notification{
		NotifyRefreshAll,
		NotifyRegistersChanged,
		NotifyDebugOperationStateChanged,
		NotifyThreadSwitched,
		NotifyProcessSwitched,
	}

	for _, n := range data {
		t.Run(n.String(), func(t *testing.T) {
			sess := &fakeSession{active: true, snaps: twoThreads()}
			obs := &recordingObserver{}
			c := NewCoordinator(sess, NewTableModel(), WithObserver(obs))

			if req := c.Handle(n); req != RefreshRequested {
				t.Errorf("Handle(%v) = %v, want RefreshRequested", n, req)
			}
			if sess.fetches != 1 {
				t.Errorf("fetches = %d, want 1", sess.fetches)
			}
			if len(obs.outcomes) != 1 || obs.outcomes[0] != OutcomeLive {
				t.Errorf("outcomes = %v, want [live]", obs.outcomes)
			}
		})
	}
}

func TestHandle_ThemeChangeDoesNotFetch(t *testing.T) {
	sess := &fakeSession{active: true, snaps: twoThreads()}
	surf := &fakeSurface{}
	c := NewCoordinator(sess, NewTableModel(), WithSurface(surf))

	if req := c.Handle(NotifyThemeChanged); req != RestyleRequested {
		t.Errorf("Handle(themeChanged) = %v, want RestyleRequested", req)
	}
	if sess.fetches != 0 {
		t.Errorf("fetches = %d, want 0", sess.fetches)
	}
	if surf.restyles != 1 {
		t.Errorf("restyles = %d, want 1", surf.restyles)
	}
	if surf.toggles != 0 {
		t.Errorf("surface toggled %d times, want 0", surf.toggles)
	}
}

func TestRoute_Unknown(t *testing.T) {
	if got := Route(Notification(99)); got != RequestNone {
		t.Errorf("Route(99) = %v, want RequestNone", got)
	}
	if Notification(99).String() != "unknown" {
		t.Errorf("String() = %q, want unknown", Notification(99).String())
	}
}
