package threads

// VisibilityGate defers refreshes while the thread view is hidden. A refused
// attempt is remembered and replayed once the view becomes visible again.
type VisibilityGate struct {
	visible bool
	pending bool
	retry   func()
}

// NewVisibilityGate returns a gate in the given visibility.
func NewVisibilityGate(visible bool) *VisibilityGate {
	return &VisibilityGate{visible: visible}
}

// Bind sets the callback replayed when a deferred refresh becomes possible.
func (g *VisibilityGate) Bind(retry func()) {
	g.retry = retry
}

// AttemptRefresh implements Gate.
func (g *VisibilityGate) AttemptRefresh(any) bool {
	if g.visible {
		g.pending = false
		return true
	}
	g.pending = true
	return false
}

// SetVisible updates visibility. Becoming visible with a deferred refresh
// outstanding replays it once.
func (g *VisibilityGate) SetVisible(visible bool) {
	g.visible = visible
	if !visible || !g.pending {
		return
	}
	g.pending = false
	if g.retry != nil {
		g.retry()
	}
}

// Visible reports the current visibility.
func (g *VisibilityGate) Visible() bool {
	return g.visible
}

// Pending reports whether a refresh was refused and not yet replayed.
func (g *VisibilityGate) Pending() bool {
	return g.pending
}
