package threads

type fakeSession struct {
	active     bool
	inProgress bool
	snaps      []Snapshot

	fetches  int
	switched []int64
}

func (f *fakeSession) SessionActive() bool       { return f.active }
func (f *fakeSession) OperationInProgress() bool { return f.inProgress }

func (f *fakeSession) ProcessThreads(target int64) []Snapshot {
	f.fetches++
	if target != CurrentProcess {
		return nil
	}
	out := make([]Snapshot, len(f.snaps))
	copy(out, f.snaps)
	return out
}

func (f *fakeSession) SetActiveThread(pid int64) {
	f.switched = append(f.switched, pid)
}

type fakeSurface struct {
	enabled  *bool
	toggles  int
	restyles int
}

func (f *fakeSurface) SetEnabled(enabled bool) {
	f.enabled = &enabled
	f.toggles++
}

func (f *fakeSurface) Restyle() { f.restyles++ }

type recordingObserver struct {
	outcomes    []Outcome
	activations []ActivationResult
}

func (r *recordingObserver) ObserveRefresh(o Outcome, _ Delta, _ int) {
	r.outcomes = append(r.outcomes, o)
}

func (r *recordingObserver) ObserveActivation(a ActivationResult) {
	r.activations = append(r.activations, a)
}

func twoThreads() []Snapshot {
	return []Snapshot{
		{PID: 100, Status: StatusStopped, Path: "/bin/a", Current: false},
		{PID: 101, Status: StatusRunning, Path: "/bin/b", Current: true},
	}
}
