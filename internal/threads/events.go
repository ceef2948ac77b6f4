package threads

// Notification is a change signal published by the debug session or the
// display configuration.
type Notification int

const (
	NotifyRefreshAll Notification = iota
	NotifyRegistersChanged
	NotifyDebugOperationStateChanged
	NotifyThreadSwitched
	NotifyProcessSwitched
	// NotifyThemeChanged is a font or colour change. It affects rendering only.
	NotifyThemeChanged
)

var notificationNames = map[Notification]string{
	NotifyRefreshAll:                 "refreshAll",
	NotifyRegistersChanged:           "registersChanged",
	NotifyDebugOperationStateChanged: "debugOperationStateChanged",
	NotifyThreadSwitched:             "threadSwitched",
	NotifyProcessSwitched:            "processSwitched",
	NotifyThemeChanged:               "themeChanged",
}

func (n Notification) String() string {
	if name, ok := notificationNames[n]; ok {
		return name
	}
	return "unknown"
}

// Request is the internal event a notification collapses into.
type Request int

const (
	RequestNone Request = iota
	RefreshRequested
	RestyleRequested
)

// Route maps a notification onto the single internal event it stands for.
// Every data-affecting notification becomes RefreshRequested.
func Route(n Notification) Request {
	switch n {
	case NotifyRefreshAll,
		NotifyRegistersChanged,
		NotifyDebugOperationStateChanged,
		NotifyThreadSwitched,
		NotifyProcessSwitched:
		return RefreshRequested
	case NotifyThemeChanged:
		return RestyleRequested
	default:
		return RequestNone
	}
}
