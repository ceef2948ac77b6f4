package threads

// UnknownStatusLabel is the label for any status code outside the known set.
const UnknownStatusLabel = "Unknown status"

// Translate returns the human readable label for a status code.
func Translate(code Status) string {
	switch code {
	case StatusStopped:
		return "Stopped"
	case StatusRunning:
		return "Running"
	case StatusSleeping:
		return "Sleeping"
	case StatusZombie:
		return "Zombie"
	case StatusDead:
		return "Dead"
	case StatusRaisedEvent:
		return "Raised event"
	default:
		return UnknownStatusLabel
	}
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return Translate(s)
}

// MarshalText encodes the status as its label so JSON and YAML output stay
// readable.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(Translate(s)), nil
}
