package threads

import "testing"

func TestTranslate_KnownCodes(t *testing.T) {
	tests := []struct {
		code Status
		want string
	}{
		{StatusStopped, "Stopped"},
		{StatusRunning, "Running"},
		{StatusSleeping, "Sleeping"},
		{StatusZombie, "Zombie"},
		{StatusDead, "Dead"},
		{StatusRaisedEvent, "Raised event"},
		{StatusUnknown, UnknownStatusLabel},
	}

	for _, tt := range tests {
		got := Translate(tt.code)
		if got != tt.want {
			t.Errorf("Translate(%q) = %q, want %q", byte(tt.code), got, tt.want)
		}
		if again := Translate(tt.code); again != got {
			t.Errorf("Translate(%q) not stable: %q then %q", byte(tt.code), got, again)
		}
	}
}

func TestTranslate_EveryOtherByteIsUnknown(t *testing.T) {
	known := map[Status]bool{
		StatusStopped:     true,
		StatusRunning:     true,
		StatusSleeping:    true,
		StatusZombie:      true,
		StatusDead:        true,
		StatusRaisedEvent: true,
	}

	for b := 0; b < 256; b++ {
		code := Status(b)
		if known[code] {
			continue
		}
		if got := Translate(code); got != UnknownStatusLabel {
			t.Errorf("Translate(%d) = %q, want %q", b, got, UnknownStatusLabel)
		}
	}
}

func TestStatus_MarshalText(t *testing.T) {
	b, err := StatusZombie.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error: %v", err)
	}
	if string(b) != "Zombie" {
		t.Errorf("MarshalText() = %q, want %q", b, "Zombie")
	}
}
