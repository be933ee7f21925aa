package input

import "testing"

func TestPressRelease(t *testing.T) {
	s := New()

	s.Press(KeyEscape)
	if !s.Down(KeyEscape) || !s.Pressed(KeyEscape) {
		t.Fatal("escape should be down and pressed")
	}

	s.BeginFrame()
	if !s.Down(KeyEscape) {
		t.Error("held key should stay down across frames")
	}
	if s.Pressed(KeyEscape) {
		t.Error("press edge should clear on BeginFrame")
	}

	// Auto-repeat while held is not a new press.
	s.Press(KeyEscape)
	if s.Pressed(KeyEscape) {
		t.Error("repeat should not register as a new press")
	}

	s.Release(KeyEscape)
	if s.Down(KeyEscape) {
		t.Error("released key should not be down")
	}
}

func TestKeyNoneIgnored(t *testing.T) {
	s := New()
	s.Press(KeyNone)
	if s.Down(KeyNone) || s.Pressed(KeyNone) {
		t.Error("KeyNone must never be reported")
	}
}

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{KeyEscape, "escape"},
		{KeyF1, "f1"},
		{KeyNone, "none"},
		{Key(999), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.key.String(); got != tt.want {
			t.Errorf("Key(%d).String() = %q, want %q", int(tt.key), got, tt.want)
		}
	}
}
