// Package input tracks keyboard state independently of the window backend.
package input

// Key identifies a keyboard key. Backends translate their native codes.
type Key int

const (
	KeyNone Key = iota
	KeyEscape
	KeyF1
)

var keyNames = map[Key]string{
	KeyNone:   "none",
	KeyEscape: "escape",
	KeyF1:     "f1",
}

func (k Key) String() string {
	if n, ok := keyNames[k]; ok {
		return n
	}
	return "unknown"
}

// State is the set of keys currently held down plus the keys that went down
// since the last BeginFrame.
type State struct {
	down    map[Key]bool
	pressed map[Key]bool
}

// New creates an empty key state.
func New() *State {
	return &State{
		down:    make(map[Key]bool),
		pressed: make(map[Key]bool),
	}
}

// BeginFrame forgets edge-triggered presses. Call it before polling events.
func (s *State) BeginFrame() {
	clear(s.pressed)
}

// Press records k going down. KeyNone is ignored.
func (s *State) Press(k Key) {
	if k == KeyNone {
		return
	}
	if !s.down[k] {
		s.pressed[k] = true
	}
	s.down[k] = true
}

// Release records k going up.
func (s *State) Release(k Key) {
	delete(s.down, k)
}

// Down reports whether k is held.
func (s *State) Down(k Key) bool {
	return s.down[k]
}

// Pressed reports whether k went down since the last BeginFrame.
func (s *State) Pressed(k Key) bool {
	return s.pressed[k]
}
