// Package windowtest provides a scripted window for frame loop tests. It
// satisfies window.Window without importing it, so tests stay free of cgo.
package windowtest

import (
	"fmt"
	"unsafe"

	"github.com/Faultbox/learngl/internal/engine/input"
)

// Window is a fake window. Frames are counted by SwapBuffers; actions
// scheduled for frame N run inside the PollEvents that follows the Nth swap,
// the same point at which a real backend dispatches callbacks.
type Window struct {
	// MaxFrames closes the window after this many swaps so a broken loop
	// cannot hang a test. Zero means 1000.
	MaxFrames int

	frames      int
	shouldClose bool
	width       int
	height      int
	keys        *input.State
	onResize    func(width, height int)
	script      map[int][]func()
	events      []string
	closed      int
}

// New returns a fake window with the given framebuffer size.
func New(width, height int) *Window {
	return &Window{
		width:  width,
		height: height,
		keys:   input.New(),
		script: make(map[int][]func()),
	}
}

// At schedules fn to run during the PollEvents after frame swaps.
func (w *Window) At(frame int, fn func()) {
	w.script[frame] = append(w.script[frame], fn)
}

// PressAt holds k down starting with the poll after frame.
func (w *Window) PressAt(frame int, k input.Key) {
	w.At(frame, func() {
		w.events = append(w.events, "key "+k.String())
		w.keys.Press(k)
	})
}

// ReleaseAt lets go of k during the poll after frame.
func (w *Window) ReleaseAt(frame int, k input.Key) {
	w.At(frame, func() {
		w.events = append(w.events, "release "+k.String())
		w.keys.Release(k)
	})
}

// ResizeAt resizes the framebuffer during the poll after frame.
func (w *Window) ResizeAt(frame, width, height int) {
	w.At(frame, func() {
		w.width, w.height = width, height
		w.events = append(w.events, fmt.Sprintf("resize %dx%d", width, height))
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})
}

// CloseAt requests close during the poll after frame, like a window manager
// close button.
func (w *Window) CloseAt(frame int) {
	w.At(frame, func() { w.shouldClose = true })
}

func (w *Window) ShouldClose() bool { return w.shouldClose }

func (w *Window) SetShouldClose(v bool) {
	w.events = append(w.events, fmt.Sprintf("should-close %v", v))
	w.shouldClose = v
}

func (w *Window) KeyDown(k input.Key) bool { return w.keys.Down(k) }

func (w *Window) KeyPressed(k input.Key) bool { return w.keys.Pressed(k) }

func (w *Window) SetResizeCallback(fn func(int, int)) { w.onResize = fn }

func (w *Window) FramebufferSize() (int, int) { return w.width, w.height }

func (w *Window) SwapBuffers() {
	w.frames++
	w.events = append(w.events, "swap")
	limit := w.MaxFrames
	if limit == 0 {
		limit = 1000
	}
	if w.frames >= limit {
		w.shouldClose = true
	}
}

func (w *Window) PollEvents() {
	w.keys.BeginFrame()
	w.events = append(w.events, "poll")
	for _, fn := range w.script[w.frames] {
		fn()
	}
	delete(w.script, w.frames)
}

func (w *Window) ProcAddress(string) unsafe.Pointer { return nil }

func (w *Window) Close() { w.closed++ }

// Frames returns the number of completed frames.
func (w *Window) Frames() int { return w.frames }

// Events returns the ordered log of swaps, polls and scripted actions.
func (w *Window) Events() []string { return w.events }

// Closed reports how many times Close was called.
func (w *Window) Closed() int { return w.closed }

// Log appends an entry to the event log, letting tests interleave their
// own markers with the window's.
func (w *Window) Log(entry string) { w.events = append(w.events, entry) }
