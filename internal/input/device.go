package input

import (
	"fmt"
	"sync"
)

// DeviceEventKind classifies a device notification.
type DeviceEventKind uint8

const (
	DeviceConnected DeviceEventKind = iota
	DeviceDisconnected
	ButtonPressed
	ButtonReleased
)

func (k DeviceEventKind) String() string {
	switch k {
	case DeviceConnected:
		return "connected"
	case DeviceDisconnected:
		return "disconnected"
	case ButtonPressed:
		return "pressed"
	case ButtonReleased:
		return "released"
	}
	return fmt.Sprintf("DeviceEventKind(%d)", k)
}

// Button names a device button, e.g. "mouse1" or "a" for a keyboard key.
type Button string

// DeviceEvent is a connection or button notification from an input device.
type DeviceEvent struct {
	Kind   DeviceEventKind
	Device string
	Button Button // empty for connection events
}

// DeviceSource is a polled device backend. Poll never blocks and returns the
// events resolved for the current tick, oldest first.
type DeviceSource interface {
	Poll() []DeviceEvent
}

// NoDevices is a DeviceSource that never reports anything.
type NoDevices struct{}

func (NoDevices) Poll() []DeviceEvent { return nil }

// DeviceQueue collects events pushed by backend goroutines until the tick
// loop polls them.
type DeviceQueue struct {
	mu     sync.Mutex
	events []DeviceEvent
}

// NewDeviceQueue creates an empty queue.
func NewDeviceQueue() *DeviceQueue {
	return &DeviceQueue{}
}

// Push appends an event. Safe to call from any goroutine.
func (q *DeviceQueue) Push(ev DeviceEvent) {
	q.mu.Lock()
	q.events = append(q.events, ev)
	q.mu.Unlock()
}

// Poll drains and returns everything pushed since the previous Poll.
func (q *DeviceQueue) Poll() []DeviceEvent {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}

// ButtonState tracks which buttons are held and which went down this tick.
type ButtonState struct {
	held        map[Button]bool
	justPressed map[Button]bool
}

// NewButtonState creates a state with nothing held.
func NewButtonState() *ButtonState {
	return &ButtonState{
		held:        make(map[Button]bool),
		justPressed: make(map[Button]bool),
	}
}

// Begin starts a new tick, forgetting last tick's edges.
func (s *ButtonState) Begin() {
	clear(s.justPressed)
}

// Apply folds one device event into the state.
func (s *ButtonState) Apply(ev DeviceEvent) {
	switch ev.Kind {
	case ButtonPressed:
		s.held[ev.Button] = true
		s.justPressed[ev.Button] = true
	case ButtonReleased:
		delete(s.held, ev.Button)
	case DeviceDisconnected:
		clear(s.held)
	}
}

// JustPressed reports whether b went down during the current tick.
func (s *ButtonState) JustPressed(b Button) bool { return s.justPressed[b] }

// Pressed reports whether b is currently held.
func (s *ButtonState) Pressed(b Button) bool { return s.held[b] }
