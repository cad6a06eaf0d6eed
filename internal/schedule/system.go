package schedule

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput     Phase = iota // 0: keyboard, channel and device polling
	PhaseClear                  // 1: reset the canvas
	PhaseComposite              // 2: draw entities into the canvas
	PhaseDisplay                // 3: flush the canvas to the output device
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhaseClear:
		return "clear"
	case PhaseComposite:
		return "composite"
	case PhaseDisplay:
		return "display"
	}
	return "unknown"
}

// Tick describes the Update pass being executed.
type Tick struct {
	N      uint64        // 1 for the first Update pass
	Period time.Duration // configured spacing between passes
}

// System is the interface every per-tick system implements.
type System interface {
	Name() string
	Phase() Phase
	Update(t Tick) error
}

type funcSystem struct {
	name  string
	phase Phase
	fn    func(Tick) error
}

// Func adapts a plain function into a System.
func Func(name string, phase Phase, fn func(Tick) error) System {
	return &funcSystem{name: name, phase: phase, fn: fn}
}

func (s *funcSystem) Name() string        { return s.name }
func (s *funcSystem) Phase() Phase        { return s.phase }
func (s *funcSystem) Update(t Tick) error { return s.fn(t) }
