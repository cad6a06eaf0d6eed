// Package schedule runs startup work once and then per-tick systems at a
// fixed wall-clock period, in a fixed phase order.
package schedule

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
)

// State is the scheduler's lifecycle position.
type State uint8

const (
	StateStartup State = iota // startup work has not run yet
	StateUpdate               // every later pass
)

type startupFunc struct {
	name string
	fn   func() error
}

// Scheduler executes startup functions exactly once, then System updates in
// phase order. Systems sharing a phase run in registration order.
type Scheduler struct {
	period  time.Duration
	startup []startupFunc
	started int // startup functions that have completed
	systems []System
	sorted  bool
	state   State
	ticks   uint64
	log     *zap.Logger
}

// Period converts a tick rate in Hz into the spacing between ticks.
func Period(hz float64) time.Duration {
	p := time.Duration(float64(time.Second) / hz)
	if !(hz > 0) || p <= 0 {
		panic(fmt.Sprintf("schedule: tick rate %v does not give a positive period", hz))
	}
	return p
}

// NewScheduler creates a scheduler ticking at tickRateHz.
func NewScheduler(tickRateHz float64, log *zap.Logger) *Scheduler {
	return &Scheduler{
		period:  Period(tickRateHz),
		systems: make([]System, 0, 16),
		log:     log,
	}
}

// AddStartup registers a function for the Startup pass.
func (s *Scheduler) AddStartup(name string, fn func() error) {
	s.startup = append(s.startup, startupFunc{name: name, fn: fn})
}

// Add registers a per-tick system.
func (s *Scheduler) Add(sys System) {
	s.systems = append(s.systems, sys)
	s.sorted = false
}

// State reports whether Startup has run.
func (s *Scheduler) State() State { return s.state }

// Ticks returns the number of completed Update passes.
func (s *Scheduler) Ticks() uint64 { return s.ticks }

// Period returns the configured tick spacing.
func (s *Scheduler) Period() time.Duration { return s.period }

// Systems returns the update systems in execution order.
func (s *Scheduler) Systems() []System {
	s.ensureSorted()
	out := make([]System, len(s.systems))
	copy(out, s.systems)
	return out
}

// Startup runs every startup function once and moves to StateUpdate.
// After a failure, the next call resumes at the function that failed;
// functions that already succeeded are not run again.
func (s *Scheduler) Startup() error {
	if s.state != StateStartup {
		return nil
	}
	for ; s.started < len(s.startup); s.started++ {
		st := s.startup[s.started]
		if err := st.fn(); err != nil {
			return fmt.Errorf("startup %s: %w", st.name, err)
		}
		s.log.Debug("startup done", zap.String("step", st.name))
	}
	s.state = StateUpdate
	return nil
}

// Step runs one Update pass. Startup runs first if it has not yet.
// Each system runs to completion before the next starts; the first error
// aborts the pass.
func (s *Scheduler) Step() error {
	if err := s.Startup(); err != nil {
		return err
	}
	s.ensureSorted()
	t := Tick{N: s.ticks + 1, Period: s.period}
	for _, sys := range s.systems {
		if err := sys.Update(t); err != nil {
			return fmt.Errorf("tick %d: %s: %w", t.N, sys.Name(), err)
		}
	}
	s.ticks = t.N
	return nil
}

// Run executes Startup, then Step once per period until ctx is cancelled.
// A tick that overruns its slot delays the next one instead of skipping it.
// Run returns nil on cancellation and the first system error otherwise.
func (s *Scheduler) Run(ctx context.Context) error {
	if err := s.Startup(); err != nil {
		return err
	}
	s.log.Info("loop started", zap.Duration("period", s.period))

	timer := time.NewTimer(0)
	defer timer.Stop()
	<-timer.C

	next := time.Now()
	for {
		if ctx.Err() != nil {
			return s.stopped()
		}
		if err := s.Step(); err != nil {
			return err
		}

		next = next.Add(s.period)
		wait := time.Until(next)
		if wait <= 0 {
			// Overran: start the next tick now and measure from here.
			next = time.Now()
			continue
		}
		timer.Reset(wait)
		select {
		case <-ctx.Done():
			return s.stopped()
		case <-timer.C:
		}
	}
}

func (s *Scheduler) stopped() error {
	s.log.Info("loop stopped", zap.Uint64("ticks", s.ticks))
	return nil
}

func (s *Scheduler) ensureSorted() {
	if !s.sorted {
		sort.SliceStable(s.systems, func(i, j int) bool {
			return s.systems[i].Phase() < s.systems[j].Phase()
		})
		s.sorted = true
	}
}
