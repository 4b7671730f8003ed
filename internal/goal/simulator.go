package goal

import (
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"fitness-planner/internal/schedule"
)

// Options configures a Simulator.
type Options struct {
	Interval     time.Duration
	MaxIncrement int
	// Rand returns a value in [0, n). Defaults to math/rand.
	Rand   func(n int) int
	Notify func(Notification, State)
	Logger *zap.Logger
}

// Simulator drives one goal with at most one active tick process.
type Simulator struct {
	mu     sync.Mutex
	runner schedule.Runner
	opts   Options
	log    *zap.Logger

	state  State
	handle schedule.Handle
	gen    uint64
}

func NewSimulator(runner schedule.Runner, opts Options) *Simulator {
	if opts.Interval <= 0 {
		opts.Interval = 5 * time.Second
	}
	if opts.MaxIncrement <= 0 {
		opts.MaxIncrement = 1000
	}
	if opts.Rand == nil {
		opts.Rand = rand.Intn
	}
	if opts.Notify == nil {
		opts.Notify = func(Notification, State) {}
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Simulator{runner: runner, opts: opts, log: log}
}

// SetGoal replaces the current goal, resets progress and restarts the tick process.
func (s *Simulator) SetGoal(goal int) error {
	next, err := New(goal)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.stopLocked()
	s.gen++
	gen := s.gen
	s.state = next
	handle, err := s.runner.Every(s.opts.Interval, func() { s.tick(gen) })
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.handle = handle
	s.mu.Unlock()

	s.log.Info("goal set", zap.Int("goal", goal))
	s.opts.Notify(NotifyGoalSet, next)
	return nil
}

// State returns the current progress and whether a tick process is running.
func (s *Simulator) State() (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.handle != nil
}

// Stop cancels the tick process, keeping the progress reached so far.
func (s *Simulator) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Simulator) stopLocked() {
	if s.handle != nil {
		s.handle.Stop()
		s.handle = nil
	}
}

func (s *Simulator) tick(gen uint64) {
	s.mu.Lock()
	// A tick from a replaced goal may still be in flight.
	if gen != s.gen || s.handle == nil {
		s.mu.Unlock()
		return
	}
	next, notes := Advance(s.state, s.opts.Rand(s.opts.MaxIncrement))
	s.state = next
	if next.Reached {
		s.stopLocked()
	}
	s.mu.Unlock()

	for _, note := range notes {
		s.log.Info("goal notification", zap.String("message", note.Message(next)), zap.Int("progress", next.Progress))
		s.opts.Notify(note, next)
	}
}
