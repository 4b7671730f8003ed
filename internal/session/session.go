package session

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"fitness-planner/internal/goal"
	"fitness-planner/internal/inactivity"
	"fitness-planner/internal/schedule"
)

// Options configures a Session.
type Options struct {
	Runner schedule.Runner

	GoalInterval     time.Duration
	GoalMaxIncrement int
	GoalRand         func(n int) int

	InactivityThreshold time.Duration
	InactivityInterval  time.Duration
	Now                 func() time.Time

	// Notify receives messages produced by timers.
	Notify func(text string)
	IDs    func() string
	Logger *zap.Logger
}

// Session bundles the store with the timers that belong to one user.
type Session struct {
	*Store
	goal    *goal.Simulator
	monitor *inactivity.Monitor
	once    sync.Once
}

func New(opts Options) (*Session, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	notify := opts.Notify
	if notify == nil {
		notify = func(string) {}
	}

	sim := goal.NewSimulator(opts.Runner, goal.Options{
		Interval:     opts.GoalInterval,
		MaxIncrement: opts.GoalMaxIncrement,
		Rand:         opts.GoalRand,
		Notify: func(n goal.Notification, s goal.State) {
			if n != goal.NotifyGoalSet {
				notify(n.Message(s))
			}
		},
		Logger: log.Named("goal"),
	})

	monitor, err := inactivity.Start(opts.Runner, inactivity.Options{
		Threshold:     opts.InactivityThreshold,
		CheckInterval: opts.InactivityInterval,
		Now:           opts.Now,
		OnAlert: func(inactivity.State) {
			notify("You've been inactive for a while. Time to move!")
		},
		Logger: log.Named("inactivity"),
	})
	if err != nil {
		return nil, err
	}

	return &Session{
		Store:   NewStore(log.Named("store"), opts.IDs),
		goal:    sim,
		monitor: monitor,
	}, nil
}

// SetGoal starts progress towards a new goal, cancelling the previous one.
func (s *Session) SetGoal(steps int) error {
	return s.goal.SetGoal(steps)
}

// Goal returns the goal progress and whether it is still advancing.
func (s *Session) Goal() (goal.State, bool) {
	return s.goal.State()
}

// RecordActivity resets the inactivity timer and clears any alert.
func (s *Session) RecordActivity() inactivity.State {
	return s.monitor.RecordActivity()
}

func (s *Session) Inactivity() inactivity.State {
	return s.monitor.State()
}

func (s *Session) InactivityThreshold() time.Duration {
	return s.monitor.Threshold()
}

// Close stops every timer owned by the session.
func (s *Session) Close() {
	s.once.Do(func() {
		s.goal.Stop()
		s.monitor.Stop()
	})
}
