// Package inactivity raises an alert when no activity is recorded for too long.
package inactivity

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"fitness-planner/internal/schedule"
)

// State holds the last recorded activity and the alert flag.
type State struct {
	LastActivity time.Time
	Alert        bool
}

// Record marks activity at now and clears any alert.
func Record(now time.Time) State {
	return State{LastActivity: now}
}

// Check sets the alert once more than threshold has passed since the last activity.
// raised is true only on the check that turns the alert on.
func Check(s State, now time.Time, threshold time.Duration) (next State, raised bool) {
	if s.Alert {
		return s, false
	}
	if now.Sub(s.LastActivity) > threshold {
		s.Alert = true
		return s, true
	}
	return s, false
}

// Options configures a Monitor.
type Options struct {
	Threshold     time.Duration
	CheckInterval time.Duration
	Now           func() time.Time
	// OnAlert is called once each time the alert turns on.
	OnAlert func(State)
	Logger  *zap.Logger
}

// Monitor owns one periodic inactivity check.
type Monitor struct {
	mu     sync.Mutex
	opts   Options
	log    *zap.Logger
	state  State
	handle schedule.Handle
}

// Start records activity now and begins periodic checks.
func Start(runner schedule.Runner, opts Options) (*Monitor, error) {
	if opts.Threshold <= 0 {
		opts.Threshold = 24 * time.Hour
	}
	if opts.CheckInterval <= 0 {
		opts.CheckInterval = time.Minute
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.OnAlert == nil {
		opts.OnAlert = func(State) {}
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	m := &Monitor{opts: opts, log: log, state: Record(opts.Now())}
	m.mu.Lock()
	defer m.mu.Unlock()
	handle, err := runner.Every(opts.CheckInterval, m.check)
	if err != nil {
		return nil, err
	}
	m.handle = handle
	return m, nil
}

// RecordActivity resets the timestamp and clears the alert.
func (m *Monitor) RecordActivity() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Record(m.opts.Now())
	return m.state
}

func (m *Monitor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Monitor) Threshold() time.Duration {
	return m.opts.Threshold
}

// Stop cancels the periodic check.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.handle != nil {
		m.handle.Stop()
		m.handle = nil
	}
}

func (m *Monitor) check() {
	m.mu.Lock()
	if m.handle == nil {
		m.mu.Unlock()
		return
	}
	next, raised := Check(m.state, m.opts.Now(), m.opts.Threshold)
	m.state = next
	m.mu.Unlock()

	if raised {
		m.log.Info("inactivity alert", zap.Time("last_activity", next.LastActivity))
		m.opts.OnAlert(next)
	}
}
