// Package goal simulates step progress towards a daily goal.
package goal

import (
	"fmt"

	"fitness-planner/internal/model"
)

// Notification is a one-shot message produced by a progress transition.
type Notification int

const (
	NotifyGoalSet Notification = iota + 1
	NotifyHalfway
	NotifyReached
)

// Message renders the notification for the given state.
func (n Notification) Message(s State) string {
	switch n {
	case NotifyGoalSet:
		return fmt.Sprintf("New goal set: %d steps", s.Goal)
	case NotifyHalfway:
		return "You're halfway to your goal!"
	case NotifyReached:
		return "Congratulations! You've reached your goal!"
	default:
		return ""
	}
}

// State is the progress towards one goal.
type State struct {
	Goal     int
	Progress int
	Reached  bool
}

// New returns a fresh state for goal, which must be at least 1.
func New(goal int) (State, error) {
	if goal < 1 {
		return State{}, fmt.Errorf("goal must be at least 1, got %d: %w", goal, model.ErrValidationRejected)
	}
	return State{Goal: goal}, nil
}

// Advance adds increment to the progress. Reaching the goal clamps progress to the
// goal and makes further calls no-ops. The halfway notification fires only on the
// tick that crosses 50% without reaching the goal.
func Advance(s State, increment int) (State, []Notification) {
	if s.Goal < 1 || s.Reached {
		return s, nil
	}
	if increment < 0 {
		increment = 0
	}

	prev := s.Progress
	next := prev + increment
	if next >= s.Goal {
		s.Progress = s.Goal
		s.Reached = true
		return s, []Notification{NotifyReached}
	}

	s.Progress = next
	if 2*prev < s.Goal && 2*next >= s.Goal {
		return s, []Notification{NotifyHalfway}
	}
	return s, nil
}

// Percent returns progress as a whole percentage of the goal.
func (s State) Percent() int {
	if s.Goal < 1 {
		return 0
	}
	return s.Progress * 100 / s.Goal
}
