// Package session holds the per-user reminder, challenge and subscription state.
//
// State is a plain value. Every user action is a Command applied by Apply, which
// returns the next State without mutating the previous one. Store serialises
// commands for one session; Session adds the goal and inactivity timers.
package session

import (
	"slices"

	"fitness-planner/internal/model"
)

// Form is the pending input that has not been submitted yet.
type Form struct {
	Exercise string
	Time     string
	Days     []model.Weekday

	ChallengeName        string
	ChallengeDescription string

	JoinName string
}

// State is everything one session owns.
type State struct {
	Reminders  []model.Reminder
	Challenges []model.Challenge
	Form       Form

	Plan model.Plan
	// PendingPlan is the plan awaiting payment confirmation, if any.
	PendingPlan model.Plan
}

func NewState() State {
	return State{Plan: model.PlanFree}
}

// Clone returns a deep copy safe to hand to renderers.
func (s State) Clone() State {
	out := s
	out.Reminders = make([]model.Reminder, len(s.Reminders))
	for i, r := range s.Reminders {
		r.Days = slices.Clone(r.Days)
		out.Reminders[i] = r
	}
	out.Challenges = slices.Clone(s.Challenges)
	out.Form.Days = slices.Clone(s.Form.Days)
	return out
}

// Reminder looks up a reminder by identifier.
func (s State) Reminder(id string) (model.Reminder, bool) {
	i := slices.IndexFunc(s.Reminders, func(r model.Reminder) bool { return r.ID == id })
	if i < 0 {
		return model.Reminder{}, false
	}
	return s.Reminders[i], true
}

// FindChallenge returns the first challenge whose name matches ignoring case.
func (s State) FindChallenge(name string) (model.Challenge, bool) {
	i := slices.IndexFunc(s.Challenges, func(c model.Challenge) bool { return c.Matches(name) })
	if i < 0 {
		return model.Challenge{}, false
	}
	return s.Challenges[i], true
}
