package session

import (
	"fmt"
	"slices"
	"strings"

	"fitness-planner/internal/model"
)

func addReminder(s State, id, exercise, at string, days []model.Weekday) (State, model.Reminder, error) {
	exercise = strings.TrimSpace(exercise)
	at = strings.TrimSpace(at)
	days = model.SortDays(days)
	if exercise == "" || at == "" || len(days) == 0 {
		return s, model.Reminder{}, fmt.Errorf("reminder needs exercise, time and days: %w", model.ErrValidationRejected)
	}
	tod, err := model.ParseTimeOfDay(at)
	if err != nil {
		return s, model.Reminder{}, fmt.Errorf("%v: %w", err, model.ErrValidationRejected)
	}

	r := model.Reminder{ID: id, Exercise: exercise, Time: tod, Days: days}
	next := s
	next.Reminders = append(slices.Clip(s.Reminders), r)
	next.Form.Exercise = ""
	next.Form.Time = ""
	next.Form.Days = nil
	return next, r, nil
}

func deleteReminder(s State, id string) (State, model.Reminder, bool) {
	i := slices.IndexFunc(s.Reminders, func(r model.Reminder) bool { return r.ID == id })
	if i < 0 {
		return s, model.Reminder{}, false
	}
	removed := s.Reminders[i]
	next := s
	next.Reminders = slices.Delete(slices.Clone(s.Reminders), i, i+1)
	return next, removed, true
}

func toggleDay(s State, day model.Weekday) (State, error) {
	if !day.Valid() {
		return s, fmt.Errorf("unknown weekday %q: %w", day, model.ErrValidationRejected)
	}
	next := s
	if slices.Contains(s.Form.Days, day) {
		next.Form.Days = slices.DeleteFunc(slices.Clone(s.Form.Days), func(d model.Weekday) bool { return d == day })
	} else {
		next.Form.Days = model.SortDays(append(slices.Clone(s.Form.Days), day))
	}
	return next, nil
}
