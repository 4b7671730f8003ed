package goal

import (
	"errors"
	"slices"
	"testing"

	"fitness-planner/internal/model"
)

func TestNewRejectsNonPositiveGoal(t *testing.T) {
	for _, g := range []int{0, -5} {
		if _, err := New(g); !errors.Is(err, model.ErrValidationRejected) {
			t.Fatalf("goal %d: expected validation error, got %v", g, err)
		}
	}
}

func TestAdvanceHalfwayFiresOnce(t *testing.T) {
	s, _ := New(1000)
	var fired []Notification
	for _, inc := range []int{200, 200, 200} {
		var notes []Notification
		s, notes = Advance(s, inc)
		fired = append(fired, notes...)
		if s.Progress >= 500 && !slices.Contains(fired, NotifyHalfway) {
			t.Fatalf("halfway not fired when progress reached %d", s.Progress)
		}
	}
	if s.Progress != 600 {
		t.Fatalf("expected progress 600, got %d", s.Progress)
	}

	count := 0
	for _, n := range fired {
		if n == NotifyHalfway {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected one halfway notification, got %d", count)
	}

	s, notes := Advance(s, 100)
	if len(notes) != 0 {
		t.Fatalf("expected no notification above halfway, got %v", notes)
	}
	if s.Progress != 700 {
		t.Fatalf("expected progress 700, got %d", s.Progress)
	}
}

func TestAdvanceHalfwayExactBoundary(t *testing.T) {
	s, _ := New(1000)
	s, notes := Advance(s, 500)
	if !slices.Equal(notes, []Notification{NotifyHalfway}) {
		t.Fatalf("expected halfway at exactly 50%%, got %v", notes)
	}
	if s.Percent() != 50 {
		t.Fatalf("expected 50%%, got %d", s.Percent())
	}
}

func TestAdvanceClampsAtGoal(t *testing.T) {
	s, _ := New(1000)
	s, _ = Advance(s, 900)
	s, notes := Advance(s, 999)
	if !slices.Equal(notes, []Notification{NotifyReached}) {
		t.Fatalf("expected reached notification, got %v", notes)
	}
	if s.Progress != 1000 || !s.Reached {
		t.Fatalf("expected clamped progress at goal, got %+v", s)
	}

	s, notes = Advance(s, 500)
	if len(notes) != 0 || s.Progress != 1000 {
		t.Fatalf("expected no-op after reaching goal, got %+v %v", s, notes)
	}
}

func TestAdvanceJumpStraightToGoalSkipsHalfway(t *testing.T) {
	s, _ := New(100)
	_, notes := Advance(s, 150)
	if !slices.Equal(notes, []Notification{NotifyReached}) {
		t.Fatalf("expected only reached notification, got %v", notes)
	}
}

func TestAdvanceIgnoresNegativeIncrement(t *testing.T) {
	s, _ := New(100)
	s, _ = Advance(s, 10)
	s, _ = Advance(s, -50)
	if s.Progress != 10 {
		t.Fatalf("expected progress 10, got %d", s.Progress)
	}
}
