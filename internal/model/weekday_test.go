package model

import (
	"errors"
	"slices"
	"testing"
)

func TestParseWeekday(t *testing.T) {
	cases := map[string]Weekday{
		"Mon":        Monday,
		"tue":        Tuesday,
		" WEDNESDAY": Wednesday,
		"sun":        Sunday,
	}
	for raw, want := range cases {
		got, err := ParseWeekday(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if got != want {
			t.Fatalf("parse %q: expected %s, got %s", raw, want, got)
		}
	}
	if _, err := ParseWeekday("funday"); err == nil {
		t.Fatalf("expected error for unknown weekday")
	}
}

func TestSortDaysCalendarOrder(t *testing.T) {
	got := SortDays([]Weekday{Sunday, Monday, Friday, Monday})
	want := []Weekday{Monday, Friday, Sunday}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("7:05")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if tod.String() != "07:05" {
		t.Fatalf("expected 07:05, got %s", tod)
	}
	for _, bad := range []string{"", "24:00", "12:60", "noon", "12-30"} {
		if _, err := ParseTimeOfDay(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestChallengeMatchesIgnoresCase(t *testing.T) {
	c := Challenge{Name: "Run5k"}
	if !c.Matches("run5K") {
		t.Fatalf("expected case-insensitive match")
	}
	if c.Matches("run") {
		t.Fatalf("expected exact name match only")
	}
}

func TestParsePlan(t *testing.T) {
	if p, ok := ParsePlan("Premium"); !ok || p != PlanPremium {
		t.Fatalf("expected premium, got %q %v", p, ok)
	}
	if _, ok := ParsePlan("gold"); ok {
		t.Fatalf("expected unknown plan")
	}
	if PlanBasic.Info().Price != 9.99 {
		t.Fatalf("unexpected basic price")
	}
}

func TestParseFitnessGoalAndApp(t *testing.T) {
	for _, raw := range []string{"lose_weight", "Lose Weight", "lose-weight"} {
		if g, err := ParseFitnessGoal(raw); err != nil || g != GoalLoseWeight {
			t.Fatalf("ParseFitnessGoal(%q) = %q, %v", raw, g, err)
		}
	}
	if _, err := ParseFitnessGoal("get rich"); !errors.Is(err, ErrValidationRejected) {
		t.Fatalf("expected rejection, got %v", err)
	}
	if got := GoalImproveEndurance.Title(); got != "Improve Endurance" {
		t.Fatalf("unexpected title %q", got)
	}

	for _, raw := range []string{"apple health", "Apple_Health", "applehealth"} {
		if app, err := ParseApp(raw); err != nil || app != AppAppleHealth {
			t.Fatalf("ParseApp(%q) = %q, %v", raw, app, err)
		}
	}
	if _, err := ParseApp("garmin"); !errors.Is(err, ErrValidationRejected) {
		t.Fatalf("expected rejection, got %v", err)
	}
}
