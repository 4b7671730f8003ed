package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"fitness-planner/internal/model"
	"fitness-planner/internal/repository"
)

func newDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := repository.NewDB(dsn, zap.NewNop())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func newRepo(t *testing.T) *repository.ActivityRepository {
	t.Helper()
	return repository.NewActivityRepository(newDB(t))
}

func TestWeekStart(t *testing.T) {
	cases := map[time.Time]string{
		time.Date(2024, 5, 8, 15, 0, 0, 0, time.UTC):  "2024-05-06",
		time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC):   "2024-05-06",
		time.Date(2024, 5, 12, 23, 0, 0, 0, time.UTC): "2024-05-06",
	}
	for now, want := range cases {
		if got := weekStart(now).Format("2006-01-02"); got != want {
			t.Fatalf("weekStart(%v): expected %s, got %s", now, want, got)
		}
	}
}

func TestBuildWeeklySumsAndAverages(t *testing.T) {
	start := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)
	activities := []model.Activity{
		{Date: start, DurationMin: 30, Calories: 300},
		{Date: start, DurationMin: 15, Calories: 100},
		{Date: start.AddDate(0, 0, 6), DurationMin: 20, Calories: 200},
		{Date: start.AddDate(0, 0, 7), DurationMin: 99, Calories: 999},
	}
	r := BuildWeekly(start, activities)

	if r.Sessions != 3 || r.TotalMinutes != 65 || r.TotalCalories != 600 {
		t.Fatalf("unexpected totals %+v", r)
	}
	if r.AvgMinutes != 9 || r.AvgCalories != 86 {
		t.Fatalf("unexpected averages %d %d", r.AvgMinutes, r.AvgCalories)
	}
	if r.Days[0].Minutes != 45 || r.Days[0].Sessions != 2 || r.Days[6].Day != model.Sunday {
		t.Fatalf("unexpected day totals %+v", r.Days)
	}
	if !strings.Contains(r.Summary(), "65 min") {
		t.Fatalf("expected totals in summary:\n%s", r.Summary())
	}
}

func TestBuildWeeklyStepsAndDistance(t *testing.T) {
	start := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)
	activities := []model.Activity{
		{Date: start, DurationMin: 60, Steps: 7000, DistanceKm: 5.5},
		{Date: start.AddDate(0, 0, 2), DurationMin: 30, Steps: 4000, DistanceKm: 3},
		{Date: start.AddDate(0, 0, 2), DurationMin: 20, Calories: 150},
	}
	r := BuildWeekly(start, activities)

	if r.TotalSteps != 11000 || r.TotalKm != 8.5 {
		t.Fatalf("unexpected totals %d steps %.1f km", r.TotalSteps, r.TotalKm)
	}
	if r.AvgSteps != 1571 || r.AvgKm != 1.2 {
		t.Fatalf("unexpected averages %d steps %.1f km", r.AvgSteps, r.AvgKm)
	}
	if r.Days[2].Steps != 4000 || r.Days[2].DistanceKm != 3 || r.Days[2].Sessions != 2 {
		t.Fatalf("unexpected Wednesday %+v", r.Days[2])
	}
	summary := r.Summary()
	if !strings.Contains(summary, "Mon — 60 min · 0 kcal · 7000 steps · 5.5 km") {
		t.Fatalf("expected per-day steps and distance:\n%s", summary)
	}
	if !strings.Contains(summary, "1571 steps · 1.2 km") {
		t.Fatalf("expected averages in summary:\n%s", summary)
	}
}

func TestEmptyWeekSummary(t *testing.T) {
	r := BuildWeekly(time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC), nil)
	if !strings.Contains(r.Summary(), "no activities") {
		t.Fatalf("unexpected summary:\n%s", r.Summary())
	}
}

func TestActivityServiceValidation(t *testing.T) {
	svc := NewActivityService(newRepo(t), zap.NewNop())
	user := &model.User{ID: 1}
	ctx := context.Background()

	bad := []ActivityInput{
		{Type: "", DurationMin: 10},
		{Type: "run", DurationMin: 0},
		{Type: "run", DurationMin: 10, Calories: -1},
		{Type: "walk", DurationMin: 10, Steps: -5},
		{Type: "walk", DurationMin: 10, DistanceKm: -0.5},
	}
	for _, in := range bad {
		if _, err := svc.Log(ctx, user, in); !errors.Is(err, model.ErrValidationRejected) {
			t.Fatalf("expected rejection for %+v, got %v", in, err)
		}
	}
}

func TestActivityLogAndWeeklyReport(t *testing.T) {
	repo := newRepo(t)
	activities := NewActivityService(repo, zap.NewNop())
	reports := NewReportService(repo)
	user := &model.User{ID: 7}
	ctx := context.Background()
	now := time.Date(2024, 5, 8, 18, 30, 0, 0, time.UTC)

	inputs := []ActivityInput{
		{Date: now, Type: "run", DurationMin: 40, Calories: 400, Notes: " evening "},
		{Date: now.AddDate(0, 0, -1), Type: "yoga", DurationMin: 20},
		{Date: now.AddDate(0, 0, -7), Type: "swim", DurationMin: 30, Calories: 250},
	}
	for _, in := range inputs {
		if _, err := activities.Log(ctx, user, in); err != nil {
			t.Fatalf("log: %v", err)
		}
	}

	recent, err := activities.Recent(ctx, user, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 3 || recent[0].Type != "run" || recent[0].Notes != "evening" {
		t.Fatalf("unexpected recent list %+v", recent)
	}

	thisWeek, err := reports.Weekly(ctx, *user, now, 0)
	if err != nil {
		t.Fatalf("weekly: %v", err)
	}
	if thisWeek.Sessions != 2 || thisWeek.TotalMinutes != 60 {
		t.Fatalf("unexpected current week %+v", thisWeek)
	}
	lastWeek, err := reports.Weekly(ctx, *user, now, 1)
	if err != nil {
		t.Fatalf("weekly: %v", err)
	}
	if lastWeek.Sessions != 1 || lastWeek.TotalCalories != 250 {
		t.Fatalf("unexpected previous week %+v", lastWeek)
	}

	if _, err := reports.Weekly(ctx, *user, now, MaxWeeksBack+1); !errors.Is(err, model.ErrValidationRejected) {
		t.Fatalf("expected rejection for old week, got %v", err)
	}
}

func TestProfileSetField(t *testing.T) {
	db := newDB(t)
	users := repository.NewUserRepository(db)
	svc := NewProfileService(users, repository.NewConnectionRepository(db), zap.NewNop())
	ctx := context.Background()

	user, err := users.UpsertFromTelegram(ctx, 42, 42, "Ann", "ann", time.Now())
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	updates := map[string]string{
		"name":   "Ann Lee",
		"email":  "ann@example.com",
		"age":    "31",
		"weight": "62,5",
		"height": "170",
		"goal":   "improve endurance",
	}
	for _, field := range ProfileFields {
		if _, err := svc.SetField(ctx, user, field, updates[field]); err != nil {
			t.Fatalf("set %s: %v", field, err)
		}
	}
	want := model.Profile{Name: "Ann Lee", Email: "ann@example.com", Age: 31, WeightKg: 62.5, HeightCm: 170, Goal: model.GoalImproveEndurance}
	if user.Profile != want {
		t.Fatalf("unexpected profile %+v", user.Profile)
	}

	stored, err := users.FindByTelegramID(ctx, 42)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.Profile != want {
		t.Fatalf("profile not persisted: %+v", stored.Profile)
	}

	rejected := [][2]string{
		{"email", "not-an-email"},
		{"age", "7"},
		{"age", "abc"},
		{"weight", "900"},
		{"height", "30"},
		{"goal", "fly"},
		{"shoe", "42"},
	}
	for _, r := range rejected {
		if _, err := svc.SetField(ctx, user, r[0], r[1]); !errors.Is(err, model.ErrValidationRejected) {
			t.Fatalf("expected rejection for %s=%s, got %v", r[0], r[1], err)
		}
	}
	if user.Profile != want {
		t.Fatalf("rejected update changed profile: %+v", user.Profile)
	}
}

func TestProfileToggleApp(t *testing.T) {
	db := newDB(t)
	users := repository.NewUserRepository(db)
	svc := NewProfileService(users, repository.NewConnectionRepository(db), zap.NewNop())
	ctx := context.Background()
	user, err := users.UpsertFromTelegram(ctx, 3, 3, "Bo", "bo", time.Now())
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	app, connected, err := svc.ToggleApp(ctx, user, "apple health")
	if err != nil || app != model.AppAppleHealth || !connected {
		t.Fatalf("expected Apple Health connected, got %q %v %v", app, connected, err)
	}
	if _, _, err := svc.ToggleApp(ctx, user, "garmin"); !errors.Is(err, model.ErrValidationRejected) {
		t.Fatalf("expected rejection for unknown app, got %v", err)
	}
	apps, err := svc.Connections(ctx, user)
	if err != nil || len(apps) != 1 || apps[0] != model.AppAppleHealth {
		t.Fatalf("unexpected connections %v %v", apps, err)
	}
	if _, connected, _ := svc.ToggleApp(ctx, user, "Apple Health"); connected {
		t.Fatal("expected second toggle to disconnect")
	}
}
