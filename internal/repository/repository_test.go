package repository

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
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := NewDB(fmt.Sprintf("file:%s?mode=memory&cache=shared", name), zap.NewNop())
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

func TestUserUpsert(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))
	seen := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	first, err := repo.UpsertFromTelegram(ctx, 42, 4200, "Ann", "ann", seen)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := repo.UpsertFromTelegram(ctx, 42, 4201, "Anna", "anna", seen.Add(time.Hour))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected the same user, got %d and %d", first.ID, second.ID)
	}

	found, err := repo.FindByTelegramID(ctx, 42)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.FirstName != "Anna" || found.ChatID != 4201 {
		t.Fatalf("expected refreshed profile, got %+v", found)
	}

	if _, err := repo.FindByTelegramID(ctx, 7); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	active, err := repo.ListActiveSince(ctx, seen.Add(30*time.Minute))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("expected one active user, got %d", len(active))
	}
}

func TestActivityListing(t *testing.T) {
	ctx := context.Background()
	repo := NewActivityRepository(newTestDB(t))
	day := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)

	for i, kind := range []string{"run", "swim", "yoga"} {
		a := &model.Activity{UserID: 1, Date: day.AddDate(0, 0, i), Type: kind, DurationMin: 30}
		if err := repo.Create(ctx, a); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if err := repo.Create(ctx, &model.Activity{UserID: 2, Date: day, Type: "walk", DurationMin: 10}); err != nil {
		t.Fatalf("create: %v", err)
	}

	recent, err := repo.ListRecent(ctx, 1, 2)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(recent) != 2 || recent[0].Type != "yoga" || recent[1].Type != "swim" {
		t.Fatalf("expected newest first, got %+v", recent)
	}

	week, err := repo.ListBetween(ctx, 1, day, day.AddDate(0, 0, 2))
	if err != nil {
		t.Fatalf("list between: %v", err)
	}
	if len(week) != 2 || week[0].Type != "run" {
		t.Fatalf("expected two activities in range, got %+v", week)
	}

	if err := repo.Delete(ctx, 1, recent[0].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, 1, recent[0].ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestProfileSurvivesTelegramRefresh(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))
	seen := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	user, err := repo.UpsertFromTelegram(ctx, 42, 4200, "Ann", "ann", seen)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	profile := model.Profile{
		Name:     "Ann Lee",
		Email:    "ann@example.com",
		Age:      31,
		WeightKg: 62.5,
		HeightCm: 168,
		Goal:     model.GoalImproveEndurance,
	}
	if err := repo.UpdateProfile(ctx, user.ID, profile); err != nil {
		t.Fatalf("update profile: %v", err)
	}

	if _, err := repo.UpsertFromTelegram(ctx, 42, 4200, "Annie", "ann", seen.Add(time.Hour)); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	stored, err := repo.FindByTelegramID(ctx, 42)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.Profile != profile {
		t.Fatalf("expected profile kept, got %+v", stored.Profile)
	}
	if stored.FirstName != "Annie" {
		t.Fatalf("expected telegram name refreshed, got %q", stored.FirstName)
	}

	if err := repo.UpdateProfile(ctx, 999, profile); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected not found for unknown user, got %v", err)
	}
}

func TestConnectionToggle(t *testing.T) {
	ctx := context.Background()
	repo := NewConnectionRepository(newTestDB(t))

	for _, app := range []model.App{model.AppStrava, model.AppFitbit} {
		connected, err := repo.Toggle(ctx, 1, app)
		if err != nil || !connected {
			t.Fatalf("connect %s: %v %v", app, connected, err)
		}
	}
	if _, err := repo.Toggle(ctx, 2, model.AppFitbit); err != nil {
		t.Fatalf("connect other user: %v", err)
	}

	apps, err := repo.List(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(apps) != 2 || apps[0] != model.AppStrava || apps[1] != model.AppFitbit {
		t.Fatalf("unexpected apps %v", apps)
	}

	connected, err := repo.Toggle(ctx, 1, model.AppStrava)
	if err != nil || connected {
		t.Fatalf("disconnect: %v %v", connected, err)
	}
	apps, _ = repo.List(ctx, 1)
	if len(apps) != 1 || apps[0] != model.AppFitbit {
		t.Fatalf("expected only Fitbit left, got %v", apps)
	}
}

func TestEnsureDirSkipsMemory(t *testing.T) {
	if err := ensureDirForSQLite("file::memory:?cache=shared"); err != nil {
		t.Fatalf("memory dsn: %v", err)
	}
}
