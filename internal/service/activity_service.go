package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"fitness-planner/internal/model"
	"fitness-planner/internal/repository"
)

// ActivityInput represents data required to log a workout.
type ActivityInput struct {
	Date        time.Time
	Type        string
	DurationMin int
	Calories    int
	Steps       int
	DistanceKm  float64
	Notes       string
}

// ActivityService wraps the activity log.
type ActivityService struct {
	repo *repository.ActivityRepository
	log  *zap.Logger
}

func NewActivityService(repo *repository.ActivityRepository, log *zap.Logger) *ActivityService {
	return &ActivityService{repo: repo, log: log}
}

func (s *ActivityService) Log(ctx context.Context, user *model.User, input ActivityInput) (*model.Activity, error) {
	kind := strings.TrimSpace(input.Type)
	if kind == "" {
		return nil, fmt.Errorf("activity type is required: %w", model.ErrValidationRejected)
	}
	if input.DurationMin <= 0 {
		return nil, fmt.Errorf("duration must be positive: %w", model.ErrValidationRejected)
	}
	if input.Calories < 0 {
		return nil, fmt.Errorf("calories cannot be negative: %w", model.ErrValidationRejected)
	}
	if input.Steps < 0 || input.DistanceKm < 0 {
		return nil, fmt.Errorf("steps and distance cannot be negative: %w", model.ErrValidationRejected)
	}
	if input.Date.IsZero() {
		input.Date = time.Now()
	}

	activity := model.Activity{
		UserID:      user.ID,
		Date:        calendarDate(input.Date),
		Type:        kind,
		DurationMin: input.DurationMin,
		Calories:    input.Calories,
		Steps:       input.Steps,
		DistanceKm:  input.DistanceKm,
		Notes:       strings.TrimSpace(input.Notes),
	}
	if err := s.repo.Create(ctx, &activity); err != nil {
		return nil, err
	}

	s.log.Info("activity logged",
		zap.Uint("user_id", user.ID),
		zap.Uint("activity_id", activity.ID),
		zap.String("type", activity.Type),
		zap.Int("minutes", activity.DurationMin),
	)
	return &activity, nil
}

// Recent lists the newest activities first.
func (s *ActivityService) Recent(ctx context.Context, user *model.User, limit int) ([]model.Activity, error) {
	return s.repo.ListRecent(ctx, user.ID, limit)
}

func (s *ActivityService) Delete(ctx context.Context, user *model.User, activityID uint) error {
	return s.repo.Delete(ctx, user.ID, activityID)
}

// calendarDate keeps the local calendar day of t as midnight UTC.
func calendarDate(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
