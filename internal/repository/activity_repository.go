package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"fitness-planner/internal/model"
)

// ActivityRepository stores logged workouts.
type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(ctx context.Context, activity *model.Activity) error {
	if err := r.db.WithContext(ctx).Create(activity).Error; err != nil {
		return fmt.Errorf("create activity: %w", err)
	}
	return nil
}

// ListRecent returns the newest activities first.
func (r *ActivityRepository) ListRecent(ctx context.Context, userID uint, limit int) ([]model.Activity, error) {
	var activities []model.Activity
	q := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("date DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&activities).Error; err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return activities, nil
}

// ListBetween returns activities dated in [from, to), oldest first.
func (r *ActivityRepository) ListBetween(ctx context.Context, userID uint, from, to time.Time) ([]model.Activity, error) {
	var activities []model.Activity
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date < ?", userID, from, to).
		Order("date ASC, id ASC").
		Find(&activities).Error; err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return activities, nil
}

// Delete removes one activity of the given user.
func (r *ActivityRepository) Delete(ctx context.Context, userID, activityID uint) error {
	res := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, activityID).Delete(&model.Activity{})
	if res.Error != nil {
		return fmt.Errorf("delete activity: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("activity %d: %w", activityID, model.ErrNotFound)
	}
	return nil
}
