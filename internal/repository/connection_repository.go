package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"fitness-planner/internal/model"
)

// ConnectionRepository stores the apps each user has linked.
type ConnectionRepository struct {
	db *gorm.DB
}

func NewConnectionRepository(db *gorm.DB) *ConnectionRepository {
	return &ConnectionRepository{db: db}
}

// List returns the linked apps in the order they were connected.
func (r *ConnectionRepository) List(ctx context.Context, userID uint) ([]model.App, error) {
	var conns []model.AppConnection
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&conns).Error; err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}
	apps := make([]model.App, 0, len(conns))
	for _, c := range conns {
		apps = append(apps, c.App)
	}
	return apps, nil
}

// Toggle links app when it is not linked and unlinks it otherwise.
// It reports whether the app is connected afterwards.
func (r *ConnectionRepository) Toggle(ctx context.Context, userID uint, app model.App) (bool, error) {
	connected := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.AppConnection
		err := tx.Where("user_id = ? AND app = ?", userID, app).First(&existing).Error
		switch {
		case err == nil:
			return tx.Delete(&existing).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			connected = true
			return tx.Create(&model.AppConnection{UserID: userID, App: app}).Error
		default:
			return err
		}
	})
	if err != nil {
		return false, fmt.Errorf("toggle %s: %w", app, err)
	}
	return connected, nil
}
