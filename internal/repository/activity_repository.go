package repository

import (
	"fmt"

	"gorm.io/gorm"

	"gopherpress/internal/model"
)

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(activity *model.Activity) error {
	if err := r.db.Create(activity).Error; err != nil {
		return fmt.Errorf("create activity failed: %w", err)
	}
	return nil
}

func (r *ActivityRepository) ListRecent(limit int) ([]model.Activity, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var activities []model.Activity
	if err := r.db.Order("id DESC").Limit(limit).Find(&activities).Error; err != nil {
		return nil, fmt.Errorf("list activities failed: %w", err)
	}
	return activities, nil
}
