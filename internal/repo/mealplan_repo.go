// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the MealPlan
// model. The serialized plan and restrictions payloads pass through opaque;
// the planner service owns their JSON shape.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wellnesshub/go-wellness-backend/internal/domain"
)

// CreateMealPlan inserts a new MealPlan owned by p.UserID. The plan ID is a
// randomly generated UUID (string), and CreatedAt is set to UTC.
func CreateMealPlan(ctx context.Context, db *gorm.DB, p *domain.MealPlan) (*domain.MealPlan, error) {
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// GetMealPlan fetches a single plan by its ID and owner (userID). If the
// record does not exist, it returns ErrNotFound. On other DB errors, the raw
// error is returned.
func GetMealPlan(ctx context.Context, db *gorm.DB, id, userID string) (*domain.MealPlan, error) {
	var p domain.MealPlan
	err := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListMealPlans returns all plans belonging to userID, ordered by creation
// time descending (most recent first). It returns an empty slice if the user
// has none.
func ListMealPlans(ctx context.Context, db *gorm.DB, userID string) ([]domain.MealPlan, error) {
	var out []domain.MealPlan
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// UpdateMealPlanBody overwrites the serialized plan payload of a plan
// identified by id and owned by userID (used after a meal swap). If no rows
// are affected it returns ErrNotFound.
func UpdateMealPlanBody(ctx context.Context, db *gorm.DB, id, userID, plan string) error {
	res := db.WithContext(ctx).
		Model(&domain.MealPlan{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("plan", plan)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteMealPlan soft-deletes a plan identified by id and owned by userID.
// If no rows are affected it returns ErrNotFound.
func DeleteMealPlan(ctx context.Context, db *gorm.DB, id, userID string) error {
	res := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.MealPlan{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
