// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the DailyLog
// model.
//
// A user has at most one log per calendar date. UpsertDailyLog enforces
// last-write-wins: re-saving a date overwrites the existing metrics while
// preserving the original row identity and CreatedAt.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wellnesshub/go-wellness-backend/internal/domain"
)

// UpsertDailyLog saves the metrics for (userID, date). If a row already
// exists for that pair its metrics are overwritten in place; otherwise a new
// row is inserted with a fresh UUID. The persisted row is returned either way.
func UpsertDailyLog(ctx context.Context, db *gorm.DB, l *domain.DailyLog) (*domain.DailyLog, error) {
	var existing domain.DailyLog
	err := db.WithContext(ctx).
		Where("user_id = ? AND date = ?", l.UserID, l.Date).
		First(&existing).Error

	switch {
	case err == nil:
		res := db.WithContext(ctx).
			Model(&domain.DailyLog{}).
			Where("id = ?", existing.ID).
			Updates(map[string]any{
				"sleep_hours":        l.SleepHours,
				"mood_rating":        l.MoodRating,
				"study_hours":        l.StudyHours,
				"water_intake":       l.WaterIntake,
				"exercise_minutes":   l.ExerciseMinutes,
				"productivity_score": l.ProductivityScore,
			})
		if res.Error != nil {
			return nil, res.Error
		}
		l.ID = existing.ID
		l.CreatedAt = existing.CreatedAt
		return l, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		l.ID = uuid.NewString()
		l.CreatedAt = time.Now().UTC()
		if err := db.WithContext(ctx).Create(l).Error; err != nil {
			return nil, err
		}
		return l, nil

	default:
		return nil, err
	}
}

// GetDailyLog fetches the log for (userID, date), or ErrNotFound.
func GetDailyLog(ctx context.Context, db *gorm.DB, userID, date string) (*domain.DailyLog, error) {
	var l domain.DailyLog
	err := db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// ListDailyLogs returns all logs for userID, ordered by date ascending
// (oldest first, the order the analytics expect). It returns an empty slice
// if the user has none. On DB error, it returns the error.
func ListDailyLogs(ctx context.Context, db *gorm.DB, userID string) ([]domain.DailyLog, error) {
	var out []domain.DailyLog
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date asc").
		Find(&out).Error
	return out, err
}

// ListDailyLogsSince returns the logs for userID dated on or after the given
// date (inclusive), ordered by date ascending. Dates are YYYY-MM-DD strings,
// so lexicographic comparison matches chronological order.
func ListDailyLogsSince(ctx context.Context, db *gorm.DB, userID, date string) ([]domain.DailyLog, error) {
	var out []domain.DailyLog
	err := db.WithContext(ctx).
		Where("user_id = ? AND date >= ?", userID, date).
		Order("date asc").
		Find(&out).Error
	return out, err
}

// CountDailyLogs returns the total number of logs owned by userID.
func CountDailyLogs(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.DailyLog{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	return total, err
}
