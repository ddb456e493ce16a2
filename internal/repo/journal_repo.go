// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// JournalEntry model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition. Sentiment fields arrive pre-computed
// from the service layer; the repository never analyzes content.
//
// Error semantics:
//   - When an entry is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wellnesshub/go-wellness-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateEntry inserts a new JournalEntry owned by userID. The entry ID is a
// randomly generated UUID (string), and CreatedAt is set to UTC. All content
// and sentiment fields come from the caller verbatim.
//
// On success, it returns the persisted entry. On failure, it returns a DB error.
func CreateEntry(ctx context.Context, db *gorm.DB, e *domain.JournalEntry) (*domain.JournalEntry, error) {
	e.ID = uuid.NewString()
	e.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(e).Error; err != nil {
		return nil, err
	}
	return e, nil
}

// ListEntries returns all journal entries belonging to userID, ordered by
// date then time descending (most recent first). It returns an empty slice
// if the user has none. On DB error, it returns the error.
func ListEntries(ctx context.Context, db *gorm.DB, userID string) ([]domain.JournalEntry, error) {
	var out []domain.JournalEntry
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date desc, time desc").
		Find(&out).Error
	return out, err
}

// CountEntries returns the total number of journal entries owned by userID.
// On DB error, it returns the error.
func CountEntries(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.JournalEntry{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	return total, err
}

// ListEntriesPage returns a paginated slice of entries for userID, ordered by
// date then time descending. Use CountEntries to obtain the total for
// pagination metadata. On DB error, it returns the error.
//
// The caller is responsible for computing offset and limit (e.g., (page-1)*pageSize).
func ListEntriesPage(ctx context.Context, db *gorm.DB, userID string, offset, limit int) ([]domain.JournalEntry, error) {
	var out []domain.JournalEntry
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date desc, time desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// GetEntry fetches a single entry by its ID and owner (userID). If the record
// does not exist, it returns ErrNotFound. On other DB errors, the raw error
// is returned.
func GetEntry(ctx context.Context, db *gorm.DB, id, userID string) (*domain.JournalEntry, error) {
	var e domain.JournalEntry
	err := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// UpdateEntry overwrites the mutable fields of an entry identified by id and
// owned by userID: title, content, and the freshly recomputed sentiment
// columns. If no rows are affected (entry missing or not owned by userID),
// it returns ErrNotFound. On DB error, the raw error is returned.
func UpdateEntry(ctx context.Context, db *gorm.DB, id, userID string, e *domain.JournalEntry) error {
	res := db.WithContext(ctx).
		Model(&domain.JournalEntry{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{
			"title":        e.Title,
			"content":      e.Content,
			"sentiment":    e.Sentiment,
			"score":        e.Score,
			"polarity":     e.Polarity,
			"subjectivity": e.Subjectivity,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteEntry soft-deletes an entry identified by id and owned by userID.
// If no rows are affected it returns ErrNotFound.
func DeleteEntry(ctx context.Context, db *gorm.DB, id, userID string) error {
	res := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.JournalEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
