// Package domain defines the persistence models for journal entries, daily
// tracking logs, and saved meal plans. These types are mapped with GORM and
// form the core data layer of the wellness application.
package domain

import (
	"time"

	"gorm.io/gorm"
)

// JournalEntry represents one saved journal note together with the sentiment
// fields computed at save time and recomputed on every edit.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - UserID: identifier of the entry owner; indexed for efficient retrieval.
//   - Title: human-readable title (defaults to "Untitled Entry").
//   - Date / Time: calendar date (YYYY-MM-DD) and wall-clock time (HH:MM)
//     the entry was written, used for ordering and trend grouping.
//   - Sentiment / Score / Polarity / Subjectivity: analysis results stored
//     denormalized on the row, never persisted independently of the content.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM; UpdatedAt doubles
//     as the edited-at marker surfaced to clients.
//   - DeletedAt: soft deletion marker (retains row for audit/history).
type JournalEntry struct {
	ID           string         `json:"id"           gorm:"type:char(36);primaryKey"`
	UserID       string         `json:"user_id"      gorm:"type:varchar(64);not null;index:idx_user_entries,priority:1"`
	Title        string         `json:"title"        gorm:"type:varchar(200);not null;default:'Untitled Entry'"`
	Content      string         `json:"content"      gorm:"type:text;not null"`
	Date         string         `json:"date"         gorm:"type:char(10);not null;index:idx_user_entries,priority:2"`
	Time         string         `json:"time"         gorm:"type:char(5);not null"`
	Sentiment    string         `json:"sentiment"    gorm:"type:varchar(16)"`
	Score        float64        `json:"score"`
	Polarity     float64        `json:"polarity"`
	Subjectivity float64        `json:"subjectivity"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"edited_at"`
	DeletedAt    gorm.DeletedAt `json:"-"            gorm:"index"`
}

// TableName returns the database table name for JournalEntry.
func (JournalEntry) TableName() string { return "journal_entries" }

// DailyLog represents one day of self-tracked metrics. At most one row exists
// per (user, calendar date); saving the same date again overwrites the row
// (last write wins, enforced by the unique index and the repo upsert).
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - UserID / Date: owner and calendar date; unique together.
//   - SleepHours .. ProductivityScore: the six tracked metrics, stored as
//     floats so fractional values (7.5 hours) round-trip unchanged.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type DailyLog struct {
	ID                string    `json:"id"                 gorm:"type:char(36);primaryKey"`
	UserID            string    `json:"user_id"            gorm:"type:varchar(64);not null;uniqueIndex:ux_user_log_date,priority:1"`
	Date              string    `json:"date"               gorm:"type:char(10);not null;uniqueIndex:ux_user_log_date,priority:2"`
	SleepHours        float64   `json:"sleep_hours"        gorm:"not null;default:0"`
	MoodRating        float64   `json:"mood_rating"        gorm:"not null;default:5"`
	StudyHours        float64   `json:"study_hours"        gorm:"not null;default:0"`
	WaterIntake       float64   `json:"water_intake"       gorm:"not null;default:0"`
	ExerciseMinutes   float64   `json:"exercise_minutes"   gorm:"not null;default:0"`
	ProductivityScore float64   `json:"productivity_score" gorm:"not null;default:50"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName returns the database table name for DailyLog.
func (DailyLog) TableName() string { return "daily_logs" }

// MealPlan represents a saved plan generation: the body inputs it was derived
// from, the headline calculated values, and the generated week serialized as
// JSON text (SQLite has no native JSON column type). The serialized payloads
// are opaque to the repository; the planner service owns their shape.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - UserID: identifier of the plan owner; indexed for listing.
//   - Age .. Goal: body profile inputs echoed back on retrieval.
//   - Restrictions: JSON array of dietary restriction tags.
//   - BMI / BMR / CalorieGoal: calculated values frozen at generation time.
//   - Plan: JSON array of day plans (the generated week).
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
//   - DeletedAt: soft deletion marker.
type MealPlan struct {
	ID            string         `json:"id"             gorm:"type:char(36);primaryKey"`
	UserID        string         `json:"user_id"        gorm:"type:varchar(64);not null;index:idx_user_plans"`
	Age           int            `json:"age"            gorm:"not null"`
	Weight        float64        `json:"weight"         gorm:"not null"`
	Height        float64        `json:"height"         gorm:"not null"`
	Gender        string         `json:"gender"         gorm:"type:varchar(16);not null"`
	ActivityLevel string         `json:"activity_level" gorm:"type:varchar(20);not null"`
	Goal          string         `json:"goal"           gorm:"type:varchar(20);not null"`
	Restrictions  string         `json:"-"              gorm:"type:text"`
	BMI           float64        `json:"bmi"`
	BMR           float64        `json:"bmr"`
	CalorieGoal   float64        `json:"calorie_goal"`
	Plan          string         `json:"-"              gorm:"type:text;not null"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-"              gorm:"index"`
}

// TableName returns the database table name for MealPlan.
func (MealPlan) TableName() string { return "meal_plans" }
