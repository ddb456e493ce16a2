package domain

import (
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newDomainDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:domain_models?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return db
}

func TestTableNames(t *testing.T) {
	if (JournalEntry{}).TableName() != "journal_entries" {
		t.Fatalf("JournalEntry.TableName() = %q; want %q", (JournalEntry{}).TableName(), "journal_entries")
	}
	if (DailyLog{}).TableName() != "daily_logs" {
		t.Fatalf("DailyLog.TableName() = %q; want %q", (DailyLog{}).TableName(), "daily_logs")
	}
	if (MealPlan{}).TableName() != "meal_plans" {
		t.Fatalf("MealPlan.TableName() = %q; want %q", (MealPlan{}).TableName(), "meal_plans")
	}
}

func TestMigrations_Indexes_AndUpsertKey(t *testing.T) {
	db := newDomainDB(t)

	if err := db.AutoMigrate(&JournalEntry{}, &DailyLog{}, &MealPlan{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	m := db.Migrator()

	// Tables exist
	for _, tbl := range []any{&JournalEntry{}, &DailyLog{}, &MealPlan{}} {
		if !m.HasTable(tbl) {
			t.Fatalf("expected table for %T to exist", tbl)
		}
	}

	// Indexes from tags exist
	if !m.HasIndex(&JournalEntry{}, "idx_user_entries") {
		t.Fatalf("expected index idx_user_entries on journal_entries")
	}
	if !m.HasIndex(&DailyLog{}, "ux_user_log_date") {
		t.Fatalf("expected unique index ux_user_log_date on daily_logs")
	}
	if !m.HasIndex(&MealPlan{}, "idx_user_plans") {
		t.Fatalf("expected index idx_user_plans on meal_plans")
	}

	now := time.Now().UTC()

	e := &JournalEntry{ID: "e1", UserID: "u1", Title: "T", Content: "hello", Date: "2024-01-01", Time: "09:00", CreatedAt: now, UpdatedAt: now}
	if err := db.Create(e).Error; err != nil {
		t.Fatalf("insert entry: %v", err)
	}

	l1 := &DailyLog{ID: "l1", UserID: "u1", Date: "2024-01-01", SleepHours: 7, CreatedAt: now, UpdatedAt: now}
	if err := db.Create(l1).Error; err != nil {
		t.Fatalf("insert log: %v", err)
	}

	// The unique (user_id, date) pair must reject a second row outright;
	// overwrites go through the repo upsert, never a blind insert.
	dup := &DailyLog{ID: "l2", UserID: "u1", Date: "2024-01-01", SleepHours: 8, CreatedAt: now, UpdatedAt: now}
	if err := db.Create(dup).Error; err == nil {
		t.Fatalf("expected unique index violation for duplicate (user,date) log")
	}

	// A different date for the same user is fine.
	l3 := &DailyLog{ID: "l3", UserID: "u1", Date: "2024-01-02", CreatedAt: now, UpdatedAt: now}
	if err := db.Create(l3).Error; err != nil {
		t.Fatalf("insert second log: %v", err)
	}

	mp := &MealPlan{
		ID: "p1", UserID: "u1", Age: 25, Weight: 70, Height: 175,
		Gender: "male", ActivityLevel: "moderate", Goal: "maintain",
		Restrictions: `["vegetarian"]`, BMI: 22.86, BMR: 1673.75, CalorieGoal: 2594.31,
		Plan: `[]`, CreatedAt: now, UpdatedAt: now,
	}
	if err := db.Create(mp).Error; err != nil {
		t.Fatalf("insert meal plan: %v", err)
	}

	// Soft delete keeps the row but hides it from default queries.
	if err := db.Delete(&JournalEntry{}, "id = ?", "e1").Error; err != nil {
		t.Fatalf("soft delete entry: %v", err)
	}
	var cnt int64
	if err := db.Model(&JournalEntry{}).Where("id = ?", "e1").Count(&cnt).Error; err != nil {
		t.Fatalf("count after soft delete: %v", err)
	}
	if cnt != 0 {
		t.Fatalf("soft-deleted entry still visible, count=%d", cnt)
	}
	if err := db.Unscoped().Model(&JournalEntry{}).Where("id = ?", "e1").Count(&cnt).Error; err != nil {
		t.Fatalf("unscoped count: %v", err)
	}
	if cnt != 1 {
		t.Fatalf("soft-deleted entry missing from unscoped query, count=%d", cnt)
	}
}
