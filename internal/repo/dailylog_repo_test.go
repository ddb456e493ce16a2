package repo

import (
	"context"
	"testing"

	"github.com/wellnesshub/go-wellness-backend/internal/domain"
)

func TestUpsertDailyLog_InsertThenOverwrite(t *testing.T) {
	db := newRepoDB(t, &domain.DailyLog{})
	ctx := context.Background()

	first, err := UpsertDailyLog(ctx, db, &domain.DailyLog{
		UserID: "u1", Date: "2024-03-01",
		SleepHours: 7, MoodRating: 6, StudyHours: 2,
		WaterIntake: 5, ExerciseMinutes: 30, ProductivityScore: 70,
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if first.ID == "" {
		t.Fatalf("expected generated ID")
	}

	// Same (user, date): metrics overwritten, identity preserved.
	second, err := UpsertDailyLog(ctx, db, &domain.DailyLog{
		UserID: "u1", Date: "2024-03-01",
		SleepHours: 8.5, MoodRating: 9, StudyHours: 0,
		WaterIntake: 8, ExerciseMinutes: 0, ProductivityScore: 90,
	})
	if err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("upsert created a new row: %q vs %q", second.ID, first.ID)
	}

	got, err := GetDailyLog(ctx, db, "u1", "2024-03-01")
	if err != nil {
		t.Fatalf("GetDailyLog: %v", err)
	}
	if got.SleepHours != 8.5 || got.MoodRating != 9 || got.ProductivityScore != 90 {
		t.Fatalf("overwrite not applied: %+v", got)
	}
	if got.CreatedAt.IsZero() || !got.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("CreatedAt changed on overwrite: %v vs %v", got.CreatedAt, first.CreatedAt)
	}

	total, err := CountDailyLogs(ctx, db, "u1")
	if err != nil {
		t.Fatalf("CountDailyLogs: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected a single row after upsert, got %d", total)
	}
}

func TestUpsertDailyLog_DistinctDatesAndUsers(t *testing.T) {
	db := newRepoDB(t, &domain.DailyLog{})
	ctx := context.Background()

	for _, seed := range []struct{ user, date string }{
		{"u1", "2024-03-01"},
		{"u1", "2024-03-02"},
		{"u2", "2024-03-01"},
	} {
		if _, err := UpsertDailyLog(ctx, db, &domain.DailyLog{UserID: seed.user, Date: seed.date}); err != nil {
			t.Fatalf("seed %s/%s: %v", seed.user, seed.date, err)
		}
	}

	if total, _ := CountDailyLogs(ctx, db, "u1"); total != 2 {
		t.Fatalf("u1 rows = %d; want 2", total)
	}
	if total, _ := CountDailyLogs(ctx, db, "u2"); total != 1 {
		t.Fatalf("u2 rows = %d; want 1", total)
	}
}

func TestGetDailyLog_NotFound(t *testing.T) {
	db := newRepoDB(t, &domain.DailyLog{})
	if _, err := GetDailyLog(context.Background(), db, "u1", "2024-01-01"); err == nil {
		t.Fatalf("expected ErrRecordNotFound for missing log")
	}
}

func TestListDailyLogs_AscendingOrder(t *testing.T) {
	db := newRepoDB(t, &domain.DailyLog{})
	ctx := context.Background()

	// Seed out of order; list must come back oldest first.
	for _, date := range []string{"2024-03-03", "2024-03-01", "2024-03-02"} {
		if _, err := UpsertDailyLog(ctx, db, &domain.DailyLog{UserID: "u1", Date: date}); err != nil {
			t.Fatalf("seed %s: %v", date, err)
		}
	}

	list, err := ListDailyLogs(ctx, db, "u1")
	if err != nil {
		t.Fatalf("ListDailyLogs: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 logs, got %d", len(list))
	}
	if list[0].Date != "2024-03-01" || list[2].Date != "2024-03-03" {
		t.Fatalf("unexpected order: %+v", list)
	}
}

func TestListDailyLogsSince_InclusiveCutoff(t *testing.T) {
	db := newRepoDB(t, &domain.DailyLog{})
	ctx := context.Background()

	for _, date := range []string{"2024-03-01", "2024-03-05", "2024-03-10"} {
		if _, err := UpsertDailyLog(ctx, db, &domain.DailyLog{UserID: "u1", Date: date}); err != nil {
			t.Fatalf("seed %s: %v", date, err)
		}
	}

	list, err := ListDailyLogsSince(ctx, db, "u1", "2024-03-05")
	if err != nil {
		t.Fatalf("ListDailyLogsSince: %v", err)
	}
	if len(list) != 2 || list[0].Date != "2024-03-05" || list[1].Date != "2024-03-10" {
		t.Fatalf("unexpected window: %+v", list)
	}
}
