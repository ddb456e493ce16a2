// Package services – TrackerService
//
// This file implements TrackerService, which owns the self-tracking
// dashboard: validating and upserting daily logs, assembling the dashboard
// bundle (averages, trends, correlations, weekly report, badges), and
// rendering the CSV export.
package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/wellnesshub/go-wellness-backend/internal/domain"
	"github.com/wellnesshub/go-wellness-backend/internal/export"
	"github.com/wellnesshub/go-wellness-backend/internal/insights"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TrackerRepo defines the repository contract required by TrackerService.
type TrackerRepo interface {
	UpsertDailyLog(ctx context.Context, db *gorm.DB, l *domain.DailyLog) (*domain.DailyLog, error)
	GetDailyLog(ctx context.Context, db *gorm.DB, userID, date string) (*domain.DailyLog, error)
	ListDailyLogs(ctx context.Context, db *gorm.DB, userID string) ([]domain.DailyLog, error)
	ListDailyLogsSince(ctx context.Context, db *gorm.DB, userID, date string) ([]domain.DailyLog, error)
	CountDailyLogs(ctx context.Context, db *gorm.DB, userID string) (int64, error)
}

// DailyLogInput carries one day of metrics from the transport layer.
type DailyLogInput struct {
	Date              string
	SleepHours        float64
	MoodRating        float64
	StudyHours        float64
	WaterIntake       float64
	ExerciseMinutes   float64
	ProductivityScore float64
}

// Dashboard is the aggregate served by the dashboard endpoint. Zero TotalLogs
// means the user has never logged; the remaining fields are then empty.
type Dashboard struct {
	TotalLogs int                             `json:"total_logs"`
	Averages  map[string]float64              `json:"averages,omitempty"`
	Trends    map[string]insights.MetricTrend `json:"trends,omitempty"`
	Insights  []insights.Insight              `json:"insights,omitempty"`
	Report    *insights.WeeklyReport          `json:"weekly_report,omitempty"`
	Badges    []insights.Badge                `json:"badges,omitempty"`
}

// TrackerService coordinates daily-log persistence and dashboard analytics.
type TrackerService struct {
	DB   *gorm.DB
	Repo TrackerRepo

	// Now anchors the weekly report window; tests may pin it. Nil uses time.Now.
	Now func() time.Time
}

// Save validates and upserts one day of metrics. Re-saving a date overwrites
// it (last write wins).
func (s *TrackerService) Save(ctx context.Context, userID string, in DailyLogInput) (*domain.DailyLog, error) {
	tr := otel.Tracer("services/TrackerService")
	ctx, span := tr.Start(ctx, "Save",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("log.date", in.Date),
		),
	)
	defer span.End()

	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return nil, ErrInvalidDate
	}
	if err := validateMetrics(in); err != nil {
		return nil, err
	}

	return s.Repo.UpsertDailyLog(ctx, s.DB, &domain.DailyLog{
		UserID:            userID,
		Date:              in.Date,
		SleepHours:        in.SleepHours,
		MoodRating:        in.MoodRating,
		StudyHours:        in.StudyHours,
		WaterIntake:       in.WaterIntake,
		ExerciseMinutes:   in.ExerciseMinutes,
		ProductivityScore: in.ProductivityScore,
	})
}

// Logs returns every log the user has, oldest first.
func (s *TrackerService) Logs(ctx context.Context, userID string) ([]domain.DailyLog, error) {
	return s.Repo.ListDailyLogs(ctx, s.DB, userID)
}

// Log returns the single log for (userID, date).
func (s *TrackerService) Log(ctx context.Context, userID, date string) (*domain.DailyLog, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, ErrInvalidDate
	}
	l, err := s.Repo.GetDailyLog(ctx, s.DB, userID, date)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrLogNotFound
		}
		return nil, err
	}
	return l, nil
}

// LogsSince returns the logs dated on or after since (inclusive), oldest
// first.
func (s *TrackerService) LogsSince(ctx context.Context, userID, since string) ([]domain.DailyLog, error) {
	if _, err := time.Parse("2006-01-02", since); err != nil {
		return nil, ErrInvalidDate
	}
	return s.Repo.ListDailyLogsSince(ctx, s.DB, userID, since)
}

// Dashboard assembles the full analytics bundle over the user's history.
func (s *TrackerService) Dashboard(ctx context.Context, userID string) (*Dashboard, error) {
	tr := otel.Tracer("services/TrackerService")
	ctx, span := tr.Start(ctx, "Dashboard",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	logs, err := s.Repo.ListDailyLogs(ctx, s.DB, userID)
	if err != nil {
		return nil, err
	}

	days := toDayLogs(logs)
	return &Dashboard{
		TotalLogs: len(days),
		Averages:  insights.Averages(days),
		Trends:    insights.Trends(days, insights.DefaultWindow),
		Insights:  insights.Correlations(days),
		Report:    insights.Report(days, s.now()),
		Badges:    insights.Badges(days),
	}, nil
}

// ExportCSV renders the user's full log history as CSV, oldest first.
func (s *TrackerService) ExportCSV(ctx context.Context, userID string) ([]byte, error) {
	tr := otel.Tracer("services/TrackerService")
	ctx, span := tr.Start(ctx, "ExportCSV",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	logs, err := s.Repo.ListDailyLogs(ctx, s.DB, userID)
	if err != nil {
		return nil, err
	}
	return export.LogsCSV(logs)
}

func (s *TrackerService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// validateMetrics enforces the accepted range of each tracked metric.
func validateMetrics(in DailyLogInput) error {
	switch {
	case in.SleepHours < 0 || in.SleepHours > 24,
		in.MoodRating < 1 || in.MoodRating > 10,
		in.StudyHours < 0 || in.StudyHours > 24,
		in.WaterIntake < 0,
		in.ExerciseMinutes < 0 || in.ExerciseMinutes > 24*60,
		in.ProductivityScore < 0 || in.ProductivityScore > 100:
		return ErrInvalidMetrics
	}
	return nil
}

// toDayLogs converts persisted rows into the analytics value type.
func toDayLogs(logs []domain.DailyLog) []insights.DayLog {
	out := make([]insights.DayLog, len(logs))
	for i, l := range logs {
		out[i] = insights.DayLog{
			Date:              l.Date,
			SleepHours:        l.SleepHours,
			MoodRating:        l.MoodRating,
			StudyHours:        l.StudyHours,
			WaterIntake:       l.WaterIntake,
			ExerciseMinutes:   l.ExerciseMinutes,
			ProductivityScore: l.ProductivityScore,
		}
	}
	return out
}
