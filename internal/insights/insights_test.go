package insights

import (
	"fmt"
	"testing"
	"time"
)

// makeLogs builds n consecutive daily logs starting at start, with each log
// shaped by fill(i) where i runs 0..n-1.
func makeLogs(start string, n int, fill func(i int, l *DayLog)) []DayLog {
	t, err := time.Parse(dateLayout, start)
	if err != nil {
		panic(err)
	}
	logs := make([]DayLog, n)
	for i := range logs {
		logs[i] = DayLog{Date: t.AddDate(0, 0, i).Format(dateLayout)}
		if fill != nil {
			fill(i, &logs[i])
		}
	}
	return logs
}

func TestAverages_Empty(t *testing.T) {
	if got := Averages(nil); got != nil {
		t.Fatalf("Averages(nil) = %v; want nil", got)
	}
}

func TestAverages_PerMetricMeans(t *testing.T) {
	logs := []DayLog{
		{Date: "2024-01-01", SleepHours: 6, MoodRating: 7, StudyHours: 2, WaterIntake: 4, ExerciseMinutes: 20, ProductivityScore: 60},
		{Date: "2024-01-02", SleepHours: 8, MoodRating: 8, StudyHours: 4, WaterIntake: 8, ExerciseMinutes: 40, ProductivityScore: 90},
	}
	got := Averages(logs)
	want := map[string]float64{
		"sleep_hours":        7,
		"mood_rating":        7.5,
		"study_hours":        3,
		"water_intake":       6,
		"exercise_minutes":   30,
		"productivity_score": 75,
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %v; want %v", k, got[k], v)
		}
	}
}

func TestTrends_RequiresWindow(t *testing.T) {
	logs := makeLogs("2024-01-01", 6, nil)
	if got := Trends(logs, 7); got != nil {
		t.Fatalf("Trends with %d logs = %v; want nil", len(logs), got)
	}
}

func TestTrends_FullTwoWindows(t *testing.T) {
	// First 7 days sleep 6h, last 7 days sleep 8h: improving by 33.3%.
	logs := makeLogs("2024-01-01", 14, func(i int, l *DayLog) {
		if i < 7 {
			l.SleepHours = 6
		} else {
			l.SleepHours = 8
		}
		l.MoodRating = 5
	})
	got := Trends(logs, 7)
	sleep := got["sleep_hours"]
	if sleep.Trend != TrendImproving {
		t.Errorf("sleep trend = %q; want improving", sleep.Trend)
	}
	if sleep.RecentAvg != 8 || sleep.PreviousAvg != 6 {
		t.Errorf("averages = %v/%v; want 8/6", sleep.RecentAvg, sleep.PreviousAvg)
	}
	if sleep.ChangePercent != 33.3 {
		t.Errorf("change = %v; want 33.3", sleep.ChangePercent)
	}
	if got["mood_rating"].Trend != TrendStable {
		t.Errorf("flat mood trend = %q; want stable", got["mood_rating"].Trend)
	}
}

func TestTrends_EarliestWindowFallback(t *testing.T) {
	// 10 logs (< 2x7): previous baseline is the earliest 7, not an error.
	logs := makeLogs("2024-01-01", 10, func(i int, l *DayLog) {
		l.StudyHours = float64(i + 1) // 1..10
	})
	got := Trends(logs, 7)
	if got == nil {
		t.Fatal("expected a result with window <= len < 2*window")
	}
	study := got["study_hours"]
	if study.RecentAvg != 7 { // mean of 4..10
		t.Errorf("recent avg = %v; want 7", study.RecentAvg)
	}
	if study.PreviousAvg != 4 { // mean of 1..7
		t.Errorf("previous avg = %v; want 4", study.PreviousAvg)
	}
	if study.Trend != TrendImproving {
		t.Errorf("trend = %q; want improving", study.Trend)
	}
}

func TestTrends_ZeroPreviousAverage(t *testing.T) {
	logs := makeLogs("2024-01-01", 14, func(i int, l *DayLog) {
		if i >= 7 {
			l.ExerciseMinutes = 30
		}
	})
	got := Trends(logs, 7)
	ex := got["exercise_minutes"]
	if ex.ChangePercent != 0 {
		t.Errorf("change with zero baseline = %v; want 0", ex.ChangePercent)
	}
	if ex.Trend != TrendStable {
		t.Errorf("trend = %q; want stable", ex.Trend)
	}
}

func TestTrends_DecliningBelowMinusFive(t *testing.T) {
	logs := makeLogs("2024-01-01", 14, func(i int, l *DayLog) {
		if i < 7 {
			l.WaterIntake = 10
		} else {
			l.WaterIntake = 8
		}
	})
	if got := Trends(logs, 7)["water_intake"]; got.Trend != TrendDeclining {
		t.Fatalf("trend = %q; want declining (change %v)", got.Trend, got.ChangePercent)
	}
}

func TestCorrelations_RequiresSevenLogs(t *testing.T) {
	logs := makeLogs("2024-01-01", 6, func(i int, l *DayLog) { l.SleepHours = 9; l.MoodRating = 9 })
	if got := Correlations(logs); len(got) != 0 {
		t.Fatalf("got %v; want none below 7 logs", got)
	}
}

func TestCorrelations_SleepMood(t *testing.T) {
	logs := makeLogs("2024-01-01", 8, func(i int, l *DayLog) {
		if i%2 == 0 {
			l.SleepHours, l.MoodRating = 8, 8
		} else {
			l.SleepHours, l.MoodRating = 5, 4
		}
		l.ProductivityScore = 50
	})
	got := Correlations(logs)
	if len(got) == 0 || got[0].Type != "sleep_mood" {
		t.Fatalf("got %v; want a sleep_mood insight first", got)
	}
}

func TestCorrelations_DefinitionOrder(t *testing.T) {
	// Trigger both sleep/mood and exercise/productivity; order must follow
	// the comparison definitions.
	logs := makeLogs("2024-01-01", 10, func(i int, l *DayLog) {
		if i%2 == 0 {
			l.SleepHours, l.MoodRating = 8, 9
			l.ExerciseMinutes, l.ProductivityScore = 45, 90
		} else {
			l.SleepHours, l.MoodRating = 5, 4
			l.ExerciseMinutes, l.ProductivityScore = 10, 50
		}
	})
	got := Correlations(logs)
	if len(got) < 2 {
		t.Fatalf("got %d insights; want at least 2", len(got))
	}
	if got[0].Type != "sleep_mood" || got[1].Type != "exercise_productivity" {
		t.Fatalf("order = [%s %s]; want definition order", got[0].Type, got[1].Type)
	}
}

func TestCorrelations_StudyMoodAndHydration(t *testing.T) {
	logs := makeLogs("2024-01-01", 10, func(i int, l *DayLog) {
		if i < 5 {
			l.StudyHours, l.MoodRating = 6, 3
			l.WaterIntake, l.ProductivityScore = 9, 90
		} else {
			l.StudyHours, l.MoodRating = 1, 8
			l.WaterIntake, l.ProductivityScore = 3, 40
		}
		l.SleepHours = 7 // keep the sleep comparison silent (no low group)
	})
	got := Correlations(logs)
	types := make(map[string]bool)
	for _, in := range got {
		types[in.Type] = true
	}
	if !types["study_mood"] {
		t.Errorf("missing study_mood in %v", got)
	}
	if !types["water_productivity"] {
		t.Errorf("missing water_productivity in %v", got)
	}
}

func TestReport_NoRecentLogs(t *testing.T) {
	now := mustDate("2024-06-01")
	logs := makeLogs("2024-01-01", 5, nil)
	if got := Report(logs, now); got != nil {
		t.Fatalf("Report over stale logs = %+v; want nil", got)
	}
	if got := Report(nil, now); got != nil {
		t.Fatalf("Report(nil) = %+v; want nil", got)
	}
}

func TestReport_BestWorstAndConsistency(t *testing.T) {
	now := mustDate("2024-01-15")
	logs := makeLogs("2024-01-09", 6, func(i int, l *DayLog) {
		l.MoodRating = []float64{5, 9, 3, 9, 6, 7}[i] // ties on 9: first wins
		l.SleepHours = 7                              // perfectly consistent
		l.ExerciseMinutes = float64(i * 20)
		l.StudyHours = float64(i)
	})
	got := Report(logs, now)
	if got == nil {
		t.Fatal("nil report")
	}
	if got.DaysLogged != 6 {
		t.Errorf("days logged = %d; want 6", got.DaysLogged)
	}
	if got.BestDay.Mood != 9 || got.BestDay.Date != "Wednesday, January 10" {
		t.Errorf("best day = %+v; want first mood-9 day (Jan 10)", got.BestDay)
	}
	if got.WorstDay.Mood != 3 {
		t.Errorf("worst day = %+v; want mood 3", got.WorstDay)
	}
	if got.MostConsistent != "sleep_hours" {
		t.Errorf("most consistent = %q; want sleep_hours", got.MostConsistent)
	}
	if got.Averages == nil {
		t.Error("averages missing")
	}
}

func TestReport_SinglePointConsistencyUndefined(t *testing.T) {
	now := mustDate("2024-01-02")
	logs := []DayLog{{Date: "2024-01-01", MoodRating: 5}}
	got := Report(logs, now)
	if got == nil {
		t.Fatal("nil report")
	}
	if got.MostConsistent != "" {
		t.Fatalf("most consistent = %q; want undefined with one point", got.MostConsistent)
	}
}

func TestBadges_Empty(t *testing.T) {
	if got := Badges(nil); got != nil {
		t.Fatalf("Badges(nil) = %v; want none", got)
	}
}

func TestBadges_ThresholdRules(t *testing.T) {
	logs := makeLogs("2024-01-01", 7, func(i int, l *DayLog) {
		l.SleepHours = 8       // 7 days of 7+ sleep
		l.ExerciseMinutes = 10 // never 30+
		l.WaterIntake = 9      // 7 days of 8+
		if i < 3 {
			l.ProductivityScore = 85 // exactly 3 days of 80+
		}
	})
	got := Badges(logs)

	names := make(map[string]bool)
	for _, b := range got {
		names[b.Name] = true
	}
	for _, want := range []string{"Week Warrior", "Sleep Champion", "Hydration Hero", "Productivity Pro"} {
		if !names[want] {
			t.Errorf("missing badge %q in %v", want, got)
		}
	}
	if names["Fitness Enthusiast"] {
		t.Error("Fitness Enthusiast awarded without 30+ minute days")
	}
	if names["Monthly Master"] {
		t.Error("Monthly Master awarded with only 7 logs")
	}
}

func TestBadges_MonthlyMaster(t *testing.T) {
	logs := makeLogs("2024-01-01", 30, nil)
	names := make(map[string]bool)
	for _, b := range Badges(logs) {
		names[b.Name] = true
	}
	if !names["Monthly Master"] || !names["Week Warrior"] {
		t.Fatalf("30 logs must earn both volume badges, got %v", names)
	}
}

func TestMetricName(t *testing.T) {
	if got := MetricName("sleep_hours"); got != "Sleep" {
		t.Errorf("MetricName(sleep_hours) = %q", got)
	}
	if got := MetricName("mystery"); got != "mystery" {
		t.Errorf("unknown key should pass through, got %q", got)
	}
}

func mustDate(s string) time.Time {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		panic(fmt.Sprintf("bad test date %q: %v", s, err))
	}
	return t
}
