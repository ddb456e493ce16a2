package sentiment

import (
	"strings"
	"testing"
)

const (
	happyText = "What a wonderful day, I am so happy and grateful!"
	sadText   = "I feel sad, lonely and exhausted. Everything went wrong and it hurt."
)

func TestMoodTrend_EmptyEntries(t *testing.T) {
	a := NewAnalyzer()
	if got := a.MoodTrend(nil); got != nil {
		t.Fatalf("MoodTrend(nil) = %+v; want nil", got)
	}
}

func TestMoodTrend_GroupsByDate(t *testing.T) {
	a := NewAnalyzer()
	entries := []Entry{
		{Date: "2024-01-01", Content: happyText},
		{Date: "2024-01-01", Content: happyText},
		{Date: "2024-01-02", Content: sadText},
	}
	trend := a.MoodTrend(entries)
	if trend == nil {
		t.Fatal("nil trend")
	}
	if trend.TotalEntries != 3 {
		t.Errorf("TotalEntries = %d; want 3", trend.TotalEntries)
	}
	if len(trend.DailyScores) != 2 {
		t.Errorf("DailyScores has %d dates; want 2", len(trend.DailyScores))
	}
	if trend.BestDay == nil || trend.BestDay.Date != "2024-01-01" {
		t.Errorf("BestDay = %+v; want 2024-01-01", trend.BestDay)
	}
	if trend.WorstDay == nil || trend.WorstDay.Date != "2024-01-02" {
		t.Errorf("WorstDay = %+v; want 2024-01-02", trend.WorstDay)
	}
	if trend.SentimentDistribution[LabelPositive] != 2 {
		t.Errorf("positive count = %d; want 2", trend.SentimentDistribution[LabelPositive])
	}
}

func TestMoodTrend_OverallMoodBuckets(t *testing.T) {
	a := NewAnalyzer()

	mostly := []Entry{
		{Date: "2024-01-01", Content: happyText},
		{Date: "2024-01-02", Content: happyText},
		{Date: "2024-01-03", Content: happyText},
		{Date: "2024-01-04", Content: sadText},
	}
	if got := a.MoodTrend(mostly).OverallMood; got != MoodMostlyPositive {
		t.Errorf("75%% positive: mood = %q; want %q", got, MoodMostlyPositive)
	}

	attention := []Entry{
		{Date: "2024-01-01", Content: sadText},
		{Date: "2024-01-02", Content: sadText},
		{Date: "2024-01-03", Content: happyText},
		{Date: "2024-01-04", Content: sadText},
	}
	if got := a.MoodTrend(attention).OverallMood; got != MoodNeedsAttention {
		t.Errorf("25%% positive: mood = %q; want %q", got, MoodNeedsAttention)
	}
}

func TestOverallMood_RatioThresholds(t *testing.T) {
	pos, neg := LabelPositive, LabelNegative
	cases := []struct {
		labels []string
		want   string
	}{
		{[]string{pos, pos, pos, neg, neg}, MoodMostlyPositive},     // 0.6
		{[]string{pos, pos, neg, neg, neg}, MoodBalanced},           // 0.4
		{[]string{pos, neg, neg, neg, neg}, MoodNeedsAttention},     // 0.2
		{[]string{}, LabelNeutral},                                  // no data
		{[]string{LabelNeutral, LabelNeutral}, MoodNeedsAttention},  // 0.0
	}
	for _, tc := range cases {
		if got := overallMood(tc.labels); got != tc.want {
			t.Errorf("overallMood(%v) = %q; want %q", tc.labels, got, tc.want)
		}
	}
}

func TestWeeklySummary_NoEntries(t *testing.T) {
	a := NewAnalyzer()
	got := a.WeeklySummary(nil)
	if !strings.Contains(got, "No entries") {
		t.Fatalf("summary = %q; want the no-data sentence", got)
	}
}

func TestWeeklySummary_ComposedFromTrend(t *testing.T) {
	a := NewAnalyzer()
	entries := []Entry{
		{Date: "2024-01-01", Content: happyText},
		{Date: "2024-01-02", Content: happyText},
		{Date: "2024-01-03", Content: sadText},
	}
	got := a.WeeklySummary(entries)

	if !strings.Contains(got, "3 journal entries") {
		t.Errorf("missing entry count: %q", got)
	}
	if !strings.Contains(got, "2 positive days") {
		t.Errorf("missing positive count: %q", got)
	}
	if !strings.Contains(got, "Overall, your mood appears") {
		t.Errorf("missing overall mood sentence: %q", got)
	}
	// Best day is Jan 1, 2024 (a Monday).
	if !strings.Contains(got, "Monday, January 1") {
		t.Errorf("missing best-day sentence: %q", got)
	}
}

func TestStreak_ConsecutiveDays(t *testing.T) {
	entries := []Entry{
		{Date: "2024-01-03"},
		{Date: "2024-01-02"},
		{Date: "2024-01-01"},
	}
	if got := Streak(entries); got != 3 {
		t.Fatalf("streak = %d; want 3", got)
	}
}

func TestStreak_GapBreaks(t *testing.T) {
	entries := []Entry{
		{Date: "2024-01-03"},
		{Date: "2024-01-01"},
	}
	if got := Streak(entries); got != 1 {
		t.Fatalf("streak = %d; want 1", got)
	}
}

func TestStreak_SameDayCountsOnce(t *testing.T) {
	entries := []Entry{
		{Date: "2024-01-02"},
		{Date: "2024-01-02"},
		{Date: "2024-01-01"},
	}
	if got := Streak(entries); got != 2 {
		t.Fatalf("streak = %d; want 2", got)
	}
}

func TestStreak_Empty(t *testing.T) {
	if got := Streak(nil); got != 0 {
		t.Fatalf("streak = %d; want 0", got)
	}
	if got := Streak([]Entry{{Date: "not-a-date"}}); got != 0 {
		t.Fatalf("streak with bad dates = %d; want 0", got)
	}
}

func TestStreak_UnorderedInput(t *testing.T) {
	entries := []Entry{
		{Date: "2024-02-10"},
		{Date: "2024-02-12"},
		{Date: "2024-02-11"},
		{Date: "2024-02-08"},
	}
	// 12, 11, 10 are consecutive; the gap to 08 breaks the run.
	if got := Streak(entries); got != 3 {
		t.Fatalf("streak = %d; want 3", got)
	}
}
