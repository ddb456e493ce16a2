package sentiment

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Overall mood buckets keyed on the share of positive entries.
const (
	MoodMostlyPositive = "mostly positive"
	MoodBalanced       = "balanced"
	MoodNeedsAttention = "needs attention"
)

const dateLayout = "2006-01-02"

// Entry is the minimal journal record the trend functions need. Date is a
// YYYY-MM-DD calendar date; Content is the raw entry text.
type Entry struct {
	Date    string
	Content string
}

// DayScore pairs a calendar date with its mean sentiment score.
type DayScore struct {
	Date  string  `json:"date"`
	Score float64 `json:"score"`
}

// Trend summarizes sentiment across a sequence of entries: label counts,
// per-date mean scores, the best and worst days, and an overall mood bucket.
// Derived and read-only; never persisted.
type Trend struct {
	TotalEntries          int                `json:"total_entries"`
	SentimentDistribution map[string]int     `json:"sentiment_distribution"`
	DailyScores           map[string]float64 `json:"daily_scores"`
	BestDay               *DayScore          `json:"best_day,omitempty"`
	WorstDay              *DayScore          `json:"worst_day,omitempty"`
	OverallMood           string             `json:"overall_mood"`
}

// MoodTrend analyzes every entry, groups scores by calendar date (averaging
// same-day entries), and returns the aggregate Trend. An empty input yields
// nil: callers must branch on the no-data case rather than receive zeroes.
func (a *Analyzer) MoodTrend(entries []Entry) *Trend {
	if len(entries) == 0 {
		return nil
	}

	distribution := make(map[string]int)
	perDay := make(map[string][]float64)
	labels := make([]string, 0, len(entries))

	for _, e := range entries {
		analysis := a.Analyze(e.Content)
		date := e.Date
		if date == "" {
			date = time.Now().Format(dateLayout)
		}
		distribution[analysis.Sentiment]++
		labels = append(labels, analysis.Sentiment)
		perDay[date] = append(perDay[date], analysis.Score)
	}

	daily := make(map[string]float64, len(perDay))
	var best, worst *DayScore
	// Deterministic best/worst selection regardless of map order.
	dates := make([]string, 0, len(perDay))
	for d := range perDay {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	for _, d := range dates {
		scores := perDay[d]
		sum := 0.0
		for _, s := range scores {
			sum += s
		}
		avg := sum / float64(len(scores))
		daily[d] = avg
		if best == nil || avg > best.Score {
			best = &DayScore{Date: d, Score: avg}
		}
		if worst == nil || avg < worst.Score {
			worst = &DayScore{Date: d, Score: avg}
		}
	}

	return &Trend{
		TotalEntries:          len(entries),
		SentimentDistribution: distribution,
		DailyScores:           daily,
		BestDay:               best,
		WorstDay:              worst,
		OverallMood:           overallMood(labels),
	}
}

// overallMood buckets a label sequence by its positive ratio: at least 60%
// positive is "mostly positive", at least 40% is "balanced", anything less
// "needs attention".
func overallMood(labels []string) string {
	if len(labels) == 0 {
		return LabelNeutral
	}
	positive := 0
	for _, l := range labels {
		if l == LabelPositive {
			positive++
		}
	}
	ratio := float64(positive) / float64(len(labels))
	switch {
	case ratio >= 0.6:
		return MoodMostlyPositive
	case ratio >= 0.4:
		return MoodBalanced
	default:
		return MoodNeedsAttention
	}
}

// WeeklySummary composes a short natural-language recap from the mood trend.
// The sentence is assembled deterministically from counts and best/worst
// dates; there is no generative component.
func (a *Analyzer) WeeklySummary(entries []Entry) string {
	if len(entries) == 0 {
		return "No entries to analyze yet. Start journaling to see your mood trends!"
	}
	trend := a.MoodTrend(entries)

	parts := []string{fmt.Sprintf("You made %d journal entries.", trend.TotalEntries)}

	dist := trend.SentimentDistribution
	if dist[LabelPositive] > 0 {
		parts = append(parts, fmt.Sprintf("You had %d positive days", dist[LabelPositive]))
	}
	if dist[LabelNegative] > 0 {
		parts = append(parts, fmt.Sprintf("%d challenging days", dist[LabelNegative]))
	}
	if dist[LabelNeutral] > 0 {
		parts = append(parts, fmt.Sprintf("and %d neutral days.", dist[LabelNeutral]))
	}

	if trend.BestDay != nil {
		if d, err := time.Parse(dateLayout, trend.BestDay.Date); err == nil {
			parts = append(parts, fmt.Sprintf("Your most positive day was %s.", d.Format("Monday, January 2")))
		}
	}
	if trend.WorstDay != nil && trend.WorstDay.Score < negativeThreshold {
		if d, err := time.Parse(dateLayout, trend.WorstDay.Date); err == nil {
			parts = append(parts, fmt.Sprintf("You seemed to struggle most on %s.", d.Format("Monday, January 2")))
		}
	}

	parts = append(parts, fmt.Sprintf("Overall, your mood appears %s.", trend.OverallMood))
	return strings.Join(parts, " ")
}

// Streak counts consecutive calendar days with at least one entry, walking
// backward from the most recent entry date. Multiple entries on one date
// count once; the count stops at the first gap wider than one day. Unparseable
// dates are skipped.
func Streak(entries []Entry) int {
	if len(entries) == 0 {
		return 0
	}

	seen := make(map[string]struct{}, len(entries))
	days := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		if _, dup := seen[e.Date]; dup {
			continue
		}
		d, err := time.Parse(dateLayout, e.Date)
		if err != nil {
			continue
		}
		seen[e.Date] = struct{}{}
		days = append(days, d)
	}
	if len(days) == 0 {
		return 0
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	streak := 1
	current := days[0]
	for _, d := range days[1:] {
		diff := int(current.Sub(d).Hours() / 24)
		if diff == 1 {
			streak++
			current = d
		} else if diff > 1 {
			break
		}
	}
	return streak
}
