// Package insights derives statistics from daily self-tracking logs: rolling
// averages, windowed trend classification, heuristic cross-metric
// correlations, weekly reports, and gamified progress badges.
//
// Every function is a pure computation over an in-memory log slice. Empty or
// undersized inputs yield explicit no-data results (nil) instead of errors;
// callers branch on emptiness.
package insights

import (
	"fmt"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Trend classifications, split at a ±5% change between windows.
const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

// DefaultWindow is the trend comparison window in days.
const DefaultWindow = 7

const dateLayout = "2006-01-02"

// DayLog is one day of tracked metrics. Date is a YYYY-MM-DD calendar date
// and unique within a log history.
type DayLog struct {
	Date              string  `json:"date"`
	SleepHours        float64 `json:"sleep_hours"`
	MoodRating        float64 `json:"mood_rating"`
	StudyHours        float64 `json:"study_hours"`
	WaterIntake       float64 `json:"water_intake"`
	ExerciseMinutes   float64 `json:"exercise_minutes"`
	ProductivityScore float64 `json:"productivity_score"`
}

// metric binds a stable key to its field accessor. The fixed ordering also
// fixes the iteration order of every per-metric result.
type metric struct {
	key string
	get func(DayLog) float64
}

var metrics = []metric{
	{"sleep_hours", func(l DayLog) float64 { return l.SleepHours }},
	{"mood_rating", func(l DayLog) float64 { return l.MoodRating }},
	{"study_hours", func(l DayLog) float64 { return l.StudyHours }},
	{"water_intake", func(l DayLog) float64 { return l.WaterIntake }},
	{"exercise_minutes", func(l DayLog) float64 { return l.ExerciseMinutes }},
	{"productivity_score", func(l DayLog) float64 { return l.ProductivityScore }},
}

// metricNames maps metric keys to display names.
var metricNames = map[string]string{
	"sleep_hours":        "Sleep",
	"mood_rating":        "Mood",
	"study_hours":        "Study Time",
	"water_intake":       "Water Intake",
	"exercise_minutes":   "Exercise",
	"productivity_score": "Productivity",
}

// MetricName returns the friendly display name for a metric key, or the key
// itself when unknown.
func MetricName(key string) string {
	if n, ok := metricNames[key]; ok {
		return n
	}
	return key
}

// Averages returns the per-metric mean over all logs, rounded to 2 decimals.
// Returns nil for an empty input.
func Averages(logs []DayLog) map[string]float64 {
	if len(logs) == 0 {
		return nil
	}
	out := make(map[string]float64, len(metrics))
	for _, m := range metrics {
		out[m.key] = round2(stat.Mean(values(logs, m.get), nil))
	}
	return out
}

// MetricTrend describes how one metric moved between two comparison windows.
type MetricTrend struct {
	Trend         string  `json:"trend"`
	ChangePercent float64 `json:"change_percent"`
	RecentAvg     float64 `json:"recent_avg"`
	PreviousAvg   float64 `json:"previous_avg"`
}

// Trends compares the mean of the most recent window logs against the
// preceding window. With fewer than 2×window logs the earliest window serves
// as the baseline instead; with fewer than window logs there is no result at
// all (nil, not zeroes). Change above +5% classifies as improving, below -5%
// as declining, otherwise stable. A zero previous average resolves the
// change to 0 rather than dividing by zero. window <= 0 uses DefaultWindow.
func Trends(logs []DayLog, window int) map[string]MetricTrend {
	if window <= 0 {
		window = DefaultWindow
	}
	if len(logs) < window {
		return nil
	}

	sorted := sortByDate(logs)
	recent := sorted[len(sorted)-window:]
	var previous []DayLog
	if len(sorted) >= 2*window {
		previous = sorted[len(sorted)-2*window : len(sorted)-window]
	} else {
		previous = sorted[:window]
	}

	out := make(map[string]MetricTrend, len(metrics))
	for _, m := range metrics {
		recentAvg := stat.Mean(values(recent, m.get), nil)
		previousAvg := stat.Mean(values(previous, m.get), nil)

		change := 0.0
		if previousAvg > 0 {
			change = (recentAvg - previousAvg) / previousAvg * 100
		}

		trend := TrendStable
		switch {
		case change > 5:
			trend = TrendImproving
		case change < -5:
			trend = TrendDeclining
		}

		out[m.key] = MetricTrend{
			Trend:         trend,
			ChangePercent: round1(change),
			RecentAvg:     round2(recentAvg),
			PreviousAvg:   round2(previousAvg),
		}
	}
	return out
}

// Insight is a single heuristic correlation finding.
type Insight struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Icon    string `json:"icon"`
}

// Correlations runs the fixed set of hand-coded cross-metric comparisons and
// returns the insights whose effect size clears its threshold. At least 7
// logs are required; below that the result is empty. Order follows the
// comparison definitions, not significance.
func Correlations(logs []DayLog) []Insight {
	if len(logs) < 7 {
		return nil
	}

	var out []Insight

	// Sleep vs mood: 7+ hour nights against shorter ones.
	highSleep := filter(logs, func(l DayLog) bool { return l.SleepHours >= 7 })
	lowSleep := filter(logs, func(l DayLog) bool { return l.SleepHours < 7 })
	if len(highSleep) > 0 && len(lowSleep) > 0 {
		diff := mean(highSleep, func(l DayLog) float64 { return l.MoodRating }) -
			mean(lowSleep, func(l DayLog) float64 { return l.MoodRating })
		if diff > 0.5 {
			out = append(out, Insight{
				Type:    "sleep_mood",
				Message: fmt.Sprintf("On days you sleep 7+ hours, your mood is usually %v points higher.", round1(diff)),
				Icon:    "😴",
			})
		}
	}

	// Exercise vs productivity: 30+ minute days against the rest.
	highEx := filter(logs, func(l DayLog) bool { return l.ExerciseMinutes >= 30 })
	lowEx := filter(logs, func(l DayLog) bool { return l.ExerciseMinutes < 30 })
	if len(highEx) > 0 && len(lowEx) > 0 {
		diff := mean(highEx, func(l DayLog) float64 { return l.ProductivityScore }) -
			mean(lowEx, func(l DayLog) float64 { return l.ProductivityScore })
		if diff > 5 {
			out = append(out, Insight{
				Type:    "exercise_productivity",
				Message: fmt.Sprintf("You tend to be %v%% more productive on days you exercise 30+ minutes.", round1(diff)),
				Icon:    "💪",
			})
		}
	}

	// Long study sessions vs mood.
	highStudy := filter(logs, func(l DayLog) bool { return l.StudyHours >= 4 })
	if len(highStudy) > 0 {
		studyMood := mean(highStudy, func(l DayLog) float64 { return l.MoodRating })
		overallMood := mean(logs, func(l DayLog) float64 { return l.MoodRating })
		if studyMood < overallMood-0.5 {
			out = append(out, Insight{
				Type:    "study_mood",
				Message: "Long study sessions (4+ hours) seem to lower your mood. Consider taking more breaks!",
				Icon:    "📚",
			})
		}
	}

	// Hydration vs productivity.
	hydrated := filter(logs, func(l DayLog) bool { return l.WaterIntake >= 8 })
	if len(hydrated) > 0 && len(hydrated) < len(logs) {
		hydratedProd := mean(hydrated, func(l DayLog) float64 { return l.ProductivityScore })
		overallProd := mean(logs, func(l DayLog) float64 { return l.ProductivityScore })
		if hydratedProd > overallProd+5 {
			out = append(out, Insight{
				Type:    "water_productivity",
				Message: "Staying well-hydrated (8+ glasses) boosts your productivity!",
				Icon:    "💧",
			})
		}
	}

	return out
}

// DayHighlight marks the best or worst day of a report period.
type DayHighlight struct {
	Date string  `json:"date"`
	Mood float64 `json:"mood"`
}

// WeeklyReport aggregates the last 7 calendar days relative to now.
type WeeklyReport struct {
	Period         string                 `json:"period"`
	DaysLogged     int                    `json:"days_logged"`
	Averages       map[string]float64     `json:"averages"`
	Trends         map[string]MetricTrend `json:"trends,omitempty"`
	Insights       []Insight              `json:"insights"`
	BestDay        DayHighlight           `json:"best_day"`
	WorstDay       DayHighlight           `json:"worst_day"`
	MostConsistent string                 `json:"most_consistent,omitempty"`
}

// Report builds a WeeklyReport over the logs falling within the 7 calendar
// days before now. Best and worst days are the mood extremes (first
// occurrence wins ties); the most consistent metric is the one among sleep,
// exercise, and study with the lowest sample standard deviation, requiring at
// least two points. Returns nil when no logs fall inside the window.
func Report(logs []DayLog, now time.Time) *WeeklyReport {
	if len(logs) == 0 {
		return nil
	}

	weekAgo := now.AddDate(0, 0, -7)
	var recent []DayLog
	for _, l := range logs {
		d, err := time.Parse(dateLayout, l.Date)
		if err != nil {
			continue
		}
		if !d.Before(weekAgo) {
			recent = append(recent, l)
		}
	}
	if len(recent) == 0 {
		return nil
	}

	best, worst := recent[0], recent[0]
	for _, l := range recent[1:] {
		if l.MoodRating > best.MoodRating {
			best = l
		}
		if l.MoodRating < worst.MoodRating {
			worst = l
		}
	}

	consistency := map[string]func(DayLog) float64{
		"sleep_hours":      func(l DayLog) float64 { return l.SleepHours },
		"exercise_minutes": func(l DayLog) float64 { return l.ExerciseMinutes },
		"study_hours":      func(l DayLog) float64 { return l.StudyHours },
	}
	mostConsistent := ""
	lowest := math.Inf(1)
	if len(recent) > 1 {
		for _, key := range []string{"sleep_hours", "exercise_minutes", "study_hours"} {
			sd := stat.StdDev(values(recent, consistency[key]), nil)
			if sd < lowest {
				lowest = sd
				mostConsistent = key
			}
		}
	}

	return &WeeklyReport{
		Period:         fmt.Sprintf("%s - %s", weekAgo.Format("January 2"), now.Format("January 2, 2006")),
		DaysLogged:     len(recent),
		Averages:       Averages(recent),
		Trends:         Trends(logs, DefaultWindow),
		Insights:       Correlations(logs),
		BestDay:        DayHighlight{Date: formatDay(best.Date), Mood: best.MoodRating},
		WorstDay:       DayHighlight{Date: formatDay(worst.Date), Mood: worst.MoodRating},
		MostConsistent: mostConsistent,
	}
}

func formatDay(date string) string {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return date
	}
	return d.Format("Monday, January 2")
}

func sortByDate(logs []DayLog) []DayLog {
	sorted := make([]DayLog, len(logs))
	copy(sorted, logs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })
	return sorted
}

func values(logs []DayLog, get func(DayLog) float64) []float64 {
	out := make([]float64, len(logs))
	for i, l := range logs {
		out[i] = get(l)
	}
	return out
}

func filter(logs []DayLog, keep func(DayLog) bool) []DayLog {
	var out []DayLog
	for _, l := range logs {
		if keep(l) {
			out = append(out, l)
		}
	}
	return out
}

func mean(logs []DayLog, get func(DayLog) float64) float64 {
	return stat.Mean(values(logs, get), nil)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round1(v float64) float64 { return math.Round(v*10) / 10 }
