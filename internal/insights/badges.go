package insights

// Badge is a gamification award earned when a log-history threshold is met.
type Badge struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// badgeRule awards a badge when its condition holds over the full history.
// All rules are simple counts, not consecutive-day requirements.
type badgeRule struct {
	badge Badge
	earn  func(logs []DayLog) bool
}

var badgeRules = []badgeRule{
	{
		badge: Badge{Name: "Week Warrior", Description: "Logged 7 days in a row", Icon: "🏆"},
		earn:  func(logs []DayLog) bool { return len(logs) >= 7 },
	},
	{
		badge: Badge{Name: "Monthly Master", Description: "Logged 30 days", Icon: "⭐"},
		earn:  func(logs []DayLog) bool { return len(logs) >= 30 },
	},
	{
		badge: Badge{Name: "Sleep Champion", Description: "Got 7+ hours of sleep for 5+ days", Icon: "😴"},
		earn: func(logs []DayLog) bool {
			return countWhere(logs, func(l DayLog) bool { return l.SleepHours >= 7 }) >= 5
		},
	},
	{
		badge: Badge{Name: "Fitness Enthusiast", Description: "Exercised 30+ minutes for 5+ days", Icon: "💪"},
		earn: func(logs []DayLog) bool {
			return countWhere(logs, func(l DayLog) bool { return l.ExerciseMinutes >= 30 }) >= 5
		},
	},
	{
		badge: Badge{Name: "Hydration Hero", Description: "Drank 8+ glasses of water for 5+ days", Icon: "💧"},
		earn: func(logs []DayLog) bool {
			return countWhere(logs, func(l DayLog) bool { return l.WaterIntake >= 8 }) >= 5
		},
	},
	{
		badge: Badge{Name: "Productivity Pro", Description: "Achieved 80+% productivity for 3+ days", Icon: "🚀"},
		earn: func(logs []DayLog) bool {
			return countWhere(logs, func(l DayLog) bool { return l.ProductivityScore >= 80 }) >= 3
		},
	},
}

// Badges evaluates every badge rule against the full log history and returns
// the earned badges in rule-definition order. An empty history earns nothing.
func Badges(logs []DayLog) []Badge {
	if len(logs) == 0 {
		return nil
	}
	var out []Badge
	for _, r := range badgeRules {
		if r.earn(logs) {
			out = append(out, r.badge)
		}
	}
	return out
}

func countWhere(logs []DayLog, match func(DayLog) bool) int {
	n := 0
	for _, l := range logs {
		if match(l) {
			n++
		}
	}
	return n
}
