package export

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/wellnesshub/go-wellness-backend/internal/domain"
)

var titleCaser = cases.Title(language.English)

// JournalText renders journal entries as a plain-text document: a banner,
// then one block per entry in the given order (callers pass them date
// ascending, the reading order of a diary).
func JournalText(entries []domain.JournalEntry) []byte {
	var b strings.Builder
	b.WriteString("MY JOURNAL ENTRIES\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	for _, e := range entries {
		b.WriteString("Date: " + e.Date + " at " + e.Time + "\n")
		b.WriteString("Title: " + e.Title + "\n")
		b.WriteString("Mood: " + moodLabel(e.Sentiment) + "\n")
		b.WriteString(strings.Repeat("-", 50) + "\n")
		b.WriteString(e.Content + "\n")
		b.WriteString(strings.Repeat("=", 50) + "\n\n")
	}
	return []byte(b.String())
}

func moodLabel(sentiment string) string {
	if sentiment == "" {
		return "N/A"
	}
	return titleCaser.String(sentiment)
}
