// Package sentiment scores free-form journal text for mood. It blends a
// general-purpose lexical polarity score (VADER) with counts from curated
// emotion keyword lists, classifies the result, extracts salient keywords,
// and computes trend/streak/summary aggregates over entry sequences.
//
// Scoring is deterministic text arithmetic, not a generative model. All
// keyword tables are process-wide constant data.
package sentiment

import (
	"math"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
)

// Sentiment labels produced by classification.
const (
	LabelPositive = "positive"
	LabelNegative = "negative"
	LabelNeutral  = "neutral"
)

// Classification thresholds and blend weights. Scores above/below ±0.1 are
// positive/negative; polarity carries 70% of the combined score, the keyword
// ratio 30%.
const (
	positiveThreshold = 0.1
	negativeThreshold = -0.1
	polarityWeight    = 0.7
	keywordWeight     = 0.3
)

// positiveKeywords and negativeKeywords are the curated emotion lists used
// alongside the lexical scorer.
var (
	positiveKeywords = wordSet(
		"happy", "joy", "excited", "grateful", "blessed", "wonderful", "amazing",
		"great", "fantastic", "excellent", "love", "loved", "peaceful", "calm",
		"content", "satisfied", "proud", "accomplished", "successful", "confident",
		"hopeful", "optimistic", "energized", "motivated", "inspired",
	)
	negativeKeywords = wordSet(
		"sad", "depressed", "anxious", "worried", "stressed", "frustrated", "angry",
		"upset", "disappointed", "lonely", "tired", "exhausted", "overwhelmed",
		"difficult", "hard", "struggle", "pain", "hurt", "scared", "afraid",
		"nervous", "insecure", "doubt", "regret", "guilty",
	)
)

var wordRE = regexp.MustCompile(`\w+`)

// Analysis is the full result of scoring one piece of text. Score is bounded
// to [-1, 1], Subjectivity to [0, 1]; numeric fields are rounded to 3
// decimals. It is transient: recomputed on save/edit and stored as fields on
// the journal entry, never persisted independently.
type Analysis struct {
	Sentiment        string  `json:"sentiment"`
	Score            float64 `json:"score"`
	Polarity         float64 `json:"polarity"`
	Subjectivity     float64 `json:"subjectivity"`
	PositiveKeywords int     `json:"positive_keywords"`
	NegativeKeywords int     `json:"negative_keywords"`
}

// Analyzer scores text. It is immutable after construction and safe for
// concurrent use.
type Analyzer struct {
	vader *govader.SentimentIntensityAnalyzer
}

// NewAnalyzer builds an Analyzer backed by the VADER lexicon.
func NewAnalyzer() *Analyzer {
	return &Analyzer{vader: govader.NewSentimentIntensityAnalyzer()}
}

// Analyze scores text by blending lexical polarity with keyword counts.
//
// Polarity is VADER's compound score in [-1, 1]. Subjectivity is the
// proportion of the text VADER attributes to non-neutral valence (positive +
// negative shares), bounded to [0, 1]. The keyword score is
// (positive − negative) / word count, zero when the text has no words, in
// which case the combined score falls back to the bare polarity.
func (a *Analyzer) Analyze(text string) Analysis {
	scores := a.vader.PolarityScores(text)
	polarity := clamp(scores.Compound, -1, 1)
	subjectivity := clamp(scores.Positive+scores.Negative, 0, 1)

	words := tokenize(text)
	positive, negative := 0, 0
	for _, w := range words {
		if _, ok := positiveKeywords[w]; ok {
			positive++
		}
		if _, ok := negativeKeywords[w]; ok {
			negative++
		}
	}

	combined := polarity
	if len(words) > 0 {
		keywordScore := float64(positive-negative) / float64(len(words))
		combined = polarityWeight*polarity + keywordWeight*keywordScore
	}
	combined = clamp(combined, -1, 1)

	return Analysis{
		Sentiment:        Classify(combined),
		Score:            round3(combined),
		Polarity:         round3(polarity),
		Subjectivity:     round3(subjectivity),
		PositiveKeywords: positive,
		NegativeKeywords: negative,
	}
}

// Classify buckets a combined score into a sentiment label.
func Classify(score float64) string {
	switch {
	case score > positiveThreshold:
		return LabelPositive
	case score < negativeThreshold:
		return LabelNegative
	default:
		return LabelNeutral
	}
}

// tokenize lowercases text and splits it into word tokens.
func tokenize(text string) []string {
	return wordRE.FindAllString(strings.ToLower(text), -1)
}

func wordSet(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
