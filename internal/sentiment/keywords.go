package sentiment

import "sort"

// stopWords are dropped before keyword ranking, together with any token of
// three characters or fewer.
var stopWords = wordSet(
	"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for",
	"of", "with", "by", "from", "as", "is", "was", "are", "were", "been",
	"be", "have", "has", "had", "do", "does", "did", "will", "would",
	"could", "should", "may", "might", "can", "this", "that", "these",
	"those", "i", "you", "he", "she", "it", "we", "they", "my", "your",
	"his", "her", "its", "our", "their", "me", "him", "them", "what",
	"which", "who", "when", "where", "why", "how", "just", "so", "today",
	"felt", "feel", "feeling",
)

// Keyword is a ranked word with its occurrence count.
type Keyword struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// ExtractKeywords returns the topN most frequent meaningful words in text.
// Tokens are lowercased, stop words and words of three characters or fewer
// are dropped, and ranking is by descending count with ties broken by
// first-seen order. topN <= 0 defaults to 10.
func ExtractKeywords(text string, topN int) []Keyword {
	if topN <= 0 {
		topN = 10
	}

	counts := make(map[string]int)
	order := make(map[string]int)
	next := 0
	for _, w := range tokenize(text) {
		if len(w) <= 3 {
			continue
		}
		if _, skip := stopWords[w]; skip {
			continue
		}
		if _, seen := counts[w]; !seen {
			order[w] = next
			next++
		}
		counts[w]++
	}

	ranked := make([]Keyword, 0, len(counts))
	for w, c := range counts {
		ranked = append(ranked, Keyword{Word: w, Count: c})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return order[ranked[i].Word] < order[ranked[j].Word]
	})

	if topN < len(ranked) {
		ranked = ranked[:topN]
	}
	return ranked
}
