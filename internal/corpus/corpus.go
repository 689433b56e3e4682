// Package corpus builds document-frequency statistics over a candidate
// item set for inverse-document-frequency weighting.
//
// Statistics are computed over exactly the candidate set passed to Build
// and must not be shared across scoring calls with different candidates:
// a stale document-frequency table corrupts IDF.
package corpus

import (
	"math"
	"strings"
	"unicode"

	"github.com/toplocs/newsrelevance/internal/model"
)

// MinTokenLength is the shortest token that enters the statistics. Tokens
// below this length are overwhelmingly stopwords and noise.
const MinTokenLength = 3

// Stats holds the corpus size and per-term document frequencies for one
// candidate set.
type Stats struct {
	// Size is the number of items in the corpus. Zero is valid.
	Size int

	// DocFreq counts, per term, the number of items containing the term
	// at least once. In-item repetition does not increment the count.
	DocFreq map[string]int
}

// Build tokenizes every item's text fields and produces the corpus
// statistics. Each unique term counts once per item.
func Build(items []model.ContentItem) *Stats {
	stats := &Stats{
		Size:    len(items),
		DocFreq: make(map[string]int),
	}

	for _, item := range items {
		tokens := Tokenize(ItemText(item))
		seen := make(map[string]bool, len(tokens))
		for _, token := range tokens {
			if seen[token] {
				continue
			}
			seen[token] = true
			stats.DocFreq[token]++
		}
	}

	return stats
}

// IDF returns the smoothed inverse document frequency for a term:
// ln((N+1)/(df+1)). The smoothing keeps the value finite and near zero
// for tiny corpora and unseen terms.
func (s *Stats) IDF(term string) float64 {
	df := s.DocFreq[term]
	return math.Log(float64(s.Size+1) / float64(df+1))
}

// ItemText concatenates the scorable text fields of an item into one
// lowercase blob: title, summary, topics, tags, and locations.
func ItemText(item model.ContentItem) string {
	var b strings.Builder
	b.WriteString(item.Title)
	b.WriteByte(' ')
	b.WriteString(item.Summary)
	for _, topic := range item.Topics {
		b.WriteByte(' ')
		b.WriteString(topic)
	}
	for _, tag := range item.Tags {
		b.WriteByte(' ')
		b.WriteString(tag)
	}
	for _, loc := range item.Locations {
		b.WriteByte(' ')
		b.WriteString(loc)
	}
	return strings.ToLower(b.String())
}

// Tokenize lowercases the text, strips punctuation, splits on whitespace,
// and drops tokens shorter than MinTokenLength.
func Tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, text)

	fields := strings.Fields(cleaned)
	tokens := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) >= MinTokenLength {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
