// Package scoring computes the composite relevance score for candidate
// content items: six independently normalized subscores combined by
// calibrated weights, with a multiplicative proximity boost applied to
// the summed total.
package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/toplocs/newsrelevance/internal/corpus"
	"github.com/toplocs/newsrelevance/internal/geo"
	"github.com/toplocs/newsrelevance/internal/model"
	"github.com/toplocs/newsrelevance/internal/strutil"
)

const (
	// DefaultRadiusKm applies when a user location carries no radius.
	DefaultRadiusKm = 10.0

	// BreakingBonus is the flat recency bonus for breaking items.
	BreakingBonus = 0.3

	// BookmarkBonus is the flat behavioral bonus for bookmarked items.
	BookmarkBonus = 0.5

	// MaxMatchedTerms bounds the explanation term list.
	MaxMatchedTerms = 5
)

// Proximity multiplier tiers, in kilometers. The multiplier rewards items
// physically next to the user on top of the additive geo subscore.
const (
	proximityTier1Km = 0.1  // < 100 m: x10
	proximityTier2Km = 0.25 // < 250 m: x5
	proximityTier3Km = 0.5  // < 500 m: x2
)

// reputableSources is the fixed allow-list for the quality subscore.
var reputableSources = map[string]bool{
	"reuters":          true,
	"bbc":              true,
	"the guardian":     true,
	"associated press": true,
	"dpa":              true,
	"zeit":             true,
	"spiegel":          true,
	"nytimes":          true,
}

// Input bundles everything one scoring pass needs. ExpandedTerms and
// Stats are computed once by the caller and shared read-only across
// items; Now fixes the recency reference so repeated calls over the same
// input are bit-identical.
type Input struct {
	Items         []model.ContentItem
	ExpandedTerms []string // expanded interest set, from knowledge.ExpandAll
	InterestCount int      // raw interest term count, normalization denominator
	Location      *model.UserLocation
	Behavior      *model.BehaviorProfile
	Stats         *corpus.Stats
	Now           time.Time
}

// Score computes the composite score for every item and returns them
// sorted descending by total. The sort is stable: ties keep input order.
//
// Missing optional inputs (location, behavior, item coordinate) zero the
// corresponding subscore and leave the proximity multiplier at 1; an
// empty candidate set returns an empty slice.
func Score(in Input, w *Weights) []model.ScoredItem {
	if w == nil {
		w = DefaultWeights()
	}
	if in.Stats == nil {
		in.Stats = corpus.Build(in.Items)
	}

	foodOriented := false
	for _, term := range in.ExpandedTerms {
		if term == "food" {
			foodOriented = true
			break
		}
	}

	results := make([]model.ScoredItem, 0, len(in.Items))
	for _, item := range in.Items {
		text := corpus.ItemText(item)

		lexical, matched := LexicalScore(text, in.ExpandedTerms, in.InterestCount, in.Stats)
		topics := CategoricalScore(in.ExpandedTerms, item.Topics, in.InterestCount, true)
		tags := CategoricalScore(in.ExpandedTerms, item.Tags, in.InterestCount, false)
		recency := RecencyScore(item, in.Now)
		quality := QualityScore(item, text, foodOriented)
		geoScore, distanceKm, hasDistance := GeoScore(item, in.Location)
		behavior := BehaviorScore(item, in.Behavior)

		total := lexical*w.Lexical +
			topics*w.Topics +
			tags*w.Tags +
			recency*w.Recency +
			quality*w.Quality +
			geoScore*w.Geo +
			behavior*w.Behavior

		boost := 1.0
		if hasDistance {
			boost = ProximityBoost(distanceKm)
		}
		total *= boost

		breakdown := model.ScoreBreakdown{
			Lexical:        lexical,
			Topics:         topics,
			Tags:           tags,
			Recency:        recency,
			Quality:        quality,
			Geo:            geoScore,
			Behavior:       behavior,
			Total:          total,
			ProximityBoost: boost,
			MatchedTerms:   matched,
		}

		results = append(results, model.ScoredItem{
			Item:      item,
			Breakdown: breakdown,
			Reason:    buildReason(breakdown, item),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Breakdown.Total > results[j].Breakdown.Total
	})

	return results
}

// LexicalScore computes the TF-IDF relevance of the item text against the
// expanded interest terms: occurrence count times smoothed IDF, summed
// per matched term, averaged by the raw interest count, clamped to 1.
// Short terms only count on word boundaries so two-letter interests such
// as "ai" do not match inside unrelated words.
//
// Returns the score and the top matched terms for explanation, strongest
// contribution first.
func LexicalScore(text string, expanded []string, interestCount int, stats *corpus.Stats) (float64, []string) {
	if interestCount < 1 || len(expanded) == 0 {
		return 0.0, nil
	}

	type match struct {
		term         string
		contribution float64
	}
	var matches []match

	sum := 0.0
	for _, term := range expanded {
		if term == "" {
			continue
		}
		tf := countTerm(text, term)
		if tf == 0 {
			continue
		}
		contribution := float64(tf) * (1.0 + stats.IDF(term))
		sum += contribution
		matches = append(matches, match{term: term, contribution: contribution})
	}

	if len(matches) == 0 {
		return 0.0, nil
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].contribution > matches[j].contribution
	})
	limit := len(matches)
	if limit > MaxMatchedTerms {
		limit = MaxMatchedTerms
	}
	matched := make([]string, limit)
	for i := 0; i < limit; i++ {
		matched[i] = matches[i].term
	}

	return clamp(sum / float64(interestCount)), matched
}

// CategoricalScore scores string-similarity matches between the expanded
// interest terms and the item's topic or tag labels. Strong matches
// (similarity > 0.8) award a full point, moderate ones (> 0.5) half a
// point, and for topics weak ones (> 0.3) a quarter point. The point sum
// is normalized by the raw interest count and clamped to 1.
func CategoricalScore(expanded []string, labels []string, interestCount int, includeWeakTier bool) float64 {
	if interestCount < 1 || len(expanded) == 0 || len(labels) == 0 {
		return 0.0
	}

	points := 0.0
	for _, term := range expanded {
		if term == "" {
			continue
		}
		for _, label := range labels {
			similarity := strutil.Similarity(term, label)
			switch {
			case similarity > 0.8:
				points += 1.0
			case similarity > 0.5:
				points += 0.5
			case includeWeakTier && similarity > 0.3:
				points += 0.25
			}
		}
	}

	return clamp(points / float64(interestCount))
}

// RecencyScore applies exponential age decay exp(-ageHours/24), with a
// flat bonus for items tagged "breaking", clamped to 1. Future-dated
// items score 1.
func RecencyScore(item model.ContentItem, now time.Time) float64 {
	ageHours := float64(now.UnixMilli()-item.PublishedAt) / (1000 * 60 * 60)
	if ageHours < 0 {
		ageHours = 0
	}
	score := math.Exp(-ageHours / 24)

	if hasTag(item, "breaking") {
		score += BreakingBonus
	}
	return clamp(score)
}

// QualityScore accumulates fixed bonuses for structural richness. The
// food-oriented ladder adds further bonuses when the user's interests
// expand to food and the item text mentions dining signals.
func QualityScore(item model.ContentItem, text string, foodOriented bool) float64 {
	score := 0.0
	if item.ImageURL != "" {
		score += 0.2
	}
	if item.Coordinate != nil {
		score += 0.15
	}
	if len(item.Body) > 500 {
		score += 0.15
	}
	if len(item.Tags) > 0 {
		score += 0.1
	}
	if len(item.Topics) > 1 {
		score += 0.15
	}
	if len(item.Summary) > 200 {
		score += 0.15
	}
	if reputableSources[strings.ToLower(item.Source)] {
		score += 0.1
	}

	if foodOriented {
		if strings.Contains(text, "restaurant") {
			score += 0.1
		}
		if strings.Contains(text, "recipe") {
			score += 0.05
		}
		if strings.Contains(text, "menu") {
			score += 0.05
		}
	}

	return clamp(score)
}

// GeoScore computes the linear distance decay within the user's radius.
// Returns the subscore, the computed distance in kilometers, and whether
// a distance was computable at all (both a user location and an item
// coordinate present).
func GeoScore(item model.ContentItem, loc *model.UserLocation) (float64, float64, bool) {
	if loc == nil || item.Coordinate == nil {
		return 0.0, 0.0, false
	}

	radius := loc.RadiusKm
	if radius <= 0 {
		radius = DefaultRadiusKm
	}

	distance := geo.Haversine(loc.Lat, loc.Lng, item.Coordinate.Lat, item.Coordinate.Lng)
	if distance > radius {
		return 0.0, distance, true
	}
	return 1.0 - distance/radius, distance, true
}

// BehaviorScore sums the user's learned topic and source affinities for
// the item, plus a flat bonus when the item is bookmarked, clamped to 1.
func BehaviorScore(item model.ContentItem, behavior *model.BehaviorProfile) float64 {
	if behavior == nil {
		return 0.0
	}

	score := 0.0
	for _, topic := range item.Topics {
		score += behavior.TopicWeights[strings.ToLower(topic)]
	}
	score += behavior.SourceWeights[strings.ToLower(item.Source)]
	if behavior.Bookmarked[item.ID] {
		score += BookmarkBonus
	}

	return clamp(score)
}

// ProximityBoost returns the multiplicative boost tier for a distance:
// x10 under 100 m, x5 under 250 m, x2 under 500 m, x1 otherwise.
func ProximityBoost(distanceKm float64) float64 {
	switch {
	case distanceKm < proximityTier1Km:
		return 10.0
	case distanceKm < proximityTier2Km:
		return 5.0
	case distanceKm < proximityTier3Km:
		return 2.0
	default:
		return 1.0
	}
}

// countTerm counts occurrences of a term in the item text. Terms shorter
// than four runes must match whole words; longer terms count substring
// occurrences so inflected forms still match.
func countTerm(text, term string) int {
	if len([]rune(term)) >= 4 {
		return strings.Count(text, term)
	}
	count := 0
	for _, field := range strings.Fields(text) {
		if strings.Trim(field, ".,;:!?()[]{}\"'") == term {
			count++
		}
	}
	return count
}

func hasTag(item model.ContentItem, tag string) bool {
	for _, t := range item.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// buildReason produces the human-readable explanation for one scored
// item, preferring matched interest terms, then proximity, then recency.
func buildReason(b model.ScoreBreakdown, item model.ContentItem) string {
	if len(b.MatchedTerms) > 0 {
		return fmt.Sprintf("Matches your interests: %s", strings.Join(b.MatchedTerms, ", "))
	}
	if b.ProximityBoost > 1 {
		return "Happening near you"
	}
	if hasTag(item, "breaking") {
		return "Breaking news"
	}
	if b.Recency > 0.5 {
		return "Recently published"
	}
	return "May interest you"
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
