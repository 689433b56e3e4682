package knowledge

import (
	"strings"
)

// Expansion is the derived term set for one raw interest keyword. It is
// recomputed per call and never persisted.
type Expansion struct {
	Term          string              // normalized original term
	Terms         []string            // full expansion set, original first, first-seen order
	Translations  map[string][]string // per-language translation lists
	Subcategories []string
	Direct        []string
	Indirect      []string
}

// Normalize lowercases and trims a raw interest keyword. All knowledge
// base lookups key on normalized terms.
func Normalize(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// Expand derives the full expansion set for one raw interest keyword:
// the term itself, its translations, graph-related terms, subcategories,
// and generated lexical variants (plural form, diacritic fold, known
// typos). Unknown terms still expand minimally to {term, plural(term)}.
//
// An empty term expands to a singleton set containing only the empty
// string, which downstream scoring treats as non-matching.
func Expand(term string) Expansion {
	normalized := Normalize(term)
	exp := Expansion{Term: normalized}

	if normalized == "" {
		exp.Terms = []string{""}
		return exp
	}

	seen := make(map[string]bool)
	add := func(t string) {
		if t == "" || seen[t] {
			return
		}
		seen[t] = true
		exp.Terms = append(exp.Terms, t)
	}

	add(normalized)

	if langs, ok := translations[normalized]; ok {
		exp.Translations = make(map[string][]string, len(langs))
		for _, lang := range languageOrder {
			terms := langs[lang]
			if len(terms) == 0 {
				continue
			}
			exp.Translations[lang] = terms
			for _, t := range terms {
				add(t)
			}
		}
	}

	if node, ok := graph[normalized]; ok {
		exp.Direct = node.Direct
		exp.Indirect = node.Indirect
		exp.Subcategories = node.Subcategories
		for _, t := range node.Direct {
			add(t)
		}
		for _, t := range node.Indirect {
			add(t)
		}
		for _, t := range node.Subcategories {
			add(t)
		}
	}

	// Lexical variants are generated over the set collected so far, so
	// translations and related terms get plural and folded forms too.
	base := make([]string, len(exp.Terms))
	copy(base, exp.Terms)
	for _, t := range base {
		add(Pluralize(t))
		add(FoldDiacritics(t))
	}
	for _, t := range typoVariants[normalized] {
		add(t)
	}

	return exp
}

// ExpandAll expands every term and returns the union of all expansion
// sets plus subcategories, preserving first-seen order for determinism.
func ExpandAll(terms []string) []string {
	seen := make(map[string]bool)
	var union []string
	for _, term := range terms {
		exp := Expand(term)
		for _, t := range exp.Terms {
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			union = append(union, t)
		}
		for _, t := range exp.Subcategories {
			if seen[t] {
				continue
			}
			seen[t] = true
			union = append(union, t)
		}
	}
	return union
}

// Similarity scores how related two raw interest keywords are, in [0, 1].
//
// Exact matches score 1.0. If either term's expansion set contains the
// other raw term, the score is 0.9. Otherwise the score is the Jaccard
// similarity of the two expansion sets plus a relation-graph bonus:
// +0.30 for a direct relation, +0.15 for an indirect one. The bonus is
// looked up in both directions and the larger one applies, which keeps
// the function symmetric. The total is capped at 1.0.
func Similarity(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	if na == nb {
		return 1.0
	}
	if na == "" || nb == "" {
		return 0.0
	}

	expA, expB := Expand(na), Expand(nb)

	setA := make(map[string]bool, len(expA.Terms))
	for _, t := range expA.Terms {
		setA[t] = true
	}
	setB := make(map[string]bool, len(expB.Terms))
	for _, t := range expB.Terms {
		setB[t] = true
	}

	if setA[nb] || setB[na] {
		return 0.9
	}

	intersection := 0
	for t := range setA {
		if setB[t] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	score := 0.0
	if union > 0 {
		score = float64(intersection) / float64(union)
	}

	score += graphBonus(na, nb)
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// graphBonus returns the relation bonus between two normalized terms,
// taking the strongest relation found in either direction.
func graphBonus(a, b string) float64 {
	bonus := directionalBonus(a, b)
	if rev := directionalBonus(b, a); rev > bonus {
		bonus = rev
	}
	return bonus
}

func directionalBonus(from, to string) float64 {
	node, ok := graph[from]
	if !ok {
		return 0.0
	}
	for _, t := range node.Direct {
		if t == to {
			return 0.30
		}
	}
	for _, t := range node.Indirect {
		if t == to {
			return 0.15
		}
	}
	return 0.0
}

// Weight returns the graph weight for a normalized interest, or the given
// fallback when the interest is not in the graph.
func Weight(term string, fallback float64) float64 {
	if node, ok := graph[Normalize(term)]; ok {
		return node.Weight
	}
	return fallback
}

// Pluralize returns the plural form of a term using simple English rules.
// Terms already ending in "s" are returned unchanged.
func Pluralize(term string) string {
	if term == "" {
		return ""
	}
	switch {
	case strings.HasSuffix(term, "s"):
		return term
	case strings.HasSuffix(term, "y") && len(term) > 1 && !isVowel(rune(term[len(term)-2])):
		return term[:len(term)-1] + "ies"
	case strings.HasSuffix(term, "x"), strings.HasSuffix(term, "z"),
		strings.HasSuffix(term, "ch"), strings.HasSuffix(term, "sh"):
		return term + "es"
	default:
		return term + "s"
	}
}

// FoldDiacritics replaces accented runes with their ASCII folds. Returns
// the input unchanged when no accented runes are present.
func FoldDiacritics(term string) string {
	changed := false
	folded := strings.Map(func(r rune) rune {
		if f, ok := diacriticFold[r]; ok {
			changed = true
			return f
		}
		return r
	}, term)
	if !changed {
		return term
	}
	return folded
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}
