package strutil

import (
	"math"
	"testing"
)

// TestEditDistance covers the classic Levenshtein cases.
func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"music", "music", 0},
		{"music", "musik", 1},
		{"flaw", "lawn", 2},
		{"café", "cafe", 1},
	}
	for _, tt := range tests {
		if got := EditDistance(tt.a, tt.b); got != tt.expected {
			t.Errorf("EditDistance(%q, %q) = %d, expected %d", tt.a, tt.b, got, tt.expected)
		}
	}
}

// TestSimilarity covers the tiered similarity contract.
func TestSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected float64
	}{
		{"identical", "techno", "techno", 1.0},
		{"case-insensitive identical", "Techno", "techno", 1.0},
		{"substring containment", "tech", "technology", 0.9},
		{"containment reversed", "technology", "tech", 0.9},
		{"one edit in five runes", "music", "musik", 1.0 - 1.0/5.0},
		{"both empty", "", "", 0.0},
		{"one empty", "music", "", 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Similarity(tt.a, tt.b); math.Abs(got-tt.expected) > 0.000001 {
				t.Errorf("Similarity(%q, %q) = %f, expected %f", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

// TestSimilaritySymmetry verifies argument order does not matter.
func TestSimilaritySymmetry(t *testing.T) {
	pairs := [][2]string{
		{"kitten", "sitting"},
		{"tech", "technology"},
		{"berlin", "hamburg"},
	}
	for _, p := range pairs {
		ab := Similarity(p[0], p[1])
		ba := Similarity(p[1], p[0])
		if math.Abs(ab-ba) > 0.000001 {
			t.Errorf("Similarity(%q,%q)=%f but Similarity(%q,%q)=%f", p[0], p[1], ab, p[1], p[0], ba)
		}
	}
}
