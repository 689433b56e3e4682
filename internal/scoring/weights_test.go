package scoring

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

// TestDefaultWeights verifies the defaults and that they sum to 1 so the
// unboosted total is bounded by 1.
func TestDefaultWeights(t *testing.T) {
	w := DefaultWeights()

	sum := w.Lexical + w.Topics + w.Tags + w.Recency + w.Quality + w.Geo + w.Behavior
	if math.Abs(sum-1.0) > 0.000001 {
		t.Errorf("expected weights to sum to 1.0, got %f", sum)
	}
	if w.Lexical != 0.40 {
		t.Errorf("expected lexical weight 0.40, got %f", w.Lexical)
	}
	if w.Geo != 0.05 || w.Behavior != 0.05 {
		t.Errorf("expected geo and behavior weights 0.05, got %f and %f", w.Geo, w.Behavior)
	}
}

// TestMergeCalibration verifies partial overrides keep defaults for zero
// fields.
func TestMergeCalibration(t *testing.T) {
	t.Run("nil base returns defaults", func(t *testing.T) {
		merged := MergeCalibration(nil, &Weights{Lexical: 0.9})
		if merged.Lexical != DefaultWeights().Lexical {
			t.Errorf("expected defaults, got %+v", merged)
		}
	})

	t.Run("nil override copies base", func(t *testing.T) {
		base := DefaultWeights()
		merged := MergeCalibration(base, nil)
		if *merged != *base {
			t.Errorf("expected copy of base, got %+v", merged)
		}
		if merged == base {
			t.Error("expected a copy, got the same pointer")
		}
	})

	t.Run("partial override", func(t *testing.T) {
		merged := MergeCalibration(DefaultWeights(), &Weights{Lexical: 0.5, Recency: 0.2})
		if merged.Lexical != 0.5 || merged.Recency != 0.2 {
			t.Errorf("expected overrides applied, got %+v", merged)
		}
		if merged.Topics != 0.15 || merged.Geo != 0.05 {
			t.Errorf("expected untouched fields to keep defaults, got %+v", merged)
		}
	})
}

// TestLoadCalibration covers file loading and graceful degradation.
func TestLoadCalibration(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		w, err := LoadCalibration("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if *w != *DefaultWeights() {
			t.Errorf("expected defaults, got %+v", w)
		}
	})

	t.Run("missing file returns defaults with error", func(t *testing.T) {
		w, err := LoadCalibration(filepath.Join(t.TempDir(), "missing.json"))
		if err == nil {
			t.Error("expected an error for a missing file")
		}
		if *w != *DefaultWeights() {
			t.Errorf("expected defaults on error, got %+v", w)
		}
	})

	t.Run("invalid json returns defaults with error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
			t.Fatal(err)
		}
		w, err := LoadCalibration(path)
		if err == nil {
			t.Error("expected a parse error")
		}
		if *w != *DefaultWeights() {
			t.Errorf("expected defaults on error, got %+v", w)
		}
	})

	t.Run("valid file merges overrides", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "calibration.json")
		content := `{"version":"1","weights":{"lexical":0.5,"recency":0.2}}`
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
		w, err := LoadCalibration(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if w.Lexical != 0.5 || w.Recency != 0.2 {
			t.Errorf("expected overrides applied, got %+v", w)
		}
		if w.Topics != 0.15 {
			t.Errorf("expected default topics weight, got %f", w.Topics)
		}
	})
}
