package geo

import (
	"math"
	"testing"
)

// TestHaversine checks the great-circle distance against known city pairs.
func TestHaversine(t *testing.T) {
	tests := []struct {
		name       string
		lat1, lng1 float64
		lat2, lng2 float64
		expectedKm float64
		toleranceK float64
	}{
		{
			name: "same point",
			lat1: 52.52, lng1: 13.405,
			lat2: 52.52, lng2: 13.405,
			expectedKm: 0,
			toleranceK: 0.001,
		},
		{
			name: "berlin to hamburg",
			lat1: 52.52, lng1: 13.405,
			lat2: 53.551, lng2: 9.993,
			expectedKm: 255,
			toleranceK: 5,
		},
		{
			name: "berlin to paris",
			lat1: 52.52, lng1: 13.405,
			lat2: 48.857, lng2: 2.352,
			expectedKm: 877.5,
			toleranceK: 5,
		},
		{
			name: "across the equator",
			lat1: 1.0, lng1: 0.0,
			lat2: -1.0, lng2: 0.0,
			expectedKm: 222.4,
			toleranceK: 1,
		},
		{
			name: "antipodal points",
			lat1: 0, lng1: 0,
			lat2: 0, lng2: 180,
			expectedKm: math.Pi * EarthRadiusKm,
			toleranceK: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Haversine(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			if math.Abs(got-tt.expectedKm) > tt.toleranceK {
				t.Errorf("Haversine() = %f km, expected %f ± %f", got, tt.expectedKm, tt.toleranceK)
			}
		})
	}
}

// TestHaversineSymmetry verifies distance is direction-independent.
func TestHaversineSymmetry(t *testing.T) {
	ab := Haversine(52.52, 13.405, 48.857, 2.352)
	ba := Haversine(48.857, 2.352, 52.52, 13.405)
	if math.Abs(ab-ba) > 0.000001 {
		t.Errorf("expected symmetric distance, got %f and %f", ab, ba)
	}
}

// TestEncode checks geohash encoding against known reference hashes.
func TestEncode(t *testing.T) {
	tests := []struct {
		name      string
		lat, lng  float64
		precision int
		expected  string
	}{
		{
			name: "berlin",
			lat:  52.52, lng: 13.405,
			precision: 6,
			expected:  "u33dc0",
		},
		{
			name: "equator origin",
			lat:  0, lng: 0,
			precision: 5,
			expected:  "7zzzz",
		},
		{
			name: "invalid precision falls back to default",
			lat:  52.52, lng: 13.405,
			precision: 0,
			expected:  "u33dc0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Encode(tt.lat, tt.lng, tt.precision)
			if got != tt.expected {
				t.Errorf("Encode(%f, %f, %d) = %q, expected %q",
					tt.lat, tt.lng, tt.precision, got, tt.expected)
			}
		})
	}
}
