package utils

import (
	"math"
	"testing"
)

func TestHaversineSymmetric(t *testing.T) {
	d1 := HaversineKm(40.7128, -74.0060, 34.0522, -118.2437)
	d2 := HaversineKm(34.0522, -118.2437, 40.7128, -74.0060)
	if d1 != d2 {
		t.Fatalf("expected symmetric distance, got %f and %f", d1, d2)
	}
}

func TestHaversineZeroForSamePoint(t *testing.T) {
	if d := HaversineKm(51.5074, -0.1278, 51.5074, -0.1278); d != 0 {
		t.Fatalf("expected zero distance, got %f", d)
	}
}

func TestHaversineKnownPair(t *testing.T) {
	// New York to Los Angeles is roughly 3936 km.
	d := HaversineKm(40.7128, -74.0060, 34.0522, -118.2437)
	if d < 3900 || d > 3970 {
		t.Fatalf("unexpected NYC-LA distance: %f", d)
	}
}

func TestHaversinePropagatesNaN(t *testing.T) {
	if d := HaversineKm(math.NaN(), 0, 0, 0); !math.IsNaN(d) {
		t.Fatalf("expected NaN to propagate, got %f", d)
	}
}
