package geo

import (
	"math"
	"testing"
)

func TestDistanceMZero(t *testing.T) {
	if d := DistanceM(51.5074, -0.1278, 51.5074, -0.1278); d != 0 {
		t.Fatalf("expected 0, got %v", d)
	}
}

func TestDistanceMKnownPoints(t *testing.T) {
	// London to Birmingham city centres, roughly 163 km.
	d := DistanceM(51.5074, -0.1278, 52.4862, -1.8904)
	if math.Abs(d-163000) > 2000 {
		t.Fatalf("expected roughly 163km, got %vm", d)
	}
}

func TestWithinRadius(t *testing.T) {
	site := struct{ lat, lng float64 }{51.5155, -0.0922}

	// ~50m north of the site.
	if !WithinRadius(51.51595, -0.0922, site.lat, site.lng, 100) {
		t.Fatal("expected point inside 100m geofence")
	}
	// ~1.1km away.
	if WithinRadius(51.5255, -0.0922, site.lat, site.lng, 100) {
		t.Fatal("expected point outside 100m geofence")
	}
}
