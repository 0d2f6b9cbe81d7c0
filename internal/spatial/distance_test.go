package spatial

import (
	"math"
	"testing"
)

func TestHaversineDistanceSymmetric(t *testing.T) {
	d1 := HaversineDistance(9.9252, 78.1198, 13.0827, 80.2707)
	d2 := HaversineDistance(13.0827, 80.2707, 9.9252, 78.1198)
	if d1 != d2 {
		t.Fatalf("distance not symmetric: %f vs %f", d1, d2)
	}
}

func TestHaversineDistanceZero(t *testing.T) {
	if d := HaversineDistance(9.9252, 78.1198, 9.9252, 78.1198); d != 0 {
		t.Fatalf("expected zero distance to self, got %f", d)
	}
}

func TestHaversineDistanceOneDegreeLatitude(t *testing.T) {
	// One degree of latitude is ~111,195 m on a 6,371 km sphere.
	d := HaversineDistance(10.0, 78.0, 11.0, 78.0)
	want := 111195.0
	if math.Abs(d-want)/want > 0.01 {
		t.Fatalf("expected ~%f m, got %f", want, d)
	}
}

func TestBearingCardinal(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
	}{
		{"north", 10, 78, 11, 78, 0},
		{"east", 0, 78, 0, 79, 90},
		{"south", 11, 78, 10, 78, 180},
		{"west", 0, 79, 0, 78, 270},
	}
	for _, tt := range tests {
		got := Bearing(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
		if math.Abs(got-tt.want) > 0.5 {
			t.Fatalf("%s: expected bearing %f, got %f", tt.name, tt.want, got)
		}
	}
}

func TestCompassDirection(t *testing.T) {
	tests := []struct {
		bearing float64
		want    string
	}{
		{0, "N"},
		{44, "NE"},
		{90, "E"},
		{135, "SE"},
		{180, "S"},
		{225, "SW"},
		{270, "W"},
		{315, "NW"},
		{359, "N"},
	}
	for _, tt := range tests {
		if got := CompassDirection(tt.bearing); got != tt.want {
			t.Fatalf("bearing %f: expected %s, got %s", tt.bearing, tt.want, got)
		}
	}
}
