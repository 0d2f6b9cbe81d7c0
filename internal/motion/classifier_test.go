package motion

import (
	"testing"

	"github.com/safespot/safespot-backend/internal/models"
)

func TestClassifyEmptyReading(t *testing.T) {
	res := Classify(Reading{})
	if res.Intensity != models.IntensityIdle {
		t.Fatalf("expected Idle, got %s", res.Intensity)
	}
	if res.IsAbnormal {
		t.Fatal("expected not abnormal")
	}
}

func TestClassifySpeedOnlyHighIntensity(t *testing.T) {
	// Speed above 3.0 m/s reaches High-intensity even with zero acceleration,
	// but abnormal requires sensor magnitudes, not speed.
	res := Classify(Reading{Speed: 3.5})
	if res.Intensity != models.IntensityHigh {
		t.Fatalf("expected High-intensity, got %s", res.Intensity)
	}
	if res.IsAbnormal {
		t.Fatal("expected not abnormal for speed-only reading")
	}
}

func TestClassifyAccelerationAbnormal(t *testing.T) {
	// |(3,3,3)| = sqrt(27) ~ 5.196: above both the High and abnormal thresholds.
	res := Classify(Reading{AccelX: 3, AccelY: 3, AccelZ: 3})
	if res.Intensity != models.IntensityHigh {
		t.Fatalf("expected High-intensity, got %s", res.Intensity)
	}
	if !res.IsAbnormal {
		t.Fatal("expected abnormal")
	}
}

func TestClassifyRotationAbnormal(t *testing.T) {
	res := Classify(Reading{GyroX: 7})
	if !res.IsAbnormal {
		t.Fatal("expected abnormal for rotation magnitude above 6.0")
	}
	if res.Intensity != models.IntensityIdle {
		t.Fatalf("rotation alone should not raise intensity, got %s", res.Intensity)
	}
}

func TestClassifyThresholdLadder(t *testing.T) {
	tests := []struct {
		name    string
		reading Reading
		want    string
	}{
		{"idle below light", Reading{AccelX: 1.0}, models.IntensityIdle},
		{"light accel", Reading{AccelX: 1.5}, models.IntensityLight},
		{"light speed", Reading{Speed: 0.3}, models.IntensityLight},
		{"moderate accel", Reading{AccelY: 3.0}, models.IntensityModerate},
		{"moderate speed", Reading{Speed: 2.0}, models.IntensityModerate},
		{"high accel", Reading{AccelZ: 4.2}, models.IntensityHigh},
	}
	for _, tt := range tests {
		if got := Classify(tt.reading).Intensity; got != tt.want {
			t.Fatalf("%s: expected %s, got %s", tt.name, tt.want, got)
		}
	}
}

func TestClassifyMonotonicInAcceleration(t *testing.T) {
	// Raising a single axis never lowers the intensity rank and never clears
	// the abnormal flag.
	prevRank := -1
	prevAbnormal := false
	for ax := 0.0; ax <= 8.0; ax += 0.25 {
		res := Classify(Reading{AccelX: ax})
		rank := models.IntensityRank(res.Intensity)
		if rank < prevRank {
			t.Fatalf("intensity rank decreased at accelX=%f", ax)
		}
		if prevAbnormal && !res.IsAbnormal {
			t.Fatalf("abnormal flag flipped off at accelX=%f", ax)
		}
		prevRank = rank
		prevAbnormal = res.IsAbnormal
	}
}
