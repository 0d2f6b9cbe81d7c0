// Package motion classifies raw accelerometer/gyroscope/speed readings into
// an intensity label and an abnormal-motion flag.
package motion

import (
	"math"

	"github.com/safespot/safespot-backend/internal/models"
)

// Intensity thresholds. A sample is promoted to a level when either its
// acceleration magnitude or its scalar speed exceeds the level's threshold.
const (
	LightAccelThreshold    = 1.2
	LightSpeedThreshold    = 0.2
	ModerateAccelThreshold = 2.5
	ModerateSpeedThreshold = 1.5
	HighAccelThreshold     = 4.0
	HighSpeedThreshold     = 3.0
)

// Abnormal-motion thresholds over the raw sensor magnitudes.
const (
	AbnormalAccelThreshold = 4.5
	AbnormalGyroThreshold  = 6.0
)

// Reading is the sensor input to the classifier. Missing axes are zero.
type Reading struct {
	Speed  float64
	AccelX float64
	AccelY float64
	AccelZ float64
	GyroX  float64
	GyroY  float64
	GyroZ  float64
}

// Result holds the derived labels attached to a sample before persistence.
type Result struct {
	Intensity  string
	IsAbnormal bool
}

// MotionMagnitude returns the Euclidean norm of the acceleration vector.
func MotionMagnitude(r Reading) float64 {
	return math.Sqrt(r.AccelX*r.AccelX + r.AccelY*r.AccelY + r.AccelZ*r.AccelZ)
}

// RotationMagnitude returns the Euclidean norm of the rotation vector.
func RotationMagnitude(r Reading) float64 {
	return math.Sqrt(r.GyroX*r.GyroX + r.GyroY*r.GyroY + r.GyroZ*r.GyroZ)
}

// Classify assigns an intensity label and abnormal flag to a reading.
// Thresholds are checked in ascending order so the highest satisfied level
// wins; a reading with every field absent classifies as Idle / not abnormal.
func Classify(r Reading) Result {
	motionMag := MotionMagnitude(r)
	rotationMag := RotationMagnitude(r)

	intensity := models.IntensityIdle
	if motionMag > LightAccelThreshold || r.Speed > LightSpeedThreshold {
		intensity = models.IntensityLight
	}
	if motionMag > ModerateAccelThreshold || r.Speed > ModerateSpeedThreshold {
		intensity = models.IntensityModerate
	}
	if motionMag > HighAccelThreshold || r.Speed > HighSpeedThreshold {
		intensity = models.IntensityHigh
	}

	return Result{
		Intensity:  intensity,
		IsAbnormal: motionMag > AbnormalAccelThreshold || rotationMag > AbnormalGyroThreshold,
	}
}
