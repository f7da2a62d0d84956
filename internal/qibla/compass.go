package qibla

import "math"

// Sample is one raw magnetometer reading, delivered at roughly 10 Hz.
type Sample struct {
	X float64
	Y float64
	Z float64
}

// SensorStream is the device compass contract. Subscribe delivers samples to
// the callback until the returned unsubscribe function is called. An error
// means the sensor hardware is unavailable, which is an environmental state
// distinct from any computation error.
type SensorStream interface {
	Subscribe(fn func(Sample)) (unsubscribe func(), err error)
}

// Reading is the live compass/Qibla state derived from one sensor sample.
type Reading struct {
	// Heading is the device heading in [0, 360).
	Heading float64
	// Bearing is the Qibla bearing for the observer location, in [0, 360).
	Bearing float64
	// RelativeAngle is the rotation to apply so the Qibla marker points
	// correctly given the current heading, in [0, 360).
	RelativeAngle float64
	// Accuracy is a heuristic confidence score in [0, 100]. It scales the
	// vertical-axis field strength and is an approximation, not a calibrated
	// magnetometer-fusion result.
	Accuracy float64
}

// Alignment is the three-tier accuracy categorization.
type Alignment string

const (
	AlignmentAligned     Alignment = "aligned"
	AlignmentAdjusting   Alignment = "needs_alignment"
	AlignmentCalibrating Alignment = "calibrating"
)

// deadZone suppresses the unstable atan2 region near the magnetic origin.
const deadZone = 0.01

// Resolve maps a raw sensor sample and the precomputed Qibla bearing into a
// normalized compass reading. The bearing is a function of location only and
// is expected to be recomputed solely on location changes, not per sample.
func Resolve(s Sample, bearing float64) Reading {
	heading := 0.0
	if math.Abs(s.X) > deadZone || math.Abs(s.Y) > deadZone {
		heading = normalize(degrees(math.Atan2(s.Y, s.X)))
	}

	return Reading{
		Heading:       heading,
		Bearing:       normalize(bearing),
		RelativeAngle: math.Mod(360-heading+normalize(bearing), 360),
		Accuracy:      math.Min(100, math.Abs(s.Z)*10),
	}
}

// AlignmentState categorizes the accuracy score: >80 aligned, (60, 80]
// needs alignment, <=60 still calibrating.
func (r Reading) AlignmentState() Alignment {
	switch {
	case r.Accuracy > 80:
		return AlignmentAligned
	case r.Accuracy > 60:
		return AlignmentAdjusting
	default:
		return AlignmentCalibrating
	}
}

// GuidanceKind describes what the user should do to face the Qibla.
type GuidanceKind string

const (
	GuideFacing    GuidanceKind = "facing"     // directly facing, diff <= 5°
	GuideClose     GuidanceKind = "close"      // keep adjusting, diff <= 15°
	GuideTurnLeft  GuidanceKind = "turn_left"  // turn left by Degrees
	GuideTurnRight GuidanceKind = "turn_right" // turn right by Degrees
)

// Guidance is the derived instruction for the Qibla view.
type Guidance struct {
	Kind    GuidanceKind
	Degrees int // rounded angular difference, only meaningful for turns
}

// Guide derives the turn instruction from the current heading and the Qibla
// bearing. The angular difference is taken the short way around the circle;
// the turn direction is right when the bearing exceeds the heading.
func Guide(heading, bearing float64) Guidance {
	diff := math.Abs(bearing - heading)
	if 360-diff < diff {
		diff = 360 - diff
	}

	switch {
	case diff <= 5:
		return Guidance{Kind: GuideFacing}
	case diff <= 15:
		return Guidance{Kind: GuideClose, Degrees: int(math.Round(diff))}
	case bearing > heading:
		return Guidance{Kind: GuideTurnRight, Degrees: int(math.Round(diff))}
	default:
		return Guidance{Kind: GuideTurnLeft, Degrees: int(math.Round(diff))}
	}
}
