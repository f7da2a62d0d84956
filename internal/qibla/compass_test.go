package qibla_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-salat/internal/qibla"
)

func TestResolve_Heading(t *testing.T) {
	tests := []struct {
		name    string
		sample  qibla.Sample
		heading float64
	}{
		{"east", qibla.Sample{X: 1, Y: 0}, 0},
		{"north-axis", qibla.Sample{X: 0, Y: 1}, 90},
		{"quadrant3", qibla.Sample{X: -1, Y: -1}, 225},
		{"dead-zone", qibla.Sample{X: 0.005, Y: -0.003}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := qibla.Resolve(tt.sample, 120)
			assert.InDelta(t, tt.heading, r.Heading, 0.001)
			assert.GreaterOrEqual(t, r.Heading, 0.0)
			assert.Less(t, r.Heading, 360.0)
		})
	}
}

func TestResolve_RelativeAngle(t *testing.T) {
	// relative = (360 - heading + bearing) mod 360
	r := qibla.Resolve(qibla.Sample{X: 0, Y: 1}, 150) // heading 90
	assert.InDelta(t, 60, r.RelativeAngle, 0.001)

	r = qibla.Resolve(qibla.Sample{X: 1, Y: 0}, 243.8) // heading 0
	assert.InDelta(t, 243.8, r.RelativeAngle, 0.001)
}

func TestResolve_AccuracyClamp(t *testing.T) {
	r := qibla.Resolve(qibla.Sample{X: 1, Y: 1, Z: 50}, 0)
	assert.Equal(t, 100.0, r.Accuracy)
	assert.Equal(t, qibla.AlignmentAligned, r.AlignmentState())

	r = qibla.Resolve(qibla.Sample{X: 1, Y: 1, Z: -7}, 0)
	assert.InDelta(t, 70, r.Accuracy, 0.001)
	assert.Equal(t, qibla.AlignmentAdjusting, r.AlignmentState())

	r = qibla.Resolve(qibla.Sample{X: 1, Y: 1, Z: 2}, 0)
	assert.InDelta(t, 20, r.Accuracy, 0.001)
	assert.Equal(t, qibla.AlignmentCalibrating, r.AlignmentState())
}

func TestGuide(t *testing.T) {
	tests := []struct {
		name    string
		heading float64
		bearing float64
		kind    qibla.GuidanceKind
		degrees int
	}{
		{"facing-exact", 243, 243, qibla.GuideFacing, 0},
		{"facing-edge", 240, 245, qibla.GuideFacing, 0},
		{"close", 230, 243, qibla.GuideClose, 13},
		{"turn-right", 100, 243, qibla.GuideTurnRight, 143},
		{"turn-left", 300, 243, qibla.GuideTurnLeft, 57},
		// The turn side follows the bearing/heading comparison, not the short
		// way around the circle; the angle itself is still the short way.
		{"wraparound", 350, 20, qibla.GuideTurnLeft, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := qibla.Guide(tt.heading, tt.bearing)
			assert.Equal(t, tt.kind, g.Kind)
			if g.Kind == qibla.GuideTurnLeft || g.Kind == qibla.GuideTurnRight || g.Kind == qibla.GuideClose {
				assert.Equal(t, tt.degrees, g.Degrees)
			}
		})
	}
}
