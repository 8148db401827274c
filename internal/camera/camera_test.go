package camera

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDefaults(t *testing.T) {
	s := New()
	assert.Equal(t, View{Heading: 90, Pitch: 90, Roll: 0, FieldOfView: 90}, s.View())
	lo, hi := s.PitchRange()
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 180.0, hi)
}

func TestNewClampsInitialValues(t *testing.T) {
	s := New(WithOrientation(10, 400, 5), WithFieldOfView(10))
	assert.Equal(t, 180.0, s.Pitch())
	assert.Equal(t, 30.0, s.FieldOfView())
	assert.Equal(t, 10.0, s.Heading())
	assert.Equal(t, 5.0, s.Roll())
}

func TestSetPitchClamps(t *testing.T) {
	s := New()
	s.SetPitch(1000)
	assert.Equal(t, 180.0, s.Pitch())
	s.SetPitch(-1e9)
	assert.Equal(t, 0.0, s.Pitch())
	s.SetPitch(45)
	assert.Equal(t, 45.0, s.Pitch())
}

func TestSetFieldOfViewClamps(t *testing.T) {
	s := New()
	s.SetFieldOfView(-100)
	assert.Equal(t, 30.0, s.FieldOfView())
	s.SetFieldOfView(500)
	assert.Equal(t, 90.0, s.FieldOfView())
	s.SetFieldOfView(-15)
	assert.Equal(t, 75.0, s.FieldOfView())
}

func TestHeadingIsUnbounded(t *testing.T) {
	s := New(WithOrientation(0, 90, 0))
	s.SetHeading(725)
	assert.Equal(t, 725.0, s.Heading())
	assert.Equal(t, 5.0, s.NormalizedHeading())
	s.SetHeading(-735)
	assert.Equal(t, -10.0, s.Heading())
	assert.Equal(t, 350.0, s.NormalizedHeading())
}

func TestNonFiniteDeltasIgnored(t *testing.T) {
	s := New()
	before := s.View()
	s.SetHeading(math.NaN())
	s.SetPitch(math.Inf(1))
	s.SetFieldOfView(math.NaN())
	s.SetRoll(math.Inf(-1))
	assert.Equal(t, before, s.View())
}

func TestClampInvariantUnderRandomDeltas(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := New()
	for i := 0; i < 10000; i++ {
		d := (rng.Float64() - 0.5) * math.Pow(10, float64(rng.Intn(8)))
		switch rng.Intn(3) {
		case 0:
			s.SetPitch(d)
		case 1:
			s.SetFieldOfView(d)
		default:
			s.SetHeading(d)
		}
		if s.Pitch() < MinPitch || s.Pitch() > MaxPitch {
			t.Fatalf("pitch %v out of range after step %d", s.Pitch(), i)
		}
		if s.FieldOfView() < MinFOV || s.FieldOfView() > MaxFOV {
			t.Fatalf("fov %v out of range after step %d", s.FieldOfView(), i)
		}
	}
}

func TestCustomRanges(t *testing.T) {
	s := New(WithPitchRange(10, 170), WithFOVRange(20, 120))
	s.SetPitch(-500)
	assert.Equal(t, 10.0, s.Pitch())
	s.SetFieldOfView(100)
	assert.Equal(t, 120.0, s.FieldOfView())

	// out-of-range requests keep the defaults
	d := New(WithPitchRange(-90, 90))
	lo, hi := d.PitchRange()
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 180.0, hi)
}

func TestReset(t *testing.T) {
	s := New()
	s.Reset(12, -3, 4, 200)
	assert.Equal(t, View{Heading: 12, Pitch: 0, Roll: 4, FieldOfView: 90}, s.View())
}
