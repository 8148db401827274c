package gesture

import "time"

// Release describes the momentum of a finished drag.
type Release struct {
	Velocity float64       // px/ms over the last segment
	Duration time.Duration // Velocity / drag
	DX, DY   float64       // extrapolated pointer offset, segment × velocity
	Heading  float64       // total heading change of the settle, degrees
	Pitch    float64       // total pitch change of the settle, degrees
}

// HasMomentum reports whether the release should animate at all.
func (r Release) HasMomentum() bool {
	return r.Duration > 0 && (r.Heading != 0 || r.Pitch != 0)
}

// Momentum animates a Release from its start instant with an easing curve.
// Step returns increments so the caller can compose them with other input.
type Momentum struct {
	release Release
	start   time.Time
	easing  Easing
	applied float64
	done    bool
}

// NewMomentum starts animating r at start.
func NewMomentum(r Release, start time.Time, easing Easing) *Momentum {
	if easing == nil {
		easing = ReleaseEasing
	}
	return &Momentum{
		release: r,
		start:   start,
		easing:  easing,
		done:    !r.HasMomentum(),
	}
}

// Progress returns the eased completion fraction in [0,1] at now.
func (m *Momentum) Progress(now time.Time) float64 {
	if m.release.Duration <= 0 {
		return 1
	}
	t := float64(now.Sub(m.start)) / float64(m.release.Duration)
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return m.easing.Ease(t)
}

// Step returns the orientation change since the previous Step and reports
// whether the animation is still running afterwards.
func (m *Momentum) Step(now time.Time) (Delta, bool) {
	if m.done {
		return Delta{}, false
	}
	p := m.Progress(now)
	inc := p - m.applied
	m.applied = p
	if now.Sub(m.start) >= m.release.Duration {
		m.done = true
	}
	return Delta{Heading: m.release.Heading * inc, Pitch: m.release.Pitch * inc}, !m.done
}

// Done reports whether the full trajectory has been applied.
func (m *Momentum) Done() bool {
	return m.done
}

// Cancel stops the animation where it is.
func (m *Momentum) Cancel() {
	m.done = true
}
