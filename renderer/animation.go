package renderer

import (
	"github.com/chewxy/math32"
)

// PhaseStep is the amount the animation phase advances per frame.
const PhaseStep = 0.001

// Animation is the scale animation state. The phase grows without bound;
// only its sine is observable.
type Animation struct {
	phase float64
	ticks uint64
}

// Advance steps the phase by one frame and returns the new scale.
func (a *Animation) Advance() float32 {
	a.ticks++
	a.phase += PhaseStep
	return a.Scale()
}

func (a *Animation) Phase() float64 {
	return a.phase
}

func (a *Animation) Ticks() uint64 {
	return a.ticks
}

// Scale returns sin(phase).
func (a *Animation) Scale() float32 {
	return math32.Sin(float32(a.phase))
}
