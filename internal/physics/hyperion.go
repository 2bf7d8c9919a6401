package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/hyperion/internal/dynamo"
)

// GM is the gravitational parameter of the central body in AU^3/yr^2.
const GM = 4 * math.Pi * math.Pi

// State indices for the Hyperion model.
const (
	IdxX = iota
	IdxY
	IdxTheta
	IdxVX
	IdxVY
	IdxOmega
)

// Hyperion models a dumbbell (two equal masses joined by a massless rod)
// on a Kepler orbit. The orbit is unaffected by the spin; the tidal torque
// of the central body drives the rotation angle theta.
//
// State: [x, y, theta, vx, vy, omega].
type Hyperion struct {
	GM     float64
	Length float64 // rod length in AU, only used for drawing and reporting
}

func NewHyperion() *Hyperion {
	return &Hyperion{
		GM:     GM,
		Length: 0.01,
	}
}

func (h *Hyperion) StateDim() int { return 6 }

func (h *Hyperion) Derive(s dynamo.State, _ float64) dynamo.State {
	if len(s) < 6 {
		return make(dynamo.State, 6)
	}
	x, y, theta := s[IdxX], s[IdxY], s[IdxTheta]
	vx, vy, omega := s[IdxVX], s[IdxVY], s[IdxOmega]

	r := math.Hypot(x, y)
	r3 := r * r * r
	r5 := r3 * r * r

	ax := -h.GM * x / r3
	ay := -h.GM * y / r3

	sin, cos := math.Sincos(theta)
	alpha := -3 * h.GM * (x*sin - y*cos) * (x*cos + y*sin) / r5

	return dynamo.State{vx, vy, omega, ax, ay, alpha}
}

// Energy returns the specific orbital energy. The spin does not feed back
// into the orbit, so this is conserved by the exact dynamics.
func (h *Hyperion) Energy(s dynamo.State) float64 {
	if len(s) < 6 {
		return 0
	}
	r := math.Hypot(s[IdxX], s[IdxY])
	v2 := s[IdxVX]*s[IdxVX] + s[IdxVY]*s[IdxVY]
	return 0.5*v2 - h.GM/r
}

// InitialState packs initial conditions into a state vector.
func (h *Hyperion) InitialState(x0, y0, vx0, vy0, theta0, omega0 float64) dynamo.State {
	return dynamo.State{x0, y0, theta0, vx0, vy0, omega0}
}

func (h *Hyperion) GetParams() map[string]float64 {
	return map[string]float64{
		"gm":     h.GM,
		"length": h.Length,
	}
}

func (h *Hyperion) SetParam(name string, value float64) error {
	switch name {
	case "gm":
		h.GM = value
	case "length":
		h.Length = value
	default:
		return fmt.Errorf("%w: %s", dynamo.ErrUnknownParam, name)
	}
	return nil
}
