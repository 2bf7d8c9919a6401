package integrators

import "github.com/san-kum/hyperion/internal/dynamo"

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys dynamo.System, x dynamo.State, t float64, dt float64) dynamo.State {
	dx := sys.Derive(x, t)
	result := make(dynamo.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}

// EulerCromer is the semi-implicit Euler method: velocities advance with the
// acceleration at the old state, positions advance with the new velocities.
// The state must hold positions in its first half and velocities in the second.
type EulerCromer struct{}

func NewEulerCromer() *EulerCromer {
	return &EulerCromer{}
}

func (e *EulerCromer) Step(sys dynamo.System, x dynamo.State, t float64, dt float64) dynamo.State {
	n := len(x)
	half := n / 2
	dx := sys.Derive(x, t)

	result := make(dynamo.State, n)
	for i := 0; i < half; i++ {
		result[half+i] = x[half+i] + dt*dx[half+i]
		result[i] = x[i] + dt*result[half+i]
	}
	return result
}
