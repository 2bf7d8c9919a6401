package integrators

import "github.com/san-kum/hyperion/internal/dynamo"

// RK4 is the classic fourth-order Runge-Kutta stepper. It reuses its stage
// buffers between calls and is not safe for concurrent use.
type RK4 struct {
	k       [4]dynamo.State
	scratch dynamo.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.scratch) == n {
		return
	}
	for i := range r.k {
		r.k[i] = make(dynamo.State, n)
	}
	r.scratch = make(dynamo.State, n)
}

// stage evaluates the derivative at x + h*prev into r.k[idx].
func (r *RK4) stage(sys dynamo.System, x, prev dynamo.State, idx int, t, h float64) {
	for i := range x {
		r.scratch[i] = x[i] + h*prev[i]
	}
	copy(r.k[idx], sys.Derive(r.scratch, t+h))
}

func (r *RK4) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	n := len(x)
	r.ensureScratch(n)

	copy(r.k[0], sys.Derive(x, t))
	r.stage(sys, x, r.k[0], 1, t, dt*0.5)
	r.stage(sys, x, r.k[1], 2, t, dt*0.5)
	r.stage(sys, x, r.k[2], 3, t, dt)

	result := make(dynamo.State, n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		result[i] = x[i] + dt6*(r.k[0][i]+2*r.k[1][i]+2*r.k[2][i]+r.k[3][i])
	}

	return result
}
