package metrics

import (
	"math"

	"github.com/san-kum/hyperion/internal/dynamo"
)

// Radius reports either the closest or the farthest distance from the
// origin reached by the (x, y) components at indices xi, yi.
type Radius struct {
	name   string
	xi, yi int
	far    bool
	value  float64
	seen   bool
}

// NewPerihelion tracks the minimum orbital radius.
func NewPerihelion(xi, yi int) *Radius {
	return &Radius{name: "perihelion", xi: xi, yi: yi}
}

// NewAphelion tracks the maximum orbital radius.
func NewAphelion(xi, yi int) *Radius {
	return &Radius{name: "aphelion", xi: xi, yi: yi, far: true}
}

func (r *Radius) Name() string { return r.name }

func (r *Radius) Observe(x dynamo.State, t float64) {
	if r.xi >= len(x) || r.yi >= len(x) {
		return
	}
	d := math.Hypot(x[r.xi], x[r.yi])
	switch {
	case !r.seen:
		r.value = d
		r.seen = true
	case r.far && d > r.value:
		r.value = d
	case !r.far && d < r.value:
		r.value = d
	}
}

func (r *Radius) Value() float64 { return r.value }

func (r *Radius) Reset() {
	r.value = 0
	r.seen = false
}
