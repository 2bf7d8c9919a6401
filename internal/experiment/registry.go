package experiment

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/hyperion/internal/dynamo"
	"github.com/san-kum/hyperion/internal/integrators"
)

var ErrUnknownIntegrator = errors.New("experiment: unknown integrator")

type Registry struct {
	integrators map[string]func() dynamo.Integrator
}

func NewRegistry() *Registry {
	r := &Registry{
		integrators: make(map[string]func() dynamo.Integrator),
	}

	r.integrators["euler"] = func() dynamo.Integrator { return integrators.NewEuler() }
	r.integrators["euler_cromer"] = func() dynamo.Integrator { return integrators.NewEulerCromer() }
	r.integrators["rk4"] = func() dynamo.Integrator { return integrators.NewRK4() }
	r.integrators["verlet"] = func() dynamo.Integrator { return integrators.NewVerlet() }

	return r
}

// GetIntegrator returns a fresh integrator; stateful steppers must not be
// shared between runs.
func (r *Registry) GetIntegrator(name string) (dynamo.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownIntegrator, name)
	}
	return fn(), nil
}

// IntegratorFactory is GetIntegrator without the lookup at call time.
func (r *Registry) IntegratorFactory(name string) (func() dynamo.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownIntegrator, name)
	}
	return fn, nil
}

func (r *Registry) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
