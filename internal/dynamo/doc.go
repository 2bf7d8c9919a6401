// Package dynamo provides core simulation primitives for dynamical systems.
//
// The package defines the fundamental interfaces and types shared by the
// physics models, integrators and the simulator:
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator]: numerical stepping scheme
//   - [Metric]: observer reducing a trajectory to a scalar
//
// # Example
//
//	sys := physics.NewHyperion()
//	integ := integrators.NewEulerCromer()
//	s := sim.New(sys, integ)
//	result, _ := s.Run(ctx, x0, cfg)
//
// # State layout
//
// Second-order systems store generalized positions in the first half of the
// state and the matching velocities in the second half. Symplectic steppers
// such as Euler-Cromer and Verlet rely on that layout.
package dynamo
