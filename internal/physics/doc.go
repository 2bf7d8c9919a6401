// Package physics provides dynamical system models for simulation.
//
// Each model implements the [dynamo.System] interface, defining the
// differential equations governing the system's evolution:
//
//   - [Hyperion]: dumbbell moon tumbling on a Kepler orbit
//
// Models also implement [dynamo.Configurable] for runtime parameter
// adjustment and [dynamo.Hamiltonian] for energy calculation.
//
// # Units
//
// Lengths are in astronomical units and times in years, so the central
// body's gravitational parameter is 4π² (see [GM]). A circular orbit of
// radius 1 then has speed 2π and period 1.
package physics
