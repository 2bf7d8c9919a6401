// Package analysis provides chaos diagnostics for the Hyperion rotation.
//
// The package includes:
//
//   - [NormalizeAngle]: wrap an angle into [-π, π)
//   - [EstimateLyapunov]: finite-difference Lyapunov estimate from a series
//   - [MarkMaxima]: Poincaré-section flags at the maximum of each positive excursion
//   - [SeparationExponent]: largest Lyapunov exponent via trajectory separation
//   - [NewPhasePortrait]: 2D phase space trajectories and their ASCII rendering
//
// # Finite-difference estimate
//
// [EstimateLyapunov] treats the displacement between consecutive normalized
// angles as the divergence of neighbouring trajectories:
//
//	λ_i = ln|θ_{i+1} - θ_i| / (t_{i+1} - t_i)
//
// and reports the running mean of λ_i. It is a cheap diagnostic, not a
// rigorous exponent; [SeparationExponent] integrates a perturbed companion
// trajectory instead.
//
//	est, err := analysis.EstimateLyapunov(s)
//	if errors.Is(err, analysis.ErrInsufficientData) {
//	    // fewer than two samples
//	}
package analysis
