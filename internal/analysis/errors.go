package analysis

import "errors"

var (
	// ErrInsufficientData indicates a series with fewer than two samples.
	ErrInsufficientData = errors.New("analysis: insufficient data for lyapunov estimate")

	// ErrInvalidPerturbation indicates a non-positive perturbation size.
	ErrInvalidPerturbation = errors.New("analysis: perturbation must be positive")
)
