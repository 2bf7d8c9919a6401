package analysis

import (
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/hyperion/internal/series"
)

// LyapunovEstimate holds the aligned sequences produced from a series of n
// samples. DeltaTheta, Instantaneous, Cumulative and Times have length n-1;
// Times[i] is the time at the end of step i. Theta is the normalized angle
// column (length n).
type LyapunovEstimate struct {
	Times         []float64
	Theta         []float64
	DeltaTheta    []float64
	Instantaneous []float64
	Cumulative    []float64
	Summary       Summary
}

type Summary struct {
	Samples           int
	MeanInstantaneous float64
	FinalCumulative   float64
	MinInstantaneous  float64
	MaxInstantaneous  float64
	SampledCount      int
	// ZeroSteps counts steps whose normalized angle did not change. Without a
	// floor each of them contributes -Inf.
	ZeroSteps int
}

type options struct {
	zeroFloor float64
	logger    *slog.Logger
}

type Option func(*options)

// WithZeroFloor replaces angular displacements below eps by eps so that a
// repeated angle no longer yields -Inf. Zero (the default) keeps -Inf.
func WithZeroFloor(eps float64) Option {
	return func(o *options) { o.zeroFloor = eps }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// EstimateLyapunov computes instantaneous and cumulative Lyapunov estimates
// from consecutive normalized angles. The input series is not modified.
func EstimateLyapunov(s *series.Series, opts ...Option) (*LyapunovEstimate, error) {
	cfg := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := s.ValidateWith(cfg.logger); err != nil {
		return nil, err
	}
	n := s.Len()
	if n < 2 {
		return nil, fmt.Errorf("%w: found %d samples", ErrInsufficientData, n)
	}

	theta := NormalizeAngles(s.Theta)

	est := &LyapunovEstimate{
		Times:         make([]float64, n-1),
		Theta:         theta,
		DeltaTheta:    make([]float64, n-1),
		Instantaneous: make([]float64, n-1),
		Cumulative:    make([]float64, n-1),
	}

	zeroSteps := 0
	firstZero := -1
	for i := 0; i < n-1; i++ {
		dTheta := math.Abs(theta[i+1] - theta[i])
		if dTheta == 0 {
			zeroSteps++
			if firstZero < 0 {
				firstZero = i
			}
		}
		if dTheta < cfg.zeroFloor {
			dTheta = cfg.zeroFloor
		}
		dt := s.T[i+1] - s.T[i]

		est.Times[i] = s.T[i+1]
		est.DeltaTheta[i] = dTheta
		est.Instantaneous[i] = math.Log(dTheta) / dt
	}

	floats.CumSum(est.Cumulative, est.Instantaneous)
	for i := range est.Cumulative {
		est.Cumulative[i] /= float64(i + 1)
	}

	if zeroSteps > 0 && cfg.zeroFloor <= 0 {
		cfg.logger.Warn("zero angular displacement, estimate is -Inf from the first such step",
			"steps", zeroSteps, "first_index", firstZero)
	}

	est.Summary = Summary{
		Samples:           n,
		MeanInstantaneous: stat.Mean(est.Instantaneous, nil),
		FinalCumulative:   est.Cumulative[n-2],
		MinInstantaneous:  floats.Min(est.Instantaneous),
		MaxInstantaneous:  floats.Max(est.Instantaneous),
		SampledCount:      CountSampled(s.Sampled),
		ZeroSteps:         zeroSteps,
	}
	return est, nil
}

// CountSampled returns the number of true flags.
func CountSampled(flags []bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}
