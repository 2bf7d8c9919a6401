// Package series holds the rotation time series analysed by hyperion and its
// single on-disk representation.
//
// A [Series] is stored column-wise: times, angles, angular velocities and
// Poincaré-section flags share one index. The columns must have equal length;
// [Series.Validate] enforces that.
package series

import (
	"fmt"
	"log/slog"
	"time"
)

// Sample is one instant of the rotation time series.
type Sample struct {
	T       float64
	Theta   float64
	Omega   float64
	Sampled bool // captured at the reference phase (Poincaré section)
}

// Metadata describes how a series was produced. Hand-written files may omit it.
type Metadata struct {
	RunID      string             `json:"run_id,omitempty" validate:"omitempty,uuid"`
	CreatedAt  time.Time          `json:"created_at,omitzero"`
	Preset     string             `json:"preset,omitempty"`
	Integrator string             `json:"integrator,omitempty"`
	Dt         float64            `json:"dt,omitempty" validate:"gte=0"`
	Duration   float64            `json:"duration,omitempty" validate:"gte=0"`
	Initial    map[string]float64 `json:"initial,omitempty"`
	Params     map[string]float64 `json:"params,omitempty"`
	Metrics    map[string]float64 `json:"metrics,omitempty"`
}

type Series struct {
	T        []float64
	Theta    []float64
	Omega    []float64
	Sampled  []bool
	Metadata *Metadata
}

// New returns an empty series with room for n samples.
func New(n int) *Series {
	return &Series{
		T:       make([]float64, 0, n),
		Theta:   make([]float64, 0, n),
		Omega:   make([]float64, 0, n),
		Sampled: make([]bool, 0, n),
	}
}

// FromSamples builds a series from row-wise samples.
func FromSamples(samples []Sample) *Series {
	s := New(len(samples))
	for _, smp := range samples {
		s.Append(smp)
	}
	return s
}

func (s *Series) Append(smp Sample) {
	s.T = append(s.T, smp.T)
	s.Theta = append(s.Theta, smp.Theta)
	s.Omega = append(s.Omega, smp.Omega)
	s.Sampled = append(s.Sampled, smp.Sampled)
}

// Len is the number of time points. It is only meaningful for a valid series.
func (s *Series) Len() int {
	return len(s.T)
}

func (s *Series) At(i int) Sample {
	return Sample{T: s.T[i], Theta: s.Theta[i], Omega: s.Omega[i], Sampled: s.Sampled[i]}
}

// Head returns up to n leading samples.
func (s *Series) Head(n int) []Sample {
	n = min(max(n, 0), s.Len())
	out := make([]Sample, n)
	for i := range out {
		out[i] = s.At(i)
	}
	return out
}

// Validate checks that all four columns have the same length. A mismatch is
// logged to slog.Default with the column lengths before the error is
// returned.
func (s *Series) Validate() error {
	return s.ValidateWith(slog.Default())
}

// ValidateWith is Validate reporting a mismatch to l.
func (s *Series) ValidateWith(l *slog.Logger) error {
	nt, nth, nom, nsm := len(s.T), len(s.Theta), len(s.Omega), len(s.Sampled)
	if nt == nth && nt == nom && nt == nsm {
		return nil
	}
	l.Warn("series column lengths differ",
		"t", nt, "theta", nth, "omega", nom, "is_sampled", nsm)
	return fmt.Errorf("%w: t=%d theta=%d omega=%d is_sampled=%d",
		ErrLengthMismatch, nt, nth, nom, nsm)
}
