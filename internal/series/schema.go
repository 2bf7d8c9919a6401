package series

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// SchemaVersion is the only document version this package reads and writes.
const SchemaVersion = 1

// document is the JSON form of a Series:
//
//	{"version": 1, "metadata": {...}, "t": [...], "theta": [...], "omega": [...], "is_sampled": [...]}
type document struct {
	Version   int       `json:"version" validate:"eq=1"`
	Metadata  *Metadata `json:"metadata,omitempty"`
	T         []float64 `json:"t" validate:"required"`
	Theta     []float64 `json:"theta" validate:"required"`
	Omega     []float64 `json:"omega" validate:"required"`
	IsSampled []bool    `json:"is_sampled" validate:"required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func toDocument(s *Series) document {
	return document{
		Version:   SchemaVersion,
		Metadata:  s.Metadata,
		T:         nonNil(s.T),
		Theta:     nonNil(s.Theta),
		Omega:     nonNil(s.Omega),
		IsSampled: nonNil(s.Sampled),
	}
}

func fromDocument(doc document) (*Series, error) {
	if err := validate.Struct(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	s := &Series{
		T:        doc.T,
		Theta:    doc.Theta,
		Omega:    doc.Omega,
		Sampled:  doc.IsSampled,
		Metadata: doc.Metadata,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// nonNil keeps empty columns as [] rather than null so the document
// still passes the required checks when read back.
func nonNil[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}
