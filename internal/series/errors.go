package series

import "errors"

var (
	// ErrMissingInput indicates the data file does not exist.
	ErrMissingInput = errors.New("series: data file not found")

	// ErrLengthMismatch indicates columns of different lengths.
	ErrLengthMismatch = errors.New("series: column lengths differ")

	// ErrInvalidSchema indicates a document that is not a version 1 series.
	ErrInvalidSchema = errors.New("series: invalid document")
)
