package histrates

import "errors"

var (
	// ErrNoOverlap is returned when two series share no financial year.
	ErrNoOverlap = errors.New("no overlapping financial years")
	// ErrEmptySeries is returned when a series required for output holds no value at all.
	ErrEmptySeries = errors.New("series has no data")
)
