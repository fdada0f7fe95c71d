package histrates

import "fmt"

// FiscalYearConvention documents the key of every aligned file.
const FiscalYearConvention = "Financial year (year Y = 1 July Y-1 to 30 June Y). Same period for both. One source per series."

// Aligned is the intersection of two series on their common financial years.
type Aligned struct {
	A, B  *Series
	Years []int // ascending, present in both A and B.
}

// Merge aligns two series on the financial years they share.
//
// Unlike loaders, Merge is strict: an empty input series is an ErrEmptySeries, and inputs
// without any common year are an ErrNoOverlap. A downstream consumer must never receive an
// aligned set that silently lacks a whole series.
func Merge(a, b *Series) (*Aligned, error) {
	for _, s := range []*Series{a, b} {
		if s.Len() == 0 {
			return nil, fmt.Errorf("cannot merge %q (source %s): %w", s.Name, s.Source, ErrEmptySeries)
		}
	}
	years := CommonYears(a, b)
	if len(years) == 0 {
		return nil, fmt.Errorf("cannot merge %q and %q: %w", a.Name, b.Name, ErrNoOverlap)
	}
	return &Aligned{A: a, B: b, Years: years}, nil
}

// Rows returns the aligned values in ascending year order.
func (al *Aligned) Rows() []Row {
	rows := make([]Row, 0, len(al.Years))
	for _, y := range al.Years {
		va, _ := al.A.Get(y)
		vb, _ := al.B.Get(y)
		rows = append(rows, Row{Year: y, A: va, B: vb, Diff: Round(vb - va)})
	}
	return rows
}

// Span returns the first and last year of the aligned set.
func (al *Aligned) Span() (from, to int) {
	return al.Years[0], al.Years[len(al.Years)-1]
}
