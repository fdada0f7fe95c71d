package histrates

import "fmt"

// Row pairs the values two sources give for the same financial year.
type Row struct {
	Year int
	A, B float64
	Diff float64 // B − A, rounded to 2 decimal places.
}

// Reconciliation is the year by year comparison of two sources of the same quantity.
type Reconciliation struct {
	A, B *Series // the compared series, A derived from the levels.
	Rows []Row   // one row per common year, ascending.
}

// Reconcile cross-checks a series of index levels against a series of returns for the
// same index.
//
// The levels are first converted to year-over-year returns, then both series are aligned on
// their common years. It returns ErrNoOverlap if they have no year in common.
func Reconcile(levels, returns *Series) (*Reconciliation, error) {
	a := Returns(levels)
	rec := &Reconciliation{A: a, B: returns}
	for _, y := range CommonYears(a, returns) {
		va, _ := a.Get(y)
		vb, _ := returns.Get(y)
		rec.Rows = append(rec.Rows, Row{Year: y, A: va, B: vb, Diff: Round(vb - va)})
	}
	if len(rec.Rows) == 0 {
		return rec, fmt.Errorf("cannot reconcile %q (%d returns) with %q (%d years): %w", levels.Name, a.Len(), returns.Name, returns.Len(), ErrNoOverlap)
	}
	return rec, nil
}

// MaxAbsDiff returns the largest absolute difference among rows, and the year it occurs.
func (r *Reconciliation) MaxAbsDiff() (year int, diff float64) {
	for _, row := range r.Rows {
		d := row.Diff
		if d < 0 {
			d = -d
		}
		if d > diff || year == 0 {
			year, diff = row.Year, d
		}
	}
	return year, diff
}
