package renderer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/etnz/histrates"
	"github.com/etnz/histrates/date"
	"github.com/etnz/histrates/tabular"
)

// Reconciliation is the view of a cross-check between two sources.
type Reconciliation struct {
	NameA, NameB     string
	SourceA, SourceB string
	Convention       string
	Rows             []ReconciliationRow
	NoOverlap        bool
	MaxDiffYear      int
	MaxDiff          string
}

// ReconciliationRow is one year of a Reconciliation, formatted.
type ReconciliationRow struct {
	Year string
	A, B string
	Diff string
}

// NewReconciliation builds the view of rec.
func NewReconciliation(rec *histrates.Reconciliation) *Reconciliation {
	v := &Reconciliation{
		NameA:      rec.A.Name,
		NameB:      rec.B.Name,
		SourceA:    rec.A.Source,
		SourceB:    rec.B.Source,
		Convention: histrates.FiscalYearConvention,
		NoOverlap:  len(rec.Rows) == 0,
	}
	for _, row := range rec.Rows {
		v.Rows = append(v.Rows, ReconciliationRow{
			Year: fmt.Sprintf("%d", row.Year),
			A:    histrates.Percent(row.A).String(),
			B:    histrates.Percent(row.B).String(),
			Diff: histrates.Percent(row.Diff).SignedString(),
		})
	}
	if !v.NoOverlap {
		year, diff := rec.MaxAbsDiff()
		v.MaxDiffYear, v.MaxDiff = year, histrates.Percent(diff).String()
	}
	return v
}

// Aligned is the view of an aligned file summary.
type Aligned struct {
	Filename           string
	Convention         string
	From, To           int
	FromLabel, ToLabel string // table header form, e.g. "2019/20".
	Period             string // first and last day covered.
	Count              int
	Columns            []Column
}

// Column describes one series of an aligned file.
type Column struct {
	Name, Source string
}

// NewAligned builds the view of al written to filename.
func NewAligned(al *histrates.Aligned, filename string) *Aligned {
	from, to := al.Span()
	first, last := date.FiscalYear(from), date.FiscalYear(to)
	return &Aligned{
		Filename:   filename,
		Convention: histrates.FiscalYearConvention,
		From:       from,
		To:         to,
		FromLabel:  first.Label(),
		ToLabel:    last.Label(),
		Period:     date.Range{From: first.Range().From, To: last.Range().To}.String(),
		Count:      len(al.Years),
		Columns: []Column{
			{Name: al.A.Name, Source: al.A.Source},
			{Name: al.B.Name, Source: al.B.Source},
		},
	}
}

// Outcomes is the view of the per year winners.
type Outcomes struct {
	Balance             string
	Rows                []OutcomeRow
	Offset, Invest, Tie int
}

// OutcomeRow is one year of Outcomes, formatted.
type OutcomeRow struct {
	Year          int
	Rate, Return  string
	Winner        string
	Saved, Earned string
	Gap           string
}

// NewOutcomes builds the view of outcomes computed on balance.
func NewOutcomes(outcomes []histrates.YearOutcome, balance string) *Outcomes {
	v := &Outcomes{Balance: balance}
	for _, o := range outcomes {
		switch o.Winner {
		case histrates.Offset:
			v.Offset++
		case histrates.Invest:
			v.Invest++
		default:
			v.Tie++
		}
		v.Rows = append(v.Rows, OutcomeRow{
			Year:   o.Year,
			Rate:   o.Rate.String(),
			Return: o.Return.String(),
			Winner: string(o.Winner),
			Saved:  o.Saved.Display(),
			Earned: o.Earned.Display(),
			Gap:    o.Gap.Display(),
		})
	}
	return v
}

// Levels is the view of an extracted level series.
type Levels struct {
	Name, Source string
	Rows         []LevelRow
	Conflicts    int
}

// LevelRow is one year of Levels. Rows lists the source lines when several disagree.
type LevelRow struct {
	Year  int
	Value string
	Rows  string
}

// NewLevels builds the view of levels and the conflicting rows per year.
func NewLevels(levels *histrates.Series, conflicts map[int][]tabular.Row) *Levels {
	v := &Levels{Name: levels.Name, Source: levels.Source, Conflicts: len(conflicts)}
	for y, value := range levels.Values() {
		row := LevelRow{Year: y, Value: strconv.FormatFloat(value, 'f', -1, 64)}
		if rows, ok := conflicts[y]; ok {
			claims := make([]string, len(rows))
			for i, r := range rows {
				claims[i] = fmt.Sprintf("line %d: %s", r.Line, strconv.FormatFloat(r.Value, 'f', -1, 64))
			}
			row.Rows = strings.Join(claims, ", ")
		}
		v.Rows = append(v.Rows, row)
	}
	return v
}
