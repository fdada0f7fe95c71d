package tabular

import (
	"bufio"
	"iter"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/histrates"
	"github.com/etnz/histrates/date"
)

// RowShape tells how a data row carries its calendar year.
type RowShape int

const (
	NotARow RowShape = iota
	// YearFirst rows carry an explicit calendar year, then the month: "2019 Jun 1 2 3 4 6 819.9".
	YearFirst
	// MonthFirst rows start with the month, their year is derived from the current financial
	// year header: "Jun 1 2 3 4 6 819.9".
	MonthFirst
)

func (s RowShape) String() string {
	switch s {
	case YearFirst:
		return "year-first"
	case MonthFirst:
		return "month-first"
	default:
		return "not-a-row"
	}
}

// Context is the state carried from one line to the next.
// The zero value is the state at the start of a document.
type Context struct {
	FiscalYear date.FiscalYear // financial year of the last section header, zero if none seen yet.
}

// Row is a data row accepted by an Extractor.
type Row struct {
	Line  int // 1-based line number in the page text.
	Shape RowShape
	Year  int // calendar year of the row.
	Month time.Month
	Value float64
}

// Extractor extracts the values of one monthly row of a table, per calendar year.
type Extractor struct {
	Month      time.Month // the row sought, e.g. time.June.
	Floor      float64    // values must exceed it to be plausible.
	MinNumbers int        // a data row must hold at least that many numbers.
	Column     int        // 0-based index of the value among the row numbers.

	NoisePrefixes []string // lines starting with one of these are skipped.
	NoiseContains []string // lines containing one of these are skipped.
}

// NewExtractor returns an extractor for the given month row and plausibility floor, reading
// the 5th number of rows that have at least 5.
func NewExtractor(month time.Month, floor float64) Extractor {
	return Extractor{Month: month, Floor: floor, MinNumbers: 5, Column: 4}
}

// Classify decides the shape of a line and splits it into its calendar year (zero for
// month-first rows), month and payload.
//
// Like the document, rows need a payload of at least two tokens after the month.
func Classify(line string) (shape RowShape, year int, month time.Month, payload string) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return NotARow, 0, 0, ""
	}
	if m, ok := date.ParseMonthAbbrev(fields[0]); ok {
		return MonthFirst, 0, m, strings.Join(fields[1:], " ")
	}
	if y, ok := calendarYear(fields[0]); ok && len(fields) >= 4 {
		if m, ok := date.ParseMonthAbbrev(fields[1]); ok {
			return YearFirst, y, m, strings.Join(fields[2:], " ")
		}
	}
	return NotARow, 0, 0, ""
}

// calendarYear parses a 4-digit year token.
func calendarYear(tok string) (int, bool) {
	if len(tok) != 4 || !isDigits(tok) {
		return 0, false
	}
	y, err := strconv.Atoi(tok)
	return y, err == nil && y > 0
}

// isNoise reports whether line is a known title, source or footer line.
func (e Extractor) isNoise(line string) bool {
	for _, p := range e.NoisePrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	for _, s := range e.NoiseContains {
		if strings.Contains(line, s) {
			return true
		}
	}
	return false
}

// Step processes one line of text in context ctx.
//
// It returns the context for the next line and, when the line is a plausible row for the
// sought month, that row and true. Lines that do not match are silently skipped.
func (e Extractor) Step(ctx Context, line string) (Context, Row, bool) {
	line = strings.TrimSpace(line)
	if line == "" || e.isNoise(line) {
		return ctx, Row{}, false
	}
	if fy, err := date.ParseFiscalYearLabel(line); err == nil {
		return Context{FiscalYear: fy}, Row{}, false
	}

	shape, year, month, payload := Classify(line)
	switch shape {
	case YearFirst:
	case MonthFirst:
		if ctx.FiscalYear == 0 {
			return ctx, Row{}, false
		}
		year = ctx.FiscalYear.CalendarYear(month)
	default:
		return ctx, Row{}, false
	}
	if month != e.Month {
		return ctx, Row{}, false
	}

	nums := Numbers(payload)
	if len(nums) < e.MinNumbers || len(nums) <= e.Column {
		return ctx, Row{}, false
	}
	v := nums[e.Column]
	if v <= e.Floor {
		log.Printf("implausible-value year=%d value=%v floor=%v", year, v, e.Floor)
		return ctx, Row{}, false
	}
	return ctx, Row{Shape: shape, Year: year, Month: month, Value: v}, true
}

// Rows returns the accepted rows of a page text, in document order.
// A year may appear more than once. Reading stops at the first line longer than 1MiB.
func (e Extractor) Rows(text string) iter.Seq[Row] {
	return func(yield func(Row) bool) {
		var ctx Context
		scanner := bufio.NewScanner(strings.NewReader(text))
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		n := 0
		for scanner.Scan() {
			n++
			var row Row
			var ok bool
			ctx, row, ok = e.Step(ctx, scanner.Text())
			if !ok {
				continue
			}
			row.Line = n
			if !yield(row) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			log.Printf("extract-stop line=%d err=%q", n+1, err)
		}
	}
}

// Extract returns the value of the sought month row per calendar year.
//
// When a year appears more than once, the last row wins.
func (e Extractor) Extract(text string) *histrates.Series {
	series := histrates.NewSeries("", "")
	for row := range e.Rows(text) {
		if old, ok := series.Get(row.Year); ok && old != row.Value {
			log.Printf("extract-conflict year=%d old=%v new=%v line=%d", row.Year, old, row.Value, row.Line)
		}
		series.Set(row.Year, row.Value)
		log.Printf("extract-row year=%d value=%v shape=%s", row.Year, row.Value, row.Shape)
	}
	return series
}

// Conflicts returns, for every year accepted more than once with different values, all the
// rows that claimed it.
func (e Extractor) Conflicts(text string) map[int][]Row {
	byYear := make(map[int][]Row)
	for row := range e.Rows(text) {
		byYear[row.Year] = append(byYear[row.Year], row)
	}
	conflicts := make(map[int][]Row)
	for y, rows := range byYear {
		for _, r := range rows[1:] {
			if r.Value != rows[0].Value {
				conflicts[y] = rows
				break
			}
		}
	}
	return conflicts
}
