package rba

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/histrates"
	"github.com/etnz/histrates/date"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Layout locates the monthly samples in a workbook. Rows and columns are 1-based.
type Layout struct {
	Sheet      string
	FirstRow   int // first data row, after the title and series metadata rows.
	MaxRow     int // rows after it are never read.
	DateColumn int
	RateColumn int
}

// F5Layout is the layout of Table F5: data start on row 12 of the "Data" sheet, dates in
// column A and the standard variable owner-occupier housing rate in column D.
var F5Layout = Layout{Sheet: "Data", FirstRow: 12, MaxRow: 2000, DateColumn: 1, RateColumn: 4}

// dateLayouts are the text forms a date cell may take when it is not an Excel serial date.
var dateLayouts = []string{"2006-01-02", "02-Jan-2006", "2/01/2006", "Jan-2006", "Jan 2006"}

// ReadF5Samples reads the dated monthly samples of a workbook.
//
// Reading starts at layout.FirstRow and stops when rows are exhausted or after
// layout.MaxRow. Rows without a date are skipped; a blank or non numeric rate gives a
// sample with no value.
func ReadF5Samples(filename string, layout Layout) ([]histrates.Sample, error) {
	f, err := excelize.OpenFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %q: %w", filename, err)
	}
	defer f.Close()

	rows, err := f.Rows(layout.Sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q of %q: %w", layout.Sheet, filename, err)
	}
	defer rows.Close()

	var samples []histrates.Sample
	for n := 1; rows.Next() && n <= layout.MaxRow; n++ {
		if n < layout.FirstRow {
			continue
		}
		cols, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			log.Printf("skip-row sheet=%q row=%d err=%q", layout.Sheet, n, err)
			continue
		}
		on, ok := parseDateCell(cell(cols, layout.DateColumn))
		if !ok {
			continue
		}
		s := histrates.Sample{On: on}
		if v, err := decimal.NewFromString(strings.TrimSpace(cell(cols, layout.RateColumn))); err == nil {
			s.Value = decimal.NewNullDecimal(v)
		}
		samples = append(samples, s)
	}
	return samples, nil
}

// F5Rates reads the housing lending rate of a workbook and averages it per financial year.
// A missing or unreadable workbook yields an empty series.
func F5Rates(filename string, layout Layout) *histrates.Series {
	samples, err := ReadF5Samples(filename, layout)
	if err != nil {
		log.Printf("missing-source name=%q err=%q", filename, err)
	}
	return histrates.AggregateFiscal(F5Name, F5Source, samples)
}

// cell returns the value of the 1-based column i, or "" past the end of the row.
func cell(cols []string, i int) string {
	if i < 1 || i > len(cols) {
		return ""
	}
	return cols[i-1]
}

// parseDateCell parses an Excel serial date or one of the known text date forms.
func parseDateCell(s string) (date.Date, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return date.Date{}, false
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return date.Date{}, false
		}
		return date.FromTime(t), true
	}
	if d, err := date.Parse(s); err == nil {
		return d, true
	}
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return date.FromTime(t), true
		}
	}
	return date.Date{}, false
}
