package histrates

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
)

// LoadSeries reads a reference series from a delimited file.
//
// A missing file is not an error: it yields an empty series so that callers can report
// "no data" and decide themselves whether it is fatal.
func LoadSeries(filename string, delim rune) (*Series, error) {
	f, err := os.Open(filename)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("missing-source name=%q", filename)
		return NewSeries("", filename), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open series file %q: %w", filename, err)
	}
	defer f.Close()

	s, err := DecodeSeries(f, delim)
	if err != nil {
		return nil, fmt.Errorf("could not decode series file %q: %w", filename, err)
	}
	s.Source = filename
	return s, nil
}

// DecodeSeries reads (year, value) pairs, one per line, from the first two fields of a
// delimited text.
//
// Lines starting with '#' are comments. Any line whose first field is not an integer or
// whose second field is not a finite number (a header row, a label, a truncated line) is skipped.
// The name of the series is taken from the second column of the first skipped line that
// looks like a header, if any.
func DecodeSeries(r io.Reader, delim rune) (*Series, error) {
	reader := csv.NewReader(r)
	reader.Comma = delim
	reader.Comment = '#'
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	series := NewSeries("", "")
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			log.Printf("skip-line line=%d err=%q", perr.Line, perr.Err)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read series: %w", err)
		}
		year, value, ok := parsePair(record)
		if !ok {
			if series.Name == "" && series.Len() == 0 && len(record) >= 2 && isLabel(record[1]) {
				series.Name = strings.TrimSpace(record[1])
			}
			continue
		}
		series.Set(year, value)
	}
	return series, nil
}

// parsePair parses the first two fields of a record as a year and a value.
func parsePair(record []string) (year int, value float64, ok bool) {
	if len(record) < 2 {
		return 0, 0, false
	}
	year, err := strconv.Atoi(strings.TrimSpace(record[0]))
	if err != nil || year <= 0 {
		return 0, 0, false
	}
	value, err = strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, 0, false
	}
	return year, value, true
}

// isLabel reports whether a field looks like a column name rather than a broken number.
func isLabel(field string) bool {
	field = strings.TrimSpace(field)
	if field == "" {
		return false
	}
	for _, c := range field {
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') && (c < '0' || c > '9') && c != '_' {
			return false
		}
	}
	_, err := strconv.ParseFloat(field, 64)
	return err != nil
}
