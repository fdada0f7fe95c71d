package histrates

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// ColumnYear is the header of the key column of an aligned file.
const ColumnYear = "financial_year"

// Names and definitions of the two series of the historical rates file.
const (
	ColumnHousingRate = "housing_lending_rate_pct"
	ColumnASXReturn   = "asx_return_pct"

	SourceHousingRate = "RBA F5. Housing loans; Banks; Variable; Standard; Owner-occupier. Avg monthly rate over FY. Source: f05hist.xlsx"
	SourceASXReturn   = "S&P/ASX 200 Accumulation Index (AXJOA) total return, dividends reinvested, financial year. Source: asx_accumulation_annual.csv (NetActuary.com.au). Not mixed with price returns."
)

// EncodeAligned writes an aligned set as CSV.
//
// The file starts with '#' comment lines: the financial year convention, then one line per
// series with its column name and source. Then comes the header row and one row per year.
func EncodeAligned(w io.Writer, al *Aligned) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %s\n", FiscalYearConvention)
	for _, s := range []*Series{al.A, al.B} {
		fmt.Fprintf(bw, "# %s: %s\n", s.Name, oneLine(s.Source))
	}

	cw := csv.NewWriter(bw)
	if err := cw.Write([]string{ColumnYear, al.A.Name, al.B.Name}); err != nil {
		return err
	}
	for _, row := range al.Rows() {
		record := []string{strconv.Itoa(row.Year), formatValue(row.A), formatValue(row.B)}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return bw.Flush()
}

// WriteAlignedFile merges a and b and writes the result to filename.
//
// The file, and its folder if missing, are only created when the merge succeeds, so a
// failed run never leaves an empty or partial output behind. The file is readable by all.
func WriteAlignedFile(filename string, a, b *Series) (*Aligned, error) {
	al, err := Merge(a, b)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create output folder %q: %w", dir, err)
	}
	f, err := os.CreateTemp(dir, ".aligned-*.csv")
	if err != nil {
		return nil, fmt.Errorf("could not create output for %q: %w", filename, err)
	}
	tmp := f.Name()
	defer os.Remove(tmp) // no-op once renamed

	if err := EncodeAligned(f, al); err != nil {
		f.Close()
		return nil, fmt.Errorf("could not write %q: %w", filename, err)
	}
	if err := f.Chmod(0644); err != nil {
		f.Close()
		return nil, fmt.Errorf("could not write %q: %w", filename, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("could not write %q: %w", filename, err)
	}
	if err := os.Rename(tmp, filename); err != nil {
		return nil, fmt.Errorf("could not write %q: %w", filename, err)
	}
	log.Printf("create-aligned-file name=%q years=%d", filename, len(al.Years))
	return al, nil
}

// DecodeAligned reads back an aligned file, locating the two series by column name.
//
// Series sources are restored from the "# name: source" comment lines. Rows with a
// non-numeric field are skipped. A missing column is an error.
func DecodeAligned(r io.Reader, nameA, nameB string) (*Aligned, error) {
	sources := make(map[string]string)
	var data strings.Builder
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		if comment, ok := strings.CutPrefix(line, "#"); ok {
			if name, source, ok := strings.Cut(strings.TrimSpace(comment), ": "); ok {
				sources[name] = source
			}
			continue
		}
		data.WriteString(line)
		data.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read aligned file: %w", err)
	}

	reader := csv.NewReader(strings.NewReader(data.String()))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read aligned file: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("aligned file has no header")
	}

	header := records[0]
	idx := make([]int, 3)
	for i, name := range []string{ColumnYear, nameA, nameB} {
		idx[i] = slices.Index(header, name)
		if idx[i] < 0 {
			return nil, fmt.Errorf("aligned file missing expected column %q", name)
		}
	}

	a, b := NewSeries(nameA, sources[nameA]), NewSeries(nameB, sources[nameB])
	for _, record := range records[1:] {
		if len(record) <= slices.Max(idx) {
			continue
		}
		year, err := strconv.Atoi(record[idx[0]])
		if err != nil {
			continue
		}
		va, errA := strconv.ParseFloat(record[idx[1]], 64)
		vb, errB := strconv.ParseFloat(record[idx[2]], 64)
		if errA != nil || errB != nil {
			continue
		}
		a.Set(year, va)
		b.Set(year, vb)
	}
	if a.Len() == 0 {
		return &Aligned{A: a, B: b}, fmt.Errorf("aligned file: %w", ErrEmptySeries)
	}
	return &Aligned{A: a, B: b, Years: a.Years()}, nil
}

func formatValue(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// oneLine keeps a source description on a single comment line.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
