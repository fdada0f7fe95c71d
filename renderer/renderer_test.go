package renderer

import (
	"strings"
	"testing"

	"github.com/etnz/histrates"
	"github.com/etnz/histrates/tabular"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

func seriesOf(name, source string, values map[int]float64) *histrates.Series {
	s := histrates.NewSeries(name, source)
	for y, v := range values {
		s.Set(y, v)
	}
	return s
}

// tableRows parses md as GitHub flavoured markdown and returns the number of body rows of
// every table found.
func tableRows(t *testing.T, md string) []int {
	t.Helper()
	source := []byte(md)
	doc := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader(source))
	var rows []int
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if _, ok := n.(*east.Table); ok {
			count := 0
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				if _, ok := c.(*east.TableRow); ok {
					count++
				}
			}
			rows = append(rows, count)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatalf("ast.Walk() error = %v", err)
	}
	return rows
}

func TestRenderReconciliation(t *testing.T) {
	levels := seriesOf("f7", "f07.pdf", map[int]float64{2017: 57000, 2018: 62421.8, 2019: 69000})
	returns := seriesOf("netactuary", "ref.csv", map[int]float64{2018: 13.04, 2019: 11.55, 2020: -7.68})
	rec, err := histrates.Reconcile(levels, returns)
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}

	got := RenderReconciliation(rec)

	for _, want := range []string{
		"# Cross-check: f7 vs netactuary",
		histrates.FiscalYearConvention,
		"| Year | f7 | netactuary | Diff |",
		"| 2018 | 9.51% | 13.04% | +3.53% |",
		"| 2019 | 10.54% | 11.55% | +1.01% |",
		"Largest difference: **3.53%** in 2018.",
		"* f7: f07.pdf",
		"* netactuary: ref.csv",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderReconciliation() missing %q in:\n%s", want, got)
		}
	}
	if rows := tableRows(t, got); len(rows) != 1 || rows[0] != 2 {
		t.Errorf("RenderReconciliation() tables = %v want one table of 2 rows", rows)
	}
}

func TestRenderReconciliationNoOverlap(t *testing.T) {
	levels := seriesOf("f7", "f07.pdf", map[int]float64{2010: 40000, 2011: 42000})
	returns := seriesOf("netactuary", "ref.csv", map[int]float64{2015: 5.6})
	rec, _ := histrates.Reconcile(levels, returns)

	got := RenderReconciliation(rec)

	if want := "No overlapping years between f7 (f07.pdf) and netactuary (ref.csv)."; !strings.Contains(got, want) {
		t.Errorf("RenderReconciliation() missing %q in:\n%s", want, got)
	}
	if rows := tableRows(t, got); len(rows) != 0 {
		t.Errorf("RenderReconciliation() tables = %v want none", rows)
	}
}

func TestRenderAligned(t *testing.T) {
	rates := seriesOf(histrates.ColumnHousingRate, histrates.SourceHousingRate, map[int]float64{2019: 5.1, 2020: 4.77, 2021: 3.33})
	asx := seriesOf(histrates.ColumnASXReturn, histrates.SourceASXReturn, map[int]float64{2020: -7.68, 2021: 27.8, 2022: -6.47})
	al, err := histrates.Merge(rates, asx)
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	got := RenderAligned(al, "historical_rates.csv")

	for _, want := range []string{
		"# Aligned series: historical_rates.csv",
		"2 financial years, from 2020 (2019/20) to 2021 (2020/21), covering 2019-07-01..2021-06-30.",
		"| " + histrates.ColumnHousingRate + " | " + histrates.SourceHousingRate + " |",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderAligned() missing %q in:\n%s", want, got)
		}
	}
	if rows := tableRows(t, got); len(rows) != 1 || rows[0] != 2 {
		t.Errorf("RenderAligned() tables = %v want one table of 2 rows", rows)
	}
}

func TestRenderOutcomes(t *testing.T) {
	rates := seriesOf("rate", "", map[int]float64{2020: 4.77, 2021: 3.33, 2022: 5})
	asx := seriesOf("asx", "", map[int]float64{2020: -7.68, 2021: 27.8, 2022: 5})
	al, err := histrates.Merge(rates, asx)
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	outcomes, err := histrates.Outcomes(al, 10000000, "AUD")
	if err != nil {
		t.Fatalf("Outcomes() error = %v", err)
	}
	got := RenderOutcomes(outcomes, "AUD 100000")

	for _, want := range []string{
		"# Offset or invest, on AUD 100000",
		"| 2020 | 4.77% | -7.68% | offset |",
		"| 2021 | 3.33% | 27.80% | invest |",
		"| 2022 | 5.00% | 5.00% | tie |",
		"Offset won 1 years, invest won 1 years, 1 ties.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderOutcomes() missing %q in:\n%s", want, got)
		}
	}
	if rows := tableRows(t, got); len(rows) != 1 || rows[0] != 3 {
		t.Errorf("RenderOutcomes() tables = %v want one table of 3 rows", rows)
	}
}

func TestRenderLevels(t *testing.T) {
	levels := seriesOf("f7", "f07.pdf", map[int]float64{2019: 61234.5, 2020: 58000})
	conflicts := map[int][]tabular.Row{
		2020: {{Line: 4, Year: 2020, Value: 57000}, {Line: 9, Year: 2020, Value: 58000}},
	}

	got := RenderLevels(levels, conflicts)

	for _, want := range []string{
		"# Levels: f7",
		"| 2019 | 61234.5 |  |",
		"| 2020 | 58000 | line 4: 57000, line 9: 58000 |",
		"1 years were claimed by rows with different values",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderLevels() missing %q in:\n%s", want, got)
		}
	}
	if rows := tableRows(t, got); len(rows) != 1 || rows[0] != 2 {
		t.Errorf("RenderLevels() tables = %v want one table of 2 rows", rows)
	}
}
