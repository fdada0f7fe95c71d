package cmd

import (
	"context"
	"errors"
	"flag"

	"github.com/etnz/histrates"
	"github.com/etnz/histrates/config"
	"github.com/etnz/histrates/rba"
	"github.com/etnz/histrates/renderer"
	"github.com/google/subcommands"
)

type crosscheckCmd struct {
	f7        string
	reference string
	extraction
}

func (*crosscheckCmd) Name() string { return "crosscheck" }
func (*crosscheckCmd) Synopsis() string {
	return "compare the returns of the F7 accumulation index with a reference series"
}
func (*crosscheckCmd) Usage() string {
	return `histrates crosscheck [-f7 <f07.pdf>] [-reference <returns.csv>] [-month Jun] [-floor 10000]

  Extracts the end of month levels of the S&P/ASX 200 accumulation index from
  the first page of RBA Table F7, converts them to financial year returns, and
  prints them side by side with the reference returns, with their difference.

  Years the two sources do not share are left out. When they share no year at
  all, a single line says so.
`
}

func (c *crosscheckCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.f7, "f7", "", "Path to the Table F7 PDF (overrides f7_path)")
	f.StringVar(&c.reference, "reference", "", "Path to the reference returns, .csv or .json (overrides reference_path)")
	c.extraction.SetFlags(f)
}

func (c *crosscheckCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		return fail("%v", err)
	}
	if c.f7 != "" {
		cfg.F7Path = c.f7
	}
	if c.reference != "" {
		cfg.ReferencePath = c.reference
	}
	c.extraction.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return fail("%v", err)
	}

	rec, err := crosscheck(cfg)
	if err != nil && !errors.Is(err, histrates.ErrNoOverlap) {
		return fail("%v", err)
	}
	// No overlap is reported in the output, it is not a failure.
	printMarkdown(renderer.RenderReconciliation(rec))
	return subcommands.ExitSuccess
}

// crosscheck reconciles the F7 levels with the reference returns.
func crosscheck(cfg *config.Config) (*histrates.Reconciliation, error) {
	levels := rba.F7Levels(cfg.F7Path, cfg.Extractor())

	returns, err := loadReference(cfg)
	if err != nil {
		return nil, err
	}
	if returns.Name == "" {
		returns.Name = "reference"
	}
	return histrates.Reconcile(levels, returns)
}

// extraction holds the flags overriding the Table F7 extraction settings.
type extraction struct {
	month string
	floor float64
}

func (e *extraction) SetFlags(f *flag.FlagSet) {
	f.StringVar(&e.month, "month", "", "Month of the F7 row to extract, e.g. Jun (overrides extraction.target_month)")
	f.Float64Var(&e.floor, "floor", 0, "Smallest plausible index level (overrides extraction.index_floor)")
}

func (e *extraction) apply(cfg *config.Config) {
	if e.month != "" {
		cfg.Extraction.TargetMonth = e.month
	}
	if e.floor != 0 {
		cfg.Extraction.IndexFloor = e.floor
	}
}
