package cmd

import (
	"context"
	"flag"

	"github.com/etnz/histrates/rba"
	"github.com/etnz/histrates/renderer"
	"github.com/google/subcommands"
)

type f7Cmd struct {
	f7 string
	extraction
}

func (*f7Cmd) Name() string     { return "f7" }
func (*f7Cmd) Synopsis() string { return "show the index levels extracted from Table F7" }
func (*f7Cmd) Usage() string {
	return `histrates f7 [-f7 <f07.pdf>] [-month Jun] [-floor 10000]

  Prints the level of the accumulation index read for each year from the first
  page of RBA Table F7, and the rows that disagree when a year is read more
  than once. Use it to tune the extraction settings when crosscheck reports
  large differences.
`
}

func (c *f7Cmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.f7, "f7", "", "Path to the Table F7 PDF (overrides f7_path)")
	c.extraction.SetFlags(f)
}

func (c *f7Cmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		return fail("%v", err)
	}
	if c.f7 != "" {
		cfg.F7Path = c.f7
	}
	c.extraction.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return fail("%v", err)
	}

	text, err := rba.ReadF7Text(cfg.F7Path)
	if err != nil {
		return fail("%v", err)
	}
	ex := cfg.Extractor()
	levels := rba.F7LevelsFromText(text, ex)
	printMarkdown(renderer.RenderLevels(levels, ex.Conflicts(text)))
	return subcommands.ExitSuccess
}
