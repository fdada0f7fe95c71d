package rba

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/etnz/histrates"
	"github.com/etnz/histrates/tabular"
	"github.com/ledongthuc/pdf"
)

// F7Extractor returns the extractor for the given month row of Table F7, with the table's
// title, source and footer lines marked as noise.
func F7Extractor(month time.Month, floor float64) tabular.Extractor {
	ex := tabular.NewExtractor(month, floor)
	ex.NoisePrefixes = []string{"S&P", "05/07", "Banks"}
	ex.NoiseContains = []string{"Share", "Sources:"}
	return ex
}

// ReadF7Text returns the text of the first page of a PDF, one line per text row, words
// separated by a space.
func ReadF7Text(filename string) (text string, err error) {
	// The pdf reader panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("could not read pdf %q: %v", filename, r)
		}
	}()

	f, r, err := pdf.Open(filename)
	if err != nil {
		return "", fmt.Errorf("could not open pdf %q: %w", filename, err)
	}
	defer f.Close()

	if r.NumPage() < 1 {
		return "", fmt.Errorf("pdf %q has no page", filename)
	}
	p := r.Page(1)
	if p.V.IsNull() {
		return "", fmt.Errorf("pdf %q first page is empty", filename)
	}
	rows, err := p.GetTextByRow()
	if err != nil {
		return "", fmt.Errorf("could not extract text from pdf %q: %w", filename, err)
	}

	var b strings.Builder
	for _, row := range rows {
		words := make([]string, 0, len(row.Content))
		for _, word := range row.Content {
			if s := strings.TrimSpace(word.S); s != "" {
				words = append(words, s)
			}
		}
		b.WriteString(strings.Join(words, " "))
		b.WriteString("\n")
	}
	return b.String(), nil
}

// F7Levels reads the index levels of the extractor's month row from Table F7, per calendar
// year. A missing or unreadable file yields an empty series.
func F7Levels(filename string, ex tabular.Extractor) *histrates.Series {
	text, err := ReadF7Text(filename)
	if err != nil {
		log.Printf("missing-source name=%q err=%q", filename, err)
		return histrates.NewSeries(F7Name, F7Source)
	}
	return F7LevelsFromText(text, ex)
}

// F7LevelsFromText is F7Levels on already extracted page text.
func F7LevelsFromText(text string, ex tabular.Extractor) *histrates.Series {
	s := ex.Extract(text)
	s.Name, s.Source = F7Name, F7Source
	return s
}
