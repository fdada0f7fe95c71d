// Package rba reads the Reserve Bank of Australia statistical tables the historical rates
// are built from:
//
//   - Table F7 "Share Market", a PDF whose first page lists month end values of the
//     S&P/ASX 200 accumulation index, grouped under financial year headers.
//   - Table F5 "Indicator Lending Rates", a workbook whose "Data" sheet lists monthly
//     lending rates, one column per series.
//
// Readers are tolerant: a missing or unreadable table yields an empty series and a log line,
// never an error. Deciding whether an empty series is fatal belongs to the caller.
package rba

import "github.com/etnz/histrates"

// Column names and definitions of the series read from the tables.
const (
	F7Name   = "f7_june_accumulation"
	F7Source = "RBA Table F7 Share Market, S&P/ASX 200 Accumulation index, end of June. Source: f07.pdf"

	F5Name   = histrates.ColumnHousingRate
	F5Source = histrates.SourceHousingRate
)
