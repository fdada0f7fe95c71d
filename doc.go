// Package histrates builds year by year financial series and checks them against each other.
//
// Every series is keyed by Australian financial year: year Y runs from 1 July Y-1 to
// 30 June Y. The package provides:
//   - Series: one value per financial year, with a column name and a provenance text.
//   - AggregateFiscal: averages irregular dated samples (e.g. monthly rates) per
//     financial year.
//   - Returns and Reconcile: turn index levels into yearly returns, and compare them with
//     returns from another source, year by year.
//   - Merge, EncodeAligned and WriteAlignedFile: align two series on their common years
//     and write them, with their provenance, as one CSV file. Merging is strict, a
//     missing series or a missing overlap is an error and nothing is written.
//   - LoadSeries, LoadJSONSeries and DecodeAligned: read series back.
//   - Winner and Outcomes: tell, per year, whether offsetting a loan beat investing.
//
// Reading the published tables the series come from is the job of the tabular and rba
// packages.
package histrates
