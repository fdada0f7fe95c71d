// Package tabular recovers a year keyed series from the plain text of a statistical table,
// as extracted from a formatted document.
//
// The text has no reliable schema: column counts vary, section headers ("2019/20")
// interleave with data rows, and whole numbers are typeset with their thousands groups
// split into separate tokens ("7 067.8"). Parsing is a fold over the lines of the page:
//
//	ctx := Context{}
//	for line := range lines {
//		ctx, row, ok = ex.Step(ctx, line)
//	}
//
// Step never fails. A line that is not a wanted data row is reported as not ok and only
// updates the context when it is a financial year header.
package tabular
