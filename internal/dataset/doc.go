// Package dataset holds the read-only tabular data that rules validate.
//
// A Dataset is an ordered header plus rows of Cells. Every cell is either
// missing or text; numeric interpretation is always an explicit conversion
// (see Cell.Float and Cell.IsDigits) rather than something the loader guesses.
// One column, "record" by default, identifies each row in reports.
//
// LoadCSV builds a Dataset from delimited text. Rows with the wrong number of
// fields are skipped with a warning instead of aborting the load.
package dataset
