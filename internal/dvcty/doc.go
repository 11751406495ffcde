// Package dvcty bridges script values (cty) and the Go input structs of rule
// handlers.
//
// Input structs declare their script arguments with an `arg` tag:
//
//	type rangeInput struct {
//		QID    string   `arg:"qid"`
//		VRange []string `arg:"vrange"`
//		Blank  bool     `arg:"blank,optional"`
//	}
//
// Fields lists the tagged fields, the Converter decodes a map of script
// arguments into a struct, and Render prints values for diagnostics.
package dvcty
