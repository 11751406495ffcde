// Package rules is the validation rule engine.
//
// Every rule is a pure function over a *dataset.Dataset that returns a Result
// listing the identifiers of offending rows. A returned error is never a data
// finding; it means the invocation itself is broken (unknown column,
// malformed range or label token, non-numeric checkbox cell) and is meant to
// be turned into a diagnostic by the report package.
//
// Blank always means a missing cell.
package rules
