// Package registry maps rule names used in validation scripts to the Go
// handlers that implement them.
//
// Modules register their handlers at startup through Add. Each handler
// declares a Go input struct whose `arg` tags name the script arguments; the
// registry derives the argument list from those tags and Validate checks that
// every handler is usable before any script is run.
package registry
