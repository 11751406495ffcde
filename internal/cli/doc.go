// Package cli turns command-line arguments, DVCHECK_* environment variables
// and an optional .env file into an app.Config, and defines the ExitError
// that carries a process exit code back to main.
package cli
