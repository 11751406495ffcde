// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the validation lifecycle (load the script,
// load the dataset, run every check, report), decoupled from any specific
// entrypoint like a CLI.
package app
