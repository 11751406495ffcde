// Package config defines the format-agnostic model of a validation script,
// along with the core interfaces (Loader, Converter) for loading scripts and
// binding their arguments to Go input structs.
//
// The `config.Model` is the single source of truth for the `executor`
// package. Concrete loaders for HCL and YAML live in separate packages.
package config
