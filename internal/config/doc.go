// Package config defines the format-agnostic boot manifest model and the
// Loader interface for reading it from various sources.
//
// The config.Model is the single source of truth the application binds into
// registry descriptors. The concrete HCL implementation lives in a separate
// package so the engine never depends on a particular manifest format.
package config
