// Package hcl implements the config.Loader interface for HCL boot manifests.
// It discovers .hcl files, decodes them into the schema structs, and
// translates those into the format-agnostic config model.
package hcl
