// Package registry provides the central "glue" for the module system.
//
// It holds two kinds of entries. Descriptors describe the named units of
// startup work: their dependencies, retry budget, and lifecycle callbacks.
// Handlers map the string identifiers used in boot manifests (e.g.
// "InitDatabase") to the compiled Go functions that implement them.
//
// Descriptors are configuration data: re-registering a name silently replaces
// the previous entry, and a misconfigured descriptor surfaces as a startup
// failure through the normal error path, never as a registration error.
// Handlers are code: registering the same handler name twice is a programmer
// error and panics.
package registry
