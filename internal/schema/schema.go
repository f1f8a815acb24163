// Package schema holds the HCL-specific structures that boot manifests decode
// into before translation to the format-agnostic config model.
package schema

import "github.com/hashicorp/hcl/v2"

// SettingsBlock captures the raw body of a module's `settings` block. It is
// decoded later, against the handler's settings struct.
type SettingsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// Module represents a `module` block from a boot manifest.
type Module struct {
	Name       string         `hcl:"name,label"`
	Handler    string         `hcl:"handler"`
	DependsOn  []string       `hcl:"depends_on,optional"`
	Priority   int            `hcl:"priority,optional"`
	Required   bool           `hcl:"required,optional"`
	Timeout    string         `hcl:"timeout,optional"`
	MaxRetries int            `hcl:"max_retries,optional"`
	RetryDelay string         `hcl:"retry_delay,optional"`
	Settings   *SettingsBlock `hcl:"settings,block"`
}

// ManifestConfig represents the top-level structure of a boot manifest file.
type ManifestConfig struct {
	Modules []*Module `hcl:"module,block"`
	Body    hcl.Body  `hcl:",remain"`
}
