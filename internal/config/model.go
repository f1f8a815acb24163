package config

import (
	"time"

	"github.com/hashicorp/hcl/v2"
)

// Model is the unified representation of every loaded boot manifest.
type Model struct {
	Modules []*ModuleConfig
}

// ModuleConfig is the format-agnostic representation of one `module` block.
type ModuleConfig struct {
	// Name uniquely identifies the module. A later manifest redefining the
	// same name replaces the earlier definition.
	Name string

	// Handler names the registered Go lifecycle bundle that implements the
	// module. An unknown handler name fails at startup, not at load time.
	Handler string

	DependsOn  []string
	Priority   int
	Required   bool
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration

	// Settings is the raw body of the module's settings block, decoded into
	// the handler's settings struct when the module initializes. Nil when the
	// manifest has no settings block.
	Settings hcl.Body
}
