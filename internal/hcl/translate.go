// This file contains the logic for translating HCL schema structs into the
// format-agnostic configuration model defined in the config package.

package hcl

import (
	"context"
	"fmt"
	"time"

	"github.com/vk/bootgrid/internal/config"
	"github.com/vk/bootgrid/internal/schema"
)

// translateModule converts the HCL-specific module schema into the agnostic model.
func translateModule(_ context.Context, m *schema.Module) (*config.ModuleConfig, error) {
	if m.Name == "" {
		return nil, fmt.Errorf("module block requires a name label")
	}
	if m.Handler == "" {
		return nil, fmt.Errorf("module '%s' requires a handler", m.Name)
	}

	timeout, err := parseOptionalDuration(m.Timeout)
	if err != nil {
		return nil, fmt.Errorf("module '%s': invalid timeout: %w", m.Name, err)
	}
	retryDelay, err := parseOptionalDuration(m.RetryDelay)
	if err != nil {
		return nil, fmt.Errorf("module '%s': invalid retry_delay: %w", m.Name, err)
	}

	mc := &config.ModuleConfig{
		Name:       m.Name,
		Handler:    m.Handler,
		DependsOn:  m.DependsOn,
		Priority:   m.Priority,
		Required:   m.Required,
		Timeout:    timeout,
		MaxRetries: m.MaxRetries,
		RetryDelay: retryDelay,
	}
	if m.Settings != nil {
		mc.Settings = m.Settings.Body
	}
	return mc, nil
}

// parseOptionalDuration parses a duration string, treating empty as zero so
// the engine defaults apply.
func parseOptionalDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}
