package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/vk/bootgrid/internal/config"
	"github.com/vk/bootgrid/internal/registry"
	"github.com/vk/bootgrid/modules/envcheck"
	"github.com/vk/bootgrid/modules/httpcheck"
	"github.com/vk/bootgrid/modules/print"
	"github.com/vk/bootgrid/modules/socketio"
	"github.com/zclconf/go-cty/cty"
)

// builtinModules is the default handler set available to boot manifests.
var builtinModules = []registry.Module{
	&print.Module{},
	&envcheck.Module{},
	&httpcheck.Module{},
	&socketio.Module{},
}

// bindModel turns every manifest module into a registry descriptor whose
// lifecycle closures resolve the named handler. Resolution happens at
// initialization time on purpose: an unknown handler name fails through the
// normal startup error path instead of failing the whole load.
func (a *App) bindModel(model *config.Model) error {
	evalCtx := envEvalContext()
	for _, mc := range model.Modules {
		if err := a.registry.Register(a.bindDescriptor(mc, evalCtx)); err != nil {
			return err
		}
	}
	return nil
}

// bindDescriptor builds the descriptor for a single manifest module.
func (a *App) bindDescriptor(mc *config.ModuleConfig, evalCtx *hcl.EvalContext) *registry.Descriptor {
	handlerName := mc.Handler
	settingsBody := mc.Settings

	init := func(ctx context.Context) (any, error) {
		h, ok := a.registry.Handler(handlerName)
		if !ok {
			return nil, fmt.Errorf("handler '%s' not registered", handlerName)
		}
		var settings any
		if h.NewSettings != nil {
			settings = h.NewSettings()
			if settingsBody != nil {
				if diags := gohcl.DecodeBody(settingsBody, evalCtx, settings); diags.HasErrors() {
					return nil, fmt.Errorf("decoding settings: %w", diags)
				}
			}
		}
		return h.Init(ctx, settings)
	}

	health := func(ctx context.Context, instance any) error {
		h, ok := a.registry.Handler(handlerName)
		if !ok || h.Health == nil {
			return nil
		}
		return h.Health(ctx, instance)
	}

	cleanup := func(ctx context.Context, instance any) error {
		h, ok := a.registry.Handler(handlerName)
		if !ok || h.Cleanup == nil {
			return nil
		}
		return h.Cleanup(ctx, instance)
	}

	return &registry.Descriptor{
		Name:        mc.Name,
		DependsOn:   mc.DependsOn,
		Priority:    mc.Priority,
		Required:    mc.Required,
		Timeout:     mc.Timeout,
		MaxRetries:  mc.MaxRetries,
		RetryDelay:  mc.RetryDelay,
		Init:        init,
		HealthCheck: health,
		Cleanup:     cleanup,
	}
}

// envEvalContext exposes the process environment to manifest settings as
// `env.NAME`, so manifests can say `url = env.GATEWAY_URL`.
func envEvalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, e := range os.Environ() {
		pair := strings.SplitN(e, "=", 2)
		if len(pair) == 2 && pair[0] != "" {
			vars[pair[0]] = cty.StringVal(pair[1])
		}
	}

	envVal := cty.MapValEmpty(cty.String)
	if len(vars) > 0 {
		envVal = cty.MapVal(vars)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": envVal},
	}
}
