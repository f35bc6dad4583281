package preprocess

import (
	"github.com/jeswr/components-go/graph"
	"github.com/jeswr/components-go/registry"
)

// ParameterDefault is the chain's last resort: a config that already
// carries requireName directly is assumed hand-canonicalised by its author
// (it names its own constructor, bypassing component-type resolution
// entirely), so there is nothing left to infer. It exists as its own named
// stage, rather than folding into checkResolvable, because the common case
// of default-filling — applyParameterDefaults — already runs inline inside
// ComponentMapped and ComponentUnmapped as soon as a component is resolved;
// this stage only ever matters for the narrower case where no component
// resolution happens at all.
type ParameterDefault struct{}

func (p *ParameterDefault) Name() string { return "parameter-default" }

func (p *ParameterDefault) CanHandle(reg *registry.Registry, config graph.Ref) (Handle, bool) {
	if !config.Has(graph.PredRequireName) {
		return nil, false
	}
	return nil, true
}

func (p *ParameterDefault) Transform(reg *registry.Registry, config graph.Ref, handle Handle) (graph.Ref, error) {
	return config, nil
}
