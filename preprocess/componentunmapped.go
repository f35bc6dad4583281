package preprocess

import (
	"github.com/jeswr/components-go/graph"
	"github.com/jeswr/components-go/registry"
)

// ComponentUnmapped handles a config whose type resolves to exactly one
// registered component that declares no constructorArguments: the argument
// list is built positionally straight from the component's own
// declared parameter order, reading each parameter's value(s) directly off
// config.
type ComponentUnmapped struct{}

func (c *ComponentUnmapped) Name() string { return "component-unmapped" }

func (c *ComponentUnmapped) CanHandle(reg *registry.Registry, config graph.Ref) (Handle, bool) {
	if config.Has(graph.PredOverrideSteps) {
		return nil, false
	}
	comp, ok := resolveSingleComponent(reg, config)
	if !ok || comp.Has(graph.PredConstructorArguments) {
		return nil, false
	}
	if hasPendingExprDefault(comp, config) {
		return nil, false
	}
	return comp, true
}

func (c *ComponentUnmapped) Transform(reg *registry.Registry, config graph.Ref, handle Handle) (graph.Ref, error) {
	comp := handle.(graph.Ref)
	g := config.Graph()

	applyParameterDefaults(comp, config)
	copyRequireFields(comp, config)

	params := comp.Properties(graph.PredParameter)
	args := make([]graph.Ref, 0, len(params))
	for _, param := range params {
		values := config.Properties(param.IRI())
		switch len(values) {
		case 0:
			args = append(args, g.Undefined())
		case 1:
			args = append(args, values[0])
		default:
			args = append(args, g.NewList(values))
		}
	}
	config.SetProperty(graph.PredArguments, args...)
	return config, nil
}
