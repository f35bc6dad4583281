package preprocess

import (
	"github.com/jeswr/components-go/apperrors"
	"github.com/jeswr/components-go/graph"
	"github.com/jeswr/components-go/registry"
)

// ComponentMapped handles a config whose type resolves to exactly one
// registered component that declares constructorArguments: the component's
// mapping list is the authoritative shape of the constructor's argument
// list, and config only ever supplies values through onParameter references
// into that mapping.
type ComponentMapped struct{}

func (c *ComponentMapped) Name() string { return "component-mapped" }

func (c *ComponentMapped) CanHandle(reg *registry.Registry, config graph.Ref) (Handle, bool) {
	if config.Has(graph.PredOverrideSteps) {
		// Override owns configs with override steps; it composes the same
		// mapped-argument logic itself once the steps are applied.
		return nil, false
	}
	comp, ok := resolveSingleComponent(reg, config)
	if !ok || !comp.Has(graph.PredConstructorArguments) {
		return nil, false
	}
	if hasPendingExprDefault(comp, config) {
		return nil, false
	}
	return comp, true
}

func (c *ComponentMapped) Transform(reg *registry.Registry, config graph.Ref, handle Handle) (graph.Ref, error) {
	comp := handle.(graph.Ref)
	g := config.Graph()

	applyParameterDefaults(comp, config)
	copyRequireFields(comp, config)

	ca, _ := comp.Property(graph.PredConstructorArguments)
	if !ca.IsList() {
		return graph.Ref{}, apperrors.ErrInvalidConstructorArgs
	}

	items := ca.List()
	args := make([]graph.Ref, 0, len(items))
	for _, item := range items {
		val, has, err := resolveMappingItem(item, config)
		if err != nil {
			return graph.Ref{}, err
		}
		if has {
			args = append(args, val)
		} else {
			args = append(args, g.Undefined())
		}
	}
	config.SetProperty(graph.PredArguments, args...)
	return config, nil
}
