package preprocess

import (
	"fmt"
	"strconv"

	"github.com/jeswr/components-go/apperrors"
	"github.com/jeswr/components-go/graph"
	"github.com/jeswr/components-go/registry"
)

// Override handles a config that declares one or more override steps: each
// step edits one parameter's value list in
// place — insert-before, insert-after, insert-at, remove, replace, or clear
// — before the usual component-mapped/component-unmapped argument-building
// logic runs over the now-edited config. The six step types are not
// separately selectable preprocessors; Override is the single chain entry
// for the family, and dispatches on each step's own rdf:type internally.
type Override struct{}

func (o *Override) Name() string { return "override" }

func (o *Override) CanHandle(reg *registry.Registry, config graph.Ref) (Handle, bool) {
	if !config.Has(graph.PredOverrideSteps) {
		return nil, false
	}
	comp, ok := resolveSingleComponent(reg, config)
	if !ok {
		return nil, false
	}
	return comp, true
}

func (o *Override) Transform(reg *registry.Registry, config graph.Ref, handle Handle) (graph.Ref, error) {
	comp := handle.(graph.Ref)

	for _, step := range config.Properties(graph.PredOverrideSteps) {
		if err := applyOverrideStep(config, step); err != nil {
			return graph.Ref{}, err
		}
	}

	if comp.Has(graph.PredConstructorArguments) {
		return (&ComponentMapped{}).Transform(reg, config, comp)
	}
	return (&ComponentUnmapped{}).Transform(reg, config, comp)
}

// applyOverrideStep rewrites config's value list for step's overrideParameter
// according to step's own type. A step with no overrideParameter is
// malformed; a before/after/remove step whose overrideTarget cannot be found
// in the current list is ErrOverrideTargetNotFound; an insert-at step whose
// overrideIndex is out of [0, len] is ErrOverrideIndexOutOfRange.
func applyOverrideStep(config, step graph.Ref) error {
	param, ok := step.Property(graph.PredOverrideParameter)
	if !ok {
		return fmt.Errorf("%w: override step missing overrideParameter", apperrors.ErrInvalidConfig)
	}
	key := param.IRI()
	current := config.Properties(key)

	values := overrideStepValues(step)

	switch {
	case step.IsA(graph.TypeOverrideListInsertBefore), step.IsA(graph.TypeOverrideListInsertAfter):
		target, ok := step.Property(graph.PredOverrideTarget)
		if !ok {
			return apperrors.ErrOverrideTargetNotFound
		}
		idx := indexOfRef(current, target)
		if idx < 0 {
			return apperrors.ErrOverrideTargetNotFound
		}
		at := idx
		if step.IsA(graph.TypeOverrideListInsertAfter) {
			at = idx + 1
		}
		current = spliceInsert(current, at, values)

	case step.IsA(graph.TypeOverrideListInsertAt):
		idxLit, ok := step.Property(graph.PredOverrideIndex)
		if !ok {
			return apperrors.ErrOverrideIndexOutOfRange
		}
		at, err := strconv.Atoi(idxLit.Value())
		if err != nil || at < 0 || at > len(current) {
			return apperrors.ErrOverrideIndexOutOfRange
		}
		current = spliceInsert(current, at, values)

	case step.IsA(graph.TypeOverrideListRemove):
		target, ok := step.Property(graph.PredOverrideTarget)
		if !ok {
			return apperrors.ErrOverrideTargetNotFound
		}
		idx := indexOfRef(current, target)
		if idx < 0 {
			return apperrors.ErrOverrideTargetNotFound
		}
		current = append(append([]graph.Ref{}, current[:idx]...), current[idx+1:]...)

	case step.IsA(graph.TypeOverrideReplace):
		current = values

	case step.IsA(graph.TypeOverrideClear):
		current = nil

	default:
		return fmt.Errorf("%w: unrecognised override step type for %s", apperrors.ErrInvalidConfig, step.IRI())
	}

	config.SetProperty(key, current...)
	return nil
}

// overrideStepValues returns the value(s) a step is inserting or replacing
// with. A single overrideValue that is itself an RDF list is spliced in
// list order; otherwise every overrideValue triple on the step contributes
// one value, in declaration order.
func overrideStepValues(step graph.Ref) []graph.Ref {
	raw := step.Properties(graph.PredOverrideValue)
	if len(raw) == 1 && raw[0].IsList() {
		return raw[0].List()
	}
	return raw
}

func indexOfRef(list []graph.Ref, target graph.Ref) int {
	for i, r := range list {
		if r.Equal(target) {
			return i
		}
	}
	return -1
}

func spliceInsert(list []graph.Ref, at int, values []graph.Ref) []graph.Ref {
	out := make([]graph.Ref, 0, len(list)+len(values))
	out = append(out, list[:at]...)
	out = append(out, values...)
	out = append(out, list[at:]...)
	return out
}
