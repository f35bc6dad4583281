package registry

import (
	"fmt"

	"github.com/jeswr/components-go/apperrors"
	"github.com/jeswr/components-go/graph"

	"github.com/imdario/mergo"
)

// inheritParameters walks every component reachable through the transitive
// closure of "inheritValues" and appends its parameters to root's parameter
// list, skipping any parameter root already carries by identity (not by
// field equality — two distinct parameter resources that happen to look
// alike are still two parameters).
//
// The "already has" set is threaded through as a map[graph.Ref]bool and
// folded with mergo.Merge at each step (mergo's default merge only fills
// missing keys, never overwrites an existing true), so the set accumulates
// correctly across every target visited in the DFS without a hand-rolled
// union loop.
func inheritParameters(root graph.Ref) error {
	have := refSet(root.Properties(graph.PredParameter))
	visited := make(map[graph.Ref]bool)
	onStack := make(map[graph.Ref]bool)

	var walk func(node graph.Ref) error
	walk = func(node graph.Ref) error {
		if onStack[node] {
			return apperrors.ErrInheritanceCycle
		}
		if visited[node] {
			return nil
		}
		visited[node] = true
		onStack[node] = true
		defer delete(onStack, node)

		for _, target := range node.Properties(graph.PredInheritValues) {
			if err := walk(target); err != nil {
				return err
			}
			mergeParamsFrom(root, target, have)
		}
		return nil
	}
	return walk(root)
}

// mergeParamsFrom appends target's parameters to root that are not already
// present in have (by resource identity), then folds target's parameters
// into have so later targets in the same walk see them as already present.
func mergeParamsFrom(root, target graph.Ref, have map[graph.Ref]bool) {
	targetParams := target.Properties(graph.PredParameter)
	before := make(map[graph.Ref]bool, len(have))
	for k := range have {
		before[k] = true
	}

	want := refSet(targetParams)
	_ = mergo.Merge(&have, want) // missing-keys-only: never clobbers an already-true entry

	params := root.Properties(graph.PredParameter)
	for _, p := range targetParams {
		if !before[p] {
			params = append(params, p)
		}
	}
	root.SetProperty(graph.PredParameter, params...)
}

func refSet(refs []graph.Ref) map[graph.Ref]bool {
	set := make(map[graph.Ref]bool, len(refs))
	for _, r := range refs {
		set[r] = true
	}
	return set
}

// inheritConstructorArgumentFields implements field-level inheritance: each
// object inside constructorArguments.list that is
// missing "fields" inherits it from its inheritValues targets, provided
// each target is either typed ObjectMapping or itself has
// fields/inheritValues/onParameter. A target satisfying none of those is a
// malformed reference.
func inheritConstructorArgumentFields(comp graph.Ref) error {
	ca, ok := comp.Property(graph.PredConstructorArguments)
	if !ok {
		return nil
	}
	if !ca.IsList() {
		return fmt.Errorf("%w: constructorArguments is not an RDF list", apperrors.ErrInvalidConstructorArgs)
	}
	visited := make(map[graph.Ref]bool)
	for _, obj := range ca.List() {
		if err := inheritObjectFields(obj, visited); err != nil {
			return err
		}
	}
	return nil
}

func inheritObjectFields(obj graph.Ref, visited map[graph.Ref]bool) error {
	if visited[obj] {
		return nil
	}
	visited[obj] = true

	if obj.Has(graph.PredFields) {
		return nil
	}
	targets := obj.Properties(graph.PredInheritValues)
	if len(targets) == 0 {
		return nil
	}

	var collected []graph.Ref
	for _, target := range targets {
		shaped := target.IsA(graph.TypeObjectMapping) ||
			target.Has(graph.PredFields) ||
			target.Has(graph.PredInheritValues) ||
			target.Has(graph.PredOnParameter)
		if !shaped {
			return fmt.Errorf("%w: %s is neither an ObjectMapping nor shaped like one", apperrors.ErrMalformedObjectMapping, target.IRI())
		}
		if err := inheritObjectFields(target, visited); err != nil {
			return err
		}
		collected = append(collected, target.Properties(graph.PredFields)...)
	}
	if len(collected) > 0 {
		obj.SetProperty(graph.PredFields, collected...)
	}
	return nil
}
