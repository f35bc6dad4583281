// Package preprocess implements the Config Preprocessor chain: an ordered
// list of handlers, the first of which to claim a config resource rewrites
// it into canonical (raw) form, after which validate_raw_config runs
// unconditionally.
package preprocess

import (
	"github.com/jeswr/components-go/apperrors"
	"github.com/jeswr/components-go/graph"
	"github.com/jeswr/components-go/registry"
)

// Handle is an opaque, handler-specific token returned by CanHandle and fed
// back into Transform, so a preprocessor can avoid repeating work (e.g. the
// resolved component) between the two calls.
type Handle any

// Preprocessor is one stage of the chain. CanHandle must be pure; Transform
// may mutate config in place and returns the canonicalised resource,
// usually (but not necessarily) the same identity.
type Preprocessor interface {
	Name() string
	CanHandle(reg *registry.Registry, config graph.Ref) (Handle, bool)
	Transform(reg *registry.Registry, config graph.Ref, handle Handle) (graph.Ref, error)
}

// Chain is the ordered preprocessor list plus the mandatory post-transform
// validation step.
type Chain struct {
	stages []Preprocessor
}

// NewChain builds a Chain from stages in priority order: first match wins —
// reordering two preprocessors that both can_handle a config can change the
// outcome.
func NewChain(stages ...Preprocessor) *Chain {
	return &Chain{stages: stages}
}

// Default returns the built-in preprocessor chain in priority order:
// Component-mapped, Component-unmapped, Override, Generics,
// Parameter-default.
func Default() *Chain {
	return NewChain(
		&ComponentMapped{},
		&ComponentUnmapped{},
		&Override{},
		&Generics{},
		&ParameterDefault{},
	)
}

// Stages exposes the ordered preprocessor list, read-only, mostly so tests
// can assert on chain composition.
func (c *Chain) Stages() []Preprocessor {
	out := make([]Preprocessor, len(c.stages))
	copy(out, c.stages)
	return out
}

// Canonicalize runs config through the chain and then through
// validate_raw_config. It is the only entry point the Pool needs.
func (c *Chain) Canonicalize(reg *registry.Registry, config graph.Ref) (graph.Ref, error) {
	raw := config
	matched := false
	for _, stage := range c.stages {
		handle, ok := stage.CanHandle(reg, config)
		if !ok {
			continue
		}
		var err error
		raw, err = stage.Transform(reg, config, handle)
		if err != nil {
			return graph.Ref{}, err
		}
		matched = true
		break
	}

	if !matched {
		if err := checkResolvable(reg, config); err != nil {
			return graph.Ref{}, err
		}
	}

	if err := Validate(raw); err != nil {
		return graph.Ref{}, err
	}
	return raw, nil
}

// checkResolvable implements the AmbiguousComponentTypes check for configs
// no built-in preprocessor claimed: if the config already
// carries an explicit requireName it is assumed hand-canonicalised and
// passes through unchanged; otherwise its rdf:type list must resolve to
// exactly one registered component.
func checkResolvable(reg *registry.Registry, config graph.Ref) error {
	if config.Has(graph.PredRequireName) {
		return nil
	}
	matches := reg.ResolveComponents(config.Types())
	if len(matches) == 1 {
		return nil
	}
	iris := make([]string, len(matches))
	for i, m := range matches {
		iris[i] = m.IRI()
	}
	return &ambiguousTypesError{configIRI: config.IRI(), candidates: iris}
}

type ambiguousTypesError struct {
	configIRI  string
	candidates []string
}

func (e *ambiguousTypesError) Error() string {
	msg := "config " + e.configIRI + " types resolve to "
	if len(e.candidates) == 0 {
		return msg + "no registered component"
	}
	out := msg + "ambiguous components: "
	for i, c := range e.candidates {
		if i > 0 {
			out += ", "
		}
		out += c
	}
	return out
}

func (e *ambiguousTypesError) Unwrap() error {
	return apperrors.ErrAmbiguousComponentTypes
}

// Candidates returns the conflicting component IRIs the config's types
// resolved to.
func (e *ambiguousTypesError) Candidates() []string {
	return e.candidates
}
