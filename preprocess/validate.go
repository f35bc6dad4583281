package preprocess

import (
	"github.com/jeswr/components-go/apperrors"
	"github.com/jeswr/components-go/graph"

	"github.com/hashicorp/go-multierror"
)

// Validate implements validate_raw_config: requireName must be present and
// a Literal; requireElement and requireNoConstructor, if
// present, must be Literal. Every independent violation is accumulated
// rather than stopping at the first, so a caller fixing a config sees all
// of its problems in one pass.
func Validate(raw graph.Ref) error {
	var errs *multierror.Error

	name, ok := raw.Property(graph.PredRequireName)
	switch {
	case !ok:
		errs = multierror.Append(errs, apperrors.NewConfigError(raw.IRI(), "requireName", "required but absent"))
	case name.Kind() != graph.Literal:
		errs = multierror.Append(errs, apperrors.NewConfigError(raw.IRI(), "requireName", "must be a Literal"))
	}

	if elem, ok := raw.Property(graph.PredRequireElement); ok && elem.Kind() != graph.Literal {
		errs = multierror.Append(errs, apperrors.NewConfigError(raw.IRI(), "requireElement", "must be a Literal when present"))
	}

	if noCtor, ok := raw.Property(graph.PredRequireNoConstructor); ok && noCtor.Kind() != graph.Literal {
		errs = multierror.Append(errs, apperrors.NewConfigError(raw.IRI(), "requireNoConstructor", "must be a Literal when present"))
	}

	return errs.ErrorOrNil()
}
