// Package apperrors defines the error vocabulary raised across the
// instantiation pipeline (registry, preprocessors, constructor, pool).
//
// Every failure kind is a distinct sentinel so callers can branch with
// errors.Is instead of string matching. Context-carrying failures wrap a
// sentinel with fmt.Errorf("...: %w", Err...) and, where more than one
// independent cause can be present at once (validation, inheritance),
// callers accumulate with github.com/hashicorp/go-multierror instead of
// returning only the first failure.
package apperrors

import "errors"

// Sentinel error kinds raised across the pipeline.
var (
	ErrInvalidComponent           = errors.New("invalid component")
	ErrRegistryFrozen             = errors.New("registry frozen")
	ErrInvalidConstructorArgs     = errors.New("invalid constructor arguments")
	ErrMalformedObjectMapping     = errors.New("malformed object mapping")
	ErrInvalidConfig              = errors.New("invalid config")
	ErrAmbiguousComponentTypes    = errors.New("ambiguous component types")
	ErrUnknownComponent           = errors.New("unknown component")
	ErrUndefinedVariable          = errors.New("undefined variable")
	ErrOverrideIndexOutOfRange    = errors.New("override index out of range")
	ErrMalformedMappingKey        = errors.New("malformed mapping key")
	ErrOverrideTargetNotFound     = errors.New("override target not found")
	ErrInheritanceCycle           = errors.New("inheritance cycle detected")
)

// ConfigError carries the offending resource IRI alongside a field name and
// reason.
type ConfigError struct {
	IRI    string
	Field  string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return e.IRI + ": " + e.Reason
	}
	return e.IRI + ": field " + e.Field + ": " + e.Reason
}

func (e *ConfigError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidConfig
}

// NewConfigError builds a ConfigError rooted in ErrInvalidConfig.
func NewConfigError(iri, field, reason string) *ConfigError {
	return &ConfigError{IRI: iri, Field: field, Reason: reason, Err: ErrInvalidConfig}
}

// ComponentError carries the offending component IRI for registry-side
// failures.
type ComponentError struct {
	IRI string
	Err error
}

func (e *ComponentError) Error() string {
	return e.IRI + ": " + e.Err.Error()
}

func (e *ComponentError) Unwrap() error {
	return e.Err
}

// NewComponentError wraps err with the component IRI it concerns.
func NewComponentError(iri string, err error) *ComponentError {
	return &ComponentError{IRI: iri, Err: err}
}
