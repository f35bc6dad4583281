// Package runtime implements a strategy.ConstructionStrategy that builds
// instances directly via reflection: each component identity is registered
// against a Go struct type ahead of time, and CreateInstance either decodes
// a single resolved hash argument into it with mapstructure or assigns
// positional arguments onto its exported fields in declaration order with
// fatih/structs.
package runtime

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/jeswr/components-go/apperrors"
	"github.com/jeswr/components-go/strategy"

	"github.com/fatih/structs"
	"github.com/mitchellh/mapstructure"
)

var _ strategy.ConstructionStrategy = (*Strategy)(nil)

// Strategy is the reflection-based construction back end.
type Strategy struct {
	mu           sync.RWMutex
	constructors map[string]reflect.Type
}

// New returns an empty Strategy; use Register to teach it about component
// identities before handing it to a pool.
func New() *Strategy {
	return &Strategy{constructors: make(map[string]reflect.Type)}
}

// Register associates a constructor identity (requireName, optionally
// "#"+requireElement) with the struct type of sample. sample is only ever
// used for its type, never its value.
func (s *Strategy) Register(identity string, sample any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.constructors[identity] = reflect.TypeOf(sample)
}

func (s *Strategy) CreateUndefined(ctx context.Context) (any, error) {
	return nil, nil
}

func (s *Strategy) ResolveVariable(ctx context.Context, name string, settings *strategy.Settings) (any, error) {
	v, ok := settings.Variables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUndefinedVariable, name)
	}
	return v, nil
}

func (s *Strategy) CreatePrimitive(ctx context.Context, value, datatype string) (any, error) {
	return coercePrimitive(value, datatype), nil
}

func (s *Strategy) CreateArray(ctx context.Context, items []any) (any, error) {
	return items, nil
}

func (s *Strategy) CreateHash(ctx context.Context, fields map[string]any) (any, error) {
	return fields, nil
}

func (s *Strategy) CreateInstance(ctx context.Context, identity string, args []any, settings *strategy.Settings) (any, error) {
	if settings.Serializations {
		return nil, fmt.Errorf("runtime strategy: serializations requested for %s, but this strategy has no source representation", identity)
	}

	s.mu.RLock()
	t, ok := s.constructors[identity]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownComponent, identity)
	}

	ptr := reflect.New(t)

	switch {
	case len(args) == 1:
		if m, ok := args[0].(map[string]any); ok {
			if err := mapstructure.Decode(m, ptr.Interface()); err != nil {
				return nil, fmt.Errorf("runtime strategy: decoding %s: %w", identity, err)
			}
			break
		}
		fallthrough
	case len(args) > 1:
		fields := structs.Fields(ptr.Interface())
		for i, f := range fields {
			if i >= len(args) {
				break
			}
			if !f.IsExported() {
				continue
			}
			if args[i] == nil {
				// An untyped nil (CreateUndefined's result) already matches
				// the field's zero value; structs.Field.Set would otherwise
				// reject it as a reflect.Kind mismatch against e.g. an
				// interface{}-typed field.
				continue
			}
			if err := f.Set(args[i]); err != nil {
				// structs.Field.Set requires identical reflect.Kinds, so a
				// nested instance bound for an interface-typed field is
				// assigned directly when its type is assignable.
				fv := ptr.Elem().FieldByName(f.Name())
				given := reflect.ValueOf(args[i])
				if !given.Type().AssignableTo(fv.Type()) {
					return nil, fmt.Errorf("runtime strategy: setting field %s of %s: %w", f.Name(), identity, err)
				}
				fv.Set(given)
			}
		}
	}

	instance := ptr.Interface()
	if settings.AsFunction {
		return func() (any, error) { return instance, nil }, nil
	}
	return instance, nil
}
