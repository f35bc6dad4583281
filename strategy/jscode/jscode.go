// Package jscode implements a strategy.ConstructionStrategy that evaluates
// JavaScript through goja rather than instantiating Go values directly:
// every component identity resolves to a JS function (typically loaded
// from a module's bundled script), and CreateInstance calls it with the
// resolved arguments converted to goja values. When a caller requests
// settings.Serializations, CreateInstance instead renders the call as JS
// source text without ever invoking the runtime.
//
// Adapted from the rule engine's GojaJsEngine: one shared *goja.Runtime, a
// cache of precompiled programs keyed by source so a module's bootstrap
// script only ever runs once no matter how many components it defines.
package jscode

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jeswr/components-go/apperrors"
	"github.com/jeswr/components-go/logging"
	"github.com/jeswr/components-go/strategy"

	"github.com/dop251/goja"
)

var _ strategy.ConstructionStrategy = (*Strategy)(nil)

// Strategy is the goja-backed construction back end.
type Strategy struct {
	logger logging.Logger

	mu           sync.Mutex
	vm           *goja.Runtime
	programCache map[string]*goja.Program
}

// New returns a Strategy with a fresh JS runtime. Pass logging.Discard() in
// tests that don't want log output.
func New(logger logging.Logger) *Strategy {
	if logger == nil {
		logger = logging.Default()
	}
	return &Strategy{
		logger:       logger,
		vm:           goja.New(),
		programCache: make(map[string]*goja.Program),
	}
}

// LoadModuleScript runs source once in the shared runtime — typically a
// module's bundled bootstrap script that defines one JS function per
// component it declares. Running the same source twice (the same module
// registered through two code paths) is a no-op; the program cache keys on
// the source text itself.
func (s *Strategy) LoadModuleScript(source string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.programCache[source]; ok {
		return nil
	}
	program, err := goja.Compile("", source, false)
	if err != nil {
		return fmt.Errorf("jscode: compiling module script: %w", err)
	}
	if _, err := s.vm.RunProgram(program); err != nil {
		return fmt.Errorf("jscode: running module script: %w", err)
	}
	s.programCache[source] = program
	return nil
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

// jsExpr marks a value that is already rendered JS source text, so a
// containing renderCall embeds it verbatim instead of re-encoding it as a
// literal.
type jsExpr string

// CreateInstance calls the JS function named identity with args, converted
// to goja values. A false settings.AsFunction invokes immediately and
// exports the result; a true one instead returns a Go closure that invokes
// it lazily, for configs marked requireNoConstructor. If
// settings.Serializations is set, no function is called at all: identity
// and args are rendered as a JS call expression's source text instead.
func (s *Strategy) CreateInstance(ctx context.Context, identity string, args []any, settings *strategy.Settings) (any, error) {
	if settings.Serializations {
		return renderCall(identity, args), nil
	}

	call := func() (any, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		fn, ok := goja.AssertFunction(s.vm.Get(identity))
		if !ok {
			return nil, fmt.Errorf("%w: %s is not a JS function in this runtime", apperrors.ErrUnknownComponent, identity)
		}
		params := make([]goja.Value, len(args))
		for i, a := range args {
			params[i] = s.vm.ToValue(a)
		}
		res, err := fn(goja.Undefined(), params...)
		if err != nil {
			s.logger.Printf("jscode: %s: %v", identity, err)
			return nil, err
		}
		return res.Export(), nil
	}

	if settings.AsFunction {
		return call, nil
	}
	return call()
}

// renderCall renders identity(args...) as a JS call expression's source
// text, recursively encoding each argument as a JS literal.
func renderCall(identity string, args []any) jsExpr {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = toJSLiteral(a)
	}
	return jsExpr(identity + "(" + strings.Join(parts, ", ") + ")")
}

// toJSLiteral renders v as JS source text. A jsExpr is embedded verbatim
// (it is already source, typically a nested CreateInstance's renderCall
// result); nil renders as undefined; arrays and string-keyed objects are
// rendered element by element (object keys sorted); any other value is
// encoded as a JSON literal, which is valid JS source for the primitives
// construct.Value hands a strategy.
func toJSLiteral(v any) string {
	switch t := v.(type) {
	case jsExpr:
		return string(t)
	case nil:
		return "undefined"
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = toJSLiteral(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			keyJSON, _ := json.Marshal(k)
			parts[i] = string(keyJSON) + ": " + toJSLiteral(t[k])
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%q", fmt.Sprint(t))
		}
		return string(b)
	}
}
