package preprocess

import (
	"fmt"
	"strconv"

	"github.com/jeswr/components-go/graph"
	"github.com/jeswr/components-go/registry"

	"github.com/expr-lang/expr"
)

// Generics handles components that declare a computed default: a
// parameter's "default" literal carries the expr datatype instead of a
// plain value, and its lexical form is an expr-lang expression evaluated
// against the Literal values config itself sets for the component's other
// parameters, looked up by their declared "name" (plain defaults of unset
// siblings are not in scope). This is how a component expresses,
// for example, a buffer-size parameter whose default is a function of a
// sibling capacity parameter rather than a fixed constant.
//
// Once every computed default is resolved onto config, Generics defers to
// the same component-mapped/component-unmapped argument-building logic
// Override uses, so it only has to own the expression-evaluation step.
type Generics struct{}

func (p *Generics) Name() string { return "generics" }

func (p *Generics) CanHandle(reg *registry.Registry, config graph.Ref) (Handle, bool) {
	comp, ok := resolveSingleComponent(reg, config)
	if !ok || !hasPendingExprDefault(comp, config) {
		return nil, false
	}
	return comp, true
}

func (p *Generics) Transform(reg *registry.Registry, config graph.Ref, handle Handle) (graph.Ref, error) {
	comp := handle.(graph.Ref)
	g := config.Graph()

	env := map[string]any{}
	for _, param := range comp.Properties(graph.PredParameter) {
		name, ok := param.Property(graph.PredName)
		if !ok {
			continue
		}
		if v, ok := config.Property(param.IRI()); ok && v.Kind() == graph.Literal {
			env[name.Value()] = literalGoValue(v)
		}
	}

	for _, param := range comp.Properties(graph.PredParameter) {
		if config.Has(param.IRI()) {
			continue
		}
		if !isExprDefault(param) {
			continue
		}
		def, _ := param.Property(graph.PredDefault)
		program, err := expr.Compile(def.Value(), expr.Env(env))
		if err != nil {
			return graph.Ref{}, fmt.Errorf("generics: compiling default for %s: %w", param.IRI(), err)
		}
		out, err := expr.Run(program, env)
		if err != nil {
			return graph.Ref{}, fmt.Errorf("generics: evaluating default for %s: %w", param.IRI(), err)
		}
		config.SetProperty(param.IRI(), g.Literal(fmt.Sprint(out), ""))
	}

	if comp.Has(graph.PredConstructorArguments) {
		return (&ComponentMapped{}).Transform(reg, config, comp)
	}
	return (&ComponentUnmapped{}).Transform(reg, config, comp)
}

func isExprDefault(param graph.Ref) bool {
	def, ok := param.Property(graph.PredDefault)
	return ok && def.Kind() == graph.Literal && def.Datatype() == graph.DatatypeExpr
}

// literalGoValue converts a Literal's lexical form into the Go value an
// expr-lang expression would expect: an int or float when the form parses
// as a number, a bool for "true"/"false", and the raw string otherwise.
func literalGoValue(lit graph.Ref) any {
	v := lit.Value()
	if i, err := strconv.ParseInt(v, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return v
}
