// Package moduledecl is a convenience module-declaration format: plain YAML
// lowered directly into Resource Graph resources, for callers who would
// rather hand-author a module than parse one from a JSON-LD or Turtle
// source (both out of scope — real RDF parsing is left to the embedding
// application). It is not a substitute for a real RDF parser, only a
// fixture/authoring convenience this module owns end to end.
package moduledecl

import (
	"fmt"

	"github.com/jeswr/components-go/graph"

	"go.yaml.in/yaml/v2"
)

// Module is the YAML document shape.
type Module struct {
	IRI        string      `yaml:"module"`
	Components []Component `yaml:"components"`
}

// Component is one component definition within a module.
type Component struct {
	IRI                  string      `yaml:"iri"`
	Type                 string      `yaml:"type"` // "AbstractClass" | "Class" | "ComponentInstance"
	Extends              []string    `yaml:"extends"`
	Parameters           []Parameter `yaml:"parameters"`
	ConstructorArguments []Mapping   `yaml:"constructorArguments"`
	RequireName          string      `yaml:"requireName"`
	RequireElement       string      `yaml:"requireElement"`
	RequireNoConstructor bool        `yaml:"requireNoConstructor"`
}

// Parameter is one parameter declaration.
type Parameter struct {
	IRI     string `yaml:"iri"`
	Name    string `yaml:"name"`
	Default string `yaml:"default"`
	Range   string `yaml:"range"`
	Unique  bool   `yaml:"unique"`
}

// Mapping is one constructorArguments entry; exactly one of Value,
// OnParameter, Fields, Elements is expected to be set.
type Mapping struct {
	Value       string    `yaml:"value"`
	OnParameter string    `yaml:"onParameter"`
	Fields      []Field   `yaml:"fields"`
	Elements    []Mapping `yaml:"elements"`
}

// Field is one fields-object entry: a literal key plus a nested mapping.
type Field struct {
	Key string `yaml:"key"`
	Mapping
}

// Parse decodes a YAML module declaration.
func Parse(data []byte) (*Module, error) {
	var m Module
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("moduledecl: %w", err)
	}
	return &m, nil
}

// Load lowers m into g, returning the module resource ready to pass to
// registry.RegisterModule (or engine.RegisterModule).
func Load(g *graph.Graph, m *Module) graph.Ref {
	mod := g.NamedNode(m.IRI)
	mod.SetProperty(graph.PredType, g.NamedNode(graph.TypeModule))

	comps := make([]graph.Ref, 0, len(m.Components))
	for _, c := range m.Components {
		comps = append(comps, loadComponent(g, c))
	}
	mod.SetProperty(graph.PredComponents, comps...)
	return mod
}

func loadComponent(g *graph.Graph, c Component) graph.Ref {
	comp := g.NamedNode(c.IRI)
	comp.SetProperty(graph.PredType, g.NamedNode(typeIRI(c.Type)))

	if len(c.Extends) > 0 {
		targets := make([]graph.Ref, 0, len(c.Extends))
		for _, e := range c.Extends {
			targets = append(targets, g.NamedNode(e))
		}
		comp.SetProperty(graph.PredInheritValues, targets...)
	}

	params := make([]graph.Ref, 0, len(c.Parameters))
	for _, p := range c.Parameters {
		params = append(params, loadParameter(g, p))
	}
	if len(params) > 0 {
		comp.SetProperty(graph.PredParameter, params...)
	}

	if len(c.ConstructorArguments) > 0 {
		items := make([]graph.Ref, 0, len(c.ConstructorArguments))
		for _, m := range c.ConstructorArguments {
			items = append(items, loadMapping(g, m))
		}
		comp.SetProperty(graph.PredConstructorArguments, g.NewList(items))
	}

	if c.RequireName != "" {
		comp.SetProperty(graph.PredRequireName, g.Literal(c.RequireName, ""))
	}
	if c.RequireElement != "" {
		comp.SetProperty(graph.PredRequireElement, g.Literal(c.RequireElement, ""))
	}
	if c.RequireNoConstructor {
		comp.SetProperty(graph.PredRequireNoConstructor, g.Literal("true", ""))
	}
	return comp
}

func loadParameter(g *graph.Graph, p Parameter) graph.Ref {
	param := g.NamedNode(p.IRI)
	if p.Name != "" {
		param.SetProperty(graph.PredName, g.Literal(p.Name, ""))
	}
	if p.Default != "" {
		param.SetProperty(graph.PredDefault, g.Literal(p.Default, ""))
	}
	if p.Range != "" {
		param.SetProperty(graph.PredRange, g.NamedNode(p.Range))
	}
	if p.Unique {
		param.SetProperty(graph.PredUnique, g.Literal("true", ""))
	}
	return param
}

func loadMapping(g *graph.Graph, m Mapping) graph.Ref {
	item := g.BlankNode()
	switch {
	case len(m.Fields) > 0:
		fields := make([]graph.Ref, 0, len(m.Fields))
		for _, f := range m.Fields {
			entry := g.BlankNode()
			entry.SetProperty(graph.PredKey, g.Literal(f.Key, ""))
			setMappingShape(g, entry, f.Mapping)
			fields = append(fields, entry)
		}
		item.SetProperty(graph.PredFields, fields...)
	case len(m.Elements) > 0:
		elems := make([]graph.Ref, 0, len(m.Elements))
		for _, e := range m.Elements {
			elems = append(elems, loadMapping(g, e))
		}
		item.SetProperty(graph.PredElements, elems...)
	default:
		setMappingShape(g, item, m)
	}
	return item
}

func setMappingShape(g *graph.Graph, item graph.Ref, m Mapping) {
	switch {
	case m.OnParameter != "":
		item.SetProperty(graph.PredOnParameter, g.NamedNode(m.OnParameter))
	case m.Value != "":
		item.SetProperty(graph.PredValue, g.Literal(m.Value, ""))
	}
}

func typeIRI(t string) string {
	switch t {
	case "AbstractClass":
		return graph.TypeAbstractClass
	case "ComponentInstance":
		return graph.TypeComponentInstance
	default:
		return graph.TypeClass
	}
}
