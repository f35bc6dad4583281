package preprocess

import (
	"testing"

	"github.com/jeswr/components-go/graph"
	"github.com/jeswr/components-go/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newComponent(g *graph.Graph, iri string, params ...graph.Ref) graph.Ref {
	c := g.NamedNode(iri)
	c.SetProperty(graph.PredType, g.NamedNode(graph.TypeClass))
	if len(params) > 0 {
		c.SetProperty(graph.PredParameter, params...)
	}
	return c
}

func registerComponent(t *testing.T, reg *registry.Registry, g *graph.Graph, comp graph.Ref) {
	t.Helper()
	mod := g.NamedNode(comp.IRI() + "#module")
	mod.SetProperty(graph.PredType, g.NamedNode(graph.TypeModule))
	mod.SetProperty(graph.PredComponents, comp)
	require.NoError(t, reg.RegisterModule(mod))
}

func TestChainComponentUnmapped(t *testing.T) {
	g := graph.New()
	reg := registry.New(g)

	nameParam := g.NamedNode("https://example.org#Greeter#name")
	nameParam.SetProperty(graph.PredName, g.Literal("name", ""))
	comp := newComponent(g, "https://example.org#Greeter", nameParam)
	registerComponent(t, reg, g, comp)

	config := g.NamedNode("https://example.org#config")
	config.SetProperty(graph.PredType, comp)
	config.SetProperty(nameParam.IRI(), g.Literal("world", ""))

	chain := Default()
	raw, err := chain.Canonicalize(reg, config)
	require.NoError(t, err)

	args := raw.Properties(graph.PredArguments)
	require.Len(t, args, 1)
	assert.Equal(t, "world", args[0].Value())

	requireName, ok := raw.Property(graph.PredRequireName)
	require.True(t, ok)
	assert.Equal(t, comp.IRI(), requireName.Value())
}

func TestChainComponentMapped(t *testing.T) {
	g := graph.New()
	reg := registry.New(g)

	nameParam := g.NamedNode("https://example.org#Greeter#name")
	comp := newComponent(g, "https://example.org#Greeter", nameParam)

	mappingItem := g.BlankNode()
	mappingItem.SetProperty(graph.PredOnParameter, nameParam)
	comp.SetProperty(graph.PredConstructorArguments, g.NewList([]graph.Ref{mappingItem}))
	registerComponent(t, reg, g, comp)

	config := g.NamedNode("https://example.org#config")
	config.SetProperty(graph.PredType, comp)
	config.SetProperty(nameParam.IRI(), g.Literal("world", ""))

	chain := Default()
	raw, err := chain.Canonicalize(reg, config)
	require.NoError(t, err)

	args := raw.Properties(graph.PredArguments)
	require.Len(t, args, 1)
	assert.Equal(t, "world", args[0].Value())
}

func TestChainComponentMappedMissingParameterResolvesUndefined(t *testing.T) {
	g := graph.New()
	reg := registry.New(g)

	nameParam := g.NamedNode("https://example.org#Greeter#name")
	comp := newComponent(g, "https://example.org#Greeter", nameParam)

	mappingItem := g.BlankNode()
	mappingItem.SetProperty(graph.PredOnParameter, nameParam)
	comp.SetProperty(graph.PredConstructorArguments, g.NewList([]graph.Ref{mappingItem}))
	registerComponent(t, reg, g, comp)

	config := g.NamedNode("https://example.org#config")
	config.SetProperty(graph.PredType, comp)

	chain := Default()
	raw, err := chain.Canonicalize(reg, config)
	require.NoError(t, err)

	args := raw.Properties(graph.PredArguments)
	require.Len(t, args, 1)
	assert.True(t, args[0].IsA(graph.TypeUndefinedArgument))
}

func TestChainAmbiguousComponentTypes(t *testing.T) {
	g := graph.New()
	reg := registry.New(g)

	a := newComponent(g, "https://example.org#A")
	b := newComponent(g, "https://example.org#B")
	registerComponent(t, reg, g, a)
	registerComponent(t, reg, g, b)

	config := g.NamedNode("https://example.org#config")
	config.SetProperty(graph.PredType, a, b)

	chain := Default()
	_, err := chain.Canonicalize(reg, config)
	assert.Error(t, err)
}

func TestChainOverrideListInsertAfter(t *testing.T) {
	g := graph.New()
	reg := registry.New(g)

	namesParam := g.NamedNode("https://example.org#Greetings#names")
	comp := newComponent(g, "https://example.org#Greetings", namesParam)
	registerComponent(t, reg, g, comp)

	alice := g.Literal("alice", "")
	bob := g.Literal("bob", "")
	carol := g.Literal("carol", "")

	config := g.NamedNode("https://example.org#config")
	config.SetProperty(graph.PredType, comp)
	config.SetProperty(namesParam.IRI(), alice, bob)

	step := g.BlankNode()
	step.SetProperty(graph.PredType, g.NamedNode(graph.TypeOverrideListInsertAfter))
	step.SetProperty(graph.PredOverrideParameter, namesParam)
	step.SetProperty(graph.PredOverrideTarget, alice)
	step.SetProperty(graph.PredOverrideValue, carol)
	config.SetProperty(graph.PredOverrideSteps, step)

	chain := Default()
	raw, err := chain.Canonicalize(reg, config)
	require.NoError(t, err)

	args := raw.Properties(graph.PredArguments)
	require.Len(t, args, 1)
	values := args[0].List()
	require.Len(t, values, 3)
	assert.Equal(t, []string{"alice", "carol", "bob"}, []string{values[0].Value(), values[1].Value(), values[2].Value()})
}

func TestChainOverrideTargetNotFound(t *testing.T) {
	g := graph.New()
	reg := registry.New(g)

	namesParam := g.NamedNode("https://example.org#Greetings#names")
	comp := newComponent(g, "https://example.org#Greetings", namesParam)
	registerComponent(t, reg, g, comp)

	alice := g.Literal("alice", "")
	missing := g.Literal("missing", "")

	config := g.NamedNode("https://example.org#config")
	config.SetProperty(graph.PredType, comp)
	config.SetProperty(namesParam.IRI(), alice)

	step := g.BlankNode()
	step.SetProperty(graph.PredType, g.NamedNode(graph.TypeOverrideListRemove))
	step.SetProperty(graph.PredOverrideParameter, namesParam)
	step.SetProperty(graph.PredOverrideTarget, missing)
	config.SetProperty(graph.PredOverrideSteps, step)

	chain := Default()
	_, err := chain.Canonicalize(reg, config)
	assert.Error(t, err)
}

// stubPreprocessor always claims any config it is asked about and stamps a
// distinct requireName marker, so a test can tell which stage actually ran.
type stubPreprocessor struct {
	name   string
	marker string
}

func (s *stubPreprocessor) Name() string { return s.name }

func (s *stubPreprocessor) CanHandle(reg *registry.Registry, config graph.Ref) (Handle, bool) {
	return nil, true
}

func (s *stubPreprocessor) Transform(reg *registry.Registry, config graph.Ref, handle Handle) (graph.Ref, error) {
	config.SetProperty(graph.PredRequireName, config.Graph().Literal(s.marker, ""))
	return config, nil
}

func TestChainFirstMatchWins(t *testing.T) {
	g := graph.New()
	reg := registry.New(g)

	config := g.NamedNode("https://example.org#config")

	first := &stubPreprocessor{name: "first", marker: "from-first"}
	second := &stubPreprocessor{name: "second", marker: "from-second"}

	chain := NewChain(first, second)
	raw, err := chain.Canonicalize(reg, config)
	require.NoError(t, err)
	requireName, ok := raw.Property(graph.PredRequireName)
	require.True(t, ok)
	assert.Equal(t, "from-first", requireName.Value())

	reordered := NewChain(second, first)
	raw, err = reordered.Canonicalize(reg, config)
	require.NoError(t, err)
	requireName, ok = raw.Property(graph.PredRequireName)
	require.True(t, ok)
	assert.Equal(t, "from-second", requireName.Value())
}

func TestChainGenericsComputedDefault(t *testing.T) {
	g := graph.New()
	reg := registry.New(g)

	capacityParam := g.NamedNode("https://example.org#Buffer#capacity")
	capacityParam.SetProperty(graph.PredName, g.Literal("capacity", ""))

	bufferParam := g.NamedNode("https://example.org#Buffer#bufferSize")
	bufferParam.SetProperty(graph.PredName, g.Literal("bufferSize", ""))
	bufferParam.SetProperty(graph.PredDefault, g.Literal("capacity * 2", graph.DatatypeExpr))

	comp := newComponent(g, "https://example.org#Buffer", capacityParam, bufferParam)
	registerComponent(t, reg, g, comp)

	config := g.NamedNode("https://example.org#config")
	config.SetProperty(graph.PredType, comp)
	config.SetProperty(capacityParam.IRI(), g.Literal("4", ""))

	chain := Default()
	raw, err := chain.Canonicalize(reg, config)
	require.NoError(t, err)

	args := raw.Properties(graph.PredArguments)
	require.Len(t, args, 2)
	assert.Equal(t, "4", args[0].Value())
	assert.Equal(t, "8", args[1].Value())
}
