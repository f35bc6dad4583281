package registry

import (
	"testing"

	"github.com/jeswr/components-go/apperrors"
	"github.com/jeswr/components-go/graph"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModule(g *graph.Graph, modIRI string, components ...graph.Ref) graph.Ref {
	mod := g.NamedNode(modIRI)
	mod.SetProperty(graph.PredType, g.NamedNode(graph.TypeModule))
	mod.SetProperty(graph.PredComponents, components...)
	return mod
}

func newClass(g *graph.Graph, iri string) graph.Ref {
	c := g.NamedNode(iri)
	c.SetProperty(graph.PredType, g.NamedNode(graph.TypeClass))
	return c
}

func TestRegisterModuleSetsBackReference(t *testing.T) {
	g := graph.New()
	reg := New(g)
	comp := newClass(g, "https://example.org#Comp")
	mod := newModule(g, "https://example.org#mod", comp)

	require.NoError(t, reg.RegisterModule(mod))

	got, ok := reg.Component(comp.IRI())
	require.True(t, ok)
	modRef, ok := got.Property(graph.PredModule)
	require.True(t, ok)
	assert.Equal(t, mod.IRI(), modRef.IRI())
}

func TestRegisterModuleRejectsUnrecognisedComponentType(t *testing.T) {
	g := graph.New()
	reg := New(g)
	bad := g.NamedNode("https://example.org#Bad")
	bad.SetProperty(graph.PredType, g.NamedNode("https://example.org#NotAComponent"))
	mod := newModule(g, "https://example.org#mod", bad)

	err := reg.RegisterModule(mod)
	assert.Error(t, err)
	_, ok := reg.Component(bad.IRI())
	assert.False(t, ok)
}

func TestRegistryFreezesAfterFinalize(t *testing.T) {
	g := graph.New()
	reg := New(g)
	comp := newClass(g, "https://example.org#Comp")
	mod := newModule(g, "https://example.org#mod", comp)
	require.NoError(t, reg.RegisterModule(mod))
	require.NoError(t, reg.Finalize())

	assert.True(t, reg.Finalized())

	other := newModule(g, "https://example.org#other", newClass(g, "https://example.org#Other"))
	err := reg.RegisterModule(other)
	assert.ErrorIs(t, err, apperrors.ErrRegistryFrozen)
}

func TestEnsureFinalizedIdempotent(t *testing.T) {
	g := graph.New()
	reg := New(g)
	require.NoError(t, reg.EnsureFinalized())
	require.NoError(t, reg.EnsureFinalized())
	assert.True(t, reg.Finalized())
}

func TestResolveComponents(t *testing.T) {
	g := graph.New()
	reg := New(g)
	comp := newClass(g, "https://example.org#Comp")
	mod := newModule(g, "https://example.org#mod", comp)
	require.NoError(t, reg.RegisterModule(mod))

	unrelated := g.NamedNode("https://example.org#NotRegistered")
	matches := reg.ResolveComponents([]graph.Ref{comp, unrelated})
	require.Len(t, matches, 1)
	assert.Equal(t, comp.IRI(), matches[0].IRI())
}

func TestMustComponentUnknown(t *testing.T) {
	g := graph.New()
	reg := New(g)
	_, err := reg.MustComponent("https://example.org#missing")
	assert.Error(t, err)
}
