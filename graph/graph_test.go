package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamedNodeInterning(t *testing.T) {
	g := New()
	a := g.NamedNode("https://example.org#a")
	b := g.NamedNode("https://example.org#a")
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.ID(), b.ID())
}

func TestBlankNodeIdentity(t *testing.T) {
	g := New()
	a := g.BlankNode()
	b := g.BlankNode()
	assert.False(t, a.Equal(b))
}

func TestLiteralsAreNeverInterned(t *testing.T) {
	g := New()
	a := g.Literal("5", "")
	b := g.Literal("5", "")
	assert.False(t, a.Equal(b))
	assert.Equal(t, a.Value(), b.Value())
}

func TestUndefinedIsSingleton(t *testing.T) {
	g := New()
	a := g.Undefined()
	b := g.Undefined()
	assert.True(t, a.Equal(b))
	assert.True(t, a.IsA(TypeUndefinedArgument))
}

func TestPropertiesOrderedAndMultiValued(t *testing.T) {
	g := New()
	subj := g.NamedNode("https://example.org#s")
	v1 := g.Literal("one", "")
	v2 := g.Literal("two", "")
	subj.SetProperty("pred", v1, v2)

	vals := subj.Properties("pred")
	require.Len(t, vals, 2)
	assert.Equal(t, "one", vals[0].Value())
	assert.Equal(t, "two", vals[1].Value())
}

func TestSetPropertyReplacesWholesale(t *testing.T) {
	g := New()
	subj := g.NamedNode("https://example.org#s")
	subj.SetProperty("pred", g.Literal("one", ""))
	subj.SetProperty("pred", g.Literal("two", ""))

	vals := subj.Properties("pred")
	require.Len(t, vals, 1)
	assert.Equal(t, "two", vals[0].Value())
}

func TestAppendPropertyAccumulates(t *testing.T) {
	g := New()
	subj := g.NamedNode("https://example.org#s")
	subj.AppendProperty("pred", g.Literal("one", ""))
	subj.AppendProperty("pred", g.Literal("two", ""))

	assert.Len(t, subj.Properties("pred"), 2)
}

func TestRemoveProperty(t *testing.T) {
	g := New()
	subj := g.NamedNode("https://example.org#s")
	subj.SetProperty("pred", g.Literal("one", ""))
	subj.RemoveProperty("pred")
	assert.False(t, subj.Has("pred"))
}

func TestIsA(t *testing.T) {
	g := New()
	subj := g.NamedNode("https://example.org#s")
	subj.SetProperty(PredType, g.NamedNode("https://example.org#TypeA"), g.NamedNode("https://example.org#TypeB"))
	assert.True(t, subj.IsA("https://example.org#TypeA"))
	assert.True(t, subj.IsA("https://example.org#TypeB"))
	assert.False(t, subj.IsA("https://example.org#TypeC"))
}

func TestLookupMissing(t *testing.T) {
	g := New()
	_, ok := g.Lookup("https://example.org#missing")
	assert.False(t, ok)
}

func TestZeroRef(t *testing.T) {
	var r Ref
	assert.True(t, r.IsZero())
}
