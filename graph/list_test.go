package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListRoundTrip(t *testing.T) {
	g := New()
	items := []Ref{g.Literal("a", ""), g.Literal("b", ""), g.Literal("c", "")}
	head := g.NewList(items)

	require.True(t, head.IsList())
	out := head.List()
	require.Len(t, out, 3)
	for i, item := range out {
		assert.Equal(t, items[i].Value(), item.Value())
	}
}

func TestNewListEmptyIsNil(t *testing.T) {
	g := New()
	head := g.NewList(nil)
	assert.True(t, head.IsList())
	assert.Nil(t, head.List())
}

func TestListDegenerateScalar(t *testing.T) {
	g := New()
	scalar := g.Literal("bare", "")
	assert.False(t, scalar.IsList())
	assert.Equal(t, []Ref{scalar}, scalar.List())
}
