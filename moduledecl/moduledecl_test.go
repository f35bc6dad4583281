package moduledecl

import (
	"testing"

	"github.com/jeswr/components-go/graph"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
module: https://example.org/modules#greeter
components:
  - iri: https://example.org/components#Greeter
    type: Class
    requireName: greeter-module
    requireElement: Greeter
    parameters:
      - iri: https://example.org/components#Greeter#name
        name: name
        default: world
    constructorArguments:
      - onParameter: https://example.org/components#Greeter#name
`

func TestParse(t *testing.T) {
	m, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/modules#greeter", m.IRI)
	require.Len(t, m.Components, 1)
	assert.Equal(t, "greeter-module", m.Components[0].RequireName)
	require.Len(t, m.Components[0].Parameters, 1)
	assert.Equal(t, "name", m.Components[0].Parameters[0].Name)
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("not: [valid"))
	assert.Error(t, err)
}

func TestLoadLowersIntoGraph(t *testing.T) {
	m, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	g := graph.New()
	mod := Load(g, m)

	assert.True(t, mod.IsA(graph.TypeModule))
	comps := mod.Properties(graph.PredComponents)
	require.Len(t, comps, 1)

	comp := comps[0]
	assert.True(t, comp.IsA(graph.TypeClass))

	requireName, ok := comp.Property(graph.PredRequireName)
	require.True(t, ok)
	assert.Equal(t, "greeter-module", requireName.Value())

	requireElement, ok := comp.Property(graph.PredRequireElement)
	require.True(t, ok)
	assert.Equal(t, "Greeter", requireElement.Value())

	params := comp.Properties(graph.PredParameter)
	require.Len(t, params, 1)
	name, ok := params[0].Property(graph.PredName)
	require.True(t, ok)
	assert.Equal(t, "name", name.Value())

	ca, ok := comp.Property(graph.PredConstructorArguments)
	require.True(t, ok)
	require.True(t, ca.IsList())
	items := ca.List()
	require.Len(t, items, 1)
	onParam, ok := items[0].Property(graph.PredOnParameter)
	require.True(t, ok)
	assert.Equal(t, params[0].IRI(), onParam.IRI())
}

func TestLoadFieldsMapping(t *testing.T) {
	yamlDoc := `
module: https://example.org/modules#m
components:
  - iri: https://example.org/components#C
    type: Class
    constructorArguments:
      - fields:
          - key: name
            onParameter: https://example.org/components#C#name
`
	m, err := Parse([]byte(yamlDoc))
	require.NoError(t, err)

	g := graph.New()
	mod := Load(g, m)
	comp := mod.Properties(graph.PredComponents)[0]
	ca, _ := comp.Property(graph.PredConstructorArguments)
	items := ca.List()
	require.Len(t, items, 1)

	fieldsEntries := items[0].Properties(graph.PredFields)
	require.Len(t, fieldsEntries, 1)
	key, ok := fieldsEntries[0].Property(graph.PredKey)
	require.True(t, ok)
	assert.Equal(t, "name", key.Value())
}

func TestTypeIRIDefaultsToClass(t *testing.T) {
	assert.Equal(t, graph.TypeClass, typeIRI("unknown"))
	assert.Equal(t, graph.TypeAbstractClass, typeIRI("AbstractClass"))
	assert.Equal(t, graph.TypeComponentInstance, typeIRI("ComponentInstance"))
}
