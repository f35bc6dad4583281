// Package graph implements the Resource Graph View: a
// read-only-from-the-outside projection of a parsed RDF graph, addressable
// by IRI, with ordered typed properties and an RDF-list projection.
//
// The graph is modeled as an arena: resources live in a single Graph's
// dense slice and are referenced by other resources' property lists via
// integer ID, not by pointer. A Ref is a lightweight (Graph, ID) pair handed
// to callers; it is the only way code outside this package touches a
// resource. Mutation (property writes) is still possible through a Ref —
// preprocessors need it to canonicalise a config in place — but it is only
// ever legal before the owning component/config has been handed to a reader
// that assumes the frozen shape (the Registry enforces this for component
// definitions; the Pool enforces it for configs, by only ever
// canonicalising on first visit).
package graph

import (
	"fmt"
	"sync"

	"github.com/gofrs/uuid/v5"
)

// Graph owns a set of resources, each addressable by IRI (for NamedNode,
// BlankNode and Variable terms) and all addressable by ID once referenced from a
// property list.
type Graph struct {
	mu          sync.RWMutex
	resources   []resource
	byIRI       map[string]ID
	undefinedID ID
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{byIRI: make(map[string]ID), undefinedID: invalidID}
}

// NamedNode returns a Ref for the given IRI, creating the backing resource
// on first use. Calling NamedNode twice with the same IRI returns the same
// underlying resource, which is how configs and component definitions
// sharing a module end up pointing at each other.
func (g *Graph) NamedNode(iri string) Ref {
	g.mu.Lock()
	defer g.mu.Unlock()
	if id, ok := g.byIRI[iri]; ok {
		return Ref{g: g, id: id}
	}
	id := g.append(resource{kind: NamedNode, value: iri})
	g.byIRI[iri] = id
	return Ref{g: g, id: id}
}

// BlankNode allocates a fresh anonymous node with a gofrs/uuid-derived
// label, used by instantiate_manually to synthesize a config resource for a
// params map and by the Override preprocessor when splicing unlabeled list
// items.
func (g *Graph) BlankNode() Ref {
	label := "_:b" + uuid.Must(uuid.NewV4()).String()
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.append(resource{kind: BlankNode, value: label})
	g.byIRI[label] = id
	return Ref{g: g, id: id}
}

// Literal returns a fresh Literal term. Literals are never interned by
// value: two calls with equal lexical form are two distinct resources,
// matching RDF semantics where only a value+datatype pair is meaningful,
// not node identity.
func (g *Graph) Literal(value, datatype string) Ref {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.append(resource{kind: Literal, value: value, datatype: datatype})
	return Ref{g: g, id: id}
}

// Variable returns a fresh resource of type Variable whose value is the
// variable's lookup name. It is also indexed under that name, so
// Lookup(r.IRI()) finds it and the Pool can resolve it as a config.
func (g *Graph) Variable(name string) Ref {
	r := g.BlankNode()
	g.mu.Lock()
	g.resources[r.id].kind = VariableTerm
	g.resources[r.id].value = name
	g.byIRI[name] = r.id
	g.mu.Unlock()
	r.SetProperty(PredType, g.NamedNode(TypeVariable))
	return r
}

// Undefined returns the graph-wide placeholder for "argument position
// present but no value resolved" — an onParameter mapping whose parameter
// the config never set. It is created once per
// Graph and reused, so two Undefined() calls on the same graph compare
// Equal. The config constructor still calls the strategy's CreateUndefined
// at every occurrence of the placeholder.
func (g *Graph) Undefined() Ref {
	g.mu.Lock()
	if g.undefinedID != invalidID {
		id := g.undefinedID
		g.mu.Unlock()
		return Ref{g: g, id: id}
	}
	id := g.append(resource{kind: BlankNode, value: "_:undefined"})
	g.undefinedID = id
	g.mu.Unlock()
	ref := Ref{g: g, id: id}
	ref.SetProperty(PredType, g.NamedNode(TypeUndefinedArgument))
	return ref
}

// Lookup returns the Ref for an already-created IRI, without creating one.
func (g *Graph) Lookup(iri string) (Ref, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	id, ok := g.byIRI[iri]
	if !ok {
		return Ref{}, false
	}
	return Ref{g: g, id: id}, true
}

// append must be called with g.mu held.
func (g *Graph) append(r resource) ID {
	id := ID(len(g.resources))
	g.resources = append(g.resources, r)
	return id
}

func (g *Graph) mustResource(id ID) *resource {
	if int(id) < 0 || int(id) >= len(g.resources) {
		panic(fmt.Sprintf("graph: invalid resource id %d", id))
	}
	return &g.resources[id]
}
