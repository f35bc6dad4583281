package graph

import "context"

// Triple is the minimal collaborator-facing shape this package needs from
// an external RDF parser: subject/predicate as IRIs (or a blank-node label
// starting with "_:"), and an object that is either another node (IRI /
// blank label) or a literal value with an optional datatype.
//
// Real RDF parsing and JSON-LD context resolution are out of scope for this
// package; this type is the seam an external parser plugs into, and Loader
// below is a minimal reference implementation good enough for tests and for
// the moduledecl convenience format, not a general-purpose RDF toolchain.
type Triple struct {
	Subject   string
	Predicate string
	Object    string
	ObjectIsLiteral bool
	Datatype  string
}

// ObjectLoader is the "RDF object loader" collaborator interface: importing
// triples populates the graph and makes every seen IRI available by
// lookup.
type ObjectLoader interface {
	Import(ctx context.Context, triples []Triple) error
	Resources() map[string]Ref
}

// Loader is a minimal ObjectLoader over a Graph: it applies triples
// directly, in order, with list-valued predicates appending rather than
// replacing (an RDF graph has no concept of property order across separate
// triples other than insertion order, which is what a real parser would
// also preserve).
type Loader struct {
	g *Graph
}

// NewLoader returns a Loader writing into g.
func NewLoader(g *Graph) *Loader {
	return &Loader{g: g}
}

// Import applies triples to the underlying graph. It never fails on
// malformed input by design — out-of-scope parsing concerns (bad IRIs,
// unsupported literal datatypes) are the external parser's job; by the
// time a Triple reaches here it is assumed well-formed.
func (l *Loader) Import(ctx context.Context, triples []Triple) error {
	for _, t := range triples {
		if err := ctx.Err(); err != nil {
			return err
		}
		subj := l.node(t.Subject)
		var obj Ref
		if t.ObjectIsLiteral {
			obj = l.g.Literal(t.Object, t.Datatype)
		} else {
			obj = l.node(t.Object)
		}
		subj.AppendProperty(t.Predicate, obj)
	}
	return nil
}

func (l *Loader) node(label string) Ref {
	return l.g.NamedNode(label)
}

// Resources returns every IRI-indexed node of the underlying graph, keyed
// by IRI/blank label — including nodes created outside this loader.
func (l *Loader) Resources() map[string]Ref {
	l.g.mu.RLock()
	defer l.g.mu.RUnlock()
	out := make(map[string]Ref, len(l.g.byIRI))
	for iri, id := range l.g.byIRI {
		out[iri] = Ref{g: l.g, id: id}
	}
	return out
}
