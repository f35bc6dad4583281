package graph

// NewList materialises items as an RDF collection (a chain of blank nodes
// linked by rdf:first/rdf:rest, terminated by the well-known rdf:nil) and
// returns the head. An empty items slice returns the rdf:nil node itself,
// matching RDF's empty-list convention.
//
// This is the only place list structure is built; List() below is the
// matching reader, so the two stay in sync by construction rather than by
// a parallel "first/rest" predicate the rest of the codebase has to
// remember.
func (g *Graph) NewList(items []Ref) Ref {
	tail := g.nilNode()
	for i := len(items) - 1; i >= 0; i-- {
		cell := g.BlankNode()
		cell.SetProperty(predFirst, items[i])
		cell.SetProperty(predRest, tail)
		tail = cell
	}
	return tail
}

const (
	predFirst = "rdf:first"
	predRest  = "rdf:rest"
)

func (g *Graph) nilNode() Ref {
	return g.NamedNode(rdfNil)
}

// List walks r as the head of an RDF collection and returns its members in
// order. If r is not rdf:nil and has no rdf:first, List treats r as a
// degenerate single-element "list" containing only r — a permissive
// reading of a bare value where a list was expected, sparing every
// preprocessor from special-casing scalar-vs-list parameter values itself.
func (r Ref) List() []Ref {
	if r.Value() == rdfNil && r.Kind() == NamedNode {
		return nil
	}
	if !r.Has(predFirst) {
		return []Ref{r}
	}
	var out []Ref
	cur := r
	for {
		if cur.Kind() == NamedNode && cur.Value() == rdfNil {
			break
		}
		first, ok := cur.Property(predFirst)
		if !ok {
			break
		}
		out = append(out, first)
		rest, ok := cur.Property(predRest)
		if !ok {
			break
		}
		cur = rest
	}
	return out
}

// IsList reports whether r looks like the head of an RDF collection (either
// rdf:nil or a node carrying rdf:first).
func (r Ref) IsList() bool {
	return (r.Kind() == NamedNode && r.Value() == rdfNil) || r.Has(predFirst)
}
