package graph

// Ref is a handle to a single resource inside a Graph. It is a value type
// (copyable, comparable) so it can be used as a map key (e.g. the
// registry's inheritance sets) or passed by value without aliasing concerns — all the mutable
// state lives in the Graph it points at.
type Ref struct {
	g  *Graph
	id ID
}

// IsZero reports whether r is the empty Ref (never bound to a Graph).
func (r Ref) IsZero() bool {
	return r.g == nil
}

// Graph returns the owning Graph.
func (r Ref) Graph() *Graph {
	return r.g
}

// ID returns the arena index, mostly useful as a map key when a caller
// wants to avoid the overhead of Value()-based keys. (The Pool keys its
// cache on the IRI string, not on this.)
func (r Ref) ID() ID {
	return r.id
}

// Kind returns the term kind of r.
func (r Ref) Kind() TermKind {
	return r.g.mustResource(r.id).kind
}

// Value returns the lexical value: the IRI for NamedNode/BlankNode, the
// lexical form for Literal, the lookup name for Variable.
func (r Ref) Value() string {
	return r.g.mustResource(r.id).value
}

// Datatype returns the literal's datatype IRI, or "" for non-literals and
// untyped literals.
func (r Ref) Datatype() string {
	return r.g.mustResource(r.id).datatype
}

// IRI is an alias for Value restricted to node terms, for readability at
// call sites that only make sense for NamedNode/BlankNode.
func (r Ref) IRI() string {
	return r.Value()
}

// Properties returns the ordered, non-empty (by construction) list of
// objects for predicate. A missing predicate returns a nil slice, never a
// panic — most predicates are optional.
func (r Ref) Properties(predicate string) []Ref {
	res := r.g.mustResource(r.id)
	ids := res.properties[predicate]
	if len(ids) == 0 {
		return nil
	}
	out := make([]Ref, len(ids))
	for i, id := range ids {
		out[i] = Ref{g: r.g, id: id}
	}
	return out
}

// Property returns the first object of predicate, if any.
func (r Ref) Property(predicate string) (Ref, bool) {
	vals := r.Properties(predicate)
	if len(vals) == 0 {
		return Ref{}, false
	}
	return vals[0], true
}

// Has reports whether predicate is present at all.
func (r Ref) Has(predicate string) bool {
	res := r.g.mustResource(r.id)
	return len(res.properties[predicate]) > 0
}

// SetProperty replaces predicate's value list wholesale.
func (r Ref) SetProperty(predicate string, values ...Ref) {
	r.g.mu.Lock()
	defer r.g.mu.Unlock()
	res := &r.g.resources[r.id]
	if res.properties == nil {
		res.properties = make(map[string][]ID)
	}
	ids := make([]ID, len(values))
	for i, v := range values {
		ids[i] = v.id
	}
	res.properties[predicate] = ids
}

// AppendProperty appends values to predicate's existing list (creating it
// if absent).
func (r Ref) AppendProperty(predicate string, values ...Ref) {
	r.g.mu.Lock()
	defer r.g.mu.Unlock()
	res := &r.g.resources[r.id]
	if res.properties == nil {
		res.properties = make(map[string][]ID)
	}
	for _, v := range values {
		res.properties[predicate] = append(res.properties[predicate], v.id)
	}
}

// RemoveProperty deletes predicate entirely.
func (r Ref) RemoveProperty(predicate string) {
	r.g.mu.Lock()
	defer r.g.mu.Unlock()
	res := &r.g.resources[r.id]
	delete(res.properties, predicate)
}

// Types returns the union of rdf:type values declared on r.
func (r Ref) Types() []Ref {
	return r.Properties(PredType)
}

// IsA tests resource-type membership over the union of declared rdf:type
// values.
func (r Ref) IsA(typeIRI string) bool {
	for _, t := range r.Types() {
		if t.Value() == typeIRI {
			return true
		}
	}
	return false
}

// Equal reports whether two Refs point at the same resource in the same
// Graph. Go's == would already do this since Ref is a plain value type, but
// Equal documents the intent at call sites that compare resource identity —
// parameter inheritance, for instance, is identity-based, not
// field-equality-based.
func (r Ref) Equal(other Ref) bool {
	return r.g == other.g && r.id == other.id
}
