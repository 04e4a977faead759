package schema

import "fmt"

// CollectIncludes returns every include parameter that can affect any field
// reachable from the named schema, directly or through nested sub-query
// payloads. The result is duplicate-free and sorted.
//
// Traversal descends into entity-typed always-fields as well: their own
// sub-queries still gate conditionally, so their includes belong to the
// reachable vocabulary. A schema visited once per call is not re-expanded,
// which bounds recursion on cyclic graphs (release -> release-group ->
// release).
func (r *Registry) CollectIncludes(kind string) ([]Include, error) {
	root, ok := r.schemas[kind]
	if !ok {
		return nil, fmt.Errorf("collect includes: %w: %s", ErrUnknownKind, kind)
	}

	set := make(IncludeSet)
	seen := map[string]struct{}{root.Kind: {}}
	todo := []*Schema{root}

	for len(todo) > 0 {
		s := todo[len(todo)-1]
		todo = todo[:len(todo)-1]

		for _, t := range s.Always {
			todo = r.pushReachable(t, nil, seen, todo)
		}
		for _, sq := range s.Subs {
			for _, inc := range sq.Any {
				set.Add(inc)
			}
			todo = r.pushReachable(sq.Payload, sq.Any, seen, todo)
		}
	}

	return set.Sorted(), nil
}

// pushReachable appends the schemas reachable through t to the worklist.
// via carries the enclosing sub-query's includes; for relation lists it
// names which relationship includes (and so which target kinds) apply.
func (r *Registry) pushReachable(t Type, via []Include, seen map[string]struct{}, todo []*Schema) []*Schema {
	switch t.Kind {
	case Entity:
		todo = r.pushKind(t.Of, seen, todo)
	case List:
		if t.Elem != nil {
			todo = r.pushReachable(*t.Elem, via, seen, todo)
		}
	case Relation:
		for _, inc := range via {
			if kind, ok := r.relTargets[inc]; ok {
				todo = r.pushKind(kind, seen, todo)
			}
		}
	}
	return todo
}

func (r *Registry) pushKind(kind string, seen map[string]struct{}, todo []*Schema) []*Schema {
	if _, done := seen[kind]; done {
		return todo
	}
	s, ok := r.schemas[kind]
	if !ok {
		return todo
	}
	seen[kind] = struct{}{}
	return append(todo, s)
}
