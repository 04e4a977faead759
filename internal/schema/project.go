package schema

import "fmt"

// relTargetTypeField names the discriminator the server puts on every
// relation object.
const relTargetTypeField = "target-type"

// Project computes the document shape the named schema takes under the
// given requested includes: always-fields survive, a sub-query field
// survives when any of its includes was requested, and surviving entity
// payloads are projected recursively with the same include set.
//
// Project never mutates doc. A sub-query field whose condition is not met
// is removed outright; a field missing from doc is treated as absent even
// when its condition holds. The transform is pure and deterministic.
func (r *Registry) Project(kind string, doc map[string]any, includes IncludeSet) (map[string]any, error) {
	s, ok := r.schemas[kind]
	if !ok {
		return nil, fmt.Errorf("project: %w: %s", ErrUnknownKind, kind)
	}
	if doc == nil {
		return nil, nil
	}
	return r.projectSchema(s, doc, includes), nil
}

func (r *Registry) projectSchema(s *Schema, doc map[string]any, includes IncludeSet) map[string]any {
	out := make(map[string]any, len(doc))
	for name, t := range s.Always {
		if v, ok := doc[name]; ok {
			out[name] = r.projectValue(t, nil, v, includes)
		}
	}
	for name, sq := range s.Subs {
		if !includes.HasAny(sq.Any) {
			continue
		}
		v, ok := doc[name]
		if !ok {
			continue
		}
		out[name] = r.projectValue(sq.Payload, sq.Any, v, includes)
	}
	return out
}

// projectValue shapes a single field value. via carries the enclosing
// sub-query's includes for relation lists. Values that do not match the
// declared shape (null where an object is expected, a scalar where a list
// is expected) pass through untouched: absence of data and absence of
// entitlement collapse to the same outcome, and the engine never invents
// structure the server did not send.
func (r *Registry) projectValue(t Type, via []Include, v any, includes IncludeSet) any {
	switch t.Kind {
	case Entity:
		m, ok := v.(map[string]any)
		if !ok {
			return v
		}
		s, ok := r.schemas[t.Of]
		if !ok {
			return v
		}
		return r.projectSchema(s, m, includes)
	case List:
		arr, ok := v.([]any)
		if !ok || t.Elem == nil {
			return v
		}
		out := make([]any, len(arr))
		for i, el := range arr {
			out[i] = r.projectValue(*t.Elem, via, el, includes)
		}
		return out
	case Relation:
		return r.projectRelations(via, v, includes)
	default:
		return v
	}
}

// projectRelations keeps only relation objects whose target type was
// actually requested through its relationship include, and projects each
// surviving target with that target kind's schema. A document related only
// via "artist-rels" therefore never exposes fields of other target kinds.
func (r *Registry) projectRelations(via []Include, v any, includes IncludeSet) any {
	arr, ok := v.([]any)
	if !ok {
		return v
	}
	out := make([]any, 0, len(arr))
	for _, el := range arr {
		rel, ok := el.(map[string]any)
		if !ok {
			out = append(out, el)
			continue
		}
		tt, _ := rel[relTargetTypeField].(string)
		inc, kind, ok := r.matchRelTarget(via, tt)
		if !ok || !includes.Has(inc) {
			continue
		}
		shaped := make(map[string]any, len(rel))
		for k, val := range rel {
			shaped[k] = val
		}
		if target, ok := rel[tt].(map[string]any); ok {
			if ts, ok := r.schemas[kind]; ok {
				shaped[tt] = r.projectSchema(ts, target, includes)
			}
		}
		out = append(out, shaped)
	}
	return out
}

// matchRelTarget finds the relationship include among via whose declared
// target kind matches the element's target type.
func (r *Registry) matchRelTarget(via []Include, targetType string) (Include, string, bool) {
	for _, inc := range via {
		if kind, ok := r.relTargets[inc]; ok && kind == targetType {
			return inc, kind, true
		}
	}
	return "", "", false
}
