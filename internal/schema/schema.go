// Package schema models entity document shapes as data: which fields an
// entity kind always carries, and which appear only when a caller requests
// the matching include parameters. Schemas reference each other by kind
// name through a Registry, so cyclic entity graphs stay representable.
package schema

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrUnknownKind signals a kind name with no registered schema.
	ErrUnknownKind = errors.New("unknown entity kind")
	// ErrDuplicateKind signals a second registration under the same name.
	ErrDuplicateKind = errors.New("duplicate entity kind")
	// ErrInvalidSchema signals a malformed schema definition.
	ErrInvalidSchema = errors.New("invalid schema")
)

// Include is one include parameter token, e.g. "aliases" or "artist-rels".
type Include string

// IncludeSet is an unordered set of include parameters.
// Duplicates are idempotent, order never matters.
type IncludeSet map[Include]struct{}

// NewIncludeSet builds a set from tokens.
func NewIncludeSet(incs ...Include) IncludeSet {
	s := make(IncludeSet, len(incs))
	for _, inc := range incs {
		s[inc] = struct{}{}
	}
	return s
}

// Has reports whether inc is in the set.
func (s IncludeSet) Has(inc Include) bool {
	_, ok := s[inc]
	return ok
}

// HasAny reports whether any of incs is in the set.
func (s IncludeSet) HasAny(incs []Include) bool {
	for _, inc := range incs {
		if s.Has(inc) {
			return true
		}
	}
	return false
}

// Add inserts inc into the set.
func (s IncludeSet) Add(inc Include) {
	s[inc] = struct{}{}
}

// Sorted returns the set contents in lexical order.
func (s IncludeSet) Sorted() []Include {
	out := make([]Include, 0, len(s))
	for inc := range s {
		out = append(out, inc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// TypeKind discriminates field value types.
type TypeKind int

const (
	// None is the empty type: no value, no reachable includes.
	// It is the identity element of include collection.
	None TypeKind = iota
	// Scalar is a string/number/bool leaf.
	Scalar
	// Object is an opaque JSON object with no nested entity.
	Object
	// Entity references another registered schema by kind name.
	Entity
	// List wraps an element type.
	List
	// Relation is a list of relation objects whose payload schema depends
	// on the target type of each element (see Registry.RelateTo).
	Relation
)

// Type describes the value shape of one field.
type Type struct {
	Kind TypeKind
	Elem *Type  // element type, List only
	Of   string // target kind name, Entity only
}

// ScalarType returns a scalar leaf type.
func ScalarType() Type { return Type{Kind: Scalar} }

// ObjectType returns an opaque object type.
func ObjectType() Type { return Type{Kind: Object} }

// EntityType returns a reference to the named schema.
func EntityType(kind string) Type { return Type{Kind: Entity, Of: kind} }

// ListOf returns a list of the given element type.
func ListOf(elem Type) Type { return Type{Kind: List, Elem: &elem} }

// RelationList returns the relation-list type.
func RelationList() Type { return Type{Kind: Relation} }

// SubQuery is a conditionally present field: it appears in a document only
// when at least one of Any was requested. Any is usually a single token but
// may be a union, e.g. artist-credit activated by "artists" or
// "artist-credits".
type SubQuery struct {
	Any     []Include
	Payload Type
}

// Schema describes one entity kind.
type Schema struct {
	Kind   string
	Always map[string]Type
	Subs   map[string]SubQuery
}

// Registry is an arena of named schemas. All cross-schema references
// resolve through it, which keeps cyclic entity graphs finite.
type Registry struct {
	schemas    map[string]*Schema
	relTargets map[Include]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		schemas:    make(map[string]*Schema),
		relTargets: make(map[Include]string),
	}
}

// Register adds a schema. Kind names are unique; a field name must not be
// both always-present and a sub-query.
func (r *Registry) Register(s *Schema) error {
	if s.Kind == "" {
		return fmt.Errorf("%w: empty kind name", ErrInvalidSchema)
	}
	if _, ok := r.schemas[s.Kind]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateKind, s.Kind)
	}
	for name, sq := range s.Subs {
		if _, ok := s.Always[name]; ok {
			return fmt.Errorf("%w: field %q of %s is both always and sub-query", ErrInvalidSchema, name, s.Kind)
		}
		if len(sq.Any) == 0 {
			return fmt.Errorf("%w: sub-query %q of %s has no includes", ErrInvalidSchema, name, s.Kind)
		}
	}
	r.schemas[s.Kind] = s
	return nil
}

// RelateTo declares that the given relationship include resolves relation
// targets of the given kind, e.g. "artist-rels" -> "artist".
func (r *Registry) RelateTo(inc Include, kind string) {
	r.relTargets[inc] = kind
}

// RelTarget returns the target kind for a relationship include.
func (r *Registry) RelTarget(inc Include) (string, bool) {
	kind, ok := r.relTargets[inc]
	return kind, ok
}

// Schema returns the schema registered under kind.
func (r *Registry) Schema(kind string) (*Schema, bool) {
	s, ok := r.schemas[kind]
	return s, ok
}

// Kinds returns all registered kind names in lexical order.
func (r *Registry) Kinds() []string {
	out := make([]string, 0, len(r.schemas))
	for kind := range r.schemas {
		out = append(out, kind)
	}
	sort.Strings(out)
	return out
}

// Validate checks referential integrity: every Entity reference and every
// declared relation target must resolve to a registered schema.
func (r *Registry) Validate() error {
	for _, s := range r.schemas {
		for name, t := range s.Always {
			if err := r.validateType(t); err != nil {
				return fmt.Errorf("%s.%s: %w", s.Kind, name, err)
			}
		}
		for name, sq := range s.Subs {
			if err := r.validateType(sq.Payload); err != nil {
				return fmt.Errorf("%s.%s: %w", s.Kind, name, err)
			}
		}
	}
	for inc, kind := range r.relTargets {
		if _, ok := r.schemas[kind]; !ok {
			return fmt.Errorf("relation target of %q: %w: %s", inc, ErrUnknownKind, kind)
		}
	}
	return nil
}

func (r *Registry) validateType(t Type) error {
	switch t.Kind {
	case Entity:
		if _, ok := r.schemas[t.Of]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownKind, t.Of)
		}
	case List:
		if t.Elem == nil {
			return fmt.Errorf("%w: list without element type", ErrInvalidSchema)
		}
		return r.validateType(*t.Elem)
	}
	return nil
}
