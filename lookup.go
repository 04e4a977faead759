package brainz

import (
	"context"
	"fmt"

	"github.com/ellipsora/brainz/internal/entities"
	"github.com/ellipsora/brainz/internal/schema"
	"github.com/ellipsora/brainz/internal/ws"
)

// LookupRequest is a fluent builder for one entity lookup.
type LookupRequest struct {
	c *Client

	kind     string
	mbid     string
	includes []Include
	status   []string
	types    []string
	limit    int
	offset   int
}

// Entity starts a lookup for the given entity kind.
func (c *Client) Entity(kind string) *LookupRequest {
	return &LookupRequest{c: c, kind: kind}
}

// ID sets the MBID to look up.
func (r *LookupRequest) ID(mbid string) *LookupRequest {
	r.mbid = mbid
	return r
}

// Include adds include parameters. Duplicates are harmless.
func (r *LookupRequest) Include(incs ...Include) *LookupRequest {
	r.includes = append(r.includes, incs...)
	return r
}

// Status restricts which release statuses the server expands in nested
// release sub-queries ("official", "promotion", ...).
func (r *LookupRequest) Status(statuses ...string) *LookupRequest {
	r.status = append(r.status, statuses...)
	return r
}

// Type restricts which release-group types the server expands in nested
// release-group sub-queries ("album", "ep", ...).
func (r *LookupRequest) Type(types ...string) *LookupRequest {
	r.types = append(r.types, types...)
	return r
}

// Limit caps nested sub-query list sizes.
func (r *LookupRequest) Limit(n int) *LookupRequest {
	r.limit = n
	return r
}

// Offset pages nested sub-query lists.
func (r *LookupRequest) Offset(n int) *LookupRequest {
	r.offset = n
	return r
}

// Do executes the lookup.
func (r *LookupRequest) Do(ctx context.Context) (map[string]any, error) {
	if !entities.IsKind(r.kind) {
		return nil, fmt.Errorf("brainz: %w: %q", schema.ErrUnknownKind, r.kind)
	}

	var f *ws.Filters
	if len(r.status) > 0 || len(r.types) > 0 || r.limit > 0 || r.offset > 0 {
		f = &ws.Filters{
			Status: r.status,
			Types:  r.types,
			Limit:  r.limit,
			Offset: r.offset,
		}
	}

	doc, err := r.c.ws.Lookup(ctx, r.kind, r.mbid, toSchemaIncludes(r.includes), f)
	if err != nil {
		return nil, fmt.Errorf("brainz: lookup %s: %w", r.kind, err)
	}
	return doc, nil
}
