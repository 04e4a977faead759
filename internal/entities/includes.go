package entities

import "github.com/ellipsora/brainz/internal/schema"

// The include vocabulary, partitioned the way the web service documents
// it: miscellaneous includes, relationship includes (one per relatable
// kind), and sub-query includes.

var miscIncludes = []schema.Include{
	"aliases", "annotation", "tags", "user-tags",
	"genres", "user-genres", "ratings", "user-ratings",
}

var relIncludes = []schema.Include{
	"area-rels", "artist-rels", "event-rels", "instrument-rels",
	"label-rels", "place-rels", "recording-rels", "release-rels",
	"release-group-rels", "series-rels", "url-rels", "work-rels",
}

var subQueryIncludes = []schema.Include{
	"artists", "artist-credits", "recordings", "releases",
	"release-groups", "works", "labels", "media", "discids",
	"isrcs", "collections",
}

// MiscIncludes returns the miscellaneous include tokens.
func MiscIncludes() []schema.Include {
	out := make([]schema.Include, len(miscIncludes))
	copy(out, miscIncludes)
	return out
}

// RelIncludes returns the relationship include tokens, one per relatable
// entity kind ("<kind>-rels").
func RelIncludes() []schema.Include {
	out := make([]schema.Include, len(relIncludes))
	copy(out, relIncludes)
	return out
}

// SubQueryIncludes returns the sub-query include tokens.
func SubQueryIncludes() []schema.Include {
	out := make([]schema.Include, len(subQueryIncludes))
	copy(out, subQueryIncludes)
	return out
}
