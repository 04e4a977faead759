// Package entities holds the static schema catalog for the MusicBrainz
// entity kinds: which fields each kind always carries, which appear only
// under specific includes, and how kinds nest into each other. The data
// here mirrors the live web service payloads, including its oddities.
package entities

import (
	"sync"

	"github.com/ellipsora/brainz/internal/schema"
)

// kinds a caller can look up directly.
var lookupKinds = []string{
	"area", "artist", "collection", "event", "genre", "instrument",
	"label", "place", "recording", "release", "release-group",
	"series", "url", "work",
}

// plurals maps a kind to the path segment used when browsing the contents
// of a collection of that kind.
var plurals = map[string]string{
	"area":          "areas",
	"artist":        "artists",
	"event":         "events",
	"instrument":    "instruments",
	"label":         "labels",
	"place":         "places",
	"recording":     "recordings",
	"release":       "releases",
	"release-group": "release-groups",
	"series":        "series",
	"work":          "works",
}

var catalog = sync.OnceValue(build)

// Catalog returns the shared schema registry. Built once, never mutated.
func Catalog() *schema.Registry {
	return catalog()
}

// Kinds returns the lookupable entity kinds in declaration order.
func Kinds() []string {
	out := make([]string, len(lookupKinds))
	copy(out, lookupKinds)
	return out
}

// IsKind reports whether kind names a lookupable entity.
func IsKind(kind string) bool {
	for _, k := range lookupKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Plural returns the browse path segment for a collection content kind.
func Plural(kind string) (string, bool) {
	p, ok := plurals[kind]
	return p, ok
}

// miscSubs returns the miscellaneous sub-query fields shared by most
// kinds. Rated kinds additionally carry rating fields.
func miscSubs(rated bool) map[string]schema.SubQuery {
	subs := map[string]schema.SubQuery{
		"aliases":     {Any: []schema.Include{"aliases"}, Payload: schema.ListOf(schema.ObjectType())},
		"annotation":  {Any: []schema.Include{"annotation"}, Payload: schema.ScalarType()},
		"tags":        {Any: []schema.Include{"tags"}, Payload: schema.ListOf(schema.ObjectType())},
		"user-tags":   {Any: []schema.Include{"user-tags"}, Payload: schema.ListOf(schema.ObjectType())},
		"genres":      {Any: []schema.Include{"genres"}, Payload: schema.ListOf(schema.ObjectType())},
		"user-genres": {Any: []schema.Include{"user-genres"}, Payload: schema.ListOf(schema.ObjectType())},
	}
	if rated {
		subs["rating"] = schema.SubQuery{Any: []schema.Include{"ratings"}, Payload: schema.ObjectType()}
		subs["user-rating"] = schema.SubQuery{Any: []schema.Include{"user-ratings"}, Payload: schema.ObjectType()}
	}
	return subs
}

// withRels adds the relations field, gated by the union of every
// relationship include.
func withRels(subs map[string]schema.SubQuery) map[string]schema.SubQuery {
	subs["relations"] = schema.SubQuery{Any: RelIncludes(), Payload: schema.RelationList()}
	return subs
}

func build() *schema.Registry {
	r := schema.NewRegistry()

	mustRegister(r, &schema.Schema{
		Kind: "area",
		Always: map[string]schema.Type{
			"id":               schema.ScalarType(),
			"name":             schema.ScalarType(),
			"sort-name":        schema.ScalarType(),
			"type":             schema.ScalarType(),
			"iso-3166-1-codes": schema.ListOf(schema.ScalarType()),
			"life-span":        schema.ObjectType(),
		},
		Subs: withRels(miscSubs(false)),
	})

	artistSubs := miscSubs(true)
	artistSubs["recordings"] = schema.SubQuery{Any: []schema.Include{"recordings"}, Payload: schema.ListOf(schema.EntityType("recording"))}
	artistSubs["releases"] = schema.SubQuery{Any: []schema.Include{"releases"}, Payload: schema.ListOf(schema.EntityType("release"))}
	artistSubs["release-groups"] = schema.SubQuery{Any: []schema.Include{"release-groups"}, Payload: schema.ListOf(schema.EntityType("release-group"))}
	artistSubs["works"] = schema.SubQuery{Any: []schema.Include{"works"}, Payload: schema.ListOf(schema.EntityType("work"))}
	mustRegister(r, &schema.Schema{
		Kind: "artist",
		Always: map[string]schema.Type{
			"id":             schema.ScalarType(),
			"name":           schema.ScalarType(),
			"sort-name":      schema.ScalarType(),
			"type":           schema.ScalarType(),
			"gender":         schema.ScalarType(),
			"country":        schema.ScalarType(),
			"disambiguation": schema.ScalarType(),
			"life-span":      schema.ObjectType(),
			"isnis":          schema.ListOf(schema.ScalarType()),
			"ipis":           schema.ListOf(schema.ScalarType()),
			"area":           schema.EntityType("area"),
			"begin-area":     schema.EntityType("area"),
			"end-area":       schema.EntityType("area"),
		},
		Subs: withRels(artistSubs),
	})

	mustRegister(r, &schema.Schema{
		Kind: "collection",
		Always: map[string]schema.Type{
			"id":          schema.ScalarType(),
			"name":        schema.ScalarType(),
			"editor":      schema.ScalarType(),
			"type":        schema.ScalarType(),
			"entity-type": schema.ScalarType(),
		},
	})

	mustRegister(r, &schema.Schema{
		Kind: "event",
		Always: map[string]schema.Type{
			"id":        schema.ScalarType(),
			"name":      schema.ScalarType(),
			"type":      schema.ScalarType(),
			"time":      schema.ScalarType(),
			"setlist":   schema.ScalarType(),
			"cancelled": schema.ScalarType(),
			"life-span": schema.ObjectType(),
		},
		Subs: withRels(miscSubs(true)),
	})

	mustRegister(r, &schema.Schema{
		Kind: "genre",
		Always: map[string]schema.Type{
			"id":             schema.ScalarType(),
			"name":           schema.ScalarType(),
			"disambiguation": schema.ScalarType(),
		},
	})

	mustRegister(r, &schema.Schema{
		Kind: "instrument",
		Always: map[string]schema.Type{
			"id":             schema.ScalarType(),
			"name":           schema.ScalarType(),
			"type":           schema.ScalarType(),
			"description":    schema.ScalarType(),
			"disambiguation": schema.ScalarType(),
		},
		Subs: withRels(miscSubs(false)),
	})

	labelSubs := miscSubs(true)
	labelSubs["releases"] = schema.SubQuery{Any: []schema.Include{"releases"}, Payload: schema.ListOf(schema.EntityType("release"))}
	mustRegister(r, &schema.Schema{
		Kind: "label",
		Always: map[string]schema.Type{
			"id":             schema.ScalarType(),
			"name":           schema.ScalarType(),
			"sort-name":      schema.ScalarType(),
			"type":           schema.ScalarType(),
			"label-code":     schema.ScalarType(),
			"country":        schema.ScalarType(),
			"disambiguation": schema.ScalarType(),
			"life-span":      schema.ObjectType(),
			"area":           schema.EntityType("area"),
		},
		Subs: withRels(labelSubs),
	})

	mustRegister(r, &schema.Schema{
		Kind: "place",
		Always: map[string]schema.Type{
			"id":             schema.ScalarType(),
			"name":           schema.ScalarType(),
			"type":           schema.ScalarType(),
			"address":        schema.ScalarType(),
			"coordinates":    schema.ObjectType(),
			"disambiguation": schema.ScalarType(),
			"life-span":      schema.ObjectType(),
			"area":           schema.EntityType("area"),
		},
		Subs: withRels(miscSubs(false)),
	})

	recordingSubs := miscSubs(true)
	recordingSubs["artist-credit"] = schema.SubQuery{Any: []schema.Include{"artists", "artist-credits"}, Payload: schema.ListOf(schema.EntityType("artist-credit"))}
	recordingSubs["releases"] = schema.SubQuery{Any: []schema.Include{"releases"}, Payload: schema.ListOf(schema.EntityType("release"))}
	recordingSubs["isrcs"] = schema.SubQuery{Any: []schema.Include{"isrcs"}, Payload: schema.ListOf(schema.ScalarType())}
	mustRegister(r, &schema.Schema{
		Kind: "recording",
		Always: map[string]schema.Type{
			"id":                 schema.ScalarType(),
			"title":              schema.ScalarType(),
			"length":             schema.ScalarType(),
			"video":              schema.ScalarType(),
			"disambiguation":     schema.ScalarType(),
			"first-release-date": schema.ScalarType(),
		},
		Subs: withRels(recordingSubs),
	})

	// Releases carry no rating fields on the live service; "ratings" is
	// still a legal include here, it just has no direct effect.
	releaseSubs := miscSubs(false)
	releaseSubs["artist-credit"] = schema.SubQuery{Any: []schema.Include{"artists", "artist-credits"}, Payload: schema.ListOf(schema.EntityType("artist-credit"))}
	releaseSubs["label-info"] = schema.SubQuery{Any: []schema.Include{"labels"}, Payload: schema.ListOf(schema.EntityType("label-info"))}
	releaseSubs["media"] = schema.SubQuery{Any: []schema.Include{"media", "discids", "recordings"}, Payload: schema.ListOf(schema.EntityType("medium"))}
	releaseSubs["release-group"] = schema.SubQuery{Any: []schema.Include{"release-groups"}, Payload: schema.EntityType("release-group")}
	releaseSubs["collections"] = schema.SubQuery{Any: []schema.Include{"collections"}, Payload: schema.ListOf(schema.EntityType("collection"))}
	mustRegister(r, &schema.Schema{
		Kind: "release",
		Always: map[string]schema.Type{
			"id":                  schema.ScalarType(),
			"title":               schema.ScalarType(),
			"status":              schema.ScalarType(),
			"date":                schema.ScalarType(),
			"country":             schema.ScalarType(),
			"barcode":             schema.ScalarType(),
			"packaging":           schema.ScalarType(),
			"quality":             schema.ScalarType(),
			"disambiguation":      schema.ScalarType(),
			"text-representation": schema.ObjectType(),
			"release-events":      schema.ListOf(schema.EntityType("release-event")),
		},
		Subs: withRels(releaseSubs),
	})

	rgSubs := miscSubs(true)
	// The live serializer has been observed keying this field's presence on
	// "artists" alone and emitting a null payload for it.
	rgSubs["artist-credit"] = schema.SubQuery{Any: []schema.Include{"artists", "artist-credits"}, Payload: schema.ListOf(schema.EntityType("artist-credit"))}
	rgSubs["releases"] = schema.SubQuery{Any: []schema.Include{"releases"}, Payload: schema.ListOf(schema.EntityType("release"))}
	mustRegister(r, &schema.Schema{
		Kind: "release-group",
		Always: map[string]schema.Type{
			"id":                 schema.ScalarType(),
			"title":              schema.ScalarType(),
			"primary-type":       schema.ScalarType(),
			"secondary-types":    schema.ListOf(schema.ScalarType()),
			"first-release-date": schema.ScalarType(),
			"disambiguation":     schema.ScalarType(),
		},
		Subs: withRels(rgSubs),
	})

	mustRegister(r, &schema.Schema{
		Kind: "series",
		Always: map[string]schema.Type{
			"id":             schema.ScalarType(),
			"name":           schema.ScalarType(),
			"type":           schema.ScalarType(),
			"disambiguation": schema.ScalarType(),
		},
		Subs: withRels(miscSubs(false)),
	})

	mustRegister(r, &schema.Schema{
		Kind: "url",
		Always: map[string]schema.Type{
			"id":       schema.ScalarType(),
			"resource": schema.ScalarType(),
		},
		Subs: withRels(map[string]schema.SubQuery{}),
	})

	workSubs := miscSubs(true)
	mustRegister(r, &schema.Schema{
		Kind: "work",
		Always: map[string]schema.Type{
			"id":             schema.ScalarType(),
			"title":          schema.ScalarType(),
			"type":           schema.ScalarType(),
			"languages":      schema.ListOf(schema.ScalarType()),
			"iswcs":          schema.ListOf(schema.ScalarType()),
			"disambiguation": schema.ScalarType(),
			"attributes":     schema.ListOf(schema.ObjectType()),
		},
		Subs: withRels(workSubs),
	})

	registerParts(r)

	for _, inc := range RelIncludes() {
		r.RelateTo(inc, string(inc[:len(inc)-len("-rels")]))
	}

	if err := r.Validate(); err != nil {
		panic("entities: invalid catalog: " + err.Error())
	}
	return r
}

// registerParts adds the non-lookupable payload kinds that only appear
// nested inside other entities.
func registerParts(r *schema.Registry) {
	mustRegister(r, &schema.Schema{
		Kind: "artist-credit",
		Always: map[string]schema.Type{
			"name":       schema.ScalarType(),
			"joinphrase": schema.ScalarType(),
			"artist":     schema.EntityType("artist"),
		},
	})
	mustRegister(r, &schema.Schema{
		Kind: "label-info",
		Always: map[string]schema.Type{
			"catalog-number": schema.ScalarType(),
			"label":          schema.EntityType("label"),
		},
	})
	mustRegister(r, &schema.Schema{
		Kind: "release-event",
		Always: map[string]schema.Type{
			"date": schema.ScalarType(),
			"area": schema.EntityType("area"),
		},
	})
	mustRegister(r, &schema.Schema{
		Kind: "medium",
		Always: map[string]schema.Type{
			"format":      schema.ScalarType(),
			"position":    schema.ScalarType(),
			"title":       schema.ScalarType(),
			"track-count": schema.ScalarType(),
		},
		Subs: map[string]schema.SubQuery{
			"discs":  {Any: []schema.Include{"discids"}, Payload: schema.ListOf(schema.EntityType("disc"))},
			"tracks": {Any: []schema.Include{"recordings"}, Payload: schema.ListOf(schema.EntityType("track"))},
		},
	})
	mustRegister(r, &schema.Schema{
		Kind: "track",
		Always: map[string]schema.Type{
			"id":        schema.ScalarType(),
			"title":     schema.ScalarType(),
			"position":  schema.ScalarType(),
			"number":    schema.ScalarType(),
			"length":    schema.ScalarType(),
			"recording": schema.EntityType("recording"),
		},
	})
	mustRegister(r, &schema.Schema{
		Kind: "disc",
		Always: map[string]schema.Type{
			"id":           schema.ScalarType(),
			"sectors":      schema.ScalarType(),
			"offset-count": schema.ScalarType(),
			"offsets":      schema.ListOf(schema.ScalarType()),
		},
	})
}

func mustRegister(r *schema.Registry, s *schema.Schema) {
	if err := r.Register(s); err != nil {
		panic("entities: " + err.Error())
	}
}
