// Package brainz is a client for the MusicBrainz web service. Lookups
// name an entity kind, an MBID, and a set of include parameters; the
// include set decides which optional fields the returned document
// carries. The schema catalog behind the client describes exactly which
// includes affect which fields, so callers can enumerate and predict
// response shapes without guessing.
package brainz

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ellipsora/brainz/internal/entities"
	"github.com/ellipsora/brainz/internal/metrics"
	"github.com/ellipsora/brainz/internal/ratelimit"
	"github.com/ellipsora/brainz/internal/schema"
	"github.com/ellipsora/brainz/internal/ws"
)

// Include is one include parameter token, e.g. "aliases" or
// "artist-rels".
type Include string

// Client is the brainz SDK entry point. Safe for concurrent use; all
// lookups share one rate limit gate.
type Client struct {
	ws     *ws.Client
	reg    *schema.Registry
	logger *zap.Logger
}

// New creates a Client. With no options it talks to the live service,
// unauthenticated, with an unbounded rate limit queue.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var userAgent string
	if cfg.appName != "" {
		userAgent = cfg.appName
		if cfg.appVersion != "" {
			userAgent += "/" + cfg.appVersion
		}
		if cfg.appContact != "" {
			userAgent += " ( " + cfg.appContact + " )"
		}
	}

	wsc, err := ws.NewClient(ws.Config{
		BaseURL:    cfg.baseURL,
		UserAgent:  userAgent,
		HTTPClient: cfg.httpClient,
		Gate:       ratelimit.NewGate(cfg.maxQueue),
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("brainz: %w", err)
	}

	if cfg.metricsReg != nil {
		metrics.Register(cfg.metricsReg)
	}

	return &Client{ws: wsc, reg: entities.Catalog(), logger: logger}, nil
}

// Kinds returns the entity kinds the service can look up.
func Kinds() []string {
	return entities.Kinds()
}

// Lookup fetches one entity by MBID with the given includes. The
// returned document carries exactly the fields the include set entitles
// it to; the server performs that shaping, the schema catalog describes
// it.
func (c *Client) Lookup(ctx context.Context, kind, mbid string, includes ...Include) (map[string]any, error) {
	return c.Entity(kind).ID(mbid).Include(includes...).Do(ctx)
}

// BrowseCollection fetches the contents of a collection. contentKind
// names what the collection holds ("release", "artist", ...); limit and
// offset page through it, zero means server defaults.
func (c *Client) BrowseCollection(ctx context.Context, mbid, contentKind string, limit, offset int) (map[string]any, error) {
	plural, ok := entities.Plural(contentKind)
	if !ok {
		return nil, fmt.Errorf("brainz: %w: cannot browse a collection of %q", schema.ErrUnknownKind, contentKind)
	}
	return c.ws.BrowseCollection(ctx, mbid, plural, &ws.Filters{Limit: limit, Offset: offset})
}

// CollectIncludes returns every include parameter that can affect a
// lookup of the given kind, directly or through nested entities.
func (c *Client) CollectIncludes(kind string) ([]Include, error) {
	incs, err := c.reg.CollectIncludes(kind)
	if err != nil {
		return nil, fmt.Errorf("brainz: %w", err)
	}
	return fromSchemaIncludes(incs), nil
}

// Project computes the document shape a lookup of kind with the given
// includes produces: always-fields plus entitled sub-query fields, with
// nested entities projected recursively. Useful for validating or
// re-shaping documents client-side; Lookup itself trusts the server's
// shaping and does not project.
func (c *Client) Project(kind string, doc map[string]any, includes ...Include) (map[string]any, error) {
	out, err := c.reg.Project(kind, doc, toSchemaIncludeSet(includes))
	if err != nil {
		return nil, fmt.Errorf("brainz: %w", err)
	}
	return out, nil
}

func toSchemaIncludes(includes []Include) []schema.Include {
	out := make([]schema.Include, len(includes))
	for i, inc := range includes {
		out[i] = schema.Include(inc)
	}
	return out
}

func toSchemaIncludeSet(includes []Include) schema.IncludeSet {
	return schema.NewIncludeSet(toSchemaIncludes(includes)...)
}

func fromSchemaIncludes(includes []schema.Include) []Include {
	out := make([]Include, len(includes))
	for i, inc := range includes {
		out[i] = Include(inc)
	}
	return out
}
