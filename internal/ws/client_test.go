package ws_test

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/ellipsora/brainz/internal/mbtest"
	"github.com/ellipsora/brainz/internal/ratelimit"
	"github.com/ellipsora/brainz/internal/schema"
	"github.com/ellipsora/brainz/internal/ws"
)

const testMBID = "94ed318a-fd7d-4abc-8491-a35e39f51dca"

func newClient(t *testing.T, srv *mbtest.Server) *ws.Client {
	t.Helper()
	c, err := ws.NewClient(ws.Config{
		BaseURL:   srv.BaseURL(),
		UserAgent: "brainz-test/0.1.0 ( test@example.org )",
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func TestLookup_Success(t *testing.T) {
	srv := mbtest.NewServer(t)
	srv.AddEntity("artist", testMBID, map[string]any{
		"id":   testMBID,
		"name": "Example Artist",
	})
	c := newClient(t, srv)

	doc, err := c.Lookup(context.Background(), "artist", testMBID, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc["name"] != "Example Artist" {
		t.Errorf("name = %v, want Example Artist", doc["name"])
	}

	reqs := srv.Requests()
	if len(reqs) != 1 {
		t.Fatalf("request count = %d, want 1", len(reqs))
	}
	if reqs[0].Path != "/artist/"+testMBID {
		t.Errorf("path = %q", reqs[0].Path)
	}
	if reqs[0].Accept != "application/json" {
		t.Errorf("accept = %q", reqs[0].Accept)
	}
	if !strings.HasPrefix(reqs[0].UserAgent, "brainz-test/0.1.0") {
		t.Errorf("user agent = %q", reqs[0].UserAgent)
	}
}

func TestLookup_IncludesPlusJoined(t *testing.T) {
	srv := mbtest.NewServer(t)
	srv.AddEntity("artist", testMBID, map[string]any{"id": testMBID})
	c := newClient(t, srv)

	_, err := c.Lookup(context.Background(), "artist", testMBID,
		[]schema.Include{"aliases", "tags", "artist-rels"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	q := srv.Requests()[0].RawQuery
	if !strings.Contains(q, "inc=aliases+tags+artist-rels") {
		t.Errorf("query = %q, want plus-joined inc", q)
	}
}

func TestLookup_FiltersPipeJoined(t *testing.T) {
	srv := mbtest.NewServer(t)
	srv.AddEntity("artist", testMBID, map[string]any{"id": testMBID})
	c := newClient(t, srv)

	_, err := c.Lookup(context.Background(), "artist", testMBID, nil, &ws.Filters{
		Status: []string{"official", "promotion"},
		Types:  []string{"album", "ep"},
		Limit:  25,
		Offset: 50,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	q := srv.Requests()[0].RawQuery
	for _, want := range []string{
		"status=official%7Cpromotion",
		"type=album%7Cep",
		"limit=25",
		"offset=50",
	} {
		if !strings.Contains(q, want) {
			t.Errorf("query = %q, missing %q", q, want)
		}
	}
}

func TestLookup_InvalidMBIDNoNetwork(t *testing.T) {
	srv := mbtest.NewServer(t)
	c := newClient(t, srv)

	_, err := c.Lookup(context.Background(), "artist", "not-a-uuid", nil, nil)
	if !errors.Is(err, ws.ErrInvalidMBID) {
		t.Fatalf("got %v, want ErrInvalidMBID", err)
	}
	if srv.RequestCount() != 0 {
		t.Errorf("request count = %d, want 0", srv.RequestCount())
	}
}

func TestValidateMBID(t *testing.T) {
	cases := []struct {
		id   string
		want bool
	}{
		{"94ed318a-fd7d-4abc-8491-a35e39f51dca", true},
		{"not-a-uuid", false},
		{"", false},
		{"urn:uuid:94ed318a-fd7d-4abc-8491-a35e39f51dca", false},
		{"{94ed318a-fd7d-4abc-8491-a35e39f51dca}", false},
		{"94ED318A-FD7D-4ABC-8491-A35E39F51DCA", true},
	}
	for _, tc := range cases {
		err := ws.ValidateMBID(tc.id)
		if (err == nil) != tc.want {
			t.Errorf("ValidateMBID(%q) = %v, want ok=%v", tc.id, err, tc.want)
		}
	}
}

func TestLookup_ErrorBody(t *testing.T) {
	srv := mbtest.NewServer(t)
	c := newClient(t, srv)

	_, err := c.Lookup(context.Background(), "artist", testMBID, nil, nil)
	var apiErr *ws.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("got %v, want APIError", err)
	}
	if apiErr.StatusCode != 404 {
		t.Errorf("status = %d, want 404", apiErr.StatusCode)
	}
	if apiErr.Message != "Not Found" {
		t.Errorf("message = %q, want Not Found", apiErr.Message)
	}
}

func TestLookup_ForcedServerError(t *testing.T) {
	srv := mbtest.NewServer(t)
	srv.FailWith(503, "The MusicBrainz web server is currently busy.", "")
	c := newClient(t, srv)

	_, err := c.Lookup(context.Background(), "artist", testMBID, nil, nil)
	var apiErr *ws.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("got %v, want APIError", err)
	}
	if apiErr.StatusCode != 503 {
		t.Errorf("status = %d, want 503", apiErr.StatusCode)
	}
}

func TestBrowseCollection(t *testing.T) {
	srv := mbtest.NewServer(t)
	srv.AddCollection(testMBID, "releases", map[string]any{
		"release-count": float64(1),
		"releases":      []any{map[string]any{"id": "r1", "title": "Browsed"}},
	})
	c := newClient(t, srv)

	body, err := c.BrowseCollection(context.Background(), testMBID, "releases", &ws.Filters{Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body["release-count"] != float64(1) {
		t.Errorf("release-count = %v", body["release-count"])
	}

	req := srv.Requests()[0]
	if req.Path != "/collection/"+testMBID+"/releases" {
		t.Errorf("path = %q", req.Path)
	}
	if !strings.Contains(req.RawQuery, "limit=10") {
		t.Errorf("query = %q", req.RawQuery)
	}
}

func TestLookup_QuotaHeadersPaceNextRequest(t *testing.T) {
	srv := mbtest.NewServer(t)
	srv.AddEntity("artist", testMBID, map[string]any{"id": testMBID})

	clock := time.Unix(5000, 0)
	var slept time.Duration
	gate := ratelimit.NewTestGate(0,
		func() time.Time { return clock },
		func(_ context.Context, d time.Duration) error {
			slept += d
			clock = clock.Add(d)
			return nil
		},
	)

	srv.SetHeader("X-RateLimit-Remaining", "0")
	srv.SetHeader("X-RateLimit-Reset", strconv.FormatInt(clock.Add(10*time.Second).Unix(), 10))

	c, err := ws.NewClient(ws.Config{BaseURL: srv.BaseURL(), Gate: gate})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if _, err := c.Lookup(context.Background(), "artist", testMBID, nil, nil); err != nil {
		t.Fatalf("first lookup: %v", err)
	}
	if slept != 0 {
		t.Fatalf("first lookup slept %v, want 0", slept)
	}

	if _, err := c.Lookup(context.Background(), "artist", testMBID, nil, nil); err != nil {
		t.Fatalf("second lookup: %v", err)
	}
	if slept != 10*time.Second {
		t.Errorf("second lookup slept %v, want 10s", slept)
	}
}

func TestLookup_QueueFull(t *testing.T) {
	srv := mbtest.NewServer(t)
	gate := ratelimit.NewGate(1)

	// Занимаем единственный слот, чтобы следующий вызов отклонился сразу.
	release, err := gate.Acquire(context.Background())
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer release()

	c, err := ws.NewClient(ws.Config{BaseURL: srv.BaseURL(), Gate: gate})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = c.Lookup(context.Background(), "artist", testMBID, nil, nil)
	if !errors.Is(err, ratelimit.ErrQueueFull) {
		t.Fatalf("got %v, want ErrQueueFull", err)
	}
	if srv.RequestCount() != 0 {
		t.Errorf("request count = %d, want 0", srv.RequestCount())
	}
}
