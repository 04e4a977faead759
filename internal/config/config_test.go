package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.API.BaseURL != "https://musicbrainz.org/ws/2/" {
		t.Errorf("base url = %q", cfg.API.BaseURL)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("level = %q", cfg.Logging.Level)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brainz.yaml")
	data := `
api:
  base_url: http://localhost:5000/ws/2/
  max_queue: 8
  app:
    name: tagger
    version: 2.1.0
    contact: ops@example.org
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:5000/ws/2/" {
		t.Errorf("base url = %q", cfg.API.BaseURL)
	}
	if cfg.API.MaxQueue != 8 {
		t.Errorf("max queue = %d", cfg.API.MaxQueue)
	}
	if got := cfg.API.App.UserAgent(); got != "tagger/2.1.0 ( ops@example.org )" {
		t.Errorf("user agent = %q", got)
	}
}

func TestValidate_NegativeQueue(t *testing.T) {
	cfg := Default()
	cfg.API.MaxQueue = -1

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for negative max_queue")
	}
	expected := "api.max_queue must not be negative, got -1"
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_BadLevel(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "loud"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestUserAgent_PartialTriple(t *testing.T) {
	cases := []struct {
		app  AppConfig
		want string
	}{
		{AppConfig{}, ""},
		{AppConfig{Name: "tagger"}, "tagger"},
		{AppConfig{Name: "tagger", Version: "1.0"}, "tagger/1.0"},
		{AppConfig{Name: "tagger", Contact: "a@b.c"}, "tagger ( a@b.c )"},
	}
	for _, tc := range cases {
		if got := tc.app.UserAgent(); got != tc.want {
			t.Errorf("UserAgent(%+v) = %q, want %q", tc.app, got, tc.want)
		}
	}
}
