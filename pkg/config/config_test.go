package config

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	errs "github.com/matzehuels/trieviz/pkg/errors"
)

func TestDecode(t *testing.T) {
	input := `
keywords = ["arts", "star"]
formats = ["dot", "svg"]
order = "preorder"
mark_keywords = true
normalize = "nfc"

[cache]
redis_addr = "localhost:6379"
ttl = "24h"

[serve]
addr = ":9000"
read_timeout = "5s"
`
	cfg, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if !slices.Equal(cfg.Keywords, []string{"arts", "star"}) {
		t.Errorf("Keywords = %q", cfg.Keywords)
	}
	if cfg.Order != "preorder" || !cfg.MarkKeywords || cfg.Normalize != "nfc" {
		t.Errorf("build options = %+v", cfg)
	}
	if cfg.Cache.RedisAddr != "localhost:6379" || cfg.Cache.TTL.Duration != 24*time.Hour {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Serve.Addr != ":9000" || cfg.Serve.ReadTimeout.Duration != 5*time.Second {
		t.Errorf("Serve = %+v", cfg.Serve)
	}
	// Defaults survive for unset fields.
	if cfg.Serve.WriteTimeout.Duration != 60*time.Second {
		t.Errorf("WriteTimeout default lost: %v", cfg.Serve.WriteTimeout)
	}
	if cfg.Cache.Prefix != "trieviz:" {
		t.Errorf("Prefix default lost: %q", cfg.Cache.Prefix)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"syntax", `order = `},
		{"unknown key", `colour = "red"`},
		{"bad order", `order = "bfs"`},
		{"bad format", `formats = ["gif"]`},
		{"bad normalize", `normalize = "upper"`},
		{"bad duration", "[serve]\nread_timeout = \"soon\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(tt.input)); err == nil {
				t.Error("Decode() should fail")
			}
		})
	}
}

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	p, err := Path()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/xdg", "trieviz", "config.toml"); p != want {
		t.Errorf("Path() = %q, want %q", p, want)
	}
}

func TestLoadDefaultMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Serve.Addr != Default().Serve.Addr {
		t.Error("missing default file should yield defaults")
	}
}

func TestLoadExplicitMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadResolvesKeywordsFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "words.txt"), []byte("arts\nstar\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(`keywords_file = "words.txt"`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.KeywordsFile != filepath.Join(dir, "words.txt") {
		t.Errorf("KeywordsFile = %q", cfg.KeywordsFile)
	}
	kws, err := cfg.LoadKeywords()
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(kws, []string{"arts", "star"}) {
		t.Errorf("LoadKeywords() = %q", kws)
	}
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`order = "sideways"`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errs.Is(err, errs.ErrCodeInvalidConfig) {
		t.Errorf("Load() error = %v, want INVALID_CONFIG", err)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Order = "preorder"
	cfg.Cache.TTL = Duration{time.Hour}

	var buf bytes.Buffer
	if err := cfg.Encode(&buf); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error: %v\n%s", err, buf.String())
	}
	if got.Order != "preorder" || got.Cache.TTL.Duration != time.Hour || got.Serve.Addr != cfg.Serve.Addr {
		t.Errorf("round trip = %+v", got)
	}
}
