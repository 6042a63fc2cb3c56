package cli

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name string
		xdg  string
		want string
	}{
		{"xdg", "/tmp/xdg-cache", filepath.Join("/tmp/xdg-cache", appName)},
		{"home fallback", "", filepath.Join(home, ".cache", appName)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CACHE_HOME", tt.xdg)
			got, err := cacheDir()
			if err != nil {
				t.Fatalf("cacheDir() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("cacheDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in       string
		fallback []string
		want     []string
	}{
		{"", nil, []string{"dot"}},
		{"", []string{"svg"}, []string{"svg"}},
		{"svg,png", []string{"json"}, []string{"svg", "png"}},
		{" svg , ,pdf", nil, []string{"svg", "pdf"}},
	}
	for _, tt := range tests {
		got := parseFormats(tt.in, tt.fallback)
		if strings.Join(got, ",") != strings.Join(tt.want, ",") {
			t.Errorf("parseFormats(%q, %v) = %v, want %v", tt.in, tt.fallback, got, tt.want)
		}
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		formats []string
		want    map[string]string
	}{
		{"default", "", []string{"dot"}, map[string]string{"dot": "trie.dot"}},
		{"single with ext", "out/graph.gv", []string{"dot"}, map[string]string{"dot": "out/graph.gv"}},
		{"base path", "out/words", []string{"svg", "json"}, map[string]string{"svg": "out/words.svg", "json": "out/words.json"}},
		{"multi strips ext", "words.svg", []string{"svg", "pdf"}, map[string]string{"svg": "words.svg", "pdf": "words.pdf"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths(tt.output, tt.formats)
			for f, want := range tt.want {
				if got[f] != want {
					t.Errorf("outputPaths()[%s] = %q, want %q", f, got[f], want)
				}
			}
		})
	}
}
