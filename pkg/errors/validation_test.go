package errors

import (
	"strings"
	"testing"
)

func TestValidateKeywords(t *testing.T) {
	limits := KeywordLimits{MaxKeywords: 3, MaxLength: 8, MaxTotal: 12}

	tests := []struct {
		name    string
		input   []string
		limits  KeywordLimits
		wantErr bool
	}{
		{"valid", []string{"arts", "star"}, limits, false},
		{"empty set", nil, limits, false},
		{"empty keyword", []string{""}, limits, false},
		{"unicode", []string{"naïve"}, limits, false},
		{"no limits", []string{strings.Repeat("a", 5000)}, KeywordLimits{}, false},

		{"too many", []string{"a", "b", "c", "d"}, limits, true},
		{"too long", []string{"abcdefghi"}, limits, true},
		{"too large", []string{"abcdefg", "abcdefg"}, limits, true},
		{"invalid utf8", []string{"a\xffb"}, limits, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKeywords(tt.input, tt.limits)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateKeywords(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidKeywords) {
				t.Errorf("ValidateKeywords(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "out.dot", false},
		{"valid nested", "build/graphs/trie.svg", false},
		{"valid absolute", "/tmp/trie.pdf", false},
		{"valid parent", "../trie.png", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 5000), true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateRelativePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "trie.svg", false},
		{"valid nested", "graphs/v1.2/trie.dot", false},

		{"absolute path", "/etc/passwd", true},
		{"path traversal", "../../../etc/passwd", true},
		{"path traversal middle", "foo/../bar", true},
		{"backslash", "foo\\bar", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRelativePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRelativePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidKeywords,
		ErrCodeInvalidFormat,
		ErrCodeInvalidOrder,
		ErrCodeInvalidPath,
		ErrCodeInvalidConfig,
		ErrCodeNotFound,
		ErrCodeFileNotFound,
		ErrCodeToolNotFound,
		ErrCodeConversion,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
