package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// KeywordLimits bounds keyword sets accepted from untrusted callers.
// A zero field disables that check.
type KeywordLimits struct {
	MaxKeywords int // number of keywords
	MaxLength   int // bytes per keyword
	MaxTotal    int // bytes across all keywords
}

// DefaultKeywordLimits are the limits applied by the HTTP API.
var DefaultKeywordLimits = KeywordLimits{
	MaxKeywords: 10_000,
	MaxLength:   1_024,
	MaxTotal:    1 << 20,
}

// ValidateKeywords checks a keyword set against limits. The trie itself
// accepts any string; this guards outer surfaces against oversized or
// non-UTF-8 input.
func ValidateKeywords(keywords []string, limits KeywordLimits) error {
	if limits.MaxKeywords > 0 && len(keywords) > limits.MaxKeywords {
		return New(ErrCodeInvalidKeywords, "too many keywords: %d (max %d)", len(keywords), limits.MaxKeywords)
	}

	total := 0
	for i, kw := range keywords {
		if limits.MaxLength > 0 && len(kw) > limits.MaxLength {
			return New(ErrCodeInvalidKeywords, "keyword %d too long: %d bytes (max %d)", i, len(kw), limits.MaxLength)
		}
		if !utf8.ValidString(kw) {
			return New(ErrCodeInvalidKeywords, "keyword %d is not valid UTF-8", i)
		}
		total += len(kw)
	}
	if limits.MaxTotal > 0 && total > limits.MaxTotal {
		return New(ErrCodeInvalidKeywords, "keywords too large: %d bytes (max %d)", total, limits.MaxTotal)
	}
	return nil
}

// ValidatePath validates an output file path given on the command line or
// in a config file.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 bytes
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateRelativePath validates a path that must stay inside a base
// directory, such as a cache or output directory.
func ValidateRelativePath(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}
	return nil
}
