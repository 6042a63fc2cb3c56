package keywords

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Form is a Unicode normalization applied to keywords before insertion.
// Normalization changes which keywords share prefixes, so composed and
// decomposed spellings of one word end up on the same path.
type Form string

// Supported forms.
const (
	FormNone Form = "none"
	FormNFC  Form = "nfc"
	FormNFD  Form = "nfd"
	// FormFold strips combining marks: "naïve" becomes "naive".
	FormFold Form = "fold"
)

// ParseForm parses a normalization form name. The empty string means none.
func ParseForm(s string) (Form, error) {
	switch f := Form(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormNone, nil
	case FormNone, FormNFC, FormNFD, FormFold:
		return f, nil
	}
	return "", fmt.Errorf("unknown normalization %q (must be none, nfc, nfd or fold)", s)
}

// Normalize returns a new slice with every keyword in the given form.
// Order and duplicates are preserved.
func Normalize(keywords []string, form Form) ([]string, error) {
	var t func() transform.Transformer
	switch form {
	case "", FormNone:
		return append([]string(nil), keywords...), nil
	case FormNFC:
		t = func() transform.Transformer { return norm.NFC }
	case FormNFD:
		t = func() transform.Transformer { return norm.NFD }
	case FormFold:
		t = func() transform.Transformer {
			return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
		}
	default:
		return nil, fmt.Errorf("unknown normalization %q", form)
	}

	out := make([]string, len(keywords))
	for i, kw := range keywords {
		s, _, err := transform.String(t(), kw)
		if err != nil {
			return nil, fmt.Errorf("normalize %q: %w", kw, err)
		}
		out[i] = s
	}
	return out, nil
}
