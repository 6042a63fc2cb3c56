package cache

// GraphKeyOpts holds the options that change a built graph.
type GraphKeyOpts struct {
	Order        string `json:"order"`
	MarkKeywords bool   `json:"mark_keywords"`
	Normalize    string `json:"normalize"`
	Classes      bool   `json:"classes,omitempty"`
	Cursor       string `json:"cursor,omitempty"`
}

// Keyer generates cache keys.
type Keyer interface {
	// GraphKey keys the DOT text built from a keyword set.
	GraphKey(keywordsHash string, opts GraphKeyOpts) string

	// ArtifactKey keys one rendered format of a DOT document.
	ArtifactKey(graphHash, format string) string
}

// DefaultKeyer generates unprefixed keys of the form kind:sha256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// GraphKey implements Keyer.
func (DefaultKeyer) GraphKey(keywordsHash string, opts GraphKeyOpts) string {
	return hashKey("graph", keywordsHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(graphHash, format string) string {
	return hashKey("artifact", graphHash, format)
}

var _ Keyer = DefaultKeyer{}
