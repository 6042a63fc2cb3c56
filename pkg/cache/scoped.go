package cache

// ScopedKeyer namespaces the keys of another Keyer, so several
// configurations can share one cache directory or Redis database.
//
//	keyer := NewScopedKeyer(nil, "trieviz:v1:")
type ScopedKeyer struct {
	Keyer
	Prefix string
}

// NewScopedKeyer prefixes every key of inner. A nil inner means the
// default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return ScopedKeyer{Keyer: inner, Prefix: prefix}
}

func (k ScopedKeyer) GraphKey(keywordsHash string, opts GraphKeyOpts) string {
	return k.Prefix + k.Keyer.GraphKey(keywordsHash, opts)
}

func (k ScopedKeyer) ArtifactKey(graphHash, format string) string {
	return k.Prefix + k.Keyer.ArtifactKey(graphHash, format)
}
