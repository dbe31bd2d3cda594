package cache

// ScopedKeyer wraps a Keyer with a prefix so callers sharing one
// backend get separate namespaces. The server uses this to keep its
// entries apart from other applications in a shared Redis keyspace.
//
// Example usage:
//
//	keyer := cache.NewScopedKeyer(nil, "provgraph:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys. A nil inner keyer
// falls back to the default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ConvertKey generates a prefixed key for conversion output caching.
func (k *ScopedKeyer) ConvertKey(inputHash string, opts ConvertKeyOpts) string {
	return k.prefix + k.inner.ConvertKey(inputHash, opts)
}

// DOTKey generates a prefixed key for DOT text caching.
func (k *ScopedKeyer) DOTKey(inputHash string, opts DOTKeyOpts) string {
	return k.prefix + k.inner.DOTKey(inputHash, opts)
}

// ArtifactKey generates a prefixed key for rendered artifact caching.
func (k *ScopedKeyer) ArtifactKey(dotHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(dotHash, opts)
}
