package cache

// ScopedKeyer wraps a Keyer with a prefix so that separate deployments
// or tenants sharing a Redis or MongoDB backend get isolated namespaces.
//
// Example usage:
//
//	// Per-project keys on a shared backend
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "proj:atlas:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to all keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// HTTPKey generates a prefixed key for HTTP response caching.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

// ArtifactKey generates a prefixed key for rendered artifact caching.
func (k *ScopedKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(docHash, opts)
}

// OverviewKey generates a prefixed key for overview graph caching.
func (k *ScopedKeyer) OverviewKey(docHash string, opts OverviewKeyOpts) string {
	return k.prefix + k.inner.OverviewKey(docHash, opts)
}
