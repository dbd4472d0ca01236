package cache

// SolveKeyOpts are the solve parameters that change the outcome and so
// must participate in the cache key.
type SolveKeyOpts struct {
	SwapRoles bool
}

// Keyer derives cache keys from content hashes. Implementations must be
// deterministic: the same inputs always yield the same key.
type Keyer interface {
	// SolveKey keys a solved matching by the canonical market hash, the
	// mechanism name, and the solve options.
	SolveKey(marketHash, mechanism string, opts SolveKeyOpts) string

	// ArtifactKey keys a rendered artifact (dot, svg, png) by the hash of
	// the result it was rendered from and the output format.
	ArtifactKey(resultHash, format string) string
}

// DefaultKeyer hashes key components with SHA-256 under a stage prefix.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// SolveKey generates a key for solve-result caching.
func (k *DefaultKeyer) SolveKey(marketHash, mechanism string, opts SolveKeyOpts) string {
	return hashKey("solve", marketHash, mechanism, opts)
}

// ArtifactKey generates a key for rendered-artifact caching.
func (k *DefaultKeyer) ArtifactKey(resultHash, format string) string {
	return hashKey("artifact", resultHash, format)
}

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation, e.g.
// when several server deployments share one Redis instance.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every key.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// SolveKey generates a prefixed solve key.
func (k *ScopedKeyer) SolveKey(marketHash, mechanism string, opts SolveKeyOpts) string {
	return k.prefix + k.inner.SolveKey(marketHash, mechanism, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(resultHash, format string) string {
	return k.prefix + k.inner.ArtifactKey(resultHash, format)
}
