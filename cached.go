package tmt

import "context"

// CachedProvider wraps a Provider with a translation cache keyed by source
// text hash and target language. Repeated requests for the same (text, lang)
// pair skip the backend entirely. Cache write failures are ignored.
type CachedProvider struct {
	provider Provider
	cache    TranslationCache
}

// NewCachedProvider creates a new cache-backed provider.
func NewCachedProvider(provider Provider, cache TranslationCache) *CachedProvider {
	return &CachedProvider{
		provider: provider,
		cache:    cache,
	}
}

// Translate implements Provider with cache lookaside.
func (p *CachedProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	key := CacheKey(HashText(req.Text), req.TargetLang)

	if cached, ok := p.cache.Get(key); ok {
		return cached, nil
	}

	out, err := p.provider.Translate(ctx, req)
	if err != nil {
		return "", err
	}

	_ = p.cache.Set(key, out) // Ignore cache set errors

	return out, nil
}

// Verify CachedProvider implements Provider
var _ Provider = (*CachedProvider)(nil)
