package cache

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/johnquangdev/meeting-capture/internal/domain/gateways"
)

// CachedSuggestionSource memoizes suggestions per normalized purpose
type CachedSuggestionSource struct {
	source gateways.SuggestionSource
	cache  *gocache.Cache
}

var _ gateways.SuggestionSource = (*CachedSuggestionSource)(nil)

// NewCachedSuggestionSource wraps source with a read-through cache
func NewCachedSuggestionSource(source gateways.SuggestionSource, ttl time.Duration) *CachedSuggestionSource {
	return &CachedSuggestionSource{
		source: source,
		cache:  gocache.New(ttl, 2*ttl),
	}
}

// Suggest returns a cached answer when available. Failures are not cached.
func (c *CachedSuggestionSource) Suggest(ctx context.Context, purpose string) (*gateways.Suggestions, error) {
	key := strings.ToLower(strings.Join(strings.Fields(purpose), " "))
	if v, ok := c.cache.Get(key); ok {
		return v.(*gateways.Suggestions), nil
	}

	s, err := c.source.Suggest(ctx, purpose)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, s)
	return s, nil
}
