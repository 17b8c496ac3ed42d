package directory

import (
	"context"
	"sort"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/hostelmate/marketplace-api/internal/model"
)

// CachedProvider memoizes directory queries. The sample dataset is static,
// but a real index behind the same interface is not, so entries expire.
type CachedProvider struct {
	inner Provider
	cache *gocache.Cache
}

func NewCachedProvider(inner Provider, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (p *CachedProvider) Query(ctx context.Context, criteria model.SearchCriteria) ([]model.VolunteerSummary, error) {
	key := cacheKey(criteria)
	if cached, ok := p.cache.Get(key); ok {
		return cached.([]model.VolunteerSummary), nil
	}

	result, err := p.inner.Query(ctx, criteria)
	if err != nil {
		return nil, err
	}

	p.cache.Set(key, result, gocache.DefaultExpiration)
	return result, nil
}

func cacheKey(c model.SearchCriteria) string {
	skills := append([]string(nil), c.Skills...)
	sort.Strings(skills)
	return strings.Join([]string{c.Country, c.Experience, c.Availability, strings.Join(skills, ",")}, "|")
}
