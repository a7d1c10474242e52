package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bookverse/bookverse/pkg/config"
	"github.com/bookverse/bookverse/pkg/models"
	"github.com/bookverse/bookverse/pkg/providers"
	"github.com/bookverse/bookverse/pkg/settings"
	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
)

// Searchers maps each media type to the provider that catalogs it.
type Searchers map[models.MediaType]providers.Searcher

// Describer fetches the long description of a book by its work id.
type Describer interface {
	Description(ctx context.Context, workID string) (*string, error)
}

type Service struct {
	searchers Searchers
	describer Describer
	tracker   *Tracker
	cache     *cache.Cache
	cacheTTL  time.Duration
	limit     int
	debounce  time.Duration
}

func NewService(cfg *config.Config, searchers Searchers, describer Describer) *Service {
	ttl := cfg.SearchCacheTTL
	cleanup := ttl
	if cleanup <= 0 {
		cleanup = time.Minute
	}
	return &Service{
		searchers: searchers,
		describer: describer,
		tracker:   NewTracker(),
		cache:     cache.New(ttl, cleanup),
		cacheTTL:  ttl,
		limit:     cfg.SearchLimit,
		debounce:  cfg.SearchDebounce,
	}
}

// Search queries the provider for mt. Queries shorter than
// providers.MinQueryLength return no results without reaching the network.
func (svc *Service) Search(ctx context.Context, s settings.Settings, mt models.MediaType, q string, limit int) ([]*models.SearchResult, error) {
	q = strings.TrimSpace(q)
	if providers.IsShortQuery(q) {
		return []*models.SearchResult{}, nil
	}

	if !s.Allows(mt) {
		return nil, errors.Wrapf(ErrCapabilityDisabled, "%s", mt)
	}
	searcher, ok := svc.searchers[mt]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedMediaType, "%q", mt)
	}

	req := providers.Request{
		Query:  q,
		Limit:  limit,
		APIKey: s.APIKey,
	}
	if req.Limit <= 0 {
		req.Limit = svc.limit
	}
	req = req.Normalized()

	key := cacheKey(mt, req)
	if cached, ok := svc.cache.Get(key); ok {
		return cloneResults(cached.([]*models.SearchResult)), nil
	}

	log := logger.FromContext(ctx)
	start := time.Now()
	results, err := searcher.Search(ctx, req)
	if err != nil {
		log.Err(err).Warn("provider search failed", logger.Data{"media_type": mt, "query": q})
		return nil, errors.WithStack(err)
	}
	log.Debug("provider search", logger.Data{
		"media_type":  mt,
		"query":       q,
		"results":     len(results),
		"duration_ms": time.Since(start).Milliseconds(),
	})

	if svc.cacheTTL > 0 {
		svc.cache.SetDefault(key, cloneResults(results))
	}
	return results, nil
}

// SearchLatest runs Search on behalf of a session where only the most recent
// query matters. It waits out the debounce window first; a query superseded
// during the wait never reaches the provider, and one superseded while in
// flight is discarded. Both cases return ErrSuperseded. An empty session
// behaves like Search.
func (svc *Service) SearchLatest(ctx context.Context, session string, s settings.Settings, mt models.MediaType, q string, limit int) ([]*models.SearchResult, error) {
	if session == "" {
		return svc.Search(ctx, s, mt, q, limit)
	}

	gen := svc.tracker.Begin(session)
	if providers.IsShortQuery(q) {
		return []*models.SearchResult{}, nil
	}

	if svc.debounce > 0 {
		timer := time.NewTimer(svc.debounce)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, errors.WithStack(ctx.Err())
		case <-timer.C:
		}
	}
	if !svc.tracker.IsCurrent(session, gen) {
		return nil, errors.WithStack(ErrSuperseded)
	}

	results, err := svc.Search(ctx, s, mt, q, limit)
	if !svc.tracker.IsCurrent(session, gen) {
		return nil, errors.WithStack(ErrSuperseded)
	}
	return results, err
}

// Describe returns the long description of a book. Descriptions are optional
// extras, so a missing one is nil rather than an error.
func (svc *Service) Describe(ctx context.Context, workID string) (*string, error) {
	if svc.describer == nil {
		return nil, nil
	}

	key := "description:" + workID
	if cached, ok := svc.cache.Get(key); ok {
		return cloneString(cached.(*string)), nil
	}

	desc, err := svc.describer.Description(ctx, workID)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if svc.cacheTTL > 0 {
		svc.cache.SetDefault(key, cloneString(desc))
	}
	return desc, nil
}

func cacheKey(mt models.MediaType, req providers.Request) string {
	return fmt.Sprintf("search:%s:%d:%s", mt, req.Limit, strings.ToLower(req.Query))
}

func cloneResults(results []*models.SearchResult) []*models.SearchResult {
	out := make([]*models.SearchResult, 0, len(results))
	for _, r := range results {
		out = append(out, &models.SearchResult{
			Title:    r.Title,
			CoverURL: cloneString(r.CoverURL),
			Overview: cloneString(r.Overview),
			Details:  models.CloneDetails(r.Details),
		})
	}
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
