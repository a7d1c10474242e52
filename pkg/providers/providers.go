package providers

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/bookverse/bookverse/pkg/models"
)

const (
	// MinQueryLength is the shortest trimmed query, in characters, that is
	// sent to a provider.
	MinQueryLength = 3
	DefaultLimit   = 10
	// MaxLimit is the largest page Jikan serves; it bounds every provider.
	MaxLimit = 25
)

type Request struct {
	Query string
	Limit int
	// APIKey is only read by providers that need one.
	APIKey string
}

// Normalized trims the query and clamps the limit into 1..MaxLimit, with 0
// meaning DefaultLimit.
func (r Request) Normalized() Request {
	r.Query = strings.TrimSpace(r.Query)
	switch {
	case r.Limit <= 0:
		r.Limit = DefaultLimit
	case r.Limit > MaxLimit:
		r.Limit = MaxLimit
	}
	return r
}

// Searcher looks up one media type in one provider's catalog. Results are
// already normalized, deduplicated and capped at the request limit.
type Searcher interface {
	Search(ctx context.Context, req Request) ([]*models.SearchResult, error)
}

// SearcherFunc adapts a function to the Searcher interface.
type SearcherFunc func(ctx context.Context, req Request) ([]*models.SearchResult, error)

func (f SearcherFunc) Search(ctx context.Context, req Request) ([]*models.SearchResult, error) {
	return f(ctx, req)
}

// IsShortQuery reports whether q is too short to search for. Such queries
// yield no results and never reach the network.
func IsShortQuery(q string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(q)) < MinQueryLength
}

// DedupeBy keeps the first item for each key, in order. Items whose key
// function reports false are kept as-is.
func DedupeBy[T any, K comparable](items []T, key func(T) (K, bool)) []T {
	seen := make(map[K]bool, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		k, ok := key(item)
		if ok {
			if seen[k] {
				continue
			}
			seen[k] = true
		}
		out = append(out, item)
	}
	return out
}

// Cap truncates items to at most limit entries.
func Cap[T any](items []T, limit int) []T {
	if limit >= 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

// FirstNonEmpty returns the first value that isn't blank, trimmed.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// OptionalString returns nil for a blank string.
func OptionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// OptionalPositiveInt returns nil for nil or non-positive values. Providers
// use 0 and null interchangeably for "unknown".
func OptionalPositiveInt(i *int) *int {
	if i == nil || *i <= 0 {
		return nil
	}
	v := *i
	return &v
}

// YearFromDate reads the year from a date such as "1995-12-15". It returns nil
// when the date doesn't start with four digits.
func YearFromDate(date string) *int {
	if len(date) < 4 {
		return nil
	}
	year := 0
	for _, r := range date[:4] {
		if r < '0' || r > '9' {
			return nil
		}
		year = year*10 + int(r-'0')
	}
	if year == 0 {
		return nil
	}
	return &year
}
