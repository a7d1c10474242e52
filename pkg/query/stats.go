package query

import (
	"github.com/bookverse/bookverse/pkg/models"
)

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type MediaTypeStats struct {
	MediaType models.MediaType `json:"media_type"`
	Total     int              `json:"total"`
	Statuses  []StatusCount    `json:"statuses"`
}

// Stats summarizes a collection for the dashboard.
type Stats struct {
	Total         int               `json:"total"`
	Completed     int               `json:"completed"`
	Rated         int               `json:"rated"`
	AverageRating *float64          `json:"average_rating"`
	ByMediaType   []*MediaTypeStats `json:"by_media_type"`
}

// Summarize counts items per media type and per status in vocabulary order.
// Completed counts both Completed and Watched, and AverageRating is nil when
// nothing is rated.
func Summarize(items []*models.LibraryItem) Stats {
	stats := Stats{ByMediaType: []*MediaTypeStats{}}
	byType := map[models.MediaType]*MediaTypeStats{}
	counts := map[models.MediaType]map[string]int{}

	for _, mt := range models.MediaTypes() {
		m := &MediaTypeStats{MediaType: mt, Statuses: []StatusCount{}}
		byType[mt] = m
		counts[mt] = map[string]int{}
		stats.ByMediaType = append(stats.ByMediaType, m)
	}

	sum := 0
	for _, item := range items {
		stats.Total++
		mt := item.MediaType()
		if m, ok := byType[mt]; ok {
			m.Total++
			counts[mt][item.Status]++
		}
		if item.Status == models.StatusCompleted || item.Status == models.StatusWatched {
			stats.Completed++
		}
		if item.Rating != nil {
			stats.Rated++
			sum += *item.Rating
		}
	}

	for _, m := range stats.ByMediaType {
		for _, s := range models.Statuses(m.MediaType) {
			m.Statuses = append(m.Statuses, StatusCount{Status: s, Count: counts[m.MediaType][s]})
		}
	}

	if stats.Rated > 0 {
		avg := float64(sum) / float64(stats.Rated)
		stats.AverageRating = &avg
	}

	return stats
}
