package library

import (
	"context"
	"sync"
	"time"

	"github.com/bookverse/bookverse/pkg/kvstore"
	"github.com/bookverse/bookverse/pkg/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/segmentio/encoding/json"
)

// ItemsKey is the kv key holding the whole collection as one JSON array.
const ItemsKey = "library:items"

type Option func(*Store)

// WithClock replaces time.Now as the source of timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the random UUID used for new items.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// Store owns the collection. It is the only writer of ItemsKey, and every
// mutation rewrites the whole collection before returning.
type Store struct {
	kv    kvstore.Store
	now   func() time.Time
	newID func() string

	mu    sync.Mutex
	items []*models.LibraryItem
}

func NewStore(kv kvstore.Store, opts ...Option) *Store {
	s := &Store{
		kv:    kv,
		now:   time.Now,
		newID: uuid.NewString,
		items: []*models.LibraryItem{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory collection with the stored one. A missing entry
// is an empty collection. A read or parse failure also leaves the collection
// empty and is returned as a *PersistenceError for the caller to surface.
func (s *Store) Load(ctx context.Context) ([]*models.LibraryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.FromContext(ctx)
	s.items = []*models.LibraryItem{}

	raw, ok, err := s.kv.Get(ctx, ItemsKey)
	if err != nil {
		perr := &PersistenceError{Op: "read", Key: ItemsKey, Err: err}
		log.Err(perr).Warn("failed to read library", logger.Data{"key": ItemsKey})
		return s.snapshot(), perr
	}
	if !ok || raw == "" {
		return s.snapshot(), nil
	}

	var stored []*models.LibraryItem
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		perr := &PersistenceError{Op: "parse", Key: ItemsKey, Err: errors.WithStack(err)}
		log.Err(perr).Warn("failed to parse library", logger.Data{"key": ItemsKey})
		return s.snapshot(), perr
	}

	seen := map[string]bool{}
	for _, item := range stored {
		if item == nil || seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		s.items = append(s.items, item)
	}

	log.Info("library loaded", logger.Data{"count": len(s.items)})
	return s.snapshot(), nil
}

// Create validates opts and adds a new item to the front of the collection.
// When the write fails, the created item is returned together with a
// *PersistenceError.
func (s *Store) Create(ctx context.Context, opts CreateItemOptions) (*models.LibraryItem, error) {
	f, err := fields{
		title:       opts.Title,
		status:      opts.Status,
		rating:      opts.Rating,
		notes:       opts.Notes,
		description: opts.Description,
		coverURL:    opts.CoverURL,
		details:     opts.Details,
	}.normalize()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	item := &models.LibraryItem{
		ID:          s.newID(),
		Title:       f.title,
		Status:      f.status,
		Rating:      f.rating,
		Notes:       f.notes,
		Description: f.description,
		CoverURL:    f.coverURL,
		CreatedAt:   now,
		UpdatedAt:   now,
		Details:     f.details,
	}

	s.items = append([]*models.LibraryItem{item}, s.items...)

	return item.Clone(), s.persist(ctx)
}

// CreateFromResult adds an accepted search result. An empty status picks the
// media type's default.
func (s *Store) CreateFromResult(ctx context.Context, result *models.SearchResult, status string) (*models.LibraryItem, error) {
	if result == nil {
		return nil, invalid("result", "is required")
	}
	return s.Create(ctx, CreateItemOptions{
		Title:       result.Title,
		Status:      status,
		Description: result.Overview,
		CoverURL:    result.CoverURL,
		Details:     result.Details,
	})
}

// Update replaces every mutable field of the item. The id, creation time and
// media type never change.
func (s *Store) Update(ctx context.Context, id string, opts UpdateItemOptions) (*models.LibraryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, ErrNotFound
	}
	existing := s.items[idx]

	f, err := fields{
		title:       opts.Title,
		status:      opts.Status,
		rating:      opts.Rating,
		notes:       opts.Notes,
		description: opts.Description,
		coverURL:    opts.CoverURL,
		details:     opts.Details,
	}.normalize()
	if err != nil {
		return nil, err
	}
	if f.details.MediaType() != existing.MediaType() {
		return nil, invalid("media_type", "can't change from %s to %s", existing.MediaType(), f.details.MediaType())
	}

	updatedAt := s.now()
	if updatedAt.Before(existing.CreatedAt) {
		updatedAt = existing.CreatedAt
	}

	item := &models.LibraryItem{
		ID:          existing.ID,
		Title:       f.title,
		Status:      f.status,
		Rating:      f.rating,
		Notes:       f.notes,
		Description: f.description,
		CoverURL:    f.coverURL,
		CreatedAt:   existing.CreatedAt,
		UpdatedAt:   updatedAt,
		Details:     f.details,
	}
	s.items[idx] = item

	return item.Clone(), s.persist(ctx)
}

// Delete removes the item. Deleting an id that isn't there is a no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}

	items := make([]*models.LibraryItem, 0, len(s.items)-1)
	items = append(items, s.items[:idx]...)
	items = append(items, s.items[idx+1:]...)
	s.items = items

	return s.persist(ctx)
}

// List returns a copy of the collection in stored order, newest first.
func (s *Store) List() []*models.LibraryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Store) Retrieve(id string) (*models.LibraryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, ErrNotFound
	}
	return s.items[idx].Clone(), nil
}

func (s *Store) indexOf(id string) int {
	for i, item := range s.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) snapshot() []*models.LibraryItem {
	out := make([]*models.LibraryItem, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, item.Clone())
	}
	return out
}

// persist must be called with mu held.
func (s *Store) persist(ctx context.Context) error {
	data, err := json.Marshal(s.items)
	if err == nil {
		err = s.kv.Set(ctx, ItemsKey, string(data))
	}
	if err != nil {
		perr := &PersistenceError{Op: "write", Key: ItemsKey, Err: errors.WithStack(err)}
		logger.FromContext(ctx).Err(perr).Warn("failed to save library", logger.Data{"key": ItemsKey})
		return perr
	}
	return nil
}
