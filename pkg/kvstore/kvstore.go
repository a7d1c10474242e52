package kvstore

import (
	"context"

	"github.com/bookverse/bookverse/pkg/config"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// Store is a flat string-to-string key-value store. Values are written whole;
// there are no partial updates.
type Store interface {
	// Get returns the value at key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Open returns the store selected by the storage_driver setting.
func Open(cfg *config.Config, db *bun.DB) (Store, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverSQLite, "":
		return NewSQLStore(db), nil
	case config.StorageDriverBolt:
		return NewBoltStore(cfg.BoltFilePath)
	}
	return nil, errors.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
