package settings

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/bookverse/bookverse/pkg/kvstore"
	"github.com/bookverse/bookverse/pkg/models"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
)

const (
	CapabilityKey = "settings:tmdb_enabled"
	APIKeyKey     = "settings:tmdb_api_key"
)

type APIKeySource string

const (
	APIKeySourceNone        APIKeySource = "none"
	APIKeySourceUser        APIKeySource = "user"
	APIKeySourceEnvironment APIKeySource = "environment"
)

// Settings is an immutable snapshot of the gate, passed explicitly to
// whatever needs it.
type Settings struct {
	CapabilityEnabled bool
	APIKey            string
	APIKeySource      APIKeySource
}

// Allows reports whether searches for mt may reach a provider. Books and anime
// are always allowed; movies and dramas need the TMDb capability.
func (s Settings) Allows(mt models.MediaType) bool {
	switch mt {
	case models.MediaTypeBook, models.MediaTypeAnime:
		return true
	case models.MediaTypeMovie, models.MediaTypeKDrama:
		return s.CapabilityEnabled
	}
	return false
}

// MaskedAPIKey keeps the last four characters of the key.
func (s Settings) MaskedAPIKey() string {
	if s.APIKey == "" {
		return ""
	}
	if len(s.APIKey) <= 4 {
		return strings.Repeat("*", len(s.APIKey))
	}
	return strings.Repeat("*", 8) + s.APIKey[len(s.APIKey)-4:]
}

// Defaults come from the process configuration and apply until the user
// saves their own values.
type Defaults struct {
	APIKey            string
	CapabilityEnabled bool
}

type Gate struct {
	kv       kvstore.Store
	defaults Defaults

	mu      sync.RWMutex
	enabled bool
	userKey string
}

func NewGate(kv kvstore.Store, defaults Defaults) *Gate {
	return &Gate{
		kv:       kv,
		defaults: defaults,
		enabled:  defaults.CapabilityEnabled,
	}
}

// Load reads the stored settings. Values that are missing or unreadable fall
// back to the defaults; only a failing store is returned as an error.
func (g *Gate) Load(ctx context.Context) error {
	log := logger.FromContext(ctx)

	enabled := g.defaults.CapabilityEnabled
	raw, ok, err := g.kv.Get(ctx, CapabilityKey)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", CapabilityKey)
	}
	if ok {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			log.Warn("ignoring invalid stored capability flag", logger.Data{"key": CapabilityKey, "value": raw})
		} else {
			enabled = parsed
		}
	}

	userKey, _, err := g.kv.Get(ctx, APIKeyKey)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", APIKeyKey)
	}

	g.mu.Lock()
	g.enabled = enabled
	g.userKey = strings.TrimSpace(userKey)
	g.mu.Unlock()

	current := g.Current()
	log.Info("settings loaded", logger.Data{
		"tmdb_enabled":        current.CapabilityEnabled,
		"tmdb_api_key_source": current.APIKeySource,
	})
	return nil
}

func (g *Gate) Current() Settings {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.snapshot()
}

// snapshot must be called with mu held.
func (g *Gate) snapshot() Settings {
	s := Settings{CapabilityEnabled: g.enabled, APIKeySource: APIKeySourceNone}
	switch {
	case g.userKey != "":
		s.APIKey = g.userKey
		s.APIKeySource = APIKeySourceUser
	case g.defaults.APIKey != "":
		s.APIKey = g.defaults.APIKey
		s.APIKeySource = APIKeySourceEnvironment
	}
	return s
}

// SetCapability stores the flag before returning. The in-memory value only
// changes once the write succeeds.
func (g *Gate) SetCapability(ctx context.Context, enabled bool) (Settings, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.kv.Set(ctx, CapabilityKey, strconv.FormatBool(enabled)); err != nil {
		return g.snapshot(), errors.Wrapf(err, "failed to write %s", CapabilityKey)
	}
	g.enabled = enabled
	return g.snapshot(), nil
}

// SetAPIKey stores the user's key. The key isn't checked here; a bad key only
// shows up as a credentials error from the provider. An empty key clears the
// user's key, falling back to the configured one.
func (g *Gate) SetAPIKey(ctx context.Context, key string) (Settings, error) {
	key = strings.TrimSpace(key)

	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.kv.Set(ctx, APIKeyKey, key); err != nil {
		return g.snapshot(), errors.Wrapf(err, "failed to write %s", APIKeyKey)
	}
	g.userKey = key
	return g.snapshot(), nil
}
