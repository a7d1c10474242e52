package config

import (
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/iancoleman/strcase"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	configFileENV     = "CONFIG_FILE"
	defaultConfigFile = "/config/bookverse.yaml"

	StorageDriverSQLite = "sqlite"
	StorageDriverBolt   = "bolt"
)

type Config struct {
	DatabaseConnectRetryCount int           `koanf:"database_connect_retry_count" default:"5" validate:"min=1"`
	DatabaseConnectRetryDelay time.Duration `koanf:"database_connect_retry_delay" default:"2s"`
	DatabaseBusyTimeout       time.Duration `koanf:"database_busy_timeout" default:"5s"`
	DatabaseDebug             bool          `koanf:"database_debug"`
	DatabaseFilePath          string        `koanf:"database_file_path" validate:"required"`

	StorageDriver string `koanf:"storage_driver" default:"sqlite" validate:"oneof=sqlite bolt"`
	BoltFilePath  string `koanf:"bolt_file_path" validate:"required_if=StorageDriver bolt"`

	ServerHost string `koanf:"server_host" default:"0.0.0.0"`
	ServerPort int    `koanf:"server_port" default:"3690" validate:"min=0,max=65535"`

	// TMDBAPIKey is the credential used when the user hasn't saved one of
	// their own in settings.
	TMDBAPIKey  string `koanf:"tmdb_api_key"`
	TMDBEnabled bool   `koanf:"tmdb_enabled"`

	OpenLibraryBaseURL string `koanf:"open_library_base_url" default:"https://openlibrary.org" validate:"url"`
	TMDBBaseURL        string `koanf:"tmdb_base_url" default:"https://api.themoviedb.org/3" validate:"url"`
	TMDBImageBaseURL   string `koanf:"tmdb_image_base_url" default:"https://image.tmdb.org/t/p" validate:"url"`
	JikanBaseURL       string `koanf:"jikan_base_url" default:"https://api.jikan.moe/v4" validate:"url"`

	JikanRequestsPerSecond   float64       `koanf:"jikan_requests_per_second" default:"3" validate:"gt=0"`
	SearchLimit              int           `koanf:"search_limit" default:"10" validate:"min=1,max=25"`
	SearchDebounce           time.Duration `koanf:"search_debounce" default:"300ms"`
	SearchCacheTTL           time.Duration `koanf:"search_cache_ttl" default:"5m"`
	PreferredOriginCountries []string      `koanf:"preferred_origin_countries" default:"[\"KR\"]"`
}

// New loads the configuration from defaults, the YAML file named by
// CONFIG_FILE (if it exists) and the environment, in increasing order of
// precedence.
func New() (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, errors.WithStack(err)
	}

	k := koanf.New(".")

	path := os.Getenv(configFileENV)
	if path == "" {
		path = defaultConfigFile
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrapf(err, "failed to load config file %s", path)
	}

	known := knownKeys()
	err := k.Load(env.ProviderWithValue("", ".", func(key, value string) (string, interface{}) {
		name := strings.ToLower(key)
		if !known[name] || value == "" {
			return "", nil
		}
		return name, value
	}), nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.WithStack(err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewForTest returns a configuration backed by an in-memory database that
// never reaches a real provider.
func NewForTest() *Config {
	cfg := &Config{}
	_ = defaults.Set(cfg)
	cfg.DatabaseFilePath = ":memory:"
	cfg.ServerHost = "127.0.0.1"
	cfg.SearchDebounce = 0
	return cfg
}

func validate(cfg *Config) error {
	v := validator.New()
	err := v.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.WithStack(err)
	}

	missing := []string{}
	for _, fe := range verrs {
		key := keyFor(fe.StructField())
		switch fe.Tag() {
		case "required", "required_if":
			missing = append(missing, fmt.Sprintf("%s (%s)", strings.ToUpper(key), key))
		default:
			return errors.Errorf("invalid config value for %s: failed %q validation", key, fe.Tag())
		}
	}
	return errors.Errorf("missing required config: %s", strings.Join(missing, ", "))
}

func knownKeys() map[string]bool {
	keys := map[string]bool{}
	t := reflect.TypeOf(Config{})
	for i := 0; i < t.NumField(); i++ {
		if tag := t.Field(i).Tag.Get("koanf"); tag != "" {
			keys[tag] = true
		}
	}
	return keys
}

// keyFor returns the config key of a Config field, which is also the
// lowercased name of its environment variable.
func keyFor(field string) string {
	if f, ok := reflect.TypeOf(Config{}).FieldByName(field); ok {
		if tag := f.Tag.Get("koanf"); tag != "" {
			return tag
		}
	}
	return toSnakeCase(field)
}

func toSnakeCase(s string) string {
	return strcase.ToSnake(s)
}
