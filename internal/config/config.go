package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	sorting "github.com/davicafu/sortlab/internal/sorting/domain"
)

// Backends de almacenamiento soportados.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMongoDB  = "mongodb"
	BackendJSON     = "json"
)

// ErrUnknownBackend indica un STORAGE_BACKEND no soportado.
var ErrUnknownBackend = errors.New("config: unknown storage backend")

type Config struct {
	HTTPPort       string
	StorageBackend string
	SQLitePath     string
	JSONPath       string
	DatabaseURL    string
	MongoURI       string
	MongoDB        string
	RedisAddr      string
	CacheTTL       time.Duration
	LogLevel       string
	SeedDemoData   bool

	SortUpIcon            string
	SortDownIcon          string
	InvalidFieldRaises404 bool
	DefaultSortDir        string

	// ConfigFile es el fichero leído; vacío si solo hay defaults y entorno.
	ConfigFile string
}

func defaults(v *viper.Viper) {
	v.SetDefault("http_port", "8080")
	v.SetDefault("storage_backend", BackendSQLite)
	v.SetDefault("sqlite_path", "./sortlab.db")
	v.SetDefault("json_path", "./tasks.json")
	v.SetDefault("database_url", "")
	v.SetDefault("mongo_uri", "")
	v.SetDefault("mongo_db", "sortlab")
	v.SetDefault("redis_addr", "")
	v.SetDefault("cache_ttl", 5*time.Minute)
	v.SetDefault("log_level", "info")
	v.SetDefault("seed_demo_data", true)
	v.SetDefault("default_sort_up", sorting.DefaultSortUp)
	v.SetDefault("default_sort_down", sorting.DefaultSortDown)
	v.SetDefault("sorting_invalid_field_raises_404", false)
	v.SetDefault("sorting_default_dir", string(sorting.DirDesc))
}

// LoadConfig lee config.yaml de configPath (si existe) y aplica encima las
// variables de entorno (HTTP_PORT, STORAGE_BACKEND, ...).
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AutomaticEnv()
	defaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		HTTPPort:              v.GetString("http_port"),
		StorageBackend:        strings.ToLower(v.GetString("storage_backend")),
		SQLitePath:            v.GetString("sqlite_path"),
		JSONPath:              v.GetString("json_path"),
		DatabaseURL:           v.GetString("database_url"),
		MongoURI:              v.GetString("mongo_uri"),
		MongoDB:               v.GetString("mongo_db"),
		RedisAddr:             v.GetString("redis_addr"),
		CacheTTL:              v.GetDuration("cache_ttl"),
		LogLevel:              v.GetString("log_level"),
		SeedDemoData:          v.GetBool("seed_demo_data"),
		SortUpIcon:            v.GetString("default_sort_up"),
		SortDownIcon:          v.GetString("default_sort_down"),
		InvalidFieldRaises404: v.GetBool("sorting_invalid_field_raises_404"),
		DefaultSortDir:        strings.ToLower(v.GetString("sorting_default_dir")),
		ConfigFile:            v.ConfigFileUsed(),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StorageBackend {
	case BackendMemory, BackendSQLite, BackendJSON:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return errors.New("config: DATABASE_URL is required for the postgres backend")
		}
	case BackendMongoDB:
		if c.MongoURI == "" {
			return errors.New("config: MONGO_URI is required for the mongodb backend")
		}
	default:
		return fmt.Errorf("%w %q", ErrUnknownBackend, c.StorageBackend)
	}

	switch sorting.Direction(c.DefaultSortDir) {
	case sorting.DirAsc, sorting.DirDesc:
	default:
		return fmt.Errorf("config: SORTING_DEFAULT_DIR must be asc or desc, got %q", c.DefaultSortDir)
	}
	return nil
}

// Sorting construye la configuración inmutable de ordenación.
func (c *Config) Sorting() sorting.Config {
	return sorting.Config{
		SortUpIcon:            c.SortUpIcon,
		SortDownIcon:          c.SortDownIcon,
		InvalidFieldRaises404: c.InvalidFieldRaises404,
		DefaultDirection:      sorting.Direction(c.DefaultSortDir),
	}
}
