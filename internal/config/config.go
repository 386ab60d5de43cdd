package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Backend names for the record store
const (
	StoreBackendFile     = "file"
	StoreBackendRedis    = "redis"
	StoreBackendPostgres = "postgres"
)

// Catalog source names
const (
	CatalogSourceFile     = "file"
	CatalogSourcePostgres = "postgres"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Store    StoreConfig
	Catalog  CatalogConfig
	Location LocationConfig
	Monitor  MonitorConfig
	Sync     SyncConfig
	Log      LogConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// StoreConfig - где хранятся коллекции записей
type StoreConfig struct {
	Backend string
	Dir     string
	Prefix  string
}

// CatalogConfig - источник каталога зон и морских границ
type CatalogConfig struct {
	Source         string
	ZonesFile      string
	BoundariesFile string
}

// LocationConfig - точки по умолчанию, когда нет GPS фикса
type LocationConfig struct {
	DefaultLat    float64
	DefaultLon    float64
	TripOriginLat float64
	TripOriginLon float64
	MaxFixAge     time.Duration
}

// MonitorConfig - мониторинг морских границ
type MonitorConfig struct {
	Enabled              bool
	Interval             time.Duration
	ViolationThresholdKm float64
	RaiseAlerts          bool
}

// SyncConfig - outbox для синхронизации записей
type SyncConfig struct {
	Enabled           bool
	OutboxStream      string
	AckStream         string
	ConsumerGroup     string
	StreamReadTimeout time.Duration
	BatchSize         int
}

type LogConfig struct {
	Level string
}

// Load читает конфигурацию из .env файла и переменных окружения
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile читает конфигурацию из указанного env файла.
// Отсутствующий файл не ошибка: приложение должно стартовать офлайн с дефолтами.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("API_HOST"),
			Port: v.GetInt("API_PORT"),
			Env:  v.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Store: StoreConfig{
			Backend: strings.ToLower(v.GetString("STORE_BACKEND")),
			Dir:     v.GetString("STORE_DIR"),
			Prefix:  v.GetString("STORE_KEY_PREFIX"),
		},
		Catalog: CatalogConfig{
			Source:         strings.ToLower(v.GetString("CATALOG_SOURCE")),
			ZonesFile:      v.GetString("CATALOG_ZONES_FILE"),
			BoundariesFile: v.GetString("CATALOG_BOUNDARIES_FILE"),
		},
		Location: LocationConfig{
			DefaultLat:    v.GetFloat64("LOCATION_DEFAULT_LAT"),
			DefaultLon:    v.GetFloat64("LOCATION_DEFAULT_LON"),
			TripOriginLat: v.GetFloat64("TRIP_DEFAULT_ORIGIN_LAT"),
			TripOriginLon: v.GetFloat64("TRIP_DEFAULT_ORIGIN_LON"),
			MaxFixAge:     time.Duration(v.GetInt("LOCATION_MAX_FIX_AGE")) * time.Second,
		},
		Monitor: MonitorConfig{
			Enabled:              v.GetBool("MONITOR_ENABLED"),
			Interval:             time.Duration(v.GetInt("MONITOR_INTERVAL")) * time.Second,
			ViolationThresholdKm: v.GetFloat64("MONITOR_VIOLATION_THRESHOLD_KM"),
			RaiseAlerts:          v.GetBool("MONITOR_RAISE_ALERTS"),
		},
		Sync: SyncConfig{
			Enabled:           v.GetBool("SYNC_ENABLED"),
			OutboxStream:      v.GetString("SYNC_OUTBOX_STREAM"),
			AckStream:         v.GetString("SYNC_ACK_STREAM"),
			ConsumerGroup:     v.GetString("SYNC_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(v.GetInt("SYNC_STREAM_READ_TIMEOUT")) * time.Millisecond,
			BatchSize:         v.GetInt("SYNC_BATCH_SIZE"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
	}

	applyDefaults(cfg, v)

	return cfg, nil
}

// applyDefaults - значения по умолчанию, если не заданы
func applyDefaults(cfg *Config, v *viper.Viper) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "127.0.0.1"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}

	if cfg.Store.Backend == "" {
		cfg.Store.Backend = StoreBackendFile
	}
	if cfg.Store.Dir == "" {
		cfg.Store.Dir = "./data"
	}
	if cfg.Store.Prefix == "" {
		cfg.Store.Prefix = "cfm."
	}

	if cfg.Catalog.Source == "" {
		cfg.Catalog.Source = CatalogSourceFile
	}
	if cfg.Catalog.ZonesFile == "" {
		cfg.Catalog.ZonesFile = "./catalog/zones.jsonc"
	}
	if cfg.Catalog.BoundariesFile == "" {
		cfg.Catalog.BoundariesFile = "./catalog/boundaries.jsonc"
	}

	// Мумбаи: точка, которую использует приложение при отсутствии фикса
	if !v.IsSet("LOCATION_DEFAULT_LAT") && !v.IsSet("LOCATION_DEFAULT_LON") {
		cfg.Location.DefaultLat = 19.0760
		cfg.Location.DefaultLon = 72.8777
	}
	if !v.IsSet("TRIP_DEFAULT_ORIGIN_LAT") && !v.IsSet("TRIP_DEFAULT_ORIGIN_LON") {
		cfg.Location.TripOriginLat = 18.97
		cfg.Location.TripOriginLon = 72.82
	}
	if cfg.Location.MaxFixAge == 0 {
		cfg.Location.MaxFixAge = 10 * time.Minute
	}

	if !v.IsSet("MONITOR_ENABLED") {
		cfg.Monitor.Enabled = true
	}
	if cfg.Monitor.Interval == 0 {
		cfg.Monitor.Interval = 30 * time.Second
	}
	if cfg.Monitor.ViolationThresholdKm == 0 {
		cfg.Monitor.ViolationThresholdKm = 5
	}
	if !v.IsSet("MONITOR_RAISE_ALERTS") {
		cfg.Monitor.RaiseAlerts = true
	}

	if cfg.Sync.OutboxStream == "" {
		cfg.Sync.OutboxStream = "stream:records:sync"
	}
	if cfg.Sync.AckStream == "" {
		cfg.Sync.AckStream = "stream:records:ack"
	}
	if cfg.Sync.ConsumerGroup == "" {
		cfg.Sync.ConsumerGroup = "record-sync-workers"
	}
	if cfg.Sync.StreamReadTimeout == 0 {
		cfg.Sync.StreamReadTimeout = 1000 * time.Millisecond
	}
	if cfg.Sync.BatchSize == 0 {
		cfg.Sync.BatchSize = 20
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
