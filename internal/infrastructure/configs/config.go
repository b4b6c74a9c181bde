package configs

import (
	"fmt"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/quizmatch/server/internal/infrastructure/env"
)

type Config struct {
	HTTP        HTTPConfig        `koanf:"http"`
	RateLimiter RateLimiterConfig `koanf:"rateLimiter"`
	RoomStore   RoomStoreConfig   `koanf:"room_store"`
	QuizStore   QuizStoreConfig   `koanf:"quiz_store"`
}

type HTTPConfig struct {
	Host           string        `koanf:"host"`
	Port           uint16        `koanf:"port"`
	AllowedOrigins []string      `koanf:"allowed_origins"`
	AllowedHeaders []string      `koanf:"allowed_headers"`
	ReadTimeout    time.Duration `koanf:"read_timeout"`
	WriteTimeout   time.Duration `koanf:"write_timeout"`
	StaticDir      string        `koanf:"static_dir"`
}

type RateLimiterConfig struct {
	MaxRatePerSecond int           `koanf:"maxRatePerSecond"`
	MaxBurst         int           `koanf:"maxBurst"`
	CacheTTL         time.Duration `koanf:"cacheTTL"`
	SourceHeaderKey  string        `koanf:"sourceHeaderKey"`
}

type RoomStoreConfig struct {
	Expiry         time.Duration `koanf:"expiry"`
	SweepInterval  time.Duration `koanf:"sweep_interval"`
	DefaultPlayers int           `koanf:"default_players"`
	MaxPlayers     int           `koanf:"max_players"`
}

type QuizStoreConfig struct {
	StorageDir string `koanf:"storage_dir"`
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Load from YAML file if it exists
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			// Only return error if file was explicitly provided but failed to load
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	// Apply defaults and environment variable overrides
	applyDefaults(k)
	applyEnvOverrides(k)

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(k *koanf.Koanf) {
	// HTTP defaults
	setDefault(k, "http.host", "0.0.0.0")
	setDefault(k, "http.port", 4230)
	setDefault(k, "http.read_timeout", 10*time.Second)
	setDefault(k, "http.write_timeout", 30*time.Second)
	setDefault(k, "http.allowed_origins", []string{"*"})
	setDefault(k, "http.allowed_headers", []string{"Content-Type", "Authorization"})
	setDefault(k, "http.static_dir", "./static")

	// Rate limiter defaults
	setDefault(k, "rateLimiter.maxRatePerSecond", 10)
	setDefault(k, "rateLimiter.maxBurst", 20)
	setDefault(k, "rateLimiter.cacheTTL", 5*time.Minute)
	setDefault(k, "rateLimiter.sourceHeaderKey", "X-Forwarded-For")

	// Room store defaults
	setDefault(k, "room_store.expiry", 30*time.Minute)
	setDefault(k, "room_store.sweep_interval", 1*time.Minute)
	setDefault(k, "room_store.default_players", 10)
	setDefault(k, "room_store.max_players", 10)

	// Quiz store defaults
	setDefault(k, "quiz_store.storage_dir", "./data/quizzes")
}

func applyEnvOverrides(k *koanf.Koanf) {
	// HTTP config from env
	if host := env.GetString("HTTP_HOST", ""); host != "" {
		k.Set("http.host", host)
	}
	if port := env.GetInt("HTTP_PORT", 0); port > 0 {
		k.Set("http.port", port)
	}
	if readTimeout := env.GetInt("HTTP_READ_TIMEOUT_SECONDS", 0); readTimeout > 0 {
		k.Set("http.read_timeout", time.Duration(readTimeout)*time.Second)
	}
	if writeTimeout := env.GetInt("HTTP_WRITE_TIMEOUT_SECONDS", 0); writeTimeout > 0 {
		k.Set("http.write_timeout", time.Duration(writeTimeout)*time.Second)
	}
	if staticDir := env.GetString("HTTP_STATIC_DIR", ""); staticDir != "" {
		k.Set("http.static_dir", staticDir)
	}

	// Rate limiter config from env
	if maxRate := env.GetInt("RATE_LIMIT_MAX_RATE_PER_SECOND", 0); maxRate > 0 {
		k.Set("rateLimiter.maxRatePerSecond", maxRate)
	}
	if maxBurst := env.GetInt("RATE_LIMIT_MAX_BURST", 0); maxBurst > 0 {
		k.Set("rateLimiter.maxBurst", maxBurst)
	}
	if cacheTTL := env.GetInt("RATE_LIMIT_CACHE_TTL_MINUTES", 0); cacheTTL > 0 {
		k.Set("rateLimiter.cacheTTL", time.Duration(cacheTTL)*time.Minute)
	}
	if sourceKey := env.GetString("RATE_LIMIT_SOURCE_HEADER_KEY", ""); sourceKey != "" {
		k.Set("rateLimiter.sourceHeaderKey", sourceKey)
	}

	// Room store config from env
	if expiry := env.GetInt("ROOM_EXPIRY_MINUTES", 0); expiry > 0 {
		k.Set("room_store.expiry", time.Duration(expiry)*time.Minute)
	}
	if sweep := env.GetInt("ROOM_SWEEP_INTERVAL_SECONDS", 0); sweep > 0 {
		k.Set("room_store.sweep_interval", time.Duration(sweep)*time.Second)
	}
	if defaultPlayers := env.GetInt("ROOM_DEFAULT_PLAYERS", 0); defaultPlayers > 0 {
		k.Set("room_store.default_players", defaultPlayers)
	}
	if maxPlayers := env.GetInt("MAX_PLAYERS_PER_ROOM", 0); maxPlayers > 0 {
		k.Set("room_store.max_players", maxPlayers)
	}

	// Quiz store config from env
	if storageDir := env.GetString("QUIZ_STORAGE_DIR", ""); storageDir != "" {
		k.Set("quiz_store.storage_dir", storageDir)
	}
}

// setDefault only sets the value if the key doesn't already exist
func setDefault(k *koanf.Koanf, key string, value interface{}) {
	if !k.Exists(key) {
		k.Set(key, value)
	}
}
