package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Matching MatchingConfig `yaml:"matching"`
	Closet   ClosetConfig   `yaml:"closet"`
	Scans    ScansConfig    `yaml:"scans"`
	Images   ImagesConfig   `yaml:"images"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// WeightsConfig distributes scoring signal between the pair comparisons.
type WeightsConfig struct {
	Category  float64 `yaml:"category"`
	Color     float64 `yaml:"color"`
	Style     float64 `yaml:"style"`
	Formality float64 `yaml:"formality"`
}

// MatchingConfig holds the tunable scoring constants.
type MatchingConfig struct {
	HighThreshold   float64       `yaml:"highThreshold"`
	MediumThreshold float64       `yaml:"mediumThreshold"`
	MaxSuggestions  int           `yaml:"maxSuggestions"`
	Weights         WeightsConfig `yaml:"weights"`
}

// ClosetConfig controls wardrobe persistence.
type ClosetConfig struct {
	Postgres            PostgresConfig `yaml:"postgres"`
	SimilarityThreshold float64        `yaml:"similarityThreshold"`
}

// ScansConfig controls the saved-scan store.
type ScansConfig struct {
	Redis         RedisConfig   `yaml:"redis"`
	SavedScanTTL  time.Duration `yaml:"savedScanTtl"`
	TrendingCount int           `yaml:"trendingCount"`
}

// RedisConfig contains connection information for the verdict store.
type RedisConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// ImagesConfig contains the S3-compatible photo storage settings.
type ImagesConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = strings.Split(v, ",")
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("MATCHING_HIGH_THRESHOLD"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Matching.HighThreshold = parsed
		}
	}
	if v := os.Getenv("MATCHING_MEDIUM_THRESHOLD"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Matching.MediumThreshold = parsed
		}
	}
	if v := os.Getenv("MATCHING_MAX_SUGGESTIONS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Matching.MaxSuggestions = parsed
		}
	}
	if v := os.Getenv("CLOSET_POSTGRES_DSN"); v != "" {
		cfg.Closet.Postgres.DSN = v
	}
	if v := os.Getenv("CLOSET_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Closet.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("CLOSET_POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Closet.Postgres.MinConns = int32(parsed)
		}
	}
	if v := os.Getenv("CLOSET_SIMILARITY_THRESHOLD"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Closet.SimilarityThreshold = parsed
		}
	}
	if v := os.Getenv("SCANS_REDIS_ENABLED"); v != "" {
		cfg.Scans.Redis.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("SCANS_REDIS_ADDR"); v != "" {
		cfg.Scans.Redis.Addr = v
	}
	if v := os.Getenv("SCANS_SAVED_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Scans.SavedScanTTL = parsed
		}
	}
	if v := os.Getenv("SCANS_TRENDING_COUNT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Scans.TrendingCount = parsed
		}
	}
	if v := os.Getenv("IMAGES_ENABLED"); v != "" {
		cfg.Images.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("IMAGES_ENDPOINT"); v != "" {
		cfg.Images.Endpoint = v
	}
	if v := os.Getenv("IMAGES_ACCESS_KEY"); v != "" {
		cfg.Images.AccessKey = v
	}
	if v := os.Getenv("IMAGES_SECRET_KEY"); v != "" {
		cfg.Images.SecretKey = v
	}
	if v := os.Getenv("IMAGES_BUCKET"); v != "" {
		cfg.Images.Bucket = v
	}
	if v := os.Getenv("IMAGES_REGION"); v != "" {
		cfg.Images.Region = v
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
		},
		Matching: MatchingConfig{
			HighThreshold:   0.75,
			MediumThreshold: 0.45,
			MaxSuggestions:  3,
			Weights: WeightsConfig{
				Category:  0.35,
				Color:     0.30,
				Style:     0.20,
				Formality: 0.15,
			},
		},
		Closet: ClosetConfig{
			SimilarityThreshold: 0.25,
			Postgres: PostgresConfig{
				MaxConns: 4,
				MinConns: 0,
			},
		},
		Scans: ScansConfig{
			SavedScanTTL:  0,
			TrendingCount: 10,
		},
		Images: ImagesConfig{
			Enabled: false,
			Bucket:  "stylematch-closet",
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.Matching.HighThreshold <= 0 || c.Matching.HighThreshold > 1 {
		return errors.New("matching.highThreshold must be in (0, 1]")
	}
	if c.Matching.MediumThreshold <= 0 || c.Matching.MediumThreshold >= c.Matching.HighThreshold {
		return errors.New("matching.mediumThreshold must be positive and below matching.highThreshold")
	}
	if c.Matching.MaxSuggestions <= 0 {
		return errors.New("matching.maxSuggestions must be positive")
	}
	if c.Closet.SimilarityThreshold < 0 {
		return errors.New("closet.similarityThreshold must be non-negative")
	}
	if c.Scans.SavedScanTTL < 0 {
		return errors.New("scans.savedScanTtl cannot be negative")
	}
	if c.Scans.TrendingCount < 0 {
		return errors.New("scans.trendingCount cannot be negative")
	}
	if c.Scans.Redis.Enabled && strings.TrimSpace(c.Scans.Redis.Addr) == "" {
		return errors.New("scans.redis.addr cannot be empty when the redis store is enabled")
	}
	if c.Images.Enabled {
		if strings.TrimSpace(c.Images.Endpoint) == "" {
			return errors.New("images.endpoint cannot be empty when photo storage is enabled")
		}
		if strings.TrimSpace(c.Images.Bucket) == "" {
			return errors.New("images.bucket cannot be empty when photo storage is enabled")
		}
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	return nil
}
