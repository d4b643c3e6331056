package config

import (
	"time"

	"github.com/dmitrijs2005/furnistore/internal/bridge/breaker"
	s3bridge "github.com/dmitrijs2005/furnistore/internal/bridge/s3"
	"github.com/dmitrijs2005/furnistore/internal/logging"
	"github.com/dmitrijs2005/furnistore/internal/storefront"
)

// Config holds runtime settings for the furnistore CLI.
//
// Units: NoticeDuration, Latency, TokenTTL and RedisTTL are time.Duration.
type Config struct {
	Backend       string
	DataDir       string
	Namespace     string
	EncryptionKey string

	PostgresDSN   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisTTL      time.Duration
	S3            s3bridge.Settings

	TokenSecret    string
	TokenTTL       time.Duration
	NoticeDuration time.Duration
	Latency        time.Duration

	LogLevel  string
	LogFormat string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Backend = string(storefront.BackendSQLite)
	c.DataDir = ".furnistore"
	c.Namespace = ""
	c.RedisAddr = "127.0.0.1:6379"
	c.S3 = s3bridge.Settings{Region: "us-east-1", Bucket: "furnistore"}
	c.TokenSecret = "furnistore-demo-secret"
	c.TokenTTL = 24 * time.Hour
	c.NoticeDuration = 5 * time.Second
	c.Latency = 0
	c.LogLevel = "warn"
	c.LogFormat = "text"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

// StorefrontOptions converts c for storefront.Open.
func (c *Config) StorefrontOptions(log logging.Logger) storefront.Options {
	return storefront.Options{
		Backend:     storefront.Backend(c.Backend),
		DataDir:     c.DataDir,
		PostgresDSN: c.PostgresDSN,
		Redis: storefront.RedisOptions{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
			TTL:      c.RedisTTL,
		},
		S3:             c.S3,
		Breaker:        breaker.Settings{Name: c.Backend},
		EncryptionKey:  c.EncryptionKey,
		TokenSecret:    c.TokenSecret,
		TokenTTL:       c.TokenTTL,
		NoticeDuration: c.NoticeDuration,
		Latency:        c.Latency,
		Logger:         log,
	}
}
