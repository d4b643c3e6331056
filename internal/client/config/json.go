package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/furnistore/internal/flagx"
	"github.com/dmitrijs2005/furnistore/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Empty fields
// leave the current Config value alone.
type JsonConfig struct {
	Backend       string `json:"backend"`
	DataDir       string `json:"data_dir"`
	Namespace     string `json:"namespace"`
	EncryptionKey string `json:"encryption_key"`
	PostgresDSN   string `json:"postgres_dsn"`

	Redis struct {
		Addr     string         `json:"addr"`
		Password string         `json:"password"`
		DB       int            `json:"db"`
		TTL      timex.Duration `json:"ttl"`
	} `json:"redis"`

	S3 struct {
		Region    string `json:"region"`
		Endpoint  string `json:"endpoint"`
		AccessKey string `json:"access_key"`
		SecretKey string `json:"secret_key"`
		Bucket    string `json:"bucket"`
		Prefix    string `json:"prefix"`
	} `json:"s3"`

	TokenSecret    string         `json:"token_secret"`
	TokenTTL       timex.Duration `json:"token_ttl"`
	NoticeDuration timex.Duration `json:"notice_duration"`
	Latency        timex.Duration `json:"latency"`
	LogLevel       string         `json:"log_level"`
	LogFormat      string         `json:"log_format"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without either flag nothing is loaded. Read and unmarshal
// errors panic, like flag errors do.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.Backend, jc.Backend)
	setString(&cfg.DataDir, jc.DataDir)
	setString(&cfg.Namespace, jc.Namespace)
	setString(&cfg.EncryptionKey, jc.EncryptionKey)
	setString(&cfg.PostgresDSN, jc.PostgresDSN)

	setString(&cfg.RedisAddr, jc.Redis.Addr)
	setString(&cfg.RedisPassword, jc.Redis.Password)
	if jc.Redis.DB != 0 {
		cfg.RedisDB = jc.Redis.DB
	}
	if jc.Redis.TTL.Duration != 0 {
		cfg.RedisTTL = jc.Redis.TTL.Duration
	}

	setString(&cfg.S3.Region, jc.S3.Region)
	setString(&cfg.S3.Endpoint, jc.S3.Endpoint)
	setString(&cfg.S3.AccessKey, jc.S3.AccessKey)
	setString(&cfg.S3.SecretKey, jc.S3.SecretKey)
	setString(&cfg.S3.Bucket, jc.S3.Bucket)
	setString(&cfg.S3.Prefix, jc.S3.Prefix)

	setString(&cfg.TokenSecret, jc.TokenSecret)
	if jc.TokenTTL.Duration != 0 {
		cfg.TokenTTL = jc.TokenTTL.Duration
	}
	if jc.NoticeDuration.Duration != 0 {
		cfg.NoticeDuration = jc.NoticeDuration.Duration
	}
	if jc.Latency.Duration != 0 {
		cfg.Latency = jc.Latency.Duration
	}
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
