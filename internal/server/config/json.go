package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/furnistore/internal/flagx"
	"github.com/dmitrijs2005/furnistore/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// It uses timex.Duration for interval fields, which allows parsing both
// string values such as "1s" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON
// configuration files. After unmarshalling, its fields are copied into the
// runtime Config struct which uses time.Duration.
type JsonConfig struct {
	EndpointAddrHTTP        string         `json:"endpoint_addr_http"`
	Backend                 string         `json:"backend"`
	DataDir                 string         `json:"data_dir"`
	DatabaseDSN             string         `json:"database_dsn"`
	RedisAddr               string         `json:"redis_addr"`
	RedisPassword           string         `json:"redis_password"`
	RedisTTL                timex.Duration `json:"redis_ttl"`
	S3RootUser              string         `json:"s3_root_user"`
	S3RootPassword          string         `json:"s3_root_password"`
	S3Bucket                string         `json:"s3_bucket"`
	S3Region                string         `json:"s3_region"`
	S3BaseEndpoint          string         `json:"s3_base_endpoint"`
	SecretKey               string         `json:"secret_key"`
	TokenValidityDuration   timex.Duration `json:"token_validity_duration"`
	EncryptionKey           string         `json:"encryption_key"`
	NoticeDuration          timex.Duration `json:"notice_duration"`
	Latency                 timex.Duration `json:"latency"`
	BreakerFailureThreshold uint32         `json:"breaker_failure_threshold"`
	BreakerOpenTimeout      timex.Duration `json:"breaker_open_timeout"`
	RequestTimeout          timex.Duration `json:"request_timeout"`
	ShutdownTimeout         timex.Duration `json:"shutdown_timeout"`
	CookieSecure            bool           `json:"cookie_secure"`
	LogLevel                string         `json:"log_level"`
	LogFormat               string         `json:"log_format"`
}

// parseJson loads configuration values from the JSON file named by -c or
// -config into config. Without either flag nothing is loaded. Every field
// of the file replaces the current value, so a file is expected to be
// complete. If the file cannot be read or contains invalid JSON, the
// function panics.
func parseJson(config *Config) {

	jsonConfigFile := flagx.ConfigPath(os.Args[1:])

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.EndpointAddrHTTP = c.EndpointAddrHTTP
	config.Backend = c.Backend
	config.DataDir = c.DataDir
	config.DatabaseDSN = c.DatabaseDSN
	config.RedisAddr = c.RedisAddr
	config.RedisPassword = c.RedisPassword
	config.RedisTTL = time.Duration(c.RedisTTL.Duration)
	config.S3RootUser = c.S3RootUser
	config.S3RootPassword = c.S3RootPassword
	config.S3Bucket = c.S3Bucket
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
	config.SecretKey = c.SecretKey
	config.TokenValidityDuration = time.Duration(c.TokenValidityDuration.Duration)
	config.EncryptionKey = c.EncryptionKey
	config.NoticeDuration = time.Duration(c.NoticeDuration.Duration)
	config.Latency = time.Duration(c.Latency.Duration)
	config.BreakerFailureThreshold = c.BreakerFailureThreshold
	config.BreakerOpenTimeout = time.Duration(c.BreakerOpenTimeout.Duration)
	config.RequestTimeout = time.Duration(c.RequestTimeout.Duration)
	config.ShutdownTimeout = time.Duration(c.ShutdownTimeout.Duration)
	config.CookieSecure = c.CookieSecure
	config.LogLevel = c.LogLevel
	config.LogFormat = c.LogFormat
}
