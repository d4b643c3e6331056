// Package config loads runtime configuration for the furnistore CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-b string   bridge backend: memory, sqlite, postgres, redis, s3
//	-d string   data directory for the sqlite backend
//	-n string   namespace (profile) the stores are kept under
//	-k string   hex AES key; seals every stored value
//	-p string   PostgreSQL DSN
//	-r string   Redis address
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "5s" or integer
// nanoseconds:
//
//	{
//	  "backend": "sqlite",
//	  "data_dir": "~/.furnistore",
//	  "notice_duration": "5s",
//	  "latency": "300ms",
//	  "redis": {"addr": "127.0.0.1:6379", "ttl": "720h"},
//	  "s3": {"bucket": "furnistore", "endpoint": "http://127.0.0.1:9000"}
//	}
//
// The package does not read environment variables; use the JSON file or
// flags.
package config
