package storefront

import (
	"time"

	"github.com/dmitrijs2005/furnistore/internal/bridge/breaker"
	s3bridge "github.com/dmitrijs2005/furnistore/internal/bridge/s3"
	"github.com/dmitrijs2005/furnistore/internal/catalog"
	"github.com/dmitrijs2005/furnistore/internal/logging"
)

// Backend names a bridge implementation.
type Backend string

const (
	BackendMemory   Backend = "memory"
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
	BackendRedis    Backend = "redis"
	BackendS3       Backend = "s3"
)

// DatabaseFile is the SQLite file name inside Options.DataDir.
const DatabaseFile = "furnistore.db"

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
	Jitter   time.Duration
}

// Options select the bridge backend and tune the stores.
type Options struct {
	Backend Backend

	DataDir     string // sqlite
	PostgresDSN string // postgres
	Redis       RedisOptions
	S3          s3bridge.Settings

	// Breaker guards the remote backends (postgres, redis, s3).
	Breaker breaker.Settings

	// EncryptionKey is a hex AES key; when set every value is sealed before
	// it reaches the backend.
	EncryptionKey string

	TokenSecret    string
	TokenTTL       time.Duration
	NoticeDuration time.Duration
	// Latency simulates a slow catalog and authentication backend.
	Latency time.Duration

	// Products seeds the catalog; nil means catalog.Seed().
	Products []catalog.Product

	Logger logging.Logger
}

func (o Options) remote() bool {
	switch o.Backend {
	case BackendPostgres, BackendRedis, BackendS3:
		return true
	}
	return false
}
