// Package storefront wires the stores to a bridge backend, the catalog and
// the demo directory, and hands out per-visitor store sets.
package storefront

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/furnistore/internal/bridge"
	"github.com/dmitrijs2005/furnistore/internal/bridge/breaker"
	"github.com/dmitrijs2005/furnistore/internal/bridge/postgres"
	redisbridge "github.com/dmitrijs2005/furnistore/internal/bridge/redis"
	s3bridge "github.com/dmitrijs2005/furnistore/internal/bridge/s3"
	"github.com/dmitrijs2005/furnistore/internal/bridge/sqlite"
	"github.com/dmitrijs2005/furnistore/internal/cart"
	"github.com/dmitrijs2005/furnistore/internal/catalog"
	"github.com/dmitrijs2005/furnistore/internal/common"
	"github.com/dmitrijs2005/furnistore/internal/cryptox"
	"github.com/dmitrijs2005/furnistore/internal/filex"
	"github.com/dmitrijs2005/furnistore/internal/logging"
	"github.com/dmitrijs2005/furnistore/internal/notify"
	"github.com/dmitrijs2005/furnistore/internal/session"
)

var ErrUnknownBackend = errors.New("unknown bridge backend")

type Storefront struct {
	Catalog   *catalog.Memory
	Directory *session.Directory

	bridge bridge.Bridge
	closer io.Closer
	opts   Options
	log    logging.Logger
}

// Open builds the bridge named by opts.Backend and the shared catalog and
// directory. Remote backends are wrapped in a circuit breaker.
func Open(ctx context.Context, opts Options) (*Storefront, error) {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}

	products := opts.Products
	if products == nil {
		products = catalog.Seed()
	}
	cat, err := catalog.NewMemory(products, opts.Latency)
	if err != nil {
		return nil, err
	}

	b, closer, err := openBridge(ctx, opts)
	if err != nil {
		return nil, err
	}

	if opts.remote() {
		st := opts.Breaker
		if st.Name == "" {
			st.Name = string(opts.Backend)
		}
		b = breaker.Wrap(b, st, log)
	}

	if opts.EncryptionKey != "" {
		key, err := cryptox.ParseKey(opts.EncryptionKey)
		if err != nil {
			closeQuietly(closer)
			return nil, fmt.Errorf("encryption key: %w", err)
		}
		b = bridge.Sealed(b, key)
	}

	secret := opts.TokenSecret
	if secret == "" {
		// tokens then only verify within this process
		if secret, err = common.MakeRandHexString(32); err != nil {
			closeQuietly(closer)
			return nil, err
		}
	}

	dir := session.NewDirectory([]byte(secret),
		session.WithTokenTTL(opts.TokenTTL),
		session.WithLatency(opts.Latency),
	)

	log.Info(ctx, "storefront opened", "backend", string(opts.Backend), "sealed", opts.EncryptionKey != "")

	return &Storefront{
		Catalog:   cat,
		Directory: dir,
		bridge:    b,
		closer:    closer,
		opts:      opts,
		log:       log,
	}, nil
}

func openBridge(ctx context.Context, opts Options) (bridge.Bridge, io.Closer, error) {
	switch opts.Backend {
	case BackendMemory, "":
		return bridge.NewMemory(), nil, nil

	case BackendSQLite:
		path, err := filex.DataFile(opts.DataDir, DatabaseFile)
		if err != nil {
			return nil, nil, err
		}
		b, err := sqlite.Open(ctx, path)
		if err != nil {
			return nil, nil, err
		}
		return b, b, nil

	case BackendPostgres:
		b, err := postgres.Open(ctx, opts.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		return b, b, nil

	case BackendRedis:
		r := opts.Redis
		b, err := redisbridge.Open(ctx, r.Addr, r.Password, r.DB, redisbridge.Options{TTL: r.TTL, Jitter: r.Jitter})
		if err != nil {
			return nil, nil, err
		}
		return b, b, nil

	case BackendS3:
		b, err := s3bridge.Open(ctx, opts.S3)
		if err != nil {
			return nil, nil, err
		}
		return b, nil, nil
	}

	return nil, nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
}

// Bridge returns the shared, un-namespaced bridge.
func (sf *Storefront) Bridge() bridge.Bridge {
	return sf.bridge
}

// Stores hydrates a cart, session and notification queue for namespace.
// An empty namespace uses the bridge keys as they are.
func (sf *Storefront) Stores(ctx context.Context, namespace string) *Stores {
	b := sf.bridge
	if namespace != "" {
		b = bridge.Prefixed(b, namespace+":")
	}
	log := sf.log
	if namespace != "" {
		log = log.With("namespace", namespace)
	}

	return &Stores{
		Namespace: namespace,
		Cart:      cart.NewStore(ctx, b, log),
		Session:   session.NewStore(ctx, b, sf.Directory, log),
		Notices:   notify.New(notify.WithDefaultDuration(sf.opts.NoticeDuration), notify.WithLogger(log)),
		catalog:   sf.Catalog,
		log:       log,
	}
}

// Close releases the backend connection.
func (sf *Storefront) Close() error {
	if sf.closer == nil {
		return nil
	}
	return sf.closer.Close()
}

func closeQuietly(c io.Closer) {
	if c != nil {
		_ = c.Close()
	}
}
