package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"backend":         "redis",
		"notice_duration": "2s",
		"latency":         300000000,
		"redis":           map[string]any{"addr": "cache:6379", "db": 2, "ttl": "1h"},
		"s3":              map[string]any{"bucket": "b2", "endpoint": "http://minio:9000"},
	})

	t.Run("loads from flags", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "redis", cfg.Backend)
		assert.Equal(t, 2*time.Second, cfg.NoticeDuration)
		assert.Equal(t, 300*time.Millisecond, cfg.Latency)
		assert.Equal(t, "cache:6379", cfg.RedisAddr)
		assert.Equal(t, 2, cfg.RedisDB)
		assert.Equal(t, time.Hour, cfg.RedisTTL)
		assert.Equal(t, "b2", cfg.S3.Bucket)
		assert.Equal(t, "http://minio:9000", cfg.S3.Endpoint)
		assert.Equal(t, "us-east-1", cfg.S3.Region, "unset fields keep defaults")
		assert.Equal(t, ".furnistore", cfg.DataDir)
	})

	t.Run("short flag", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", pathFlag}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "redis", cfg.Backend)
	})

	t.Run("no config flag, no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{Backend: "memory", NoticeDuration: 42 * time.Second}
		parseJson(cfg)

		assert.Equal(t, "memory", cfg.Backend)
		assert.Equal(t, 42*time.Second, cfg.NoticeDuration)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})

	t.Run("missing file panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", filepath.Join(dir, "nope.json")}
		require.Panics(t, func() { parseJson(&Config{}) })
	})
}
