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

func Test_parseJson(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, "", "", map[string]any{
		"endpoint_addr_http":        ":9999",
		"backend":                   "redis",
		"redis_addr":                "cache:6379",
		"redis_ttl":                 "48h",
		"secret_key":                "k",
		"token_validity_duration":   "2h",
		"notice_duration":           "3s",
		"breaker_failure_threshold": 3,
		"request_timeout":           "5s",
		"shutdown_timeout":          2000000000,
		"cookie_secure":             true,
		"log_format":                "text",
	})

	t.Run("loads file", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", path}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, ":9999", cfg.EndpointAddrHTTP)
		assert.Equal(t, "redis", cfg.Backend)
		assert.Equal(t, "cache:6379", cfg.RedisAddr)
		assert.Equal(t, 48*time.Hour, cfg.RedisTTL)
		assert.Equal(t, 2*time.Hour, cfg.TokenValidityDuration)
		assert.Equal(t, 3*time.Second, cfg.NoticeDuration)
		assert.Equal(t, uint32(3), cfg.BreakerFailureThreshold)
		assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
		assert.Equal(t, 2*time.Second, cfg.ShutdownTimeout)
		assert.True(t, cfg.CookieSecure)
		assert.Equal(t, "text", cfg.LogFormat)
	})

	t.Run("no config flag", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{Backend: "memory"}
		parseJson(cfg)
		assert.Equal(t, "memory", cfg.Backend)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{`), 0o600))
		os.Args = []string{"testbin", "-config", bad}

		require.Panics(t, func() { parseJson(&Config{}) })
	})
}
