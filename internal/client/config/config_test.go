package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withEnviron(t *testing.T, kv ...string) {
	t.Helper()
	orig := lookupEnviron
	lookupEnviron = func() []string { return kv }
	t.Cleanup(func() { lookupEnviron = orig })
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://localhost:3000", c.APIBaseURL)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
	assert.Equal(t, StoreSQLite, c.Store)
	assert.Equal(t, "portfolio:", c.Redis.Prefix)
	assert.Equal(t, "warn", c.Log.Level)
}

func TestLoadConfig_DefaultsOnly(t *testing.T) {
	withEnviron(t)

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)

	var want Config
	want.LoadDefaults()
	assert.Empty(t, cmp.Diff(&want, cfg))
}

func TestLoadConfig_Env(t *testing.T) {
	tests := []struct {
		name    string
		environ []string
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name:    "legacy base url",
			environ: []string{"VITE_API_BASE_URL=http://vite:5000"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "http://vite:5000", cfg.APIBaseURL)
			},
		},
		{
			name:    "portfolio var beats legacy",
			environ: []string{"VITE_API_BASE_URL=http://vite:5000", "PORTFOLIO_API_BASE_URL=http://api:8080"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "http://api:8080", cfg.APIBaseURL)
			},
		},
		{
			name: "nested sections",
			environ: []string{
				"PORTFOLIO_STORE=redis",
				"PORTFOLIO_REDIS_ADDR=redis:6380",
				"PORTFOLIO_REDIS_DB=3",
				"PORTFOLIO_LOG_LEVEL=debug",
				"PORTFOLIO_S3_BUCKET=media",
				"PORTFOLIO_S3_USE_PATH_STYLE=true",
				"PORTFOLIO_REQUEST_TIMEOUT=2s",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, StoreRedis, cfg.Store)
				assert.Equal(t, "redis:6380", cfg.Redis.Addr)
				assert.Equal(t, 3, cfg.Redis.DB)
				assert.Equal(t, "portfolio:", cfg.Redis.Prefix)
				assert.Equal(t, "debug", cfg.Log.Level)
				assert.Equal(t, "media", cfg.Media.Bucket)
				assert.True(t, cfg.Media.UsePathStyle)
				assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withEnviron(t, tt.environ...)
			cfg, err := LoadConfig(nil)
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoadConfig_DotenvFile(t *testing.T) {
	path := writeFile(t, "local.env", "PORTFOLIO_API_BASE_URL=http://from-file\nPORTFOLIO_LOG_LEVEL=error\n")

	withEnviron(t, "PORTFOLIO_LOG_LEVEL=info")

	cfg, err := LoadConfig([]string{"-env", path})
	require.NoError(t, err)
	assert.Equal(t, "http://from-file", cfg.APIBaseURL)
	assert.Equal(t, "info", cfg.Log.Level, "process env wins over the file")
}

func TestLoadConfig_MissingExplicitDotenv(t *testing.T) {
	withEnviron(t)

	_, err := LoadConfig([]string{"-env", filepath.Join(t.TempDir(), "nope.env")})
	require.Error(t, err)
}

func TestLoadConfig_JSONFile(t *testing.T) {
	withEnviron(t, "PORTFOLIO_API_BASE_URL=http://env")
	path := writeFile(t, "cfg.json", `{
		"api_base_url": "http://json",
		"request_timeout": 3000000000,
		"redis": {"db": 0, "addr": "r:1"}
	}`)

	cfg, err := LoadConfig([]string{"-c", path})
	require.NoError(t, err)
	assert.Equal(t, "http://json", cfg.APIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "r:1", cfg.Redis.Addr)
	assert.Equal(t, "portfolio:", cfg.Redis.Prefix, "absent fields keep earlier values")
	assert.Equal(t, StoreSQLite, cfg.Store)
}

func TestLoadConfig_YAMLFile(t *testing.T) {
	withEnviron(t)
	path := writeFile(t, "cfg.yaml", `
api_base_url: https://api.example.com
request_timeout: 10s
store: redis
log:
  level: debug
  format: json
media:
  bucket: pics
  use_path_style: true
`)

	cfg, err := LoadConfig([]string{"-config=" + path})
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, StoreRedis, cfg.Store)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "pics", cfg.Media.Bucket)
	assert.True(t, cfg.Media.UsePathStyle)
}

func TestLoadConfig_FileErrors(t *testing.T) {
	withEnviron(t)

	_, err := LoadConfig([]string{"-c", filepath.Join(t.TempDir(), "missing.json")})
	require.Error(t, err)

	bad := writeFile(t, "bad.json", `{"request_timeout": "soon"}`)
	_, err = LoadConfig([]string{"-c", bad})
	require.Error(t, err)
}

func TestLoadConfig_FlagsWin(t *testing.T) {
	withEnviron(t, "PORTFOLIO_API_BASE_URL=http://env", "PORTFOLIO_STORE=redis")
	path := writeFile(t, "cfg.json", `{"api_base_url": "http://json"}`)

	cfg, err := LoadConfig([]string{"-c", path, "-a", "http://flag", "-t", "7s", "-s", "sqlite", "-unrelated", "x"})
	require.NoError(t, err)
	assert.Equal(t, "http://flag", cfg.APIBaseURL)
	assert.Equal(t, 7*time.Second, cfg.RequestTimeout)
	assert.Equal(t, StoreSQLite, cfg.Store)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad duration flag", []string{"-t", "abc"}},
		{"unknown store", []string{"-s", "mongo"}},
		{"negative timeout", []string{"-t=-1s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withEnviron(t)
			_, err := LoadConfig(tt.args)
			require.Error(t, err)
		})
	}
}
