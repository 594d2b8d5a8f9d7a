package settings

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "localhost", s.Host)
	assert.Equal(t, 8080, s.Port)
	assert.Equal(t, "configs", s.ConfigDir)
	assert.Equal(t, "classic", s.Ruleset)
	assert.Zero(t, s.Seed)
	assert.Equal(t, 24*time.Hour, s.SessionTTL)
	assert.Equal(t, "info", s.Log.Level)
	assert.Equal(t, "console", s.Log.Format)
	assert.Empty(t, s.Redis.Addr)
	assert.Equal(t, "blockdoku", s.Redis.Prefix)
	assert.False(t, s.Ngrok.Enabled)
	assert.Equal(t, "localhost:8080", s.Addr())
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("BLOCKDOKU_PORT", "9191")
	t.Setenv("BLOCKDOKU_SEED", "42")
	t.Setenv("REDIS_ADDR", "127.0.0.1:6380")
	t.Setenv("NGROK_ENABLED", "true")
	t.Setenv("LOG_FORMAT", "json")

	s, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9191, s.Port)
	assert.Equal(t, int64(42), s.Seed)
	assert.Equal(t, "127.0.0.1:6380", s.Redis.Addr)
	assert.True(t, s.Ngrok.Enabled)
	assert.Equal(t, "json", s.Log.Format)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blockdoku.yaml")
	body := `
host: 0.0.0.0
port: 7000
ruleset: scattered
session-ttl: 90m
log:
  level: debug
  file: /tmp/blockdoku.log
redis:
  addr: redis:6379
  db: 2
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:7000", s.Addr())
	assert.Equal(t, "scattered", s.Ruleset)
	assert.Equal(t, 90*time.Minute, s.SessionTTL)
	assert.Equal(t, "debug", s.Log.Level)
	assert.Equal(t, "console", s.Log.Format, "defaults still apply to unset keys")
	assert.Equal(t, 2, s.Redis.DB)

	opts := s.LogOptions(false)
	assert.Equal(t, "/tmp/blockdoku.log", opts.File)
	assert.False(t, opts.Console)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blockdoku.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 7000\n"), 0644))
	t.Setenv("BLOCKDOKU_PORT", "7001")

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7001, s.Port)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	t.Setenv("LOG_FORMAT", "xml")
	_, err = Load("")
	assert.ErrorContains(t, err, "unknown log format")
}

func TestValidate(t *testing.T) {
	s := &Settings{Port: 70000, Log: Log{Format: "json"}}
	assert.ErrorContains(t, s.Validate(), "out of range")

	s = &Settings{Port: 80, SessionTTL: -time.Second, Log: Log{Format: "json"}}
	assert.ErrorContains(t, s.Validate(), "session-ttl")
}

func TestWriteUsage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteUsage(&buf))

	out := buf.String()
	assert.Contains(t, out, "BLOCKDOKU_PORT")
	assert.Contains(t, out, "REDIS_ADDR")
	assert.Contains(t, out, "NGROK_AUTHTOKEN")
}
