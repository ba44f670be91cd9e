package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonnes/skeletonize/truncate"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"SKELETONIZE_THRESHOLD", "SKELETONIZE_HEAD", "SKELETONIZE_TAIL", "SKELETONIZE_REDACT"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromMissingFile(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Threshold)
	assert.Equal(t, truncate.DefaultPolicy(), cfg.Policy())
}

func TestLoadFromPartialFile(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadFrom(writeConfig(t, "threshold: 200\n"))
	require.NoError(t, err)

	require.NotNil(t, cfg.Threshold)
	assert.Equal(t, 200, *cfg.Threshold)
	assert.Nil(t, cfg.Head)
	assert.Equal(t, truncate.Policy{Threshold: 200, Head: 40, Tail: 40}, cfg.Policy())
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("SKELETONIZE_HEAD", "10")
	t.Setenv("SKELETONIZE_TAIL", " 5 ")

	cfg, err := LoadFrom(writeConfig(t, "threshold: 50\nhead: 20\n"))
	require.NoError(t, err)
	assert.Equal(t, truncate.Policy{Threshold: 50, Head: 10, Tail: 5}, cfg.Policy())
}

func TestLoadFromErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
		want string
	}{
		{name: "bad yaml", body: "threshold: [", want: "parse config file"},
		{name: "bad env", env: map[string]string{"SKELETONIZE_HEAD": "many"}, want: "parse SKELETONIZE_HEAD"},
		{name: "zero threshold", body: "threshold: 0", want: "threshold must be positive"},
		{name: "window too wide", body: "threshold: 50\nhead: 30\ntail: 30\n", want: "must exceed head + tail"},
		{name: "negative head", body: "head: -1", want: "must not be negative"},
		{name: "unknown rule", body: "redact:\n  rules: [tokens]\n", want: "redact.rules"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadFrom(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRedactConfig(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadFrom(writeConfig(t, "redact:\n  rules: [secrets]\n  allowlist: ['@example\\.com$']\n"))
	require.NoError(t, err)

	rc, ok, err := cfg.RedactConfig()
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, rc.Secrets)
	assert.False(t, rc.PII)
	assert.Equal(t, []string{`@example\.com$`}, rc.Allowlist)
}

func TestRedactEnvOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("SKELETONIZE_REDACT", "pii, secrets")

	cfg, err := LoadFrom(writeConfig(t, ""))
	require.NoError(t, err)
	rc, ok, err := cfg.RedactConfig()
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, rc.Secrets)
	assert.True(t, rc.PII)
}

func TestRedactConfigUnset(t *testing.T) {
	_, ok, err := Config{}.RedactConfig()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, "/tmp/xdg/skeletonize/config.yaml", DefaultPath())
}
