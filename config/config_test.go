package config

import (
	"os"
	"path/filepath"
	"testing"

	"handin/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	return dir
}

func TestLoad_FromFile(t *testing.T) {
	dir := writeConfig(t, `
TOKEN: abc
review:
  channel_id: "111"
  reviewer_id: "222"
storage:
  path: ""
health:
  addr: "127.0.0.1:9090"
commands:
  allowguilds: ["g1", "g2"]
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "abc", cfg.Token)
	assert.Equal(t, "111", cfg.Review.ChannelID)
	assert.Equal(t, "222", cfg.Review.ReviewerID)
	assert.Equal(t, "", cfg.Storage.Path)
	assert.Equal(t, "127.0.0.1:9090", cfg.Health.Addr)
	assert.Equal(t, []string{"g1", "g2"}, cfg.Commands.AllowGuilds)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "./data/handin.db", cfg.Storage.Path)
	assert.Equal(t, "console", cfg.Log.Mode)
	assert.ErrorIs(t, Validate(cfg), ErrMissingToken)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := writeConfig(t, "review:\n  channel_id: \"111\"\n")
	t.Setenv("REVIEW_CHANNEL_ID", "999")
	t.Setenv("TOKEN", "from-env")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "999", cfg.Review.ChannelID)
	assert.Equal(t, "from-env", cfg.Token)
	assert.NoError(t, Validate(cfg))
}

func TestReviewChannelConfigured(t *testing.T) {
	assert.False(t, ReviewChannelConfigured(model.Review{}))
	assert.False(t, ReviewChannelConfigured(model.Review{ChannelID: "0"}))
	assert.False(t, ReviewChannelConfigured(model.Review{ChannelID: "  "}))
	assert.True(t, ReviewChannelConfigured(model.Review{ChannelID: "123"}))
}
