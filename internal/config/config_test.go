package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "token", cfg.DiscordToken)
	assert.Equal(t, "!", cfg.CommandPrefix)
	assert.Equal(t, "datastore.json", cfg.StoragePath)
	assert.Zero(t, cfg.Intents)
	assert.Empty(t, cfg.DisabledMods)
	assert.Zero(t, cfg.CommandCooldown)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestNewRequiresToken(t *testing.T) {
	// t.Setenv registers the restore, Unsetenv makes the variable
	// genuinely absent rather than empty.
	t.Setenv("DISCORD_TOKEN", "placeholder")
	os.Unsetenv("DISCORD_TOKEN")

	_, err := New()
	require.Error(t, err)
}

func TestNewParsesOverrides(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("COMMAND_PREFIX", "?")
	t.Setenv("DISCORD_INTENTS", "3243773")
	t.Setenv("DISABLED_MODS", "seen,vote")
	t.Setenv("COMMAND_COOLDOWN", "2s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "?", cfg.CommandPrefix)
	assert.Equal(t, int64(3243773), cfg.Intents)
	assert.Equal(t, []string{"seen", "vote"}, cfg.DisabledMods)
	assert.Equal(t, 2*time.Second, cfg.CommandCooldown)
	assert.Equal(t, "debug", cfg.LogLevel)
}
