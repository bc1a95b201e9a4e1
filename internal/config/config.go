// /internal/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config carries every runtime setting of the bot. It is built once in
// main and handed to the components that need it.
type Config struct {
	DiscordToken  string `env:"DISCORD_TOKEN,required"`
	CommandPrefix string `env:"COMMAND_PREFIX" envDefault:"!"`
	StoragePath   string `env:"STORAGE_PATH" envDefault:"datastore.json"`

	// Intents, when non-zero, replaces the aggregated mod intents
	// wholesale instead of being OR-ed into them.
	Intents int64 `env:"DISCORD_INTENTS"`

	// DisabledMods lists mod names to keep out of the registry.
	DisabledMods []string `env:"DISABLED_MODS" envSeparator:","`

	// CommandCooldown is the per-user gap between commands. Zero
	// disables the gate.
	CommandCooldown time.Duration `env:"COMMAND_COOLDOWN"`

	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile     string `env:"LOG_FILE"`
	DeveloperID string `env:"DEVELOPER_ID"`
}

// New loads .env when present and parses the environment.
func New() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
