package nexusverse

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/nexusverse/nexusverse-bot/nexusverse/database"
	"github.com/pelletier/go-toml/v2"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type Config struct {
	Log  LogConfig         `toml:"log"`
	Bot  BotConfig         `toml:"bot"`
	DB   database.DBConfig `toml:"db"`
	Game GameConfig        `toml:"game"`
}

type BotConfig struct {
	DevGuilds []snowflake.ID `toml:"dev_guilds"`
	OwnerIDs  []snowflake.ID `toml:"owner_ids"`
	Token     string         `toml:"token"`
}

type LogConfig struct {
	Level slog.Level `toml:"level"`
}

type GameConfig struct {
	CatalogPath          string  `toml:"catalog_path"`
	CatchCooldownSeconds int     `toml:"catch_cooldown_seconds"`
	SpawnMultiplier      float64 `toml:"spawn_multiplier"`
}

// CatchCooldown returns the configured cooldown, defaulting to five
// seconds.
func (c GameConfig) CatchCooldown() time.Duration {
	if c.CatchCooldownSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.CatchCooldownSeconds) * time.Second
}
