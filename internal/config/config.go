package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "FITNESS_"

// Config keeps runtime settings for the bot.
type Config struct {
	Telegram   TelegramConfig   `koanf:"telegram"`
	Database   DatabaseConfig   `koanf:"database"`
	Log        LogConfig        `koanf:"log"`
	Goal       GoalConfig       `koanf:"goal"`
	Inactivity InactivityConfig `koanf:"inactivity"`
	Report     ReportConfig     `koanf:"report"`
}

type TelegramConfig struct {
	Token string `koanf:"token"`
}

type DatabaseConfig struct {
	URL string `koanf:"url"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type GoalConfig struct {
	TickInterval time.Duration `koanf:"tick_interval"`
	MaxIncrement int           `koanf:"max_increment"`
}

type InactivityConfig struct {
	Threshold     time.Duration `koanf:"threshold"`
	CheckInterval time.Duration `koanf:"check_interval"`
}

// ReportConfig controls the weekly report broadcast.
type ReportConfig struct {
	Enabled bool   `koanf:"enabled"`
	Day     string `koanf:"day"`
	Time    string `koanf:"time"`
}

// Load reads defaults, then the optional YAML file, then environment variables.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(NewDefaultProvider(), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path == "" {
		path = strings.TrimSpace(os.Getenv(envPrefix + "CONFIG"))
	}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("load config file: %w", err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("stat config file: %w", err)
		}
	}

	// FITNESS_GOAL_TICK_INTERVAL -> goal.tick_interval
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	// Variables understood by earlier deployments.
	if token := strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")); token != "" && k.String("telegram.token") == "" {
		k.Set("telegram.token", token)
	}
	if dsn := strings.TrimSpace(os.Getenv("DATABASE_URL")); dsn != "" {
		k.Set("database.url", dsn)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// envKey maps FITNESS_SECTION_SOME_KEY to section.some_key.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	if key == "config" {
		return ""
	}
	section, rest, ok := strings.Cut(key, "_")
	if !ok {
		return key
	}
	return section + "." + rest
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Telegram.Token) == "" {
		return fmt.Errorf("TELEGRAM_TOKEN is required")
	}
	// The scheduler ticks at one second resolution.
	if c.Goal.TickInterval < time.Second {
		return fmt.Errorf("goal.tick_interval must be at least 1s, got %v", c.Goal.TickInterval)
	}
	if c.Goal.MaxIncrement <= 0 {
		return fmt.Errorf("goal.max_increment must be positive")
	}
	if c.Inactivity.Threshold <= 0 {
		return fmt.Errorf("inactivity.threshold must be positive")
	}
	if c.Inactivity.CheckInterval < time.Second {
		return fmt.Errorf("inactivity.check_interval must be at least 1s, got %v", c.Inactivity.CheckInterval)
	}
	return nil
}
