package config

import (
	"github.com/knadh/koanf/providers/confmap"
)

func DefaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"telegram.token": "",
		// In-memory: session data does not survive a restart.
		"database.url":              "file::memory:?cache=shared",
		"log.level":                 "info",
		"log.format":                "console",
		"goal.tick_interval":        "5s",
		"goal.max_increment":        1000,
		"inactivity.threshold":      "24h",
		"inactivity.check_interval": "1m",
		"report.enabled":            false,
		"report.day":                "Sun",
		"report.time":               "20:00",
	}
}

func NewDefaultProvider() *confmap.Confmap {
	return confmap.Provider(DefaultConfig(), ".")
}
