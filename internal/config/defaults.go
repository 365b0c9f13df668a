package config

import (
	"time"

	"github.com/goliatone/go-portfolio/pkg/avatar"
	"github.com/goliatone/go-portfolio/pkg/catalog"
)

// DefaultPath is the configuration file read when no path is given.
const DefaultPath = "portfolio.yml"

// EnvPrefix prefixes environment overrides, e.g. PORTFOLIO_ADDR.
const EnvPrefix = "PORTFOLIO_"

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Addr:            ":8080",
		DefaultTemplate: catalog.DefaultTemplateID,
		OutputDir:       ".",
		MaxImageBytes:   avatar.DefaultMaxBytes,
		LogLevel:        "info",
		LogFormat:       "text",
		CORSOrigins:     []string{"*"},
		ShutdownGrace:   10 * time.Second,
	}
}
