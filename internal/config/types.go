package config

import "time"

// Config is the top-level portfolio configuration, corresponding to
// portfolio.yml.
type Config struct {
	Addr            string        `yaml:"addr" koanf:"addr"`
	DefaultTemplate string        `yaml:"default_template" koanf:"default_template"`
	OutputDir       string        `yaml:"output_dir" koanf:"output_dir"`
	MaxImageBytes   int64         `yaml:"max_image_bytes" koanf:"max_image_bytes"`
	LogLevel        string        `yaml:"log_level" koanf:"log_level"`
	LogFormat       string        `yaml:"log_format" koanf:"log_format"`
	CORSOrigins     []string      `yaml:"cors_origins" koanf:"cors_origins"`
	ShutdownGrace   time.Duration `yaml:"shutdown_grace" koanf:"shutdown_grace"`
}
