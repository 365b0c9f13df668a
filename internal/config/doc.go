// Package config loads portfolio settings from defaults, an optional YAML
// file and PORTFOLIO_* environment variables, in that order.
package config
