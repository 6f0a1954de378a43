// Package config loads and persists the YAML application configuration.
package config
