// Package config loads faro settings from .faro/config.toml.
// Every field has a working default, so a missing file is not an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const configFileName = "config.toml"

// Config holds all faro settings.
type Config struct {
	Agent AgentConfig `toml:"agent"`
	Run   RunConfig   `toml:"run"`
}

// AgentConfig configures the agent CLI used for plan generation and
// execution.
type AgentConfig struct {
	Command        string `toml:"command"`
	TimeoutMinutes int    `toml:"timeout_minutes"`
}

// RunConfig configures plan execution.
type RunConfig struct {
	MaxAttempts int `toml:"max_attempts"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Agent: AgentConfig{
			Command:        "claude",
			TimeoutMinutes: 5,
		},
		Run: RunConfig{
			MaxAttempts: 10,
		},
	}
}

// Load reads .faro/config.toml from the given directory. A missing file
// yields the defaults; a malformed file is an error so typos don't silently
// revert settings.
func Load(dir string) (Config, error) {
	cfg := Default()

	path := filepath.Join(dir, ".faro", configFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills in zero values left by a partial config file.
func (c *Config) applyDefaults() {
	def := Default()
	if c.Agent.Command == "" {
		c.Agent.Command = def.Agent.Command
	}
	if c.Agent.TimeoutMinutes <= 0 {
		c.Agent.TimeoutMinutes = def.Agent.TimeoutMinutes
	}
	if c.Run.MaxAttempts <= 0 {
		c.Run.MaxAttempts = def.Run.MaxAttempts
	}
}

// AgentTimeout returns the agent timeout as a duration.
func (c Config) AgentTimeout() time.Duration {
	return time.Duration(c.Agent.TimeoutMinutes) * time.Minute
}
