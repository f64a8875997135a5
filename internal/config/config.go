package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the global remedy configuration loaded from config.yaml.
type Config struct {
	Agent AgentConfig `yaml:"agent"`
}

// AgentConfig configures the external coding agent invocation.
type AgentConfig struct {
	// Command is the agent executable to run (e.g., "claude")
	Command string `yaml:"command"`

	// Args are extra arguments passed before the prompt
	Args []string `yaml:"args"`

	// Timeout is the maximum time to wait for a single agent run
	Timeout time.Duration `yaml:"timeout"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Agent: AgentConfig{
			Command: "claude",
			Args:    []string{"-p"},
			Timeout: 30 * time.Minute,
		},
	}
}

// LoadConfig reads the config file at path, falling back to defaults when the
// file does not exist. Fields omitted from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Agent.Command == "" {
		cfg.Agent.Command = DefaultConfig().Agent.Command
	}
	if cfg.Agent.Timeout <= 0 {
		cfg.Agent.Timeout = DefaultConfig().Agent.Timeout
	}

	return cfg, nil
}
