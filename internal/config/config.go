// Package config loads the routegen.yaml project configuration.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the configuration is looked up by default.
const DefaultPath = "routegen.yaml"

// Config is the recognized routegen configuration.
type Config struct {
	// Dir is the output directory for the generated declaration file,
	// relative to the project root. Empty means the root itself.
	Dir string `yaml:"dir,omitempty"`
	// Routes is the route table file consumed by `routegen generate` and
	// watched by `routegen dev`.
	Routes string `yaml:"routes"`
	Dev    Dev    `yaml:"dev,omitempty"`
}

// Dev configures the dev orchestrator.
type Dev struct {
	// Port the dev server listens on.
	Port int `yaml:"port"`
	// FrontendCmd is an optional frontend dev command run alongside the
	// dev server, e.g. "pnpm dev".
	FrontendCmd string `yaml:"frontend_cmd,omitempty"`
}

// Default returns the configuration used when no routegen.yaml exists.
func Default() *Config {
	return &Config{
		Routes: "routes.yaml",
		Dev:    Dev{Port: 3620},
	}
}

// Load reads the configuration from path. A missing file is not an error;
// defaults apply. Values from the process environment (optionally seeded
// from a .env file) override the file:
//
//	ROUTEGEN_DIR    output directory
//	ROUTEGEN_ROUTES route table file
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Fall through to defaults and environment.
	case err != nil:
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		applyDefaults(cfg)
	}

	_ = godotenv.Load()
	if dir := os.Getenv("ROUTEGEN_DIR"); dir != "" {
		cfg.Dir = dir
	}
	if routesFile := os.Getenv("ROUTEGEN_ROUTES"); routesFile != "" {
		cfg.Routes = routesFile
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Routes == "" {
		cfg.Routes = Default().Routes
	}
	if cfg.Dev.Port == 0 {
		cfg.Dev.Port = Default().Dev.Port
	}
}

func validate(cfg *Config) error {
	if cfg.Dev.Port < 0 || cfg.Dev.Port > 65535 {
		return fmt.Errorf("config validation error in field 'dev.port': %d is not a valid port", cfg.Dev.Port)
	}
	return nil
}

// Write persists the configuration to path.
func (c *Config) Write(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
