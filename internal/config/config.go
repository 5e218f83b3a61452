// Package config loads and validates relay configuration: a TOML file layered
// over defaults, with environment overrides on top. The shared GSI secret
// usually comes from the environment (a .env file is honored) so the TOML can
// be committed without it.
package config

import (
	"errors"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Server  ServerConfig  `toml:"server"  json:"server"`
	Auth    AuthConfig    `toml:"auth"    json:"auth"`
	Logging LoggingConfig `toml:"logging" json:"logging"`
}

type ServerConfig struct {
	Bind string `toml:"bind" json:"bind"`
	// Directory served at /public for the overlay page.
	PublicDir string `toml:"public_dir" json:"public_dir"`
}

type AuthConfig struct {
	// Token must equal the token in the game client's
	// gamestate_integration_*.cfg. Pushes carrying anything else are dropped.
	Token string `toml:"token" json:"-"`
}

type LoggingConfig struct {
	Level       string `toml:"level"       json:"level"`
	Development bool   `toml:"development" json:"development"`
}

// Default returns the config used when the TOML file omits a field
// or is absent entirely.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Bind:      "0.0.0.0:8080",
			PublicDir: "public",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Env override names.
const (
	EnvToken = "DRAFT_RELAY_TOKEN"
	EnvBind  = "DRAFT_RELAY_BIND"
	EnvLevel = "DRAFT_RELAY_LOG_LEVEL"
)

// Load reads the TOML file at path, layers it over the defaults, applies env
// overrides, and validates the result. A missing file is not an error — the
// defaults plus environment may be a complete configuration on their own.
func Load(path string) (Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// fine, env-only setup
	case err != nil:
		return cfg, err
	default:
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	}

	applyEnv(&cfg)

	if err := validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvToken); v != "" {
		cfg.Auth.Token = v
	}
	if v := os.Getenv(EnvBind); v != "" {
		cfg.Server.Bind = v
	}
	if v := os.Getenv(EnvLevel); v != "" {
		cfg.Logging.Level = v
	}
}

func validate(cfg Config) error {
	if cfg.Server.Bind == "" {
		return errors.New("server.bind must not be empty")
	}
	if cfg.Auth.Token == "" {
		return errors.New("auth.token must not be empty (set auth.token or " + EnvToken + ")")
	}
	return nil
}
