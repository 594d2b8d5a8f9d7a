// Package settings holds process-level settings read from an optional YAML
// file and the environment.
package settings

import (
	"fmt"
	"io"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/wricardo/blockdoku/logging"
)

type Settings struct {
	Host       string        `yaml:"host" env:"BLOCKDOKU_HOST" env-default:"localhost" env-description:"HTTP server host"`
	Port       int           `yaml:"port" env:"BLOCKDOKU_PORT" env-default:"8080" env-description:"HTTP server port"`
	ConfigDir  string        `yaml:"config-dir" env:"CONFIG_DIR" env-default:"configs" env-description:"Directory containing rulesets"`
	Ruleset    string        `yaml:"ruleset" env:"BLOCKDOKU_RULESET" env-default:"classic" env-description:"Ruleset used by play and simulate"`
	Seed       int64         `yaml:"seed" env:"BLOCKDOKU_SEED" env-default:"0" env-description:"Random seed, 0 seeds from the clock"`
	SessionTTL time.Duration `yaml:"session-ttl" env:"BLOCKDOKU_SESSION_TTL" env-default:"24h" env-description:"Idle time before a session is removed"`
	Log        Log           `yaml:"log"`
	Redis      Redis         `yaml:"redis"`
	Ngrok      Ngrok         `yaml:"ngrok"`
}

type Log struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info" env-description:"debug, info, warn or error"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"console" env-description:"console or json"`
	File   string `yaml:"file" env:"LOG_FILE" env-description:"Append logs to this file"`
}

// Redis configures the scoreboard store. An empty address keeps scores in memory.
type Redis struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-description:"Redis address for the scoreboard"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
	Prefix   string `yaml:"prefix" env:"REDIS_PREFIX" env-default:"blockdoku"`
}

type Ngrok struct {
	Enabled   bool   `yaml:"enabled" env:"NGROK_ENABLED" env-default:"false" env-description:"Expose the HTTP server through ngrok"`
	AuthToken string `yaml:"authtoken" env:"NGROK_AUTHTOKEN"`
	Domain    string `yaml:"domain" env:"NGROK_DOMAIN"`
}

// Load reads settings from path, if given, then applies the environment.
// Defaults fill anything left unset.
func Load(path string) (*Settings, error) {
	s := &Settings{}

	if path == "" {
		if err := cleanenv.ReadEnv(s); err != nil {
			return nil, fmt.Errorf("unable to read settings from environment: %w", err)
		}
	} else if err := cleanenv.ReadConfig(path, s); err != nil {
		return nil, fmt.Errorf("unable to load settings file: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks ranges that tags cannot express
func (s *Settings) Validate() error {
	if s.Port < 0 || s.Port > 65535 {
		return fmt.Errorf("settings: port %d out of range", s.Port)
	}
	if s.SessionTTL < 0 {
		return fmt.Errorf("settings: session-ttl must not be negative")
	}
	switch s.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("settings: unknown log format %q", s.Log.Format)
	}
	return nil
}

// Addr returns host:port for the HTTP server
func (s *Settings) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LogOptions converts the log section for the logging package
func (s *Settings) LogOptions(console bool) logging.Options {
	return logging.Options{
		Level:   s.Log.Level,
		Format:  s.Log.Format,
		File:    s.Log.File,
		Console: console,
	}
}

// WriteUsage prints every environment variable with its default and description
func WriteUsage(w io.Writer) error {
	header := "Environment variables:"
	text, err := cleanenv.GetDescription(&Settings{}, &header)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, text)
	return err
}
