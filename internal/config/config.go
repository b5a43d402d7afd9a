package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"hawx.me/code/portal-gate/internal/data"
)

// Config has the options required for running portal-gate.
type Config struct {
	// Title is shown at the top of every page.
	Title string `toml:"title"`

	// PortalURL is where users are sent to log in and be issued a token.
	PortalURL string `toml:"portal_url"`

	Session Session `toml:"session"`
	Token   Token   `toml:"token"`
}

// Session configures where session state is kept.
type Session struct {
	// Store is either "sqlite" to keep values on the server, or "cookie" to keep
	// them in the (signed) cookie.
	Store string `toml:"store"`

	// Path is the sqlite database to use. By default sessions are held in
	// memory.
	Path string `toml:"path"`

	Name   string `toml:"name"`
	Secret string `toml:"secret"`
	MaxAge int    `toml:"max_age"`
	Secure bool   `toml:"secure"`
}

type Token struct {
	LeewaySeconds int `toml:"leeway_seconds"`
}

func (t Token) Leeway() time.Duration {
	return time.Duration(t.LeewaySeconds) * time.Second
}

// Default returns the Config used for any options not set in a file.
func Default() Config {
	return Config{
		Title: "Medical Portal",
		Session: Session{
			Store:  "sqlite",
			Path:   data.MemoryPath,
			Name:   "portal-session",
			MaxAge: 86400,
		},
	}
}

// Read a TOML formatted configuration file. If the file does not exist the
// default configuration is returned.
func Read(path string) (Config, error) {
	conf := Default()

	if _, err := toml.DecodeFile(path, &conf); err != nil {
		if os.IsNotExist(err) {
			return conf, nil
		}
		return conf, err
	}

	return conf, conf.validate()
}

func (c Config) validate() error {
	switch c.Session.Store {
	case "sqlite", "cookie":
	default:
		return fmt.Errorf("session.store must be 'sqlite' or 'cookie', got %q", c.Session.Store)
	}

	if c.Session.MaxAge <= 0 {
		return fmt.Errorf("session.max_age must be positive, got %d", c.Session.MaxAge)
	}
	if c.Token.LeewaySeconds < 0 {
		return fmt.Errorf("token.leeway_seconds must not be negative, got %d", c.Token.LeewaySeconds)
	}

	return nil
}

// Env holds the secrets that are read from the environment.
type Env struct {
	// JWTSecret is shared with the main portal to sign tokens.
	JWTSecret string `env:"JWT_SECRET_KEY,required,notEmpty"`

	// SessionSecret signs session cookies. It overrides session.secret.
	SessionSecret string `env:"SESSION_SECRET"`
}

// ReadEnv loads the secrets from the environment. It is an error for
// JWT_SECRET_KEY to be missing.
func ReadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}
