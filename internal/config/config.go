// Package config loads console settings from the environment, with an
// optional .env file for development.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	env "github.com/caarlos0/env/v7"
	"github.com/joho/godotenv"
)

// Config is the full console configuration. The credential and key files
// default to a dotfile directory under the user's home.
type Config struct {
	ServerURL      string        `env:"ACCESSDESK_SERVER" envDefault:"http://localhost:5000"`
	HTTPTimeout    time.Duration `env:"ACCESSDESK_HTTP_TIMEOUT" envDefault:"15s"`
	CredentialFile string        `env:"ACCESSDESK_CREDENTIAL_FILE"`
	MasterKeyFile  string        `env:"ACCESSDESK_MASTER_KEY_FILE"`
	LogLevel       string        `env:"ACCESSDESK_LOG_LEVEL" envDefault:"info"`
	LogFile        string        `env:"ACCESSDESK_LOG_FILE"`

	// Mock API settings, used by cmd/mockapi only.
	MockListenAddr string `env:"ACCESSDESK_MOCK_ADDR" envDefault:":5000"`
	MockJWTSecret  string `env:"ACCESSDESK_MOCK_JWT_SECRET" envDefault:"accessdesk-dev-secret"`
	MockSeed       bool   `env:"ACCESSDESK_MOCK_SEED" envDefault:"true"`
}

// New reads envPath (when non-empty) into the process environment, then
// parses the configuration. A missing .env file is only an error when the
// path was given explicitly.
func New(envPath string) (Config, error) {
	var c Config

	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return c, fmt.Errorf("load %s: %w", envPath, err)
			}
			return c, fmt.Errorf("env file %s does not exist", envPath)
		}
	} else {
		// Best effort: a .env in the working directory is picked up,
		// its absence is not an error.
		_ = godotenv.Load()
	}

	if err := env.Parse(&c); err != nil {
		return c, fmt.Errorf("parse environment: %w", err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	if c.CredentialFile == "" {
		c.CredentialFile = home + "/.accessdesk/credentials.enc"
	}
	if c.MasterKeyFile == "" {
		c.MasterKeyFile = home + "/.accessdesk/master.key"
	}
	if c.LogFile == "" {
		c.LogFile = home + "/.accessdesk/console.log"
	}

	return c, nil
}
