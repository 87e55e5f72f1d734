package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const DefaultPath = "config/config.yaml"

// MustLoad reads .env, then the YAML file named by CONFIG_PATH (or
// DefaultPath) overlaid with the environment. It panics on failure.
func MustLoad() *Config {
	_ = godotenv.Load()

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = DefaultPath
	}

	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads path when it exists and falls back to the environment alone
// otherwise.
func Load(path string) (*Config, error) {
	var cfg Config

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if errors.Is(err, os.ErrNotExist) {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("read config from env: %w", err)
		}
	} else {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.DefaultDatabase != "" {
		if _, ok := c.Databases[c.DefaultDatabase]; !ok {
			return fmt.Errorf("default_database %q is not listed under databases", c.DefaultDatabase)
		}
	}
	for name, db := range c.Databases {
		if db.DSN == "" {
			return fmt.Errorf("database %q has no dsn", name)
		}
	}
	if c.Import.MaxFileSize <= 0 {
		return errors.New("import.max_file_size must be positive")
	}
	return nil
}
