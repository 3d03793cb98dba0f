package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateExtract(); err != nil {
		return err
	}
	if err := c.validateFetch(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateExtract() error {
	if c.Extract.Workers < 1 {
		return errors.New("extract.workers must be at least 1")
	}
	return nil
}

func (c *Config) validateFetch() error {
	if !c.Fetch.Enabled {
		return nil
	}
	if c.Fetch.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/subkit/config.toml"
		}
		return fmt.Errorf("fetch.api_key is required when fetch.enabled is true. Edit %s (create with 'subkit config new')", defaultPath)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}
