package config

import (
	"errors"
	"fmt"
	"regexp"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTMDB(); err != nil {
		return err
	}
	if err := c.validateNaming(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTMDB() error {
	if c.TMDB.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/marquee/config.toml"
		}
		return fmt.Errorf("tmdb.api_key is required. Set TMDB_API_KEY env var or edit %s (create with 'marquee config init')", defaultPath)
	}
	if c.TMDB.BaseURL == "" {
		return errors.New("tmdb.base_url must be set")
	}
	return nil
}

func (c *Config) validateNaming() error {
	if len(c.Naming.Languages) == 0 {
		return errors.New("naming.languages must include at least one language")
	}
	if _, err := regexp.Compile(c.Naming.IgnoreDirs); err != nil {
		return fmt.Errorf("naming.ignore_dirs is not a valid regular expression: %w", err)
	}
	if len(c.Naming.VideoExtensions) == 0 {
		return errors.New("naming.video_extensions must include at least one extension")
	}
	return nil
}

func (c *Config) validateNotifications() error {
	if c.Notifications.RequestTimeout <= 0 {
		return errors.New("notifications.request_timeout must be positive")
	}
	return nil
}
