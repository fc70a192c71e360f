package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeTMDB(); err != nil {
		return err
	}
	c.normalizeNaming()
	c.normalizeProbing()
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	roots := make([]string, 0, len(c.Paths.RootDirs))
	seen := make(map[string]struct{}, len(c.Paths.RootDirs))
	for _, root := range c.Paths.RootDirs {
		if strings.TrimSpace(root) == "" {
			continue
		}
		expanded, expandErr := expandPath(root)
		if expandErr != nil {
			return fmt.Errorf("paths.root_dirs: %w", expandErr)
		}
		if _, ok := seen[expanded]; ok {
			continue
		}
		seen[expanded] = struct{}{}
		roots = append(roots, expanded)
	}
	c.Paths.RootDirs = roots

	if strings.TrimSpace(c.Paths.ReportDir) == "" {
		c.Paths.ReportDir = defaultReportDir
	}
	if c.Paths.ReportDir, err = expandPath(c.Paths.ReportDir); err != nil {
		return fmt.Errorf("paths.report_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTMDB() error {
	if c.TMDB.APIKey == "" {
		if value, ok := os.LookupEnv("TMDB_API_KEY"); ok {
			c.TMDB.APIKey = value
		}
	}
	c.TMDB.APIKey = strings.TrimSpace(c.TMDB.APIKey)
	c.TMDB.BaseURL = strings.TrimSpace(c.TMDB.BaseURL)
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = defaultTMDBBaseURL
	}
	c.TMDB.Language = strings.TrimSpace(c.TMDB.Language)
	return nil
}

func (c *Config) normalizeNaming() {
	languages := make([]string, 0, len(c.Naming.Languages))
	seen := make(map[string]struct{}, len(c.Naming.Languages))
	for _, lang := range c.Naming.Languages {
		trimmed := strings.TrimSpace(lang)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		languages = append(languages, trimmed)
	}
	if len(languages) == 0 {
		languages = defaultLanguages()
	}
	c.Naming.Languages = languages

	c.Naming.IgnoreDirs = strings.TrimSpace(c.Naming.IgnoreDirs)
	if c.Naming.IgnoreDirs == "" {
		c.Naming.IgnoreDirs = defaultIgnoreDirs
	}

	exts := make([]string, 0, len(c.Naming.VideoExtensions))
	seenExt := make(map[string]struct{}, len(c.Naming.VideoExtensions))
	for _, ext := range c.Naming.VideoExtensions {
		normalized := strings.ToLower(strings.TrimSpace(ext))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if _, ok := seenExt[normalized]; ok {
			continue
		}
		seenExt[normalized] = struct{}{}
		exts = append(exts, normalized)
	}
	if len(exts) == 0 {
		exts = defaultVideoExtensions()
	}
	c.Naming.VideoExtensions = exts
}

func (c *Config) normalizeProbing() {
	c.Probing.FFprobeBinary = strings.TrimSpace(c.Probing.FFprobeBinary)
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNtfyTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
