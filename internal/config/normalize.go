package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTools()
	c.normalizeExtract()
	c.normalizeFetch()
	c.normalizeSync()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.CacheFile) == "" {
		c.Paths.CacheFile = defaultCacheFile
	}
	if c.Paths.CacheFile, err = expandPath(c.Paths.CacheFile); err != nil {
		return fmt.Errorf("paths.cache_file: %w", err)
	}
	c.Paths.BackupDirName = strings.TrimSpace(c.Paths.BackupDirName)
	if c.Paths.BackupDirName == "" {
		c.Paths.BackupDirName = defaultBackupDirName
	}
	return nil
}

func (c *Config) normalizeTools() {
	if strings.TrimSpace(c.Tools.FFprobe) == "" {
		c.Tools.FFprobe = "ffprobe"
	}
	if strings.TrimSpace(c.Tools.FFmpeg) == "" {
		c.Tools.FFmpeg = "ffmpeg"
	}
	if strings.TrimSpace(c.Tools.Alass) == "" {
		c.Tools.Alass = "alass-cli"
	}
	if strings.TrimSpace(c.Tools.SubtitleEdit) == "" {
		c.Tools.SubtitleEdit = "subtitle-edit"
	}
}

func (c *Config) normalizeExtract() {
	c.Extract.Language = strings.TrimSpace(c.Extract.Language)
	if c.Extract.Language == "" {
		c.Extract.Language = defaultExtractLanguage
	}
	if c.Extract.Workers <= 0 {
		c.Extract.Workers = defaultExtractWorkers
	}
}

func (c *Config) normalizeFetch() {
	c.Fetch.Language = strings.TrimSpace(c.Fetch.Language)
	if c.Fetch.Language == "" {
		c.Fetch.Language = defaultFetchLanguage
	}
	c.Fetch.APIKey = strings.TrimSpace(c.Fetch.APIKey)
	c.Fetch.UserToken = strings.TrimSpace(c.Fetch.UserToken)
	if strings.TrimSpace(c.Fetch.UserAgent) == "" {
		c.Fetch.UserAgent = defaultFetchUserAgent
	}
	if strings.TrimSpace(c.Fetch.BaseURL) == "" {
		c.Fetch.BaseURL = defaultFetchBaseURL
	}
}

func (c *Config) normalizeSync() {
	c.Sync.ReferenceLanguage = strings.TrimSpace(c.Sync.ReferenceLanguage)
	if c.Sync.AudioIndex < -1 {
		c.Sync.AudioIndex = -1
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
