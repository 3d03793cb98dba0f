package config

const (
	defaultLogDir          = "~/.local/share/subkit/logs"
	defaultCacheFile       = "~/.local/share/subkit/cache/opensubtitles.db"
	defaultBackupDirName   = "old-subtitles"
	defaultExtractLanguage = "eng"
	defaultExtractWorkers  = 1
	defaultFetchLanguage   = "por-BR"
	defaultFetchUserAgent  = "subkit/dev"
	defaultFetchBaseURL    = "https://api.opensubtitles.com/api/v1"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Tools: Tools{
			FFprobe:      "ffprobe",
			FFmpeg:       "ffmpeg",
			Alass:        "alass-cli",
			SubtitleEdit: "subtitle-edit",
		},
		Paths: Paths{
			LogDir:        defaultLogDir,
			CacheFile:     defaultCacheFile,
			BackupDirName: defaultBackupDirName,
		},
		Extract: Extract{
			Language: defaultExtractLanguage,
			Workers:  defaultExtractWorkers,
		},
		Fetch: Fetch{
			Language:  defaultFetchLanguage,
			UserAgent: defaultFetchUserAgent,
			BaseURL:   defaultFetchBaseURL,
		},
		Sync: Sync{
			AudioIndex: -1,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
