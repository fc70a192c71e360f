package config

const (
	defaultReportDir    = "~/.local/share/marquee/reports"
	defaultStateDir     = "~/.local/share/marquee"
	defaultLogDir       = "~/.local/share/marquee/logs"
	defaultTMDBLanguage = "en-US"
	defaultTMDBBaseURL  = "https://api.themoviedb.org/3"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
	defaultLogRetention = 60
	defaultNtfyTimeout  = 10
	defaultIgnoreDirs   = `^(featurettes|extras|making[-_\s]?of|behind[ _-]?the[ _-]?scenes|specials)$`
)

func defaultLanguages() []string {
	return []string{"Dual", "Dublado", "English", "Legendado", "Nacional"}
}

func defaultVideoExtensions() []string {
	return []string{
		".mkv", ".mp4", ".avi", ".mov", ".m4v", ".webm",
		".ts", ".flv", ".mpg", ".mpeg", ".wmv", ".m2ts",
	}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ReportDir: defaultReportDir,
			StateDir:  defaultStateDir,
			LogDir:    defaultLogDir,
		},
		TMDB: TMDB{
			Language: defaultTMDBLanguage,
			BaseURL:  defaultTMDBBaseURL,
		},
		Naming: Naming{
			Languages:       defaultLanguages(),
			IgnoreDirs:      defaultIgnoreDirs,
			VideoExtensions: defaultVideoExtensions(),
		},
		Notifications: Notifications{
			RequestTimeout: defaultNtfyTimeout,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetention,
		},
	}
}
