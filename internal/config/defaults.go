package config

const (
	defaultConfigPath   = "~/.config/subrename/config.toml"
	projectConfigName   = "subrename.toml"
	defaultStateDir     = "~/.local/share/subrename"
	defaultLogDir       = "~/.local/share/subrename/logs"
	defaultHistoryFile  = "history.db"
	lockFileName        = "subrename.lock"
	defaultPolicy       = "exact"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
	defaultHistoryState = true
)

var (
	defaultMovieExtensions    = []string{"mkv", "mp4"}
	defaultSubtitleExtensions = []string{"srt"}
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Media: Media{
			MovieExtensions:    append([]string(nil), defaultMovieExtensions...),
			SubtitleExtensions: append([]string(nil), defaultSubtitleExtensions...),
		},
		Matching: Matching{
			Policy: defaultPolicy,
		},
		History: History{
			Enabled: defaultHistoryState,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
