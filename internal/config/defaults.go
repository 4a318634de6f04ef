package config

const (
	defaultStateDir          = "~/.local/share/teamreel"
	defaultLogDir            = "~/.local/share/teamreel/logs"
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
	defaultVideosSheet       = "Videos"
	defaultTaskHeader        = "TASK"
	defaultPlaceholderMarker = "TEAM VIDEO PLACEHOLDER"
	defaultMatchMarker       = "RANKING MATCH"
	defaultBoothKeyColumn    = "Q"
	defaultBoothScriptColumn = "T"
	defaultFuzzyThreshold    = 0.70
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Workbook: Workbook{
			VideosSheet:       defaultVideosSheet,
			TaskHeader:        defaultTaskHeader,
			PlaceholderMarker: defaultPlaceholderMarker,
			MatchMarker:       defaultMatchMarker,
			BoothKeyColumn:    defaultBoothKeyColumn,
			BoothScriptColumn: defaultBoothScriptColumn,
		},
		Matching: Matching{
			FuzzyThreshold: defaultFuzzyThreshold,
		},
		History: History{
			Enabled: true,
		},
	}
}
