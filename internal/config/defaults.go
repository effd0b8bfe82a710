package config

const (
	defaultDataDir = "~/.local/share/playerlink"

	defaultLogFormat = "console"
	defaultLogLevel  = "info"

	defaultAutoAccept         = 85
	defaultReviewLow          = 75
	defaultPositionMin        = 75
	defaultPositionUnknownMin = 80
	defaultQuickMaxCandidates = 1000
	defaultFullMaxCandidates  = 5000
	defaultTokenCeiling       = 100000
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
		},
		Matching: Matching{
			AutoAccept:         defaultAutoAccept,
			ReviewLow:          defaultReviewLow,
			PositionMin:        defaultPositionMin,
			PositionUnknownMin: defaultPositionUnknownMin,
			QuickMaxCandidates: defaultQuickMaxCandidates,
			FullMaxCandidates:  defaultFullMaxCandidates,
			TokenCeiling:       defaultTokenCeiling,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
