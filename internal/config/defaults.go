package config

var (
	Themes      = []string{"dark", "light"}
	SortColumns = []string{"pid", "status", "path"}
	LogLevels   = []string{"trace", "debug", "info", "warn", "error"}
)

func DefaultConfig() Config {
	return Config{
		Session: SessionConfig{
			WatchIntervalMS:    500,
			OperationTimeoutMS: 2000,
		},
		Display: DisplayConfig{
			Theme:           "dark",
			SortColumn:      "pid",
			FilterCharLimit: 64,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}
