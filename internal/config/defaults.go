package config

// Defaults returns the default configuration.
func Defaults() *Config {
	return &Config{
		Version: 1,
		Home:    "~/.slip39",
		Splitter: SplitterConfig{
			IterationExponent: 0,
			DefaultGroupCount: 1,
			DefaultThreshold:  1,
			Wordlist:          "",
		},
		Security: SecurityConfig{
			MemoryLock:               true,
			RequirePassphraseConfirm: true,
		},
		Output: OutputConfig{
			DefaultFormat: "auto",
			Color:         "auto",
			Verbose:       false,
		},
		Logging: LoggingConfig{
			Level: "error",
			File:  "~/.slip39/slip39.log",
		},
	}
}
