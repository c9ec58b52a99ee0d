package config

import "time"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:          8080,
		DataDir:       "data",
		SiteName:      "Emprendimientos Estudiantiles",
		FeaturedCount: 6,
		LogLevel:      "info",
		LogFormat:     LogFormatText,
		Poll: PollConfig{
			Endpoint:       "http://localhost:8080/api/stats",
			Interval:       10 * time.Second,
			TweenDuration:  time.Second,
			FrameInterval:  16 * time.Millisecond,
			RequestTimeout: 5 * time.Second,
		},
		Feed: FeedConfig{
			Quiet: 2 * time.Second,
		},
	}
}
