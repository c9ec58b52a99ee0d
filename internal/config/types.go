package config

import "time"

// LogFormat selects the slog handler.
type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

// Config is the top-level vitrina configuration, corresponding to .vitrina.yml.
type Config struct {
	Port            int        `yaml:"port" koanf:"port"`
	DataDir         string     `yaml:"data_dir" koanf:"data_dir"`
	SiteName        string     `yaml:"site_name" koanf:"site_name"`
	AllowAllOrigins bool       `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	FeaturedCount   int        `yaml:"featured_count" koanf:"featured_count"`
	LogLevel        string     `yaml:"log_level" koanf:"log_level"`
	LogFormat       LogFormat  `yaml:"log_format" koanf:"log_format"`
	Poll            PollConfig `yaml:"poll" koanf:"poll"`
	Feed            FeedConfig `yaml:"feed" koanf:"feed"`

	// ActivityRetention prunes journal entries older than this at server
	// start. Zero keeps everything.
	ActivityRetention time.Duration `yaml:"activity_retention" koanf:"activity_retention"`
}

// PollConfig controls the stats poller used by `vitrina watch`.
type PollConfig struct {
	Endpoint       string        `yaml:"endpoint" koanf:"endpoint"`
	Interval       time.Duration `yaml:"interval" koanf:"interval"`
	TweenDuration  time.Duration `yaml:"tween_duration" koanf:"tween_duration"`
	FrameInterval  time.Duration `yaml:"frame_interval" koanf:"frame_interval"`
	RequestTimeout time.Duration `yaml:"request_timeout" koanf:"request_timeout"`
}

// FeedConfig controls the /ws/stats push feed.
type FeedConfig struct {
	// Quiet is how long the store must see no writes before the feed
	// recomputes and pushes the counters.
	Quiet time.Duration `yaml:"quiet" koanf:"quiet"`
}
