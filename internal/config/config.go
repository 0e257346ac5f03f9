package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"server"`

	FFmpeg struct {
		Binary              string `yaml:"binary"`
		TimeoutSeconds      int    `yaml:"timeout_seconds"`
		CheckTimeoutSeconds int    `yaml:"check_timeout_seconds"`
	} `yaml:"ffmpeg"`

	Whisper struct {
		Binary   string `yaml:"binary"`
		Model    string `yaml:"model"`
		Language string `yaml:"language"`
		Threads  int    `yaml:"threads"`
	} `yaml:"whisper"`

	Gemini struct {
		Model  string `yaml:"model"`
		APIKey string `yaml:"api_key"`
	} `yaml:"gemini"`

	Storage struct {
		TempDir string `yaml:"temp_dir"`
	} `yaml:"storage"`

	Cleanup struct {
		IntervalMinutes int `yaml:"interval_minutes"`
		MaxAgeHours     int `yaml:"max_age_hours"`
	} `yaml:"cleanup"`

	Limits struct {
		MaxFileSizeMB int `yaml:"max_file_size_mb"`
	} `yaml:"limits"`

	Watch struct {
		Dir           string `yaml:"dir"`
		SummaryLength string `yaml:"summary_length"`
		SummaryFormat string `yaml:"summary_format"`
	} `yaml:"watch"`

	Logging struct {
		Level string `yaml:"level"`
		Dir   string `yaml:"dir"`
	} `yaml:"logging"`
}

// Load reads and validates configuration from a YAML file.
// The Gemini API key may also come from the GEMINI_API_KEY environment
// variable; the file value wins when both are set.
func Load(path string) (*Config, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(file, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if cfg.Gemini.APIKey == "" {
		cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate applies defaults and rejects unusable values.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Server.Port == 0 {
		c.Server.Port = 3000
	}
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}

	if c.FFmpeg.Binary == "" {
		c.FFmpeg.Binary = "ffmpeg"
	}
	if c.FFmpeg.TimeoutSeconds <= 0 {
		c.FFmpeg.TimeoutSeconds = 300
	}
	if c.FFmpeg.CheckTimeoutSeconds <= 0 {
		c.FFmpeg.CheckTimeoutSeconds = 10
	}

	if c.Whisper.Binary == "" {
		c.Whisper.Binary = "whisper"
	}
	if c.Whisper.Model == "" {
		c.Whisper.Model = "base"
	}
	if c.Whisper.Language == "" {
		c.Whisper.Language = "en"
	}
	if c.Whisper.Threads <= 0 {
		c.Whisper.Threads = 4
	}

	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}

	if c.Storage.TempDir == "" {
		c.Storage.TempDir = "temp"
	}

	if c.Cleanup.IntervalMinutes <= 0 {
		c.Cleanup.IntervalMinutes = 30
	}
	if c.Cleanup.MaxAgeHours <= 0 {
		c.Cleanup.MaxAgeHours = 6
	}

	if c.Limits.MaxFileSizeMB <= 0 {
		c.Limits.MaxFileSizeMB = 500
	}

	if c.Watch.Dir != "" && c.Gemini.APIKey == "" {
		return fmt.Errorf("watch.dir requires gemini.api_key (or GEMINI_API_KEY)")
	}
	if c.Watch.SummaryLength == "" {
		c.Watch.SummaryLength = "very short"
	}
	if c.Watch.SummaryFormat == "" {
		c.Watch.SummaryFormat = "format 1"
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}
