// ABOUTME: YAML configuration file for the LTCSync tools
// ABOUTME: Holds defaults for input, decoder, monitor and broadcast settings
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/ltcsync/ltcsync-go/pkg/ltc"
)

const (
	// DefaultBaseDir is the configuration directory under the home directory
	DefaultBaseDir = ".ltcsync"
	// DefaultConfigFile is the configuration filename
	DefaultConfigFile = "config.yaml"
)

// Config represents the configuration file
type Config struct {
	Input     InputConfig     `yaml:"input"`
	Decoder   DecoderConfig   `yaml:"decoder"`
	Monitor   MonitorConfig   `yaml:"monitor"`
	Broadcast BroadcastConfig `yaml:"broadcast"`

	// LogFile receives a copy of all logs
	LogFile string `yaml:"log_file,omitempty"`

	path string
}

// InputConfig describes headerless input
type InputConfig struct {
	// Format is the raw sample format: u8, s16le, s24le or f32le
	Format     string `yaml:"format"`
	SampleRate int    `yaml:"sample_rate"`
	Channels   int    `yaml:"channels"`

	// Channel is the zero based channel carrying LTC
	Channel int `yaml:"channel"`

	// FFmpeg decodes every input through ffmpeg
	FFmpeg bool `yaml:"ffmpeg,omitempty"`

	// Realtime paces file input to its sample rate
	Realtime bool `yaml:"realtime,omitempty"`
}

// DecoderConfig configures the LTC decoder
type DecoderConfig struct {
	FPS             float64 `yaml:"fps"`
	Standard        string  `yaml:"standard,omitempty"`
	SamplesPerFrame int     `yaml:"samples_per_frame,omitempty"`
	QueueSize       int     `yaml:"queue_size"`

	// Date is "off", "on" or "auto"
	Date string `yaml:"date"`
}

// MonitorConfig configures monitor playback
type MonitorConfig struct {
	Enabled    bool `yaml:"enabled"`
	Volume     int  `yaml:"volume"`
	SampleRate int  `yaml:"sample_rate,omitempty"`
}

// BroadcastConfig configures the websocket broadcast
type BroadcastConfig struct {
	Enabled bool   `yaml:"enabled"`
	Port    int    `yaml:"port"`
	Name    string `yaml:"name,omitempty"`
	MDNS    bool   `yaml:"mdns"`
}

// Default returns the built in configuration
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Format:     "u8",
			SampleRate: 48000,
			Channels:   1,
		},
		Decoder: DecoderConfig{
			FPS:       25,
			QueueSize: 32,
			Date:      "off",
		},
		Monitor: MonitorConfig{
			Volume: 80,
		},
		Broadcast: BroadcastConfig{
			Port: 8927,
			MDNS: true,
		},
		LogFile: "ltcsync.log",
	}
}

// DefaultPath returns ~/.ltcsync/config.yaml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, DefaultBaseDir, DefaultConfigFile), nil
}

// Load reads the configuration at path, or the default path when path is
// empty. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}

	cfg := Default()
	cfg.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.path = path

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration, creating its directory if needed
func (c *Config) Save() error {
	if c.path == "" {
		path, err := DefaultPath()
		if err != nil {
			return err
		}
		c.path = path
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Path returns the config file path
func (c *Config) Path() string {
	return c.path
}

// SetPath changes where Save writes
func (c *Config) SetPath(path string) {
	c.path = path
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.Decoder.FPS <= 0 {
		return fmt.Errorf("decoder.fps must be positive, got %v", c.Decoder.FPS)
	}
	if c.Decoder.QueueSize < 1 {
		return fmt.Errorf("decoder.queue_size must be at least 1, got %d", c.Decoder.QueueSize)
	}
	if c.Decoder.Standard != "" {
		if _, err := ltc.ParseStandard(c.Decoder.Standard); err != nil {
			return err
		}
	}
	if _, err := c.Decoder.Flags(); err != nil {
		return err
	}
	if c.Input.SampleRate <= 0 || c.Input.Channels <= 0 {
		return fmt.Errorf("input needs a positive sample_rate and channels")
	}
	if c.Input.Channel < 0 || c.Input.Channel >= c.Input.Channels {
		return fmt.Errorf("input.channel %d out of range (channels: %d)", c.Input.Channel, c.Input.Channels)
	}
	if c.Monitor.Volume < 0 || c.Monitor.Volume > 100 {
		return fmt.Errorf("monitor.volume must be 0-100, got %d", c.Monitor.Volume)
	}
	if c.Broadcast.Port < 0 || c.Broadcast.Port > 65535 {
		return fmt.Errorf("broadcast.port out of range: %d", c.Broadcast.Port)
	}
	return nil
}

// Flags maps the date setting to decoder flags
func (d DecoderConfig) Flags() (ltc.Flags, error) {
	switch d.Date {
	case "", "off":
		return 0, nil
	case "on":
		return ltc.UseDate, nil
	case "auto":
		return ltc.AutoDate, nil
	default:
		return 0, fmt.Errorf("decoder.date must be off, on or auto, got %q", d.Date)
	}
}
