package config

import (
	"context"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type contextKey string

const configKey contextKey = "config"

// Config holds all application configuration
type Config struct {
	// Core settings
	OutputDir   string `yaml:"output_dir"`
	TempDir     string `yaml:"temp_dir"`
	Concurrency int    `yaml:"concurrency"`

	// Scene detection settings
	Scenes SceneConfig `yaml:"scenes"`

	// Speech transcription settings
	Whisper WhisperConfig `yaml:"whisper"`

	// FFmpeg settings
	FFmpeg FFmpegConfig `yaml:"ffmpeg"`

	// Subtitle settings
	Subtitles SubtitleConfig `yaml:"subtitles"`
}

type SceneConfig struct {
	// ChangeThreshold is the mean absolute pixel difference (0-255 scale)
	// above which consecutive frames mark a scene boundary.
	ChangeThreshold float64 `yaml:"change_threshold"`
}

type WhisperConfig struct {
	BinaryPath string `yaml:"binary_path"`
	Model      string `yaml:"model"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
	Threads    int    `yaml:"threads"`
	Preset     string `yaml:"preset"`
}

type SubtitleConfig struct {
	FontName     string `yaml:"font_name"`
	FontSize     int    `yaml:"font_size"`
	OutlineWidth int    `yaml:"outline_width"`
}

// Load reads configuration from file or returns defaults
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path == "" {
		path = findConfigFile()
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes configuration to file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func defaultConfig() *Config {
	return &Config{
		OutputDir:   "./output",
		TempDir:     os.TempDir(),
		Concurrency: 3,
		Scenes: SceneConfig{
			ChangeThreshold: 30.0,
		},
		Whisper: WhisperConfig{
			BinaryPath: "whisper",
			Model:      "base",
		},
		FFmpeg: FFmpegConfig{
			BinaryPath: "ffmpeg",
			Threads:    0,
			Preset:     "medium",
		},
		Subtitles: SubtitleConfig{
			FontName:     "Arial",
			FontSize:     40,
			OutlineWidth: 2,
		},
	}
}

func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		"./config.yml",
		filepath.Join(os.Getenv("HOME"), ".clipforge", "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// WithConfig stores config in context
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext retrieves config from context
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(configKey).(*Config); ok {
		return cfg
	}
	return defaultConfig()
}
