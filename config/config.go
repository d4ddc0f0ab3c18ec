// Package config loads the application configuration from YAML, with
// defaults matching the tuned playback behavior.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

// Config is the full application configuration.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Playback  PlaybackConfig  `yaml:"playback"`
	Landmarks LandmarksConfig `yaml:"landmarks"`
	Translate TranslateConfig `yaml:"translate"`
	Live      LiveConfig      `yaml:"live"`
}

// WindowConfig configures the display window.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// PlaybackConfig holds the playback timing constants, all in milliseconds
// except the rates and counts.
type PlaybackConfig struct {
	DwellMs           int     `yaml:"dwell_ms"`
	InterItemPauseMs  int     `yaml:"inter_item_pause_ms"`
	TextPauseMs       int     `yaml:"text_pause_ms"`
	LoopPauseMs       int     `yaml:"loop_pause_ms"`
	MinFps            float64 `yaml:"min_fps"`
	EarlyBlankSamples int     `yaml:"early_blank_samples"`
	BlankStreakLimit  int     `yaml:"blank_streak_limit"`
}

// LandmarksConfig configures where landmark recordings come from and how
// they are cached.
type LandmarksConfig struct {
	// BaseURL is the HTTP landmark service; used when Bucket is empty.
	BaseURL string `yaml:"base_url"`

	// Bucket and Prefix select S3-hosted recordings instead of HTTP.
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
	Region string `yaml:"region"`

	// CacheDir is the on-disk cache location ("" disables caching).
	CacheDir string `yaml:"cache_dir"`

	// AssetBaseURL prefixes reference clip URLs in render plans.
	AssetBaseURL string `yaml:"asset_base_url"`
}

// TranslateConfig configures the text-to-gloss translator.
type TranslateConfig struct {
	Model string `yaml:"model"`

	// APIKey may name an environment variable as "$VAR"; it is resolved at
	// load time. Empty leaves the translator in mock mode.
	APIKey string `yaml:"api_key"`

	VocabPath   string `yaml:"vocab_path"`
	AliasesPath string `yaml:"aliases_path"`
}

// LiveConfig configures the live frame feed server.
type LiveConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the configuration used when no file is given.
//
// Returns:
//   - Config: the default configuration
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "Sign Playback",
			Width:  960,
			Height: 720,
		},
		Playback: PlaybackConfig{
			DwellMs:           3000,
			InterItemPauseMs:  300,
			TextPauseMs:       500,
			LoopPauseMs:       300,
			MinFps:            10,
			EarlyBlankSamples: 5,
			BlankStreakLimit:  10,
		},
		Landmarks: LandmarksConfig{
			BaseURL: "http://localhost:8000",
			Region:  "ap-southeast-1",
		},
		Translate: TranslateConfig{
			Model:  "gemini-2.0-flash",
			APIKey: "$GEMINI_API_KEY",
		},
		Live: LiveConfig{
			Addr: ":8765",
		},
	}
}

// Load reads a YAML config file over the defaults. A missing path returns
// the defaults unchanged.
//
// Parameters:
//   - path: the config file path ("" = defaults)
//
// Returns:
//   - Config: the merged configuration
//   - error: an error if the file exists but cannot be parsed
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.Translate.APIKey = resolveEnv(cfg.Translate.APIKey)
	return cfg, nil
}

// resolveEnv expands "$VAR" values from the environment.
func resolveEnv(v string) string {
	if strings.HasPrefix(v, "$") {
		return os.Getenv(strings.TrimPrefix(v, "$"))
	}
	return v
}
