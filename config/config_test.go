package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.Playback.DwellMs != 3000 {
		t.Errorf("dwell = %d, want 3000", cfg.Playback.DwellMs)
	}
	if cfg.Playback.MinFps != 10 {
		t.Errorf("min fps = %v, want 10", cfg.Playback.MinFps)
	}
	if cfg.Window.Width != 960 || cfg.Window.Height != 720 {
		t.Errorf("window = %dx%d, want 960x720", cfg.Window.Width, cfg.Window.Height)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
window:
  title: Demo
playback:
  dwell_ms: 1500
landmarks:
  bucket: sign-recordings
  prefix: landmarks
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.Window.Title != "Demo" {
		t.Errorf("title = %q, want Demo", cfg.Window.Title)
	}
	if cfg.Playback.DwellMs != 1500 {
		t.Errorf("dwell = %d, want 1500", cfg.Playback.DwellMs)
	}
	// Untouched sections keep their defaults.
	if cfg.Playback.InterItemPauseMs != 300 {
		t.Errorf("inter-item pause = %d, want default 300", cfg.Playback.InterItemPauseMs)
	}
	if cfg.Landmarks.Bucket != "sign-recordings" {
		t.Errorf("bucket = %q", cfg.Landmarks.Bucket)
	}
}

func TestLoadResolvesAPIKeyEnvVar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "translate:\n  api_key: $SIGNPLAY_TEST_KEY\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SIGNPLAY_TEST_KEY", "secret")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.Translate.APIKey != "secret" {
		t.Errorf("api key = %q, want resolved env value", cfg.Translate.APIKey)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
