package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 8080 || cfg.FPS != 60 || cfg.Frames != 12 {
		t.Fatalf("defaults = %+v", cfg)
	}
	if cfg.TokenTTL != 24*time.Hour || !cfg.SampleWorld {
		t.Fatalf("defaults = %+v", cfg)
	}
	if cfg.AssetDir != "./data/libraries" {
		t.Fatalf("asset dir = %q", cfg.AssetDir)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("FPS", "30")
	t.Setenv("FRAMES", "24")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("SAMPLE_WORLD", "false")
	t.Setenv("TEMPLATE_FILE", "/tmp/templates.json")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 9090 || cfg.FPS != 30 || cfg.Frames != 24 || cfg.TokenTTL != time.Hour {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.SampleWorld || cfg.TemplateFile != "/tmp/templates.json" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.TickInterval() != time.Second/30 {
		t.Fatalf("tick = %v", cfg.TickInterval())
	}
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("FPS", "fast")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-numeric FPS")
	}
}

func TestOrigins(t *testing.T) {
	cfg := &Config{AllowedOrigins: " localhost:5173, ,example.com "}
	want := []string{"localhost:5173", "example.com"}
	if got := cfg.Origins(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Origins = %v, want %v", got, want)
	}
}

func TestTickIntervalFallback(t *testing.T) {
	cfg := &Config{FPS: 0}
	if cfg.TickInterval() != time.Second/60 {
		t.Fatalf("tick = %v", cfg.TickInterval())
	}
}
