package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("env: dev\nbackend:\n  base_url: http://stub\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	conf, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if conf.Env != "dev" {
		t.Fatalf("unexpected env: %q", conf.Env)
	}
	if conf.Backend.Timeout != 15*time.Second {
		t.Fatalf("unexpected timeout: %v", conf.Backend.Timeout)
	}
	if conf.Defaults.CounsellorSchool != 69 || conf.Defaults.TestimonialCategory != 44 {
		t.Fatalf("unexpected defaults: %+v", conf.Defaults)
	}
	if conf.MediaURL() != CodingCloudOrigin {
		t.Fatalf("media origin should default to %s, got %q", CodingCloudOrigin, conf.MediaURL())
	}

	origins := conf.ResourceOrigins()
	for _, name := range []string{"banner", "course", "testimonial"} {
		if origins[name] != CodingCloudOrigin {
			t.Fatalf("%s should default to %s, got %q", name, CodingCloudOrigin, origins[name])
		}
	}
	for _, name := range []string{"bed", "counsellor"} {
		if _, ok := origins[name]; ok {
			t.Fatalf("%s should use the base url", name)
		}
	}
}

func TestResourceOriginOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	body := "backend:\n  base_url: http://api\n  origins:\n    Banner: https://banners.example\n    course: \"\"\n    bed: https://beds.example\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	conf, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	origins := conf.ResourceOrigins()
	want := map[string]string{
		"banner":      "https://banners.example",
		"bed":         "https://beds.example",
		"testimonial": CodingCloudOrigin,
	}
	if len(origins) != len(want) {
		t.Fatalf("unexpected origins: %v", origins)
	}
	for name, origin := range want {
		if origins[name] != origin {
			t.Fatalf("%s: want %q, got %q", name, origin, origins[name])
		}
	}
}

func TestMediaURLFallsBackToBaseURL(t *testing.T) {
	conf := &Config{}
	conf.Backend.BaseURL = "http://api"
	if conf.MediaURL() != "http://api" {
		t.Fatalf("unexpected media url: %q", conf.MediaURL())
	}
}

func TestMediaOriginOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	body := "backend:\n  base_url: http://api\n  media_origin: https://cdn\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	conf, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if conf.MediaURL() != "https://cdn" {
		t.Fatalf("unexpected media origin: %q", conf.MediaURL())
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("BACKEND_URL", "http://from-env")
	t.Setenv("ENV", "prod")

	conf, err := FromEnv()
	if err != nil {
		t.Fatalf("from env: %v", err)
	}
	if conf.Backend.BaseURL != "http://from-env" || conf.Env != "prod" {
		t.Fatalf("environment should win: %+v", conf)
	}
	if conf.Listen.Port != "9100" || conf.Defaults.TestimonialCategory != 44 {
		t.Fatalf("defaults should be applied: %+v", conf)
	}
}
