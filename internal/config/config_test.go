package config

import (
	"errors"
	"testing"
	"time"
)

const strongSecret = "0123456789abcdef0123456789abcdef"

func TestLoad_RequiresSessionSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")

	if _, err := Load(); !errors.Is(err, ErrSessionSecret) {
		t.Errorf("got %v, want ErrSessionSecret", err)
	}
}

func TestLoad_RejectsShortSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "too-short")

	if _, err := Load(); !errors.Is(err, ErrSessionSecret) {
		t.Errorf("got %v, want ErrSessionSecret", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", strongSecret)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.ServerPort != "8080" {
		t.Errorf("port: got %q", cfg.ServerPort)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("session ttl: got %v", cfg.SessionTTL)
	}
	if cfg.SessionSecret != strongSecret {
		t.Error("secret not carried into config")
	}
	if cfg.MaxUploadBytes != 10*1024*1024 {
		t.Errorf("max upload: got %d", cfg.MaxUploadBytes)
	}
	if cfg.AllowedOrigins != nil {
		t.Errorf("origins: got %v, want nil (allow-all)", cfg.AllowedOrigins)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SESSION_SECRET", strongSecret)
	t.Setenv("SESSION_TTL_HOURS", "2")
	t.Setenv("UPLOAD_TIMEOUT_SECONDS", "3")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.SessionTTL != 2*time.Hour {
		t.Errorf("session ttl: got %v", cfg.SessionTTL)
	}
	if cfg.UploadTimeout != 3*time.Second {
		t.Errorf("upload timeout: got %v", cfg.UploadTimeout)
	}
	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[0] != want[0] || cfg.AllowedOrigins[1] != want[1] {
		t.Errorf("origins: got %v, want %v", cfg.AllowedOrigins, want)
	}
}
