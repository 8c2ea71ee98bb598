package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if !cfg.IsDevelopment() {
		t.Fatal("expected development mode by default")
	}
	if cfg.Misskey.URL != "https://key.tpc3.org" {
		t.Fatalf("unexpected default Misskey URL %q", cfg.Misskey.URL)
	}
	if cfg.Misskey.Timeout != 30*time.Second {
		t.Fatalf("unexpected default timeout %v", cfg.Misskey.Timeout)
	}
	if cfg.Ad.Place != "horizontal" {
		t.Fatalf("unexpected default place %q", cfg.Ad.Place)
	}
	if !cfg.Ad.ReuploadImage {
		t.Fatal("expected reupload enabled by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("MISSKEY_URL", "https://misskey.example.com/")
	t.Setenv("MISSKEY_TIMEOUT", "5s")
	t.Setenv("AD_PLACE", "vertical")
	t.Setenv("AD_REUPLOAD_IMAGE", "false")

	cfg := Load()

	if cfg.Port != "9000" {
		t.Fatalf("expected port 9000, got %q", cfg.Port)
	}
	if cfg.Misskey.URL != "https://misskey.example.com/" {
		t.Fatalf("unexpected Misskey URL %q", cfg.Misskey.URL)
	}
	if cfg.Misskey.Timeout != 5*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.Misskey.Timeout)
	}
	if cfg.Ad.Place != "vertical" {
		t.Fatalf("unexpected place %q", cfg.Ad.Place)
	}
	if cfg.Ad.ReuploadImage {
		t.Fatal("expected reupload disabled")
	}
}

func TestLoadBadTimeoutFallsBack(t *testing.T) {
	t.Setenv("MISSKEY_TIMEOUT", "soon")

	cfg := Load()

	if cfg.Misskey.Timeout != 30*time.Second {
		t.Fatalf("expected fallback timeout, got %v", cfg.Misskey.Timeout)
	}
}

func TestProductionRequiresSecrets(t *testing.T) {
	t.Setenv("ENV", "production")

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on missing production secrets")
		}
	}()
	Load()
}
