package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PPM_CLIENT_ID", "abc")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ClientID != "abc" {
		t.Errorf("ClientID = %q", cfg.ClientID)
	}
	if cfg.Env != "sandbox" {
		t.Errorf("Env = %q, want sandbox default", cfg.Env)
	}
	if cfg.DevTouchpoint || cfg.LogDebug {
		t.Error("bool flags must default to false")
	}
}

func TestLoadRequiresClientID(t *testing.T) {
	t.Setenv("PPM_CLIENT_ID", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when PPM_CLIENT_ID is missing")
	}
}

func TestLoadStageRequiresHost(t *testing.T) {
	t.Setenv("PPM_CLIENT_ID", "abc")
	t.Setenv("PPM_ENV", "stage")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when stage host is missing")
	}

	t.Setenv("PPM_STAGE_HOST", "msmaster.qa.paypal.com")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.StageHost != "msmaster.qa.paypal.com" {
		t.Errorf("StageHost = %q", cfg.StageHost)
	}
}

func TestLoadParsesOptions(t *testing.T) {
	t.Setenv("PPM_CLIENT_ID", "abc")
	t.Setenv("PPM_AMOUNT", "149.99")
	t.Setenv("PPM_REDIS_ADDR", "localhost:6379")
	t.Setenv("PPM_DEV_TOUCHPOINT", "true")
	t.Setenv("PPM_LOG_DEBUG", "not-a-bool")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Amount != "149.99" || cfg.RedisAddr != "localhost:6379" {
		t.Errorf("cfg = %+v", cfg)
	}
	if !cfg.DevTouchpoint {
		t.Error("DevTouchpoint = false, want true")
	}
	if cfg.LogDebug {
		t.Error("unparseable bool must fall back to false")
	}
}
