package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Sources.SeismicPollInterval != 5*time.Minute {
		t.Errorf("expected 5m seismic poll interval, got %s", cfg.Sources.SeismicPollInterval)
	}
	if cfg.Sources.SeismicMinMagnitude != 2.5 {
		t.Errorf("expected min magnitude 2.5, got %f", cfg.Sources.SeismicMinMagnitude)
	}
	if cfg.OpenAI.Model == "" {
		t.Error("expected a default OpenAI model")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SEISMIC_POLL_INTERVAL", "10m")
	t.Setenv("FLOOD_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Sources.SeismicPollInterval != 10*time.Minute {
		t.Errorf("expected 10m poll interval, got %s", cfg.Sources.SeismicPollInterval)
	}
	if cfg.Sources.FloodEnabled {
		t.Error("expected flood source disabled")
	}
}

func TestLoad_RejectsInvalid(t *testing.T) {
	cases := map[string][2]string{
		"bad port":       {"SERVER_PORT", "70000"},
		"bad log level":  {"LOG_LEVEL", "verbose"},
		"short interval": {"HEAT_POLL_INTERVAL", "5s"},
		"zero window":    {"SEISMIC_WINDOW_DAYS", "0"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			if _, err := Load(); err == nil {
				t.Errorf("expected validation error for %s=%s", kv[0], kv[1])
			}
		})
	}
}
