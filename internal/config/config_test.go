package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.GitHub.BaseURL != "https://api.github.com" {
		t.Errorf("unexpected base URL %q", cfg.GitHub.BaseURL)
	}
	if cfg.GitHub.PerPage != 100 || cfg.GitHub.MaxPages != 100 {
		t.Errorf("unexpected pagination defaults: per_page=%d max_pages=%d",
			cfg.GitHub.PerPage, cfg.GitHub.MaxPages)
	}
	if cfg.GitHub.MaxRetries != 3 {
		t.Errorf("unexpected retry default %d", cfg.GitHub.MaxRetries)
	}
	if cfg.GitHub.AggregateTimeout != 30*time.Second {
		t.Errorf("unexpected aggregate timeout %v", cfg.GitHub.AggregateTimeout)
	}
	if cfg.GetServerAddress() != "0.0.0.0:8080" {
		t.Errorf("unexpected server address %q", cfg.GetServerAddress())
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GITHUB_API_BASE_URL", "https://github.example.com/api/v3")
	t.Setenv("GITHUB_MAX_PAGES", "7")
	t.Setenv("GITHUB_AGGREGATE_TIMEOUT", "45s")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.GitHub.BaseURL != "https://github.example.com/api/v3" {
		t.Errorf("unexpected base URL %q", cfg.GitHub.BaseURL)
	}
	if cfg.GitHub.MaxPages != 7 {
		t.Errorf("unexpected max pages %d", cfg.GitHub.MaxPages)
	}
	if cfg.GitHub.AggregateTimeout != 45*time.Second {
		t.Errorf("unexpected aggregate timeout %v", cfg.GitHub.AggregateTimeout)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("unexpected port %q", cfg.Server.Port)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"per_page too large", "GITHUB_PER_PAGE", "250"},
		{"per_page zero", "GITHUB_PER_PAGE", "0"},
		{"max_pages zero", "GITHUB_MAX_PAGES", "0"},
		{"negative retries", "GITHUB_MAX_RETRIES", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("expected validation error for %s=%s", tt.key, tt.value)
			}
		})
	}
}
