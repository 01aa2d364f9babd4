package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	// Clear environment
	os.Clearenv()
	os.Setenv("API_BASE_URL", "https://api.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load returned nil config")
	}
	if cfg.APIBaseURL != "https://api.example.com" {
		t.Errorf("APIBaseURL = %q, want %q", cfg.APIBaseURL, "https://api.example.com")
	}
	if cfg.HTTPTimeout != "30s" {
		t.Errorf("HTTPTimeout = %q, want %q", cfg.HTTPTimeout, "30s")
	}
	if cfg.SessionStore != "file" {
		t.Errorf("SessionStore = %q, want %q", cfg.SessionStore, "file")
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr = %q, want %q", cfg.RedisAddr, "localhost:6379")
	}
	if cfg.RedisKeyPrefix != "adminconsole" {
		t.Errorf("RedisKeyPrefix = %q, want %q", cfg.RedisKeyPrefix, "adminconsole")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.PageSize != 5 {
		t.Errorf("PageSize = %d, want 5", cfg.PageSize)
	}
}

func TestLoad_EnvVarOverride(t *testing.T) {
	os.Clearenv()
	os.Setenv("API_BASE_URL", "https://api.other.example.com/")
	os.Setenv("HTTP_TIMEOUT", "5s")
	os.Setenv("PAGE_SIZE", "25")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBaseURL != "https://api.other.example.com" {
		t.Errorf("APIBaseURL = %q, want trailing slash trimmed", cfg.APIBaseURL)
	}
	if cfg.Timeout() != 5*time.Second {
		t.Errorf("Timeout() = %v, want 5s", cfg.Timeout())
	}
	if cfg.PageSize != 25 {
		t.Errorf("PageSize = %d, want 25", cfg.PageSize)
	}
}

func TestLoad_MissingBaseURL(t *testing.T) {
	os.Clearenv()

	if _, err := Load(); err == nil {
		t.Fatal("Load should fail when API_BASE_URL is unset")
	}
}

func TestLoad_InvalidSessionStore(t *testing.T) {
	os.Clearenv()
	os.Setenv("API_BASE_URL", "https://api.example.com")
	os.Setenv("SESSION_STORE", "etcd")

	if _, err := Load(); err == nil {
		t.Fatal("Load should reject unknown SESSION_STORE")
	}
}

func TestTimeout_Invalid(t *testing.T) {
	cfg := &Config{HTTPTimeout: "not-a-duration"}
	if cfg.Timeout() != 30*time.Second {
		t.Errorf("Timeout() = %v, want 30s fallback", cfg.Timeout())
	}
}
