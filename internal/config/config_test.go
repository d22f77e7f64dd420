// FareLens | 2026
// config_test.go

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

func TestLoadDefaultsWithMemoryBackend(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Provider.Backend != BackendMemory {
		t.Errorf("backend = %q, want %q", cfg.Provider.Backend, BackendMemory)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.RateLimit.SignupPerHour != 5 {
		t.Errorf("signup_per_hour = %d, want 5", cfg.RateLimit.SignupPerHour)
	}
	if cfg.JWT.Issuer != "farelens" {
		t.Errorf("issuer = %q, want farelens", cfg.JWT.Issuer)
	}
}

func TestLoadFailsWithoutJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(""); err == nil {
		t.Error("expected error when JWT_SECRET is unset")
	}
}

func TestPostgresBackendRequiresDatabaseURL(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PROVIDER_BACKEND", "postgres")

	if _, err := Load(""); err == nil {
		t.Error("expected error for postgres backend without DATABASE_URL")
	}

	t.Setenv("DATABASE_URL", "postgres://localhost:5432/farelens")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Provider.Backend != BackendPostgres {
		t.Errorf("backend = %q, want %q", cfg.Provider.Backend, BackendPostgres)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PROVIDER_BACKEND", "cassandra")

	if _, err := Load(""); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestConfigFileOverridesDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	path := writeConfigFile(t, `
server:
  port: 9090
log:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Log.Level)
	}
}

func TestEnvOverridesConfigFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "7070")

	path := writeConfigFile(t, `
server:
  port: 9090
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("port = %d, want env override 7070", cfg.Server.Port)
	}
}
