package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testYAML = `
server:
  port: ":9090"
db:
  host: "db.local"
  port: 5433
  user: "app"
  password: "pw"
  name: "boards"
redis:
  addr: "cache.local:6379"
mq:
  url: ""
jwt:
  secret: "s3cret"
list_cache_ttl_seconds: 10
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return path
}

func TestLoadReadsYAML(t *testing.T) {
	cfg, err := Load(writeConfig(t, testYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != ":9090" {
		t.Fatalf("unexpected port: %q", cfg.Server.Port)
	}
	if cfg.DB.Host != "db.local" || cfg.DB.Port != 5433 {
		t.Fatalf("unexpected db config: %+v", cfg.DB)
	}
	if cfg.Redis.Addr != "cache.local:6379" {
		t.Fatalf("unexpected redis config: %+v", cfg.Redis)
	}
	if cfg.JWT.Secret != "s3cret" {
		t.Fatalf("unexpected jwt config: %+v", cfg.JWT)
	}
	if cfg.ListCacheTTL() != 10*time.Second {
		t.Fatalf("unexpected ttl: %v", cfg.ListCacheTTL())
	}
}

func TestEnvOverridesWin(t *testing.T) {
	t.Setenv("DB_HOST", "override.local")
	t.Setenv("DB_PORT", "6000")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("SERVER_PORT", ":7070")

	cfg, err := Load(writeConfig(t, testYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DB.Host != "override.local" || cfg.DB.Port != 6000 {
		t.Fatalf("env override ignored: %+v", cfg.DB)
	}
	if cfg.JWT.Secret != "env-secret" {
		t.Fatalf("env override ignored: %+v", cfg.JWT)
	}
	if cfg.Server.Port != ":7070" {
		t.Fatalf("env override ignored: %q", cfg.Server.Port)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "db:\n  host: \"x\"\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != ":8080" {
		t.Fatalf("expected default port, got %q", cfg.Server.Port)
	}
	if cfg.ListCacheTTLSeconds != 30 {
		t.Fatalf("expected default ttl, got %d", cfg.ListCacheTTLSeconds)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error")
	}
}
