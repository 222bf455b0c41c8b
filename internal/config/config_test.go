package config

import (
	"os"
	"path/filepath"
	"testing"
)

func validConfig() Config {
	return Config{
		HTTP: HTTPConfig{Port: 8080},
		Postgres: PostgresConfig{
			DSN: "postgres://localhost:5432/iyisiniye",
		},
		Cache: CacheConfig{
			Addrs: []string{"localhost:6379"},
		},
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingDSN(t *testing.T) {
	cfg := validConfig()
	cfg.Postgres.DSN = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing postgres dsn")
	}
}

func TestValidate_MissingCacheAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Cache.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing cache addrs")
	}
}

func TestValidate_OK(t *testing.T) {
	cfg := validConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Postgres.MaxConns != 10 {
		t.Errorf("expected MaxConns=10, got %d", cfg.Postgres.MaxConns)
	}
	if cfg.Postgres.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Postgres.ReadinessTimeout)
	}
	if cfg.Cache.KeyPrefix != "iyisiniye:" {
		t.Errorf("expected KeyPrefix='iyisiniye:', got %q", cfg.Cache.KeyPrefix)
	}
	if cfg.Cache.SearchTTLSec != 300 {
		t.Errorf("expected SearchTTLSec=300, got %d", cfg.Cache.SearchTTLSec)
	}
	if cfg.Cache.DetailTTLSec != 900 {
		t.Errorf("expected DetailTTLSec=900, got %d", cfg.Cache.DetailTTLSec)
	}
	if cfg.Cache.SuggestTTLSec != 3600 {
		t.Errorf("expected SuggestTTLSec=3600, got %d", cfg.Cache.SuggestTTLSec)
	}
	if cfg.Search.SuggestLimit != 10 {
		t.Errorf("expected SuggestLimit=10, got %d", cfg.Search.SuggestLimit)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Postgres: PostgresConfig{MaxConns: 25, ReadinessTimeout: 15},
		Cache:    CacheConfig{KeyPrefix: "custom:", SearchTTLSec: 60, DetailTTLSec: 120, SuggestTTLSec: 600},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Postgres.MaxConns != 25 {
		t.Errorf("expected MaxConns=25, got %d", cfg.Postgres.MaxConns)
	}
	if cfg.Cache.KeyPrefix != "custom:" {
		t.Errorf("expected KeyPrefix='custom:', got %q", cfg.Cache.KeyPrefix)
	}
	if cfg.Cache.SearchTTLSec != 60 {
		t.Errorf("expected SearchTTLSec=60, got %d", cfg.Cache.SearchTTLSec)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("IYISINIYE_TEST_DSN", "postgres://db:5432/prod")

	in := []byte("dsn: ${IYISINIYE_TEST_DSN}\nprefix: ${IYISINIYE_TEST_MISSING:-iyisiniye:}\n")
	out := string(expandEnvVars(in))

	if out != "dsn: postgres://db:5432/prod\nprefix: iyisiniye:\n" {
		t.Errorf("unexpected expansion:\n%s", out)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	content := `
http:
  port: 9090
postgres:
  dsn: postgres://localhost:5432/iyisiniye
cache:
  addrs: ["localhost:6379"]
  search_ttl_sec: 120
`
	if err := os.MkdirAll(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config", "test.yaml"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.HTTP.Port)
	}
	if cfg.Cache.SearchTTLSec != 120 {
		t.Errorf("search ttl = %d, want 120 from file", cfg.Cache.SearchTTLSec)
	}
	if cfg.Cache.DetailTTLSec != 900 {
		t.Errorf("detail ttl = %d, want defaulted 900", cfg.Cache.DetailTTLSec)
	}
}
