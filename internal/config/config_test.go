package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want development", cfg.Env)
	}
	if cfg.JWTTTL != 60 {
		t.Errorf("JWTTTL = %d, want 60", cfg.JWTTTL)
	}
}

func TestLoad_ProductionRequiresSecrets(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("POSTGRES_PASSWORD", "real-password")

	// APP_SECRET still at the dev default — must be rejected.
	if _, err := Load(); err == nil {
		t.Fatal("Load accepted dev APP_SECRET in production")
	}

	t.Setenv("APP_SECRET", "prod-secret")
	t.Setenv("JWT_SECRET", "prod-jwt")
	t.Setenv("SUPER_ADMIN_PASSWORD", "prod-admin-pass")
	if _, err := Load(); err != nil {
		t.Fatalf("Load with full production secrets: %v", err)
	}
}

func TestDSNAndAddr(t *testing.T) {
	cfg := &Config{
		Host: "127.0.0.1", Port: "9000",
		DBUser: "u", DBPassword: "p", DBHost: "db", DBPort: "5432", DBName: "nexus",
		RedisHost: "cache", RedisPort: "6379",
	}
	if got := cfg.DSN(); got != "postgres://u:p@db:5432/nexus?sslmode=disable" {
		t.Errorf("DSN = %q", got)
	}
	if got := cfg.Addr(); got != "127.0.0.1:9000" {
		t.Errorf("Addr = %q", got)
	}
	if got := cfg.RedisAddr(); got != "cache:6379" {
		t.Errorf("RedisAddr = %q", got)
	}
}
