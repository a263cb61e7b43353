package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigFrom_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfigFrom(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.App.Port)
	}
	if cfg.JWT.AccessExpiry != 15*time.Minute {
		t.Errorf("expected 15m access expiry, got %v", cfg.JWT.AccessExpiry)
	}
	if cfg.Messaging.AlertBroker != BrokerNone {
		t.Errorf("expected broker %q, got %q", BrokerNone, cfg.Messaging.AlertBroker)
	}
}

func TestLoadConfigFrom_FileAndEnvOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "APP_PORT=9000\nDB_NAME=health\nJWT_ACCESS_EXPIRY=30m\nKAFKA_BROKERS=kafka-1:9092, kafka-2:9092\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("DB_NAME", "health_override")
	t.Setenv("ALERT_BROKER", "KAFKA")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://portal.example.org,https://admin.example.org")

	cfg, err := LoadConfigFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Port != "9000" {
		t.Errorf("expected port 9000, got %q", cfg.App.Port)
	}
	if cfg.DB.Name != "health_override" {
		t.Errorf("expected env to win, got %q", cfg.DB.Name)
	}
	if cfg.JWT.AccessExpiry != 30*time.Minute {
		t.Errorf("expected 30m, got %v", cfg.JWT.AccessExpiry)
	}
	if cfg.Messaging.AlertBroker != BrokerKafka {
		t.Errorf("expected kafka broker, got %q", cfg.Messaging.AlertBroker)
	}
	if len(cfg.App.AllowedOrigins) != 2 || cfg.App.AllowedOrigins[0] != "https://portal.example.org" {
		t.Errorf("unexpected origins: %v", cfg.App.AllowedOrigins)
	}
	if len(cfg.Messaging.KafkaBrokers) != 2 || cfg.Messaging.KafkaBrokers[1] != "kafka-2:9092" {
		t.Errorf("unexpected brokers: %v", cfg.Messaging.KafkaBrokers)
	}
}

func TestParseDuration_Fallback(t *testing.T) {
	if got := parseDuration("nonsense", time.Second); got != time.Second {
		t.Errorf("expected fallback, got %v", got)
	}
	if got := parseDuration("-5m", time.Second); got != time.Second {
		t.Errorf("expected fallback for negative, got %v", got)
	}
	if got := parseDuration("2h", time.Second); got != 2*time.Hour {
		t.Errorf("expected 2h, got %v", got)
	}
}

func TestDBConfig_URLEscapesPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: "5432", User: "app", Password: "p@ss word", Name: "health", SSLMode: "disable"}
	want := "postgres://app:p%40ss%20word@db:5432/health?sslmode=disable"
	if got := c.URL(); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}
