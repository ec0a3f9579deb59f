package config

import (
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/football-portal/external/footballdata"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ServiceName != "football-portal-api" {
		t.Fatalf("unexpected ServiceName: %q", cfg.ServiceName)
	}
	if cfg.DBDriver != "postgres" {
		t.Fatalf("unexpected DBDriver: %q", cfg.DBDriver)
	}
	if !strings.Contains(cfg.DBURL, "football_portal") {
		t.Fatalf("expected DSN built from parts, got %q", cfg.DBURL)
	}
	if cfg.FootballAPIEnabled {
		t.Fatalf("expected football api disabled by default")
	}
	if cfg.FootballAPITimeout != 30*time.Second {
		t.Fatalf("unexpected FootballAPITimeout: %s", cfg.FootballAPITimeout)
	}
	if cfg.FootballAPITTL != footballdata.DefaultTTLConfig() {
		t.Fatalf("unexpected TTLs: %+v", cfg.FootballAPITTL)
	}
	if cfg.CacheSweepInterval != 10*time.Minute {
		t.Fatalf("unexpected CacheSweepInterval: %s", cfg.CacheSweepInterval)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Fatalf("unexpected SessionTTL: %s", cfg.SessionTTL)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected CORSAllowedOrigins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_FootballAPIRequiresKeyWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("FOOTBALL_API_ENABLED", "true")
	t.Setenv("FOOTBALL_API_KEY", "")

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "FOOTBALL_API_KEY") {
		t.Fatalf("expected missing key error, got %v", err)
	}
}

func TestLoad_FootballAPIConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvStage)
	t.Setenv("FOOTBALL_API_ENABLED", "true")
	t.Setenv("FOOTBALL_API_KEY", "key-123")
	t.Setenv("FOOTBALL_API_TTL_LIVE", "45s")
	t.Setenv("FOOTBALL_API_TTL_STANDINGS", "2h")
	t.Setenv("FOOTBALL_API_WARM_LEAGUES", "39:2026, 140:2026")
	t.Setenv("FOOTBALL_API_CIRCUIT_FAILURE_COUNT", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.FootballAPIKey != "key-123" {
		t.Fatalf("unexpected FootballAPIKey")
	}
	if cfg.FootballAPITTL.Live != 45*time.Second || cfg.FootballAPITTL.Standings != 2*time.Hour {
		t.Fatalf("unexpected TTLs: %+v", cfg.FootballAPITTL)
	}
	if cfg.FootballAPITTL.Match != 300*time.Second {
		t.Fatalf("expected default match TTL, got %s", cfg.FootballAPITTL.Match)
	}
	if len(cfg.FootballAPIWarmTargets) != 2 || cfg.FootballAPIWarmTargets[1].LeagueID != 140 {
		t.Fatalf("unexpected warm targets: %+v", cfg.FootballAPIWarmTargets)
	}
	if cfg.FootballAPICircuit.FailureThreshold != 3 || !cfg.FootballAPICircuit.Enabled {
		t.Fatalf("unexpected circuit config: %+v", cfg.FootballAPICircuit)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unknown driver", key: "DB_DRIVER", value: "mysql"},
		{name: "bad ttl", key: "FOOTBALL_API_TTL_LIVE", value: "soon"},
		{name: "zero ttl", key: "FOOTBALL_API_TTL_MATCH", value: "0s"},
		{name: "negative sweep", key: "CACHE_SWEEP_INTERVAL", value: "-1m"},
		{name: "bad warm target", key: "FOOTBALL_API_WARM_LEAGUES", value: "39"},
		{name: "bad bool", key: "RELAY_ENABLED", value: "maybe"},
		{name: "bad breaker", key: "RELAY_CIRCUIT_HALF_OPEN_MAX_REQ", value: "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestLoad_SweepIntervalZeroDisables(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("CACHE_SWEEP_INTERVAL", "0s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.CacheSweepInterval != 0 {
		t.Fatalf("expected disabled sweep, got %s", cfg.CacheSweepInterval)
	}
}

func TestLoad_SQLiteDriverDefaultsToLocalFile(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if got := cfg.DatabaseConfig(); got.Driver != "sqlite" || got.DSN != "file:football_portal.db" {
		t.Fatalf("unexpected database config: %+v", got)
	}
}

func TestLoad_RelayRequiresTokenWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("RELAY_ENABLED", "true")
	t.Setenv("RELAY_PUBLISH_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when RELAY_ENABLED=true without RELAY_PUBLISH_TOKEN")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestParseUptraceDSNFromOTLPHeaders(t *testing.T) {
	got := parseUptraceDSNFromOTLPHeaders(`foo=bar, uptrace-dsn="https://token@api.uptrace.dev/1"`)
	if got != "https://token@api.uptrace.dev/1" {
		t.Fatalf("unexpected dsn %q", got)
	}
	if parseUptraceDSNFromOTLPHeaders("") != "" {
		t.Fatalf("expected empty dsn for empty headers")
	}
}

func TestLoad_AdminSeedRequiresBothCredentials(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("ADMIN_EMAIL", "admin@example.com")
	t.Setenv("ADMIN_PASSWORD", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when ADMIN_EMAIL is set without ADMIN_PASSWORD")
	}
}
