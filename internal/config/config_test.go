package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("FTC_TEAM_NUMBER", "")
	t.Setenv("FTC_SEASON", "")
	t.Setenv("FTCSCOUT_GRAPHQL_URL", "")
	t.Setenv("FTCSCOUT_TRANSPORT", "")
	t.Setenv("STATS_LOAD_TIMEOUT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.TeamNumber != 23954 {
		t.Fatalf("unexpected team number: %d", cfg.TeamNumber)
	}
	if cfg.Season != 0 {
		t.Fatalf("expected season 0 to mean current year, got %d", cfg.Season)
	}
	if cfg.FTCScoutGraphQLURL != "https://api.ftcscout.org/graphql" {
		t.Fatalf("unexpected graphql url: %s", cfg.FTCScoutGraphQLURL)
	}
	if cfg.FTCScoutTransport != TransportHTTP {
		t.Fatalf("unexpected transport: %s", cfg.FTCScoutTransport)
	}
	if cfg.StatsLoadTimeout != 10*time.Second {
		t.Fatalf("unexpected load timeout: %s", cfg.StatsLoadTimeout)
	}
	if got := cfg.TeamPageURL(); got != "https://ftcscout.org/teams/23954" {
		t.Fatalf("unexpected team page url: %s", got)
	}
}

func TestLoad_TeamAndSeasonOverrides(t *testing.T) {
	t.Setenv("APP_ENV", EnvStage)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("FTC_TEAM_NUMBER", "16236")
	t.Setenv("FTC_SEASON", "2024")
	t.Setenv("FTCSCOUT_TRANSPORT", "FastHTTP")
	t.Setenv("STATS_MATCH_RESULT_WORKERS", "8")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.TeamNumber != 16236 || cfg.Season != 2024 {
		t.Fatalf("unexpected team/season: %d/%d", cfg.TeamNumber, cfg.Season)
	}
	if cfg.FTCScoutTransport != TransportFastHTTP {
		t.Fatalf("unexpected transport: %s", cfg.FTCScoutTransport)
	}
	if cfg.StatsMatchResultWorkers != 8 {
		t.Fatalf("unexpected worker count: %d", cfg.StatsMatchResultWorkers)
	}
}

func TestLoad_Validation(t *testing.T) {
	cases := map[string]map[string]string{
		"team number must be positive":  {"FTC_TEAM_NUMBER": "-1"},
		"season must not be negative":   {"FTC_SEASON": "-2024"},
		"transport must be known":       {"FTCSCOUT_TRANSPORT": "grpc"},
		"timeout must parse":            {"FTCSCOUT_TIMEOUT": "soon"},
		"load timeout must be positive": {"STATS_LOAD_TIMEOUT": "0s"},
		"workers must be positive":      {"STATS_MATCH_RESULT_WORKERS": "0"},
		"team url needs placeholder":    {"FTCSCOUT_TEAM_URL": "https://ftcscout.org/teams"},
		"graphql url must be absolute":  {"FTCSCOUT_GRAPHQL_URL": "ftcscout"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv("UPTRACE_ENABLED", "false")
			for key, value := range env {
				t.Setenv(key, value)
			}
			if _, err := Load(); err == nil {
				t.Fatalf("expected validation error for %v", env)
			}
		})
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

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `foo=bar, uptrace-dsn="https://token@api.uptrace.dev/1"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev/1" {
		t.Fatalf("unexpected dsn: %q", cfg.UptraceDSN)
	}
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestParseLogLevel(t *testing.T) {
	if parseLogLevel("WARNING").String() != "warn" {
		t.Fatalf("expected warn level")
	}
	if parseLogLevel("bogus").String() != "info" {
		t.Fatalf("expected info fallback")
	}
}
