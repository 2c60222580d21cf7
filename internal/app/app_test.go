package app

import (
	"testing"
	"time"

	"github.com/riskibarqy/ftc-team-stats/internal/config"
	"github.com/riskibarqy/ftc-team-stats/internal/platform/logging"
)

func testConfig() config.Config {
	return config.Config{
		AppEnv:                     config.EnvDev,
		ServiceName:                "ftc-team-stats",
		HTTPAddr:                   ":0",
		CORSAllowedOrigins:         []string{"*"},
		TeamNumber:                 23954,
		Season:                     2024,
		FTCScoutGraphQLURL:         "http://127.0.0.1:1/graphql",
		FTCScoutTeamURL:            "https://ftcscout.org/teams/%d",
		FTCScoutTimeout:            time.Second,
		FTCScoutTransport:          config.TransportHTTP,
		FTCScoutCircuitEnabled:     true,
		FTCScoutCircuitFailures:    5,
		FTCScoutCircuitOpenTimeout: time.Second,
		FTCScoutCircuitHalfOpenMax: 1,
		StatsLoadTimeout:           time.Second,
		StatsMatchResultWorkers:    2,
	}
}

func TestNewComponents_WiresTeamAndMetrics(t *testing.T) {
	cfg := testConfig()
	cfg.MetricsEnabled = true

	components, err := NewComponents(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if components.Team.Number != 23954 || components.Team.CurrentSeason != 2024 {
		t.Fatalf("unexpected team: %+v", components.Team)
	}
	if components.Metrics == nil {
		t.Fatalf("expected metrics when enabled")
	}
	if got := components.Stats.TeamPageURL(); got != "https://ftcscout.org/teams/23954" {
		t.Fatalf("unexpected team page url: got=%s", got)
	}
}

func TestNewComponents_MetricsDisabled(t *testing.T) {
	components, err := NewComponents(testConfig(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if components.Metrics != nil {
		t.Fatalf("expected no metrics when disabled")
	}
}

func TestNewHTTPServer_RequiresAddr(t *testing.T) {
	cfg := testConfig()
	cfg.HTTPAddr = ""

	if _, err := NewHTTPServer(cfg, nil); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}
