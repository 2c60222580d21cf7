package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/ftc-team-stats/internal/domain/chart"
	"github.com/riskibarqy/ftc-team-stats/internal/domain/competition"
)

// CompetitionProvider is the typed read side of the upstream stats API.
type CompetitionProvider interface {
	TeamEvents(ctx context.Context, teamNumber, season int) ([]competition.NormalizedEvent, error)
	TeamMatches(ctx context.Context, teamNumber, season int) ([]competition.MatchParticipation, error)
	EventMatchResults(ctx context.Context, season int, eventCode string) ([]competition.MatchResult, error)
	TeamAwards(ctx context.Context, teamNumber, season int) ([]competition.AwardRecord, error)
}

type Panel string

const (
	PanelQuickStats Panel = "quick-stats"
	PanelMatches    Panel = "matches"
	PanelEvents     Panel = "events"
	PanelAwards     Panel = "awards"
	PanelCharts     Panel = "charts"
)

// DataPanels are the panels whose visibility suppresses the unavailable
// banner. Charts are derived and do not count.
var DataPanels = []Panel{PanelQuickStats, PanelMatches, PanelEvents, PanelAwards}

// Presenter is the output surface a load writes into. Each Show call makes
// its panel visible; HidePanel leaves it hidden.
type Presenter interface {
	ShowLoading()
	HideLoading()
	ShowQuickStats(summary competition.SeasonStatsSummary)
	ShowMatches(matches []competition.EnrichedMatch)
	ShowEvents(events []competition.NormalizedEvent)
	ShowAwards(awards []competition.AwardRecord)
	ShowCharts(set chart.Set)
	HidePanel(panel Panel)
	ShowUnavailable(teamURL string)
}

// LoadObserver receives load telemetry. *observability.Metrics satisfies it.
type LoadObserver interface {
	ObserveSeasonFallback(task string)
	ObservePanel(panel, state string)
	ObserveLoad(elapsed time.Duration, timedOut bool)
	ObserveAggregationDivergence()
}

type nopLoadObserver struct{}

func (nopLoadObserver) ObserveSeasonFallback(string) {}
func (nopLoadObserver) ObservePanel(string, string) {}
func (nopLoadObserver) ObserveLoad(time.Duration, bool) {}
func (nopLoadObserver) ObserveAggregationDivergence() {}
