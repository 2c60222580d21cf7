package presentation

import (
	"sync"

	"github.com/riskibarqy/ftc-team-stats/internal/domain/chart"
	"github.com/riskibarqy/ftc-team-stats/internal/domain/competition"
	"github.com/riskibarqy/ftc-team-stats/internal/platform/logging"
	"github.com/riskibarqy/ftc-team-stats/internal/usecase"
)

const chartUnavailable = "Chart unavailable."

var allPanels = []usecase.Panel{
	usecase.PanelQuickStats,
	usecase.PanelMatches,
	usecase.PanelEvents,
	usecase.PanelAwards,
	usecase.PanelCharts,
}

// Page is the in-memory statistics section. It implements usecase.Presenter
// and is safe for concurrent use.
type Page struct {
	mu     sync.RWMutex
	team   int
	charts ChartRenderer
	logger *logging.Logger

	loading     bool
	unavailable bool
	teamURL     string
	panels      map[usecase.Panel]PanelState

	summary  *competition.SeasonStatsSummary
	matches  []competition.EnrichedMatch
	events   []competition.NormalizedEvent
	awards   []competition.AwardRecord
	chartSet *chart.Set
}

var _ usecase.Presenter = (*Page)(nil)

func NewPage(team int, charts ChartRenderer, logger *logging.Logger) *Page {
	if charts == nil {
		charts = NewChartJSRenderer()
	}
	if logger == nil {
		logger = logging.Default()
	}
	p := &Page{
		team:   team,
		charts: charts,
		logger: logger.Named("presentation"),
		panels: make(map[usecase.Panel]PanelState, len(allPanels)),
	}
	for _, panel := range allPanels {
		p.panels[panel] = PanelPending
	}
	return p
}

func (p *Page) ShowLoading() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = true
}

func (p *Page) HideLoading() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
}

func (p *Page) ShowQuickStats(summary competition.SeasonStatsSummary) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.summary = &summary
	p.panels[usecase.PanelQuickStats] = PanelVisible
}

func (p *Page) ShowMatches(matches []competition.EnrichedMatch) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.matches = append([]competition.EnrichedMatch(nil), matches...)
	p.panels[usecase.PanelMatches] = PanelVisible
}

func (p *Page) ShowEvents(events []competition.NormalizedEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append([]competition.NormalizedEvent(nil), events...)
	p.panels[usecase.PanelEvents] = PanelVisible
}

func (p *Page) ShowAwards(awards []competition.AwardRecord) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.awards = append([]competition.AwardRecord(nil), awards...)
	p.panels[usecase.PanelAwards] = PanelVisible
}

func (p *Page) ShowCharts(set chart.Set) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.chartSet = &set
	p.panels[usecase.PanelCharts] = PanelVisible
}

func (p *Page) HidePanel(panel usecase.Panel) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.panels[panel] = PanelHidden
	switch panel {
	case usecase.PanelQuickStats:
		p.summary = nil
	case usecase.PanelMatches:
		p.matches = nil
	case usecase.PanelEvents:
		p.events = nil
	case usecase.PanelAwards:
		p.awards = nil
	case usecase.PanelCharts:
		p.chartSet = nil
	}
}

func (p *Page) ShowUnavailable(teamURL string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.unavailable = true
	p.teamURL = teamURL
}

// Snapshot returns the current display state as view models.
func (p *Page) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	snap := Snapshot{
		Team:        p.team,
		Loading:     p.loading,
		Unavailable: p.unavailable,
		TeamURL:     p.teamURL,
		Panels:      make(map[string]PanelState, len(p.panels)),
	}
	for panel, state := range p.panels {
		snap.Panels[string(panel)] = state
	}

	if p.summary != nil {
		snap.QuickStats = quickStatsView(*p.summary)
	}
	if len(p.matches) > 0 {
		snap.Matches = make([]MatchView, 0, len(p.matches))
		for _, m := range p.matches {
			snap.Matches = append(snap.Matches, matchView(m))
		}
	}
	if len(p.events) > 0 {
		snap.Events = make([]EventView, 0, len(p.events))
		for _, e := range p.events {
			snap.Events = append(snap.Events, eventView(e))
		}
	}
	if len(p.awards) > 0 {
		snap.Awards = make([]AwardView, 0, len(p.awards))
		for _, a := range p.awards {
			snap.Awards = append(snap.Awards, awardView(a))
		}
	}
	if p.chartSet != nil {
		snap.Charts = p.renderCharts(*p.chartSet)
	}
	return snap
}

func (p *Page) renderCharts(set chart.Set) []ChartView {
	series := set.All()
	out := make([]ChartView, 0, len(series))
	for _, s := range series {
		view, err := p.charts.Render(s)
		if err != nil {
			p.logger.Warn("chart render failed", "chart", s.ID, "error", err)
			view = ChartView{ID: s.ID, Kind: string(s.Kind), Placeholder: chartUnavailable}
		}
		out = append(out, view)
	}
	return out
}
