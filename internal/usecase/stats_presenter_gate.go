package usecase

import (
	"sync"

	"github.com/riskibarqy/ftc-team-stats/internal/domain/chart"
	"github.com/riskibarqy/ftc-team-stats/internal/domain/competition"
)

// gatedPresenter serialises writes into a Presenter and drops every write
// after finish, so tasks that outlive the load cannot touch the output.
type gatedPresenter struct {
	mu      sync.Mutex
	inner   Presenter
	closed  bool
	visible map[Panel]bool
}

func newGatedPresenter(inner Presenter) *gatedPresenter {
	return &gatedPresenter{inner: inner, visible: make(map[Panel]bool, 5)}
}

func (g *gatedPresenter) do(panel Panel, visible bool, fn func()) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return false
	}
	fn()
	if panel != "" {
		g.visible[panel] = visible
	}
	return true
}

func (g *gatedPresenter) ShowLoading() {
	g.do("", false, g.inner.ShowLoading)
}

func (g *gatedPresenter) ShowQuickStats(summary competition.SeasonStatsSummary) bool {
	return g.do(PanelQuickStats, true, func() { g.inner.ShowQuickStats(summary) })
}

func (g *gatedPresenter) ShowMatches(matches []competition.EnrichedMatch) bool {
	return g.do(PanelMatches, true, func() { g.inner.ShowMatches(matches) })
}

func (g *gatedPresenter) ShowEvents(events []competition.NormalizedEvent) bool {
	return g.do(PanelEvents, true, func() { g.inner.ShowEvents(events) })
}

func (g *gatedPresenter) ShowAwards(awards []competition.AwardRecord) bool {
	return g.do(PanelAwards, true, func() { g.inner.ShowAwards(awards) })
}

func (g *gatedPresenter) ShowCharts(set chart.Set) bool {
	return g.do(PanelCharts, true, func() { g.inner.ShowCharts(set) })
}

func (g *gatedPresenter) HidePanel(panel Panel) bool {
	return g.do(panel, false, func() { g.inner.HidePanel(panel) })
}

// finish clears the loading indicator, shows the unavailable banner when no
// data panel is visible, and closes the gate. It reports whether the banner
// was shown.
func (g *gatedPresenter) finish(teamURL string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return false
	}
	g.closed = true

	g.inner.HideLoading()
	for _, panel := range DataPanels {
		if g.visible[panel] {
			return false
		}
	}
	g.inner.ShowUnavailable(teamURL)
	return true
}
