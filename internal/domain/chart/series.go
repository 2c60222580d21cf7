package chart

import (
	"strconv"

	"github.com/riskibarqy/ftc-team-stats/internal/domain/competition"
)

type Kind string

const (
	KindDonut Kind = "donut"
	KindBar   Kind = "bar"
	KindLine  Kind = "line"
)

const (
	IDDistribution = "winLossChart"
	IDWinRate      = "eventPerformanceChart"
	IDProgress     = "seasonProgressChart"
)

const (
	PlaceholderDistribution = "No match results available yet."
	PlaceholderWinRate      = "No event performance data available yet."
	PlaceholderProgress     = "No season progress data available yet."
)

const (
	maxWinRateEvents   = 5
	winRateLabelLimit  = 20
	progressLabelLimit = 15
	unknownEventName   = "Unknown Event"
)

const (
	colorWin       = "#22c55e"
	colorLoss      = "#ef4444"
	colorTie       = "#f59e0b"
	colorPrimary   = "#dc2626"
	colorPrimaryDk = "#b91c1c"
	colorFill      = "rgba(220, 38, 38, 0.1)"
)

// Style carries the renderer options for one dataset.
type Style struct {
	DatasetLabel     string   `json:"datasetLabel"`
	BackgroundColors []string `json:"backgroundColors,omitempty"`
	BorderColor      string   `json:"borderColor,omitempty"`
	BorderWidth      int      `json:"borderWidth,omitempty"`
	Fill             bool     `json:"fill,omitempty"`
	Tension          float64  `json:"tension,omitempty"`
	YMax             float64  `json:"yMax,omitempty"`
	ValueSuffix      string   `json:"valueSuffix,omitempty"`
	ShowLegend       bool     `json:"showLegend"`
}

// Series is one chart. When Placeholder is set the chart has no data and
// the placeholder text is shown instead.
type Series struct {
	ID          string    `json:"id"`
	Kind        Kind      `json:"kind"`
	Labels      []string  `json:"labels"`
	Data        []float64 `json:"data"`
	Style       Style     `json:"style"`
	Placeholder string    `json:"placeholder,omitempty"`
}

func (s Series) Empty() bool {
	return s.Placeholder != ""
}

type Set struct {
	Distribution Series `json:"distribution"`
	WinRate      Series `json:"winRate"`
	Progress     Series `json:"progress"`
}

func (s Set) All() []Series {
	return []Series{s.Distribution, s.WinRate, s.Progress}
}

// Build derives all three charts. Events come from the cached collection of
// the current load.
func Build(summary competition.SeasonStatsSummary, events []competition.NormalizedEvent) Set {
	return Set{
		Distribution: Distribution(summary),
		WinRate:      EventWinRates(events),
		Progress:     CumulativeWins(events),
	}
}

func Distribution(summary competition.SeasonStatsSummary) Series {
	out := Series{
		ID:     IDDistribution,
		Kind:   KindDonut,
		Labels: []string{"Wins", "Losses", "Ties"},
		Style: Style{
			DatasetLabel:     "Match Results",
			BackgroundColors: []string{colorWin, colorLoss, colorTie},
			BorderWidth:      0,
			ShowLegend:       true,
		},
	}
	if !summary.Detailed || summary.TotalMatches == 0 {
		out.Labels = nil
		out.Placeholder = PlaceholderDistribution
		return out
	}
	out.Data = []float64{float64(summary.Wins), float64(summary.Losses), float64(summary.Ties)}
	return out
}

func EventWinRates(events []competition.NormalizedEvent) Series {
	out := Series{
		ID:   IDWinRate,
		Kind: KindBar,
		Style: Style{
			DatasetLabel:     "Win Rate (%)",
			BackgroundColors: []string{colorPrimary},
			BorderColor:      colorPrimaryDk,
			BorderWidth:      1,
			YMax:             100,
			ValueSuffix:      "%",
		},
	}
	if len(events) == 0 {
		out.Placeholder = PlaceholderWinRate
		return out
	}

	sorted := competition.SortEvents(events, true)
	if len(sorted) > maxWinRateEvents {
		sorted = sorted[:maxWinRateEvents]
	}

	out.Labels = make([]string, 0, len(sorted))
	out.Data = make([]float64, 0, len(sorted))
	for _, event := range sorted {
		out.Labels = append(out.Labels, winRateLabel(event))
		rate := 0.0
		if event.Stats != nil && event.Stats.QualMatchesPlayed > 0 {
			rate = event.Stats.WinRate().Value
		}
		out.Data = append(out.Data, rate)
	}
	return out
}

func CumulativeWins(events []competition.NormalizedEvent) Series {
	out := Series{
		ID:   IDProgress,
		Kind: KindLine,
		Style: Style{
			DatasetLabel:     "Cumulative Wins",
			BackgroundColors: []string{colorFill},
			BorderColor:      colorPrimary,
			BorderWidth:      2,
			Fill:             true,
			Tension:          0.4,
			ShowLegend:       true,
		},
	}
	if len(events) == 0 {
		out.Placeholder = PlaceholderProgress
		return out
	}

	sorted := competition.SortEvents(events, false)
	out.Labels = make([]string, 0, len(sorted))
	out.Data = make([]float64, 0, len(sorted))
	running := 0
	for i, event := range sorted {
		if event.Stats != nil {
			running += event.Stats.Wins
		}
		out.Labels = append(out.Labels, progressLabel(i, event))
		out.Data = append(out.Data, float64(running))
	}
	return out
}

func winRateLabel(event competition.NormalizedEvent) string {
	if hasDisplayName(event) {
		return truncate(event.Name, winRateLabelLimit)
	}
	if event.Code != "" {
		return event.Code
	}
	return "Event"
}

func progressLabel(index int, event competition.NormalizedEvent) string {
	n := strconv.Itoa(index + 1)
	if hasDisplayName(event) {
		return "E" + n + ": " + truncate(event.Name, progressLabelLimit)
	}
	return "Event " + n
}

func hasDisplayName(event competition.NormalizedEvent) bool {
	return event.Name != "" && event.Name != unknownEventName
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
