package chart

import (
	"reflect"
	"testing"

	"github.com/riskibarqy/ftc-team-stats/internal/domain/competition"
)

func event(code, name string, wins, losses, ties int) competition.NormalizedEvent {
	stats := competition.NewEventStats(wins, losses, ties)
	return competition.NormalizedEvent{Code: code, Name: name, Stats: &stats}
}

func TestBuild_EmptyEventsUsePlaceholders(t *testing.T) {
	t.Parallel()

	set := Build(competition.Aggregate(2025, nil), nil)
	for _, series := range set.All() {
		if !series.Empty() {
			t.Fatalf("expected placeholder for %s", series.ID)
		}
		if len(series.Data) != 0 {
			t.Fatalf("expected no data for %s, got %v", series.ID, series.Data)
		}
	}
	if set.WinRate.Placeholder != PlaceholderWinRate || set.Progress.Placeholder != PlaceholderProgress {
		t.Fatalf("unexpected placeholders: %q %q", set.WinRate.Placeholder, set.Progress.Placeholder)
	}
}

func TestDistribution_UsesSummaryRecord(t *testing.T) {
	t.Parallel()

	summary := competition.SeasonStatsSummary{Wins: 5, Losses: 3, Ties: 1, TotalMatches: 9, Detailed: true}
	got := Distribution(summary)
	if got.Kind != KindDonut || got.Empty() {
		t.Fatalf("unexpected distribution: %+v", got)
	}
	if !reflect.DeepEqual(got.Data, []float64{5, 3, 1}) {
		t.Fatalf("unexpected data: %v", got.Data)
	}

	matchCountOnly := competition.SeasonStatsSummary{TotalMatches: 9, Source: competition.SourceMatchCount}
	if !Distribution(matchCountOnly).Empty() {
		t.Fatalf("expected placeholder without win/loss detail")
	}
}

func TestEventWinRates_TopFiveByCodeDescending(t *testing.T) {
	t.Parallel()

	events := []competition.NormalizedEvent{
		event("E1", "Arizona League Meet One", 3, 1, 0),
		event("E2", "Short", 2, 2, 1),
		event("E3", "", 0, 0, 0),
		event("E4", "Unknown Event", 1, 2, 0),
		event("E5", "Qualifier", 4, 0, 0),
		event("E6", "Championship", 1, 1, 0),
		{Code: "E0", Name: "No stats"},
	}

	got := EventWinRates(events)
	wantLabels := []string{"Championship", "Qualifier", "E4", "E3", "Short"}
	if !reflect.DeepEqual(got.Labels, wantLabels) {
		t.Fatalf("unexpected labels: got=%v want=%v", got.Labels, wantLabels)
	}
	wantData := []float64{50, 100, 33.3, 0, 40}
	if !reflect.DeepEqual(got.Data, wantData) {
		t.Fatalf("unexpected data: got=%v want=%v", got.Data, wantData)
	}
}

func TestEventWinRates_TruncatesLongNames(t *testing.T) {
	t.Parallel()

	got := EventWinRates([]competition.NormalizedEvent{event("E1", "Arizona League Meet One", 3, 1, 0)})
	if got.Labels[0] != "Arizona League Meet ..." {
		t.Fatalf("unexpected label: %q", got.Labels[0])
	}
	if got.Data[0] != 75 {
		t.Fatalf("unexpected rate: %v", got.Data[0])
	}
}

func TestCumulativeWins_RunsInCodeOrder(t *testing.T) {
	t.Parallel()

	events := []competition.NormalizedEvent{
		event("B", "Second Event With Long Name", 2, 1, 0),
		event("A", "First", 3, 0, 0),
		{Code: "C", Name: "Unknown Event"},
	}

	got := CumulativeWins(events)
	if !reflect.DeepEqual(got.Data, []float64{3, 5, 5}) {
		t.Fatalf("unexpected cumulative data: %v", got.Data)
	}
	wantLabels := []string{"E1: First", "E2: Second Event Wi...", "Event 3"}
	if !reflect.DeepEqual(got.Labels, wantLabels) {
		t.Fatalf("unexpected labels: got=%v want=%v", got.Labels, wantLabels)
	}
}
