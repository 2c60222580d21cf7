package competition

import (
	"math"
	"sort"
)

const RecentMatchLimit = 10

const (
	quarterfinalMinMatchID = 5000
	semifinalMinMatchID    = 10000
	eliminationMinMatchID  = 20000
)

func winRate(wins, total int) Metric {
	if total <= 0 {
		return Metric{}
	}
	return Known(RoundTo(float64(wins)/float64(total)*100, 1))
}

func RoundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// Aggregate sums per-event records into season totals. Events without
// stats contribute nothing.
func Aggregate(season int, events []NormalizedEvent) SeasonStatsSummary {
	out := SeasonStatsSummary{Season: season, Detailed: true, Source: SourceEventStats}
	for _, event := range events {
		if event.Stats == nil {
			continue
		}
		out.Wins += event.Stats.Wins
		out.Losses += event.Stats.Losses
		out.Ties += event.Stats.Ties
		out.TotalMatches += event.Stats.Wins + event.Stats.Losses + event.Stats.Ties
	}
	return out
}

// SummaryFromMatchCount derives a matches-played-only summary from the raw
// participation list, counting each (event, match) pair once.
func SummaryFromMatchCount(season int, matches []MatchParticipation) SeasonStatsSummary {
	seen := make(map[MatchKey]struct{}, len(matches))
	for _, match := range matches {
		if !match.Counted() {
			continue
		}
		seen[match.Key()] = struct{}{}
	}
	return SeasonStatsSummary{
		Season:       season,
		TotalMatches: len(seen),
		Source:       SourceMatchCount,
	}
}

// PreferSummary picks the event-stats summary unless it has no matches.
func PreferSummary(fromEvents, fromMatches SeasonStatsSummary) SeasonStatsSummary {
	if fromEvents.TotalMatches > 0 {
		return fromEvents
	}
	return fromMatches
}

type Divergence struct {
	EventMatches int
	CountedMatch int
}

// CompareAggregationPaths reports whether both paths have data and disagree
// on the number of matches played.
func CompareAggregationPaths(fromEvents, fromMatches SeasonStatsSummary) (Divergence, bool) {
	d := Divergence{EventMatches: fromEvents.TotalMatches, CountedMatch: fromMatches.TotalMatches}
	if fromEvents.TotalMatches == 0 || fromMatches.TotalMatches == 0 {
		return d, false
	}
	return d, fromEvents.TotalMatches != fromMatches.TotalMatches
}

func ClassifyStage(matchID int) Stage {
	switch {
	case matchID >= eliminationMinMatchID:
		return StageElimination
	case matchID >= semifinalMinMatchID:
		return StageSemifinal
	case matchID >= quarterfinalMinMatchID:
		return StageQuarterfinal
	default:
		return StageQualification
	}
}

func ResolveOutcome(alliance Alliance, result *MatchResult) Outcome {
	if result == nil {
		return OutcomeUnknown
	}
	if result.Winner != "" {
		if alliance == result.Winner {
			return OutcomeWin
		}
		return OutcomeLoss
	}
	if result.RedScore == nil || result.BlueScore == nil {
		return OutcomeUnknown
	}

	red, blue := *result.RedScore, *result.BlueScore
	switch {
	case red == blue:
		return OutcomeTie
	case red > blue:
		if alliance == AllianceRed {
			return OutcomeWin
		}
		return OutcomeLoss
	default:
		if alliance == AllianceBlue {
			return OutcomeWin
		}
		return OutcomeLoss
	}
}

// ResolveOutcomes joins every participation with its result. The input order
// is kept; filtering and capping for display is SelectRecent's job.
func ResolveOutcomes(matches []MatchParticipation, results map[MatchKey]MatchResult) []EnrichedMatch {
	out := make([]EnrichedMatch, 0, len(matches))
	for _, match := range matches {
		item := EnrichedMatch{
			MatchParticipation: match,
			Stage:              ClassifyStage(match.MatchID),
		}
		if result, ok := results[match.Key()]; ok {
			result := result
			item.Result = &result
		}
		item.Outcome = ResolveOutcome(match.Alliance, item.Result)
		out = append(out, item)
	}
	return out
}

// SelectRecent keeps counted matches, newest first by (event code, match id),
// capped at limit. The input slice is not modified.
func SelectRecent(matches []EnrichedMatch, limit int) []EnrichedMatch {
	out := make([]EnrichedMatch, 0, len(matches))
	for _, match := range matches {
		if match.Counted() {
			out = append(out, match)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].EventCode != out[j].EventCode {
			return out[i].EventCode > out[j].EventCode
		}
		return out[i].MatchID > out[j].MatchID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// SortEvents returns a copy ordered by event code.
func SortEvents(events []NormalizedEvent, descending bool) []NormalizedEvent {
	out := make([]NormalizedEvent, len(events))
	copy(out, events)
	sort.SliceStable(out, func(i, j int) bool {
		if descending {
			return out[i].Code > out[j].Code
		}
		return out[i].Code < out[j].Code
	})
	return out
}

// SortAwards orders awards newest first. Awards without a date keep their
// index and the dated ones are sorted around them.
func SortAwards(awards []AwardRecord) []AwardRecord {
	out := make([]AwardRecord, len(awards))
	copy(out, awards)

	slots := make([]int, 0, len(out))
	dated := make([]AwardRecord, 0, len(out))
	for i, award := range out {
		if award.Date != nil {
			slots = append(slots, i)
			dated = append(dated, award)
		}
	}
	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].Date.After(*dated[j].Date)
	})
	for i, slot := range slots {
		out[slot] = dated[i]
	}
	return out
}

// EventCodes returns the distinct event codes in first-seen order.
func EventCodes(matches []MatchParticipation) []string {
	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, 4)
	for _, match := range matches {
		if match.EventCode == "" {
			continue
		}
		if _, ok := seen[match.EventCode]; ok {
			continue
		}
		seen[match.EventCode] = struct{}{}
		out = append(out, match.EventCode)
	}
	return out
}
