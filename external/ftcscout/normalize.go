package ftcscout

import (
	"encoding/json"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/ftc-team-stats/internal/domain/competition"
)

const (
	unknownEventName = "Unknown Event"
	defaultAwardName = "Award"
)

// statsAdapter projects one TeamEventStats variant onto the canonical stats.
type statsAdapter func(statsPayload) competition.EventStats

var statsAdapters = map[string]statsAdapter{
	"TeamEventStats2025":       traditionalStats,
	"TeamEventStats2024":       traditionalStats,
	"TeamEventStats2023":       traditionalStats,
	"TeamEventStats2022":       traditionalStats,
	"TeamEventStats2021Remote": remoteStats,
}

// NormalizeEvents decodes a TeamEvents payload.
func NormalizeEvents(data json.RawMessage) ([]competition.NormalizedEvent, error) {
	var payload teamEventsData
	if err := decodeData("TeamEvents", data, &payload); err != nil {
		return nil, err
	}
	if payload.TeamByNumber == nil {
		return nil, partialDataError("TeamEvents", "teamByNumber")
	}

	out := make([]competition.NormalizedEvent, 0, len(payload.TeamByNumber.Events))
	for _, item := range payload.TeamByNumber.Events {
		out = append(out, normalizeEvent(item))
	}
	return out, nil
}

func normalizeEvent(item eventParticipationPayload) competition.NormalizedEvent {
	event := competition.NormalizedEvent{
		Code: strings.TrimSpace(item.EventCode),
		Name: unknownEventName,
	}
	if item.Event != nil {
		if code := strings.TrimSpace(item.Event.Code); code != "" {
			event.Code = code
		}
		if name := strings.TrimSpace(item.Event.Name); name != "" {
			event.Name = name
		}
		event.Date = parseProviderDateTime(item.Event.Start)
	}
	if item.Stats != nil {
		stats := adapterFor(item.Stats.TypeName)(*item.Stats)
		event.Stats = &stats
	}
	return event
}

// adapterFor falls back to the traditional projection, which reads only
// fields every variant shares with it.
func adapterFor(typeName string) statsAdapter {
	if adapter, ok := statsAdapters[strings.TrimSpace(typeName)]; ok {
		return adapter
	}
	return traditionalStats
}

func traditionalStats(p statsPayload) competition.EventStats {
	stats := competition.EventStats{
		Wins:          intValue(p.Wins),
		Losses:        intValue(p.Losses),
		Ties:          intValue(p.Ties),
		Rank:          metric(p.Rank),
		RankingPoints: metric(p.RP),
		TieBreaker:    metric(p.TB1),
		Total:         scoreSummary(p.Tot),
		Average:       scoreSummary(p.Avg),
		OPR:           scoreSummary(p.OPR),
		Min:           scoreSummary(p.Min),
		Max:           scoreSummary(p.Max),
	}
	stats.Recompute()
	return stats
}

// remoteStats covers remote-play seasons, which have no head-to-head record.
func remoteStats(p statsPayload) competition.EventStats {
	stats := competition.EventStats{
		Rank:    metric(p.Rank),
		Total:   scoreSummary(p.Tot),
		Average: scoreSummary(p.Avg),
	}
	stats.Recompute()
	return stats
}

// NormalizeMatches decodes a TeamMatches payload.
func NormalizeMatches(data json.RawMessage) ([]competition.MatchParticipation, error) {
	var payload teamMatchesData
	if err := decodeData("TeamMatches", data, &payload); err != nil {
		return nil, err
	}
	if payload.TeamByNumber == nil {
		return nil, partialDataError("TeamMatches", "teamByNumber")
	}

	out := make([]competition.MatchParticipation, 0, len(payload.TeamByNumber.Matches))
	for _, item := range payload.TeamByNumber.Matches {
		out = append(out, competition.MatchParticipation{
			MatchID:   item.MatchID,
			EventCode: strings.TrimSpace(item.EventCode),
			Alliance:  parseAlliance(item.Alliance),
			Station:   strings.TrimSpace(string(item.Station)),
			Role:      strings.TrimSpace(item.AllianceRole),
			OnField:   item.OnField,
			Surrogate: item.Surrogate,
			DQ:        item.DQ,
			NoShow:    item.NoShow,
		})
	}
	return out, nil
}

// NormalizeMatchResults decodes an EventMatches payload.
func NormalizeMatchResults(data json.RawMessage) ([]competition.MatchResult, error) {
	var payload eventMatchesData
	if err := decodeData("EventMatches", data, &payload); err != nil {
		return nil, err
	}
	if payload.Event == nil {
		return nil, partialDataError("EventMatches", "event")
	}

	out := make([]competition.MatchResult, 0, len(payload.Event.Matches))
	for _, item := range payload.Event.Matches {
		result := competition.MatchResult{
			MatchID:   item.MatchID,
			RedScore:  item.RedScore,
			BlueScore: item.BlueScore,
		}
		if item.Winner != nil {
			result.Winner = parseAlliance(*item.Winner)
		}
		if item.StartTime != nil {
			result.StartTime = parseProviderDateTime(*item.StartTime)
		}
		out = append(out, result)
	}
	return out, nil
}

// NormalizeAwards decodes a TeamAwards payload. An award is dated by its
// event's start date.
func NormalizeAwards(data json.RawMessage) ([]competition.AwardRecord, error) {
	var payload teamAwardsData
	if err := decodeData("TeamAwards", data, &payload); err != nil {
		return nil, err
	}
	if payload.TeamByNumber == nil {
		return nil, partialDataError("TeamAwards", "teamByNumber")
	}

	out := make([]competition.AwardRecord, 0, len(payload.TeamByNumber.Awards))
	for _, item := range payload.TeamByNumber.Awards {
		award := competition.AwardRecord{
			Name:      firstNonEmpty(item.Name, defaultAwardName),
			EventName: unknownEventName,
		}
		if item.Event != nil {
			award.EventName = firstNonEmpty(item.Event.Name, unknownEventName)
			award.EventCode = strings.TrimSpace(item.Event.Code)
			award.Date = parseProviderDateTime(item.Event.Start)
		}
		out = append(out, award)
	}
	return out, nil
}

func decodeData(operation string, data json.RawMessage, out any) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return partialDataError(operation, "data")
	}
	if err := sonic.Unmarshal(data, out); err != nil {
		qe := partialDataError(operation, "a decodable data object")
		qe.cause = err
		return qe
	}
	return nil
}

// parseAlliance maps anything other than Red or Blue (e.g. "Tie") to no
// alliance.
func parseAlliance(raw string) competition.Alliance {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "red":
		return competition.AllianceRed
	case "blue":
		return competition.AllianceBlue
	default:
		return ""
	}
}

func parseProviderDateTime(raw string) *time.Time {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}

	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			v := parsed.UTC()
			return &v
		}
	}
	return nil
}

func metric(v *float64) competition.Metric {
	if v == nil {
		return competition.Metric{}
	}
	return competition.Known(*v)
}

func scoreSummary(p *scoreGroupPayload) competition.ScoreSummary {
	if p == nil {
		return competition.ScoreSummary{}
	}
	return competition.ScoreSummary{
		TotalPoints:   metric(p.TotalPoints),
		TotalPointsNp: metric(p.TotalPointsNp),
	}
}

func intValue(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
