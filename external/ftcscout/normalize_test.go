package ftcscout

import (
	"encoding/json"
	"testing"

	"github.com/riskibarqy/ftc-team-stats/internal/domain/competition"
)

func TestNormalizeEvents_ProjectsSeasonVariants(t *testing.T) {
	t.Parallel()

	data := json.RawMessage(`{
		"teamByNumber": {
			"name": "Robo Lions",
			"number": 23954,
			"events": [
				{
					"eventCode": "USCAFFQ1",
					"event": {"code": "USCAFFQ1", "name": "Fresno Qualifier", "start": "2025-01-11"},
					"stats": {
						"__typename": "TeamEventStats2025",
						"wins": 4, "losses": 1, "ties": 1,
						"rank": 3, "rp": 2.4, "tb1": 88.5,
						"tot": {"totalPoints": 912, "totalPointsNp": 880},
						"opr": {"totalPoints": 101.2, "totalPointsNp": null}
					}
				},
				{
					"eventCode": "USRMT",
					"event": {"code": "USRMT", "name": "", "start": "bad date"},
					"stats": {"__typename": "TeamEventStats2021Remote", "rank": 12, "tot": {"totalPoints": 300}}
				},
				{
					"eventCode": "USCAFFM",
					"event": null,
					"stats": null
				}
			]
		}
	}`)

	events, err := NormalizeEvents(data)
	if err != nil {
		t.Fatalf("normalize events: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("unexpected event count: got=%d want=3", len(events))
	}

	first := events[0]
	if first.Code != "USCAFFQ1" || first.Name != "Fresno Qualifier" {
		t.Fatalf("unexpected first event identity: %+v", first)
	}
	if first.Date == nil || first.Date.Format("2006-01-02") != "2025-01-11" {
		t.Fatalf("unexpected first event date: %v", first.Date)
	}
	if first.Stats == nil || first.Stats.QualMatchesPlayed != 6 {
		t.Fatalf("expected qualMatchesPlayed recomputed to 6, got %+v", first.Stats)
	}
	if first.Stats.RankingPoints.String() != "2.4" || first.Stats.TieBreaker.Fixed(1) != "88.5" {
		t.Fatalf("unexpected pass-through metrics: rp=%s tb1=%s", first.Stats.RankingPoints, first.Stats.TieBreaker)
	}
	if first.Stats.Total.Preferred().Value != 880 {
		t.Fatalf("expected non-penalty total to be preferred, got %v", first.Stats.Total.Preferred())
	}
	if first.Stats.OPR.TotalPointsNp.Known {
		t.Fatalf("null opr np should stay unknown")
	}
	if first.Stats.Min.Known() {
		t.Fatalf("absent min group should stay unknown")
	}

	remote := events[1]
	if remote.Name != unknownEventName || remote.Date != nil {
		t.Fatalf("unexpected remote defaults: %+v", remote)
	}
	if remote.Stats == nil || remote.Stats.Rank.Value != 12 || remote.HasStats() {
		t.Fatalf("unexpected remote stats: %+v", remote.Stats)
	}

	bare := events[2]
	if bare.Code != "USCAFFM" || bare.Stats != nil {
		t.Fatalf("expected nil stats for missing fragment, got %+v", bare)
	}
}

func TestNormalizeEvents_UnknownVariantUsesCommonFields(t *testing.T) {
	t.Parallel()

	data := json.RawMessage(`{"teamByNumber":{"events":[{"eventCode":"X","stats":{"__typename":"TeamEventStats2030","wins":2,"losses":2,"ties":0}}]}}`)
	events, err := NormalizeEvents(data)
	if err != nil {
		t.Fatalf("normalize events: %v", err)
	}
	if events[0].Stats == nil || events[0].Stats.Record() != "2-2-0" || events[0].Stats.QualMatchesPlayed != 4 {
		t.Fatalf("unexpected fallback stats: %+v", events[0].Stats)
	}
}

func TestNormalizeEvents_PartialData(t *testing.T) {
	t.Parallel()

	cases := []json.RawMessage{
		json.RawMessage(`{"teamByNumber":null}`),
		json.RawMessage(`null`),
		json.RawMessage(`{"teamByNumber":[]}`),
	}
	for _, data := range cases {
		if _, err := NormalizeEvents(data); !IsKind(err, KindPartialData) {
			t.Fatalf("expected partial data for %s, got %v", data, err)
		}
	}
}

func TestNormalizeMatches(t *testing.T) {
	t.Parallel()

	data := json.RawMessage(`{"teamByNumber":{"matches":[
		{"matchId":12,"eventCode":"E1","alliance":"Red","station":"One","allianceRole":"Captain","onField":true,"surrogate":false,"dq":false,"noShow":false},
		{"matchId":5001,"eventCode":"E1","alliance":"blue","station":2,"allianceRole":"FirstPick","onField":false,"surrogate":false,"dq":true,"noShow":true},
		{"matchId":3,"eventCode":"E2","alliance":"Red","station":null,"surrogate":true}
	]}}`)

	matches, err := NormalizeMatches(data)
	if err != nil {
		t.Fatalf("normalize matches: %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("unexpected match count: got=%d want=3", len(matches))
	}
	if matches[0].Alliance != competition.AllianceRed || matches[0].Station != "One" || matches[0].Role != "Captain" {
		t.Fatalf("unexpected first match: %+v", matches[0])
	}
	if matches[1].Alliance != competition.AllianceBlue || matches[1].Station != "2" || !matches[1].DQ || !matches[1].NoShow {
		t.Fatalf("unexpected second match: %+v", matches[1])
	}
	if matches[1].Counted() {
		t.Fatalf("off-field match must not be counted")
	}
	if matches[2].OnField != nil || matches[2].Station != "" || matches[2].Counted() {
		t.Fatalf("unexpected surrogate match: %+v", matches[2])
	}
}

func TestNormalizeMatchResults(t *testing.T) {
	t.Parallel()

	data := json.RawMessage(`{"event":{"code":"E1","matches":[
		{"matchId":1,"redScore":10,"blueScore":20,"winner":"Blue","startTime":"2025-01-11T15:04:05.000Z"},
		{"matchId":2,"redScore":30,"blueScore":30,"winner":"Tie","startTime":null},
		{"matchId":3,"redScore":null,"blueScore":null}
	]}}`)

	results, err := NormalizeMatchResults(data)
	if err != nil {
		t.Fatalf("normalize match results: %v", err)
	}
	if results[0].Winner != competition.AllianceBlue || results[0].StartTime == nil || *results[0].BlueScore != 20 {
		t.Fatalf("unexpected first result: %+v", results[0])
	}
	if results[1].Winner != "" {
		t.Fatalf("tie winner should normalize to no alliance, got %q", results[1].Winner)
	}
	if results[2].RedScore != nil || results[2].BlueScore != nil {
		t.Fatalf("null scores should stay nil: %+v", results[2])
	}

	if _, err := NormalizeMatchResults(json.RawMessage(`{"event":null}`)); !IsKind(err, KindPartialData) {
		t.Fatalf("expected partial data for missing event, got %v", err)
	}
}

func TestNormalizeAwards_ToleratesMissingEvent(t *testing.T) {
	t.Parallel()

	data := json.RawMessage(`{"teamByNumber":{"awards":[
		{"name":"Inspire Award","event":{"code":"E1","name":"League Tournament","start":"2025-02-01"}},
		{"name":"","event":null}
	]}}`)

	awards, err := NormalizeAwards(data)
	if err != nil {
		t.Fatalf("normalize awards: %v", err)
	}
	if awards[0].Name != "Inspire Award" || awards[0].EventCode != "E1" || awards[0].DateLabel() != "Feb 1, 2025" {
		t.Fatalf("unexpected first award: %+v", awards[0])
	}
	if awards[1].Name != defaultAwardName || awards[1].EventName != unknownEventName || awards[1].EventCode != "" {
		t.Fatalf("unexpected defaults: %+v", awards[1])
	}
	if awards[1].DateLabel() != "TBD" {
		t.Fatalf("missing date should render TBD, got %s", awards[1].DateLabel())
	}
}

func TestNormalizeAwards_EmptyListIsNotAnError(t *testing.T) {
	t.Parallel()

	awards, err := NormalizeAwards(json.RawMessage(`{"teamByNumber":{"awards":[]}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(awards) != 0 {
		t.Fatalf("expected no awards, got=%d", len(awards))
	}
}
