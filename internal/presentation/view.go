package presentation

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/riskibarqy/ftc-team-stats/internal/domain/competition"
)

const (
	noValue        = "--"
	unknownLabel   = "Unknown"
	matchDateShape = "Jan 2, 2006"
)

type PanelState string

const (
	PanelPending PanelState = "pending"
	PanelVisible PanelState = "visible"
	PanelHidden  PanelState = "hidden"
)

// Snapshot is the display state of the statistics section at one instant.
type Snapshot struct {
	Team        int                   `json:"team"`
	Loading     bool                  `json:"loading"`
	Unavailable bool                  `json:"unavailable"`
	TeamURL     string                `json:"teamUrl,omitempty"`
	Panels      map[string]PanelState `json:"panels"`
	QuickStats  *QuickStatsView       `json:"quickStats,omitempty"`
	Matches     []MatchView           `json:"matches,omitempty"`
	Events      []EventView           `json:"events,omitempty"`
	Awards      []AwardView           `json:"awards,omitempty"`
	Charts      []ChartView           `json:"charts,omitempty"`
}

// Visible reports whether the named panel should be rendered.
func (s Snapshot) Visible(panel string) bool {
	return s.Panels[panel] == PanelVisible
}

type QuickStatsView struct {
	Season   int    `json:"season"`
	Wins     string `json:"wins"`
	Losses   string `json:"losses"`
	Ties     string `json:"ties"`
	Total    string `json:"totalMatches"`
	WinRate  string `json:"winRate"`
	Detailed bool   `json:"detailed"`
	Source   string `json:"source"`
	NoData   bool   `json:"noData"`
}

type MatchView struct {
	Title            string `json:"title"`
	Stage            string `json:"stage"`
	MatchID          int    `json:"matchId"`
	EventCode        string `json:"eventCode"`
	Outcome          string `json:"outcome"`
	OutcomeClass     string `json:"outcomeClass"`
	Date             string `json:"date,omitempty"`
	Alliance         string `json:"alliance"`
	OpponentAlliance string `json:"opponentAlliance"`
	HasScores        bool   `json:"hasScores"`
	TeamScore        int    `json:"teamScore"`
	OpponentScore    int    `json:"opponentScore"`
	Station          string `json:"station,omitempty"`
	Role             string `json:"role,omitempty"`
	DQ               bool   `json:"dq"`
	NoShow           bool   `json:"noShow"`
}

type EventView struct {
	Code          string         `json:"code"`
	Name          string         `json:"name"`
	Date          string         `json:"date,omitempty"`
	HasStats      bool           `json:"hasStats"`
	Rank          string         `json:"rank,omitempty"`
	Played        int            `json:"played"`
	Wins          int            `json:"wins"`
	Losses        int            `json:"losses"`
	Ties          int            `json:"ties"`
	Record        string         `json:"record"`
	WinRate       string         `json:"winRate"`
	RankingPoints string         `json:"rankingPoints"`
	TieBreaker    string         `json:"tieBreaker"`
	Scores        []ScoreRowView `json:"scores,omitempty"`
}

type ScoreRowView struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type AwardView struct {
	Name      string `json:"name"`
	EventName string `json:"eventName"`
	EventCode string `json:"eventCode,omitempty"`
	Date      string `json:"date"`
}

// ChartView is one chart as handed to the page. Config is the renderer's
// output and is empty when Placeholder is set.
type ChartView struct {
	ID          string          `json:"id"`
	Kind        string          `json:"kind"`
	Placeholder string          `json:"placeholder,omitempty"`
	Config      json.RawMessage `json:"config,omitempty"`
}

func quickStatsView(s competition.SeasonStatsSummary) *QuickStatsView {
	view := &QuickStatsView{
		Season:   s.Season,
		Wins:     s.WinsLabel(),
		Losses:   s.LossesLabel(),
		Ties:     noValue,
		Total:    s.TotalLabel(),
		WinRate:  s.WinRateLabel(),
		Detailed: s.Detailed,
		Source:   string(s.Source),
		NoData:   s.Empty(),
	}
	if s.Detailed {
		view.Ties = strconv.Itoa(s.Ties)
	}
	return view
}

func matchView(m competition.EnrichedMatch) MatchView {
	alliance := string(m.Alliance)
	opponent := string(m.Alliance.Opponent())
	if alliance == "" {
		alliance = unknownLabel
		opponent = unknownLabel
	}
	outcome := m.Outcome
	if outcome == "" {
		outcome = competition.OutcomeUnknown
	}
	eventCode := m.EventCode
	if eventCode == "" {
		eventCode = unknownLabel
	}

	view := MatchView{
		Title:            string(m.Stage) + " Match " + strconv.Itoa(m.MatchID),
		Stage:            string(m.Stage),
		MatchID:          m.MatchID,
		EventCode:        eventCode,
		Outcome:          string(outcome),
		OutcomeClass:     strings.ToLower(string(outcome)),
		Alliance:         alliance,
		OpponentAlliance: opponent,
		Station:          m.Station,
		Role:             m.Role,
		DQ:               m.DQ,
		NoShow:           m.NoShow,
	}
	if m.Result != nil && m.Result.StartTime != nil {
		view.Date = m.Result.StartTime.Format(matchDateShape)
	}
	team, opp := m.TeamScore(), m.OpponentScore()
	if team != nil && opp != nil {
		view.HasScores = true
		view.TeamScore = *team
		view.OpponentScore = *opp
	}
	return view
}

func eventView(e competition.NormalizedEvent) EventView {
	view := EventView{
		Code:          e.Code,
		Name:          e.Name,
		Record:        noValue,
		WinRate:       noValue,
		RankingPoints: noValue,
		TieBreaker:    noValue,
	}
	if view.Code == "" {
		view.Code = "Unknown Event"
	}
	if e.Date != nil {
		view.Date = e.Date.Format(matchDateShape)
	}
	if !e.HasStats() {
		return view
	}

	stats := e.Stats
	view.HasStats = true
	view.Rank = stats.Rank.String()
	view.Played = stats.QualMatchesPlayed
	view.Wins = stats.Wins
	view.Losses = stats.Losses
	view.Ties = stats.Ties
	view.Record = stats.Record()
	view.WinRate = stats.WinRate().Fixed(1) + "%"
	view.RankingPoints = stats.RankingPoints.String()
	view.TieBreaker = stats.TieBreaker.String()
	if stats.Total.Known() {
		view.Scores = []ScoreRowView{
			{Label: "Total Points (TOT)", Value: stats.Total.Preferred().String()},
			{Label: "Average Points (AVG)", Value: stats.Average.Preferred().Fixed(2)},
			{Label: "OPR", Value: stats.OPR.Preferred().Fixed(2)},
			{Label: "Min", Value: stats.Min.Preferred().String()},
			{Label: "Max", Value: stats.Max.Preferred().String()},
		}
	}
	return view
}

func awardView(a competition.AwardRecord) AwardView {
	return AwardView{
		Name:      a.Name,
		EventName: a.EventName,
		EventCode: a.EventCode,
		Date:      a.DateLabel(),
	}
}
