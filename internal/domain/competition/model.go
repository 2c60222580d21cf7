package competition

import (
	"strconv"
	"time"
)

const DefaultTeamNumber = 23954

// TeamIdentity is the fixed team the service reports on.
type TeamIdentity struct {
	Number        int
	CurrentSeason int
}

func NewTeamIdentity(number, season int, now time.Time) TeamIdentity {
	if number <= 0 {
		number = DefaultTeamNumber
	}
	if season <= 0 {
		season = now.Year()
	}
	return TeamIdentity{Number: number, CurrentSeason: season}
}

// Metric is an optional upstream number. The zero value is unknown.
type Metric struct {
	Value float64
	Known bool
}

func Known(v float64) Metric {
	return Metric{Value: v, Known: true}
}

func (m Metric) String() string {
	if !m.Known {
		return "--"
	}
	return strconv.FormatFloat(m.Value, 'f', -1, 64)
}

// Fixed formats the value with the given precision, or "--" when unknown.
func (m Metric) Fixed(precision int) string {
	if !m.Known {
		return "--"
	}
	return strconv.FormatFloat(m.Value, 'f', precision, 64)
}

type ScoreSummary struct {
	TotalPoints   Metric
	TotalPointsNp Metric
}

// Preferred returns the non-penalty total when known, else the total.
func (s ScoreSummary) Preferred() Metric {
	if s.TotalPointsNp.Known {
		return s.TotalPointsNp
	}
	return s.TotalPoints
}

func (s ScoreSummary) Known() bool {
	return s.TotalPoints.Known || s.TotalPointsNp.Known
}

type EventStats struct {
	Wins              int
	Losses            int
	Ties              int
	QualMatchesPlayed int
	Rank              Metric
	RankingPoints     Metric
	TieBreaker        Metric
	Total             ScoreSummary
	Average           ScoreSummary
	OPR               ScoreSummary
	Min               ScoreSummary
	Max               ScoreSummary
}

// NewEventStats builds stats with QualMatchesPlayed derived from the record.
func NewEventStats(wins, losses, ties int) EventStats {
	s := EventStats{Wins: wins, Losses: losses, Ties: ties}
	s.Recompute()
	return s
}

func (s *EventStats) Recompute() {
	s.QualMatchesPlayed = s.Wins + s.Losses + s.Ties
}

func (s EventStats) Record() string {
	return strconv.Itoa(s.Wins) + "-" + strconv.Itoa(s.Losses) + "-" + strconv.Itoa(s.Ties)
}

func (s EventStats) WinRate() Metric {
	return winRate(s.Wins, s.QualMatchesPlayed)
}

// NormalizedEvent is one event the team attended. Stats is nil when the
// upstream carried no participation data for the event.
type NormalizedEvent struct {
	Code  string
	Name  string
	Date  *time.Time
	Stats *EventStats
}

func (e NormalizedEvent) HasStats() bool {
	return e.Stats != nil && e.Stats.QualMatchesPlayed > 0
}

type Alliance string

const (
	AllianceRed  Alliance = "Red"
	AllianceBlue Alliance = "Blue"
)

func (a Alliance) Opponent() Alliance {
	switch a {
	case AllianceRed:
		return AllianceBlue
	case AllianceBlue:
		return AllianceRed
	default:
		return ""
	}
}

type MatchParticipation struct {
	MatchID   int
	EventCode string
	Alliance  Alliance
	Station   string
	Role      string
	OnField   *bool
	Surrogate bool
	DQ        bool
	NoShow    bool
}

func (m MatchParticipation) Key() MatchKey {
	return MatchKey{EventCode: m.EventCode, MatchID: m.MatchID}
}

// Counted reports whether the match contributes to statistics.
func (m MatchParticipation) Counted() bool {
	if m.OnField != nil && !*m.OnField {
		return false
	}
	return !m.Surrogate
}

type MatchKey struct {
	EventCode string
	MatchID   int
}

func (k MatchKey) String() string {
	return k.EventCode + "-" + strconv.Itoa(k.MatchID)
}

type MatchResult struct {
	MatchID   int
	RedScore  *int
	BlueScore *int
	Winner    Alliance
	StartTime *time.Time
}

func (r MatchResult) Score(a Alliance) *int {
	switch a {
	case AllianceRed:
		return r.RedScore
	case AllianceBlue:
		return r.BlueScore
	default:
		return nil
	}
}

type Outcome string

const (
	OutcomeWin     Outcome = "WIN"
	OutcomeLoss    Outcome = "LOSS"
	OutcomeTie     Outcome = "TIE"
	OutcomeUnknown Outcome = "Unknown"
)

type Stage string

const (
	StageQualification Stage = "Qualification"
	StageQuarterfinal  Stage = "Quarterfinal"
	StageSemifinal     Stage = "Semifinal"
	StageElimination   Stage = "Elimination"
)

type EnrichedMatch struct {
	MatchParticipation
	Result  *MatchResult
	Outcome Outcome
	Stage   Stage
}

// TeamScore and OpponentScore are nil when the result is unknown.
func (m EnrichedMatch) TeamScore() *int {
	if m.Result == nil {
		return nil
	}
	return m.Result.Score(m.Alliance)
}

func (m EnrichedMatch) OpponentScore() *int {
	if m.Result == nil {
		return nil
	}
	return m.Result.Score(m.Alliance.Opponent())
}

type AwardRecord struct {
	Name      string
	EventName string
	EventCode string
	Date      *time.Time
}

func (a AwardRecord) DateLabel() string {
	if a.Date == nil {
		return "TBD"
	}
	return a.Date.Format("Jan 2, 2006")
}

type SummarySource string

const (
	SourceEventStats SummarySource = "event_stats"
	SourceMatchCount SummarySource = "match_count"
)

// SeasonStatsSummary holds the season totals. A match-count summary only
// carries TotalMatches; Detailed is false and the record fields are unknown.
type SeasonStatsSummary struct {
	Season       int
	Wins         int
	Losses       int
	Ties         int
	TotalMatches int
	Detailed     bool
	Source       SummarySource
}

func (s SeasonStatsSummary) WinRate() Metric {
	if !s.Detailed {
		return Metric{}
	}
	return winRate(s.Wins, s.TotalMatches)
}

func (s SeasonStatsSummary) WinRateLabel() string {
	rate := s.WinRate()
	if !rate.Known {
		return "--"
	}
	return rate.Fixed(1) + "%"
}

func (s SeasonStatsSummary) TotalLabel() string {
	if s.TotalMatches == 0 {
		return "--"
	}
	return strconv.Itoa(s.TotalMatches)
}

func (s SeasonStatsSummary) WinsLabel() string {
	if !s.Detailed {
		return "--"
	}
	return strconv.Itoa(s.Wins)
}

func (s SeasonStatsSummary) LossesLabel() string {
	if !s.Detailed {
		return "--"
	}
	return strconv.Itoa(s.Losses)
}

func (s SeasonStatsSummary) Empty() bool {
	return s.TotalMatches == 0
}
