package ftcscout

import (
	"strings"

	sonic "github.com/bytedance/sonic"
)

type teamEventsData struct {
	TeamByNumber *struct {
		Name   string                      `json:"name"`
		Number int                         `json:"number"`
		Events []eventParticipationPayload `json:"events"`
	} `json:"teamByNumber"`
}

type eventParticipationPayload struct {
	EventCode string           `json:"eventCode"`
	Event     *eventRefPayload `json:"event"`
	Stats     *statsPayload    `json:"stats"`
}

type eventRefPayload struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Start string `json:"start"`
}

// statsPayload is the union of every TeamEventStats fragment; fields a
// variant does not select stay nil.
type statsPayload struct {
	TypeName string             `json:"__typename"`
	Wins     *int               `json:"wins"`
	Losses   *int               `json:"losses"`
	Ties     *int               `json:"ties"`
	Rank     *float64           `json:"rank"`
	RP       *float64           `json:"rp"`
	TB1      *float64           `json:"tb1"`
	Tot      *scoreGroupPayload `json:"tot"`
	Avg      *scoreGroupPayload `json:"avg"`
	OPR      *scoreGroupPayload `json:"opr"`
	Min      *scoreGroupPayload `json:"min"`
	Max      *scoreGroupPayload `json:"max"`
}

type scoreGroupPayload struct {
	TotalPoints   *float64 `json:"totalPoints"`
	TotalPointsNp *float64 `json:"totalPointsNp"`
}

type teamMatchesData struct {
	TeamByNumber *struct {
		Matches []matchParticipationPayload `json:"matches"`
	} `json:"teamByNumber"`
}

type matchParticipationPayload struct {
	MatchID      int        `json:"matchId"`
	EventCode    string     `json:"eventCode"`
	Alliance     string     `json:"alliance"`
	Station      flexString `json:"station"`
	AllianceRole string     `json:"allianceRole"`
	OnField      *bool      `json:"onField"`
	Surrogate    bool       `json:"surrogate"`
	DQ           bool       `json:"dq"`
	NoShow       bool       `json:"noShow"`
}

type eventMatchesData struct {
	Event *struct {
		Code    string               `json:"code"`
		Matches []matchResultPayload `json:"matches"`
	} `json:"event"`
}

type matchResultPayload struct {
	MatchID   int     `json:"matchId"`
	RedScore  *int    `json:"redScore"`
	BlueScore *int    `json:"blueScore"`
	Winner    *string `json:"winner"`
	StartTime *string `json:"startTime"`
}

type teamAwardsData struct {
	TeamByNumber *struct {
		Awards []awardPayload `json:"awards"`
	} `json:"teamByNumber"`
}

type awardPayload struct {
	Name  string           `json:"name"`
	Event *eventRefPayload `json:"event"`
}

// flexString accepts a JSON string or a bare number.
type flexString string

func (f *flexString) UnmarshalJSON(raw []byte) error {
	text := strings.TrimSpace(string(raw))
	switch {
	case text == "null":
		*f = ""
	case strings.HasPrefix(text, `"`):
		var s string
		if err := sonic.Unmarshal(raw, &s); err != nil {
			return err
		}
		*f = flexString(s)
	default:
		*f = flexString(text)
	}
	return nil
}
