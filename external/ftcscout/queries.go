package ftcscout

const scoreGroupFields = `{ totalPoints totalPointsNp }`

const traditionalStatsFields = `wins losses ties rank rp tb1
            tot ` + scoreGroupFields + `
            avg ` + scoreGroupFields + `
            opr ` + scoreGroupFields + `
            min ` + scoreGroupFields + `
            max ` + scoreGroupFields

const teamEventsQuery = `query TeamEvents($teamNumber: Int!, $season: Int!) {
  teamByNumber(number: $teamNumber) {
    name
    number
    events(season: $season) {
      eventCode
      event { code name start }
      stats {
        __typename
        ... on TeamEventStats2025 { ` + traditionalStatsFields + ` }
        ... on TeamEventStats2024 { ` + traditionalStatsFields + ` }
        ... on TeamEventStats2023 { ` + traditionalStatsFields + ` }
        ... on TeamEventStats2022 { ` + traditionalStatsFields + ` }
        ... on TeamEventStats2021Remote { rank tot ` + scoreGroupFields + ` avg ` + scoreGroupFields + ` }
      }
    }
  }
}`

const teamMatchesQuery = `query TeamMatches($teamNumber: Int!, $season: Int!) {
  teamByNumber(number: $teamNumber) {
    matches(season: $season) {
      matchId
      eventCode
      alliance
      station
      allianceRole
      onField
      surrogate
      dq
      noShow
    }
  }
}`

const eventMatchesQuery = `query EventMatches($season: Int!, $eventCode: String!) {
  event: eventByCode(season: $season, code: $eventCode) {
    code
    matches {
      matchId
      redScore
      blueScore
      winner
      startTime
    }
  }
}`

const teamAwardsQuery = `query TeamAwards($teamNumber: Int!, $season: Int!) {
  teamByNumber(number: $teamNumber) {
    awards(season: $season) {
      name
      event { code name start }
    }
  }
}`
