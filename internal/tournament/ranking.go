package tournament

import (
	"math"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultRecentLimit is how many matches the recent-matches view shows.
const DefaultRecentLimit = 10

// ComputeRanking orders players by points (descending), then wins
// (descending), then name (ascending, locale-aware). The sort is stable, so
// equal inputs always produce the same order.
func ComputeRanking(players []Player) []Player {
	ranked := append([]Player(nil), players...)
	coll := collate.New(language.BrazilianPortuguese)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Points != ranked[j].Points {
			return ranked[i].Points > ranked[j].Points
		}
		if ranked[i].Wins != ranked[j].Wins {
			return ranked[i].Wins > ranked[j].Wins
		}
		return coll.CompareString(ranked[i].Name, ranked[j].Name) < 0
	})
	return ranked
}

// winRate is the raw win percentage, 0 for players without matches.
func winRate(p Player) float64 {
	if p.Matches == 0 {
		return 0
	}
	return float64(p.Wins) / float64(p.Matches) * 100
}

// RankingWinRate is the win percentage shown in the ranking and report
// tables, rounded to one decimal place.
func RankingWinRate(p Player) float64 {
	return math.Round(winRate(p)*10) / 10
}

// SummaryWinRate is the win percentage shown on the dashboard summary,
// rounded to a whole number. The dashboard and the ranking table round
// differently on purpose; do not unify them.
func SummaryWinRate(p Player) int {
	return int(math.Round(winRate(p)))
}

// ComputeReportStatistics aggregates the reporting view. The leader is picked
// by points first and win rate second, which is a different tie-break than
// the ranking table's wins-based one; both rules are intentional.
func ComputeReportStatistics(players []Player, matches []Match) ReportStatistics {
	stats := ReportStatistics{
		TotalPlayers: len(players),
		TotalMatches: len(matches),
	}

	if len(players) > 0 {
		leader := players[0]
		for _, p := range players[1:] {
			if p.Points > leader.Points ||
				(p.Points == leader.Points && winRate(p) > winRate(leader)) {
				leader = p
			}
		}
		stats.CurrentLeader = leader.Name
	}

	var sum float64
	var counted int
	for _, p := range players {
		if p.Matches > 0 {
			sum += winRate(p)
			counted++
		}
	}
	if counted > 0 {
		stats.AvgWinRate = math.Round(sum/float64(counted)*10) / 10
	}
	return stats
}

// RecentMatches returns up to limit matches, most recently recorded first.
// A non-positive limit falls back to DefaultRecentLimit.
func RecentMatches(matches []Match, limit int) []Match {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	recent := append([]Match(nil), matches...)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > limit {
		recent = recent[:limit]
	}
	return recent
}
