// internal/service/scoring/rank.go

package scoring

import (
	"sort"
	"time"

	"trendwatch/internal/domain/trend"
)

// DefaultLimit is used when the caller supplies no usable limit.
const DefaultLimit = 20

// Rank orders aggregated stats by velocity score descending and returns
// at most limit rows with dense 1-based ranks. Equal scores keep their
// discovery order. Every row carries the same source label and
// fetchedAt stamp; an empty mapping produces an empty sequence.
func Rank(stats map[string]trend.HashtagStat, limit int, source string, fetchedAt time.Time) []trend.RankedTrend {
	if limit <= 0 {
		limit = DefaultLimit
	}

	ordered := make([]trend.HashtagStat, 0, len(stats))
	for _, stat := range stats {
		ordered = append(ordered, stat)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].VelocityScore != ordered[j].VelocityScore {
			return ordered[i].VelocityScore > ordered[j].VelocityScore
		}
		return ordered[i].FirstSeen < ordered[j].FirstSeen
	})

	if len(ordered) > limit {
		ordered = ordered[:limit]
	}

	ranked := make([]trend.RankedTrend, 0, len(ordered))
	for i, stat := range ordered {
		ranked = append(ranked, trend.RankedTrend{
			Rank:            i + 1,
			Hashtag:         stat.Hashtag,
			Mentions:        stat.Mentions,
			TotalEngagement: stat.TotalEngagement,
			VelocityScore:   stat.VelocityScore,
			Source:          source,
			Timestamp:       fetchedAt,
		})
	}

	return ranked
}
