// internal/service/scoring/aggregate.go

package scoring

import (
	"trendwatch/internal/domain/trend"
)

// Aggregate folds posts into per-hashtag statistics. Each post
// increments the mention count of every distinct hashtag it contains by
// one and adds its engagement sum to that hashtag's cumulative
// engagement; a post with several hashtags contributes to each of them.
//
// The velocity score is the cumulative engagement volume. That is the
// authoritative scoring policy, not a rate — see DESIGN.md.
func Aggregate(posts []trend.Post) map[string]trend.HashtagStat {
	stats := make(map[string]trend.HashtagStat)
	discovered := 0

	for _, post := range posts {
		tags := ExtractHashtags(post.Text)
		if len(tags) == 0 {
			continue
		}

		engagement := post.Engagement()
		for _, tag := range tags {
			stat, ok := stats[tag]
			if !ok {
				stat = trend.HashtagStat{Hashtag: tag, FirstSeen: discovered}
				discovered++
			}
			stat.Mentions++
			stat.TotalEngagement += engagement
			stat.VelocityScore = stat.TotalEngagement
			stats[tag] = stat
		}
	}

	return stats
}
