package badge

import (
	"time"

	"github.com/theirongolddev/finmate/internal/model"
	"github.com/theirongolddev/finmate/internal/streak"
)

// Award adds ids to the earned set and records currentStreak, returning the
// new state and the ids that were actually added. Already-earned and unknown
// ids are ignored. The longest streak is raised in the same step.
func Award(state model.GamificationState, ids []string, currentStreak int, at time.Time) (model.GamificationState, []string) {
	next := streak.RecordStreak(state, currentStreak, at)
	earned := next.Earned()

	var added []string
	for _, id := range ids {
		if _, ok := earned[id]; ok {
			continue
		}
		if _, ok := Lookup(id); !ok {
			continue
		}
		earned[id] = struct{}{}
		next.EarnedBadges = append(next.EarnedBadges, id)
		added = append(added, id)
	}
	return next, added
}
