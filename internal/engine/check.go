package engine

import (
	"context"

	"github.com/theirongolddev/finmate/internal/badge"
	"github.com/theirongolddev/finmate/internal/model"
	"github.com/theirongolddev/finmate/internal/streak"
)

// Result reports the outcome of a badge check.
type Result struct {
	Streak        int
	LongestStreak int
	Stop          streak.StopReason
	Awarded       []model.Badge
	Skipped       []string
}

// CheckBadges recomputes the streak, evaluates every rule and persists the
// streak together with any newly earned badges in one save.
func (e *Engine) CheckBadges(ctx context.Context) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.checkBadges(ctx)
}

func (e *Engine) checkBadges(ctx context.Context) (Result, error) {
	snap, err := e.snapshot(ctx)
	if err != nil {
		return Result{}, err
	}

	ids := badge.Evaluate(snap.Context)
	state, added := badge.Award(snap.Profile.Gamification, ids, snap.Streak, snap.Now)

	p := snap.Profile
	p.Gamification = state
	if err := e.profiles.SaveProfile(ctx, p); err != nil {
		return Result{}, err
	}

	awarded := badge.Resolve(added)
	for _, b := range awarded {
		e.log.Infow("badge awarded", "badge", b.ID, "streak", snap.Streak)
	}
	return Result{
		Streak:        state.CurrentStreak,
		LongestStreak: state.LongestStreak,
		Stop:          snap.StreakStop,
		Awarded:       awarded,
		Skipped:       snap.Skipped,
	}, nil
}

// refreshStreak persists the recomputed streak without evaluating badges.
// Used after edits and removals, which never revoke anything.
func (e *Engine) refreshStreak(ctx context.Context) (Result, error) {
	snap, err := e.snapshot(ctx)
	if err != nil {
		return Result{}, err
	}
	p := snap.Profile
	p.Gamification = streak.RecordStreak(p.Gamification, snap.Streak, snap.Now)
	if err := e.profiles.SaveProfile(ctx, p); err != nil {
		return Result{}, err
	}
	return Result{
		Streak:        p.Gamification.CurrentStreak,
		LongestStreak: p.Gamification.LongestStreak,
		Stop:          snap.StreakStop,
		Skipped:       snap.Skipped,
	}, nil
}
