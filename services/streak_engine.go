package services

import (
	"time"

	"voltguard-streak-system/models"
)

// The streak transition lives here as a pure function so it can be unit
// tested without a database. The caller (UsageService) runs it inside the
// same transaction that persists the usage record, holding the user's
// streak row locked — partial application is not possible.

const dayLayout = "2006-01-02"

// TierOrder is the progression ladder, lowest first.
var TierOrder = []string{"Starter", "Bronze", "Silver", "Gold", "Platinum"}

// TierThresholds: minimum current streak days required for each tier.
var TierThresholds = map[string]int{
	"Starter":  0,
	"Bronze":   10,
	"Silver":   25,
	"Gold":     50,
	"Platinum": 100,
}

// TierForStreak returns the highest tier whose threshold <= streakDays.
func TierForStreak(streakDays int) string {
	for i := len(TierOrder) - 1; i >= 0; i-- {
		if streakDays >= TierThresholds[TierOrder[i]] {
			return TierOrder[i]
		}
	}
	return TierOrder[0]
}

// TierRank returns the position of a tier in the ladder, -1 if unknown.
func TierRank(tier string) int {
	for i, t := range TierOrder {
		if t == tier {
			return i
		}
	}
	return -1
}

// ParseDay parses a YYYY-MM-DD calendar key. The date is an opaque
// caller-supplied day; no timezone inference happens server-side.
func ParseDay(date string) (time.Time, error) {
	t, err := time.ParseInLocation(dayLayout, date, time.UTC)
	if err != nil {
		return time.Time{}, validationErrorf("invalid date %q: expected YYYY-MM-DD", date)
	}
	return t, nil
}

// WeekdayName returns the canonical weekday label (Monday..Sunday) for a
// calendar key.
func WeekdayName(date string) (string, error) {
	t, err := ParseDay(date)
	if err != nil {
		return "", err
	}
	return t.Weekday().String(), nil
}

// daysBetween returns the calendar-day distance from a to b (positive when
// b is after a). Both must be valid YYYY-MM-DD keys.
func daysBetween(a, b string) (int, error) {
	ta, err := ParseDay(a)
	if err != nil {
		return 0, err
	}
	tb, err := ParseDay(b)
	if err != nil {
		return 0, err
	}
	return int(tb.Sub(ta).Hours() / 24), nil
}

// AdvanceStreak computes the next streak state for a day's first record.
//
// Rules:
//   - isFirstForDay=false: state unchanged. Amendments to a day already
//     processed never re-trigger the transition.
//   - Adjacent day (or first-ever day) that qualifies: streak += 1.
//   - Adjacent day that does not qualify, or any gap: streak resets to 0
//     regardless of qualification; missed days grow by the interior gap
//     length plus 1 if the submitted day itself did not qualify.
//   - A date before the last processed day is a late backfill: it merges
//     into history and aggregates but cannot rewind the streak.
//   - A date equal to the last processed day under isFirstForDay=true means
//     the store and the streak row disagree: ConsistencyError.
//
// BestStreakDays is kept monotone and the tier is recomputed fully from the
// new streak on every call; the optional demotion grace retains the old
// tier through short interruptions.
func AdvanceStreak(state models.UserStreak, date string, isFirstForDay, qualifies bool, cfg Config) (models.UserStreak, error) {
	if !isFirstForDay {
		return state, nil
	}

	gap := 0
	if state.LastActivityDate != nil {
		dist, err := daysBetween(*state.LastActivityDate, date)
		if err != nil {
			return state, err
		}
		if dist == 0 {
			return state, &ConsistencyError{
				Msg: "streak already advanced for " + date + " but record was first-for-day",
			}
		}
		if dist < 0 {
			// Late-arriving history; the adjacency anchor stays put.
			return state, nil
		}
		gap = dist - 1
	}

	prevTier := state.CurrentTier
	missedRun := gap
	if !qualifies {
		missedRun++
	}

	if missedRun == 0 {
		state.CurrentStreakDays++
	} else {
		state.CurrentStreakDays = 0
		state.MissedDaysCount += missedRun
	}

	if state.CurrentStreakDays > state.BestStreakDays {
		state.BestStreakDays = state.CurrentStreakDays
	}

	state.CurrentTier = TierForStreak(state.CurrentStreakDays)
	if cfg.DemotionGraceDays > 0 && missedRun > 0 && missedRun <= cfg.DemotionGraceDays &&
		TierRank(prevTier) > TierRank(state.CurrentTier) {
		state.CurrentTier = prevTier
	}

	d := date
	state.LastActivityDate = &d

	return state, nil
}
