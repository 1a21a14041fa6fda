package services

import (
	"testing"

	"voltguard-streak-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dayPtr(d string) *string { return &d }

func baseConfig() Config {
	return Config{QualifyingScore: DefaultQualifyingScore}
}

func TestTierForStreak(t *testing.T) {
	cases := []struct {
		days int
		tier string
	}{
		{0, "Starter"},
		{1, "Starter"},
		{9, "Starter"},
		{10, "Bronze"},
		{24, "Bronze"},
		{25, "Silver"},
		{49, "Silver"},
		{50, "Gold"},
		{99, "Gold"},
		{100, "Platinum"},
		{500, "Platinum"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.tier, TierForStreak(tc.days), "streak=%d", tc.days)
	}
}

func TestAdvanceStreak_FirstEverDay(t *testing.T) {
	t.Run("qualifying day starts the streak", func(t *testing.T) {
		state := models.UserStreak{CurrentTier: "Starter"}
		next, err := AdvanceStreak(state, "2024-01-01", true, true, baseConfig())
		require.NoError(t, err)
		assert.Equal(t, 1, next.CurrentStreakDays)
		assert.Equal(t, 1, next.BestStreakDays)
		assert.Equal(t, 0, next.MissedDaysCount)
		require.NotNil(t, next.LastActivityDate)
		assert.Equal(t, "2024-01-01", *next.LastActivityDate)
	})

	t.Run("non-qualifying day counts as missed", func(t *testing.T) {
		state := models.UserStreak{CurrentTier: "Starter"}
		next, err := AdvanceStreak(state, "2024-01-01", true, false, baseConfig())
		require.NoError(t, err)
		assert.Equal(t, 0, next.CurrentStreakDays)
		assert.Equal(t, 1, next.MissedDaysCount)
		require.NotNil(t, next.LastActivityDate)
		assert.Equal(t, "2024-01-01", *next.LastActivityDate)
	})
}

func TestAdvanceStreak_Adjacency(t *testing.T) {
	state := models.UserStreak{
		CurrentStreakDays: 5,
		BestStreakDays:    5,
		CurrentTier:       "Starter",
		LastActivityDate:  dayPtr("2024-01-05"),
	}

	t.Run("next qualifying day extends the streak", func(t *testing.T) {
		next, err := AdvanceStreak(state, "2024-01-06", true, true, baseConfig())
		require.NoError(t, err)
		assert.Equal(t, 6, next.CurrentStreakDays)
		assert.Equal(t, 6, next.BestStreakDays)
		assert.Equal(t, 0, next.MissedDaysCount)
	})

	t.Run("next non-qualifying day resets and counts one miss", func(t *testing.T) {
		next, err := AdvanceStreak(state, "2024-01-06", true, false, baseConfig())
		require.NoError(t, err)
		assert.Equal(t, 0, next.CurrentStreakDays)
		assert.Equal(t, 5, next.BestStreakDays, "best streak never decreases")
		assert.Equal(t, 1, next.MissedDaysCount)
		assert.Equal(t, "2024-01-06", *next.LastActivityDate, "anchor advances even on reset")
	})

	t.Run("two-day gap resets regardless of qualification", func(t *testing.T) {
		next, err := AdvanceStreak(state, "2024-01-08", true, true, baseConfig())
		require.NoError(t, err)
		assert.Equal(t, 0, next.CurrentStreakDays)
		assert.Equal(t, 2, next.MissedDaysCount)
		assert.Equal(t, "2024-01-08", *next.LastActivityDate)
	})

	t.Run("gap plus non-qualifying day counts the day too", func(t *testing.T) {
		next, err := AdvanceStreak(state, "2024-01-08", true, false, baseConfig())
		require.NoError(t, err)
		assert.Equal(t, 0, next.CurrentStreakDays)
		assert.Equal(t, 3, next.MissedDaysCount)
	})

	t.Run("gap spanning a month boundary", func(t *testing.T) {
		st := state
		st.LastActivityDate = dayPtr("2024-01-31")
		next, err := AdvanceStreak(st, "2024-02-03", true, true, baseConfig())
		require.NoError(t, err)
		assert.Equal(t, 2, next.MissedDaysCount)
	})
}

func TestAdvanceStreak_ReplayGuards(t *testing.T) {
	state := models.UserStreak{
		CurrentStreakDays: 3,
		BestStreakDays:    7,
		CurrentTier:       "Starter",
		MissedDaysCount:   2,
		LastActivityDate:  dayPtr("2024-01-10"),
	}

	t.Run("not first for day leaves state untouched", func(t *testing.T) {
		next, err := AdvanceStreak(state, "2024-01-10", false, true, baseConfig())
		require.NoError(t, err)
		assert.Equal(t, state, next)
	})

	t.Run("same day marked first-for-day is a consistency violation", func(t *testing.T) {
		_, err := AdvanceStreak(state, "2024-01-10", true, true, baseConfig())
		var ce *ConsistencyError
		require.ErrorAs(t, err, &ce)
	})

	t.Run("late backfill cannot rewind the streak", func(t *testing.T) {
		next, err := AdvanceStreak(state, "2024-01-03", true, true, baseConfig())
		require.NoError(t, err)
		assert.Equal(t, state, next)
	})
}

func TestAdvanceStreak_TierTransitions(t *testing.T) {
	t.Run("crossing the Bronze threshold promotes", func(t *testing.T) {
		state := models.UserStreak{
			CurrentStreakDays: 9,
			BestStreakDays:    9,
			CurrentTier:       "Starter",
			LastActivityDate:  dayPtr("2024-01-09"),
		}
		next, err := AdvanceStreak(state, "2024-01-10", true, true, baseConfig())
		require.NoError(t, err)
		assert.Equal(t, 10, next.CurrentStreakDays)
		assert.Equal(t, "Bronze", next.CurrentTier)
	})

	t.Run("reset recomputes the tier down", func(t *testing.T) {
		state := models.UserStreak{
			CurrentStreakDays: 26,
			BestStreakDays:    26,
			CurrentTier:       "Silver",
			LastActivityDate:  dayPtr("2024-02-10"),
		}
		next, err := AdvanceStreak(state, "2024-02-11", true, false, baseConfig())
		require.NoError(t, err)
		assert.Equal(t, 0, next.CurrentStreakDays)
		assert.Equal(t, "Starter", next.CurrentTier)
		assert.Equal(t, 26, next.BestStreakDays)
	})

	t.Run("demotion grace keeps the tier through a short gap", func(t *testing.T) {
		cfg := baseConfig()
		cfg.DemotionGraceDays = 2
		state := models.UserStreak{
			CurrentStreakDays: 26,
			BestStreakDays:    26,
			CurrentTier:       "Silver",
			LastActivityDate:  dayPtr("2024-02-10"),
		}
		next, err := AdvanceStreak(state, "2024-02-12", true, true, cfg)
		require.NoError(t, err)
		assert.Equal(t, 0, next.CurrentStreakDays)
		assert.Equal(t, "Silver", next.CurrentTier, "one missed day is within the grace")

		next, err = AdvanceStreak(state, "2024-02-15", true, true, cfg)
		require.NoError(t, err)
		assert.Equal(t, "Starter", next.CurrentTier, "grace exceeded")
	})
}

func TestAdvanceStreak_BestStreakMonotone(t *testing.T) {
	state := models.UserStreak{CurrentTier: "Starter"}
	cfg := baseConfig()

	// qualify 3 days, miss one, qualify 2 — best must end at 3
	days := []struct {
		date      string
		qualifies bool
	}{
		{"2024-03-01", true},
		{"2024-03-02", true},
		{"2024-03-03", true},
		{"2024-03-04", false},
		{"2024-03-05", true},
		{"2024-03-06", true},
	}

	best := 0
	for _, d := range days {
		next, err := AdvanceStreak(state, d.date, true, d.qualifies, cfg)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, next.BestStreakDays, best, "best streak decreased on %s", d.date)
		assert.GreaterOrEqual(t, next.BestStreakDays, next.CurrentStreakDays)
		best = next.BestStreakDays
		state = next
	}

	assert.Equal(t, 3, state.BestStreakDays)
	assert.Equal(t, 2, state.CurrentStreakDays)
	assert.Equal(t, 1, state.MissedDaysCount)
}

func TestWeekdayName(t *testing.T) {
	name, err := WeekdayName("2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, "Monday", name)

	_, err = WeekdayName("01/01/2024")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}
